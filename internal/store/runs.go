package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pplmatch/internal/dataset"
	"pplmatch/internal/evaluation"
	"pplmatch/internal/faults"
	"pplmatch/internal/matching"
)

const matchLevelColumn = "match_level"

// RunOptions records the options a run was produced with.
type RunOptions struct {
	FuzzyThreshold float64 `json:"fuzzy_threshold"`
	MinLegislature int     `json:"legislature_min,omitempty"`
	MaxLegislature int     `json:"legislature_max,omitempty"`
	Legislatures   []int   `json:"legislatures,omitempty"`
}

// Run describes a saved match run.
type Run struct {
	ID                string
	CreatedAt         time.Time
	CorpusSource      string
	LegislatorsSource string
	Options           RunOptions
	Summary           matching.Summary
	Rows              int
}

// Evaluation is a saved evaluation report, optionally tied to a run.
type Evaluation struct {
	ID         string
	RunID      string
	CreatedAt  time.Time
	GoldSource string
	Report     evaluation.Report
}

// SaveRun persists run and its result table in one transaction. The ID and
// creation time are assigned here.
func (s *Store) SaveRun(ctx context.Context, run Run, table dataset.Table) (Run, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC()
	run.Rows = table.Len()

	optionsJSON, err := json.Marshal(run.Options)
	if err != nil {
		return Run{}, fmt.Errorf("marshal options: %w", err)
	}
	summaryJSON, err := json.Marshal(run.Summary)
	if err != nil {
		return Run{}, fmt.Errorf("marshal summary: %w", err)
	}
	columnsJSON, err := json.Marshal(table.Columns)
	if err != nil {
		return Run{}, fmt.Errorf("marshal columns: %w", err)
	}
	levelIdx := table.Index(matchLevelColumn)

	err = s.withWriteLock(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO match_runs (
                    id, created_at, corpus_source, legislators_source,
                    options_json, summary_json, columns_json, row_count
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				run.ID,
				run.CreatedAt.Format(timestampLayout),
				nullableString(run.CorpusSource),
				nullableString(run.LegislatorsSource),
				string(optionsJSON),
				string(summaryJSON),
				string(columnsJSON),
				run.Rows,
			); err != nil {
				return fmt.Errorf("insert run: %w", err)
			}

			stmt, err := tx.PrepareContext(ctx,
				`INSERT INTO match_rows (run_id, row_index, cells_json, match_level) VALUES (?, ?, ?, ?)`)
			if err != nil {
				return fmt.Errorf("prepare row insert: %w", err)
			}
			defer stmt.Close()
			for i, cells := range table.Rows {
				cellsJSON, err := json.Marshal(cells)
				if err != nil {
					return fmt.Errorf("marshal row %d: %w", i, err)
				}
				if _, err := stmt.ExecContext(ctx, run.ID, i, string(cellsJSON), nullableString(table.Value(i, levelIdx))); err != nil {
					return fmt.Errorf("insert row %d: %w", i, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

const runColumns = `id, created_at, corpus_source, legislators_source, options_json, summary_json, row_count`

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run                  Run
		createdAt            string
		corpus, legislators  sql.NullString
		optionsJSON, summary string
	)
	if err := scanner.Scan(&run.ID, &createdAt, &corpus, &legislators, &optionsJSON, &summary, &run.Rows); err != nil {
		return Run{}, err
	}
	run.CorpusSource = corpus.String
	run.LegislatorsSource = legislators.String
	ts, err := parseTimeString(createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at: %w", err)
	}
	run.CreatedAt = ts
	if err := json.Unmarshal([]byte(optionsJSON), &run.Options); err != nil {
		return Run{}, fmt.Errorf("decode options: %w", err)
	}
	if err := json.Unmarshal([]byte(summary), &run.Summary); err != nil {
		return Run{}, fmt.Errorf("decode summary: %w", err)
	}
	return run, nil
}

// ListRuns returns saved runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM match_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run without its rows.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM match_runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, faults.Wrap(faults.ErrNotFound, "store", "get run", fmt.Sprintf("no run %q", id), nil)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// LoadRun returns a run and its result table in row order.
func (s *Store) LoadRun(ctx context.Context, id string) (Run, dataset.Table, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return Run{}, dataset.Table{}, err
	}
	var columnsJSON string
	if err := s.db.QueryRowContext(ctx, `SELECT columns_json FROM match_runs WHERE id = ?`, id).Scan(&columnsJSON); err != nil {
		return Run{}, dataset.Table{}, fmt.Errorf("read columns: %w", err)
	}
	var table dataset.Table
	if err := json.Unmarshal([]byte(columnsJSON), &table.Columns); err != nil {
		return Run{}, dataset.Table{}, fmt.Errorf("decode columns: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT cells_json FROM match_rows WHERE run_id = ? ORDER BY row_index`, id)
	if err != nil {
		return Run{}, dataset.Table{}, fmt.Errorf("load rows: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return Run{}, dataset.Table{}, fmt.Errorf("scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return Run{}, dataset.Table{}, fmt.Errorf("decode row: %w", err)
		}
		table.Rows = append(table.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return Run{}, dataset.Table{}, fmt.Errorf("iterate rows: %w", err)
	}
	return run, table, nil
}

// DeleteRun removes a run and its rows. Evaluations of the run are kept with
// their run reference cleared.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	return s.withWriteLock(ctx, func() error {
		var affected int64
		err := s.inTx(ctx, func(tx *sql.Tx) error {
			res, err := tx.ExecContext(ctx, `DELETE FROM match_runs WHERE id = ?`, id)
			if err != nil {
				return fmt.Errorf("delete run: %w", err)
			}
			affected, err = res.RowsAffected()
			return err
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return faults.Wrap(faults.ErrNotFound, "store", "delete run", fmt.Sprintf("no run %q", id), nil)
		}
		return nil
	})
}

// SaveEvaluation persists a report. RunID, when set, must name a saved run.
func (s *Store) SaveEvaluation(ctx context.Context, ev Evaluation) (Evaluation, error) {
	if ev.RunID != "" {
		if _, err := s.GetRun(ctx, ev.RunID); err != nil {
			return Evaluation{}, err
		}
	}
	ev.ID = uuid.NewString()
	ev.CreatedAt = time.Now().UTC()
	reportJSON, err := json.Marshal(ev.Report)
	if err != nil {
		return Evaluation{}, fmt.Errorf("marshal report: %w", err)
	}
	err = s.withWriteLock(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO evaluations (
                    id, run_id, created_at, gold_source, precision, recall, f1, report_json
                ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				ev.ID,
				nullableString(ev.RunID),
				ev.CreatedAt.Format(timestampLayout),
				nullableString(ev.GoldSource),
				ev.Report.Precision,
				ev.Report.Recall,
				ev.Report.F1,
				string(reportJSON),
			)
			if err != nil {
				return fmt.Errorf("insert evaluation: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return Evaluation{}, err
	}
	return ev, nil
}

// ListEvaluations returns saved evaluations, newest first. A non-empty runID
// restricts the list to that run.
func (s *Store) ListEvaluations(ctx context.Context, runID string) ([]Evaluation, error) {
	query := `SELECT id, run_id, created_at, gold_source, report_json FROM evaluations`
	var args []any
	if runID != "" {
		query += ` WHERE run_id = ?`
		args = append(args, runID)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()
	var out []Evaluation
	for rows.Next() {
		var (
			ev               Evaluation
			run, gold        sql.NullString
			createdAt, repJS string
		)
		if err := rows.Scan(&ev.ID, &run, &createdAt, &gold, &repJS); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		ev.RunID = run.String
		ev.GoldSource = gold.String
		if ev.CreatedAt, err = parseTimeString(createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(repJS), &ev.Report); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
