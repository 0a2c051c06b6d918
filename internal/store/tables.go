package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"pplmatch/internal/dataset"
	"pplmatch/internal/faults"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// internalTables are managed by the store and never exposed as sources.
var internalTables = map[string]struct{}{
	"schema_version": {},
	"match_runs":     {},
	"match_rows":     {},
	"evaluations":    {},
}

func validateTableName(name string) error {
	if !identifierPattern.MatchString(name) {
		return faults.Wrap(faults.ErrValidation, "store", "table name",
			fmt.Sprintf("%q is not a plain identifier", name), nil)
	}
	if _, ok := internalTables[strings.ToLower(name)]; ok {
		return faults.Wrap(faults.ErrValidation, "store", "table name",
			fmt.Sprintf("%q is reserved", name), nil)
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// ListTables returns the user tables and views available as sources.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		if _, internal := internalTables[strings.ToLower(name)]; internal {
			continue
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReadTable loads a user table or view as a dataset.Table. Cells are
// rendered as text; NULL becomes "".
func (s *Store) ReadTable(ctx context.Context, name string) (dataset.Table, error) {
	if err := validateTableName(name); err != nil {
		return dataset.Table{}, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM sqlite_master WHERE type IN ('table', 'view') AND name = ?`, name,
	).Scan(&count); err != nil {
		return dataset.Table{}, fmt.Errorf("look up table %s: %w", name, err)
	}
	if count == 0 {
		return dataset.Table{}, faults.Wrap(faults.ErrNotFound, "store", "read table",
			fmt.Sprintf("no table named %q in %s", name, s.path), nil)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT * FROM `+quoteIdent(name))
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read table %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return dataset.Table{}, fmt.Errorf("read columns of %s: %w", name, err)
	}
	table := dataset.Table{Columns: columns}
	values := make([]any, len(columns))
	targets := make([]any, len(columns))
	for i := range values {
		targets[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(targets...); err != nil {
			return dataset.Table{}, fmt.Errorf("scan %s: %w", name, err)
		}
		record := make([]string, len(columns))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		table.Rows = append(table.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return dataset.Table{}, fmt.Errorf("iterate %s: %w", name, err)
	}
	return table, nil
}

// ImportTable replaces table name with the contents of t. Every column is
// stored as TEXT.
func (s *Store) ImportTable(ctx context.Context, name string, t dataset.Table) error {
	if err := validateTableName(name); err != nil {
		return err
	}
	if len(t.Columns) == 0 {
		return faults.Wrap(faults.ErrValidation, "store", "import table", "table has no columns", nil)
	}
	defs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		defs[i] = quoteIdent(c) + " TEXT"
	}
	insert := fmt.Sprintf(`INSERT INTO %s VALUES (%s)`, quoteIdent(name), makePlaceholders(len(t.Columns)))

	return s.withWriteLock(ctx, func() error {
		return s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(name)); err != nil {
				return fmt.Errorf("drop %s: %w", name, err)
			}
			if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(name), strings.Join(defs, ", "))); err != nil {
				return fmt.Errorf("create %s: %w", name, err)
			}
			stmt, err := tx.PrepareContext(ctx, insert)
			if err != nil {
				return fmt.Errorf("prepare insert: %w", err)
			}
			defer stmt.Close()
			args := make([]any, len(t.Columns))
			for r := range t.Rows {
				for c := range t.Columns {
					args[c] = t.Value(r, c)
				}
				if _, err := stmt.ExecContext(ctx, args...); err != nil {
					return fmt.Errorf("insert row %d: %w", r+1, err)
				}
			}
			return nil
		})
	})
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", count), ", ")
}
