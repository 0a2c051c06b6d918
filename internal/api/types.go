package api

import (
	"time"

	"pplmatch/internal/legislature"
	"pplmatch/internal/matching"
	"pplmatch/internal/store"
)

// dateTimeFormat is used for RFC3339 timestamps in view payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// RunView describes a saved match run in a transport-friendly format.
type RunView struct {
	ID                string           `json:"id"`
	CreatedAt         string           `json:"createdAt"`
	CorpusSource      string           `json:"corpusSource"`
	LegislatorsSource string           `json:"legislatorsSource"`
	Rows              int              `json:"rows"`
	Options           store.RunOptions `json:"options"`
	Summary           matching.Summary `json:"summary"`
	MatchRate         float64          `json:"matchRate"`
}

// EvaluationView describes a saved evaluation without per-row details.
type EvaluationView struct {
	ID         string  `json:"id"`
	RunID      string  `json:"runId,omitempty"`
	CreatedAt  string  `json:"createdAt"`
	GoldSource string  `json:"goldSource"`
	Precision  float64 `json:"precision"`
	Recall     float64 `json:"recall"`
	F1         float64 `json:"f1"`
	Total      int     `json:"total"`
}

// RunDetail is a run with the evaluations recorded against it.
type RunDetail struct {
	Run         RunView          `json:"run"`
	Evaluations []EvaluationView `json:"evaluations"`
}

// PeriodView is one legislature period.
type PeriodView struct {
	Legislature int    `json:"legislature"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// FromRun converts a stored run.
func FromRun(run store.Run) RunView {
	view := RunView{
		ID:                run.ID,
		CreatedAt:         formatTime(run.CreatedAt),
		CorpusSource:      run.CorpusSource,
		LegislatorsSource: run.LegislatorsSource,
		Rows:              run.Rows,
		Options:           run.Options,
		Summary:           run.Summary,
	}
	if run.Summary.Total > 0 {
		view.MatchRate = float64(run.Summary.Matched()) / float64(run.Summary.Total)
	}
	return view
}

// FromRuns converts stored runs, keeping their order.
func FromRuns(runs []store.Run) []RunView {
	views := make([]RunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, FromRun(run))
	}
	return views
}

// FromEvaluation converts a stored evaluation.
func FromEvaluation(ev store.Evaluation) EvaluationView {
	return EvaluationView{
		ID:         ev.ID,
		RunID:      ev.RunID,
		CreatedAt:  formatTime(ev.CreatedAt),
		GoldSource: ev.GoldSource,
		Precision:  ev.Report.Precision,
		Recall:     ev.Report.Recall,
		F1:         ev.Report.F1,
		Total:      ev.Report.Total,
	}
}

// FromPeriods converts a period table.
func FromPeriods(periods []legislature.Period) []PeriodView {
	views := make([]PeriodView, 0, len(periods))
	for _, p := range periods {
		views = append(views, PeriodView{
			Legislature: p.Legislature,
			Start:       p.Start.Format(legislature.DateLayout),
			End:         p.End.Format(legislature.DateLayout),
		})
	}
	return views
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// ParseViewTime parses a view timestamp for display formatting.
func ParseViewTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	return time.Time{}
}
