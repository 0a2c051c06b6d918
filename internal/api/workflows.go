package api

import (
	"context"
	"log/slog"
	"strings"

	"pplmatch/internal/config"
	"pplmatch/internal/dataset"
	"pplmatch/internal/evaluation"
	"pplmatch/internal/faults"
	"pplmatch/internal/logging"
	"pplmatch/internal/matching"
	"pplmatch/internal/speaker"
	"pplmatch/internal/store"
)

// RunMatchRequest describes a match run driven by table references.
type RunMatchRequest struct {
	Config      *config.Config
	Logger      *slog.Logger
	Corpus      string
	Legislators string
	// Output, when set, receives the result table as CSV.
	Output string
	// Save persists the run in the configured database.
	Save bool
	// Options overrides the options derived from Config.
	Options *matching.Options
}

// RunMatchResult is the outcome of RunMatch.
type RunMatchResult struct {
	Table   dataset.Table
	Summary matching.Summary
	Run     *RunView
}

// RunMatch loads the corpus and legislator tables, matches them, and
// optionally writes and saves the result.
func RunMatch(ctx context.Context, req RunMatchRequest) (RunMatchResult, error) {
	logger := componentLogger(req.Logger)
	corpusSrc, err := ParseSource(req.Corpus)
	if err != nil {
		return RunMatchResult{}, err
	}
	legSrc, err := ParseSource(req.Legislators)
	if err != nil {
		return RunMatchResult{}, err
	}

	var st *store.Store
	if req.Save || corpusSrc.NeedsStore() || legSrc.NeedsStore() {
		if st, err = openStore(req.Config); err != nil {
			return RunMatchResult{}, err
		}
		defer st.Close()
	}

	corpus, err := LoadSource(ctx, st, corpusSrc)
	if err != nil {
		return RunMatchResult{}, err
	}
	legislators, err := LoadSource(ctx, st, legSrc)
	if err != nil {
		return RunMatchResult{}, err
	}
	index, err := LoadIndex(req.Config)
	if err != nil {
		return RunMatchResult{}, err
	}
	opts := OptionsFromConfig(req.Config)
	if req.Options != nil {
		opts = *req.Options
	}
	opts = opts.Normalized()

	logger.Debug("matching tables",
		logging.String("corpus", corpusSrc.String()),
		logging.Int("corpus_rows", corpus.Len()),
		logging.String("legislators", legSrc.String()),
		logging.Int("legislator_rows", legislators.Len()),
	)
	table, summary, err := Match(ctx, corpus, legislators, MatchRequest{
		Index:   index,
		Logger:  req.Logger,
		Options: opts,
	})
	if err != nil {
		return RunMatchResult{}, err
	}
	result := RunMatchResult{Table: table, Summary: summary}

	if out := strings.TrimSpace(req.Output); out != "" {
		if err := dataset.WriteCSVFile(out, table); err != nil {
			return RunMatchResult{}, err
		}
		logger.Info("wrote match results", logging.String("path", out), logging.Rows(table.Len()))
	}

	if req.Save {
		run, err := st.SaveRun(ctx, store.Run{
			CorpusSource:      corpusSrc.String(),
			LegislatorsSource: legSrc.String(),
			Options: store.RunOptions{
				FuzzyThreshold: opts.FuzzyThreshold,
				MinLegislature: opts.MinLegislature,
				MaxLegislature: opts.MaxLegislature,
				Legislatures:   opts.Legislatures,
			},
			Summary: summary,
		}, table)
		if err != nil {
			return RunMatchResult{}, err
		}
		view := FromRun(run)
		result.Run = &view
		logging.WithContext(logging.WithRunID(ctx, run.ID), logger).Info("saved match run",
			logging.Rows(run.Rows),
			logging.Int("matched", summary.Matched()),
		)
	}
	return result, nil
}

// RunEvaluateRequest describes an evaluation driven by table references.
type RunEvaluateRequest struct {
	Config  *config.Config
	Logger  *slog.Logger
	Matched string
	Gold    string
	// Save persists the report; it is linked to the run when Matched is run:<id>.
	Save bool
}

// RunEvaluateResult is the outcome of RunEvaluate.
type RunEvaluateResult struct {
	Report     evaluation.Report
	Evaluation *EvaluationView
}

// RunEvaluate scores a matched table against a gold table.
func RunEvaluate(ctx context.Context, req RunEvaluateRequest) (RunEvaluateResult, error) {
	logger := componentLogger(req.Logger)
	matchedSrc, err := ParseSource(req.Matched)
	if err != nil {
		return RunEvaluateResult{}, err
	}
	goldSrc, err := ParseSource(req.Gold)
	if err != nil {
		return RunEvaluateResult{}, err
	}

	var st *store.Store
	if req.Save || matchedSrc.NeedsStore() || goldSrc.NeedsStore() {
		if st, err = openStore(req.Config); err != nil {
			return RunEvaluateResult{}, err
		}
		defer st.Close()
	}

	gold, err := LoadSource(ctx, st, goldSrc)
	if err != nil {
		return RunEvaluateResult{}, err
	}
	matched, err := LoadSource(ctx, st, matchedSrc)
	if err != nil {
		return RunEvaluateResult{}, err
	}
	report, err := Evaluate(matched, gold)
	if err != nil {
		return RunEvaluateResult{}, err
	}
	result := RunEvaluateResult{Report: report}

	if matchedSrc.Kind == SourceRun {
		ctx = logging.WithRunID(ctx, matchedSrc.Value)
	}
	logging.WithContext(ctx, logger).Info("evaluation complete",
		logging.Int("pairs", report.Total),
		logging.Float64("precision", report.Precision),
		logging.Float64("recall", report.Recall),
		logging.Float64("f1", report.F1),
		logging.Int("unpaired_predictions", report.UnpairedPredictions),
		logging.Int("unpaired_annotations", report.UnpairedAnnotations),
	)

	if req.Save {
		ev := store.Evaluation{GoldSource: goldSrc.String(), Report: report}
		if matchedSrc.Kind == SourceRun {
			ev.RunID = matchedSrc.Value
		}
		saved, err := st.SaveEvaluation(ctx, ev)
		if err != nil {
			return RunEvaluateResult{}, err
		}
		view := FromEvaluation(saved)
		result.Evaluation = &view
	}
	return result, nil
}

// ImportTable loads a CSV file into the database under name and returns the
// number of rows imported.
func ImportTable(ctx context.Context, cfg *config.Config, logger *slog.Logger, name, path string) (int, error) {
	table, err := dataset.ReadCSVFile(path)
	if err != nil {
		return 0, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	if err := st.ImportTable(ctx, name, table); err != nil {
		return 0, err
	}
	componentLogger(logger).Info("imported table",
		logging.String("table", name),
		logging.Source(path),
		logging.Rows(table.Len()),
	)
	return table.Len(), nil
}

// ListTables returns the user tables in the database.
func ListTables(ctx context.Context, cfg *config.Config) ([]string, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.ListTables(ctx)
}

// ListRuns returns saved runs, newest first.
func ListRuns(ctx context.Context, cfg *config.Config) ([]RunView, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	return FromRuns(runs), nil
}

// ShowRun returns a run and its evaluations.
func ShowRun(ctx context.Context, cfg *config.Config, id string) (RunDetail, error) {
	st, err := openStore(cfg)
	if err != nil {
		return RunDetail{}, err
	}
	defer st.Close()
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return RunDetail{}, err
	}
	evals, err := st.ListEvaluations(ctx, id)
	if err != nil {
		return RunDetail{}, err
	}
	detail := RunDetail{Run: FromRun(run), Evaluations: make([]EvaluationView, 0, len(evals))}
	for _, ev := range evals {
		detail.Evaluations = append(detail.Evaluations, FromEvaluation(ev))
	}
	return detail, nil
}

// ExportRun writes a saved run's result table to path as CSV.
func ExportRun(ctx context.Context, cfg *config.Config, id, path string) (int, error) {
	st, err := openStore(cfg)
	if err != nil {
		return 0, err
	}
	defer st.Close()
	_, table, err := st.LoadRun(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteCSVFile(path, table); err != nil {
		return 0, err
	}
	return table.Len(), nil
}

// DeleteRun removes a saved run and its rows. Evaluations are kept and lose
// their run link.
func DeleteRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, id string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.DeleteRun(ctx, id); err != nil {
		return err
	}
	logging.WithContext(logging.WithRunID(ctx, id), componentLogger(logger)).Info("deleted match run")
	return nil
}

// SpeakerView is the normalizer's view of one raw speaker label.
type SpeakerView struct {
	Raw        string `json:"raw"`
	Category   string `json:"category"`
	Normalized string `json:"normalized"`
	LastName   string `json:"lastName,omitempty"`
}

// NormalizeSpeakers classifies and normalizes raw labels with the configured
// lexicon.
func NormalizeSpeakers(cfg *config.Config, labels []string) []SpeakerView {
	lex := speaker.QuebecLexicon()
	if cfg != nil {
		lex = cfg.SpeakerLexicon()
	}
	n := speaker.NewNormalizer(lex)
	views := make([]SpeakerView, 0, len(labels))
	for _, raw := range labels {
		norm := n.Normalize(raw)
		views = append(views, SpeakerView{
			Raw:        raw,
			Category:   string(norm.Category),
			Normalized: norm.Name,
			LastName:   norm.LastName,
		})
	}
	return views
}

// Periods returns the configured legislature period table.
func Periods(cfg *config.Config) ([]PeriodView, error) {
	index, err := LoadIndex(cfg)
	if err != nil {
		return nil, err
	}
	return FromPeriods(index.Periods()), nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "api", "open store", "no configuration", nil)
	}
	return store.Open(cfg.Paths.Database)
}

func componentLogger(logger *slog.Logger) *slog.Logger {
	return logging.NewComponentLogger(logger, "api")
}
