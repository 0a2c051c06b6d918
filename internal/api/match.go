package api

import (
	"context"
	"log/slog"
	"math"
	"strconv"

	"pplmatch/internal/config"
	"pplmatch/internal/dataset"
	"pplmatch/internal/evaluation"
	"pplmatch/internal/legislature"
	"pplmatch/internal/matching"
	"pplmatch/internal/similarity"
)

// Result column names appended by Match.
const (
	ColLegislature       = "legislature"
	ColSpeakerCategory   = "speaker_category"
	ColSpeakerNormalized = "speaker_normalized"
	ColMatchLevel        = "match_level"
	ColMatchScore        = "match_score"
)

// ResultColumns lists the columns Match writes, in output order.
var ResultColumns = []string{
	ColLegislature,
	ColSpeakerCategory,
	ColSpeakerNormalized,
	dataset.ColMatchedName,
	dataset.ColPartyID,
	dataset.ColGender,
	dataset.ColDistrictID,
	ColMatchLevel,
	ColMatchScore,
}

// MatchRequest carries the collaborators of one Match call. Nil Index means
// the bundled Quebec table; nil Scorer means similarity.NewWeighted. Options
// are used as given, so callers usually start from matching.DefaultOptions.
type MatchRequest struct {
	Index   *legislature.Index
	Scorer  similarity.Scorer
	Logger  *slog.Logger
	Options matching.Options
}

// Match resolves every corpus row against the legislator table and returns a
// copy of corpus with the result columns set. Existing columns with the same
// names are overwritten in place.
func Match(ctx context.Context, corpus, legislators dataset.Table, req MatchRequest) (dataset.Table, matching.Summary, error) {
	utterances, err := corpus.Utterances()
	if err != nil {
		return dataset.Table{}, matching.Summary{}, err
	}
	members, err := legislators.Legislators()
	if err != nil {
		return dataset.Table{}, matching.Summary{}, err
	}

	index := req.Index
	if index == nil {
		if index, err = legislature.Default(); err != nil {
			return dataset.Table{}, matching.Summary{}, err
		}
	}
	scorer := req.Scorer
	if scorer == nil {
		scorer = similarity.NewWeighted()
	}

	engine, err := matching.NewEngine(index, scorer, req.Logger, req.Options)
	if err != nil {
		return dataset.Table{}, matching.Summary{}, err
	}
	results, summary, err := engine.Match(ctx, utterances, members)
	if err != nil {
		return dataset.Table{}, matching.Summary{}, err
	}

	out := corpus.Clone()
	for col, values := range resultCells(results) {
		if err := out.SetColumn(ResultColumns[col], values); err != nil {
			return dataset.Table{}, matching.Summary{}, err
		}
	}
	return out, summary, nil
}

// Evaluate scores a matched table against gold annotations. The gold table
// is checked first so a malformed gold file never yields a partial report.
func Evaluate(matched, gold dataset.Table) (evaluation.Report, error) {
	annotations, err := gold.Annotations()
	if err != nil {
		return evaluation.Report{}, err
	}
	predictions, err := matched.Predictions()
	if err != nil {
		return evaluation.Report{}, err
	}
	return evaluation.Evaluate(predictions, annotations), nil
}

// resultCells returns one value slice per entry of ResultColumns.
func resultCells(results []matching.Result) [][]string {
	cells := make([][]string, len(ResultColumns))
	for c := range cells {
		cells[c] = make([]string, len(results))
	}
	for i, r := range results {
		cells[0][i] = formatLegislature(r.Legislature)
		cells[1][i] = r.SpeakerCategory
		cells[2][i] = r.SpeakerNormalized
		cells[3][i] = deref(r.MatchedName)
		cells[4][i] = deref(r.PartyID)
		cells[5][i] = deref(r.Gender)
		cells[6][i] = deref(r.DistrictID)
		cells[7][i] = string(r.Level)
		cells[8][i] = FormatScore(r.Score)
	}
	return cells
}

// FormatScore renders a score with at most two decimals, or "" for null.
func FormatScore(score *float64) string {
	if score == nil {
		return ""
	}
	rounded := math.Round(*score*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

func formatLegislature(leg *int) string {
	if leg == nil {
		return ""
	}
	return strconv.Itoa(*leg)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// OptionsFromConfig maps the [matching] and [lexicon] sections onto engine
// options.
func OptionsFromConfig(cfg *config.Config) matching.Options {
	if cfg == nil {
		return matching.DefaultOptions()
	}
	return matching.Options{
		FuzzyThreshold: cfg.Matching.FuzzyThreshold,
		MinLegislature: cfg.Matching.LegislatureMin,
		MaxLegislature: cfg.Matching.LegislatureMax,
		Legislatures:   append([]int(nil), cfg.Matching.Legislatures...),
		Workers:        cfg.Matching.Workers,
		Verbose:        cfg.Matching.Verbose,
		Lexicon:        cfg.SpeakerLexicon(),
	}
}

// LoadIndex returns the configured period table, or the bundled one when
// paths.legislatures_file is empty.
func LoadIndex(cfg *config.Config) (*legislature.Index, error) {
	if cfg == nil || cfg.Paths.LegislaturesFile == "" {
		return legislature.Default()
	}
	return legislature.LoadFile(cfg.Paths.LegislaturesFile)
}
