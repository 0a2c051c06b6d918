package similarity

import (
	"fmt"
	"math"

	"pplmatch/internal/faults"
)

// Scorer produces the composite name scores consumed by fuzzy matching.
type Scorer interface {
	FullNameScore(a, b string) float64
	LastNameScore(a, b string) float64
}

// Weighted combines Metric primitives with fixed weights.
type Weighted struct {
	Metric Metric
}

// NewWeighted returns a Weighted scorer backed by the Indel metric.
func NewWeighted() *Weighted {
	return &Weighted{Metric: NewIndelMetric()}
}

// FullNameScore = 0.6*token_sort + 0.4*ratio.
func (w *Weighted) FullNameScore(a, b string) float64 {
	return 0.6*w.Metric.TokenSortRatio(a, b) + 0.4*w.Metric.Ratio(a, b)
}

// LastNameScore = 0.5*partial + 0.3*token_sort + 0.2*ratio.
func (w *Weighted) LastNameScore(a, b string) float64 {
	return 0.5*w.Metric.PartialRatio(a, b) +
		0.3*w.Metric.TokenSortRatio(a, b) +
		0.2*w.Metric.Ratio(a, b)
}

// Probe checks that scorer is usable: identical names must score 100 and
// every score must stay within [0, 100].
func Probe(scorer Scorer) (err error) {
	if scorer == nil {
		return faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe", "no scorer configured", nil)
	}
	if w, ok := scorer.(*Weighted); ok && (w == nil || w.Metric == nil) {
		return faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe", "weighted scorer has no metric", nil)
	}
	defer func() {
		if r := recover(); r != nil {
			err = faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe", fmt.Sprintf("scorer panicked: %v", r), nil)
		}
	}()

	const sample = "legault"
	if got := scorer.FullNameScore(sample, sample); !approx(got, 100) {
		return faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe",
			fmt.Sprintf("identical full names scored %.2f", got), nil)
	}
	if got := scorer.LastNameScore(sample, sample); !approx(got, 100) {
		return faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe",
			fmt.Sprintf("identical last names scored %.2f", got), nil)
	}
	for _, got := range []float64{
		scorer.FullNameScore("francois legault", "dominique anglade"),
		scorer.LastNameScore("soucy", "chantal soucy"),
	} {
		if math.IsNaN(got) || got < 0 || got > 100 {
			return faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe",
				fmt.Sprintf("score %.2f outside [0, 100]", got), nil)
		}
	}
	return nil
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
