package similarity_test

import (
	"errors"
	"math"
	"testing"

	"pplmatch/internal/faults"
	"pplmatch/internal/similarity"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestIndelMetricRatio(t *testing.T) {
	m := similarity.NewIndelMetric()
	tests := []struct {
		a, b string
		want float64
	}{
		{"legault", "legault", 100},
		{"", "", 100},
		{"abc", "", 0},
		{"abc", "abd", 66.67},
		{"berube", "berub", 90.91},
		{"abc", "xyz", 0},
	}
	for _, tt := range tests {
		if got := m.Ratio(tt.a, tt.b); !near(got, tt.want) {
			t.Errorf("Ratio(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIndelMetricPartialRatio(t *testing.T) {
	m := similarity.NewIndelMetric()
	tests := []struct {
		a, b string
		want float64
	}{
		{"soucy", "chantal soucy", 100},
		{"chantal soucy", "soucy", 100},
		{"abcd", "xxab", 66.67},
		{"", "", 100},
		{"", "abc", 0},
	}
	for _, tt := range tests {
		if got := m.PartialRatio(tt.a, tt.b); !near(got, tt.want) {
			t.Errorf("PartialRatio(%q, %q) = %.2f, want %.2f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIndelMetricTokenSortRatio(t *testing.T) {
	m := similarity.NewIndelMetric()
	if got := m.TokenSortRatio("legault francois", "francois  legault"); got != 100 {
		t.Fatalf("TokenSortRatio = %.2f, want 100", got)
	}
	if got := m.Ratio("legault francois", "francois legault"); got >= 100 {
		t.Fatalf("Ratio should be order sensitive, got %.2f", got)
	}
}

type fixedMetric struct {
	ratio, partial, tokenSort float64
}

func (f fixedMetric) Ratio(string, string) float64          { return f.ratio }
func (f fixedMetric) PartialRatio(string, string) float64   { return f.partial }
func (f fixedMetric) TokenSortRatio(string, string) float64 { return f.tokenSort }

func TestWeightedScores(t *testing.T) {
	w := &similarity.Weighted{Metric: fixedMetric{ratio: 50, partial: 100, tokenSort: 80}}
	if got := w.FullNameScore("a", "b"); !near(got, 0.6*80+0.4*50) {
		t.Fatalf("FullNameScore = %.2f", got)
	}
	if got := w.LastNameScore("a", "b"); !near(got, 0.5*100+0.3*80+0.2*50) {
		t.Fatalf("LastNameScore = %.2f", got)
	}
}

func TestWeightedScoresStayInRange(t *testing.T) {
	w := similarity.NewWeighted()
	pairs := [][2]string{
		{"francois legault", "legault francois"},
		{"berube", "pascal berube"},
		{"x", "dominique anglade"},
		{"", "soucy"},
	}
	for _, p := range pairs {
		for _, got := range []float64{w.FullNameScore(p[0], p[1]), w.LastNameScore(p[0], p[1])} {
			if got < 0 || got > 100 {
				t.Fatalf("score for %q/%q out of range: %.2f", p[0], p[1], got)
			}
		}
	}
	if got := w.FullNameScore("soucy", "soucy"); got != 100 {
		t.Fatalf("identical full names = %.2f", got)
	}
}

type brokenScorer struct{}

func (brokenScorer) FullNameScore(string, string) float64 { return 42 }
func (brokenScorer) LastNameScore(string, string) float64 { return 42 }

type panickingScorer struct{}

func (panickingScorer) FullNameScore(string, string) float64 { panic("backend gone") }
func (panickingScorer) LastNameScore(string, string) float64 { panic("backend gone") }

func TestProbe(t *testing.T) {
	if err := similarity.Probe(similarity.NewWeighted()); err != nil {
		t.Fatalf("Probe(default) = %v", err)
	}
	for name, scorer := range map[string]similarity.Scorer{
		"nil":       nil,
		"no metric": &similarity.Weighted{},
		"broken":    brokenScorer{},
		"panicking": panickingScorer{},
	} {
		t.Run(name, func(t *testing.T) {
			err := similarity.Probe(scorer)
			if !errors.Is(err, faults.ErrSimilarityUnavailable) {
				t.Fatalf("expected similarity unavailable, got %v", err)
			}
		})
	}
}
