package similarity

import (
	"unicode/utf8"

	"github.com/adrg/strutil/metrics"

	"pplmatch/internal/textutil"
)

// Metric exposes the primitive normalized edit similarities.
type Metric interface {
	Ratio(a, b string) float64
	PartialRatio(a, b string) float64
	TokenSortRatio(a, b string) float64
}

// IndelMetric scores strings by insertion/deletion distance: a substitution
// costs two edits, so ratio = 100 * (1 - dist / (len(a)+len(b))).
type IndelMetric struct {
	lev *metrics.Levenshtein
}

// NewIndelMetric returns a case-sensitive Indel metric. Inputs are expected
// to be normalized already.
func NewIndelMetric() *IndelMetric {
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = true
	lev.InsertCost = 1
	lev.DeleteCost = 1
	lev.ReplaceCost = 2
	return &IndelMetric{lev: lev}
}

// Ratio is the normalized Indel similarity of a and b.
func (m *IndelMetric) Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dist := m.lev.Distance(a, b)
	return 100 * (1 - float64(dist)/float64(total))
}

// PartialRatio slides the shorter string across the longer one and keeps the
// best Ratio. Windows hanging off either edge of the longer string are
// included, so a short prefix or suffix overlap still scores.
func (m *IndelMetric) PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}
	needle := string(short)
	best := 0.0
	consider := func(window []rune) bool {
		if score := m.Ratio(needle, string(window)); score > best {
			best = score
		}
		return best >= 100
	}
	n := len(short)
	for i := 1; i < n; i++ {
		if consider(long[:i]) {
			return 100
		}
	}
	for i := 0; i+n <= len(long); i++ {
		if consider(long[i : i+n]) {
			return 100
		}
	}
	for i := len(long) - n + 1; i < len(long); i++ {
		if consider(long[i:]) {
			return 100
		}
	}
	return best
}

// TokenSortRatio is Ratio after sorting the whitespace-delimited tokens of
// both strings.
func (m *IndelMetric) TokenSortRatio(a, b string) float64 {
	return m.Ratio(textutil.SortTokens(a), textutil.SortTokens(b))
}
