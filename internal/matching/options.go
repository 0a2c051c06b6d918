package matching

import (
	"fmt"
	"runtime"
	"sort"

	"pplmatch/internal/faults"
	"pplmatch/internal/speaker"
)

// Options configures an Engine.
type Options struct {
	// FuzzyThreshold is the minimum composite score (0-100) for a fuzzy match.
	// Zero is a real threshold that accepts any unique best candidate; start
	// from DefaultOptions for the usual 85.
	FuzzyThreshold float64
	// MinLegislature and MaxLegislature bound the legislatures in scope.
	MinLegislature int
	MaxLegislature int
	// Legislatures, when set, replaces the range with an explicit set.
	Legislatures []int
	// Workers bounds parallelism; zero means GOMAXPROCS.
	Workers int
	// Verbose logs sampled progress and the final summary at info level.
	Verbose bool
	// Lexicon drives speaker classification; zero means the Quebec lexicon.
	Lexicon speaker.Lexicon
}

// DefaultOptions returns the Quebec defaults: threshold 85, legislatures 35-43.
func DefaultOptions() Options {
	return Options{
		FuzzyThreshold: 85,
		MinLegislature: 35,
		MaxLegislature: 43,
		Workers:        runtime.GOMAXPROCS(0),
		Lexicon:        speaker.QuebecLexicon(),
	}
}

// Normalized fills the fields whose zero value cannot describe a run: an
// unset legislature range, worker count, or lexicon. The threshold is kept
// as given.
func (o Options) Normalized() Options {
	d := DefaultOptions()

	if o.MinLegislature == 0 && o.MaxLegislature == 0 {
		o.MinLegislature = d.MinLegislature
		o.MaxLegislature = d.MaxLegislature
	}
	if o.Workers <= 0 {
		o.Workers = d.Workers
	}
	if o.Lexicon.IsZero() {
		o.Lexicon = d.Lexicon
	} else {
		o.Lexicon = o.Lexicon.Clone()
	}
	if len(o.Legislatures) > 0 {
		o.Legislatures = dedupeSorted(o.Legislatures)
	}
	return o
}

// Validate rejects option values that cannot describe a run.
func (o Options) Validate() error {
	if o.FuzzyThreshold < 0 || o.FuzzyThreshold > 100 {
		return faults.Wrap(faults.ErrConfiguration, "matching", "options",
			fmt.Sprintf("fuzzy threshold %.2f outside [0, 100]", o.FuzzyThreshold), nil)
	}
	if len(o.Legislatures) == 0 && o.MinLegislature > o.MaxLegislature {
		return faults.Wrap(faults.ErrConfiguration, "matching", "options",
			fmt.Sprintf("legislature range %d-%d is inverted", o.MinLegislature, o.MaxLegislature), nil)
	}
	for _, leg := range o.Legislatures {
		if leg <= 0 {
			return faults.Wrap(faults.ErrConfiguration, "matching", "options",
				fmt.Sprintf("legislature %d must be positive", leg), nil)
		}
	}
	return nil
}

// InScope reports whether leg is one of the requested legislatures.
func (o Options) InScope(leg int) bool {
	if len(o.Legislatures) > 0 {
		i := sort.SearchInts(o.Legislatures, leg)
		return i < len(o.Legislatures) && o.Legislatures[i] == leg
	}
	return leg >= o.MinLegislature && leg <= o.MaxLegislature
}

func dedupeSorted(values []int) []int {
	out := append([]int(nil), values...)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}
	return out[:n]
}
