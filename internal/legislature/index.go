package legislature

import (
	"fmt"
	"sort"
	"time"

	"pplmatch/internal/faults"
)

// Period is one legislature's inclusive date interval.
type Period struct {
	Legislature int
	Start       time.Time
	End         time.Time
}

// Contains reports whether day falls inside the period, bounds included.
func (p Period) Contains(day time.Time) bool {
	day = truncateDay(day)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Index resolves dates against a validated, sorted period table.
type Index struct {
	periods []Period
}

// Load validates periods and builds an Index. Periods must be sorted by start
// date, must not overlap, and must each end on or after their start.
func Load(periods []Period) (*Index, error) {
	if len(periods) == 0 {
		return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load", "period table is empty", nil)
	}
	out := make([]Period, len(periods))
	seen := make(map[int]struct{}, len(periods))
	for i, p := range periods {
		p.Start = truncateDay(p.Start)
		p.End = truncateDay(p.End)
		if p.Legislature <= 0 {
			return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load",
				fmt.Sprintf("period %d: legislature must be positive, got %d", i, p.Legislature), nil)
		}
		if _, dup := seen[p.Legislature]; dup {
			return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load",
				fmt.Sprintf("legislature %d listed more than once", p.Legislature), nil)
		}
		seen[p.Legislature] = struct{}{}
		if p.End.Before(p.Start) {
			return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load",
				fmt.Sprintf("legislature %d ends (%s) before it starts (%s)", p.Legislature, formatDay(p.End), formatDay(p.Start)), nil)
		}
		if i > 0 {
			prev := out[i-1]
			if p.Start.Before(prev.Start) {
				return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load",
					fmt.Sprintf("periods not sorted: legislature %d starts before legislature %d", p.Legislature, prev.Legislature), nil)
			}
			if !p.Start.After(prev.End) {
				return nil, faults.Wrap(faults.ErrConfiguration, "legislature", "load",
					fmt.Sprintf("legislature %d overlaps legislature %d", p.Legislature, prev.Legislature), nil)
			}
		}
		out[i] = p
	}
	return &Index{periods: out}, nil
}

// DateToLegislature returns the legislature whose period contains t. The
// boolean is false before the first period, after the last, and in gaps.
func (x *Index) DateToLegislature(t time.Time) (int, bool) {
	if x == nil || len(x.periods) == 0 || t.IsZero() {
		return 0, false
	}
	day := truncateDay(t)
	i := sort.Search(len(x.periods), func(i int) bool {
		return !x.periods[i].End.Before(day)
	})
	if i >= len(x.periods) {
		return 0, false
	}
	if day.Before(x.periods[i].Start) {
		return 0, false
	}
	return x.periods[i].Legislature, true
}

// Resolve parses raw as a date and looks it up. Unparseable dates resolve to
// no legislature.
func (x *Index) Resolve(raw string) (int, bool) {
	t, err := ParseDate(raw)
	if err != nil {
		return 0, false
	}
	return x.DateToLegislature(t)
}

// Periods returns a copy of the period table.
func (x *Index) Periods() []Period {
	if x == nil {
		return nil
	}
	out := make([]Period, len(x.periods))
	copy(out, x.periods)
	return out
}

// Lookup returns the period for a legislature number.
func (x *Index) Lookup(legislature int) (Period, bool) {
	if x == nil {
		return Period{}, false
	}
	for _, p := range x.periods {
		if p.Legislature == legislature {
			return p, true
		}
	}
	return Period{}, false
}

func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func formatDay(t time.Time) string {
	return t.Format(DateLayout)
}
