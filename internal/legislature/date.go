package legislature

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical day format used by period tables and sessions.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseDate parses an event date. The calendar day is taken in the value's own
// offset, so "2019-02-05T23:30:00-05:00" is 2019-02-05.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("parse date: empty value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: unrecognized format", value)
}

// CanonicalDate formats raw as YYYY-MM-DD, or returns it trimmed when it does
// not parse.
func CanonicalDate(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return t.Format(DateLayout)
}
