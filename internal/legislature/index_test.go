package legislature_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pplmatch/internal/faults"
	"pplmatch/internal/legislature"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(legislature.DateLayout, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestDefaultDateToLegislature(t *testing.T) {
	idx, err := legislature.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	tests := []struct {
		date   string
		want   int
		wantOK bool
	}{
		{"2018-10-01", 42, true},
		{"2019-02-05", 42, true},
		{"2022-08-28", 42, true},
		{"2023-01-15", 43, true},
		{"1994-09-12", 35, true},
		{"1998-10-28", 35, true},
		{"1998-11-28", 0, false},
		{"1998-11-30", 36, true},
		{"1990-01-01", 0, false},
		{"2099-01-01", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got, ok := idx.DateToLegislature(day(t, tt.date))
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("DateToLegislature(%s) = (%d, %v), want (%d, %v)", tt.date, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDefaultCoversEveryInScopeLegislature(t *testing.T) {
	idx, err := legislature.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	periods := idx.Periods()
	if len(periods) != 9 {
		t.Fatalf("expected 9 periods, got %d", len(periods))
	}
	for i, p := range periods {
		if p.Legislature != 35+i {
			t.Fatalf("period %d is legislature %d", i, p.Legislature)
		}
		if got, ok := idx.DateToLegislature(p.Start); !ok || got != p.Legislature {
			t.Fatalf("start of %d resolved to (%d, %v)", p.Legislature, got, ok)
		}
		if got, ok := idx.DateToLegislature(p.End); !ok || got != p.Legislature {
			t.Fatalf("end of %d resolved to (%d, %v)", p.Legislature, got, ok)
		}
	}

	periods[0].Legislature = 99
	if idx.Periods()[0].Legislature != 35 {
		t.Fatal("Periods returned internal slice")
	}
}

func TestResolve(t *testing.T) {
	idx, err := legislature.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	tests := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"2019-02-05", 42, true},
		{" 2019-02-05 ", 42, true},
		{"2019-02-05T10:00:00Z", 42, true},
		{"2019-02-05T23:30:00-05:00", 42, true},
		{"2019-02-05 14:00:00", 42, true},
		{"2019/02/05", 42, true},
		{"not a date", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := idx.Resolve(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Resolve(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseDateKeepsCalendarDayInOffset(t *testing.T) {
	got, err := legislature.ParseDate("2022-10-02T23:30:00-05:00")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got.Format(legislature.DateLayout) != "2022-10-02" {
		t.Fatalf("ParseDate day = %s", got.Format(legislature.DateLayout))
	}
	if legislature.CanonicalDate("2022/10/02") != "2022-10-02" {
		t.Fatalf("CanonicalDate = %q", legislature.CanonicalDate("2022/10/02"))
	}
	if legislature.CanonicalDate(" junk ") != "junk" {
		t.Fatalf("CanonicalDate(junk) = %q", legislature.CanonicalDate(" junk "))
	}
}

func TestLoadRejectsInvalidTables(t *testing.T) {
	tests := []struct {
		name    string
		periods []legislature.Period
		wantMsg string
	}{
		{name: "empty", periods: nil, wantMsg: "empty"},
		{
			name: "inverted",
			periods: []legislature.Period{
				{Legislature: 1, Start: day(t, "2020-01-10"), End: day(t, "2020-01-01")},
			},
			wantMsg: "ends",
		},
		{
			name: "overlap",
			periods: []legislature.Period{
				{Legislature: 1, Start: day(t, "2020-01-01"), End: day(t, "2020-06-30")},
				{Legislature: 2, Start: day(t, "2020-06-30"), End: day(t, "2020-12-31")},
			},
			wantMsg: "overlaps",
		},
		{
			name: "unsorted",
			periods: []legislature.Period{
				{Legislature: 2, Start: day(t, "2021-01-01"), End: day(t, "2021-12-31")},
				{Legislature: 1, Start: day(t, "2020-01-01"), End: day(t, "2020-12-31")},
			},
			wantMsg: "not sorted",
		},
		{
			name: "duplicate",
			periods: []legislature.Period{
				{Legislature: 1, Start: day(t, "2020-01-01"), End: day(t, "2020-12-31")},
				{Legislature: 1, Start: day(t, "2021-01-01"), End: day(t, "2021-12-31")},
			},
			wantMsg: "more than once",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := legislature.Load(tt.periods)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, faults.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadAllowsSingleDayPeriodAndGap(t *testing.T) {
	idx, err := legislature.Load([]legislature.Period{
		{Legislature: 1, Start: day(t, "2020-01-01"), End: day(t, "2020-01-01")},
		{Legislature: 2, Start: day(t, "2020-01-03"), End: day(t, "2020-01-05")},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := idx.DateToLegislature(day(t, "2020-01-01")); !ok || got != 1 {
		t.Fatalf("single day period = (%d, %v)", got, ok)
	}
	if _, ok := idx.DateToLegislature(day(t, "2020-01-02")); ok {
		t.Fatal("gap day resolved")
	}
	if p, ok := idx.Lookup(2); !ok || !p.Contains(day(t, "2020-01-04")) {
		t.Fatalf("Lookup(2) = %+v, %v", p, ok)
	}
}

func TestDecodeValidatesSchema(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not an array", `{"legislature": 1}`},
		{"empty array", `[]`},
		{"missing end", `[{"legislature": 1, "start_date": "2020-01-01"}]`},
		{"bad date format", `[{"legislature": 1, "start_date": "01/01/2020", "end_date": "2020-12-31"}]`},
		{"unknown field", `[{"legislature": 1, "start_date": "2020-01-01", "end_date": "2020-12-31", "x": 1}]`},
		{"trailing content", `[{"legislature": 1, "start_date": "2020-01-01", "end_date": "2020-12-31"}] []`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := legislature.Decode(strings.NewReader(tt.doc)); !errors.Is(err, faults.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestEncodeRoundTripsThroughLoadFile(t *testing.T) {
	idx, err := legislature.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	var buf bytes.Buffer
	if err := legislature.Encode(&buf, idx.Periods()); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "periods.json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loaded, err := legislature.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got, ok := loaded.Resolve("2023-01-15"); !ok || got != 43 {
		t.Fatalf("Resolve after reload = (%d, %v)", got, ok)
	}

	if _, err := legislature.LoadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
}
