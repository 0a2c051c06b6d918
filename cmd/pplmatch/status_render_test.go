package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	plain := renderStatusLine("Matched", statusOK, "3 (60.0%)", false)
	if plain != "  Matched:       [OK] 3 (60.0%)" {
		t.Fatalf("unexpected plain line %q", plain)
	}
	colored := renderStatusLine("Unmatched", statusWarn, "2", true)
	if !strings.HasPrefix(colored, ansiYellow) || !strings.HasSuffix(colored, ansiReset) {
		t.Fatalf("expected yellow line, got %q", colored)
	}
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestMetricKindAndPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  statusKind
	}{
		{1, statusOK},
		{0.9, statusOK},
		{0.75, statusWarn},
		{0.2, statusError},
	}
	for _, tt := range tests {
		if got := metricKind(tt.value); got != tt.want {
			t.Fatalf("metricKind(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if percent(1, 3) != "33.3%" || percent(0, 0) != "0.0%" {
		t.Fatalf("unexpected percent output %q %q", percent(1, 3), percent(0, 0))
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"Level", "Rows"}, [][]string{{"fuzzy"}}, []columnAlignment{alignLeft, alignRight}, []string{"total", "1"})
	for _, want := range []string{"level", "fuzzy", "total"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil, nil) != "" {
		t.Fatal("expected empty render without headers")
	}
}
