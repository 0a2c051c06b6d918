package faults_test

import (
	"errors"
	"strings"
	"testing"

	"pplmatch/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrConfiguration, "legislature", "load", "periods overlap", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"legislature", "load", "periods overlap"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "matching failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{faults.Wrap(faults.ErrConfiguration, "dataset", "require", "missing speaker", nil), "configuration"},
		{faults.Wrap(faults.ErrValidation, "evaluation", "", "", nil), "validation"},
		{faults.Wrap(faults.ErrSimilarityUnavailable, "similarity", "probe", "", nil), "similarity"},
		{faults.Wrap(faults.ErrNotFound, "store", "run", "", nil), "not_found"},
		{errors.New("other"), "internal"},
	}
	for _, tt := range tests {
		if got := faults.Kind(tt.err); got != tt.want {
			t.Fatalf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
