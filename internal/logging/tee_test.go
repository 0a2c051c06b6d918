package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct{ noopHandler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestNewTeeHandlerCollapsesMissingSides(t *testing.T) {
	var buf bytes.Buffer
	console := slog.NewTextHandler(&buf, nil)

	if _, ok := newTeeHandler(nil, nil).(noopHandler); !ok {
		t.Fatal("expected noop handler when both sides are nil")
	}
	if got := newTeeHandler(console, nil); got != console {
		t.Fatalf("expected console handler, got %T", got)
	}
	if got := newTeeHandler(nil, console); got != console {
		t.Fatalf("expected file handler, got %T", got)
	}
}

func TestTeeHandlerFiltersEachSide(t *testing.T) {
	var console, file bytes.Buffer
	h := newTeeHandler(
		slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With(String(FieldComponent, "matching"))

	logger.Debug("fuzzy candidate", Float64("score", 91.5))
	logger.Info("matching complete", Rows(4))

	if strings.Contains(console.String(), "fuzzy candidate") {
		t.Fatalf("debug record reached console: %q", console.String())
	}
	if !strings.Contains(console.String(), "matching complete") {
		t.Fatalf("console missing info record: %q", console.String())
	}
	for _, want := range []string{"fuzzy candidate", "matching complete", "component=matching", "rows=4"} {
		if !strings.Contains(file.String(), want) {
			t.Fatalf("file output missing %q: %q", want, file.String())
		}
	}
}

func TestTeeHandlerEnabledIfEitherSideIs(t *testing.T) {
	var buf bytes.Buffer
	h := newTeeHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled through the file side")
	}
}

func TestTeeHandlerJoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	h := newTeeHandler(slog.NewTextHandler(&buf, nil), failingHandler{})
	record := slog.NewRecord(time.Now(), slog.LevelInfo, "saved match run", 0)

	err := h.Handle(context.Background(), record)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected file error, got %v", err)
	}
	if !strings.Contains(buf.String(), "saved match run") {
		t.Fatalf("console should still receive the record: %q", buf.String())
	}
}

func TestTeeHandlerWithGroup(t *testing.T) {
	var console, file bytes.Buffer
	h := newTeeHandler(slog.NewTextHandler(&console, nil), slog.NewTextHandler(&file, nil))
	slog.New(h).WithGroup("run").Info("evaluation complete", Int("pairs", 3))

	for name, buf := range map[string]*bytes.Buffer{"console": &console, "file": &file} {
		if !strings.Contains(buf.String(), "run.pairs=3") {
			t.Fatalf("%s output missing grouped attribute: %q", name, buf.String())
		}
	}
}
