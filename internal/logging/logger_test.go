package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pplmatch/internal/config"
	"pplmatch/internal/logging"
)

func TestConsoleLoggerWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(logging.String("component", "matching")).Info("matching complete", logging.Int("rows", 12))
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "INFO [matching] – matching complete") {
		t.Fatalf("unexpected header: %q", out)
	}
	if !strings.Contains(out, "    - rows: 12") {
		t.Fatalf("expected rows field, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
}

func TestJSONLoggerUsesStableKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("probe", logging.String("speaker", "M. Legault"))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["level"] != "debug" || entry["msg"] != "probe" || entry["speaker"] != "M. Legault" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if src, _ := entry["source"].(string); !strings.Contains(src, "logger_test.go:") {
		t.Fatalf("expected source at debug level, got %v", entry["source"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNewFromConfigTeesToLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	var console bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &console)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("saved run", logging.String("source", "db:utterances"))

	if !strings.Contains(console.String(), "saved run") {
		t.Fatalf("console missing line: %q", console.String())
	}
	content, err := os.ReadFile(cfg.LogFile())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"saved run"`) {
		t.Fatalf("log file missing JSON line: %q", content)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRunID(context.Background(), "0123456789abcdef")
	if id, ok := logging.RunIDFromContext(ctx); !ok || id != "0123456789abcdef" {
		t.Fatalf("RunIDFromContext = %q, %v", id, ok)
	}
	logging.WithContext(ctx, base).Info("evaluated")
	if !strings.Contains(buf.String(), "run 01234567 – evaluated") {
		t.Fatalf("expected short run id in header, got %q", buf.String())
	}

	if got := logging.WithContext(context.Background(), base); got != base {
		t.Fatal("expected logger unchanged without context fields")
	}
	if logging.WithRunID(context.Background(), "  ") != context.Background() {
		t.Fatal("blank run id should not change context")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "store")
	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Info("discarded")
}

func TestLogFileKeepsDebugBelowConsoleLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pplmatch.log")
	var console bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &console, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("fuzzy candidate", logging.Float64("score", 88))

	if console.Len() != 0 {
		t.Fatalf("console should be empty at warn level, got %q", console.String())
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"fuzzy candidate"`) {
		t.Fatalf("log file missing debug record: %q", content)
	}
}
