package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler writes each record to the console handler and to a log file
// handler. The two sides filter levels independently, so the file can keep
// debug detail while the console stays at info.
type teeHandler struct {
	console slog.Handler
	file    slog.Handler
}

func newTeeHandler(console, file slog.Handler) slog.Handler {
	switch {
	case console == nil && file == nil:
		return noopHandler{}
	case file == nil:
		return console
	case console == nil:
		return file
	}
	return &teeHandler{console: console, file: file}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.console.Enabled(ctx, level) || h.file.Enabled(ctx, level)
}

func (h *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	if h.console.Enabled(ctx, record.Level) {
		errs = append(errs, h.console.Handle(ctx, record.Clone()))
	}
	if h.file.Enabled(ctx, record.Level) {
		errs = append(errs, h.file.Handle(ctx, record))
	}
	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{console: h.console.WithAttrs(attrs), file: h.file.WithAttrs(attrs)}
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{console: h.console.WithGroup(name), file: h.file.WithGroup(name)}
}
