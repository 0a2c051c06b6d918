// Package logging assembles structured slog loggers for pplmatch.
//
// New and NewFromConfig build console or JSON handlers on stderr. When a log
// file is configured, records are also written there as JSON at debug level.
// WithContext tags lines with the active run ID. ProgressSampler throttles
// progress lines during long matching runs.
package logging
