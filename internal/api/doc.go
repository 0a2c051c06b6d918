// Package api exposes pplmatch's public operations and the workflows the CLI
// builds on.
//
// # Operations
//
// Match: corpus table + legislator table -> the corpus with nine result
// columns appended (legislature, speaker_category, speaker_normalized,
// matched_name, party_id, gender, district_id, match_level, match_score).
// Row count and order are preserved.
//
// Evaluate: matched table + gold table -> evaluation.Report.
//
// # Workflows
//
// RunMatch, RunEvaluate, ImportTable, ListRuns, ShowRun, and DeleteRun resolve
// source references (CSV paths, db:<table>, run:<id>) against the configured
// SQLite store and optionally persist results there.
//
// # Design Notes
//
// View DTOs use camelCase JSON tags for CLI --json output. Timestamps use
// RFC3339 with milliseconds. Null result fields are written as empty CSV cells.
package api
