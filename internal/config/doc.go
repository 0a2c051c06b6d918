// Package config loads, normalizes, and validates pplmatch configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the PPLMATCH_DATABASE and
// PPLMATCH_LEGISLATURES_FILE environment fallbacks. Matching thresholds, the
// legislature scope, and the speaker lexicon all live here so the CLI and
// library callers see the same values.
package config
