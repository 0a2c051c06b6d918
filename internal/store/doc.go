// Package store persists source tables, match runs, and evaluations in a
// local SQLite database.
//
// Any user table in the database (a corpus, a legislator list, a gold
// annotation set) can be read back as a dataset.Table. Match runs are saved
// with their options, summary, and full result rows so they can be listed,
// reloaded, and evaluated later. Writes that create runs hold an advisory
// file lock next to the database so concurrent CLI invocations serialize.
//
// The schema is embedded (schema.sql) and versioned; a database created by a
// different schema version is rejected with ErrSchemaMismatch.
package store
