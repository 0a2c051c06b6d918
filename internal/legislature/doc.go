// Package legislature maps calendar dates to numbered legislatures.
//
// An Index is built from a table of inclusive [start, end] periods that must
// be sorted by start date and pairwise non-overlapping; gaps between periods
// (campaigns, dissolutions) are legal and resolve to no legislature. Period
// tables are JSON documents validated against an embedded schema before they
// are decoded. Default returns the bundled Quebec National Assembly table.
package legislature
