// Package similarity provides the weighted edit-similarity scores used by
// fuzzy matching. Scores are on a 0 to 100 scale.
package similarity
