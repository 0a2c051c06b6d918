// Package textutil provides the character-level text canonicalization shared by
// speaker labels, legislator names, and lexicon entries.
//
// The primary use cases are:
//   - Folding text for accent- and case-insensitive comparison
//   - Deleting every rune outside a-z and space when canonicalizing names
//   - Splitting and re-joining whitespace tokens for order-insensitive scoring
//
// Diacritics are removed by NFD decomposition followed by dropping nonspacing
// marks, so "Bérubé" folds to "berube". Letters without a decomposition (œ, ß)
// are left intact by Fold and deleted by KeepLetters.
package textutil
