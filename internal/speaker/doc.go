// Package speaker classifies and normalizes raw speaker labels from
// parliamentary transcripts.
//
// A Normalizer is built from a Lexicon value: the role titles, crowd phrases,
// honorific prefixes, and trailing action annotations of one transcript
// locale. QuebecLexicon supplies the French defaults used by the National
// Assembly's Journal des débats; tests and configuration can substitute
// their own without touching package state.
//
// Classification decides whether a label names a person, an institutional
// role ("Le Président"), a collective voice ("Des voix"), or nothing at all.
// Person labels are then reduced to a canonical form (lowercase, accent-free,
// letters and single spaces) that is directly comparable with legislator
// names canonicalized by NormalizeMemberName.
package speaker
