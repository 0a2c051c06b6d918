// Package matching resolves speaker labels to legislator identities.
//
// An Engine runs three phases over a batch of utterances:
//
//   - Phase 1 resolves each utterance's legislature from its date and
//     classifies the speaker. Rows outside the configured legislatures, and
//     non-person speakers, are final here.
//   - Phase 2 builds the session anchor index: for each (legislature, date)
//     session, the legislators named exactly by full or alternate name.
//   - Phase 3 resolves each person row by full name, alternate name, the
//     last-name pool (disambiguated by session anchors), and finally fuzzy
//     similarity.
//
// Output is positional: result i always describes utterance i.
package matching
