package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"pplmatch/internal/evaluation"
	"pplmatch/internal/faults"
	"pplmatch/internal/matching"
	"pplmatch/internal/textutil"
)

// Column names shared by input and output tables.
const (
	ColSpeaker       = "speaker"
	ColEventDate     = "event_date"
	ColFullName      = "full_name"
	ColOtherNames    = "other_names"
	ColPartyID       = "party_id"
	ColGender        = "gender"
	ColLegislatureID = "legislature_id"
	ColDistrictID    = "district_id"
	ColMatchedName   = "matched_name"
	ColCorrectName   = "correct_name"
)

// OtherNamesSeparator splits the other_names cell.
const OtherNamesSeparator = ";"

// Utterances converts a corpus table. It requires speaker and event_date.
func (t Table) Utterances() ([]matching.Utterance, error) {
	if err := t.Require(ColSpeaker, ColEventDate); err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	speaker, date := t.Index(ColSpeaker), t.Index(ColEventDate)
	out := make([]matching.Utterance, len(t.Rows))
	for i := range t.Rows {
		out[i] = matching.Utterance{
			Speaker:   t.Value(i, speaker),
			EventDate: t.Value(i, date),
		}
	}
	return out, nil
}

// Legislators converts a legislator table. It requires full_name, party_id,
// gender, and legislature_id; other_names and district_id are optional.
func (t Table) Legislators() ([]matching.Legislator, error) {
	if err := t.Require(ColFullName, ColPartyID, ColGender, ColLegislatureID); err != nil {
		return nil, fmt.Errorf("legislators: %w", err)
	}
	var (
		full   = t.Index(ColFullName)
		party  = t.Index(ColPartyID)
		gender = t.Index(ColGender)
		leg    = t.Index(ColLegislatureID)
		others = t.Index(ColOtherNames)
		dist   = t.Index(ColDistrictID)
	)
	out := make([]matching.Legislator, 0, len(t.Rows))
	for i := range t.Rows {
		legID, err := parseLegislature(t.Value(i, leg))
		if err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "dataset", "legislators",
				fmt.Sprintf("row %d: legislature_id", i+1), err)
		}
		out = append(out, matching.Legislator{
			FullName:      strings.TrimSpace(t.Value(i, full)),
			PartyID:       strings.TrimSpace(t.Value(i, party)),
			Gender:        strings.TrimSpace(t.Value(i, gender)),
			LegislatureID: legID,
			OtherNames:    textutil.SplitList(t.Value(i, others), OtherNamesSeparator),
			DistrictID:    strings.TrimSpace(t.Value(i, dist)),
		})
	}
	return out, nil
}

// Predictions converts match output for evaluation. It requires speaker,
// event_date, and matched_name.
func (t Table) Predictions() ([]evaluation.Prediction, error) {
	if err := t.Require(ColSpeaker, ColEventDate, ColMatchedName); err != nil {
		return nil, fmt.Errorf("matched: %w", err)
	}
	speaker, date, name := t.Index(ColSpeaker), t.Index(ColEventDate), t.Index(ColMatchedName)
	out := make([]evaluation.Prediction, len(t.Rows))
	for i := range t.Rows {
		out[i] = evaluation.Prediction{
			Speaker:     t.Value(i, speaker),
			EventDate:   t.Value(i, date),
			MatchedName: nullable(t.Value(i, name)),
		}
	}
	return out, nil
}

// Annotations converts a gold table. It requires speaker, event_date, and
// correct_name.
func (t Table) Annotations() ([]evaluation.Annotation, error) {
	if err := t.Require(ColSpeaker, ColEventDate, ColCorrectName); err != nil {
		return nil, fmt.Errorf("gold: %w", err)
	}
	speaker, date, name := t.Index(ColSpeaker), t.Index(ColEventDate), t.Index(ColCorrectName)
	out := make([]evaluation.Annotation, len(t.Rows))
	for i := range t.Rows {
		out[i] = evaluation.Annotation{
			Speaker:     t.Value(i, speaker),
			EventDate:   t.Value(i, date),
			CorrectName: nullable(t.Value(i, name)),
		}
	}
	return out, nil
}

// parseLegislature accepts integers and integral floats ("42.0"), which is
// how spreadsheet exports often render the column.
func parseLegislature(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty value")
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	return int(f), nil
}

// nullable maps the textual nulls written by dataframe tools to "".
func nullable(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "na", "nan", "null", "none", "<na>":
		return ""
	}
	return s
}
