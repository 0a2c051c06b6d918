package matching

// Utterance is one transcript row. EventDate is kept raw so an unparseable
// date is a per-row outcome rather than a decode failure.
type Utterance struct {
	Speaker   string
	EventDate string
}

// Legislator is one member record scoped to a legislature. The same person
// may appear once per legislature, or more than once after a party switch.
type Legislator struct {
	FullName      string
	PartyID       string
	Gender        string
	LegislatureID int
	OtherNames    []string
	DistrictID    string
}

// Level is the outcome tier of a match.
type Level string

const (
	LevelDeterministic Level = "deterministic"
	LevelFuzzy         Level = "fuzzy"
	LevelContextual    Level = "contextual"
	LevelAmbiguous     Level = "ambiguous"
	LevelUnmatched     Level = "unmatched"
	LevelRole          Level = "role"
	LevelCrowd         Level = "crowd"
	LevelEmpty         Level = "empty"
)

// Matched reports whether the level identifies a single legislator.
func (l Level) Matched() bool {
	return l == LevelDeterministic || l == LevelFuzzy || l == LevelContextual
}

// DeterministicScore is the score recorded for deterministic and contextual
// matches.
const DeterministicScore = 100.0

// Result is the outcome for one utterance. Nil pointers are nulls.
type Result struct {
	SpeakerCategory   string
	SpeakerNormalized string
	Legislature       *int
	MatchedName       *string
	PartyID           *string
	Gender            *string
	DistrictID        *string
	Level             Level
	Score             *float64
}

// SessionKey groups utterances of one sitting day.
type SessionKey struct {
	Legislature int
	Date        string
}

// Summary counts results by level.
type Summary struct {
	Total         int `json:"total"`
	Deterministic int `json:"deterministic"`
	Fuzzy         int `json:"fuzzy"`
	Contextual    int `json:"contextual"`
	Ambiguous     int `json:"ambiguous"`
	Unmatched     int `json:"unmatched"`
	Roles         int `json:"roles"`
	Crowds        int `json:"crowds"`
	Empty         int `json:"empty"`
}

// Matched is the number of rows resolved to a single legislator.
func (s Summary) Matched() int {
	return s.Deterministic + s.Fuzzy + s.Contextual
}

// Summarize counts results by level.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Level {
		case LevelDeterministic:
			s.Deterministic++
		case LevelFuzzy:
			s.Fuzzy++
		case LevelContextual:
			s.Contextual++
		case LevelAmbiguous:
			s.Ambiguous++
		case LevelUnmatched:
			s.Unmatched++
		case LevelRole:
			s.Roles++
		case LevelCrowd:
			s.Crowds++
		case LevelEmpty:
			s.Empty++
		}
	}
	return s
}
