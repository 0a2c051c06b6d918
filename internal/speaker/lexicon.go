package speaker

// Lexicon holds the locale-specific word lists used to classify and clean
// speaker labels. Entries are compared after folding (lowercase, accents
// removed, whitespace collapsed), except Honorifics which are matched as
// literal prefixes.
type Lexicon struct {
	// Roles are complete labels naming an institutional title.
	Roles []string
	// RolePrefixes classify any label starting with them as a role.
	RolePrefixes []string
	// Crowds are complete labels naming a collective voice.
	Crowds []string
	// Honorifics are stripped from the start of person labels.
	Honorifics []string
	// Actions are trailing annotations such as "(réplique)".
	Actions []string
}

// QuebecLexicon returns the French lexicon for Quebec National Assembly
// transcripts.
func QuebecLexicon() Lexicon {
	return Lexicon{
		Roles: []string{
			"le président",
			"la présidente",
			"le vice-président",
			"la vice-présidente",
			"le président suppléant",
			"la présidente suppléante",
			"une voix",
		},
		RolePrefixes: []string{
			"le président",
			"la présidente",
			"le vice-président",
			"la vice-présidente",
		},
		Crowds:     []string{"des voix"},
		Honorifics: []string{"M.", "Mme", "Mme.", "Mr.", "Mr"},
		Actions: []string{
			"réplique",
			"suite",
			"en remplacement",
			"par intérim",
			"suppléant",
			"suppléante",
		},
	}
}

// Clone returns a deep copy so callers cannot mutate a lexicon in use.
func (l Lexicon) Clone() Lexicon {
	return Lexicon{
		Roles:        cloneStrings(l.Roles),
		RolePrefixes: cloneStrings(l.RolePrefixes),
		Crowds:       cloneStrings(l.Crowds),
		Honorifics:   cloneStrings(l.Honorifics),
		Actions:      cloneStrings(l.Actions),
	}
}

// IsZero reports whether every list is empty.
func (l Lexicon) IsZero() bool {
	return len(l.Roles) == 0 && len(l.RolePrefixes) == 0 && len(l.Crowds) == 0 &&
		len(l.Honorifics) == 0 && len(l.Actions) == 0
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
