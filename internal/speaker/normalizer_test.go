package speaker_test

import (
	"testing"

	"pplmatch/internal/speaker"
)

func TestClassify(t *testing.T) {
	n := speaker.NewNormalizer(speaker.QuebecLexicon())
	tests := []struct {
		input string
		want  speaker.Category
	}{
		{"", speaker.CategoryEmpty},
		{"  ", speaker.CategoryEmpty},
		{"\t\n", speaker.CategoryEmpty},
		{"Des Voix", speaker.CategoryCrowd},
		{"des voix", speaker.CategoryCrowd},
		{"Le Président", speaker.CategoryRole},
		{"La Vice-Présidente", speaker.CategoryRole},
		{"Le President suppleant", speaker.CategoryRole},
		{"Le Vice-Président (M. Ouimet)", speaker.CategoryRole},
		{"Une Voix", speaker.CategoryRole},
		{"M. Legault", speaker.CategoryPerson},
		{"Mme Soucy", speaker.CategoryPerson},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := n.Classify(tt.input); got != tt.want {
				t.Fatalf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePerson(t *testing.T) {
	n := speaker.NewNormalizer(speaker.QuebecLexicon())
	tests := []struct {
		input string
		want  string
	}{
		{"M. Bérubé", "berube"},
		{"Mme Soucy", "soucy"},
		{"M.Caire", "caire"},
		{"15 725 M. Marissal", "marissal"},
		{"Picard, Chauveau", "picard"},
		{"Legault (réplique)", "legault"},
		{"Legault (replique)", "legault"},
		{"M. Legault - suite", "legault"},
		{"Mme Anglade (en remplacement)", "anglade"},
		{"Marie-Victorin Hébert", "marievictorin hebert"},
		{"M. Mme Soucy", "soucy"},
		{"Mrazek", "mrazek"},
		{"MmeSoucy", "soucy"},
		{"mme Soucy", "soucy"},
		{"MME SOUCY", "soucy"},
		{"m.caire", "caire"},
		{"M.-Mme Soucy", "soucy"},
		{"mrazek", "mrazek"},
		{"M. François   Legault", "francois legault"},
		{"42", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := n.NormalizePerson(tt.input); got != tt.want {
				t.Fatalf("NormalizePerson(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePersonIdempotent(t *testing.T) {
	n := speaker.NewNormalizer(speaker.QuebecLexicon())
	inputs := []string{
		"M. Bérubé",
		"Mme Soucy",
		"M.Caire",
		"15 725 M. Marissal",
		"Picard, Chauveau",
		"Legault (réplique)",
		"Marie-Victorin Hébert",
		"M. Mme Soucy",
		"M.-Mme Soucy",
		"mme soucy",
		"mr. smith",
		"Mr Smith",
	}
	for _, input := range inputs {
		once := n.NormalizePerson(input)
		if twice := n.NormalizePerson(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalize(t *testing.T) {
	n := speaker.NewNormalizer(speaker.QuebecLexicon())

	got := n.Normalize("M. François Legault")
	if got.Category != speaker.CategoryPerson || got.Name != "francois legault" || got.LastName != "legault" {
		t.Fatalf("unexpected person normalization: %+v", got)
	}

	role := n.Normalize("Le Président")
	if role.Category != speaker.CategoryRole || role.Name != "" || role.LastName != "" {
		t.Fatalf("expected empty names for role, got %+v", role)
	}
}

func TestExtractLastName(t *testing.T) {
	if got := speaker.ExtractLastName("marievictorin hebert"); got != "hebert" {
		t.Fatalf("ExtractLastName() = %q", got)
	}
	if got := speaker.ExtractLastName("legault"); got != "legault" {
		t.Fatalf("ExtractLastName(single) = %q", got)
	}
}

func TestNormalizeMemberName(t *testing.T) {
	if got := speaker.NormalizeMemberName("Éric Lefebvre"); got != "eric lefebvre" {
		t.Fatalf("NormalizeMemberName() = %q", got)
	}
	if got := speaker.NormalizeMemberName("Marie-Victorin Hébert"); got != "marievictorin hebert" {
		t.Fatalf("NormalizeMemberName(hyphen) = %q", got)
	}
}

func TestCustomLexicon(t *testing.T) {
	lex := speaker.Lexicon{
		Roles:      []string{"the speaker"},
		Crowds:     []string{"some hon. members"},
		Honorifics: []string{"Mr.", "Ms."},
		Actions:    []string{"continuing"},
	}
	n := speaker.NewNormalizer(lex)

	if got := n.Classify("The Speaker"); got != speaker.CategoryRole {
		t.Fatalf("expected role, got %q", got)
	}
	if got := n.Classify("Some Hon. Members"); got != speaker.CategoryCrowd {
		t.Fatalf("expected crowd, got %q", got)
	}
	if got := n.Classify("Le Président"); got != speaker.CategoryPerson {
		t.Fatalf("expected default lexicon to be absent, got %q", got)
	}
	if got := n.NormalizePerson("Ms. Freeland (continuing)"); got != "freeland" {
		t.Fatalf("NormalizePerson() = %q", got)
	}
}

func TestNewNormalizerCopiesLexicon(t *testing.T) {
	lex := speaker.QuebecLexicon()
	n := speaker.NewNormalizer(lex)
	lex.Crowds[0] = "le président"

	if got := n.Classify("Des voix"); got != speaker.CategoryCrowd {
		t.Fatalf("mutating the lexicon after construction changed behaviour: %q", got)
	}
}
