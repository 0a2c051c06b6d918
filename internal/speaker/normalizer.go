package speaker

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"pplmatch/internal/textutil"
)

// Category classifies a raw speaker label.
type Category string

const (
	CategoryPerson Category = "person"
	CategoryRole   Category = "role"
	CategoryCrowd  Category = "crowd"
	CategoryEmpty  Category = "empty"
)

// Normalized is the derived view of one speaker label.
type Normalized struct {
	Category Category
	// Name is the canonical person name; empty for non-person categories.
	Name string
	// LastName is the final token of Name.
	LastName string
}

var (
	leadingNumbersPattern = regexp.MustCompile(`^[\d\s]+`)
	trailingDistrictRegex = regexp.MustCompile(`,\s*\p{L}.*$`)
)

// maxHonorificPasses bounds repeated prefix stripping ("M. Mme X").
const maxHonorificPasses = 4

// Normalizer classifies and normalizes speaker labels against one Lexicon.
// It is immutable after construction and safe for concurrent use.
type Normalizer struct {
	roles        map[string]struct{}
	rolePrefixes []string
	crowds       map[string]struct{}
	honorifics   []string
	action       *regexp.Regexp
}

// NewNormalizer compiles lex into a Normalizer. The lexicon is copied.
func NewNormalizer(lex Lexicon) *Normalizer {
	lex = lex.Clone()
	n := &Normalizer{
		roles:  foldedSet(lex.Roles),
		crowds: foldedSet(lex.Crowds),
	}
	for _, prefix := range lex.RolePrefixes {
		if folded := textutil.Fold(prefix); folded != "" {
			n.rolePrefixes = append(n.rolePrefixes, folded)
		}
	}
	for _, h := range lex.Honorifics {
		if h = strings.TrimSpace(h); h != "" {
			n.honorifics = append(n.honorifics, h)
		}
	}
	// Longest first so "Mme." wins over "Mme".
	sort.SliceStable(n.honorifics, func(i, j int) bool {
		return len(n.honorifics[i]) > len(n.honorifics[j])
	})
	n.action = compileActionPattern(lex.Actions)
	return n
}

// Classify returns the category of a raw speaker label.
func (n *Normalizer) Classify(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CategoryEmpty
	}
	folded := textutil.Fold(trimmed)
	if _, ok := n.crowds[folded]; ok {
		return CategoryCrowd
	}
	if _, ok := n.roles[folded]; ok {
		return CategoryRole
	}
	for _, prefix := range n.rolePrefixes {
		if strings.HasPrefix(folded, prefix) {
			return CategoryRole
		}
	}
	return CategoryPerson
}

// NormalizePerson reduces a person label to its canonical name. Sequence
// numbers, trailing action annotations, district suffixes, and honorifics are
// removed before canonicalization.
func (n *Normalizer) NormalizePerson(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimSpace(leadingNumbersPattern.ReplaceAllString(name, ""))
	if n.action != nil {
		name = strings.TrimSpace(n.action.ReplaceAllString(name, ""))
	}
	name = strings.TrimSpace(trailingDistrictRegex.ReplaceAllString(name, ""))
	for pass := 0; pass < maxHonorificPasses; pass++ {
		stripped, ok := n.stripHonorific(name)
		if !ok {
			break
		}
		name = stripped
	}
	return textutil.Canonical(name)
}

// Normalize classifies raw and, for person labels, derives the canonical name
// and last name.
func (n *Normalizer) Normalize(raw string) Normalized {
	category := n.Classify(raw)
	if category != CategoryPerson {
		return Normalized{Category: category}
	}
	name := n.NormalizePerson(raw)
	return Normalized{
		Category: category,
		Name:     name,
		LastName: ExtractLastName(name),
	}
}

// stripHonorific removes one honorific prefix, ignoring case. A prefix counts
// only when whitespace, a dot, or a capitalized name follows it, so surnames
// such as "Mrazek" are left alone.
func (n *Normalizer) stripHonorific(name string) (string, bool) {
	for _, h := range n.honorifics {
		if len(name) <= len(h) || !strings.EqualFold(name[:len(h)], h) {
			continue
		}
		rest := name[len(h):]
		next, _ := utf8.DecodeRuneInString(rest)
		switch {
		case unicode.IsSpace(next):
			return strings.TrimLeftFunc(rest, unicode.IsSpace), true
		case strings.HasSuffix(h, "."):
			// Glued forms: "M.Caire", "M.-Mme Soucy".
			return strings.TrimLeftFunc(rest, isNameSeparator), true
		case unicode.IsUpper(next):
			// Glued form without a dot: "MmeSoucy".
			return rest, true
		}
	}
	return name, false
}

func isNameSeparator(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsPunct(r)
}

// ExtractLastName returns the last token of a normalized name, or the whole
// name when it has a single token.
func ExtractLastName(normalized string) string {
	return textutil.LastToken(normalized)
}

// NormalizeMemberName canonicalizes a legislator's full or alternate name the
// same way person labels are canonicalized.
func NormalizeMemberName(fullName string) string {
	return textutil.Canonical(fullName)
}

func foldedSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if folded := textutil.Fold(v); folded != "" {
			set[folded] = struct{}{}
		}
	}
	return set
}

// compileActionPattern matches a trailing annotation opened by a parenthesis
// or dash, in the accented and unaccented spelling of each action.
func compileActionPattern(actions []string) *regexp.Regexp {
	seen := make(map[string]struct{}, len(actions)*2)
	alternatives := make([]string, 0, len(actions)*2)
	for _, action := range actions {
		action = textutil.CollapseSpaces(action)
		if action == "" {
			continue
		}
		for _, variant := range []string{action, textutil.StripAccents(action)} {
			key := strings.ToLower(variant)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			alternatives = append(alternatives, strings.ReplaceAll(regexp.QuoteMeta(variant), " ", `\s+`))
		}
	}
	if len(alternatives) == 0 {
		return nil
	}
	sort.SliceStable(alternatives, func(i, j int) bool {
		return len(alternatives[i]) > len(alternatives[j])
	})
	return regexp.MustCompile(`(?i)\s*[(\-–—]\s*(?:` + strings.Join(alternatives, "|") + `)[)\s]*$`)
}
