package textutil

import (
	"sort"
	"strings"
)

// LastToken returns the final whitespace-delimited token, or "" for blank input.
func LastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// TokenCount returns the number of whitespace-delimited tokens.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}

// SortTokens splits on whitespace, sorts the tokens, and joins them with a
// single space.
func SortTokens(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return strings.Join(fields, " ")
	}
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// SplitList splits a delimited list, trimming entries and dropping empty ones.
func SplitList(s, sep string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
