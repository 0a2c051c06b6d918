package matching

import (
	"strings"

	"pplmatch/internal/speaker"
	"pplmatch/internal/textutil"
)

// candidate is one distinct person in a legislature's pool.
type candidate struct {
	record     Legislator
	fullName   string
	lastName   string
	otherNames []string
}

// pool indexes the candidates of one legislature by normalized name.
type pool struct {
	candidates []*candidate
	byFull     map[string]int
	byOther    map[string][]int
	byLast     map[string][]int
}

// buildPools groups legislators by legislature and deduplicates them by
// normalized full name; the first record of a name wins. Records outside
// scope or whose name normalizes to nothing are skipped.
func buildPools(legislators []Legislator, inScope func(int) bool) map[int]*pool {
	pools := make(map[int]*pool)
	for _, rec := range legislators {
		if !inScope(rec.LegislatureID) {
			continue
		}
		full := speaker.NormalizeMemberName(rec.FullName)
		if full == "" {
			continue
		}
		p := pools[rec.LegislatureID]
		if p == nil {
			p = &pool{
				byFull:  make(map[string]int),
				byOther: make(map[string][]int),
				byLast:  make(map[string][]int),
			}
			pools[rec.LegislatureID] = p
		}
		if _, dup := p.byFull[full]; dup {
			continue
		}
		c := &candidate{
			record:   rec,
			fullName: full,
			lastName: speaker.ExtractLastName(full),
		}
		idx := len(p.candidates)
		seen := map[string]struct{}{full: {}}
		for _, other := range rec.OtherNames {
			norm := speaker.NormalizeMemberName(other)
			if norm == "" {
				continue
			}
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = struct{}{}
			c.otherNames = append(c.otherNames, norm)
			p.byOther[norm] = append(p.byOther[norm], idx)
		}
		p.candidates = append(p.candidates, c)
		p.byFull[full] = idx
		p.byLast[c.lastName] = append(p.byLast[c.lastName], idx)
	}
	return pools
}

// exact returns the candidates named exactly by name: the full-name holder
// if any, otherwise every candidate listing name as an alternate.
func (p *pool) exact(name string) []int {
	if p == nil || name == "" {
		return nil
	}
	if idx, ok := p.byFull[name]; ok {
		return []int{idx}
	}
	return p.byOther[name]
}

// partyConsensus returns the party shared by every member, if any.
func (p *pool) partyConsensus(members []int) (string, bool) {
	if len(members) == 0 {
		return "", false
	}
	party := strings.TrimSpace(p.candidates[members[0]].record.PartyID)
	if party == "" {
		return "", false
	}
	for _, idx := range members[1:] {
		if strings.TrimSpace(p.candidates[idx].record.PartyID) != party {
			return "", false
		}
	}
	return party, true
}

func isSingleToken(name string) bool {
	return textutil.TokenCount(name) == 1
}
