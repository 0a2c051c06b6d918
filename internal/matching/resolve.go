package matching

import (
	"sync"
)

const scoreEpsilon = 1e-9

// outcome is a resolution expressed in pool candidate indices.
type outcome struct {
	level   Level
	members []int
	score   float64
}

type memoKey struct {
	legislature int
	name        string
}

// fuzzyMemo caches fuzzy outcomes per (legislature, normalized speaker).
// Fuzzy scoring ignores the session, so the cache is shared by all workers.
type fuzzyMemo struct {
	mu      sync.RWMutex
	entries map[memoKey]outcome
}

func newFuzzyMemo() *fuzzyMemo {
	return &fuzzyMemo{entries: make(map[memoKey]outcome)}
}

func (m *fuzzyMemo) get(key memoKey) (outcome, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, ok := m.entries[key]
	return out, ok
}

func (m *fuzzyMemo) put(key memoKey, out outcome) {
	m.mu.Lock()
	m.entries[key] = out
	m.mu.Unlock()
}

// resolve runs the ordered strategies for one person row; the first that
// decides wins.
func (e *Engine) resolve(p *pool, r *row, anchors AnchorIndex, memo *fuzzyMemo) outcome {
	if p == nil || len(p.candidates) == 0 {
		return outcome{level: LevelUnmatched}
	}
	name := r.norm.Name

	if idx, ok := p.byFull[name]; ok {
		return outcome{level: LevelDeterministic, members: []int{idx}, score: DeterministicScore}
	}
	switch others := p.byOther[name]; {
	case len(others) == 1:
		return outcome{level: LevelDeterministic, members: others, score: DeterministicScore}
	case len(others) > 1:
		return outcome{level: LevelAmbiguous, members: others}
	}

	surname := p.byLast[r.norm.LastName]
	switch {
	case len(surname) == 1:
		return outcome{level: LevelDeterministic, members: surname, score: DeterministicScore}
	case len(surname) > 1:
		if anchored := anchors.filter(r.session, surname); len(anchored) == 1 {
			return outcome{level: LevelContextual, members: anchored, score: DeterministicScore}
		}
		return outcome{level: LevelAmbiguous, members: surname}
	}

	key := memoKey{legislature: r.session.Legislature, name: name}
	if out, ok := memo.get(key); ok {
		return out
	}
	out := e.fuzzy(p, name)
	memo.put(key, out)
	return out
}

// fuzzy scores every candidate and keeps those tied at the global maximum.
func (e *Engine) fuzzy(p *pool, name string) outcome {
	single := isSingleToken(name)
	best := -1.0
	var top []int
	for i, c := range p.candidates {
		score := e.scorer.FullNameScore(name, c.fullName)
		for _, other := range c.otherNames {
			score = max(score, e.scorer.FullNameScore(name, other))
		}
		if single {
			score = max(score, e.scorer.LastNameScore(name, c.lastName))
		}
		switch {
		case score > best+scoreEpsilon:
			best = score
			top = append(top[:0], i)
		case score >= best-scoreEpsilon:
			top = append(top, i)
		}
	}
	if len(top) == 0 || best < e.opts.FuzzyThreshold {
		return outcome{level: LevelUnmatched}
	}
	if len(top) == 1 {
		return outcome{level: LevelFuzzy, members: top, score: best}
	}
	return outcome{level: LevelAmbiguous, members: top}
}

// apply copies an outcome onto res.
func apply(res *Result, p *pool, out outcome) {
	res.Level = out.level
	switch out.level {
	case LevelDeterministic, LevelContextual, LevelFuzzy:
		rec := p.candidates[out.members[0]].record
		res.MatchedName = stringPtr(rec.FullName)
		res.PartyID = optionalString(rec.PartyID)
		res.Gender = optionalString(rec.Gender)
		res.DistrictID = optionalString(rec.DistrictID)
		score := out.score
		res.Score = &score
	case LevelAmbiguous:
		if party, ok := p.partyConsensus(out.members); ok {
			res.PartyID = stringPtr(party)
		}
	}
}

func stringPtr(s string) *string {
	return &s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
