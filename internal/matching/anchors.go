package matching

// AnchorIndex records, per session, the candidates named exactly by full or
// alternate name somewhere in that session. It is built once, before any
// contextual resolution, and is read-only afterwards.
type AnchorIndex struct {
	sessions map[SessionKey]map[int]struct{}
}

// buildAnchors scans every person row. A row anchors a candidate only when
// its name identifies exactly one candidate of the legislature's pool.
func buildAnchors(rows []row, pools map[int]*pool) AnchorIndex {
	idx := AnchorIndex{sessions: make(map[SessionKey]map[int]struct{})}
	for i := range rows {
		r := &rows[i]
		if !r.resolvable() {
			continue
		}
		hits := pools[r.session.Legislature].exact(r.norm.Name)
		if len(hits) != 1 {
			continue
		}
		set := idx.sessions[r.session]
		if set == nil {
			set = make(map[int]struct{})
			idx.sessions[r.session] = set
		}
		set[hits[0]] = struct{}{}
	}
	return idx
}

// Anchored reports whether candidate is anchored in session.
func (a AnchorIndex) Anchored(session SessionKey, candidate int) bool {
	_, ok := a.sessions[session][candidate]
	return ok
}

// Sessions returns the number of sessions with at least one anchor.
func (a AnchorIndex) Sessions() int {
	return len(a.sessions)
}

// filter returns the members anchored in session.
func (a AnchorIndex) filter(session SessionKey, members []int) []int {
	set := a.sessions[session]
	if len(set) == 0 {
		return nil
	}
	var out []int
	for _, m := range members {
		if _, ok := set[m]; ok {
			out = append(out, m)
		}
	}
	return out
}
