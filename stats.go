package structdiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	Adds     int `json:"adds,omitempty"`     // number of add entries
	Removes  int `json:"removes,omitempty"`  // number of remove entries
	Replaces int `json:"replaces,omitempty"` // number of replace entries
	Patches  int `json:"patches,omitempty"`  // number of patch entries

	Inserted int `json:"inserted,omitempty"` // number of elements inserted by adds
	Deleted  int `json:"deleted,omitempty"`  // number of elements deleted by removes
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// Edits is the number of non-patch entries, counting every element of an add
// or remove run
func (s Stats) Edits() int {
	return s.Inserted + s.Deleted + s.Replaces
}

// CalcStats tallies the entries of d, a diff from a to b
func CalcStats(a, b Value, d Diff) Stats {
	st := Stats{Left: countNodes(a), Right: countNodes(b)}
	st.add(d)
	return st
}

func (s *Stats) add(d Diff) {
	for _, e := range d {
		switch e.Op {
		case OpAdd:
			s.Adds++
			if _, ok := e.Key.(IndexKey); ok {
				s.Inserted += len(e.Values)
			} else {
				s.Inserted++
			}
		case OpRemove:
			s.Removes++
			if _, ok := e.Key.(IndexKey); ok {
				s.Deleted += e.Length
			} else {
				s.Deleted++
			}
		case OpReplace:
			s.Replaces++
		case OpPatch:
			s.Patches++
			s.add(e.Diff)
		}
	}
}

// countNodes counts v and every value nested inside it
func countNodes(v Value) int {
	n := 1
	switch v.Kind() {
	case KindSequence:
		for _, el := range v.Items() {
			n += countNodes(el)
		}
	case KindMapping:
		for _, key := range v.Keys() {
			el, _ := v.Get(key)
			n += countNodes(el)
		}
	}
	return n
}
