package align

// Level is one pass of a multilevel alignment: an equivalence and the
// algorithm used to align with it
type Level struct {
	Eq    EqFunc
	Align Aligner
}

// Multilevel aligns the region r with levels ordered from strictest to
// loosest. The strictest level aligns the whole region, each following level
// only aligns the gaps left unmatched by the levels before it, so a match made
// at a stricter level is never reassigned. Returned snakes carry the index of
// the level that matched them.
func Multilevel(r Rect, levels []Level) []Snake {
	if len(levels) == 0 {
		return nil
	}
	return Merge(multilevel(r, levels, 0))
}

func multilevel(r Rect, levels []Level, level int) []Snake {
	snakes := levels[level].Align(r, levels[level].Eq)
	for i := range snakes {
		snakes[i].Level = level
	}
	if level == len(levels)-1 {
		return snakes
	}

	var out []Snake
	i, j := r.A0, r.B0
	// a zero-length sentinel at the end of the region closes the last gap
	for _, s := range append(snakes, Snake{A: r.A1, B: r.B1}) {
		if s.A > i && s.B > j {
			gap := Rect{A0: i, A1: s.A, B0: j, B1: s.B}
			out = append(out, multilevel(gap, levels, level+1)...)
		}
		if s.N > 0 {
			out = append(out, s)
		}
		i, j = s.A+s.N, s.B+s.N
	}
	return out
}
