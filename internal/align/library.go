package align

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Library returns an aligner backed by difflib's SequenceMatcher, which
// repeatedly picks the longest matching block and recurses on either side of
// it. Elements are compared by key: a[i] and b[j] are equivalent when their
// keys are identical, the eq callback is ignored. Results are correct but not
// always optimal.
func Library(a, b []string) Aligner {
	return func(r Rect, _ EqFunc) []Snake {
		if r.A1 <= r.A0 || r.B1 <= r.B0 {
			return nil
		}
		// autojunk is off: popular elements in long sequences must still match
		sm := difflib.NewMatcherWithJunk(a[r.A0:r.A1], b[r.B0:r.B1], false, nil)
		var snakes []Snake
		for _, blk := range sm.GetMatchingBlocks() {
			if blk.Size == 0 {
				continue
			}
			snakes = append(snakes, Snake{A: r.A0 + blk.A, B: r.B0 + blk.B, N: blk.Size})
		}
		return Merge(snakes)
	}
}

// Similarity returns difflib's ratio of matching elements between a and b,
// 2*M/T where M is the number of matches and T the total element count. Cheap
// upper bounds are checked first, any bound below threshold short-circuits
// with that bound
func Similarity(a, b []string, threshold float64) float64 {
	sm := difflib.NewMatcherWithJunk(a, b, false, nil)
	if r := sm.RealQuickRatio(); r < threshold {
		return r
	}
	if r := sm.QuickRatio(); r < threshold {
		return r
	}
	return sm.Ratio()
}
