// Package align computes shallow alignments between two sequences. Sequences
// are never inspected directly: algorithms see index ranges and an equivalence
// callback, and report matched runs of index pairs ("snakes")
package align

// EqFunc reports whether source element i and target element j are
// equivalent. Indices are absolute positions in the full sequences
type EqFunc func(i, j int) bool

// Rect is the half-open region a[A0:A1] x b[B0:B1] being aligned
type Rect struct {
	A0, A1 int
	B0, B1 int
}

// Full is the Rect covering two whole sequences of length n and m
func Full(n, m int) Rect {
	return Rect{A1: n, B1: m}
}

// Snake is a run of N index pairs (A+k, B+k) that are all equivalent. Level
// records which predicate of a multilevel alignment produced the run
type Snake struct {
	A, B, N int
	Level   int
}

// Aligner computes an alignment of the region r. Snakes are returned in
// increasing order of both coordinates and never overlap
type Aligner func(r Rect, eq EqFunc) []Snake

// Merge joins snakes that directly continue one another at the same level
func Merge(snakes []Snake) []Snake {
	var out []Snake
	for _, s := range snakes {
		if s.N == 0 {
			continue
		}
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Level == s.Level && last.A+last.N == s.A && last.B+last.N == s.B {
				last.N += s.N
				continue
			}
		}
		out = append(out, s)
	}
	return out
}

// fromPairs compresses increasing index pairs into snakes
func fromPairs(pairs [][2]int) []Snake {
	snakes := make([]Snake, 0, len(pairs))
	for _, p := range pairs {
		snakes = append(snakes, Snake{A: p[0], B: p[1], N: 1})
	}
	return Merge(snakes)
}

// trim strips the common prefix & suffix of a region, which every optimal
// alignment matches greedily
func trim(r Rect, eq EqFunc) (prefix, suffix int, inner Rect) {
	for r.A0+prefix < r.A1 && r.B0+prefix < r.B1 && eq(r.A0+prefix, r.B0+prefix) {
		prefix++
	}
	inner = Rect{A0: r.A0 + prefix, A1: r.A1, B0: r.B0 + prefix, B1: r.B1}
	for inner.A1-suffix > inner.A0 && inner.B1-suffix > inner.B0 && eq(inner.A1-suffix-1, inner.B1-suffix-1) {
		suffix++
	}
	inner.A1 -= suffix
	inner.B1 -= suffix
	return prefix, suffix, inner
}

// withAffixes wraps an aligner so common prefixes and suffixes are matched
// before the (more expensive) core algorithm runs
func withAffixes(r Rect, eq EqFunc, core func(Rect, EqFunc) []Snake) []Snake {
	prefix, suffix, inner := trim(r, eq)
	var snakes []Snake
	if prefix > 0 {
		snakes = append(snakes, Snake{A: r.A0, B: r.B0, N: prefix})
	}
	if inner.A1 > inner.A0 && inner.B1 > inner.B0 {
		snakes = append(snakes, core(inner, eq)...)
	}
	if suffix > 0 {
		snakes = append(snakes, Snake{A: inner.A1, B: inner.B1, N: suffix})
	}
	return Merge(snakes)
}
