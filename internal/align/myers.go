package align

// Myers computes an optimal alignment with the O((N+M)D) greedy algorithm
// described in "An O(ND) Difference Algorithm and Its Variations" by
// Eugene W. Myers. It is the default strategy: time and memory grow with the
// number of differences D rather than the product of the lengths.
//
// Common prefixes and suffixes are matched up front. Within the remaining
// region, at every tie the path reaching furthest along the source wins, and
// deletions are taken before insertions.
func Myers(r Rect, eq EqFunc) []Snake {
	return withAffixes(r, eq, myers)
}

func myers(r Rect, eq EqFunc) []Snake {
	n, m := r.A1-r.A0, r.B1-r.B0
	max := n + m
	offset := max + 1
	// v[offset+k] holds the furthest x reached on diagonal k = x - y
	v := make([]int, 2*max+3)
	// trace[d] holds v[-d-1 .. d+1] as it was before round d
	var trace [][]int

	at := func(x, y int) bool { return eq(r.A0+x, r.B0+y) }

search:
	for d := 0; d <= max; d++ {
		snapshot := make([]int, 2*d+3)
		copy(snapshot, v[offset-d-1:offset+d+2])
		trace = append(trace, snapshot)

		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			for x < n && y < m && at(x, y) {
				x++
				y++
			}
			v[offset+k] = x
			if x >= n && y >= m {
				break search
			}
		}
	}

	// walk the trace backward from (n, m) collecting diagonal moves
	var pairs [][2]int
	x, y := n, m
	for d := len(trace) - 1; d >= 0; d-- {
		vd := trace[d]
		get := func(k int) int { return vd[k+d+1] }

		k := x - y
		var prevK int
		if k == -d || (k != d && get(k-1) < get(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := get(prevK)
		prevY := prevX - prevK
		for x > prevX && y > prevY {
			x--
			y--
			pairs = append(pairs, [2]int{r.A0 + x, r.B0 + y})
		}
		x, y = prevX, prevY
	}

	for i, j := 0, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}
	return fromPairs(pairs)
}
