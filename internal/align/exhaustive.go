package align

// Exhaustive computes an optimal alignment by filling the full O(NM) longest
// common subsequence table. It works for any equivalence callback, including
// non-transitive ones, and calls eq exactly once per pair. Use it for small
// inputs only.
//
// When two alignments are equally long, source elements are kept available
// as long as possible: at a tie the target element is skipped first. This
// pairs each target element with the earliest source element that still
// allows an optimal alignment.
func Exhaustive(r Rect, eq EqFunc) []Snake {
	n, m := r.A1-r.A0, r.B1-r.B0
	if n <= 0 || m <= 0 {
		return nil
	}

	// lcs[i][j] is the length of an optimal alignment of a[i:] and b[j:],
	// relative to the region
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	equal := make([]bool, n*m)

	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			best := lcs[i+1][j]
			if lcs[i][j+1] > best {
				best = lcs[i][j+1]
			}
			if eq(r.A0+i, r.B0+j) {
				equal[i*m+j] = true
				if lcs[i+1][j+1]+1 > best {
					best = lcs[i+1][j+1] + 1
				}
			}
			lcs[i][j] = best
		}
	}

	var pairs [][2]int
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case equal[i*m+j] && lcs[i][j] == lcs[i+1][j+1]+1:
			pairs = append(pairs, [2]int{r.A0 + i, r.B0 + j})
			i++
			j++
		case lcs[i][j+1] >= lcs[i+1][j]:
			j++
		default:
			i++
		}
	}
	return fromPairs(pairs)
}
