package structdiff

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/qri-io/structdiff/internal/align"
)

// DiffGraphemes is the default TextDiffer. It aligns the grapheme clusters of
// a and b, so a character and its combining marks are matched as one unit,
// then reports edits at the positions of Chars
func DiffGraphemes(a, b string) (Diff, error) {
	ga, gb := graphemes(a), graphemes(b)
	snakes := align.Myers(align.Full(len(ga), len(gb)), func(i, j int) bool {
		return ga[i] == gb[j]
	})

	offA, offB := runeOffsets(ga), runeOffsets(gb)
	runeSnakes := make([]align.Snake, len(snakes))
	for i, s := range snakes {
		// matched clusters are identical, so they span the same number of runes
		runeSnakes[i] = align.Snake{
			A: offA[s.A],
			B: offB[s.B],
			N: offA[s.A+s.N] - offA[s.A],
		}
	}
	return textFromSnakes(Chars(a), Chars(b), runeSnakes)
}

// Chars splits s into the units text diffs are expressed in: one per rune,
// with each invalid UTF-8 byte standing alone. Joining the result gives back
// s byte for byte
func Chars(s string) []string {
	chars := make([]string, 0, len(s))
	for len(s) > 0 {
		_, size := utf8.DecodeRuneInString(s)
		chars = append(chars, s[:size])
		s = s[size:]
	}
	return chars
}

// runeOffsets returns the rune offset of every cluster, plus the total rune
// count as a final element
func runeOffsets(clusters []string) []int {
	offs := make([]int, len(clusters)+1)
	for i, c := range clusters {
		offs[i+1] = offs[i] + utf8.RuneCountInString(c)
	}
	return offs
}

// DiffMatchPatch is a TextDiffer backed by the diff-match-patch algorithm. The
// computation runs without a deadline so results are deterministic
func DiffMatchPatch(a, b string) (Diff, error) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	var (
		snakes []align.Snake
		i, j   int
	)
	for _, df := range dmp.DiffMain(a, b, false) {
		n := utf8.RuneCountInString(df.Text)
		switch df.Type {
		case diffmatchpatch.DiffEqual:
			snakes = append(snakes, align.Snake{A: i, B: j, N: n})
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			i += n
		case diffmatchpatch.DiffInsert:
			j += n
		}
	}
	// diff-match-patch decodes invalid bytes to U+FFFD, so runs it reports as
	// equal are checked against the raw characters
	ca, cb := Chars(a), Chars(b)
	snakes = splitUnequal(align.Merge(snakes), func(i, j int) bool { return ca[i] == cb[j] })
	return textFromSnakes(ca, cb, snakes)
}

func textFromSnakes(a, b []string, snakes []align.Snake) (Diff, error) {
	sb := NewSequenceBuilder(len(a))
	target := func(j int) Value { return Text(b[j]) }
	if err := buildFromSnakes(sb, len(a), len(b), snakes, target, nil); err != nil {
		return nil, err
	}
	return sb.Validated()
}
