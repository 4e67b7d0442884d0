package structdiff

import (
	"github.com/pkg/errors"

	"github.com/qri-io/structdiff/internal/align"
)

// DiffSequence computes a shallow edit script between two sequences, pairing
// elements with p. The script only holds add, remove & replace entries:
// elements paired by p are left unmentioned even when they differ, recursing
// into them is the caller's job
func (d *Differ) DiffSequence(a, b []Value, p Predicate) (Diff, error) {
	if p == nil {
		p = Equality
	}
	al, eq, err := d.aligner(a, b, p)
	if err != nil {
		return nil, err
	}
	snakes := al(align.Full(len(a), len(b)), eq)

	sb := NewSequenceBuilder(len(a))
	target := func(j int) Value { return b[j] }
	if err := buildFromSnakes(sb, len(a), len(b), snakes, target, nil); err != nil {
		return nil, err
	}
	return sb.Validated()
}

// aligner picks the alignment algorithm for a and b under p
func (d *Differ) aligner(a, b []Value, p Predicate) (align.Aligner, align.EqFunc, error) {
	eq := func(i, j int) bool { return p.Match(a[i], b[j]) }

	switch d.cfg.Strategy {
	case StrategyExhaustive:
		return align.Exhaustive, eq, nil
	case StrategyLibrary:
		if !IsEquality(p) {
			return nil, nil, errors.Wrap(ErrUnsupportedPredicate, "library strategy requires the Equality predicate")
		}
		byKey := align.Library(hashKeys(a), hashKeys(b))
		// hash collisions can't produce false matches: runs are re-checked
		return func(r align.Rect, eq align.EqFunc) []align.Snake {
			return splitUnequal(byKey(r, eq), eq)
		}, eq, nil
	case StrategyClassicLCS:
		return align.Myers, eq, nil
	default:
		return nil, nil, errors.Errorf("unknown sequence strategy %d", int(d.cfg.Strategy))
	}
}

// splitUnequal breaks snakes around any pair eq rejects
func splitUnequal(snakes []align.Snake, eq align.EqFunc) []align.Snake {
	var out []align.Snake
	for _, s := range snakes {
		start := 0
		for k := 0; k <= s.N; k++ {
			if k == s.N || !eq(s.A+k, s.B+k) {
				if k > start {
					out = append(out, align.Snake{A: s.A + start, B: s.B + start, N: k - start, Level: s.Level})
				}
				start = k + 1
			}
		}
	}
	return out
}

// buildFromSnakes converts an alignment into sequence diff entries. Each gap
// between snakes pairs its first min(removed, inserted) elements as replaces,
// the rest become a single remove or add run. onMatch, if non-nil, is called
// for every pair inside a snake, in order
func buildFromSnakes(sb *SequenceBuilder, aLen, bLen int, snakes []align.Snake, target func(j int) Value, onMatch func(i, j, level int) error) error {
	i, j := 0, 0
	sentinel := align.Snake{A: aLen, B: bLen}
	for _, s := range append(snakes[:len(snakes):len(snakes)], sentinel) {
		if s.A < i || s.B < j || s.A+s.N > aLen || s.B+s.N > bLen {
			return errors.Wrapf(ErrMalformedDiff, "alignment run (%d, %d, %d) is out of order", s.A, s.B, s.N)
		}
		emitGap(sb, i, s.A, j, s.B, target)
		if onMatch != nil {
			for k := 0; k < s.N; k++ {
				if err := onMatch(s.A+k, s.B+k, s.Level); err != nil {
					return err
				}
			}
		}
		i, j = s.A+s.N, s.B+s.N
	}
	return nil
}

func emitGap(sb *SequenceBuilder, i0, i1, j0, j1 int, target func(j int) Value) {
	removed, inserted := i1-i0, j1-j0
	paired := removed
	if inserted < paired {
		paired = inserted
	}
	for k := 0; k < paired; k++ {
		sb.Replace(i0+k, target(j0+k))
	}
	if removed > paired {
		sb.RemoveRange(i0+paired, removed-paired)
	}
	if inserted > paired {
		vals := make([]Value, 0, inserted-paired)
		for k := j0 + paired; k < j1; k++ {
			vals = append(vals, target(k))
		}
		sb.AddRange(i0+paired, vals...)
	}
}
