package structdiff

import (
	"github.com/pkg/errors"

	"github.com/qri-io/structdiff/internal/align"
)

// DiffMultilevel computes the diff of two sequences found at path, pairing
// elements with a list of predicates ordered from strictest to loosest. The
// strictest predicate aligns the whole sequences, each looser predicate only
// aligns the gaps left unmatched before it. Paired elements that differ are
// diffed with the differ registered at path + "/*"
func (d *Differ) DiffMultilevel(a, b Value, preds []Predicate, path string) (Diff, error) {
	if a.Kind() != KindSequence || b.Kind() != KindSequence {
		return nil, errors.Wrapf(ErrUnsupportedValueKind, "at %q: DiffMultilevel of %s and %s", displayPath(path), a.Kind(), b.Kind())
	}
	if len(preds) == 0 {
		preds = defaultPredicates
	}

	as, bs := a.Items(), b.Items()
	levels := make([]align.Level, len(preds))
	for l, p := range preds {
		if p == nil {
			return nil, errors.Wrapf(ErrInvalidPath, "at %q: predicate %d is nil", displayPath(path), l)
		}
		al, eq, err := d.aligner(as, bs, p)
		if err != nil {
			return nil, errors.Wrapf(err, "at %q: level %d", displayPath(path), l)
		}
		levels[l] = align.Level{Eq: eq, Align: al}
	}

	snakes := align.Multilevel(align.Full(len(as), len(bs)), levels)
	if d.log.V(2).Enabled() {
		counts := make([]int, len(preds))
		for _, s := range snakes {
			counts[s.Level] += s.N
		}
		d.log.V(2).Info("multilevel alignment", "path", displayPath(path), "matchesPerLevel", counts)
	}

	subpath := JoinPath(path, ElementSegment)
	sb := NewSequenceBuilder(len(as))
	target := func(j int) Value { return bs[j] }
	onMatch := func(i, j, level int) error {
		return d.diffPaired(sb, as[i], bs[j], i, subpath, IsEquality(preds[level]))
	}
	if err := buildFromSnakes(sb, len(as), len(bs), snakes, target, onMatch); err != nil {
		return nil, errors.Wrapf(err, "at %q", displayPath(path))
	}
	return sb.Validated()
}
