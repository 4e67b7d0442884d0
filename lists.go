package structdiff

import (
	"github.com/pkg/errors"
)

// DiffLists computes the diff of two sequences found at path. Elements are
// paired with the predicates registered for path; with more than one
// predicate the multilevel algorithm is used. Paired elements that differ are
// diffed with the differ registered for path + "/*", and patched when that
// diff isn't empty
func (d *Differ) DiffLists(a, b Value, path string) (Diff, error) {
	if a.Kind() != KindSequence || b.Kind() != KindSequence {
		return nil, errors.Wrapf(ErrUnsupportedValueKind, "at %q: DiffLists of %s and %s", displayPath(path), a.Kind(), b.Kind())
	}

	preds := d.cfg.Registry.PredicatesAt(path)
	if len(preds) > 1 {
		return d.DiffMultilevel(a, b, preds, path)
	}
	d.log.V(3).Info("diffing list", "path", displayPath(path), "strategy", d.cfg.Strategy.String(), "left", a.Len(), "right", b.Len())

	as, bs := a.Items(), b.Items()
	shallow, err := d.DiffSequence(as, bs, preds[0])
	if err != nil {
		return nil, errors.Wrapf(err, "at %q", displayPath(path))
	}

	var (
		subpath    = JoinPath(path, ElementSegment)
		knownEqual = IsEquality(preds[0])
		sb         = NewSequenceBuilder(len(as))
		// i, j count elements of a and b consumed so far
		i, j int
	)

	for ie := 0; ie <= len(shallow); ie++ {
		var (
			e            *Entry
			n            int
			askip, bskip int
		)
		if ie < len(shallow) {
			// unmentioned elements before this entry were paired by the
			// predicate. a key can run ahead of i when removals are followed by
			// insertions
			e = shallow[ie]
			key := int(e.Key.(IndexKey))
			if n = key - i; n < 0 {
				n = 0
			}
			askip, bskip = e.Consumed()
		} else {
			// consume the paired elements after the last entry
			n = len(as) - i
			if len(bs)-j != n {
				return nil, errors.Wrapf(ErrMalformedDiff, "at %q: %d source and %d target elements left after shallow diff", displayPath(path), n, len(bs)-j)
			}
		}

		for k := 0; k < n; k++ {
			if err := d.diffPaired(sb, as[i+k], bs[j+k], i+k, subpath, knownEqual); err != nil {
				return nil, err
			}
		}

		i += n + askip
		j += n + bskip
		if e != nil {
			sb.Append(e)
		}
	}

	if i != len(as) || j != len(bs) {
		return nil, errors.Wrapf(ErrMalformedDiff, "at %q: consumed %d of %d source and %d of %d target elements", displayPath(path), i, len(as), j, len(bs))
	}
	return sb.Validated()
}

// diffPaired records the difference between two sequence elements the
// alignment paired at source index idx. Containers & text are diffed with
// the differ registered at subpath, other values that differ are replaced
func (d *Differ) diffPaired(sb *SequenceBuilder, a, b Value, idx int, subpath string, knownEqual bool) error {
	if knownEqual {
		return nil
	}
	if !d.cfg.Registry.HasDiffer(subpath) && !diffable(a, b) {
		if !a.Equal(b) {
			sb.Replace(idx, b)
		}
		return nil
	}

	sub, err := d.diffWith(a, b, subpath)
	if err != nil {
		return err
	}
	if len(sub) > 0 {
		sb.Patch(idx, sub)
	}
	return nil
}
