package structdiff

import (
	"github.com/pkg/errors"
)

// DiffDicts computes the diff of two mappings found at path. Keys are visited
// in sorted order so results don't depend on insertion order:
//   - keys only in a are removed, keys only in b are added
//   - values of the same diffable kind are diffed with the differ registered
//     at path + "/" + key, and patched if that diff isn't empty
//   - other values are replaced when unequal
//
// Predicates only make sense for sequences. Registering them at path, or at
// the path of an entry that falls through to plain comparison, is a
// configuration error reported as ErrPredicateConflict
func (d *Differ) DiffDicts(a, b Value, path string) (Diff, error) {
	if a.Kind() != KindMapping || b.Kind() != KindMapping {
		return nil, errors.Wrapf(ErrUnsupportedValueKind, "at %q: DiffDicts of %s and %s", displayPath(path), a.Kind(), b.Kind())
	}

	reg := d.cfg.Registry
	mb := &MappingBuilder{}

	for _, key := range a.SortedKeys() {
		av, _ := a.Get(key)
		bv, ok := b.Get(key)
		if !ok {
			mb.Remove(key)
			continue
		}

		subpath := JoinPath(path, key)
		if diffable(av, bv) || reg.HasDiffer(subpath) {
			sub, err := d.diffWith(av, bv, subpath)
			if err != nil {
				return nil, err
			}
			if len(sub) > 0 {
				mb.Patch(key, sub)
			}
			continue
		}

		for _, p := range []string{path, subpath} {
			if reg.HasPredicates(p) {
				d.log.V(1).Info("predicate conflict", "path", displayPath(p), "key", key)
				return nil, errors.Wrapf(ErrPredicateConflict, "predicates registered for %q apply to mapping entry %q", displayPath(p), key)
			}
		}
		if !av.Equal(bv) {
			mb.Replace(key, bv)
		}
	}

	for _, key := range b.SortedKeys() {
		if _, ok := a.Get(key); !ok {
			bv, _ := b.Get(key)
			mb.Add(key, bv)
		}
	}

	return mb.Validated()
}
