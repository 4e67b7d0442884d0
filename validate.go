package structdiff

import (
	"github.com/pkg/errors"
)

// ValidateSequence checks d is a well formed diff of a sequence of srcLen
// elements:
//   - every key is an IndexKey within source bounds
//   - keys never decrease, and no entry reaches into source elements an
//     earlier entry already consumed
//   - at most one OpAdd per position, runs at a position must be combined
//   - OpAdd and OpRemove carry a non-empty run, OpPatch a non-empty diff
func ValidateSequence(d Diff, srcLen int) error {
	// next is the first source index not yet consumed by an entry
	next := 0
	lastAdd := -1
	for i, e := range d {
		if e == nil {
			return errors.Wrapf(ErrMalformedDiff, "entry %d is nil", i)
		}
		k, ok := e.Key.(IndexKey)
		if !ok {
			return errors.Wrapf(ErrMalformedDiff, "entry %d: sequence diff key must be an index, got %T", i, e.Key)
		}
		key := int(k)
		if key < next {
			return errors.Wrapf(ErrMalformedDiff, "entry %d: key %d overlaps source elements up to %d", i, key, next)
		}

		switch e.Op {
		case OpAdd:
			if key > srcLen {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: add at %d is past the end of %d elements", i, key, srcLen)
			}
			if len(e.Values) == 0 {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: add at %d has no values", i, key)
			}
			if key == lastAdd {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: duplicate add at %d", i, key)
			}
			lastAdd = key
			next = key
		case OpRemove:
			if e.Length < 1 {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: remove at %d has length %d", i, key, e.Length)
			}
			if key+e.Length > srcLen {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: remove of %d at %d exceeds %d elements", i, e.Length, key, srcLen)
			}
			next = key + e.Length
		case OpReplace, OpPatch:
			if key >= srcLen {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: %q at %d is past the end of %d elements", i, e.Op, key, srcLen)
			}
			if e.Op == OpPatch && len(e.Diff) == 0 {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: patch at %d has an empty diff", i, key)
			}
			next = key + 1
		default:
			return errors.Wrapf(ErrMalformedDiff, "entry %d: unknown operation %q", i, e.Op)
		}
	}
	return nil
}

// ValidateMapping checks d is a well formed mapping diff: string keys in
// sorted order, each mentioned once, and patches carrying non-empty diffs
func ValidateMapping(d Diff) error {
	prev := ""
	for i, e := range d {
		if e == nil {
			return errors.Wrapf(ErrMalformedDiff, "entry %d is nil", i)
		}
		k, ok := e.Key.(StringKey)
		if !ok {
			return errors.Wrapf(ErrMalformedDiff, "entry %d: mapping diff key must be a string, got %T", i, e.Key)
		}
		key := string(k)
		if i > 0 {
			if key == prev {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: key %q mentioned more than once", i, key)
			}
			if key < prev {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: key %q sorts before %q", i, key, prev)
			}
		}
		prev = key

		switch e.Op {
		case OpAdd, OpRemove, OpReplace:
		case OpPatch:
			if len(e.Diff) == 0 {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: patch of %q has an empty diff", i, key)
			}
		default:
			return errors.Wrapf(ErrMalformedDiff, "entry %d: unknown operation %q", i, e.Op)
		}
	}
	return nil
}

// Validate checks d against the document it was computed from, descending
// into every patch
func Validate(src Value, d Diff) error {
	if len(d) == 0 {
		return nil
	}
	switch src.Kind() {
	case KindMapping:
		if err := ValidateMapping(d); err != nil {
			return err
		}
		for _, e := range d {
			key := string(e.Key.(StringKey))
			v, ok := src.Get(key)
			switch e.Op {
			case OpAdd:
				if ok {
					return errors.Wrapf(ErrMalformedDiff, "add of existing key %q", key)
				}
			case OpRemove, OpReplace:
				if !ok {
					return errors.Wrapf(ErrMalformedDiff, "%q of missing key %q", e.Op, key)
				}
			case OpPatch:
				if !ok {
					return errors.Wrapf(ErrMalformedDiff, "patch of missing key %q", key)
				}
				if err := Validate(v, e.Diff); err != nil {
					return errors.Wrapf(err, "key %q", key)
				}
			}
		}
		return nil
	case KindSequence:
		if err := ValidateSequence(d, src.Len()); err != nil {
			return err
		}
		for _, e := range d {
			if e.Op != OpPatch {
				continue
			}
			idx := int(e.Key.(IndexKey))
			if err := Validate(src.Index(idx), e.Diff); err != nil {
				return errors.Wrapf(err, "index %d", idx)
			}
		}
		return nil
	case KindText:
		if err := ValidateSequence(d, src.Len()); err != nil {
			return err
		}
		for i, e := range d {
			if e.Op == OpPatch {
				return errors.Wrapf(ErrMalformedDiff, "entry %d: text diffs can't patch", i)
			}
		}
		return nil
	default:
		return errors.Wrapf(ErrMalformedDiff, "non-empty diff of %s value", src.Kind())
	}
}
