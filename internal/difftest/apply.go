// Package difftest holds helpers for testing diffs: replaying them against
// documents, checking their invariants, and loading fixtures
package difftest

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/qri-io/structdiff"
)

// Apply replays a diff against src, returning the patched document. src is
// not modified
func Apply(src structdiff.Value, d structdiff.Diff) (structdiff.Value, error) {
	if len(d) == 0 {
		return src, nil
	}

	switch src.Kind() {
	case structdiff.KindMapping:
		return applyMapping(src, d)
	case structdiff.KindSequence:
		items, err := applySequence(src.Items(), d)
		if err != nil {
			return structdiff.Value{}, err
		}
		return structdiff.Sequence(items...), nil
	case structdiff.KindText:
		units := structdiff.Chars(src.Text())
		chars := make([]structdiff.Value, len(units))
		for i, c := range units {
			chars[i] = structdiff.Text(c)
		}
		patched, err := applySequence(chars, d)
		if err != nil {
			return structdiff.Value{}, err
		}
		var sb strings.Builder
		for _, ch := range patched {
			if ch.Kind() != structdiff.KindText {
				return structdiff.Value{}, errors.Errorf("text diff inserted a %s value", ch.Kind())
			}
			sb.WriteString(ch.Text())
		}
		return structdiff.Text(sb.String()), nil
	default:
		return structdiff.Value{}, errors.Errorf("can't patch a %s value", src.Kind())
	}
}

func applyMapping(src structdiff.Value, d structdiff.Diff) (structdiff.Value, error) {
	fields := map[string]structdiff.Value{}
	for _, key := range src.Keys() {
		fields[key], _ = src.Get(key)
	}
	var added []string

	for i, e := range d {
		k, ok := e.Key.(structdiff.StringKey)
		if !ok {
			return structdiff.Value{}, errors.Errorf("entry %d: mapping key must be a string, got %T", i, e.Key)
		}
		key := string(k)
		current, exists := fields[key]

		switch e.Op {
		case structdiff.OpAdd:
			if exists {
				return structdiff.Value{}, errors.Errorf("entry %d: add of existing key %q", i, key)
			}
			fields[key] = e.Value
			added = append(added, key)
		case structdiff.OpRemove:
			if !exists {
				return structdiff.Value{}, errors.Errorf("entry %d: remove of missing key %q", i, key)
			}
			delete(fields, key)
		case structdiff.OpReplace:
			if !exists {
				return structdiff.Value{}, errors.Errorf("entry %d: replace of missing key %q", i, key)
			}
			fields[key] = e.Value
		case structdiff.OpPatch:
			if !exists {
				return structdiff.Value{}, errors.Errorf("entry %d: patch of missing key %q", i, key)
			}
			patched, err := Apply(current, e.Diff)
			if err != nil {
				return structdiff.Value{}, errors.Wrapf(err, "key %q", key)
			}
			fields[key] = patched
		default:
			return structdiff.Value{}, errors.Errorf("entry %d: unknown operation %q", i, e.Op)
		}
	}

	var out []structdiff.Field
	for _, key := range append(src.Keys()[:len(src.Keys()):len(src.Keys())], added...) {
		if v, ok := fields[key]; ok {
			out = append(out, structdiff.Field{Key: key, Value: v})
		}
	}
	return structdiff.Mapping(out...), nil
}

func applySequence(src []structdiff.Value, d structdiff.Diff) ([]structdiff.Value, error) {
	var (
		out []structdiff.Value
		// take is the first source element not yet consumed
		take int
	)

	for i, e := range d {
		k, ok := e.Key.(structdiff.IndexKey)
		if !ok {
			return nil, errors.Errorf("entry %d: sequence key must be an index, got %T", i, e.Key)
		}
		idx := int(k)
		if idx < take || idx > len(src) {
			return nil, errors.Errorf("entry %d: index %d out of range [%d, %d]", i, idx, take, len(src))
		}
		out = append(out, src[take:idx]...)
		take = idx

		switch e.Op {
		case structdiff.OpAdd:
			out = append(out, e.Values...)
		case structdiff.OpRemove:
			if idx+e.Length > len(src) {
				return nil, errors.Errorf("entry %d: remove of %d at %d exceeds %d elements", i, e.Length, idx, len(src))
			}
			take += e.Length
		case structdiff.OpReplace:
			if idx >= len(src) {
				return nil, errors.Errorf("entry %d: replace at %d exceeds %d elements", i, idx, len(src))
			}
			out = append(out, e.Value)
			take++
		case structdiff.OpPatch:
			if idx >= len(src) {
				return nil, errors.Errorf("entry %d: patch at %d exceeds %d elements", i, idx, len(src))
			}
			patched, err := Apply(src[idx], e.Diff)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", idx)
			}
			out = append(out, patched)
			take++
		default:
			return nil, errors.Errorf("entry %d: unknown operation %q", i, e.Op)
		}
	}

	return append(out, src[take:]...), nil
}
