package structdiff

import (
	"sort"
)

// MappingBuilder accumulates the entries of a diff between two mappings.
// entries can be added in any order, Validated sorts them by key
type MappingBuilder struct {
	entries Diff
}

// Add records a key present only in the target
func (b *MappingBuilder) Add(key string, v Value) {
	b.entries = append(b.entries, &Entry{Op: OpAdd, Key: StringKey(key), Value: v})
}

// Remove records a key present only in the source
func (b *MappingBuilder) Remove(key string) {
	b.entries = append(b.entries, &Entry{Op: OpRemove, Key: StringKey(key)})
}

// Replace records a wholesale value change
func (b *MappingBuilder) Replace(key string, v Value) {
	b.entries = append(b.entries, &Entry{Op: OpReplace, Key: StringKey(key), Value: v})
}

// Patch records a nested diff of the value at key
func (b *MappingBuilder) Patch(key string, d Diff) {
	b.entries = append(b.entries, &Entry{Op: OpPatch, Key: StringKey(key), Diff: d})
}

// Validated returns the accumulated entries sorted by key. The result is nil
// if nothing was recorded
func (b *MappingBuilder) Validated() (Diff, error) {
	if len(b.entries) == 0 {
		return nil, nil
	}
	d := make(Diff, len(b.entries))
	copy(d, b.entries)
	sort.SliceStable(d, func(i, j int) bool {
		return keyString(d[i].Key) < keyString(d[j].Key)
	})
	if err := ValidateMapping(d); err != nil {
		return nil, err
	}
	return d, nil
}

func keyString(k Key) string {
	if k == nil {
		return ""
	}
	return k.String()
}

// SequenceBuilder accumulates the entries of a diff between two sequences.
// keys must be supplied in non-decreasing source order, the builder never
// re-sorts them
type SequenceBuilder struct {
	srcLen  int
	entries Diff
}

// NewSequenceBuilder creates a builder for a diff of a source sequence with
// srcLen elements
func NewSequenceBuilder(srcLen int) *SequenceBuilder {
	return &SequenceBuilder{srcLen: srcLen}
}

// AddRange records values inserted before source position key
func (b *SequenceBuilder) AddRange(key int, values ...Value) {
	if len(values) == 0 {
		return
	}
	b.Append(&Entry{Op: OpAdd, Key: IndexKey(key), Values: values})
}

// RemoveRange records n source elements removed starting at key
func (b *SequenceBuilder) RemoveRange(key, n int) {
	if n == 0 {
		return
	}
	b.Append(&Entry{Op: OpRemove, Key: IndexKey(key), Length: n})
}

// Replace records the source element at key swapped for v
func (b *SequenceBuilder) Replace(key int, v Value) {
	b.Append(&Entry{Op: OpReplace, Key: IndexKey(key), Value: v})
}

// Patch records a nested diff of the source element at key
func (b *SequenceBuilder) Patch(key int, d Diff) {
	b.Append(&Entry{Op: OpPatch, Key: IndexKey(key), Diff: d})
}

// Append adds an entry, combining adds at the same position and removals of
// contiguous runs into a single entry
func (b *SequenceBuilder) Append(e *Entry) {
	if n := len(b.entries); n > 0 {
		last := b.entries[n-1]
		if last.Op == e.Op && last.Key != nil && e.Key != nil {
			lk, lok := last.Key.(IndexKey)
			ek, eok := e.Key.(IndexKey)
			if lok && eok {
				switch {
				case e.Op == OpAdd && lk == ek:
					merged := make([]Value, 0, len(last.Values)+len(e.Values))
					merged = append(append(merged, last.Values...), e.Values...)
					b.entries[n-1] = &Entry{Op: OpAdd, Key: lk, Values: merged}
					return
				case e.Op == OpRemove && int(lk)+last.Length == int(ek):
					b.entries[n-1] = &Entry{Op: OpRemove, Key: lk, Length: last.Length + e.Length}
					return
				}
			}
		}
	}
	b.entries = append(b.entries, e)
}

// Validated returns the accumulated entries, or nil if nothing was recorded
func (b *SequenceBuilder) Validated() (Diff, error) {
	if len(b.entries) == 0 {
		return nil, nil
	}
	if err := ValidateSequence(b.entries, b.srcLen); err != nil {
		return nil, err
	}
	return b.entries, nil
}
