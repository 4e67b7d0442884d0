package structdiff

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// Operation defines the operation of an Entry
type Operation string

const (
	// OpAdd inserts a value at a mapping key, or a run of values before a
	// sequence position
	OpAdd = Operation("+")
	// OpRemove deletes a mapping key, or a run of values starting at a sequence
	// position
	OpRemove = Operation("-")
	// OpReplace swaps the value at a key wholesale
	OpReplace = Operation("~")
	// OpPatch descends into a value present on both sides, applying a nested
	// diff
	OpPatch = Operation(" ")
)

// Key addresses an element within one container. StringKey addresses mapping
// entries, IndexKey addresses positions in the source sequence
type Key interface {
	isKey()
	String() string
}

// StringKey is the key of a mapping entry
type StringKey string

// IndexKey is a position in a source sequence
type IndexKey int

func (StringKey) isKey() {}
func (IndexKey) isKey()  {}

// String implements the Key interface
func (k StringKey) String() string { return string(k) }

// String implements the Key interface
func (k IndexKey) String() string { return strconv.Itoa(int(k)) }

// Entry is a single edit operation within one container level
type Entry struct {
	// the type of change
	Op Operation
	// where the change applies in the source container
	Key Key
	// payload of OpReplace, and of OpAdd on a mapping
	Value Value
	// payload of OpAdd on a sequence, inserted in order before Key
	Values []Value
	// number of source elements removed by OpRemove on a sequence
	Length int
	// child changes of OpPatch
	Diff Diff
}

// Consumed reports how many source and target sequence elements e accounts
// for. Walking both sequences with these counts visits every position once
func (e *Entry) Consumed() (src, dst int) {
	switch e.Op {
	case OpAdd:
		return 0, len(e.Values)
	case OpRemove:
		return e.Length, 0
	case OpReplace, OpPatch:
		return 1, 1
	default:
		return 0, 0
	}
}

// Diff is an ordered edit script for one container. Mapping diffs are sorted by
// key, sequence diffs by source position. an empty Diff means no changes
type Diff []*Entry

// MarshalJSON encodes an entry in compact array form: [op, key, payload]
func (e *Entry) MarshalJSON() ([]byte, error) {
	var key interface{}
	switch k := e.Key.(type) {
	case StringKey:
		key = string(k)
	case IndexKey:
		key = int(k)
	default:
		return nil, errors.Wrapf(ErrMalformedDiff, "entry key %T", e.Key)
	}

	v := []interface{}{e.Op, key}
	_, isIndex := e.Key.(IndexKey)
	switch e.Op {
	case OpAdd:
		if isIndex {
			vals := e.Values
			if vals == nil {
				vals = []Value{}
			}
			v = append(v, vals)
		} else {
			v = append(v, e.Value)
		}
	case OpRemove:
		if isIndex {
			v = append(v, e.Length)
		}
	case OpReplace:
		v = append(v, e.Value)
	case OpPatch:
		d := e.Diff
		if d == nil {
			d = Diff{}
		}
		v = append(v, d)
	default:
		return nil, errors.Wrapf(ErrMalformedDiff, "unknown operation %q", e.Op)
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes the compact array form written by MarshalJSON
func (e *Entry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) < 2 {
		return errors.Errorf("entry must have at least 2 elements, got %d", len(parts))
	}

	*e = Entry{}
	if err := json.Unmarshal(parts[0], &e.Op); err != nil {
		return errors.Wrap(err, "operation")
	}
	var name string
	if err := json.Unmarshal(parts[1], &name); err == nil {
		e.Key = StringKey(name)
	} else {
		var idx int
		if err := json.Unmarshal(parts[1], &idx); err != nil {
			return errors.Errorf("key must be a string or an integer, got %s", parts[1])
		}
		e.Key = IndexKey(idx)
	}

	payload := func() (json.RawMessage, error) {
		if len(parts) < 3 {
			return nil, errors.Errorf("operation %q at %s requires a payload", e.Op, e.Key)
		}
		return parts[2], nil
	}
	_, isIndex := e.Key.(IndexKey)

	switch e.Op {
	case OpAdd:
		raw, err := payload()
		if err != nil {
			return err
		}
		if isIndex {
			return json.Unmarshal(raw, &e.Values)
		}
		return json.Unmarshal(raw, &e.Value)
	case OpRemove:
		if isIndex {
			raw, err := payload()
			if err != nil {
				return err
			}
			return json.Unmarshal(raw, &e.Length)
		}
		return nil
	case OpReplace:
		raw, err := payload()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &e.Value)
	case OpPatch:
		raw, err := payload()
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &e.Diff)
	default:
		return errors.Errorf("unknown operation %q", e.Op)
	}
}

// String renders a single entry for debugging
func (e *Entry) String() string {
	switch e.Op {
	case OpAdd:
		if _, ok := e.Key.(IndexKey); ok {
			return fmt.Sprintf("%s%s: %v", e.Op, e.Key, e.Values)
		}
		return fmt.Sprintf("%s%s: %s", e.Op, e.Key, e.Value)
	case OpRemove:
		if _, ok := e.Key.(IndexKey); ok && e.Length != 1 {
			return fmt.Sprintf("%s%s: (%d)", e.Op, e.Key, e.Length)
		}
		return fmt.Sprintf("%s%s", e.Op, e.Key)
	case OpReplace:
		return fmt.Sprintf("%s%s: %s", e.Op, e.Key, e.Value)
	default:
		return fmt.Sprintf("%s%s: (%d changes)", e.Op, e.Key, len(e.Diff))
	}
}
