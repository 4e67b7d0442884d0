package structdiff

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Kind defines all of the atoms in our universe, or the types of data we
// will encounter while generating a diff
type Kind uint8

const (
	// KindNull is the zero kind, a zero Value is null
	KindNull Kind = iota
	// KindBool is a boolean scalar
	KindBool
	// KindNumber is a numeric scalar, stored as float64
	KindNumber
	// KindText is an opaque string. text is atomic for alignment purposes but
	// can be diffed by a TextDiffer
	KindText
	// KindSequence is an ordered list of values
	KindSequence
	// KindMapping is a string-keyed map that remembers key insertion order
	KindMapping
)

// String implements the fmt.Stringer interface for Kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a node in a document tree. Values are immutable once constructed,
// slices returned by accessors must not be modified
type Value struct {
	kind   Kind
	b      bool
	num    float64
	str    string
	items  []Value
	keys   []string
	fields map[string]Value
}

// Null returns the null value
func Null() Value { return Value{} }

// Bool wraps a boolean
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a number
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Text wraps a string
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Sequence creates a sequence from a list of values
func Sequence(items ...Value) Value {
	return Value{kind: KindSequence, items: items}
}

// Field is a single key-value pair of a mapping
type Field struct {
	Key   string
	Value Value
}

// Mapping creates a mapping that keeps the order fields are given in. A repeated
// key keeps its first position and its last value
func Mapping(fields ...Field) Value {
	v := Value{kind: KindMapping, fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		if _, ok := v.fields[f.Key]; !ok {
			v.keys = append(v.keys, f.Key)
		}
		v.fields[f.Key] = f.Value
	}
	return v
}

// Kind returns the discriminant of v
func (v Value) Kind() Kind { return v.kind }

// IsAtomic is true for values that alignment treats as a single unit: null,
// bools, numbers and text
func (v Value) IsAtomic() bool {
	return v.kind != KindSequence && v.kind != KindMapping
}

// Bool returns the boolean payload, false for other kinds
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload, 0 for other kinds
func (v Value) Number() float64 { return v.num }

// Text returns the string payload, "" for other kinds
func (v Value) Text() string { return v.str }

// Len is the number of children of a container, the number of runes in text
// (counting each invalid UTF-8 byte as one),
// and zero otherwise
func (v Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.keys)
	case KindText:
		return utf8.RuneCountInString(v.str)
	default:
		return 0
	}
}

// Items returns the elements of a sequence
func (v Value) Items() []Value { return v.items }

// Index returns the i-th element of a sequence
func (v Value) Index(i int) Value { return v.items[i] }

// Keys returns mapping keys in insertion order
func (v Value) Keys() []string { return v.keys }

// SortedKeys returns a sorted copy of the mapping keys
func (v Value) SortedKeys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	sort.Strings(keys)
	return keys
}

// Get returns a mapping entry
func (v Value) Get(key string) (Value, bool) {
	f, ok := v.fields[key]
	return f, ok
}

// Equal reports deep equality. mappings compare as sets of keys, ignoring
// insertion order
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindText:
		return v.str == o.str
	case KindSequence:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.keys) != len(o.keys) {
			return false
		}
		for key, fv := range v.fields {
			ov, ok := o.fields[key]
			if !ok || !fv.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromInterface converts the generic go types created by unmarshaling JSON into
// a Value. map keys carry no order, so they're inserted in sorted order
func FromInterface(i interface{}) (Value, error) {
	switch x := i.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{}, errors.Wrapf(err, "number %q", x.String())
		}
		return Number(f), nil
	case string:
		return Text(x), nil
	case Value:
		return x, nil
	case []interface{}:
		items := make([]Value, len(x))
		for idx, el := range x {
			v, err := FromInterface(el)
			if err != nil {
				return Value{}, errors.Wrapf(err, "index %d", idx)
			}
			items[idx] = v
		}
		return Sequence(items...), nil
	case map[string]interface{}:
		names := make([]string, 0, len(x))
		for name := range x {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, len(names))
		for idx, name := range names {
			v, err := FromInterface(x[name])
			if err != nil {
				return Value{}, errors.Wrapf(err, "key %q", name)
			}
			fields[idx] = Field{Key: name, Value: v}
		}
		return Mapping(fields...), nil
	default:
		return Value{}, errors.Wrapf(ErrUnsupportedValueKind, "unexpected type: %T", i)
	}
}

// MustFromInterface is FromInterface that panics on error, for literals in
// tests and examples
func MustFromInterface(i interface{}) Value {
	v, err := FromInterface(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Interface converts v back to generic go types: nil, bool, float64, string,
// []interface{} and map[string]interface{}
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.num
	case KindText:
		return v.str
	case KindSequence:
		items := make([]interface{}, len(v.items))
		for i, el := range v.items {
			items[i] = el.Interface()
		}
		return items
	case KindMapping:
		m := make(map[string]interface{}, len(v.keys))
		for key, el := range v.fields {
			m[key] = el.Interface()
		}
		return m
	default:
		return nil
	}
}

// MarshalJSON writes v as JSON, mapping keys in insertion order
func (v Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil, false)
}

// appendJSON writes JSON for v into buf, if sorted is true mapping keys are
// written in sorted order, giving a canonical encoding
func (v Value) appendJSON(buf []byte, sorted bool) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(buf, "null"...), nil
	case KindBool:
		return strconv.AppendBool(buf, v.b), nil
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, errors.Errorf("unsupported number: %v", v.num)
		}
		if sorted && v.num == 0 {
			// -0 is Equal to 0 and must encode the same
			return append(buf, '0'), nil
		}
		return strconv.AppendFloat(buf, v.num, 'g', -1, 64), nil
	case KindText:
		data, err := json.Marshal(v.str)
		if err != nil {
			return nil, err
		}
		return append(buf, data...), nil
	case KindSequence:
		var err error
		buf = append(buf, '[')
		for i, el := range v.items {
			if i > 0 {
				buf = append(buf, ',')
			}
			if buf, err = el.appendJSON(buf, sorted); err != nil {
				return nil, err
			}
		}
		return append(buf, ']'), nil
	case KindMapping:
		keys := v.keys
		if sorted {
			keys = v.SortedKeys()
		}
		buf = append(buf, '{')
		for i, key := range keys {
			if i > 0 {
				buf = append(buf, ',')
			}
			data, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf = append(append(buf, data...), ':')
			if buf, err = v.fields[key].appendJSON(buf, sorted); err != nil {
				return nil, err
			}
		}
		return append(buf, '}'), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedValueKind, "kind %s", v.kind)
	}
}

// UnmarshalJSON decodes JSON into v, preserving mapping key order
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// String renders v as compact JSON
func (v Value) String() string {
	data, err := v.appendJSON(nil, false)
	if err != nil {
		return fmt.Sprintf("<%s: %s>", v.kind, err)
	}
	return string(data)
}
