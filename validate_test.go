package structdiff

import (
	"errors"
	"testing"
)

func TestValidateSequence(t *testing.T) {
	patch := Diff{{Op: OpRemove, Key: StringKey("a")}}
	cases := []struct {
		description string
		diff        Diff
		srcLen      int
		ok          bool
	}{
		{"empty", nil, 0, true},
		{"add at end", Diff{{Op: OpAdd, Key: IndexKey(2), Values: []Value{Null()}}}, 2, true},
		{"add then replace at same key", Diff{
			{Op: OpAdd, Key: IndexKey(0), Values: []Value{Null()}},
			{Op: OpReplace, Key: IndexKey(0), Value: Null()},
		}, 1, true},
		{"remove then add past the run", Diff{
			{Op: OpRemove, Key: IndexKey(0), Length: 2},
			{Op: OpAdd, Key: IndexKey(2), Values: []Value{Null()}},
		}, 2, true},
		{"patch", Diff{{Op: OpPatch, Key: IndexKey(0), Diff: patch}}, 1, true},

		{"nil entry", Diff{nil}, 1, false},
		{"string key", Diff{{Op: OpRemove, Key: StringKey("a"), Length: 1}}, 1, false},
		{"add past end", Diff{{Op: OpAdd, Key: IndexKey(3), Values: []Value{Null()}}}, 2, false},
		{"empty add", Diff{{Op: OpAdd, Key: IndexKey(0)}}, 2, false},
		{"duplicate add", Diff{
			{Op: OpAdd, Key: IndexKey(0), Values: []Value{Null()}},
			{Op: OpAdd, Key: IndexKey(0), Values: []Value{Null()}},
		}, 1, false},
		{"zero length remove", Diff{{Op: OpRemove, Key: IndexKey(0)}}, 1, false},
		{"remove past end", Diff{{Op: OpRemove, Key: IndexKey(1), Length: 2}}, 2, false},
		{"replace past end", Diff{{Op: OpReplace, Key: IndexKey(2), Value: Null()}}, 2, false},
		{"overlapping remove", Diff{
			{Op: OpRemove, Key: IndexKey(0), Length: 2},
			{Op: OpReplace, Key: IndexKey(1), Value: Null()},
		}, 3, false},
		{"decreasing keys", Diff{
			{Op: OpReplace, Key: IndexKey(1), Value: Null()},
			{Op: OpReplace, Key: IndexKey(0), Value: Null()},
		}, 3, false},
		{"empty patch", Diff{{Op: OpPatch, Key: IndexKey(0)}}, 1, false},
		{"unknown op", Diff{{Op: Operation("?"), Key: IndexKey(0)}}, 1, false},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := ValidateSequence(c.diff, c.srcLen)
			if c.ok && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.ok && !errors.Is(err, ErrMalformedDiff) {
				t.Errorf("expected a malformed diff error, got: %v", err)
			}
		})
	}
}

func TestValidateMapping(t *testing.T) {
	cases := []struct {
		description string
		diff        Diff
		ok          bool
	}{
		{"sorted", Diff{{Op: OpRemove, Key: StringKey("a")}, {Op: OpAdd, Key: StringKey("b"), Value: Null()}}, true},
		{"unsorted", Diff{{Op: OpRemove, Key: StringKey("b")}, {Op: OpAdd, Key: StringKey("a"), Value: Null()}}, false},
		{"repeated", Diff{{Op: OpRemove, Key: StringKey("a")}, {Op: OpAdd, Key: StringKey("a"), Value: Null()}}, false},
		{"index key", Diff{{Op: OpRemove, Key: IndexKey(0)}}, false},
		{"empty patch", Diff{{Op: OpPatch, Key: StringKey("a")}}, false},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := ValidateMapping(c.diff)
			if c.ok && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.ok && !errors.Is(err, ErrMalformedDiff) {
				t.Errorf("expected a malformed diff error, got: %v", err)
			}
		})
	}
}

func TestValidateAgainstSource(t *testing.T) {
	src := Mapping(
		Field{"list", Sequence(Number(1), Mapping(Field{"k", Text("v")}))},
		Field{"text", Text("abc")},
	)

	cases := []struct {
		description string
		diff        Diff
		ok          bool
	}{
		{"valid nested", Diff{
			{Op: OpPatch, Key: StringKey("list"), Diff: Diff{
				{Op: OpPatch, Key: IndexKey(1), Diff: Diff{{Op: OpReplace, Key: StringKey("k"), Value: Null()}}},
			}},
			{Op: OpPatch, Key: StringKey("text"), Diff: Diff{{Op: OpRemove, Key: IndexKey(2), Length: 1}}},
		}, true},
		{"add of existing key", Diff{{Op: OpAdd, Key: StringKey("list"), Value: Null()}}, false},
		{"remove of missing key", Diff{{Op: OpRemove, Key: StringKey("nope")}}, false},
		{"nested index out of range", Diff{
			{Op: OpPatch, Key: StringKey("list"), Diff: Diff{{Op: OpReplace, Key: IndexKey(2), Value: Null()}}},
		}, false},
		{"nested missing key", Diff{
			{Op: OpPatch, Key: StringKey("list"), Diff: Diff{
				{Op: OpPatch, Key: IndexKey(1), Diff: Diff{{Op: OpRemove, Key: StringKey("x")}}},
			}},
		}, false},
		{"patch inside text", Diff{
			{Op: OpPatch, Key: StringKey("text"), Diff: Diff{
				{Op: OpPatch, Key: IndexKey(0), Diff: Diff{{Op: OpRemove, Key: IndexKey(0), Length: 1}}},
			}},
		}, false},
		{"text past end", Diff{
			{Op: OpPatch, Key: StringKey("text"), Diff: Diff{{Op: OpRemove, Key: IndexKey(2), Length: 2}}},
		}, false},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			err := Validate(src, c.diff)
			if c.ok && err != nil {
				t.Errorf("unexpected error: %s", err)
			}
			if !c.ok && !errors.Is(err, ErrMalformedDiff) {
				t.Errorf("expected a malformed diff error, got: %v", err)
			}
		})
	}

	if err := Validate(Number(1), Diff{{Op: OpRemove, Key: StringKey("a")}}); !errors.Is(err, ErrMalformedDiff) {
		t.Errorf("expected diffs of atomic values to be rejected, got: %v", err)
	}
}
