package structdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMappingOrder(t *testing.T) {
	m := Mapping(
		Field{"b", Number(1)},
		Field{"a", Number(2)},
		Field{"b", Number(3)},
	)

	if diff := cmp.Diff([]string{"b", "a"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, m.SortedKeys()); diff != "" {
		t.Errorf("sorted keys mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("b"); v.Number() != 3 {
		t.Errorf("repeated key should keep its last value, got %s", v)
	}
	if m.String() != `{"b":3,"a":2}` {
		t.Errorf("unexpected encoding: %s", m)
	}
}

func TestValueEqual(t *testing.T) {
	cases := []struct {
		a, b  Value
		equal bool
	}{
		{Null(), Value{}, true},
		{Null(), Bool(false), false},
		{Bool(true), Bool(true), true},
		{Number(1), Number(1.0), true},
		{Number(1), Text("1"), false},
		{Number(math.NaN()), Number(math.NaN()), true},
		{Text("a"), Text("a"), true},
		{Text("a"), Text("b"), false},
		{Sequence(), Sequence(), true},
		{Sequence(), Mapping(), false},
		{Sequence(Number(1), Number(2)), Sequence(Number(2), Number(1)), false},
		{Mapping(Field{"a", Number(1)}, Field{"b", Number(2)}), Mapping(Field{"b", Number(2)}, Field{"a", Number(1)}), true},
		{Mapping(Field{"a", Number(1)}), Mapping(Field{"a", Number(1)}, Field{"b", Null()}), false},
		{Mapping(Field{"a", Sequence(Text("x"))}), Mapping(Field{"a", Sequence(Text("y"))}), false},
	}

	for i, c := range cases {
		if got := c.a.Equal(c.b); got != c.equal {
			t.Errorf("case %d: %s == %s: want %t, got %t", i, c.a, c.b, c.equal, got)
		}
		if got := c.b.Equal(c.a); got != c.equal {
			t.Errorf("case %d: equality isn't symmetric", i)
		}
		if c.equal && !math.IsNaN(c.a.Number()) && !bytes.Equal(c.a.Hash(), c.b.Hash()) {
			t.Errorf("case %d: equal values hash differently", i)
		}
	}
}

func TestValueLen(t *testing.T) {
	cases := []struct {
		v   Value
		len int
	}{
		{Null(), 0},
		{Number(12), 0},
		{Text("héllo"), 5},
		{Text("👍🏽"), 2},
		{Text("a\xff\xfe"), 3},
		{Sequence(Null(), Null()), 2},
		{Mapping(Field{"a", Null()}), 1},
	}
	for _, c := range cases {
		if got := c.v.Len(); got != c.len {
			t.Errorf("%s: want length %d, got %d", c.v, c.len, got)
		}
	}
}

func TestChars(t *testing.T) {
	cases := []struct {
		in     string
		expect []string
	}{
		{"", []string{}},
		{"héllo", []string{"h", "é", "l", "l", "o"}},
		{"a\xffb", []string{"a", "\xff", "b"}},
		{"\xe2\x82", []string{"\xe2", "\x82"}},
	}
	for _, c := range cases {
		got := Chars(c.in)
		if diff := cmp.Diff(c.expect, got); diff != "" {
			t.Errorf("%q: chars mismatch (-want +got):\n%s", c.in, diff)
		}
		if len(got) != Text(c.in).Len() {
			t.Errorf("%q: %d chars but Len is %d", c.in, len(got), Text(c.in).Len())
		}
	}
}

func TestHashSignedZero(t *testing.T) {
	a := MustFromInterface([]interface{}{0.0, map[string]interface{}{"z": 0.0}})
	b := Sequence(Number(math.Copysign(0, -1)), Mapping(Field{"z", Number(math.Copysign(0, -1))}))
	if !a.Equal(b) {
		t.Fatal("expected -0 to equal 0")
	}
	if !bytes.Equal(a.Hash(), b.Hash()) {
		t.Errorf("equal values hash differently: %s, %s", a.canonical(), b.canonical())
	}
	if b.String() != `[-0,{"z":-0}]` {
		t.Errorf("expected the insertion-order encoding to keep the sign, got %s", b)
	}
}

func TestFromInterface(t *testing.T) {
	var i interface{}
	if err := json.Unmarshal([]byte(`{"z":[1,"two",true,null],"a":{"b":1.5}}`), &i); err != nil {
		t.Fatal(err)
	}

	v, err := FromInterface(i)
	if err != nil {
		t.Fatal(err)
	}
	expect := `{"a":{"b":1.5},"z":[1,"two",true,null]}`
	if v.String() != expect {
		t.Errorf("want %s, got %s", expect, v)
	}

	if diff := cmp.Diff(i, v.Interface()); diff != "" {
		t.Errorf("Interface mismatch (-want +got):\n%s", diff)
	}

	if _, err := FromInterface(struct{}{}); !errors.Is(err, ErrUnsupportedValueKind) {
		t.Errorf("expected unsupported kind error, got: %v", err)
	}
	if _, err := FromInterface([]interface{}{1, make(chan int)}); !errors.Is(err, ErrUnsupportedValueKind) {
		t.Errorf("expected nested unsupported kind error, got: %v", err)
	}

	n, err := FromInterface(json.Number("42"))
	if err != nil || n.Number() != 42 {
		t.Errorf("expected 42, got %s (err: %v)", n, err)
	}
}

func TestValueJSON(t *testing.T) {
	src := `{"b":[1,2.5,-3e-7],"a":{"y":null,"x":"<tag>"},"c":true}`

	var v Value
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}

	var got Value
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !got.Equal(v) {
		t.Errorf("json round trip mismatch.\nwant: %s\ngot:  %s", v, got)
	}
	if diff := cmp.Diff([]string{"b", "a", "c"}, got.Keys()); diff != "" {
		t.Errorf("key order mismatch (-want +got):\n%s", diff)
	}

	if _, err := json.Marshal(Number(math.Inf(1))); err == nil {
		t.Error("expected an error encoding infinity")
	}
}
