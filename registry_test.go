package structdiff

import (
	"errors"
	"testing"
)

func TestPathRegistryLookup(t *testing.T) {
	keyed := KeysEqual("id")
	reg, err := NewPathRegistry(
		PathRule{Path: "/cells", Predicates: []Predicate{Equality, keyed}},
		PathRule{Path: "cells/*/outputs/", Predicates: []Predicate{SameKind}},
		PathRule{Path: "/cells/*/metadata", Differ: func(d *Differ, a, b Value, path string) (Diff, error) {
			return nil, nil
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if preds := reg.PredicatesAt("/cells"); len(preds) != 2 || !IsEquality(preds[0]) {
		t.Errorf("expected 2 predicates at /cells, got %d", len(preds))
	}
	if preds := reg.PredicatesAt("//cells/*/outputs"); len(preds) != 1 || IsEquality(preds[0]) {
		t.Error("expected paths to be normalized")
	}
	if !reg.HasPredicates("/cells/*/outputs") || reg.HasPredicates("/cells/*") {
		t.Error("HasPredicates mismatch")
	}

	// intermediate and unknown paths fall back to defaults
	for _, p := range []string{"", "/", "/cells/*", "/cells/0", "/other", "/cells/*/metadata"} {
		preds := reg.PredicatesAt(p)
		if len(preds) != 1 || !IsEquality(preds[0]) {
			t.Errorf("%q: expected the default predicate", p)
		}
	}

	if !reg.HasDiffer("/cells/*/metadata") || reg.HasDiffer("/cells") {
		t.Error("HasDiffer mismatch")
	}
	if d, err := reg.DifferAt("/cells/*/metadata")(New(), Number(1), Number(2), "/cells/*/metadata"); d != nil || err != nil {
		t.Errorf("expected the registered differ, got %v, %v", d, err)
	}
	if _, err := reg.DifferAt("/cells")(New(), Number(1), Number(2), "/cells"); !errors.Is(err, ErrUnsupportedValueKind) {
		t.Errorf("expected the default differ, got: %v", err)
	}
}

func TestNilPathRegistry(t *testing.T) {
	var reg *PathRegistry
	if preds := reg.PredicatesAt("/a"); len(preds) != 1 || !IsEquality(preds[0]) {
		t.Error("expected the default predicate")
	}
	if reg.HasPredicates("/a") || reg.HasDiffer("/a") {
		t.Error("expected nothing registered")
	}
	if reg.DifferAt("/a") == nil {
		t.Error("expected a default differ")
	}
}

func TestNewPathRegistryErrors(t *testing.T) {
	if _, err := NewPathRegistry(PathRule{Path: "/a"}, PathRule{Path: "a/"}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected duplicate paths to be rejected, got: %v", err)
	}
	if _, err := NewPathRegistry(PathRule{Path: "/a", Predicates: []Predicate{Equality, nil}}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected nil predicates to be rejected, got: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected MustPathRegistry to panic")
		}
	}()
	MustPathRegistry(PathRule{Path: "/"}, PathRule{Path: ""})
}

func TestPathRegistryCopiesPredicates(t *testing.T) {
	preds := []Predicate{Equality}
	reg := MustPathRegistry(PathRule{Path: "/a", Predicates: preds})
	preds[0] = SameKind
	if !IsEquality(reg.PredicatesAt("/a")[0]) {
		t.Error("registry shares its predicate slice with the caller")
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		path, seg, expect string
	}{
		{"", "cells", "/cells"},
		{"/cells", ElementSegment, "/cells/*"},
		{"/cells/*", "source", "/cells/*/source"},
	}
	for _, c := range cases {
		if got := JoinPath(c.path, c.seg); got != c.expect {
			t.Errorf("JoinPath(%q, %q): want %q, got %q", c.path, c.seg, c.expect, got)
		}
	}
}
