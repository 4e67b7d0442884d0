package structdiff

import (
	"github.com/rivo/uniseg"

	"github.com/qri-io/structdiff/internal/align"
)

// Predicate decides whether two values at a path are "the same" for alignment
// purposes. It is not necessarily equality: a predicate may pair values that
// are similar, leaving their differences to a recursive diff
type Predicate interface {
	Match(a, b Value) bool
}

// PredicateFunc adapts a function to the Predicate interface
type PredicateFunc func(a, b Value) bool

// Match implements the Predicate interface
func (f PredicateFunc) Match(a, b Value) bool { return f(a, b) }

type equality struct{}

func (equality) Match(a, b Value) bool { return a.Equal(b) }

// Equality is the default predicate, deep value equality. It's the only
// predicate the library-assisted strategy accepts
var Equality Predicate = equality{}

// IsEquality reports whether p is the plain Equality predicate
func IsEquality(p Predicate) bool {
	_, ok := p.(equality)
	return ok
}

// SameKind pairs any two values of the same kind
var SameKind Predicate = PredicateFunc(func(a, b Value) bool {
	return a.Kind() == b.Kind()
})

// KeysEqual pairs two mappings that hold equal values (or are both missing)
// for every listed key. Values that aren't mappings never match
func KeysEqual(keys ...string) Predicate {
	return PredicateFunc(func(a, b Value) bool {
		if a.Kind() != KindMapping || b.Kind() != KindMapping {
			return false
		}
		for _, key := range keys {
			av, aok := a.Get(key)
			bv, bok := b.Get(key)
			if aok != bok || (aok && !av.Equal(bv)) {
				return false
			}
		}
		return true
	})
}

// SimilarText pairs two text values whose grapheme-level similarity ratio is
// above threshold, in [0, 1]. equal texts always match. Sequences of text,
// such as multi-line sources stored as a list of lines, are joined before
// comparing
func SimilarText(threshold float64) Predicate {
	return PredicateFunc(func(a, b Value) bool {
		as, aok := joinedText(a)
		bs, bok := joinedText(b)
		if !aok || !bok {
			return false
		}
		if as == bs {
			return true
		}
		return align.Similarity(graphemes(as), graphemes(bs), threshold) > threshold
	})
}

func joinedText(v Value) (string, bool) {
	switch v.Kind() {
	case KindText:
		return v.Text(), true
	case KindSequence:
		s := ""
		for _, el := range v.Items() {
			if el.Kind() != KindText {
				return "", false
			}
			s += el.Text()
		}
		return s, true
	default:
		return "", false
	}
}

// graphemes splits s into user-perceived characters
func graphemes(s string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}
