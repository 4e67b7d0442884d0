package structdiff

import (
	"strings"

	"github.com/pkg/errors"
)

// ElementSegment is the path segment that stands for any element of a
// sequence
const ElementSegment = "*"

// JoinPath appends a segment to a slash-separated path. The root path is ""
func JoinPath(path, segment string) string {
	return path + "/" + segment
}

// splitPath normalizes a path into its segments, ignoring leading, trailing
// and repeated slashes
func splitPath(path string) []string {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// DiffFunc computes the diff of two values found at path. It replaces the
// default recursive differ for the values a PathRule applies to. d is the
// differ running the calculation, call d.DiffAt to fall back to default
// behaviour
type DiffFunc func(d *Differ, a, b Value, path string) (Diff, error)

// PathRule configures diffing at one path
type PathRule struct {
	// Path is slash-separated, "*" segments stand for sequence elements.
	// eg: "/cells/*/outputs"
	Path string
	// Predicates decide which elements of a sequence at Path are paired,
	// ordered strictest first. More than one predicate enables multilevel
	// alignment
	Predicates []Predicate
	// Differ, if non-nil, computes diffs of the values at Path
	Differ DiffFunc
}

type pathNode struct {
	children map[string]*pathNode
	rule     *PathRule
}

// PathRegistry is an immutable lookup from paths to the predicates and
// differs that apply there. A nil *PathRegistry is valid and returns defaults
// for every path. Registries are safe for concurrent use
type PathRegistry struct {
	root pathNode
}

// NewPathRegistry builds a registry from rules. Each path may appear once
func NewPathRegistry(rules ...PathRule) (*PathRegistry, error) {
	reg := &PathRegistry{}
	for i := range rules {
		rule := rules[i]
		for j, p := range rule.Predicates {
			if p == nil {
				return nil, errors.Wrapf(ErrInvalidPath, "rule %q: predicate %d is nil", rule.Path, j)
			}
		}
		rule.Predicates = append([]Predicate(nil), rule.Predicates...)

		n := &reg.root
		for _, seg := range splitPath(rule.Path) {
			if n.children == nil {
				n.children = map[string]*pathNode{}
			}
			ch, ok := n.children[seg]
			if !ok {
				ch = &pathNode{}
				n.children[seg] = ch
			}
			n = ch
		}
		if n.rule != nil {
			return nil, errors.Wrapf(ErrInvalidPath, "duplicate rule for path %q", rule.Path)
		}
		n.rule = &rule
	}
	return reg, nil
}

// MustPathRegistry is NewPathRegistry that panics on error, for registries
// declared as package variables
func MustPathRegistry(rules ...PathRule) *PathRegistry {
	reg, err := NewPathRegistry(rules...)
	if err != nil {
		panic(err)
	}
	return reg
}

func (r *PathRegistry) lookup(path string) *PathRule {
	if r == nil {
		return nil
	}
	n := &r.root
	for _, seg := range splitPath(path) {
		ch, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = ch
	}
	return n.rule
}

var defaultPredicates = []Predicate{Equality}

// PredicatesAt returns the predicates registered for path, or a single
// Equality predicate if none are. The returned slice must not be modified
func (r *PathRegistry) PredicatesAt(path string) []Predicate {
	if rule := r.lookup(path); rule != nil && len(rule.Predicates) > 0 {
		return rule.Predicates
	}
	return defaultPredicates
}

// HasPredicates reports whether predicates were explicitly registered for path
func (r *PathRegistry) HasPredicates(path string) bool {
	rule := r.lookup(path)
	return rule != nil && len(rule.Predicates) > 0
}

// DifferAt returns the differ registered for path, defaulting to the
// structural differ
func (r *PathRegistry) DifferAt(path string) DiffFunc {
	if rule := r.lookup(path); rule != nil && rule.Differ != nil {
		return rule.Differ
	}
	return defaultDiffFunc
}

// HasDiffer reports whether a differ was explicitly registered for path
func (r *PathRegistry) HasDiffer(path string) bool {
	rule := r.lookup(path)
	return rule != nil && rule.Differ != nil
}

func defaultDiffFunc(d *Differ, a, b Value, path string) (Diff, error) {
	return d.DiffAt(a, b, path)
}
