package structdiff

import "errors"

// Sentinel errors returned by diff calculation. Errors returned by this package
// wrap one of these with context, match them with errors.Is
var (
	// ErrUnsupportedValueKind is returned when two values can't be diffed. only
	// pairs of sequences, mappings or text are diffable
	ErrUnsupportedValueKind = errors.New("unsupported value kind")

	// ErrUnsupportedPredicate is returned when the library-assisted sequence
	// strategy is asked to align with anything other than Equality
	ErrUnsupportedPredicate = errors.New("unsupported predicate")

	// ErrPredicateConflict is returned when predicates are registered for a path
	// that resolves to a plain equality comparison of mapping entries
	ErrPredicateConflict = errors.New("predicate conflict")

	// ErrMalformedDiff is returned when a diff fails structural validation
	ErrMalformedDiff = errors.New("malformed diff")

	// ErrInvalidPath is returned when a path registry is built from bad rules
	ErrInvalidPath = errors.New("invalid path")
)
