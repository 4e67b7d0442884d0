// Package structdiff is a structured data differ for semi-structured documents
// like notebooks, where list elements are reordered, inserted or edited and
// whether two elements are "the same" can't always be answered by equality.
//
// Documents are trees of Values: two container kinds
//   sequence, mapping
// and four atomic kinds
//   null, bool, number, text
// Values can be decoded from JSON or YAML with document key order intact
// (ParseJSON, ParseYAML), or converted from the go types created by
// unmarshaling into an interface{} (FromInterface).
//
// A Diff is an edit script for one container: Add, Remove, Replace and Patch
// entries, where Patch carries a nested Diff for an element present on both
// sides. Mapping diffs are sorted by key, sequence diffs by source position.
// Text is diffed character by character.
//
// Sequences are aligned before they're diffed. Which elements can be paired
// is decided by Predicates, configured per path in a PathRegistry:
//   "/cells"           the cells list of a notebook
//   "/cells/*"         any cell
//   "/cells/*/outputs" the outputs list of any cell
// Registering more than one predicate for a path enables multilevel
// alignment: elements are first paired with the strictest predicate, the gaps
// left over are then aligned with looser ones. Paired elements that differ are
// diffed recursively, and a PathRule can replace the differ used below a path.
//
// Three alignment strategies are available: Myers' O(ND) algorithm (the
// default), an exhaustive O(NM) table for small inputs, and difflib's matching
// blocks heuristic for plain equality.
//
// Diffing is a pure, synchronous computation: inputs are never modified and a
// Differ can be shared between goroutines.
package structdiff
