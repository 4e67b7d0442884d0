package difftest

import (
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/qri-io/structdiff"
)

// ValueComparer makes go-cmp compare Values with Value.Equal
var ValueComparer = cmp.Comparer(func(a, b structdiff.Value) bool {
	return a.Equal(b)
})

// Consumed sums the source & target elements a sequence diff accounts for,
// counting the unmentioned elements between entries as paired
func Consumed(srcLen int, d structdiff.Diff) (src, dst int) {
	for _, e := range d {
		idx := int(e.Key.(structdiff.IndexKey))
		if gap := idx - src; gap > 0 {
			src += gap
			dst += gap
		}
		a, b := e.Consumed()
		src += a
		dst += b
	}
	rest := srcLen - src
	return src + rest, dst + rest
}

// CheckCompleteness verifies a sequence diff accounts for every element of
// a source of srcLen and a target of dstLen elements exactly once
func CheckCompleteness(srcLen, dstLen int, d structdiff.Diff) error {
	src, dst := Consumed(srcLen, d)
	if src != srcLen || dst != dstLen {
		return errors.Errorf("diff consumes %d of %d source and %d of %d target elements", src, srcLen, dst, dstLen)
	}
	return nil
}

// RoundTrip diffs a against b, validates the result and checks replaying it
// on a reconstructs b
func RoundTrip(d *structdiff.Differ, a, b structdiff.Value) (structdiff.Diff, error) {
	diff, err := d.Diff(a, b)
	if err != nil {
		return nil, err
	}
	if err := structdiff.Validate(a, diff); err != nil {
		return diff, errors.Wrap(err, "validating")
	}
	got, err := Apply(a, diff)
	if err != nil {
		return diff, errors.Wrap(err, "applying")
	}
	if !got.Equal(b) {
		return diff, errors.Errorf("patched result mismatch:\nwant: %s\ngot:  %s\ndiff:\n%s", b, got, diff)
	}
	return diff, nil
}
