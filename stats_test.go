package structdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCalcStats(t *testing.T) {
	a, err := ParseJSON([]byte(`{"a": 100,"foo": [1,2,3],"bar": false}`))
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseJSON([]byte(`{"a": 99,"foo": [1,2,3,4],"baz": "x"}`))
	if err != nil {
		t.Fatal(err)
	}

	expect := &Stats{
		Left:     7,
		Right:    8,
		Adds:     2,
		Removes:  1,
		Replaces: 1,
		Patches:  1,
		Inserted: 2,
		Deleted:  1,
	}
	stats := &Stats{}
	if _, err := New(OptionSetStats(stats)).Diff(a, b); err != nil {
		t.Fatal(err)
	}

	if expect.NodeChange() != stats.NodeChange() {
		t.Errorf("wrong node change. want: %d. got: %d", expect.NodeChange(), stats.NodeChange())
	}
	if expect.Edits() != stats.Edits() {
		t.Errorf("wrong edit count. want: %d. got: %d", expect.Edits(), stats.Edits())
	}
	if diff := cmp.Diff(expect, stats); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestCalcStatsRuns(t *testing.T) {
	a := Sequence(Number(1), Number(2), Number(3), Number(4))
	b := Sequence(Number(4), Number(5), Number(6))
	d := Diff{
		{Op: OpRemove, Key: IndexKey(0), Length: 3},
		{Op: OpAdd, Key: IndexKey(4), Values: []Value{Number(5), Number(6)}},
	}

	st := CalcStats(a, b, d)
	if st.Adds != 1 || st.Removes != 1 || st.Inserted != 2 || st.Deleted != 3 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.NodeChange() != -1 || st.Edits() != 5 {
		t.Errorf("unexpected totals. change: %d, edits: %d", st.NodeChange(), st.Edits())
	}
}
