package structdiff_test

import (
	"encoding/json"
	"fmt"

	"github.com/qri-io/structdiff"
)

func Example() {
	// start with two slightly different json documents
	a, err := structdiff.ParseJSON([]byte(`{
		"a": 100,
		"baz": {
			"d": "apples-and-oranges"
		}
	}`))
	if err != nil {
		panic(err)
	}

	b, err := structdiff.ParseJSON([]byte(`{
		"a": 99,
		"baz": {
			"d": "apples-and-oranges",
			"e": "thirty-thousand-something-dogecoin"
		}
	}`))
	if err != nil {
		panic(err)
	}

	// create a differ, using the default configuration
	dd := structdiff.New()

	// Diff produces a slice of entries that describe the structured changes
	diff, err := dd.Diff(a, b)
	if err != nil {
		panic(err)
	}

	// diffs use a custom compact JSON Marshaller
	output, err := json.MarshalIndent(diff, "", "  ")
	if err != nil {
		panic(err)
	}

	fmt.Println(string(output))
	// Output:
	// [
	//   [
	//     "~",
	//     "a",
	//     99
	//   ],
	//   [
	//     " ",
	//     "baz",
	//     [
	//       [
	//         "+",
	//         "e",
	//         "thirty-thousand-something-dogecoin"
	//       ]
	//     ]
	//   ]
	// ]
}

func ExampleDiffer_DiffText() {
	diff, err := structdiff.New().DiffText("kitten", "sitting")
	if err != nil {
		panic(err)
	}
	fmt.Print(diff)
	// Output:
	// ~0: "s"
	// ~4: "i"
	// +6: ["g"]
}

func ExamplePathRegistry() {
	// cells are first paired when identical, leftover cells are then paired
	// by id and diffed
	reg := structdiff.MustPathRegistry(structdiff.PathRule{
		Path:       "/cells",
		Predicates: []structdiff.Predicate{structdiff.Equality, structdiff.KeysEqual("id")},
	})

	a, _ := structdiff.ParseJSON([]byte(`{"cells":[{"id":"a","source":"x = 1"},{"id":"b","source":"print(x)"}]}`))
	b, _ := structdiff.ParseJSON([]byte(`{"cells":[{"id":"a","source":"x = 2"},{"id":"b","source":"print(x)"}]}`))

	stats := &structdiff.Stats{}
	diff, err := structdiff.New(structdiff.OptionRegistry(reg), structdiff.OptionSetStats(stats)).Diff(a, b)
	if err != nil {
		panic(err)
	}

	output, err := json.Marshal(diff)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(output))
	fmt.Print(structdiff.FormatPrettyStats(stats))
	// Output:
	// [[" ","cells",[[" ",0,[[" ","source",[["~",4,"2"]]]]]]]]
	// 0 elements. 0 inserts. 0 deletes. 1 replace. 3 patches.
}
