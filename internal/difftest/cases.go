package difftest

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/qri-io/structdiff"
)

// Case is a fixture pairing a source & destination document
type Case struct {
	Description string
	// Strategy names the alignment strategy to use, empty for the default
	Strategy string
	Src, Dst structdiff.Value
}

type rawCase struct {
	Description string    `yaml:"description"`
	Strategy    string    `yaml:"strategy"`
	Src         yaml.Node `yaml:"src"`
	Dst         yaml.Node `yaml:"dst"`
}

// LoadCases reads a YAML list of fixtures from path
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []rawCase
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	cases := make([]Case, len(raw))
	for i, rc := range raw {
		src, err := structdiff.FromYAMLNode(&rc.Src)
		if err != nil {
			return nil, errors.Wrapf(err, "case %d (%s): src", i, rc.Description)
		}
		dst, err := structdiff.FromYAMLNode(&rc.Dst)
		if err != nil {
			return nil, errors.Wrapf(err, "case %d (%s): dst", i, rc.Description)
		}
		cases[i] = Case{Description: rc.Description, Strategy: rc.Strategy, Src: src, Dst: dst}
	}
	return cases, nil
}
