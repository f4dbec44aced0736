package grid

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Dimension is one axis of a grid file. Either an explicit value list
// or an inclusive from/to span may be given, not both.
type Dimension struct {
	Values []int `yaml:"values"`
	From   *int  `yaml:"from"`
	To     *int  `yaml:"to"`
}

func (d Dimension) expand(name string) ([]int, error) {
	switch {
	case len(d.Values) > 0 && (d.From != nil || d.To != nil):
		return nil, fmt.Errorf(
			"dimension %s: values and from/to are mutually exclusive", name,
		)

	case len(d.Values) > 0:
		return d.Values, nil

	case d.From != nil && d.To != nil:
		if *d.To < *d.From {
			return nil, fmt.Errorf(
				"dimension %s: to %d is below from %d", name, *d.To, *d.From,
			)
		}

		values := make([]int, 0, *d.To-*d.From+1)
		for v := *d.From; v <= *d.To; v++ {
			values = append(values, v)
		}

		return values, nil

	default:
		return nil, fmt.Errorf("dimension %s: no values configured", name)
	}
}

type gridFile struct {
	Lambda Dimension `yaml:"lambda"`
	Tau    Dimension `yaml:"tau"`
}

// Load reads a grid definition from a YAML file. Each dimension gives
// either explicit values or an inclusive from/to span:
//
//	lambda:
//	  values: [40, 80]
//	tau:
//	  from: 10
//	  to: 20
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read grid file: %w", err)
	}

	var gf gridFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return Config{}, fmt.Errorf("parse grid file %s: %w", path, err)
	}

	lambdas, err := gf.Lambda.expand("lambda")
	if err != nil {
		return Config{}, err
	}

	taus, err := gf.Tau.expand("tau")
	if err != nil {
		return Config{}, err
	}

	return Config{Lambdas: lambdas, Taus: taus}, nil
}
