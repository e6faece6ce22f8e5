package config

import (
	"fmt"

	"github.com/a1s/gridbind/internal/config/data"
	"github.com/a1s/gridbind/internal/model1"
)

// Seed represents initial grid content.
type Seed struct {
	Columns  []string        `yaml:"columns"`
	Sections model1.Sections `yaml:"sections"`
}

// LoadSeed reads seed content from a YAML file.
func LoadSeed(path string) (*Seed, error) {
	var s Seed
	if err := data.LoadYAML(path, &s); err != nil {
		return nil, err
	}
	if len(s.Columns) == 0 {
		return nil, fmt.Errorf("seed %s: no columns", path)
	}
	for _, sec := range s.Sections {
		for _, r := range sec.Rows {
			if r.ID == "" {
				return nil, fmt.Errorf("seed %s: row without id in section %q", path, sec.Name)
			}
		}
	}

	return &s, nil
}

// DefaultSeed returns the content shown when no seed is configured.
func DefaultSeed() *Seed {
	return &Seed{
		Columns: []string{"NAME", "KIND", "QTY" + model1.NumericSuffix},
		Sections: model1.Sections{
			{
				Name: "fruits",
				Rows: model1.Rows{
					model1.NewRow("f1", "apple", "pome", "12"),
					model1.NewRow("f2", "banana", "berry", "6"),
					model1.NewRow("f3", "cherry", "drupe", "40"),
				},
			},
			{
				Name: "vegetables",
				Rows: model1.Rows{
					model1.NewRow("v1", "carrot", "root", "8"),
					model1.NewRow("v2", "kale", "leaf", "2"),
				},
			},
		},
	}
}
