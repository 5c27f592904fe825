package dataset

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates/datasets.yaml
var exampleRulesTemplate string

// RulesFile represents a datasets.yaml document: the auxiliary
// datasets to attach and, per dataset, the ordered mapping rules.
type RulesFile struct {
	Datasets []DatasetRules `yaml:"datasets"`
}

// DatasetRules describes one auxiliary dataset.
type DatasetRules struct {
	// Name identifies the dataset after attachment. Defaults to the
	// file name without extension.
	Name string `yaml:"name,omitempty"`

	// File is the path to the dataset's CSV file (required).
	File string `yaml:"file"`

	// Mappings is the ordered list of mapping rules.
	Mappings []Rule `yaml:"mappings"`
}

// LoadRulesFile reads and validates a datasets.yaml file.
func LoadRulesFile(path string) (*RulesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read rules file %q: %w", path, err)
	}
	return ParseRulesFile(data)
}

// ParseRulesFile parses datasets.yaml content.
func ParseRulesFile(data []byte) (*RulesFile, error) {
	var res RulesFile
	if err := yaml.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("cannot parse rules file: %w", err)
	}

	for i := range res.Datasets {
		ds := &res.Datasets[i]
		if ds.File == "" {
			return nil, fmt.Errorf(
				"dataset %d: 'file' is required", i+1,
			)
		}
		if len(ds.Mappings) == 0 {
			return nil, fmt.Errorf(
				"dataset %q: 'mappings' is required", ds.File,
			)
		}
	}
	return &res, nil
}

// ExampleRulesFile returns the embedded datasets.yaml template with
// commented documentation of every field.
func ExampleRulesFile() string {
	return exampleRulesTemplate
}
