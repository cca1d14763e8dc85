package manifest

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse reads a ruleset manifest file and unmarshals it. Parsing is lenient:
// unknown fields are ignored here and only rejected by Validate.
func Parse(path string) (*RulesetManifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var m RulesetManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}

	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
