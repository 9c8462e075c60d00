package layout

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Parse unmarshals raw YAML bytes into a Layout without semantic validation.
// Callers that intend to materialize the layout should also call Validate.
func Parse(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	return &l, nil
}

// ParseFile reads a layout file and returns the parsed Layout.
func ParseFile(path string) (*Layout, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing layout %s: %w", path, err)
	}
	return l, nil
}

// Load parses and semantically validates a layout in one step.
func Load(data []byte) (*Layout, error) {
	l, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// LoadFile reads, parses, and semantically validates a layout file.
func LoadFile(path string) (*Layout, error) {
	l, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
