package governance

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type catalogDocument struct {
	Roles  []GovernanceRole  `yaml:"roles"`
	Levels []GovernanceLevel `yaml:"levels"`
	Steps  []OnboardingStep  `yaml:"steps"`
}

// Parse decodes a YAML catalog document. Unknown fields and enumerated
// values outside their closed sets are rejected.
func Parse(data []byte) (*Catalog, error) {
	var doc catalogDocument
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(doc.Roles, doc.Levels, doc.Steps)
}

// LoadFile reads and parses a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
