package attribute

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema is returned by Validate for empty schemas, unnamed or
// duplicated attributes and unknown kinds.
var ErrInvalidSchema = errors.New("invalid attribute schema")

// AttributeDef declares one named attribute of a credential.
type AttributeDef struct {
	Name string `json:"name" yaml:"name"`
	Kind Kind   `json:"kind" yaml:"kind"`
}

// Schema is the ordered list of attributes of a credential type. The order
// of Attributes is the order in which encoded values are handed to the
// signer.
type Schema struct {
	Name       string         `json:"name" yaml:"name"`
	Attributes []AttributeDef `json:"attributes" yaml:"attributes"`
}

// LoadSchema reads and validates a schema file. JSON is accepted as well,
// being a subset of YAML.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	return ParseSchema(data)
}

// ParseSchema decodes and validates a YAML or JSON schema.
func ParseSchema(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the schema declares at least one attribute, and that
// every attribute has a unique non-empty name and a supported kind.
func (s *Schema) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: missing schema", ErrInvalidSchema)
	}
	if len(s.Attributes) == 0 {
		return fmt.Errorf("%w: %q declares no attributes", ErrInvalidSchema, s.Name)
	}
	seen := make(map[string]struct{}, len(s.Attributes))
	for i, a := range s.Attributes {
		if a.Name == "" {
			return fmt.Errorf("%w: %q: attribute %d has no name", ErrInvalidSchema, s.Name, i)
		}
		if _, ok := seen[a.Name]; ok {
			return fmt.Errorf("%w: %q: duplicated attribute %q", ErrInvalidSchema, s.Name, a.Name)
		}
		seen[a.Name] = struct{}{}
		if !a.Kind.Valid() {
			return fmt.Errorf("%w: %q: attribute %q: %w: %q", ErrInvalidSchema, s.Name, a.Name, ErrUnknownKind, a.Kind)
		}
	}
	return nil
}

// Names returns the attribute names in schema order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Attributes))
	for i, a := range s.Attributes {
		names[i] = a.Name
	}
	return names
}
