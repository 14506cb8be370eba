package attribute

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
	"github.com/vocdoni/davinci-attrenc/types"
)

var (
	// ErrMissingAttribute is returned by EncodeSet when a schema attribute
	// has no value.
	ErrMissingAttribute = errors.New("missing attribute value")
	// ErrUnexpectedAttribute is returned by EncodeSet when a value does not
	// belong to the schema.
	ErrUnexpectedAttribute = errors.New("attribute not in schema")
)

// EncodedAttribute is the wire form of an encoded attribute: the decimal
// value and its fixed-width big-endian bytes.
type EncodedAttribute struct {
	Name  string         `json:"name,omitempty" cbor:"0,keyasint,omitempty"`
	Kind  Kind           `json:"kind" cbor:"1,keyasint"`
	Value *types.BigInt  `json:"value" cbor:"2,keyasint"`
	Bytes types.HexBytes `json:"bytes" cbor:"3,keyasint"`
}

// NewEncodedAttribute wraps an encoded element for transport.
func NewEncodedAttribute(name string, kind Kind, el domain.Element) *EncodedAttribute {
	return &EncodedAttribute{
		Name:  name,
		Kind:  kind,
		Value: new(types.BigInt).SetBigInt(el.BigInt()),
		Bytes: el.Bytes(),
	}
}

// EncodeSet encodes the raw values of a credential in schema order. Every
// schema attribute must have a value and no other value is allowed. Either
// all attributes are encoded or an error naming the first offending
// attribute is returned.
func (e *Encoder) EncodeSet(s *Schema, values map[string]string) ([]*EncodedAttribute, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	names := s.Names()
	var unexpected []string
	for name := range values {
		if !slices.Contains(names, name) {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) > 0 {
		slices.Sort(unexpected)
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedAttribute, unexpected[0])
	}

	out := make([]*EncodedAttribute, 0, len(s.Attributes))
	for _, a := range s.Attributes {
		raw, ok := values[a.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingAttribute, a.Name)
		}
		el, err := e.Encode(a.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		out = append(out, NewEncodedAttribute(a.Name, a.Kind, el))
	}
	return out, nil
}
