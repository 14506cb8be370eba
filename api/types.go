package api

import (
	"github.com/vocdoni/davinci-attrenc/attribute"
	"github.com/vocdoni/davinci-attrenc/types"
)

// EncodeRequest is the body of POST /encode. An empty backend selects the
// server default.
type EncodeRequest struct {
	Backend string         `json:"backend,omitempty"`
	Kind    attribute.Kind `json:"kind"`
	Value   string         `json:"value"`
}

// EncodeSetRequest is the body of POST /encode/set.
type EncodeSetRequest struct {
	Backend string            `json:"backend,omitempty"`
	Schema  *attribute.Schema `json:"schema"`
	Values  map[string]string `json:"values"`
}

// EncodeSetResponse holds the encoded attributes in schema order.
type EncodeSetResponse struct {
	Backend    string                        `json:"backend" cbor:"0,keyasint"`
	Schema     string                        `json:"schema,omitempty" cbor:"1,keyasint,omitempty"`
	Attributes []*attribute.EncodedAttribute `json:"attributes" cbor:"2,keyasint"`
}

// BackendInfo describes the encoding constants of a backend.
type BackendInfo struct {
	Type             string        `json:"type"`
	Size             int           `json:"size"`
	ZeroBits         uint          `json:"zeroBits"`
	Max              *types.BigInt `json:"max"`
	ZeroCenter       *types.BigInt `json:"zeroCenter"`
	PositiveInfinity *types.BigInt `json:"positiveInfinity"`
	Default          bool          `json:"default,omitempty"`
}

// BackendsResponse is the response of GET /backends.
type BackendsResponse struct {
	Backends []BackendInfo    `json:"backends"`
	Kinds    []attribute.Kind `json:"kinds"`
}
