// Package backends is the registry of the attribute domains supported by the
// encoder.
package backends

import (
	"fmt"
	"slices"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/bigring"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/bls12381"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/bn254"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/ring256"
)

// Default is the backend used when none is selected.
const Default = bls12381.BackendType

// ringWidths are the RSA-style ring widths exposed by the registry.
var ringWidths = []uint{2048, 3072, 4096}

// New creates the backend identified by backendType. The supported types are
// listed by Backends, IsValid can be used to check a type beforehand.
func New(backendType string) (domain.Backend, error) {
	switch backendType {
	case bls12381.BackendType:
		return bls12381.Backend{}, nil
	case bn254.BackendType:
		return bn254.Backend{}, nil
	case ring256.BackendType:
		return ring256.Backend{}, nil
	}
	for _, bits := range ringWidths {
		if backendType == bigring.BackendType(bits) {
			return bigring.New(bits)
		}
	}
	return nil, fmt.Errorf("unsupported backend type: %q", backendType)
}

// Backends returns the list of supported backend types.
func Backends() []string {
	types := []string{
		bls12381.BackendType,
		bn254.BackendType,
		ring256.BackendType,
	}
	for _, bits := range ringWidths {
		types = append(types, bigring.BackendType(bits))
	}
	return types
}

func IsValid(backendType string) bool {
	return slices.Contains(Backends(), backendType)
}
