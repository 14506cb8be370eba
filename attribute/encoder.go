// Package attribute encodes credential attribute values (RFC3339 dates,
// IEEE-754 doubles, signed and unsigned integers) into integers of a
// cryptographic domain, so they can be signed and later used in range and
// comparison proofs.
//
// Every encoding is centered on 2^B (the zero-center of the backend): values
// of the same kind keep their order under integer comparison of the encoded
// elements, and negative values land below the center. Non-finite and
// subnormal doubles map to fixed sentinels that no finite value can reach.
//
// An Encoder is immutable after construction and safe for concurrent use.
package attribute

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

var (
	// ErrMalformedInput is returned when a textual attribute value cannot be
	// parsed (an invalid RFC3339 date or an invalid number).
	ErrMalformedInput = errors.New("malformed attribute input")
	// ErrUnknownKind is returned when dispatching on an unsupported Kind.
	ErrUnknownKind = errors.New("unknown attribute kind")
)

// Sentinel encodings of the degenerate float categories. Positive infinity
// is encoded as the backend maximum minus PosInfOffset.
const (
	NaNSentinel       = 1
	SubnormalSentinel = 2
	NegInfSentinel    = 8
	PosInfOffset      = 9
)

// MinZeroBits is the smallest zero-center exponent an Encoder accepts. Below
// it the float layout cannot keep its three bands apart.
const MinZeroBits = 128

// Encoder maps attribute values into the domain of a single backend.
type Encoder struct {
	backend domain.Backend
	zero    domain.Element // 2^B
	posInf  domain.Element // max - PosInfOffset
	float   floatLayout
}

// NewEncoder returns an encoder for the given backend. It fails if the
// backend cannot hold every finite encoding strictly between the low
// sentinels and the positive infinity sentinel.
func NewEncoder(b domain.Backend) (*Encoder, error) {
	if b == nil {
		return nil, fmt.Errorf("missing backend")
	}
	bits := b.ZeroBits()
	if bits < MinZeroBits {
		return nil, fmt.Errorf("backend %s: zero-center bits %d below minimum %d", b.Type(), bits, MinZeroBits)
	}
	zero, err := domain.ZeroCenter(b)
	if err != nil {
		return nil, fmt.Errorf("backend %s: zero-center: %w", b.Type(), err)
	}
	top := b.Max()
	top.Sub(top, big.NewInt(PosInfOffset))
	posInf := b.New()
	if err := posInf.SetBigInt(top); err != nil {
		return nil, fmt.Errorf("backend %s: positive infinity sentinel: %w", b.Type(), err)
	}

	// finite encodings lie in (zero - limit, zero + limit)
	layout := newFloatLayout(bits)
	center := zero.BigInt()
	if low := new(big.Int).Sub(center, layout.limit); low.Cmp(big.NewInt(NegInfSentinel)) < 0 {
		return nil, fmt.Errorf("backend %s: finite encodings reach the low sentinels", b.Type())
	}
	if high := new(big.Int).Add(center, layout.limit); high.Cmp(top) > 0 {
		return nil, fmt.Errorf("backend %s: finite encodings reach the positive infinity sentinel", b.Type())
	}
	return &Encoder{
		backend: b,
		zero:    zero,
		posInf:  posInf,
		float:   layout,
	}, nil
}

// MustNewEncoder is like NewEncoder but panics on error. It is meant for
// the statically known backends of the registry.
func MustNewEncoder(b domain.Backend) *Encoder {
	e, err := NewEncoder(b)
	if err != nil {
		panic(err)
	}
	return e
}

// Backend returns the backend the encoder was built for.
func (e *Encoder) Backend() domain.Backend {
	return e.backend
}

// ZeroCenter returns a new element holding 2^B.
func (e *Encoder) ZeroCenter() domain.Element {
	return e.backend.New().Set(e.zero)
}

// PositiveInfinity returns a new element holding the +Inf sentinel.
func (e *Encoder) PositiveInfinity() domain.Element {
	return e.backend.New().Set(e.posInf)
}

// center returns zero+mag, or zero-mag when neg is set. Magnitudes are
// bounded by construction, so leaving the domain here is a programming
// error.
func (e *Encoder) center(neg bool, mag domain.Element) domain.Element {
	r := e.backend.New()
	var err error
	if neg {
		err = r.Sub(e.zero, mag)
	} else {
		err = r.Add(e.zero, mag)
	}
	if err != nil {
		panic(fmt.Sprintf("attribute encoding left the %s domain: %v", e.backend.Type(), err))
	}
	return r
}

func (e *Encoder) centerUint64(neg bool, v uint64) domain.Element {
	return e.center(neg, e.backend.New().SetUint64(v))
}

func (e *Encoder) sentinel(v uint64) domain.Element {
	return e.backend.New().SetUint64(v)
}
