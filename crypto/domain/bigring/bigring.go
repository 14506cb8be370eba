// Package bigring implements an RSA-style attribute domain: unsigned integers
// of a configurable bit width (2048 bits by default), bounded by 2^W-1.
package bigring

import (
	"fmt"
	"math/big"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

const (
	// TypePrefix prefixes the width in the backend identifier, e.g. "rsa2048".
	TypePrefix = "rsa"
	// DefaultBits is the width used by Default.
	DefaultBits = 2048
	// MinBits is the smallest supported width.
	MinBits = 256
)

// Backend is a W-bit ring domain. The zero-center exponent is W-2.
type Backend struct {
	bits uint
	max  *big.Int
}

// New returns a ring backend of the given width, which must be a multiple of
// 8 and at least MinBits.
func New(bits uint) (*Backend, error) {
	if bits < MinBits || bits%8 != 0 {
		return nil, fmt.Errorf("invalid ring width %d: must be a multiple of 8 and >= %d", bits, MinBits)
	}
	top := new(big.Int).Lsh(big.NewInt(1), bits)
	top.Sub(top, big.NewInt(1))
	return &Backend{bits: bits, max: top}, nil
}

// Default returns the 2048 bit backend.
func Default() *Backend {
	b, err := New(DefaultBits)
	if err != nil {
		panic(err)
	}
	return b
}

// BackendType returns the identifier of the ring backend of the given width.
func BackendType(bits uint) string {
	return fmt.Sprintf("%s%d", TypePrefix, bits)
}

func (b *Backend) Type() string   { return BackendType(b.bits) }
func (b *Backend) Size() int      { return int(b.bits / 8) }
func (b *Backend) ZeroBits() uint { return b.bits - 2 }
func (b *Backend) Max() *big.Int  { return new(big.Int).Set(b.max) }

func (b *Backend) New() domain.Element {
	return &Element{backend: b, inner: new(big.Int)}
}

// Element is an integer in [0, 2^W-1].
type Element struct {
	backend *Backend
	inner   *big.Int
}

func (e *Element) fits(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(e.backend.max) <= 0
}

func (e *Element) SetUint64(v uint64) domain.Element {
	e.inner.SetUint64(v)
	return e
}

func (e *Element) SetBigInt(v *big.Int) error {
	if !e.fits(v) {
		return fmt.Errorf("%w: value does not fit %d bits", domain.ErrOutOfRange, e.backend.bits)
	}
	e.inner.Set(v)
	return nil
}

func (e *Element) SetBytes(buf []byte) error {
	e.inner.SetBytes(domain.Normalize(buf, e.backend.Size()))
	return nil
}

func (e *Element) Set(a domain.Element) domain.Element {
	e.inner.Set(e.peer(a).inner)
	return e
}

// Add sets e to a+b, failing if the sum exceeds 2^W-1.
func (e *Element) Add(a, b domain.Element) error {
	r := new(big.Int).Add(e.peer(a).inner, e.peer(b).inner)
	if !e.fits(r) {
		return domain.ErrOverflow
	}
	e.inner = r
	return nil
}

// Sub sets e to a-b, failing if b > a.
func (e *Element) Sub(a, b domain.Element) error {
	r := new(big.Int).Sub(e.peer(a).inner, e.peer(b).inner)
	if !e.fits(r) {
		return domain.ErrOverflow
	}
	e.inner = r
	return nil
}

func (e *Element) Cmp(b domain.Element) int {
	return e.inner.Cmp(e.peer(b).inner)
}

func (e *Element) Equal(b domain.Element) bool {
	return e.Cmp(b) == 0
}

// Bytes returns the W/8 byte big-endian representation.
func (e *Element) Bytes() []byte {
	return e.inner.FillBytes(make([]byte, e.backend.Size()))
}

func (e *Element) BigInt() *big.Int {
	return new(big.Int).Set(e.inner)
}

func (e *Element) String() string {
	return e.inner.String()
}

// peer asserts that a belongs to a ring of the same width.
func (e *Element) peer(a domain.Element) *Element {
	x := a.(*Element)
	if x.backend.bits != e.backend.bits {
		panic(fmt.Sprintf("mixed ring widths: %d and %d", e.backend.bits, x.backend.bits))
	}
	return x
}
