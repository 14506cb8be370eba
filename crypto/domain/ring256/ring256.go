// Package ring256 implements the attribute domain over 256-bit unsigned
// integers, backed by holiman/uint256. Unlike the field backends, arithmetic
// never reduces: any carry out of the top bit or borrow below zero is an
// overflow.
package ring256

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

const (
	// BackendType is the identifier for the 256-bit ring backend.
	BackendType = "ring256"
	// ZeroBits is the zero-center exponent.
	ZeroBits = 254
	// Size is the element width in bytes.
	Size = 32
)

// maxValue is 2^256-1.
var maxValue = new(uint256.Int).SetAllOne()

// Backend is the 256-bit ring domain.
type Backend struct{}

// Type returns the backend identifier.
func (Backend) Type() string { return BackendType }

// Size returns the serialized element width in bytes.
func (Backend) Size() int { return Size }

// ZeroBits returns the zero-center exponent.
func (Backend) ZeroBits() uint { return ZeroBits }

// Max returns 2^256-1.
func (Backend) Max() *big.Int { return maxValue.ToBig() }

// New returns a zero element.
func (Backend) New() domain.Element { return new(Element) }

// Element is a 256-bit unsigned integer.
type Element struct {
	inner uint256.Int
}

func (e *Element) SetUint64(v uint64) domain.Element {
	e.inner.SetUint64(v)
	return e
}

// SetBigInt sets the element to v, which must be in [0, 2^256).
func (e *Element) SetBigInt(v *big.Int) error {
	if v.Sign() < 0 {
		return fmt.Errorf("%w: negative value %s", domain.ErrOutOfRange, v)
	}
	x, overflow := uint256.FromBig(v)
	if overflow {
		return fmt.Errorf("%w: %d bits exceed 256", domain.ErrOutOfRange, v.BitLen())
	}
	e.inner = *x
	return nil
}

// SetBytes sets the element from a big-endian byte slice, keeping the low 32
// bytes of longer inputs.
func (e *Element) SetBytes(buf []byte) error {
	e.inner.SetBytes32(domain.Normalize(buf, Size))
	return nil
}

func (e *Element) Set(a domain.Element) domain.Element {
	e.inner.Set(&a.(*Element).inner)
	return e
}

// Add sets e to a+b, failing on carry out of 256 bits.
func (e *Element) Add(a, b domain.Element) error {
	var r uint256.Int
	if _, overflow := r.AddOverflow(&a.(*Element).inner, &b.(*Element).inner); overflow {
		return domain.ErrOverflow
	}
	e.inner = r
	return nil
}

// Sub sets e to a-b, failing on borrow.
func (e *Element) Sub(a, b domain.Element) error {
	var r uint256.Int
	if _, underflow := r.SubOverflow(&a.(*Element).inner, &b.(*Element).inner); underflow {
		return domain.ErrOverflow
	}
	e.inner = r
	return nil
}

func (e *Element) Cmp(b domain.Element) int {
	return e.inner.Cmp(&b.(*Element).inner)
}

func (e *Element) Equal(b domain.Element) bool {
	return e.inner.Eq(&b.(*Element).inner)
}

// Bytes returns the 32 byte big-endian representation.
func (e *Element) Bytes() []byte {
	b := e.inner.Bytes32()
	return b[:]
}

func (e *Element) BigInt() *big.Int {
	return e.inner.ToBig()
}

func (e *Element) String() string {
	return e.inner.Dec()
}
