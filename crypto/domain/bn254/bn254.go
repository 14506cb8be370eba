// Package bn254 implements the attribute domain over the BN254 scalar field,
// the field used natively by Groth16/PLONK circuits over BN254.
package bn254

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

// BackendType is the identifier for the BN254 scalar field backend.
const BackendType = "bn254"

// ZeroBits is the zero-center exponent. The BN254 order r ≈ 1.51·2^253 is
// smaller than 2^254, so the center sits two bits lower than on BLS12-381.
const ZeroBits = 252

var modulus = fr.Modulus()

// Backend is the BN254 scalar field domain.
type Backend struct{}

func (Backend) Type() string        { return BackendType }
func (Backend) Size() int           { return fr.Bytes }
func (Backend) ZeroBits() uint      { return ZeroBits }
func (Backend) Max() *big.Int       { return fr.Modulus() }
func (Backend) New() domain.Element { return new(Element) }

// Element is a BN254 scalar field element.
type Element struct {
	inner fr.Element
}

// SetUint64 sets the element to v.
func (e *Element) SetUint64(v uint64) domain.Element {
	e.inner.SetUint64(v)
	return e
}

// SetBigInt sets the element to v, which must be in [0, r).
func (e *Element) SetBigInt(v *big.Int) error {
	if v.Sign() < 0 || v.Cmp(modulus) >= 0 {
		return fmt.Errorf("%w: %s not in [0, r)", domain.ErrOutOfRange, v)
	}
	e.inner.SetBigInt(v)
	return nil
}

// SetBytes sets the element from a big-endian byte slice. Values not below
// the group order are rejected instead of reduced.
func (e *Element) SetBytes(buf []byte) error {
	var tmp fr.Element
	if err := tmp.SetBytesCanonical(domain.Normalize(buf, fr.Bytes)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutOfRange, err)
	}
	e.inner = tmp
	return nil
}

func (e *Element) Set(a domain.Element) domain.Element {
	e.inner = a.(*Element).inner
	return e
}

// Add sets e to a+b, failing if the sum wraps around the group order.
func (e *Element) Add(a, b domain.Element) error {
	x, y := a.(*Element), b.(*Element)
	var r fr.Element
	r.Add(&x.inner, &y.inner)
	if r.Cmp(&x.inner) < 0 {
		return domain.ErrOverflow
	}
	e.inner = r
	return nil
}

// Sub sets e to a-b, failing if b > a.
func (e *Element) Sub(a, b domain.Element) error {
	x, y := a.(*Element), b.(*Element)
	if x.inner.Cmp(&y.inner) < 0 {
		return domain.ErrOverflow
	}
	e.inner.Sub(&x.inner, &y.inner)
	return nil
}

// Cmp compares the canonical integer values of e and b.
func (e *Element) Cmp(b domain.Element) int {
	return e.inner.Cmp(&b.(*Element).inner)
}

func (e *Element) Equal(b domain.Element) bool {
	return e.inner.Equal(&b.(*Element).inner)
}

// Bytes returns the 32 byte big-endian representation.
func (e *Element) Bytes() []byte {
	b := e.inner.Bytes()
	return b[:]
}

// BigInt returns the canonical value.
func (e *Element) BigInt() *big.Int {
	return e.inner.BigInt(new(big.Int))
}

func (e *Element) String() string {
	return e.inner.String()
}
