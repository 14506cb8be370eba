// Package domain defines the integer domains that credential attributes are
// encoded into. A Backend describes one concrete realization (a prime field
// bounded by a group order, or a fixed-width ring) and hands out Elements
// that implement the minimal arithmetic the attribute encoder needs.
package domain

import (
	"errors"
	"math/big"
)

var (
	// ErrOverflow is returned by Add and Sub when the exact integer result
	// cannot be represented by the backend.
	ErrOverflow = errors.New("domain arithmetic overflow")
	// ErrOutOfRange is returned when a value to be set is negative or does
	// not fit below the backend maximum.
	ErrOutOfRange = errors.New("value out of domain range")
)

// Backend is a concrete integer domain.
type Backend interface {
	// Type returns the backend identifier used by the registry.
	Type() string
	// Size returns the fixed width, in bytes, of the serialized elements.
	Size() int
	// ZeroBits returns B, the exponent of the zero-center constant 2^B.
	ZeroBits() uint
	// Max returns a copy of the public upper bound of the domain. Prime
	// field backends return the group order, ring backends return the
	// largest representable value.
	Max() *big.Int
	// New returns a new element set to zero.
	New() Element
}

// Element is a single integer of a Backend. Arithmetic methods store the
// result in the receiver, mixing elements of different backends panics.
type Element interface {
	// SetUint64 sets the element to v and returns it.
	SetUint64(v uint64) Element
	// SetBigInt sets the element to v. It fails with ErrOutOfRange if v is
	// negative or not representable.
	SetBigInt(v *big.Int) error
	// SetBytes interprets buf as a big-endian unsigned integer of arbitrary
	// length, normalized to the backend width with Normalize.
	SetBytes(buf []byte) error
	// Set copies a into the receiver and returns it.
	Set(a Element) Element
	// Add sets the receiver to a+b. On ErrOverflow the receiver is left
	// unchanged.
	Add(a, b Element) error
	// Sub sets the receiver to a-b. On ErrOverflow (a < b) the receiver is
	// left unchanged.
	Sub(a, b Element) error
	// Cmp compares the integer values of the receiver and b.
	Cmp(b Element) int
	// Equal reports whether the receiver and b hold the same value.
	Equal(b Element) bool
	// Bytes returns the fixed-width big-endian representation.
	Bytes() []byte
	// BigInt returns the value as a new big.Int.
	BigInt() *big.Int
	// String returns the decimal representation.
	String() string
}

// ZeroCenter returns a new element holding 2^b.ZeroBits(). It fails if the
// backend is too small to hold its own zero-center.
func ZeroCenter(b Backend) (Element, error) {
	e := b.New()
	if err := e.SetBigInt(new(big.Int).Lsh(big.NewInt(1), b.ZeroBits())); err != nil {
		return nil, err
	}
	return e, nil
}

// Normalize fits input to exactly size bytes. Shorter inputs are left padded
// with zeros, longer inputs keep their last size bytes. The input slice is
// never modified.
func Normalize(input []byte, size int) []byte {
	out := make([]byte, size)
	if len(input) > size {
		input = input[len(input)-size:]
	}
	copy(out[size-len(input):], input)
	return out
}
