package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// BigInt is a math/big integer that travels as a decimal string in JSON,
// since encoded attributes are far larger than 2^53, and as a CBOR bignum
// (tags 2 and 3, or a plain integer when it fits 64 bits).
type BigInt big.Int

// MathBigInt returns i as a *big.Int sharing its storage.
func (i *BigInt) MathBigInt() *big.Int {
	return (*big.Int)(i)
}

// SetBigInt sets i to a copy of x and returns i.
func (i *BigInt) SetBigInt(x *big.Int) *BigInt {
	i.MathBigInt().Set(x)
	return i
}

// SetBytes sets i to the big-endian unsigned integer buf and returns i.
func (i *BigInt) SetBytes(buf []byte) *BigInt {
	i.MathBigInt().SetBytes(buf)
	return i
}

// Bytes returns the minimal big-endian form of |i|.
func (i *BigInt) Bytes() []byte {
	return i.MathBigInt().Bytes()
}

func (i *BigInt) String() string {
	return i.MathBigInt().String()
}

// Equal reports whether i and j hold the same value. go-cmp relies on it to
// compare encoded attributes.
func (i *BigInt) Equal(j *BigInt) bool {
	if i == nil || j == nil {
		return i == j
	}
	return i.MathBigInt().Cmp(j.MathBigInt()) == 0
}

// MarshalText writes the decimal form, "0" for a nil receiver.
func (i *BigInt) MarshalText() ([]byte, error) {
	if i == nil {
		return []byte("0"), nil
	}
	return i.MathBigInt().MarshalText()
}

// UnmarshalText parses a decimal (or 0x, 0b, 0o prefixed) integer.
func (i *BigInt) UnmarshalText(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	if _, ok := new(big.Int).SetString(string(data), 0); !ok {
		return fmt.Errorf("invalid integer %q", data)
	}
	i.MathBigInt().SetString(string(data), 0)
	return nil
}

// UnmarshalJSON accepts both quoted and bare JSON numbers.
func (i *BigInt) UnmarshalJSON(data []byte) error {
	if n := len(data); n > 1 && data[0] == '"' && data[n-1] == '"' {
		data = data[1 : n-1]
	}
	return i.UnmarshalText(data)
}

// MarshalCBOR encodes i with the CBOR bignum rules.
func (i *BigInt) MarshalCBOR() ([]byte, error) {
	if i == nil {
		return cbor.Marshal(0)
	}
	return cbor.Marshal(i.MathBigInt())
}

// UnmarshalCBOR decodes an integer or bignum, and for compatibility a
// decimal text string.
func (i *BigInt) UnmarshalCBOR(data []byte) error {
	if i == nil {
		return fmt.Errorf("cannot unmarshal into nil BigInt")
	}
	var v big.Int
	if err := cbor.Unmarshal(data, &v); err == nil {
		i.SetBigInt(&v)
		return nil
	}
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("cbor value is neither an integer nor a string: %w", err)
	}
	return i.UnmarshalText([]byte(s))
}
