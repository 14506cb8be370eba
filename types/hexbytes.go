package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexBytes is a byte slice written as 0x-prefixed hexadecimal text, in JSON
// and anywhere else encoding.TextMarshaler is honored. CBOR keeps the raw
// byte string. Encoded attributes use it for their fixed-width big-endian
// form.
type HexBytes []byte

// HexStringToHexBytes decodes a hex string with or without the 0x prefix.
func HexStringToHexBytes(s string) (HexBytes, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string %q: %w", s, err)
	}
	return b, nil
}

// Hex returns the hexadecimal form without prefix.
func (b HexBytes) Hex() string {
	return hex.EncodeToString(b)
}

// String returns the 0x-prefixed hexadecimal form.
func (b HexBytes) String() string {
	return "0x" + b.Hex()
}

func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *HexBytes) UnmarshalText(data []byte) error {
	decoded, err := HexStringToHexBytes(string(data))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}
