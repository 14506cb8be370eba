package attribute

import "github.com/vocdoni/davinci-attrenc/crypto/domain"

// Int encodes a signed integer as zero-center + v.
func (e *Encoder) Int(v int64) domain.Element {
	if v < 0 {
		// -(v+1) cannot overflow, even for math.MinInt64
		return e.centerUint64(true, uint64(-(v+1))+1)
	}
	return e.centerUint64(false, uint64(v))
}

// Uint encodes an unsigned integer as zero-center + v.
func (e *Encoder) Uint(v uint64) domain.Element {
	return e.centerUint64(false, v)
}
