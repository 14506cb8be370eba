// Package domaintest checks that a domain.Backend honors the contract the
// attribute encoder relies on.
package domaintest

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

// TestBackend runs the conformance checks against b.
func TestBackend(t *testing.T, b domain.Backend) {
	c := qt.New(t)
	max := b.Max()
	one := big.NewInt(1)
	last := new(big.Int).Sub(max, one)

	c.Run("constants", func(c *qt.C) {
		c.Assert(b.Type(), qt.Not(qt.Equals), "")
		c.Assert(b.Size()*8 >= max.BitLen(), qt.IsTrue)
		c.Assert(b.ZeroBits() < uint(max.BitLen()), qt.IsTrue)
		// Max returns a copy
		max.Add(max, one)
		c.Assert(b.Max().Cmp(max), qt.Not(qt.Equals), 0)
		max.Sub(max, one)
	})

	c.Run("set", func(c *qt.C) {
		e := b.New()
		c.Assert(e.BigInt().Sign(), qt.Equals, 0)
		c.Assert(e.SetUint64(42).String(), qt.Equals, "42")

		c.Assert(e.SetBigInt(last), qt.IsNil)
		c.Assert(e.BigInt().Cmp(last), qt.Equals, 0)
		c.Assert(e.Bytes(), qt.HasLen, b.Size())
		c.Assert(e.String(), qt.Equals, last.String())

		c.Assert(e.SetBigInt(big.NewInt(-1)), qt.ErrorIs, domain.ErrOutOfRange)
		c.Assert(e.SetBigInt(new(big.Int).Add(max, one)), qt.ErrorIs, domain.ErrOutOfRange)
		c.Assert(e.BigInt().Cmp(last), qt.Equals, 0, qt.Commentf("failed set must not modify"))

		cp := b.New().Set(e)
		c.Assert(cp.Equal(e), qt.IsTrue)
		e.SetUint64(1)
		c.Assert(cp.Equal(e), qt.IsFalse)
	})

	c.Run("bytes", func(c *qt.C) {
		e := b.New()
		c.Assert(e.SetBytes([]byte{0x01, 0x02}), qt.IsNil)
		c.Assert(e.BigInt().Int64(), qt.Equals, int64(0x0102))
		c.Assert(e.Bytes()[b.Size()-2:], qt.DeepEquals, []byte{0x01, 0x02})

		// longer inputs keep the least significant bytes
		long := append([]byte{0xff, 0xff}, make([]byte, b.Size())...)
		long[len(long)-1] = 7
		c.Assert(e.SetBytes(long), qt.IsNil)
		c.Assert(e.BigInt().Int64(), qt.Equals, int64(7))

		round := b.New()
		c.Assert(round.SetBigInt(last), qt.IsNil)
		c.Assert(e.SetBytes(round.Bytes()), qt.IsNil)
		c.Assert(e.Equal(round), qt.IsTrue)
	})

	c.Run("arithmetic", func(c *qt.C) {
		x, y, r := b.New(), b.New(), b.New()
		x.SetUint64(10)
		y.SetUint64(3)
		c.Assert(r.Add(x, y), qt.IsNil)
		c.Assert(r.String(), qt.Equals, "13")
		c.Assert(r.Sub(x, y), qt.IsNil)
		c.Assert(r.String(), qt.Equals, "7")
		c.Assert(r.Sub(x, x), qt.IsNil)
		c.Assert(r.BigInt().Sign(), qt.Equals, 0)

		r.SetUint64(99)
		c.Assert(r.Sub(y, x), qt.ErrorIs, domain.ErrOverflow)
		c.Assert(r.String(), qt.Equals, "99", qt.Commentf("failed sub must not modify"))

		c.Assert(x.SetBigInt(last), qt.IsNil)
		c.Assert(r.Add(x, y), qt.ErrorIs, domain.ErrOverflow)
		c.Assert(r.String(), qt.Equals, "99", qt.Commentf("failed add must not modify"))

		// the receiver may alias an operand
		y.SetUint64(0)
		c.Assert(x.Add(x, y), qt.IsNil)
		c.Assert(x.BigInt().Cmp(last), qt.Equals, 0)
		y.SetUint64(1)
		c.Assert(x.Sub(x, y), qt.IsNil)
		c.Assert(x.BigInt().Cmp(new(big.Int).Sub(last, one)), qt.Equals, 0)
	})

	c.Run("compare", func(c *qt.C) {
		lo, hi := b.New().SetUint64(1), b.New()
		c.Assert(hi.SetBigInt(last), qt.IsNil)
		c.Assert(lo.Cmp(hi), qt.Equals, -1)
		c.Assert(hi.Cmp(lo), qt.Equals, 1)
		c.Assert(hi.Cmp(hi), qt.Equals, 0)
	})

	c.Run("zero center", func(c *qt.C) {
		zc, err := domain.ZeroCenter(b)
		c.Assert(err, qt.IsNil)
		want := new(big.Int).Lsh(one, b.ZeroBits())
		c.Assert(zc.BigInt().Cmp(want), qt.Equals, 0)
		c.Assert(zc.BigInt().Cmp(max) < 0, qt.IsTrue)
	})
}
