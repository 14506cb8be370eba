package attribute

import (
	"fmt"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/backends"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/ring256"
	"golang.org/x/sync/errgroup"
)

// forEachBackend runs f once per registered backend.
func forEachBackend(c *qt.C, f func(c *qt.C, e *Encoder)) {
	for _, name := range backends.Backends() {
		c.Run(name, func(c *qt.C) {
			b, err := backends.New(name)
			c.Assert(err, qt.IsNil)
			e, err := NewEncoder(b)
			c.Assert(err, qt.IsNil)
			f(c, e)
		})
	}
}

func zeroCenter(e *Encoder) *big.Int {
	return e.ZeroCenter().BigInt()
}

// centered returns zero-center + d.
func centered(e *Encoder, d *big.Int) *big.Int {
	return new(big.Int).Add(zeroCenter(e), d)
}

func assertBig(c *qt.C, got domain.Element, want *big.Int) {
	c.Helper()
	c.Assert(got.BigInt().String(), qt.Equals, want.String())
}

type zeroBitsBackend struct {
	domain.Backend
	bits uint
}

func (b zeroBitsBackend) ZeroBits() uint { return b.bits }

func TestNewEncoder(t *testing.T) {
	c := qt.New(t)

	_, err := NewEncoder(nil)
	c.Assert(err, qt.IsNotNil)

	_, err = NewEncoder(zeroBitsBackend{ring256.Backend{}, 64})
	c.Assert(err, qt.ErrorMatches, ".*below minimum.*")

	// 2^256 does not fit a 256-bit ring
	_, err = NewEncoder(zeroBitsBackend{ring256.Backend{}, 256})
	c.Assert(err, qt.ErrorIs, domain.ErrOutOfRange)

	e, err := NewEncoder(zeroBitsBackend{ring256.Backend{}, MinZeroBits})
	c.Assert(err, qt.IsNil)
	assertBig(c, e.ZeroCenter(), new(big.Int).Lsh(big.NewInt(1), MinZeroBits))

	c.Assert(func() { MustNewEncoder(nil) }, qt.PanicMatches, "missing backend")
}

func TestZeroCenter(t *testing.T) {
	c := qt.New(t)
	forEachBackend(c, func(c *qt.C, e *Encoder) {
		assertBig(c, e.ZeroCenter(), new(big.Int).Lsh(big.NewInt(1), e.Backend().ZeroBits()))
		c.Assert(e.ZeroCenter().Cmp(e.PositiveInfinity()), qt.Equals, -1)

		// returned constants are copies
		z := e.ZeroCenter()
		c.Assert(z.Add(z, e.Uint(1)), qt.IsNil)
		assertBig(c, e.ZeroCenter(), new(big.Int).Lsh(big.NewInt(1), e.Backend().ZeroBits()))
	})
}

func TestConcurrentUse(t *testing.T) {
	c := qt.New(t)
	inputs := []float64{-1e300, -2.5, -1, 0, 1.33, 1 << 40, 6.02e23}
	forEachBackend(c, func(c *qt.C, e *Encoder) {
		want := make([]string, len(inputs))
		for i, v := range inputs {
			want[i] = e.Float(v).String()
		}
		var g errgroup.Group
		for range 8 {
			g.Go(func() error {
				for i, v := range inputs {
					if got := e.Float(v).String(); got != want[i] {
						return fmt.Errorf("float %v: got %s, want %s", v, got, want[i])
					}
				}
				return nil
			})
		}
		c.Assert(g.Wait(), qt.IsNil)
	})
}
