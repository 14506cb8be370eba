package attribute

import (
	"math"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestInt(t *testing.T) {
	c := qt.New(t)
	forEachBackend(c, func(c *qt.C, e *Encoder) {
		assertBig(c, e.Int(0), zeroCenter(e))
		assertBig(c, e.Int(1), centered(e, big.NewInt(1)))
		assertBig(c, e.Int(-1), centered(e, big.NewInt(-1)))
		assertBig(c, e.Int(math.MaxInt64), centered(e, big.NewInt(math.MaxInt64)))
		assertBig(c, e.Int(math.MinInt64), centered(e, big.NewInt(math.MinInt64)))

		values := []int64{math.MinInt64, math.MinInt64 + 1, -1 << 40, -2, -1, 0, 1, 2, 1 << 40, math.MaxInt64}
		for i := 1; i < len(values); i++ {
			c.Assert(e.Int(values[i-1]).Cmp(e.Int(values[i])), qt.Equals, -1,
				qt.Commentf("%d < %d", values[i-1], values[i]))
		}
	})
}

func TestUint(t *testing.T) {
	c := qt.New(t)
	forEachBackend(c, func(c *qt.C, e *Encoder) {
		assertBig(c, e.Uint(0), zeroCenter(e))
		assertBig(c, e.Uint(math.MaxUint64), centered(e, new(big.Int).SetUint64(math.MaxUint64)))
		c.Assert(e.Uint(41).Cmp(e.Uint(42)), qt.Equals, -1)
		// signed and unsigned agree on the shared range
		c.Assert(e.Uint(math.MaxInt64).Equal(e.Int(math.MaxInt64)), qt.IsTrue)
	})
}
