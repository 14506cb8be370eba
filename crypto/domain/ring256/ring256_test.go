package ring256

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/domaintest"
)

func TestBackend(t *testing.T) {
	domaintest.TestBackend(t, Backend{})
}

func TestMax(t *testing.T) {
	c := qt.New(t)
	want := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	c.Assert(Backend{}.Max().Cmp(want), qt.Equals, 0)

	// unlike the field backends the maximum itself is a valid element
	e := new(Element)
	c.Assert(e.SetBigInt(want), qt.IsNil)
	c.Assert(e.Bytes(), qt.DeepEquals, maxValue.PaddedBytes(Size))
	c.Assert(e.Add(e, new(Element).SetUint64(1)), qt.ErrorIs, domain.ErrOverflow)
}
