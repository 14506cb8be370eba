package domain_test

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-attrenc/crypto/domain"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/ring256"
)

func TestNormalize(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		in   []byte
		size int
		want []byte
	}{
		{nil, 4, []byte{0, 0, 0, 0}},
		{[]byte{1, 2}, 4, []byte{0, 0, 1, 2}},
		{[]byte{1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}},
		{[]byte{9, 9, 1, 2, 3, 4}, 4, []byte{1, 2, 3, 4}},
	} {
		in := append([]byte(nil), tc.in...)
		got := domain.Normalize(in, tc.size)
		c.Assert(got, qt.DeepEquals, tc.want)
		c.Assert(in, qt.DeepEquals, tc.in, qt.Commentf("input must not be modified"))
	}
	// the output never aliases the input
	in := []byte{1, 2, 3, 4}
	out := domain.Normalize(in, 4)
	out[0] = 0xff
	c.Assert(in[0], qt.Equals, byte(1))
}

// tinyBackend has a zero-center that does not fit its domain.
type tinyBackend struct{ ring256.Backend }

func (tinyBackend) ZeroBits() uint { return 256 }

func TestZeroCenter(t *testing.T) {
	c := qt.New(t)
	zc, err := domain.ZeroCenter(ring256.Backend{})
	c.Assert(err, qt.IsNil)
	c.Assert(zc.BigInt().Cmp(new(big.Int).Lsh(big.NewInt(1), 254)), qt.Equals, 0)

	_, err = domain.ZeroCenter(tinyBackend{})
	c.Assert(err, qt.ErrorIs, domain.ErrOutOfRange)
}
