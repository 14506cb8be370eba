package types

import (
	"encoding/json"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

// 2^254 + 1, the encoding of 1 on the BLS12-381 backend
var centered, _ = new(big.Int).SetString("28948022309329048855892746252171976963317496166410141009864396001978282409985", 10)

func TestBigIntJSON(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(centered)
	data, err := json.Marshal(map[string]*BigInt{"v": bi})
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"v":"`+centered.String()+`"}`)

	var out map[string]*BigInt
	c.Assert(json.Unmarshal(data, &out), qt.IsNil)
	c.Assert(out["v"], qt.DeepEquals, bi)

	var numeric BigInt
	c.Assert(json.Unmarshal([]byte(`123456789`), &numeric), qt.IsNil)
	c.Assert(numeric.String(), qt.Equals, "123456789")

	c.Assert(json.Unmarshal([]byte(`"12ab"`), &numeric), qt.ErrorMatches, `invalid integer "12ab"`)
	c.Assert(numeric.String(), qt.Equals, "123456789")

	var nilBig *BigInt
	text, err := nilBig.MarshalText()
	c.Assert(err, qt.IsNil)
	c.Assert(string(text), qt.Equals, "0")
}

func TestBigIntCBOR(t *testing.T) {
	c := qt.New(t)
	bi := (*BigInt)(centered)
	data, err := cbor.Marshal(bi)
	c.Assert(err, qt.IsNil)
	c.Assert(data[0], qt.Equals, byte(0xc2), qt.Commentf("positive bignum tag"))

	out := new(BigInt)
	c.Assert(cbor.Unmarshal(data, out), qt.IsNil)
	c.Assert(out.Equal(bi), qt.IsTrue)

	// small values use the plain integer encoding
	data, err = cbor.Marshal((*BigInt)(big.NewInt(10)))
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.DeepEquals, []byte{0x0a})
	c.Assert(cbor.Unmarshal(data, out), qt.IsNil)
	c.Assert(out.String(), qt.Equals, "10")

	// decimal text is accepted as well
	data, err = cbor.Marshal(centered.String())
	c.Assert(err, qt.IsNil)
	c.Assert(cbor.Unmarshal(data, out), qt.IsNil)
	c.Assert(out.Equal(bi), qt.IsTrue)

	data, err = cbor.Marshal("0xzz")
	c.Assert(err, qt.IsNil)
	c.Assert(cbor.Unmarshal(data, out), qt.ErrorMatches, `invalid integer "0xzz"`)
}

func TestBigIntBytes(t *testing.T) {
	c := qt.New(t)
	bi := new(BigInt).SetBytes([]byte{0x00, 0x01, 0x00})
	c.Assert(bi.String(), qt.Equals, "256")
	c.Assert(bi.Bytes(), qt.DeepEquals, []byte{0x01, 0x00})
	c.Assert(bi.Equal((*BigInt)(big.NewInt(256))), qt.IsTrue)
	c.Assert(bi.Equal((*BigInt)(big.NewInt(-1))), qt.IsFalse)
	c.Assert(bi.Equal(nil), qt.IsFalse)
}
