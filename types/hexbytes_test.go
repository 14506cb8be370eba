package types

import (
	"encoding/json"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestHexBytes(t *testing.T) {
	c := qt.New(t)

	c.Run("String", func(c *qt.C) {
		testCases := []struct {
			name string
			in   HexBytes
			want string
		}{
			{name: "nil slice", in: nil, want: "0x"},
			{name: "empty", in: HexBytes{}, want: "0x"},
			{name: "non-empty", in: HexBytes{0x00, 0xAB, 0xCD}, want: "0x00abcd"},
		}
		for _, tc := range testCases {
			c.Run(tc.name, func(c *qt.C) {
				c.Assert(tc.in.String(), qt.Equals, tc.want)
			})
		}
	})

	c.Run("JSON", func(c *qt.C) {
		in := HexBytes{0x40, 0x00, 0x01}
		data, err := json.Marshal(in)
		c.Assert(err, qt.IsNil)
		c.Assert(string(data), qt.Equals, `"0x400001"`)

		var out HexBytes
		c.Assert(json.Unmarshal(data, &out), qt.IsNil)
		c.Assert(out, qt.DeepEquals, in)

		dec, err := HexStringToHexBytes("0X00ff")
		c.Assert(err, qt.IsNil)
		c.Assert(dec, qt.DeepEquals, HexBytes{0x00, 0xff})

		c.Assert(json.Unmarshal([]byte(`"0xzz"`), &out), qt.IsNotNil)
		c.Assert(json.Unmarshal([]byte(`12`), &out), qt.IsNotNil)
	})
}
