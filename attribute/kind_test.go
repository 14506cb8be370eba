package attribute

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/bls12381"
)

func TestParseKind(t *testing.T) {
	c := qt.New(t)
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, k)
	}
	got, err := ParseKind(" Float ")
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.Equals, KindFloat)

	_, err = ParseKind("decimal")
	c.Assert(err, qt.ErrorIs, ErrUnknownKind)
	c.Assert(Kind("").Valid(), qt.IsFalse)
}

func TestEncodeDispatch(t *testing.T) {
	c := qt.New(t)
	e := MustNewEncoder(bls12381.Backend{})

	ts, err := e.Encode(KindTimestamp, "2018-01-26T18:30:09.453+00:00")
	c.Assert(err, qt.IsNil)
	c.Assert(ts.Equal(e.Int(1_516_991_409)), qt.IsTrue)

	days, err := e.Encode(KindDays, "1982-12-20T10:45:00.000-06:00")
	c.Assert(err, qt.IsNil)
	c.Assert(days.Equal(e.Int(30303)), qt.IsTrue)

	f, err := e.Encode(KindFloat, " -1.33 ")
	c.Assert(err, qt.IsNil)
	c.Assert(f.Equal(e.Float(-1.33)), qt.IsTrue)

	nan, err := e.Encode(KindFloat, "NaN")
	c.Assert(err, qt.IsNil)
	c.Assert(nan.Equal(e.Float(math.NaN())), qt.IsTrue)

	i, err := e.Encode(KindInt, "-9223372036854775808")
	c.Assert(err, qt.IsNil)
	c.Assert(i.Equal(e.Int(math.MinInt64)), qt.IsTrue)

	u, err := e.Encode(KindUint, "18446744073709551615")
	c.Assert(err, qt.IsNil)
	c.Assert(u.Equal(e.Uint(math.MaxUint64)), qt.IsTrue)

	malformed := []struct {
		kind Kind
		raw  string
	}{
		{KindTimestamp, "1900"},
		{KindDays, "yesterday"},
		{KindFloat, "1.2.3"},
		{KindFloat, "1e400"},
		{KindInt, "1.5"},
		{KindInt, "9223372036854775808"},
		{KindUint, "-1"},
		{KindUint, ""},
	}
	for _, m := range malformed {
		_, err := e.Encode(m.kind, m.raw)
		c.Assert(err, qt.ErrorIs, ErrMalformedInput, qt.Commentf("%s %q", m.kind, m.raw))
	}

	_, err = e.Encode(Kind("bool"), "true")
	c.Assert(err, qt.ErrorIs, ErrUnknownKind)
}
