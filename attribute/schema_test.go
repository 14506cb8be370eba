package attribute

import (
	"bytes"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/bls12381"
	"github.com/vocdoni/davinci-attrenc/crypto/domain/ring256"
)

const driverLicenseYAML = `
name: driver-license
attributes:
  - name: birthdate
    kind: days
  - name: issued
    kind: timestamp
  - name: height
    kind: float
  - name: points
    kind: int
  - name: category
    kind: uint
`

func TestParseSchema(t *testing.T) {
	c := qt.New(t)
	s, err := ParseSchema([]byte(driverLicenseYAML))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Name, qt.Equals, "driver-license")
	c.Assert(s.Names(), qt.DeepEquals, []string{"birthdate", "issued", "height", "points", "category"})
	c.Assert(s.Attributes[2].Kind, qt.Equals, KindFloat)

	// JSON is valid YAML
	fromJSON, err := ParseSchema([]byte(`{"name":"age","attributes":[{"name":"age","kind":"uint"}]}`))
	c.Assert(err, qt.IsNil)
	c.Assert(fromJSON.Attributes, qt.DeepEquals, []AttributeDef{{Name: "age", Kind: KindUint}})

	invalid := []string{
		`name: empty`,
		"attributes:\n  - kind: int\n",
		"attributes:\n  - name: a\n    kind: int\n  - name: a\n    kind: uint\n",
		"attributes:\n  - name: a\n    kind: bool\n",
		"attributes: [",
	}
	for _, in := range invalid {
		_, err := ParseSchema([]byte(in))
		c.Assert(err, qt.IsNotNil, qt.Commentf("%s", in))
	}
	_, err = ParseSchema([]byte("attributes:\n  - name: a\n    kind: bool\n"))
	c.Assert(err, qt.ErrorIs, ErrUnknownKind)
	c.Assert(err, qt.ErrorIs, ErrInvalidSchema)
	_, err = ParseSchema([]byte("name: empty\nattributes: []\n"))
	c.Assert(err, qt.ErrorIs, ErrInvalidSchema)

	var nilSchema *Schema
	c.Assert(nilSchema.Validate(), qt.ErrorIs, ErrInvalidSchema)
}

func TestSchemaKindCase(t *testing.T) {
	c := qt.New(t)
	s, err := ParseSchema([]byte("attributes:\n  - name: h\n    kind: Float\n  - name: n\n    kind: ' INT '\n"))
	c.Assert(err, qt.IsNil)
	c.Assert(s.Attributes, qt.DeepEquals, []AttributeDef{{Name: "h", Kind: KindFloat}, {Name: "n", Kind: KindInt}})

	fromJSON, err := ParseSchema([]byte(`{"attributes":[{"name":"d","kind":"DAYS"}]}`))
	c.Assert(err, qt.IsNil)
	c.Assert(fromJSON.Attributes[0].Kind, qt.Equals, KindDays)

	var viaJSON Schema
	c.Assert(json.Unmarshal([]byte(`{"attributes":[{"name":"t","kind":"TimeStamp"}]}`), &viaJSON), qt.IsNil)
	c.Assert(viaJSON.Validate(), qt.IsNil)
	c.Assert(viaJSON.Attributes[0].Kind, qt.Equals, KindTimestamp)

	_, err = ParseSchema([]byte("attributes:\n  - name: b\n    kind: Bool\n"))
	c.Assert(err, qt.ErrorIs, ErrUnknownKind)
}

func TestLoadSchema(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "schema.yaml")
	c.Assert(os.WriteFile(path, []byte(driverLicenseYAML), 0o600), qt.IsNil)
	s, err := LoadSchema(path)
	c.Assert(err, qt.IsNil)
	c.Assert(s.Attributes, qt.HasLen, 5)

	_, err = LoadSchema(filepath.Join(t.TempDir(), "missing.yaml"))
	c.Assert(err, qt.IsNotNil)
}

func TestEncodeSet(t *testing.T) {
	c := qt.New(t)
	s, err := ParseSchema([]byte(driverLicenseYAML))
	c.Assert(err, qt.IsNil)
	e := MustNewEncoder(bls12381.Backend{})

	values := map[string]string{
		"birthdate": "1982-12-20T10:45:00.000-06:00",
		"issued":    "2018-01-26T18:30:09.453+00:00",
		"height":    "1.83",
		"points":    "-3",
		"category":  "2",
	}
	set, err := e.EncodeSet(s, values)
	c.Assert(err, qt.IsNil)
	c.Assert(set, qt.HasLen, 5)
	for i, name := range s.Names() {
		c.Assert(set[i].Name, qt.Equals, name)
		c.Assert(set[i].Bytes, qt.HasLen, 32)
	}
	c.Assert(set[0].Value.MathBigInt().Cmp(e.Int(30303).BigInt()), qt.Equals, 0)
	c.Assert(set[3].Value.MathBigInt().Cmp(e.Int(-3).BigInt()), qt.Equals, 0)
	c.Assert(new(big.Int).SetBytes(set[4].Bytes).Cmp(e.Uint(2).BigInt()), qt.Equals, 0)

	// identical input, identical output
	again, err := e.EncodeSet(s, values)
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.DeepEquals, set)

	missing := map[string]string{"birthdate": values["birthdate"]}
	_, err = e.EncodeSet(s, missing)
	c.Assert(err, qt.ErrorIs, ErrMissingAttribute)

	extra := map[string]string{"nickname": "bob"}
	for k, v := range values {
		extra[k] = v
	}
	_, err = e.EncodeSet(s, extra)
	c.Assert(err, qt.ErrorIs, ErrUnexpectedAttribute)

	bad := map[string]string{}
	for k, v := range values {
		bad[k] = v
	}
	bad["issued"] = "1900"
	_, err = e.EncodeSet(s, bad)
	c.Assert(err, qt.ErrorIs, ErrMalformedInput)
	c.Assert(err, qt.ErrorMatches, `attribute "issued": .*`)

	set, err = e.EncodeSet(nil, values)
	c.Assert(err, qt.ErrorIs, ErrInvalidSchema)
	c.Assert(set, qt.IsNil)
}

func TestEncodedAttributeMarshal(t *testing.T) {
	c := qt.New(t)
	e := MustNewEncoder(ring256.Backend{})
	attr := NewEncodedAttribute("points", KindInt, e.Int(7))

	data, err := json.Marshal(attr)
	c.Assert(err, qt.IsNil)
	var fromJSON EncodedAttribute
	c.Assert(json.Unmarshal(data, &fromJSON), qt.IsNil)
	c.Assert(fromJSON.Value.Equal(attr.Value), qt.IsTrue)
	c.Assert(bytes.Equal(fromJSON.Bytes, attr.Bytes), qt.IsTrue)

	data, err = cbor.Marshal(attr)
	c.Assert(err, qt.IsNil)
	var fromCBOR EncodedAttribute
	c.Assert(cbor.Unmarshal(data, &fromCBOR), qt.IsNil)
	c.Assert(fromCBOR.Kind, qt.Equals, KindInt)
	c.Assert(fromCBOR.Value.Equal(attr.Value), qt.IsTrue)
}
