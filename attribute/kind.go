package attribute

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

// Kind identifies how the textual value of an attribute is interpreted.
type Kind string

const (
	KindTimestamp Kind = "timestamp" // RFC3339 date, seconds since 1970
	KindDays      Kind = "days"      // RFC3339 date, days since 1900
	KindFloat     Kind = "float"
	KindInt       Kind = "int"
	KindUint      Kind = "uint"
)

// Kinds returns the list of supported kinds.
func Kinds() []Kind {
	return []Kind{KindTimestamp, KindDays, KindFloat, KindInt, KindUint}
}

// ParseKind returns the kind named by s, ignoring case and surrounding
// spaces.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds(), k)
}

func (k Kind) String() string {
	return string(k)
}

// UnmarshalText stores the kind in the canonical form accepted by ParseKind.
// Unknown names are kept, so that Schema.Validate can report them.
func (k *Kind) UnmarshalText(data []byte) error {
	*k = Kind(strings.ToLower(strings.TrimSpace(string(data))))
	return nil
}

// Encode parses raw according to kind and encodes it. Parse failures are
// reported as ErrMalformedInput, numbers out of the range of their Go type
// included.
func (e *Encoder) Encode(kind Kind, raw string) (domain.Element, error) {
	switch kind {
	case KindTimestamp:
		return e.Timestamp(raw)
	case KindDays:
		return e.DaysSinceEpoch(raw)
	case KindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, malformedNumber(raw, err)
		}
		return e.Float(v), nil
	case KindInt:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, malformedNumber(raw, err)
		}
		return e.Int(v), nil
	case KindUint:
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, malformedNumber(raw, err)
		}
		return e.Uint(v), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func malformedNumber(raw string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return fmt.Errorf("%w: %q: %v", ErrMalformedInput, raw, err)
}
