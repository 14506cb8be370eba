package attribute

import (
	"fmt"
	"time"

	"github.com/vocdoni/davinci-attrenc/crypto/domain"
)

const secondsPerDay = 24 * 60 * 60

// DaysEpoch is the reference instant of DaysSinceEpoch.
var DaysEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDate parses an RFC3339 date. Fractional seconds and any UTC offset
// are accepted.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an RFC3339 date: %v", ErrMalformedInput, s, err)
	}
	return t, nil
}

// Timestamp encodes an RFC3339 date as its Unix time in seconds, offset by
// the zero-center. Sub-second precision is discarded.
func (e *Encoder) Timestamp(s string) (domain.Element, error) {
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return e.Time(t), nil
}

// Time encodes an instant as Timestamp does. Instants before 1970 go
// through the signed path and encode below the zero-center.
func (e *Encoder) Time(t time.Time) domain.Element {
	return e.Int(t.Unix())
}

// DaysSinceEpoch encodes an RFC3339 date as the number of whole days elapsed
// since 1900-01-01T00:00:00Z, truncated toward zero.
func (e *Encoder) DaysSinceEpoch(s string) (domain.Element, error) {
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return e.DaysSince(t), nil
}

// DaysSince encodes an instant as DaysSinceEpoch does.
func (e *Encoder) DaysSince(t time.Time) domain.Element {
	// Unix seconds instead of time.Sub, which saturates past ~292 years
	return e.Int((t.Unix() - DaysEpoch.Unix()) / secondsPerDay)
}
