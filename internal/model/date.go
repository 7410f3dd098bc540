package model

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the canonical DateKey layout.
const DateLayout = "2006-01-02"

var ErrInvalidDateKey = errors.New("invalid date key")

// DateKey is a calendar day in canonical YYYY-MM-DD form.
type DateKey string

// ParseDateKey validates s and returns it as a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, s)
	}
	return DateKey(s), nil
}

// DateKeyOf returns the DateKey of t in t's location.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(DateLayout))
}

// Time returns midnight UTC of the day.
func (d DateKey) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(d))
	}
	return t, nil
}

func (d DateKey) String() string { return string(d) }

// UnmarshalText rejects non-canonical keys so a persisted collection
// containing one fails to decode as a whole.
func (d *DateKey) UnmarshalText(b []byte) error {
	k, err := ParseDateKey(string(b))
	if err != nil {
		return err
	}
	*d = k
	return nil
}

func (d DateKey) MarshalText() ([]byte, error) {
	return []byte(d), nil
}
