// Package calendar turns DateKeys into neighbouring days and display labels.
package calendar

import (
	"time"

	"github.com/idilsaglam/checklist/internal/model"
)

// LabelLayout renders a day as "January 5, 2024".
const LabelLayout = "January 2, 2006"

// Calendar answers day arithmetic questions relative to a clock.
// The zero value is not usable; call New.
type Calendar struct {
	now func() time.Time
	loc *time.Location
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Calendar) { c.now = now }
}

// WithLocation sets the zone that decides which day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) { c.loc = loc }
}

func New(opts ...Option) *Calendar {
	c := &Calendar{now: time.Now, loc: time.Local}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Today returns the current day in the calendar's location.
func (c *Calendar) Today() model.DateKey {
	return model.DateKeyOf(c.now().In(c.loc))
}

// Prev returns the day before d. An unparseable key yields yesterday.
func (c *Calendar) Prev(d model.DateKey) model.DateKey {
	return c.shift(d, -1)
}

// Next returns the day after d. An unparseable key yields tomorrow.
func (c *Calendar) Next(d model.DateKey) model.DateKey {
	return c.shift(d, 1)
}

// shift works on UTC midnights so daylight saving never skips a day.
func (c *Calendar) shift(d model.DateKey, days int) model.DateKey {
	t, err := d.Time()
	if err != nil {
		t, _ = c.Today().Time()
	}
	return model.DateKeyOf(t.AddDate(0, 0, days))
}

// Label formats d for headers. Invalid keys are returned verbatim.
func (c *Calendar) Label(d model.DateKey) string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format(LabelLayout)
}

func (c *Calendar) IsToday(d model.DateKey) bool {
	return d == c.Today()
}

// Before reports whether a is an earlier day than b. Canonical keys
// order lexically, so no parsing is needed.
func (c *Calendar) Before(a, b model.DateKey) bool {
	return a < b
}
