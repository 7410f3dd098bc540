package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/checklist/internal/model"
)

func fixed(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestPrevNext(t *testing.T) {
	c := New(fixed(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	tests := []struct {
		name string
		in   model.DateKey
		prev model.DateKey
		next model.DateKey
	}{
		{name: "mid month", in: "2024-01-05", prev: "2024-01-04", next: "2024-01-06"},
		{name: "month boundary", in: "2024-03-01", prev: "2024-02-29", next: "2024-03-02"},
		{name: "year boundary", in: "2024-12-31", prev: "2024-12-30", next: "2025-01-01"},
		{name: "invalid key falls back to today", in: "garbage", prev: "2024-02-29", next: "2024-03-02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.prev, c.Prev(tt.in))
			assert.Equal(t, tt.next, c.Next(tt.in))
		})
	}
}

func TestPrevNextAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	c := New(WithLocation(ny), fixed(time.Date(2024, 3, 10, 12, 0, 0, 0, ny)))
	assert.Equal(t, model.DateKey("2024-03-11"), c.Next("2024-03-10"))
	assert.Equal(t, model.DateKey("2024-03-09"), c.Prev("2024-03-10"))
	assert.Equal(t, model.DateKey("2024-11-04"), c.Next("2024-11-03"))
}

func TestTodayUsesLocation(t *testing.T) {
	instant := time.Date(2024, 1, 6, 2, 30, 0, 0, time.UTC)
	la := time.FixedZone("PST", -8*60*60)

	assert.Equal(t, model.DateKey("2024-01-06"), New(fixed(instant), WithLocation(time.UTC)).Today())
	assert.Equal(t, model.DateKey("2024-01-05"), New(fixed(instant), WithLocation(la)).Today())
}

func TestLabelAndIsToday(t *testing.T) {
	c := New(fixed(time.Date(2024, 1, 5, 8, 0, 0, 0, time.Local)))

	assert.Equal(t, "January 5, 2024", c.Label("2024-01-05"))
	assert.Equal(t, "nope", c.Label("nope"))
	assert.True(t, c.IsToday("2024-01-05"))
	assert.False(t, c.IsToday("2024-01-04"))
	assert.True(t, c.Before("2024-01-04", "2024-01-05"))
	assert.False(t, c.Before("2024-01-05", "2024-01-05"))
}
