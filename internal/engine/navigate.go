package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/checklist/internal/model"
)

// Direction is a day navigation intent.
type Direction string

const (
	Prev  Direction = "prev"
	Next  Direction = "next"
	Today Direction = "today"
)

var ErrInvalidDirection = errors.New("invalid direction")

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Prev, Next, Today:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q (want prev, next or today)", ErrInvalidDirection, s)
}

// Days is the calendar surface ChangeDate needs.
type Days interface {
	Today() model.DateKey
	Prev(model.DateKey) model.DateKey
	Next(model.DateKey) model.DateKey
}

// ChangeDate computes the day reached from current. "next" is computed
// even when current is today; blocking it is up to the caller's UI.
// Unknown directions behave like "today".
func ChangeDate(days Days, current model.DateKey, dir Direction) model.DateKey {
	switch dir {
	case Prev:
		return days.Prev(current)
	case Next:
		return days.Next(current)
	default:
		return days.Today()
	}
}
