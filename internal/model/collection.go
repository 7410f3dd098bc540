package model

import (
	"errors"
	"fmt"
	"strings"
)

// Collection maps a day to its items. A missing day is an empty list.
// Treat a Collection obtained from a store as read-only; the engine
// always builds a new map instead of writing into an existing one.
type Collection map[DateKey][]Item

// Day returns the items stored for d (nil when the day has none).
func (c Collection) Day(d DateKey) []Item {
	if c == nil {
		return nil
	}
	return c[d]
}

// Clone returns a shallow copy of the map. Item slices are shared.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Tab selects one of the two collections.
type Tab string

const (
	TabOpen   Tab = "open"
	TabClosed Tab = "closed"
)

var ErrInvalidTab = errors.New("invalid tab")

// ParseTab accepts "open" and "closed". "close" is accepted too: the
// browser app used it as the identifier behind its "Close" tab.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return TabOpen, nil
	case "closed", "close":
		return TabClosed, nil
	}
	return "", fmt.Errorf("%w: %q (want open or closed)", ErrInvalidTab, s)
}

// Title is the heading shown for the tab's list.
func (t Tab) Title() string {
	if t == TabClosed {
		return "Closing Kitchen List"
	}
	return "Opening Kitchen List"
}

// Label is the short tab caption.
func (t Tab) Label() string {
	if t == TabClosed {
		return "Closing"
	}
	return "Opening"
}
