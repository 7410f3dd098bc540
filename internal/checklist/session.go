package checklist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/checklist/internal/engine"
	"github.com/idilsaglam/checklist/internal/model"
)

var ErrNoSuchItem = errors.New("no such item")

// Calendar is what a Session needs from the calendar package.
type Calendar interface {
	engine.Days
	Label(model.DateKey) string
	IsToday(model.DateKey) bool
	Before(a, b model.DateKey) bool
}

// Session turns user intents into engine calls against the active
// (tab, date) cell and installs the results in the Store.
type Session struct {
	store *Store
	cal   Calendar
	newID engine.IDSource
}

// NewSession wires a session. A nil ids uses engine.NewID.
func NewSession(st *Store, cal Calendar, ids engine.IDSource) *Session {
	if ids == nil {
		ids = engine.NewID
	}
	return &Session{store: st, cal: cal, newID: ids}
}

func (s *Session) Store() *Store { return s.store }

func (s *Session) State() State { return s.store.State() }

// AddItem appends text to the active day. Blank text is ignored.
func (s *Session) AddItem(text string) bool {
	return s.mutateActive(func(c model.Collection, day model.DateKey) (model.Collection, bool) {
		return engine.AddItem(c, day, s.newID(), text)
	})
}

func (s *Session) DeleteItem(id model.ItemID) bool {
	return s.mutateActive(func(c model.Collection, day model.DateKey) (model.Collection, bool) {
		return engine.DeleteItem(c, day, id)
	})
}

func (s *Session) EditItem(id model.ItemID, text string) bool {
	return s.mutateActive(func(c model.Collection, day model.DateKey) (model.Collection, bool) {
		return engine.EditItem(c, day, id, text)
	})
}

func (s *Session) ToggleComplete(id model.ItemID) bool {
	return s.mutateActive(func(c model.Collection, day model.DateKey) (model.Collection, bool) {
		return engine.ToggleComplete(c, day, id)
	})
}

func (s *Session) mutateActive(fn func(model.Collection, model.DateKey) (model.Collection, bool)) bool {
	var changed bool
	s.store.Update(func(st State, tx *Tx) {
		var next model.Collection
		next, changed = fn(st.ActiveCollection(), st.CurrentDate)
		if changed {
			tx.SetCollection(st.Active, next)
		}
	})
	return changed
}

// CopyForward carries the previous day's open items into the current day.
// The closed collection is never touched, whichever tab is active.
func (s *Session) CopyForward() bool {
	var changed bool
	s.store.Update(func(st State, tx *Tx) {
		var next model.Collection
		next, changed = engine.CopyForward(st.Open, st.CurrentDate, s.cal.Prev(st.CurrentDate), s.newID)
		if changed {
			tx.SetOpen(next)
		}
	})
	return changed
}

// ChangeDate moves the current date and returns the new one.
func (s *Session) ChangeDate(dir engine.Direction) model.DateKey {
	var next model.DateKey
	s.store.Update(func(st State, tx *Tx) {
		next = engine.ChangeDate(s.cal, st.CurrentDate, dir)
		if next != st.CurrentDate {
			tx.SetCurrentDate(next)
		}
	})
	return next
}

// GoTo jumps to an explicit day.
func (s *Session) GoTo(d model.DateKey) {
	s.store.SetCurrentDate(d)
}

// SwitchCollection selects the tab; the current date is unchanged.
func (s *Session) SwitchCollection(tab model.Tab) {
	s.store.SetActive(tab)
}

// Items returns the active day's items in display order.
func (s *Session) Items() []model.Item {
	return engine.DisplaySort(s.store.State().Day())
}

// Label is the display label of the current date.
func (s *Session) Label() string {
	return s.cal.Label(s.store.State().CurrentDate)
}

// CanGoForward reports whether forward navigation should be offered:
// only while the current date is before today.
func (s *Session) CanGoForward() bool {
	return s.cal.Before(s.store.State().CurrentDate, s.cal.Today())
}

// IsToday reports whether the current date is today.
func (s *Session) IsToday() bool {
	return s.cal.IsToday(s.store.State().CurrentDate)
}

// Resolve finds an item on the active day by 1-based display position
// (as printed by list views) or by id.
func (s *Session) Resolve(ref string) (model.Item, error) {
	ref = strings.TrimSpace(ref)
	items := s.Items()
	n, numErr := strconv.Atoi(ref)
	if numErr == nil && n >= 1 && n <= len(items) {
		return items[n-1], nil
	}
	for _, it := range items {
		if string(it.ID) == ref {
			return it, nil
		}
	}
	if numErr == nil {
		return model.Item{}, fmt.Errorf("%w: index out of range: have %d, got %d", ErrNoSuchItem, len(items), n)
	}
	return model.Item{}, fmt.Errorf("%w: %q", ErrNoSuchItem, ref)
}
