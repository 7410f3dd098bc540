package checklist

import "github.com/idilsaglam/checklist/internal/model"

// Persistence keys, one per independently stored value.
const (
	KeyOpen        = "openChecklists"
	KeyClosed      = "closedChecklists"
	KeyCurrentDate = "currentDate"
)

// State is a snapshot of the store. Its collections are shared with the
// store and must not be written to.
type State struct {
	Open        model.Collection
	Closed      model.Collection
	CurrentDate model.DateKey
	Active      model.Tab
}

// Collection returns the collection selected by tab.
func (s State) Collection(tab model.Tab) model.Collection {
	if tab == model.TabClosed {
		return s.Closed
	}
	return s.Open
}

// ActiveCollection is the collection add/edit/delete/toggle act on.
func (s State) ActiveCollection() model.Collection {
	return s.Collection(s.Active)
}

// Day returns the active collection's items for the current date in
// stored order.
func (s State) Day() []model.Item {
	return s.ActiveCollection().Day(s.CurrentDate)
}
