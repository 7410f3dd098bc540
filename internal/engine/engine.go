// Package engine holds the checklist mutations. Every function is pure:
// inputs are never written to, and a changed result is always a new
// Collection whose touched day is a freshly allocated slice.
package engine

import (
	"strings"

	"github.com/idilsaglam/checklist/internal/model"
)

// AddItem appends a new incomplete item to day. Blank text is ignored.
func AddItem(c model.Collection, day model.DateKey, id model.ItemID, text string) (model.Collection, bool) {
	if strings.TrimSpace(text) == "" {
		return c, false
	}
	cur := c.Day(day)
	items := make([]model.Item, len(cur), len(cur)+1)
	copy(items, cur)
	items = append(items, model.Item{ID: id, Text: text})
	return with(c, day, items), true
}

// DeleteItem removes the item with id from day.
func DeleteItem(c model.Collection, day model.DateKey, id model.ItemID) (model.Collection, bool) {
	cur := c.Day(day)
	idx := indexOf(cur, id)
	if idx < 0 {
		return c, false
	}
	items := make([]model.Item, 0, len(cur)-1)
	items = append(items, cur[:idx]...)
	items = append(items, cur[idx+1:]...)
	return with(c, day, items), true
}

// EditItem replaces the text of the item with id, keeping id and completion.
func EditItem(c model.Collection, day model.DateKey, id model.ItemID, text string) (model.Collection, bool) {
	return modify(c, day, id, func(it *model.Item) { it.Text = text })
}

// ToggleComplete flips the completion flag of the item with id.
func ToggleComplete(c model.Collection, day model.DateKey, id model.ItemID) (model.Collection, bool) {
	return modify(c, day, id, func(it *model.Item) { it.Complete = !it.Complete })
}

// CopyForward carries yesterday's items into today's list. Items whose
// text already appears today are skipped; two different tasks sharing a
// text therefore collapse into one. Carried items get fresh ids and
// start incomplete. Only the open collection is ever passed in.
func CopyForward(open model.Collection, today, yesterday model.DateKey, newID IDSource) (model.Collection, bool) {
	cur := open.Day(today)
	seen := make(map[string]struct{}, len(cur))
	for _, it := range cur {
		seen[it.Text] = struct{}{}
	}
	var carried []model.Item
	for _, it := range open.Day(yesterday) {
		if _, dup := seen[it.Text]; dup {
			continue
		}
		carried = append(carried, model.Item{ID: newID(), Text: it.Text})
	}
	if len(carried) == 0 {
		return open, false
	}
	items := make([]model.Item, 0, len(cur)+len(carried))
	items = append(items, cur...)
	items = append(items, carried...)
	return with(open, today, items), true
}

func modify(c model.Collection, day model.DateKey, id model.ItemID, fn func(*model.Item)) (model.Collection, bool) {
	cur := c.Day(day)
	idx := indexOf(cur, id)
	if idx < 0 {
		return c, false
	}
	items := make([]model.Item, len(cur))
	copy(items, cur)
	fn(&items[idx])
	return with(c, day, items), true
}

func with(c model.Collection, day model.DateKey, items []model.Item) model.Collection {
	out := c.Clone()
	out[day] = items
	return out
}

func indexOf(items []model.Item, id model.ItemID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
