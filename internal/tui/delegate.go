package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/ui"
)

// listItem adapts model.Item to bubbles/list.Item.
type listItem struct{ model.Item }

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

// itemDelegate renders one line per item: cursor, checkbox, text.
type itemDelegate struct {
	deleteMode *bool
}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box, text := t.Muted.Render(t.BoxUnchecked), it.Text
	if it.Complete {
		box, text = t.Success.Render(t.BoxChecked), t.Done.Render(it.Text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
		if d.deleteMode != nil && *d.deleteMode {
			prefix = t.Error.Render(t.SymFail + " ")
		}
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
