package ui

import (
	"fmt"

	"github.com/idilsaglam/checklist/internal/engine"
	"github.com/idilsaglam/checklist/internal/model"
)

const maxTextWidth = 80

// Header is the "Opening Kitchen List  ✔ 1  • 2" line.
func Header(tab model.Tab, items []model.Item) string {
	t := Current()
	d, p := engine.Stats(items)
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(tab.Title()),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render("•"), p,
		t.Accent.Render("Total"), len(items),
	)
}

// ItemLines renders items already in display order, numbered from 1.
func ItemLines(items []model.Item) []string {
	t := Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for i, it := range items {
		box, text := t.Muted.Render(t.BoxUnchecked), truncate(it.Text)
		if it.Complete {
			box, text = t.Success.Render(t.BoxChecked), t.Done.Render(text)
		}
		out = append(out, fmt.Sprintf("%s %s %s", t.Muted.Render(fmt.Sprintf("%2d.", i+1)), box, text))
	}
	return out
}

// GroupLines renders Pending and Done sections. Numbering continues across
// both sections so it matches the display order used for item references.
func GroupLines(items []model.Item) []string {
	t := Current()
	lines := ItemLines(items)
	if len(items) == 0 {
		return lines
	}
	split := len(items)
	for i, it := range items {
		if it.Complete {
			split = i
			break
		}
	}
	var out []string
	out = append(out, t.Accent.Render("Pending"))
	if split == 0 {
		out = append(out, t.Muted.Render("(none)"))
	}
	out = append(out, lines[:split]...)
	out = append(out, "", t.Accent.Render("Done"))
	if split == len(items) {
		out = append(out, t.Muted.Render("(none)"))
	}
	out = append(out, lines[split:]...)
	return out
}

// DayPanel is the full list view printed by `checklist ls`.
func DayPanel(tab model.Tab, label string, items []model.Item, group bool) string {
	t := Current()
	d, _ := engine.Stats(items)
	lines := []string{
		Header(tab, items),
		t.Accent.Render(label),
		t.Muted.Render(ProgressBar(d, len(items), 28)),
		"",
	}
	if group {
		lines = append(lines, GroupLines(items)...)
	} else {
		lines = append(lines, ItemLines(items)...)
	}
	if len(items) == 0 {
		lines = append(lines, "", t.Muted.Render(`Tip: add with checklist add "Wipe counters"`))
	}
	return Panel(lines)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxTextWidth {
		return string(r[:maxTextWidth-3]) + "..."
	}
	return s
}
