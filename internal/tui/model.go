// Package tui is the full-screen checklist view. All state lives in a
// checklist.Session; the bubbletea model only mirrors the active day into
// a list and turns keys into session intents.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/checklist/internal/checklist"
	"github.com/idilsaglam/checklist/internal/engine"
	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
)

type Model struct {
	sess *checklist.Session
	keys *keyMap // shared with the list help

	list list.Model
	ti   textinput.Model // shared by add and edit
	mode mode
	edit model.ItemID

	deleteMode *bool // shared with the delegate
	status     string
	inputErr   string

	width, height int
}

// New builds a model over sess, already showing the active day.
func New(sess *checklist.Session) Model {
	del := false
	keys := defaultKeys()

	l := list.New(nil, itemDelegate{deleteMode: &del}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.SetStatusBarItemName("item", "items")
	l.FilterInput.Prompt = "/ "
	l.Styles.HelpStyle = ui.Current().Help
	l.Styles.PaginationStyle = ui.Current().Help
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.full

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		sess:       sess,
		keys:       keys,
		list:       l,
		ti:         ti,
		deleteMode: &del,
		width:      80,
		height:     24,
	}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, sess *checklist.Session) error {
	p := tea.NewProgram(New(sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

// refresh reloads the list from the session and syncs key availability.
func (m *Model) refresh() {
	idx := m.list.Index()
	items := m.sess.Items()
	li := make([]list.Item, 0, len(items))
	for _, it := range items {
		li = append(li, listItem{it})
	}
	m.list.SetItems(li)
	if idx >= len(li) {
		idx = len(li) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
	m.keys.Next.SetEnabled(m.sess.CanGoForward())
	m.keys.Delete.SetEnabled(*m.deleteMode)
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it.Item, ok
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case adding, editing:
			return m.updateInput(msg)
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit, true

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.sess.ToggleComplete(it.ID)
			m.refresh()
		}
		return m, nil, true

	case key.Matches(msg, m.keys.DeleteMode):
		*m.deleteMode = !*m.deleteMode
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			m.sess.DeleteItem(it.ID)
			m.status = "deleted " + it.Text
			m.refresh()
		}
		return m, nil, true

	case key.Matches(msg, m.keys.Add):
		m.mode = adding
		m.inputErr = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New item..."
		cmd := m.ti.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Edit):
		it, ok := m.selected()
		if !ok {
			return m, nil, true
		}
		m.mode = editing
		m.edit = it.ID
		m.inputErr = ""
		m.ti.SetValue(it.Text)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit item..."
		cmd := m.ti.Focus()
		return m, cmd, true

	case key.Matches(msg, m.keys.Copy):
		if m.sess.CopyForward() {
			m.status = "copied yesterday's opening items"
		} else {
			m.status = "nothing to copy from yesterday"
		}
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.Prev):
		m.sess.ChangeDate(engine.Prev)
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.Next):
		m.sess.ChangeDate(engine.Next)
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.Today):
		m.sess.ChangeDate(engine.Today)
		m.refresh()
		return m, nil, true

	case key.Matches(msg, m.keys.SwitchTab):
		tab := model.TabClosed
		if m.sess.State().Active == model.TabClosed {
			tab = model.TabOpen
		}
		m.sess.SwitchCollection(tab)
		m.list.Select(0)
		m.refresh()
		return m, nil, true
	}
	// A disabled "next" must not fall through to list paging.
	for _, k := range m.keys.Next.Keys() {
		if msg.String() == k {
			m.status = "already on today"
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.ti.Value())
		if text == "" {
			m.inputErr = "Text cannot be empty"
			return m, nil
		}
		if m.mode == adding {
			m.sess.AddItem(text)
		} else {
			m.sess.EditItem(m.edit, text)
		}
		m.closeInput()
		m.refresh()
		return m, nil
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.edit = ""
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m Model) View() string {
	t := ui.Current()
	header := m.tabsView() + "\n" + ui.Header(m.sess.State().Active, m.sess.Items()) + "\n" + m.dateView()

	listHeight := m.height - 8
	if m.mode != browsing {
		listHeight -= 3
	}
	if listHeight < 3 {
		listHeight = 3
	}
	m.list.SetSize(m.width-4, listHeight)

	parts := []string{header, "", m.list.View()}
	if m.mode != browsing {
		title := "Add item"
		if m.mode == editing {
			title = "Edit item"
		}
		if m.inputErr != "" {
			title += ": " + t.Error.Render(m.inputErr)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		parts = append(parts, bar.Render(title+"\n"+m.ti.View()))
	}
	if m.status != "" {
		parts = append(parts, t.Muted.Render(m.status))
	}
	return ui.Panel([]string{strings.Join(parts, "\n")})
}

func (m Model) tabsView() string {
	t := ui.Current()
	active := m.sess.State().Active
	var tabs []string
	for _, tab := range []model.Tab{model.TabOpen, model.TabClosed} {
		label := " " + tab.Label() + " "
		if tab == active {
			tabs = append(tabs, t.Selected.Render(label))
		} else {
			tabs = append(tabs, t.Muted.Render(label))
		}
	}
	out := strings.Join(tabs, " ")
	if *m.deleteMode {
		out += "  " + t.Error.Render("DELETE MODE")
	}
	return out
}

func (m Model) dateView() string {
	t := ui.Current()
	prev := t.Accent.Render("← prev")
	next := t.Accent.Render("next →")
	if !m.sess.CanGoForward() {
		next = t.Muted.Render("next →")
	}
	today := t.Muted.Render("today")
	if !m.sess.IsToday() {
		today = t.Accent.Render("[t] today")
	}
	return fmt.Sprintf("%s  %s  %s  %s", prev, t.Title.Render(m.sess.Label()), next, today)
}
