package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add, Edit, Toggle, DeleteMode, Delete, Copy key.Binding
	Prev, Next, Today, SwitchTab, Quit          key.Binding
}

func defaultKeys() *keyMap {
	return &keyMap{
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		DeleteMode: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete mode")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"), key.WithDisabled()),
		Copy:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy yesterday")),
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev day")),
		Next:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next day")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		SwitchTab:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "opening/closing")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k *keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.DeleteMode, k.Delete, k.Copy, k.SwitchTab}
}

func (k *keyMap) full() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.DeleteMode, k.Delete, k.Copy, k.Prev, k.Next, k.Today, k.SwitchTab}
}
