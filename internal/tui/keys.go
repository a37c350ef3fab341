package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Next         key.Binding
	Prev         key.Binding
	Activate     key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	ClearHistory key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Next:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Activate:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open/select")),
		ScrollUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		ClearHistory: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear history")),
	}
}

func (k keyMap) footer() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.ScrollDown, k.ClearHistory, k.Quit}
}
