package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dismiss key.Binding
	Grow    key.Binding
	Shrink  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Grow:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "expand")),
		Shrink:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "collapse")),
	}
}
