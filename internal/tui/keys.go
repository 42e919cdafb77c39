package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the sync view
type KeyMap struct {
	Quit key.Binding
	Hide key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "cancel"),
		),
		Hide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hide finished"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
