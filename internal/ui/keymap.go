package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the swap screen.
type KeyMap struct {
	Quit       key.Binding
	FlipTokens key.Binding
	NextOutput key.Binding
	PrevOutput key.Binding
	Swap       key.Binding
	Refresh    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		FlipTokens: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "flip tokens"),
		),
		NextOutput: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next token"),
		),
		PrevOutput: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev token"),
		),
		Swap: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "swap"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh balances"),
		),
	}
}
