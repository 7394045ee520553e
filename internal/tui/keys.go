package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the popup.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Collapse    key.Binding
	Expand      key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Toggle      key.Binding
	Search      key.Binding
	Submit      key.Binding
	Cancel      key.Binding
	CycleEngine key.Binding
	Google      key.Binding
	Bing        key.Binding
	Clear       key.Binding
	YankURL     key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "collapse"),
		),
		Expand: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "expand"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		CycleEngine: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch engine"),
		),
		Google: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "google"),
		),
		Bing: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bing"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear selection"),
		),
		YankURL: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank search URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
