package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the host key bindings.
type KeyMap struct {
	Visibility key.Binding
	Restart    key.Binding
	Image      key.Binding
	Brighter   key.Binding
	Dimmer     key.Binding
	Skip       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Visibility: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "show/hide"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Image: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "image on/off"),
		),
		Brighter: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise threshold"),
		),
		Dimmer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "lower threshold"),
		),
		Skip: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "skip intro"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Visibility, k.Restart, k.Image, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Visibility, k.Restart, k.Skip},
		{k.Image, k.Brighter, k.Dimmer},
		{k.Help, k.Quit},
	}
}
