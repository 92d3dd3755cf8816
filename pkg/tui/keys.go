package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevCategory key.Binding
	NextCategory key.Binding
	Up           key.Binding
	Down         key.Binding
	Open         key.Binding
	Close        key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevCategory: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←/h", "prev category"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/l", "next category"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevCategory, k.NextCategory, k.Up, k.Down, k.Open, k.Close, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevCategory, k.NextCategory},
		{k.Up, k.Down, k.Open},
		{k.Close, k.Quit},
	}
}
