package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the host key bindings. It implements help.KeyMap.
type keyMap struct {
	Quit        key.Binding
	Cancel      key.Binding
	Reset       key.Binding
	NextDivider key.Binding
	PrevDivider key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	Help        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset sizes"),
		),
		NextDivider: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next divider"),
		),
		PrevDivider: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev divider"),
		),
		Grow: key.NewBinding(
			key.WithKeys("right", "down", "l", "j"),
			key.WithHelp("→/↓", "move divider forward"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("left", "up", "h", "k"),
			key.WithHelp("←/↑", "move divider back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextDivider, k.Grow, k.Shrink, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextDivider, k.PrevDivider, k.Grow, k.Shrink},
		{k.Cancel, k.Reset},
		{k.Help, k.Quit},
	}
}
