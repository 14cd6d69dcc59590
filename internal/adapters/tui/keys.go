package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	End    key.Binding
	Reload key.Binding
	Notify key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start session"),
		),
		End: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end session"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload history"),
		),
		Notify: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab", "toggle alerts"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.End, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.End, k.Reload},
		{k.Notify, k.Help, k.Quit},
	}
}

// syncControls enables only the session keys usable in the current state.
func (k *keyMap) syncControls(startEnabled, endEnabled, busy bool) {
	k.Start.SetEnabled(startEnabled && !busy)
	k.End.SetEnabled(endEnabled && !busy)
}
