package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Focus    key.Binding
	Blur     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Activate key.Binding
	Copy     key.Binding
	Top      key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Tabs     [5]key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	k := keyMap{
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus circuit")),
		Blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/blur")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev node")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next node")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev node")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next node")),
		Activate: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/space", "open node")),
		Copy:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy detail")),
		Top:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "back to top")),
		NextTab:  key.NewBinding(key.WithKeys("]", "ctrl+right"), key.WithHelp("]", "next tab")),
		PrevTab:  key.NewBinding(key.WithKeys("[", "ctrl+left"), key.WithHelp("[", "prev tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	for i := range k.Tabs {
		n := string(rune('1' + i))
		k.Tabs[i] = key.NewBinding(key.WithKeys(n), key.WithHelp(n, tabNames[i]))
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Right, k.Activate, k.NextTab, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Blur, k.Activate, k.Copy},
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextTab, k.PrevTab, k.Top, k.Tabs[0], k.Tabs[4]},
		{k.Help, k.Quit},
	}
}
