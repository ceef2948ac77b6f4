package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding of the thread view.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Filter    key.Binding
	Escape    key.Binding
	Sort      key.Binding
	Reverse   key.Binding
	Theme     key.Binding
	Interrupt key.Binding
	Continue  key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "switch to thread")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filter / back")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		Reverse:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse sort")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Interrupt: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "interrupt")),
		Continue:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		Refresh:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Filter, k.Interrupt, k.Continue, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter, k.Refresh},
		{k.Filter, k.Escape, k.Sort, k.Reverse},
		{k.Interrupt, k.Continue, k.Theme},
		{k.Help, k.Quit},
	}
}
