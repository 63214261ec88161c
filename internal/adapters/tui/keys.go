package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Toggle key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Work   key.Binding
	Short  key.Binding
	Long   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Pause:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Skip:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip")),
		Work:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "work 25")),
		Short:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "short break")),
		Long:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "long break")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select project")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Skip, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Toggle, k.Reset, k.Skip},
		{k.Work, k.Short, k.Long},
		{k.Up, k.Down, k.Select},
		{k.Help, k.Quit},
	}
}
