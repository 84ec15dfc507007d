package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Pick   key.Binding
	Choose key.Binding
	Submit key.Binding
	New    key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Pick:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "select")),
		Choose: key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "select")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new quiz")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Pick, k.Submit, k.New, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Pick, k.Choose}, {k.Submit, k.New, k.Quit}}
}
