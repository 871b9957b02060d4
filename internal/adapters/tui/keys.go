package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	NextPane key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Activate key.Binding
	Submit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		NextPane: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
		Up:       key.NewBinding(key.WithKeys("up", "shift+up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "shift+down"), key.WithHelp("↓", "down")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save notifications")),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.NextPane, k.Up, k.Down, k.Toggle, k.Activate, k.Submit, k.Quit}
}
