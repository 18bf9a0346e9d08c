package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab key.Binding
	PrevTab key.Binding
	Jump    key.Binding
	Quit    key.Binding

	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Submit key.Binding

	Open    key.Binding
	Left    key.Binding
	Right   key.Binding
	Accept  key.Binding
	Collect key.Binding
	Close   key.Binding
	Export  key.Binding
	Dismiss key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		Jump:    key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev field")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next / submit")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "list donation")),

		Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev pin")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next pin")),
		Accept:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept donation")),
		Collect: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark collected")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Export:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "export report")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "ok")),
	}
}
