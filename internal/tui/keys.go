package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	PrevMessage key.Binding
	NextMessage key.Binding
	Sender      key.Binding
	PreviewUp   key.Binding
	PreviewDn   key.Binding
	Enter       key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+k"),
		key.WithHelp("up/C-k", "previous result"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+j"),
		key.WithHelp("dn/C-j", "next result"),
	),
	PrevMessage: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("C-p", "previous message"),
	),
	NextMessage: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("C-n", "next message"),
	),
	Sender: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "cycle sender"),
	),
	PreviewUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "scroll up"),
	),
	PreviewDn: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "scroll down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "copy"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}
