package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	left    key.Binding
	right   key.Binding
	enter   key.Binding
	back    key.Binding
	check   key.Binding
	redo    key.Binding
	bigger  key.Binding
	smaller key.Binding
	tab     key.Binding
	list    key.Binding
	reset   key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		check:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "check")),
		redo:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new board")),
		bigger:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "bigger board")),
		smaller: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "smaller board")),
		tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		list:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "toggle song list")),
		reset:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset game")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.check, k.redo, k.bigger, k.smaller},
		{k.tab, k.list, k.reset, k.quit},
	}
}
