package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the global [key.Binding] mapping for the TUI. Page bindings
// live with their pages.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	back    key.Binding
	forward key.Binding
	address key.Binding
	sidebar key.Binding
	share   key.Binding
	signIn  key.Binding
	quit    key.Binding
	abort   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		esc:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		back:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "back")),
		forward: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "forward")),
		address: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "go to")),
		sidebar: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		share:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		signIn:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sign in")),
		quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		abort:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.back, k.forward, k.address, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.esc},
		{k.back, k.forward, k.address},
		{k.sidebar, k.share, k.signIn, k.quit},
	}
}

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}
