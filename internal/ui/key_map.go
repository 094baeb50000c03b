package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	home    key.Binding
	movies  key.Binding
	admin   key.Binding
	review  key.Binding
	create  key.Binding
	edit    key.Binding
	delete  key.Binding
	logout  key.Binding
	refresh key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		home:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "home")),
		movies:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "movies")),
		admin:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		review:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "review")),
		create:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new movie")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		refresh: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.home, k.movies, k.admin, k.review},
		{k.create, k.edit, k.delete},
		{k.logout, k.refresh, k.quit},
	}
}
