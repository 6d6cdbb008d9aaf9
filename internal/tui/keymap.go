package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the page-level keyboard shortcuts. Modals and forms handle
// their own keys.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Board     key.Binding
	Dashboard key.Binding
	Login     key.Binding
	Logout    key.Binding
	Back      key.Binding

	// Price board
	Search       key.Binding
	Filter       key.Binding
	ClearFilters key.Binding

	// Dashboard
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Bulk   key.Binding

	// Application
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Board: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "price board"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "dashboard"),
		),
		Login: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "log in"),
		),
		Logout: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "log out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "tab"),
			key.WithHelp("f/Tab", "filters"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear filters"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e/Enter", "edit entry"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x/Del", "delete entry"),
		),
		Bulk: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "bulk update"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Board, k.Dashboard, k.Search, k.Add, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Board, k.Dashboard, k.Back},
		{k.Search, k.Filter, k.ClearFilters, k.Refresh},
		{k.Add, k.Edit, k.Delete, k.Bulk},
		{k.Login, k.Logout, k.Help, k.Quit},
	}
}
