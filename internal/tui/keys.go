package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the desktop-wide bindings. Keys that match none of them are
// routed to the active window.
type keyMap struct {
	Quit       key.Binding
	Close      key.Binding
	Help       key.Binding
	Launchpad  key.Binding
	Cycle      key.Binding
	MoveMode   key.Binding
	ViewMode   key.Binding
	Theme      key.Binding
	Minimize   key.Binding
	Maximize   key.Binding
	FreshStart key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+w"),
			key.WithHelp("ctrl+w", "close window"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Launchpad: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "applications"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("f6", "next window"),
		),
		MoveMode: key.NewBinding(
			key.WithKeys("f7"),
			key.WithHelp("f7", "move/resize"),
		),
		ViewMode: key.NewBinding(
			key.WithKeys("f8"),
			key.WithHelp("f8", "desktop/mobile"),
		),
		Theme: key.NewBinding(
			key.WithKeys("f9"),
			key.WithHelp("f9", "theme"),
		),
		Minimize: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("f10", "minimize"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("f11"),
			key.WithHelp("f11", "maximize"),
		),
		FreshStart: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("f12", "fresh start"),
		),
	}
}

// ShortHelp lists the bindings shown on the empty desktop.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launchpad, k.Cycle, k.MoveMode, k.Close, k.Quit}
}

