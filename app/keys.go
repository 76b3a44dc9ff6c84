package app

import "charm.land/bubbles/v2/key"

// KeyMap defines the lab's global keybindings. Keys not matched here are
// routed to the focused dropdown.
type KeyMap struct {
	Quit      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Help      key.Binding
	Inspect   key.Binding
	Select    key.Binding
	Add       key.Binding

	// Value prompt
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next dropdown"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous dropdown"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("F1", "help"),
		),
		Inspect: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "inspector"),
		),
		Select: key.NewBinding(
			key.WithKeys("s", "/"),
			key.WithHelp("s", "type a value"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add item"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar while browsing.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Select, k.Add, k.Inspect, k.Help, k.Quit}
}

// InputHelp returns the bindings shown in the status bar while the value
// prompt has focus.
func (k KeyMap) InputHelp() []key.Binding {
	return []key.Binding{
		k.Submit,
		k.Cancel,
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "history")),
	}
}

// Bindings returns every global binding, in help order.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.NextFocus, k.PrevFocus, k.Select, k.Add, k.Inspect, k.Help, k.Quit}
}
