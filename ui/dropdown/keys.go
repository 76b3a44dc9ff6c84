package dropdown

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
)

// Key is a navigation key understood by HandleKey.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyEnter
	KeyEscape
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyPageUp:
		return "pgup"
	case KeyPageDown:
		return "pgdown"
	case KeyEnter:
		return "enter"
	case KeyEscape:
		return "esc"
	default:
		return "unknown"
	}
}

// PlatformAction is a list "jump" request delivered by the host platform,
// usually bound to home/end.
type PlatformAction int

const (
	ListStart PlatformAction = iota
	ListEnd
)

func (a PlatformAction) String() string {
	switch a {
	case ListStart:
		return "list-start"
	case ListEnd:
		return "list-end"
	default:
		return "unknown"
	}
}

// KeyMap defines keybindings for a dropdown.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Enter    key.Binding // activate the highlighted item
	Escape   key.Binding // close without committing
	Toggle   key.Binding // open/close from the header
	Start    key.Binding // ListStart
	End      key.Binding // ListEnd
}

// DefaultKeyMap returns the standard key bindings for a dropdown.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "page down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space"),
			key.WithHelp("space", "open/close"),
		),
		Start: key.NewBinding(
			key.WithKeys("home", "ctrl+home"),
			key.WithHelp("home", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+end"),
			key.WithHelp("end", "last"),
		),
	}
}

// Bindings returns every binding in display order. Used for help output.
func (k KeyMap) Bindings() []key.Binding {
	return []key.Binding{k.Toggle, k.Up, k.Down, k.PageUp, k.PageDown, k.Start, k.End, k.Enter, k.Escape}
}

// inputKind classifies a key press against the map.
type inputKind int

const (
	inputNone inputKind = iota
	inputKey
	inputAction
	inputToggle
)

// resolve maps a key press to a Key, a PlatformAction or a toggle.
func (k KeyMap) resolve(press tea.KeyPressMsg) (inputKind, Key, PlatformAction) {
	switch {
	case key.Matches(press, k.Up):
		return inputKey, KeyUp, 0
	case key.Matches(press, k.Down):
		return inputKey, KeyDown, 0
	case key.Matches(press, k.PageUp):
		return inputKey, KeyPageUp, 0
	case key.Matches(press, k.PageDown):
		return inputKey, KeyPageDown, 0
	case key.Matches(press, k.Enter):
		return inputKey, KeyEnter, 0
	case key.Matches(press, k.Escape):
		return inputKey, KeyEscape, 0
	case key.Matches(press, k.Toggle):
		return inputToggle, 0, 0
	case key.Matches(press, k.Start):
		return inputAction, 0, ListStart
	case key.Matches(press, k.End):
		return inputAction, 0, ListEnd
	}
	return inputNone, 0, 0
}
