// Package msg defines the tea.Msg types emitted by dropdowns.
// It has no upstream imports (ui, app) to avoid import cycles.
package msg

// -- Dropdown --

// SelectionChanged is sent after a dropdown's committed value changed.
type SelectionChanged struct {
	ID    string
	Label string
	Index int // -1 for a free-form value
}

// MenuStateChanged is sent after a dropdown's menu opened or closed.
type MenuStateChanged struct {
	ID   string
	Open bool
}

// -- Lab --

// BranchesLoaded carries branch names read from a git repository.
type BranchesLoaded struct {
	Path     string
	Branches []string
	Current  string // "" when HEAD is detached or unborn
	Err      error
}
