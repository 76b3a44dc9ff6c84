package app

// State represents the current lab state.
type State int

const (
	StateBrowse State = iota // Keys go to the focused dropdown
	StateInput               // Value prompt has focus (select or add)
	StateHelp                // Help panel overlay (F1)
)

func (s State) String() string {
	switch s {
	case StateBrowse:
		return "browse"
	case StateInput:
		return "input"
	case StateHelp:
		return "help"
	default:
		return "unknown"
	}
}

// inputMode selects what submitting the value prompt does.
type inputMode int

const (
	inputSelect inputMode = iota // commit the typed value (free-form allowed)
	inputAdd                     // append the typed value as a new item
)

func (m inputMode) String() string {
	if m == inputAdd {
		return "add"
	}
	return "select"
}
