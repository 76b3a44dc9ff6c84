package dropdown

import (
	"errors"
	"fmt"
)

// ErrInvalidState is reported by Validate when a menu's cursor invariants do
// not hold. Navigation itself never fails: out-of-lifecycle calls are no-ops
// and indices are clamped.
var ErrInvalidState = errors.New("dropdown: invalid state")

// MenuState is the open/closed state of a dropdown menu.
type MenuState int

const (
	MenuClosed MenuState = iota
	MenuOpen
)

func (s MenuState) String() string {
	switch s {
	case MenuClosed:
		return "closed"
	case MenuOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Direction selects which way a step or page movement goes.
type Direction int

const (
	Previous Direction = iota
	Next
)

// Counter reports how many items a menu navigates over.
type Counter interface {
	Count() int
}

// VisibleRangeProvider reports the contiguous index range currently scrolled
// into view. ok is false when the range is unknown.
type VisibleRangeProvider interface {
	VisibleRange() (first, last int, ok bool)
}

// Menu is the open/closed state machine of a dropdown. It owns the
// preselection (keyboard highlight) and only ever refers to items by index.
// The zero value is not usable; construct with NewMenu.
type Menu struct {
	state MenuState

	// preselected is -1 when unset.
	preselected int

	items  Counter
	pages  VisibleRangeProvider
	commit func(index int)

	observers []func(MenuState)
}

// NewMenu returns a closed menu over items. commit is called by Activate with
// the preselected index before the menu closes; it may be nil.
func NewMenu(items Counter, commit func(index int)) *Menu {
	return &Menu{
		preselected: -1,
		items:       items,
		commit:      commit,
	}
}

// SetVisibleRangeProvider installs the source of page sizes for MovePage.
func (m *Menu) SetVisibleRangeProvider(p VisibleRangeProvider) { m.pages = p }

// OnStateChange registers fn to run after every open/close transition.
func (m *Menu) OnStateChange(fn func(MenuState)) {
	if fn != nil {
		m.observers = append(m.observers, fn)
	}
}

// State returns the current state.
func (m *Menu) State() MenuState { return m.state }

// IsOpen reports whether the menu is open.
func (m *Menu) IsOpen() bool { return m.state == MenuOpen }

// Preselected returns the highlighted index. ok is false when nothing is
// highlighted, which is always the case while closed.
func (m *Menu) Preselected() (index int, ok bool) {
	if m.preselected < 0 {
		return -1, false
	}
	return m.preselected, true
}

// Toggle opens a closed menu and closes an open one.
func (m *Menu) Toggle(selected int) {
	if m.state == MenuOpen {
		m.Close()
		return
	}
	m.Open(selected)
}

// Open moves Closed→Open and highlights selected when it is a valid index,
// else the first item. An empty menu opens with no highlight.
func (m *Menu) Open(selected int) {
	if m.state == MenuOpen {
		return
	}
	n := m.count()
	switch {
	case selected >= 0 && selected < n:
		m.preselected = selected
	case n > 0:
		m.preselected = 0
	default:
		m.preselected = -1
	}
	m.state = MenuOpen
	m.notify()
}

// Close moves to Closed and clears the highlight.
func (m *Menu) Close() {
	if m.state == MenuClosed {
		return
	}
	m.state = MenuClosed
	m.preselected = -1
	m.notify()
}

// MoveStep moves the highlight one item. It stops at either end.
func (m *Menu) MoveStep(dir Direction) {
	m.moveBy(dir, 1)
}

// MovePage moves the highlight by the size of the visible range, clamped to
// the ends in a single jump.
func (m *Menu) MovePage(dir Direction) {
	m.moveBy(dir, m.pageSize())
}

// MoveToStart highlights the first item.
func (m *Menu) MoveToStart() {
	if m.state != MenuOpen || m.count() == 0 {
		return
	}
	m.preselected = 0
}

// MoveToEnd highlights the last item.
func (m *Menu) MoveToEnd() {
	n := m.count()
	if m.state != MenuOpen || n == 0 {
		return
	}
	m.preselected = n - 1
}

// Preselect highlights index, clamped to the item range. Used for hover.
func (m *Menu) Preselect(index int) {
	n := m.count()
	if m.state != MenuOpen || n == 0 {
		return
	}
	m.preselected = clamp(index, 0, n-1)
}

// Activate commits the highlighted item, if any, and closes the menu.
func (m *Menu) Activate() {
	if m.state != MenuOpen {
		return
	}
	if idx, ok := m.Preselected(); ok && m.commit != nil {
		m.commit(idx)
	}
	m.Close()
}

// Validate checks the cursor invariants.
func (m *Menu) Validate() error {
	n := m.count()
	switch {
	case m.state == MenuClosed && m.preselected >= 0:
		return fmt.Errorf("preselection %d set while closed: %w", m.preselected, ErrInvalidState)
	case m.state == MenuOpen && m.preselected >= n:
		return fmt.Errorf("preselection %d outside %d items: %w", m.preselected, n, ErrInvalidState)
	}
	return nil
}

func (m *Menu) moveBy(dir Direction, delta int) {
	n := m.count()
	if m.state != MenuOpen || n == 0 {
		return
	}
	if m.preselected < 0 {
		m.preselected = 0
		return
	}
	if dir == Previous {
		delta = -delta
	}
	m.preselected = clamp(m.preselected+delta, 0, n-1)
}

func (m *Menu) pageSize() int {
	if m.pages == nil {
		return 1
	}
	first, last, ok := m.pages.VisibleRange()
	if !ok || last < first {
		return 1
	}
	return last - first + 1
}

func (m *Menu) count() int {
	if m.items == nil {
		return 0
	}
	return m.items.Count()
}

func (m *Menu) notify() {
	state := m.state
	for _, fn := range m.observers {
		fn(state)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
