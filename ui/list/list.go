// Package list provides the scrolled row list used as the body of dropdown
// menus.
//
// Every item is one terminal line. The list keeps a row offset (the first
// visible item), renders only the rows inside the viewport and caches each
// row's render by ID, width and content version.
package list

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// Item is a row the list can render.
type Item interface {
	// ID returns a unique, stable identifier used for cache keying.
	ID() string

	// ContentVersion changes whenever the rendered row would change.
	ContentVersion() int

	// Render returns the row, exactly one line wide at most width columns.
	Render(width int) string
}

// Option is a functional option for New.
type Option func(*Model)

// WithWidth sets the initial row width.
func WithWidth(w int) Option {
	return func(m *Model) { m.width = w }
}

// WithHeight sets how many rows are visible at once.
func WithHeight(h int) Option {
	return func(m *Model) { m.height = h }
}

type cachedRow struct {
	content string
	width   int
	version int
}

// Model is a row-scrolled list. Construct with New.
type Model struct {
	items  []Item
	width  int
	height int
	offset int // index of the first visible row

	cache map[string]cachedRow
}

// New constructs a Model with the supplied options.
func New(opts ...Option) Model {
	m := Model{cache: make(map[string]cachedRow)}
	for _, o := range opts {
		o(&m)
	}
	return m
}

// ---------------------------------------------------------------------------
// Size and items
// ---------------------------------------------------------------------------

// SetSize updates the viewport. A width change drops every cached row.
func (m *Model) SetSize(w, h int) {
	if w != m.width {
		m.cache = make(map[string]cachedRow)
	}
	m.width = w
	m.height = h
	m.clamp()
}

// SetWidth updates the width, keeping the height.
func (m *Model) SetWidth(w int) { m.SetSize(w, m.height) }

// SetHeight updates the height, keeping the width.
func (m *Model) SetHeight(h int) { m.SetSize(m.width, h) }

// Height returns the number of visible rows.
func (m Model) Height() int { return m.height }

// SetItems replaces the rows. Rows whose ID and version are unchanged keep
// their cached render.
func (m *Model) SetItems(items []Item) {
	m.items = items
	m.clamp()
}

// Len returns the number of rows.
func (m Model) Len() int { return len(m.items) }

// ---------------------------------------------------------------------------
// Scroll
// ---------------------------------------------------------------------------

// Offset returns the index of the first visible row.
func (m Model) Offset() int { return m.offset }

// ScrollToTop shows the first row at the top.
func (m *Model) ScrollToTop() { m.offset = 0 }

// ScrollDown moves the viewport down by n rows.
func (m *Model) ScrollDown(n int) {
	if n > 0 {
		m.offset += n
		m.clamp()
	}
}

// ScrollUp moves the viewport up by n rows.
func (m *Model) ScrollUp(n int) {
	if n > 0 {
		m.offset -= n
		m.clamp()
	}
}

// ScrollIntoView moves the viewport by the minimum amount that shows row idx.
func (m *Model) ScrollIntoView(idx int) {
	if idx < 0 || idx >= len(m.items) || m.height <= 0 {
		return
	}
	switch {
	case idx < m.offset:
		m.offset = idx
	case idx >= m.offset+m.height:
		m.offset = idx - m.height + 1
	}
	m.clamp()
}

// AtTop reports whether the first row is visible.
func (m Model) AtTop() bool { return m.offset == 0 }

// AtBottom reports whether the last row is visible.
func (m Model) AtBottom() bool { return m.offset+m.height >= len(m.items) }

// ---------------------------------------------------------------------------
// Position helpers
// ---------------------------------------------------------------------------

// ItemIndexAtPosition resolves line y of the viewport to a row index, or -1
// when y is outside the rendered rows.
func (m Model) ItemIndexAtPosition(y int) int {
	if y < 0 || y >= m.height {
		return -1
	}
	if idx := m.offset + y; idx < len(m.items) {
		return idx
	}
	return -1
}

// VisibleRange returns the first and last row in the viewport. ok is false
// when nothing is visible.
func (m Model) VisibleRange() (first, last int, ok bool) {
	if m.height <= 0 || len(m.items) == 0 {
		return 0, -1, false
	}
	return m.offset, min(m.offset+m.height, len(m.items)) - 1, true
}

// ---------------------------------------------------------------------------
// Update (bubbletea)
// ---------------------------------------------------------------------------

// Update scrolls on mouse wheel events.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if wheel, ok := msg.(tea.MouseWheelMsg); ok {
		switch wheel.Button {
		case tea.MouseWheelUp:
			m.ScrollUp(1)
		case tea.MouseWheelDown:
			m.ScrollDown(1)
		}
	}
	return m, nil
}

// View renders the visible rows.
func (m Model) View() string {
	first, last, ok := m.VisibleRange()
	if !ok || m.width <= 0 {
		return ""
	}
	rows := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		rows = append(rows, m.render(m.items[i]))
	}
	return strings.Join(rows, "\n")
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

// clamp keeps the offset inside the rows and never leaves blank space below
// the last row.
func (m *Model) clamp() {
	m.offset = min(m.offset, max(len(m.items)-m.height, 0))
	m.offset = max(m.offset, 0)
}

func (m Model) render(item Item) string {
	id, ver := item.ID(), item.ContentVersion()
	if cr, ok := m.cache[id]; ok && cr.width == m.width && cr.version == ver {
		return cr.content
	}
	out := item.Render(m.width)
	m.cache[id] = cachedRow{content: out, width: m.width, version: ver}
	return out
}
