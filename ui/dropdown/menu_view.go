package dropdown

import (
	"strconv"

	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/common"
	"github.com/miosa/osa-dropdown/ui/list"
)

// MenuView is the popup part of a dropdown. Like Header it is push-only,
// except for VisibleRange, which the menu state machine reads to size page
// jumps, and ItemAt, which hosts use for hit-testing.
type MenuView interface {
	SetItems(labels []string)
	SetHighlight(index int) // -1 clears
	SetSelected(index int)  // -1 clears
	SetOpen(open bool)
	SetWidth(w int)
	VisibleRange() (first, last int, ok bool)
	// ItemAt maps a line offset inside the rendered menu to an item index,
	// or -1.
	ItemAt(y int) int
	View() string
}

// MenuFactory builds the menu view for a new dropdown. height is the number
// of item rows visible at once.
type MenuFactory func(height int) MenuView

// ---------------------------------------------------------------------------
// Default list-backed menu
// ---------------------------------------------------------------------------

// menuItem adapts one label to list.Item. version bumps whenever the row's
// highlight or selected flag flips so the list re-renders just that row.
type menuItem struct {
	index       int
	label       string
	highlighted bool
	selected    bool
	version     int
}

func (it *menuItem) ID() string          { return strconv.Itoa(it.index) }
func (it *menuItem) ContentVersion() int { return it.version }

func (it *menuItem) Render(width int) string {
	marker := "  "
	if it.selected {
		marker = "✓ "
	}
	// PaddingLeft(1) + marker
	text := marker + common.Truncate(it.label, max(width-3, 1))
	switch {
	case it.highlighted:
		return style.DropdownItemHighlight.Width(width).Render(text)
	case it.selected:
		return style.DropdownItemSelected.Width(width).Render(text)
	default:
		return style.DropdownItem.Width(width).Render(text)
	}
}

// ListMenu is the default MenuView, a bordered list.Model.
type ListMenu struct {
	list      list.Model
	items     []*menuItem
	highlight int
	selected  int
	open      bool
	width     int
}

// NewListMenu returns the default menu view showing height rows.
func NewListMenu(height int) MenuView {
	if height < 1 {
		height = 1
	}
	return &ListMenu{
		list:      list.New(list.WithWidth(21), list.WithHeight(height)),
		highlight: -1,
		selected:  -1,
		width:     24,
	}
}

// SetItems replaces the rows, keeping highlight and selected marks.
func (m *ListMenu) SetItems(labels []string) {
	items := make([]*menuItem, len(labels))
	rows := make([]list.Item, len(labels))
	for i, label := range labels {
		it := &menuItem{index: i, label: label}
		if i < len(m.items) {
			it.version = m.items[i].version + 1
		}
		it.highlighted = i == m.highlight
		it.selected = i == m.selected
		items[i] = it
		rows[i] = it
	}
	m.items = items
	m.list.SetItems(rows)
	if m.highlight >= len(items) {
		m.highlight = -1
	}
	if m.selected >= len(items) {
		m.selected = -1
	}
}

// SetHighlight marks index as the keyboard preselection and scrolls it into
// view.
func (m *ListMenu) SetHighlight(index int) {
	if index == m.highlight {
		return
	}
	m.mark(m.highlight, func(it *menuItem) { it.highlighted = false })
	m.highlight = -1
	if index >= 0 && index < len(m.items) {
		m.highlight = index
		m.mark(index, func(it *menuItem) { it.highlighted = true })
		m.list.ScrollIntoView(index)
	}
}

// SetSelected marks index as the committed value.
func (m *ListMenu) SetSelected(index int) {
	if index == m.selected {
		return
	}
	m.mark(m.selected, func(it *menuItem) { it.selected = false })
	m.selected = -1
	if index >= 0 && index < len(m.items) {
		m.selected = index
		m.mark(index, func(it *menuItem) { it.selected = true })
	}
}

// SetOpen shows or hides the popup. Opening scrolls the highlight, or the
// selected row, into view.
func (m *ListMenu) SetOpen(open bool) {
	m.open = open
	if !open {
		return
	}
	switch {
	case m.highlight >= 0:
		m.list.ScrollIntoView(m.highlight)
	case m.selected >= 0:
		m.list.ScrollIntoView(m.selected)
	default:
		m.list.ScrollToTop()
	}
}

// SetWidth sets the outer width including the side borders and the
// scrollbar column.
func (m *ListMenu) SetWidth(w int) {
	if w <= 3 {
		return
	}
	m.width = w
	m.list.SetWidth(w - 3)
}

// VisibleRange reports the rows currently scrolled into view.
func (m *ListMenu) VisibleRange() (first, last int, ok bool) {
	return m.list.VisibleRange()
}

// ItemAt resolves a line inside the popup body to an item index.
func (m *ListMenu) ItemAt(y int) int {
	if !m.open {
		return -1
	}
	return m.list.ItemIndexAtPosition(y)
}

// Scroll moves the viewport without touching the highlight (mouse wheel).
func (m *ListMenu) Scroll(lines int) {
	if lines < 0 {
		m.list.ScrollUp(-lines)
		return
	}
	m.list.ScrollDown(lines)
}

// View renders the popup, or nothing while closed.
func (m *ListMenu) View() string {
	if !m.open {
		return ""
	}
	body := m.list.View()
	if len(m.items) == 0 {
		body = style.DropdownPlaceholder.Render(" (no items)")
	} else if first, _, ok := m.list.VisibleRange(); ok {
		body = common.WithScrollbar(body, m.list.Height(), len(m.items), first)
	}
	return style.DropdownMenu.Width(m.width).Render(body)
}

func (m *ListMenu) mark(index int, fn func(*menuItem)) {
	if index < 0 || index >= len(m.items) {
		return
	}
	it := m.items[index]
	fn(it)
	it.version++
}
