// Package status provides the lab's bottom status bar.
// It renders the focused dropdown, the last event and key help.
package status

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/common"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	id       string
	open     bool
	selected int // -1 when nothing or a free-form value is committed
	count    int
	message  string
	isError  bool
	bindings []key.Binding
	width    int
}

// New returns a Model with nothing focused.
func New() Model {
	return Model{selected: -1, width: 80}
}

// SetFocused stores the focused dropdown's ID and menu state.
func (m *Model) SetFocused(id string, open bool) {
	m.id = id
	m.open = open
}

// SetPosition stores the committed index and the item count for the pill.
func (m *Model) SetPosition(selected, count int) {
	m.selected = selected
	m.count = count
}

// SetMessage shows text after the badge. isError renders it as an error.
func (m *Model) SetMessage(text string, isError bool) {
	m.message = text
	m.isError = isError
}

// Message returns the current message and whether it is an error.
func (m Model) Message() (string, bool) { return m.message, m.isError }

// SetBindings sets the key help shown on the right.
func (m *Model) SetBindings(b []key.Binding) { m.bindings = b }

// SetWidth sets the terminal width the bar spans.
func (m *Model) SetWidth(w int) {
	if w > 0 {
		m.width = w
	}
}

// View renders the bar on one line: badge, position pill and message on the
// left, key help on the right. The message is truncated first when space
// runs out.
func (m Model) View() string {
	var left []string
	if m.id != "" {
		state := "closed"
		if m.open {
			state = "open"
		}
		left = append(left, common.StatusBadge(m.id+" "+state, m.open))
	}
	if pill := PositionPill(m.selected, m.count); pill != "" {
		left = append(left, pill)
	}
	right := common.KeyHelp(m.bindings...)

	head := strings.Join(left, "  ")
	if m.message != "" {
		room := m.width - lipgloss.Width(head) - lipgloss.Width(right) - 5
		if room > 3 {
			st := style.StatusValue
			if m.isError {
				st = style.ErrorText
			}
			head += "  " + st.Render(common.Truncate(m.message, room))
		}
	}

	gap := max(m.width-lipgloss.Width(head)-lipgloss.Width(right)-1, 1)
	return style.StatusBar.Render(head + strings.Repeat(" ", gap) + right)
}
