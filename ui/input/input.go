// Package input provides the lab's single-line value prompt.
//
// Features:
//   - Single-line textarea (enter is left to the parent to submit)
//   - History of submitted values (up/down)
//   - Tab-cycle completion over candidate labels
//   - Focused/blurred prompt rendering
package input

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
)

const charLimit = 200

// Model wraps a one-line textarea with history and tab completion.
type Model struct {
	ta         textarea.Model
	label      string
	history    []string
	historyIdx int
	candidates []string
	tabIdx     int
	tabMatches []string
	width      int
}

// New returns a configured input Model ready for use.
func New() Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.Placeholder = "type a value, tab completes"
	ta.CharLimit = charLimit
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(1)
	ta.MaxHeight = 1

	// Strip cursor-line highlight to keep single-line look.
	s := ta.Styles()
	s.Focused.CursorLine = lipgloss.NewStyle()
	s.Blurred.CursorLine = lipgloss.NewStyle()
	ta.SetStyles(s)

	// Values are single-line; enter is intercepted by the parent.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys())

	return Model{ta: ta, tabIdx: -1, width: 64}
}

// ─── Public accessors ───────────────────────────────────────────────────────

// SetLabel sets the text shown before the prompt character, e.g. the target
// dropdown and mode.
func (m *Model) SetLabel(label string) { m.label = label }

// SetCandidates sets the labels available for tab completion.
func (m *Model) SetCandidates(c []string) {
	m.candidates = c
	m.resetTab()
}

// SetWidth constrains the input area to the given terminal width.
func (m *Model) SetWidth(w int) {
	m.width = w
	m.ta.SetWidth(max(w-lipgloss.Width(m.label)-4, 10))
}

// Focus grants keyboard focus to the textarea and returns the init command.
func (m *Model) Focus() tea.Cmd { return m.ta.Focus() }

// Blur removes keyboard focus from the textarea.
func (m *Model) Blur() { m.ta.Blur() }

// IsFocused reports whether the textarea currently has keyboard focus.
func (m Model) IsFocused() bool { return m.ta.Focused() }

// Value returns the current content.
func (m Model) Value() string { return m.ta.Value() }

// SetValue replaces the content.
func (m *Model) SetValue(s string) { m.ta.SetValue(s) }

// Reset clears the input and resets history navigation.
func (m *Model) Reset() {
	m.historyIdx = len(m.history)
	m.ta.SetValue("")
	m.resetTab()
}

// Submit records text in history and then resets the input.
func (m *Model) Submit(text string) {
	if text != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != text) {
		m.history = append(m.history, text)
	}
	m.Reset()
}

// History returns the submitted values, oldest first.
func (m Model) History() []string { return append([]string(nil), m.history...) }

// ─── Update ──────────────────────────────────────────────────────────────────

// Update handles messages. Key events are tea.KeyPressMsg in bubbletea v2.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.Code {
		case tea.KeyUp:
			return m.navigateHistory(-1), nil
		case tea.KeyDown:
			return m.navigateHistory(+1), nil
		case tea.KeyTab:
			return m.cycleComplete(), nil
		default:
			m.resetTab()
		}
	}

	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// ─── View ────────────────────────────────────────────────────────────────────

// View renders the label, the prompt character and the textarea.
func (m Model) View() string {
	var prompt string
	if m.ta.Focused() {
		prompt = style.PanelTitle.Render("❯ ")
	} else {
		prompt = style.Faint.Render("❯ ")
	}
	var sb strings.Builder
	if m.label != "" {
		sb.WriteString(style.CellLabel.Render(m.label + " "))
	}
	sb.WriteString(prompt)
	sb.WriteString(m.ta.View())
	return style.InputBorder.Width(m.width).Render(sb.String())
}

// ─── Internal helpers ────────────────────────────────────────────────────────

// resetTab clears tab-cycle completion state.
func (m *Model) resetTab() {
	m.tabIdx = -1
	m.tabMatches = nil
}

// navigateHistory moves through history by delta (-1=older, +1=newer).
func (m Model) navigateHistory(delta int) Model {
	if len(m.history) == 0 {
		return m
	}
	next := min(max(m.historyIdx+delta, 0), len(m.history))
	m.historyIdx = next
	if next == len(m.history) {
		m.ta.SetValue("")
	} else {
		m.ta.SetValue(m.history[next])
	}
	m.resetTab()
	return m
}

// cycleComplete cycles through candidates matching the typed prefix.
func (m Model) cycleComplete() Model {
	if m.tabIdx == -1 || m.tabMatches == nil {
		m.tabMatches = matchPrefix(m.candidates, m.ta.Value())
		if len(m.tabMatches) == 0 {
			return m
		}
		m.tabIdx = 0
	} else {
		m.tabIdx = (m.tabIdx + 1) % len(m.tabMatches)
	}
	m.ta.SetValue(m.tabMatches[m.tabIdx])
	return m
}

// matchPrefix returns candidates starting with prefix, case-insensitively.
func matchPrefix(candidates []string, prefix string) []string {
	p := strings.ToLower(prefix)
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), p) {
			out = append(out, c)
		}
	}
	return out
}
