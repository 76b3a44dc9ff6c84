// Package help renders keybinding help as markdown inside a scrollable panel.
package help

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/miosa/osa-dropdown/style"
)

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
	Notes    string // optional markdown appended below the table
}

// Markdown builds a markdown document with one table per section. Disabled
// bindings are skipped.
func Markdown(title string, sections ...Section) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	for _, s := range sections {
		fmt.Fprintf(&sb, "## %s\n\n", s.Title)
		sb.WriteString("| Key | Action |\n|---|---|\n")
		for _, b := range s.Bindings {
			if !b.Enabled() {
				continue
			}
			keys := make([]string, 0, len(b.Keys()))
			for _, k := range b.Keys() {
				keys = append(keys, "`"+k+"`")
			}
			fmt.Fprintf(&sb, "| %s | %s |\n", strings.Join(keys, " "), b.Help().Desc)
		}
		sb.WriteByte('\n')
		if s.Notes != "" {
			sb.WriteString(s.Notes)
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// Render renders markdown text using glamour, falling back to plain text on error.
func Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	glamourStyle := "light"
	if style.IsDark() {
		glamourStyle = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Model is a bordered, scrollable help panel.
type Model struct {
	viewport viewport.Model
	markdown string

	width, height int
}

// New returns a help panel showing md.
func New(md string) Model {
	vp := viewport.New(viewport.WithWidth(60), viewport.WithHeight(20))
	m := Model{viewport: vp, markdown: md, width: 64, height: 24}
	m.sync()
	return m
}

// SetSize fits the panel, border included, into w×h.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.SetWidth(max(w-4, 20))
	m.viewport.SetHeight(max(h-4, 3))
	m.sync()
}

// SetMarkdown replaces the document.
func (m *Model) SetMarkdown(md string) {
	m.markdown = md
	m.sync()
}

// AtTop reports whether the panel is scrolled to the top.
func (m Model) AtTop() bool { return m.viewport.AtTop() }

// Update scrolls the panel with the viewport's default keys and the wheel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	title := style.Title("Help") + style.Faint.Render("  esc/f1 close")
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View())
	return style.PanelBorder.Render(body)
}

func (m *Model) sync() {
	m.viewport.SetContent(Render(m.markdown, m.viewport.Width()))
	m.viewport.GotoTop()
}
