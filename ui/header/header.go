// Package header renders the lab's one-line title bar.
package header

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/common"
)

// Model holds the state for the title bar.
type Model struct {
	version   string
	theme     string
	profile   string
	dropdowns int
	width     int
}

// New returns a Model showing version.
func New(version string) Model {
	if version == "" {
		version = "dev"
	}
	return Model{version: version, width: 80}
}

// SetTheme updates the displayed theme name.
func (m *Model) SetTheme(name string) { m.theme = name }

// SetProfile updates the displayed profile directory.
func (m *Model) SetProfile(dir string) { m.profile = dir }

// SetDropdowns updates the displayed dropdown count.
func (m *Model) SetDropdowns(n int) { m.dropdowns = n }

// SetWidth updates the terminal width used for separator sizing.
func (m *Model) SetWidth(w int) { m.width = w }

// Version returns the version string.
func (m Model) Version() string { return m.version }

// Summary returns a line like "tokyo-night · 3 dropdowns".
func (m Model) Summary() string {
	var parts []string
	if m.theme != "" {
		parts = append(parts, m.theme)
	}
	noun := "dropdowns"
	if m.dropdowns == 1 {
		noun = "dropdown"
	}
	parts = append(parts, fmt.Sprintf("%d %s", m.dropdowns, noun))
	return strings.Join(parts, " · ")
}

// View returns the one-line title: gradient name, version, summary and the
// profile path when it fits.
func (m Model) View() string {
	muted := lipgloss.NewStyle().Foreground(style.Muted)
	sep := muted.Render(" · ")

	line := style.Title("dropdown lab") + " " + muted.Render(m.version) + sep +
		lipgloss.NewStyle().Foreground(style.Secondary).Render(m.Summary())

	if m.profile != "" {
		room := m.width - lipgloss.Width(line) - 3
		if room >= 12 {
			line += sep + muted.Render(truncatePath(m.profile, room))
		}
	}
	return line
}

// HeaderView returns the title plus a thin separator line.
func (m Model) HeaderView() string {
	return m.View() + "\n" + common.Divider(m.width)
}

// truncatePath shortens a filesystem path to fit within maxWidth characters.
// It tries: full path → ~/relative → …/last-two-segments → …/basename.
func truncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth {
		return path
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(path, home) {
		short := "~" + path[len(home):]
		if len(short) <= maxWidth {
			return short
		}
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	parent := filepath.Base(dir)
	short := "…/" + parent + "/" + base
	if len(short) <= maxWidth {
		return short
	}
	short = "…/" + base
	if len(short) <= maxWidth {
		return short
	}
	if maxWidth > 3 {
		return path[:maxWidth-1] + "…"
	}
	return path[:maxWidth]
}
