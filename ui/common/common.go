// Package common provides shared rendering helpers used by the dropdown
// views and the lab.
package common

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
)

// ---------------------------------------------------------------------------
// Text truncation / padding
// ---------------------------------------------------------------------------

// Truncate shortens s to at most width display cells, appending "…" if
// truncated.
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// PadRight pads s on the right with spaces until the rendered display width
// equals width. Returns s unchanged if it already meets or exceeds width.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Divider returns a horizontal rule of the given width rendered in the border color.
func Divider(width int) string {
	if width <= 0 {
		return ""
	}
	return style.SectionBorder.Render(strings.Repeat("─", width))
}

// ---------------------------------------------------------------------------
// Section chrome
// ---------------------------------------------------------------------------

// Section renders a bordered section block with a title header and content body.
//
//	┌─ Title ─────────────────┐
//	│ content                  │
//	└──────────────────────────┘
func Section(title, content string, width int) string {
	if width <= 0 {
		width = 40
	}
	// Inner content width accounts for border (1 each side) + padding (1 each side).
	innerWidth := max(width-4, 1)

	titleStr := style.Title(title)
	rightFill := max(innerWidth-lipgloss.Width(titleStr)-1, 0)

	border := style.SectionBorder
	var sb strings.Builder
	sb.WriteString(border.Render("┌─ ") + titleStr + border.Render(" "+strings.Repeat("─", rightFill)+"┐"))
	sb.WriteByte('\n')
	for _, line := range strings.Split(content, "\n") {
		sb.WriteString(border.Render("│ "))
		sb.WriteString(PadRight(line, innerWidth))
		sb.WriteString(border.Render(" │"))
		sb.WriteByte('\n')
	}
	sb.WriteString(border.Render("└" + strings.Repeat("─", width-2) + "┘"))
	return sb.String()
}

// StatusBadge renders a colored status indicator: "● label" green if ok, muted otherwise.
func StatusBadge(label string, ok bool) string {
	dot := "●"
	if ok {
		return lipgloss.NewStyle().Foreground(style.Success).Render(dot + " " + label)
	}
	return lipgloss.NewStyle().Foreground(style.Muted).Render(dot + " " + label)
}
