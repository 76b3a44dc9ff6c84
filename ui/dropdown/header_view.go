package dropdown

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/common"
)

// Header is the always-visible part of a dropdown. It only receives pushes
// from the facade; it never reads dropdown state.
type Header interface {
	SetLabel(label string)
	Label() string
	SetOpen(open bool)
	SetFocused(focused bool)
	SetWidth(w int)
	View() string
}

// HeaderFactory builds the header for a new dropdown.
type HeaderFactory func() Header

// DefaultHeader renders the label in a rounded box with an open/closed chevron.
type DefaultHeader struct {
	label       string
	placeholder string
	open        bool
	focused     bool
	width       int
}

// NewDefaultHeader returns the default lipgloss header.
func NewDefaultHeader() Header {
	return &DefaultHeader{placeholder: "select…", width: 24}
}

func (h *DefaultHeader) SetLabel(label string)   { h.label = label }
func (h *DefaultHeader) Label() string           { return h.label }
func (h *DefaultHeader) SetOpen(open bool)       { h.open = open }
func (h *DefaultHeader) SetFocused(focused bool) { h.focused = focused }

// SetWidth sets the outer width including the border.
func (h *DefaultHeader) SetWidth(w int) {
	if w > 0 {
		h.width = w
	}
}

// View renders the header.
func (h *DefaultHeader) View() string {
	box := style.DropdownHeader
	switch {
	case h.open:
		box = style.DropdownHeaderOpen
	case h.focused:
		box = style.DropdownHeaderFocused
	}

	chevron := "▾"
	if h.open {
		chevron = "▴"
	}

	// border (2) + padding (2) + space + chevron
	inner := h.width - 6
	if inner < 1 {
		inner = 1
	}

	text := style.DropdownPlaceholder.Render(common.Truncate(h.placeholder, inner))
	if h.label != "" {
		text = common.Truncate(h.label, inner)
	}
	pad := max(inner-lipgloss.Width(text), 0)
	line := text + strings.Repeat(" ", pad) + " " + style.DropdownChevron.Render(chevron)
	return box.Width(h.width).Render(line)
}
