package common

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "┃"
)

// Scrollbar renders a vertical scrollbar one column wide and viewportHeight
// rows tall. The thumb is sized and placed proportionally to the visible
// window [offset, offset+viewportHeight) within contentHeight rows. When the
// content fits the returned string is empty.
func Scrollbar(viewportHeight, contentHeight, offset int) string {
	vh, ch := viewportHeight, contentHeight
	if vh <= 0 || ch <= vh {
		return ""
	}

	thumbH := min(max(vh*vh/ch, 1), vh)
	thumbTop := 0
	if scrollable := ch - vh; scrollable > 0 {
		thumbTop = offset * (vh - thumbH) / scrollable
	}
	thumbTop = min(max(thumbTop, 0), vh-thumbH)

	rows := make([]string, vh)
	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbH {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// WithScrollbar places a scrollbar to the right of body. body is returned
// unchanged when no scrollbar is needed.
func WithScrollbar(body string, viewportHeight, contentHeight, offset int) string {
	bar := Scrollbar(viewportHeight, contentHeight, offset)
	if bar == "" {
		return body
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}
