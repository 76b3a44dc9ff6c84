package status

import (
	"fmt"

	"github.com/miosa/osa-dropdown/style"
)

// PositionPill renders the committed item's position, e.g. "3/20".
// The index is shown 1-based; "–/20" means nothing from the list is
// committed. Returns an empty string for an empty list.
func PositionPill(selected, count int) string {
	if count <= 0 {
		return ""
	}
	idx := "–"
	if selected >= 0 {
		idx = fmt.Sprintf("%d", selected+1)
	}
	return style.StatusValue.Render(idx) + style.Faint.Render(fmt.Sprintf("/%d", count))
}
