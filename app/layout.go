package app

const (
	// compactModeBreakpoint is the terminal width below which the inspector
	// is hidden regardless of the toggle.
	compactModeBreakpoint = 90

	// Inspector sizing bounds.
	inspectorMinWidth = 34
	inspectorMaxWidth = 56

	// Dropdown cell sizing bounds.
	cellMinWidth = 18
	cellMaxWidth = 32
	cellGap      = 2

	// Minimum board width; enforced even if it means the inspector is clipped.
	boardMinWidth = 2*cellMinWidth + cellGap
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth      int
	TermHeight     int
	TitleHeight    int // title line + separator
	StatusHeight   int
	InputHeight    int // 0 unless the value prompt is shown
	BoardWidth     int // width available for the dropdown grid
	BoardHeight    int
	CellWidth      int // outer width of each dropdown
	InspectorWidth int // 0 when hidden
	CompactMode    bool
}

// ComputeLayout calculates the layout dimensions based on terminal size, the
// number of grid columns and whether the inspector and value prompt are shown.
//
// Responsive rules:
//   - If termW < compactModeBreakpoint, the inspector is hidden.
//   - Inspector width is about 40% of the terminal, clamped to its bounds.
//   - Cells share the board width evenly, clamped to their bounds.
func ComputeLayout(termW, termH, columns int, inspector, input bool) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		TitleHeight:  2,
		StatusHeight: 1,
	}
	if input {
		l.InputHeight = 3 // rounded border + prompt line
	}

	if termW < compactModeBreakpoint {
		l.CompactMode = true
		inspector = false
	}

	if inspector {
		iw := termW * 2 / 5
		iw = min(max(iw, inspectorMinWidth), inspectorMaxWidth)
		l.InspectorWidth = iw
		l.BoardWidth = termW - iw - 1 // -1 for the gap column
	} else {
		l.BoardWidth = termW
	}
	if l.BoardWidth < boardMinWidth {
		l.BoardWidth = boardMinWidth
	}

	if columns < 1 {
		columns = 1
	}
	cw := (l.BoardWidth - cellGap*(columns-1)) / columns
	l.CellWidth = min(max(cw, cellMinWidth), cellMaxWidth)

	reserved := l.TitleHeight + l.StatusHeight + l.InputHeight
	l.BoardHeight = max(termH-reserved, 5)
	return l
}
