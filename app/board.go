package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/miosa/osa-dropdown/style"
	"github.com/miosa/osa-dropdown/ui/dropdown"
	"github.com/miosa/osa-dropdown/ui/grid"
)

// picker is the dropdown type every lab cell holds.
type picker = dropdown.Dropdown[string]

// board lays dropdowns out on a reactive grid. Any write to the grid marks
// the board dirty; sync rebuilds the focus order from the new rows.
type board struct {
	content *grid.Content[*picker]
	order   []*picker
	dirty   bool
}

func newBoard(rows [][]*picker) *board {
	b := &board{content: grid.FromRows(rows)}
	b.content.OnChange(func() { b.dirty = true })
	b.reindex()
	return b
}

// sync rebuilds the focus order if the grid changed. It reports whether it
// did.
func (b *board) sync() bool {
	if !b.dirty {
		return false
	}
	b.reindex()
	return true
}

func (b *board) reindex() {
	b.order = b.order[:0]
	for _, row := range b.content.Rows() {
		for _, p := range row {
			if p != nil {
				b.order = append(b.order, p)
			}
		}
	}
	b.dirty = false
}

// find returns the dropdown with the given ID, or nil.
func (b *board) find(id string) *picker {
	for _, p := range b.order {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

// columns returns the widest row's cell count.
func (b *board) columns() int {
	n := 0
	for i := range b.content.Len() {
		if r := b.content.Get(i); r != nil {
			n = max(n, r.Len())
		}
	}
	return n
}

// ─── Placement ───────────────────────────────────────────────────────────────

// cell is one dropdown's on-screen rectangle, label line included.
type cell struct {
	picker *picker
	x, y   int
	w, h   int
}

// contains reports whether the screen point lies inside the cell.
func (c cell) contains(x, y int) bool {
	return x >= c.x && x < c.x+c.w && y >= c.y && y < c.y+c.h
}

// place computes every cell's rectangle for the current frame. Rows are
// separated by one blank line; top is the board's first screen row.
func (b *board) place(cellWidth, top int) []cell {
	var cells []cell
	y := top
	for _, row := range b.content.Rows() {
		rowHeight := 0
		for j, p := range row {
			if p == nil {
				continue
			}
			h := 1 + lipgloss.Height(p.View())
			cells = append(cells, cell{
				picker: p,
				x:      j * (cellWidth + cellGap),
				y:      y,
				w:      cellWidth,
				h:      h,
			})
			rowHeight = max(rowHeight, h)
		}
		if rowHeight == 0 {
			rowHeight = 1
		}
		y += rowHeight + 1
	}
	return cells
}

// hit returns the cell under the screen point.
func hit(cells []cell, x, y int) (cell, bool) {
	for _, c := range cells {
		if c.contains(x, y) {
			return c, true
		}
	}
	return cell{}, false
}

// ─── View ────────────────────────────────────────────────────────────────────

// view renders the grid. The layout matches place: every cell is padded to
// cellWidth+cellGap columns and rows are separated by a blank line.
func (b *board) view(cellWidth int, focused *picker) string {
	rows := b.content.Rows()
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		parts := make([]string, 0, len(row))
		for _, p := range row {
			var body string
			if p != nil {
				body = renderCell(p, p == focused)
			}
			parts = append(parts, lipgloss.NewStyle().Width(cellWidth+cellGap).Render(body))
		}
		out = append(out, lipgloss.JoinHorizontal(lipgloss.Top, parts...))
	}
	return strings.Join(out, "\n\n")
}

func renderCell(p *picker, focused bool) string {
	label := style.CellLabel.Render(p.ID())
	if focused {
		label = style.PanelTitle.Render("› " + p.ID())
	}
	return label + "\n" + p.View()
}
