// Package grid holds a change-notifying two-dimensional array used to lay
// out widgets in rows and cells.
//
// Every write through Content or one of its rows fires exactly one change
// notification on the owning Content, after the write is applied. Conversion
// from and to plain nested slices is explicit (FromRows / Rows).
package grid

// Content is a list of rows. Rows may be nil. The zero value is an empty
// grid with no observers.
type Content[T any] struct {
	rows      []*Row[T]
	observers []func()
}

// Row is one row of a Content. Writes to a row notify its owner.
type Row[T any] struct {
	cells []T
	owner *Content[T]
}

// New returns an empty grid with n nil rows.
func New[T any](n int) *Content[T] {
	return &Content[T]{rows: make([]*Row[T], max(n, 0))}
}

// FromRows copies a nested slice into a new Content. A nil inner slice
// becomes a nil row.
func FromRows[T any](rows [][]T) *Content[T] {
	c := &Content[T]{rows: make([]*Row[T], len(rows))}
	for i, r := range rows {
		c.rows[i] = c.newRow(r)
	}
	return c
}

// Rows copies the content back into a nested slice. Nil rows stay nil.
func (c *Content[T]) Rows() [][]T {
	out := make([][]T, len(c.rows))
	for i, r := range c.rows {
		if r == nil {
			continue
		}
		out[i] = append([]T(nil), r.cells...)
	}
	return out
}

// OnChange registers fn to run after every write.
func (c *Content[T]) OnChange(fn func()) {
	if fn != nil {
		c.observers = append(c.observers, fn)
	}
}

// Len returns the number of rows.
func (c *Content[T]) Len() int { return len(c.rows) }

// Get returns row i, or nil when row i is nil or out of range.
func (c *Content[T]) Get(i int) *Row[T] {
	if i < 0 || i >= len(c.rows) {
		return nil
	}
	return c.rows[i]
}

// Set replaces row i with a copy of cells. A nil cells slice stores a nil
// row. It panics when i is out of range, like a slice write.
func (c *Content[T]) Set(i int, cells []T) {
	if old := c.rows[i]; old != nil {
		old.owner = nil
	}
	c.rows[i] = c.newRow(cells)
	c.changed()
}

// Append adds a row at the end and returns its index.
func (c *Content[T]) Append(cells []T) int {
	c.rows = append(c.rows, c.newRow(cells))
	c.changed()
	return len(c.rows) - 1
}

// At returns cell (i, j). ok is false when the row is nil or either index is
// out of range.
func (c *Content[T]) At(i, j int) (v T, ok bool) {
	r := c.Get(i)
	if r == nil {
		return v, false
	}
	return r.Get(j)
}

// SetAt writes cell (i, j). It panics when row i is nil or either index is
// out of range.
func (c *Content[T]) SetAt(i, j int, v T) {
	c.rows[i].Set(j, v)
}

func (c *Content[T]) newRow(cells []T) *Row[T] {
	if cells == nil {
		return nil
	}
	return &Row[T]{cells: append([]T(nil), cells...), owner: c}
}

func (c *Content[T]) changed() {
	for _, fn := range c.observers {
		fn()
	}
}

// Len returns the number of cells.
func (r *Row[T]) Len() int { return len(r.cells) }

// Get returns cell j.
func (r *Row[T]) Get(j int) (v T, ok bool) {
	if j < 0 || j >= len(r.cells) {
		return v, false
	}
	return r.cells[j], true
}

// Set writes cell j and notifies the owning Content. A row detached by
// Content.Set no longer notifies.
func (r *Row[T]) Set(j int, v T) {
	r.cells[j] = v
	if r.owner != nil {
		r.owner.changed()
	}
}

// Cells returns a copy of the row.
func (r *Row[T]) Cells() []T {
	return append([]T(nil), r.cells...)
}
