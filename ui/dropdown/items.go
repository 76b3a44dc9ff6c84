package dropdown

// Items is the ordered, append-only collection of candidate values.
// Indices are dense and never change once assigned.
type Items[T comparable] struct {
	values []T
}

// Append adds v to the end of the collection and returns its index.
func (c *Items[T]) Append(v T) int {
	c.values = append(c.values, v)
	return len(c.values) - 1
}

// Count returns the number of items.
func (c *Items[T]) Count() int { return len(c.values) }

// At returns the item at index i. ok is false when i is out of range.
func (c *Items[T]) At(i int) (v T, ok bool) {
	if i < 0 || i >= len(c.values) {
		return v, false
	}
	return c.values[i], true
}

// IndexOf returns the index of the first item equal to v, or -1.
func (c *Items[T]) IndexOf(v T) int {
	for i, item := range c.values {
		if item == v {
			return i
		}
	}
	return -1
}

// All returns a copy of the items in insertion order.
func (c *Items[T]) All() []T {
	out := make([]T, len(c.values))
	copy(out, c.values)
	return out
}
