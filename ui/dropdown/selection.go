package dropdown

// SelectionChange describes a committed-value transition.
type SelectionChange[T comparable] struct {
	Old    T
	HadOld bool
	New    T
}

// Selection holds the committed value. The value does not have to be present
// in the item collection.
type Selection[T comparable] struct {
	value     T
	set       bool
	observers []func(SelectionChange[T])
}

// Get returns the committed value. ok is false while nothing was committed.
func (s *Selection[T]) Get() (v T, ok bool) {
	return s.value, s.set
}

// OnChange registers fn to run after every real change of the committed value.
func (s *Selection[T]) OnChange(fn func(SelectionChange[T])) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// assign stores v and reports whether it differs from the previous value.
// Observers are not run; the owner calls notify once its own side effects
// (the header label) are applied.
func (s *Selection[T]) assign(v T) (SelectionChange[T], bool) {
	ch := SelectionChange[T]{Old: s.value, HadOld: s.set, New: v}
	changed := !s.set || s.value != v
	s.value = v
	s.set = true
	return ch, changed
}

func (s *Selection[T]) notify(ch SelectionChange[T]) {
	for _, fn := range s.observers {
		fn(ch)
	}
}
