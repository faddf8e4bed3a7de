package box2d

/// LIFO stack used by the tree traversals. Backed by a slice whose capacity
/// is kept between uses, so a reused stack stops allocating once it has
/// reached the depth of the tree.
type B2GrowableStack[T any] struct {
	items []T
}

func NewB2GrowableStack[T any](capacity int) *B2GrowableStack[T] {
	return &B2GrowableStack[T]{
		items: make([]T, 0, capacity),
	}
}

func (s *B2GrowableStack[T]) GetCount() int {
	return len(s.items)
}

func (s *B2GrowableStack[T]) Push(value T) {
	s.items = append(s.items, value)
}

// Pop panics on an empty stack.
func (s *B2GrowableStack[T]) Pop() T {
	B2Assert(len(s.items) > 0, "pop from empty stack")
	n := len(s.items) - 1
	value := s.items[n]
	s.items = s.items[:n]
	return value
}

func (s *B2GrowableStack[T]) Reset() {
	s.items = s.items[:0]
}
