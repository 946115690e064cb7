package safe

import "sync"

// Safe guards a value shared between goroutines.
type Safe[T any] struct {
	mu    sync.Mutex
	value T
}

func New[T any](value T) *Safe[T] {
	return &Safe[T]{
		value: value,
	}
}

// Swap sets the value and returns the previous one.
func (s *Safe[T]) Swap(value T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.value
	s.value = value
	return old
}
