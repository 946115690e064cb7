package bind

import (
	"slices"
	"sync"
)

type Setter[T any] interface {
	Set(T)
	Update(func(T) T)
	Common[T]
}

type Notifier[T any] interface {
	Notify(T)
	Common[T]
}

type Common[T any] interface {
	Listen(func(T)) func()
	Bind(func(T)) func()
	UnbindAll()
	Get() T
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Bind holds a value and calls its listeners, in registration order, every
// time the value changes. Listeners run on the goroutine that changed the
// value.
type Bind[T any] struct {
	mu        sync.RWMutex
	value     T
	equal     func(T, T) bool
	lmu       sync.Mutex
	lastID    int
	listeners []listener[T]
}

func New[T comparable](v T) *Bind[T] {
	return NewWithEqual(v, func(a, b T) bool {
		return a == b
	})
}

func NewSlice[T comparable](v []T) *Bind[[]T] {
	return NewWithEqual(v, func(a, b []T) bool {
		return slices.Equal(a, b)
	})
}

func NewWithEqual[T any](v T, equal func(T, T) bool) *Bind[T] {
	return &Bind[T]{
		value: v,
		equal: equal,
	}
}

// NewNotifier creates a binding that notifies on every Notify, even when the
// value does not change.
func NewNotifier[T any]() *Bind[T] {
	return &Bind[T]{}
}

// Bind adds a listener and calls it immediately with the current value.
func (b *Bind[T]) Bind(h func(T)) func() {
	unbind := b.Listen(h)
	h(b.Get())
	return unbind
}

// Listen adds a listener. The returned function removes it.
func (b *Bind[T]) Listen(h func(T)) func() {
	b.lmu.Lock()
	defer b.lmu.Unlock()

	b.lastID++
	id := b.lastID
	b.listeners = append(b.listeners, listener[T]{id: id, fn: h})

	return func() {
		b.lmu.Lock()
		defer b.lmu.Unlock()

		b.listeners = slices.DeleteFunc(b.listeners, func(l listener[T]) bool {
			return l.id == id
		})
	}
}

// Set changes the value and notifies the listeners.
// Nothing happens if the value is equal to the current one or if there is no
// equal function.
func (b *Bind[T]) Set(value T) {
	b.mu.Lock()
	if b.equal == nil || b.equal(b.value, value) {
		b.mu.Unlock()
		return
	}
	b.value = value
	b.mu.Unlock()

	b.fire(value)
}

// Update applies fn to the current value and sets the result.
func (b *Bind[T]) Update(fn func(T) T) {
	b.mu.Lock()
	value := fn(b.value)
	if b.equal != nil && b.equal(b.value, value) {
		b.mu.Unlock()
		return
	}
	b.value = value
	b.mu.Unlock()

	b.fire(value)
}

// Notify sets the value and notifies all listeners, changed or not.
func (b *Bind[T]) Notify(value T) {
	b.mu.Lock()
	b.value = value
	b.mu.Unlock()

	b.fire(value)
}

func (b *Bind[T]) fire(value T) {
	b.lmu.Lock()
	listeners := slices.Clone(b.listeners)
	b.lmu.Unlock()

	for _, l := range listeners {
		l.fn(value)
	}
}

// Get returns the current value.
func (b *Bind[T]) Get() T {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.value
}

func (b *Bind[T]) UnbindAll() {
	b.lmu.Lock()
	defer b.lmu.Unlock()

	b.listeners = nil
}
