package plume

import (
	"errors"
	"sync"
)

// ErrPoisoned is returned by SharedState acquisitions after a previous
// holder failed while holding the lock. The value may be inconsistent, so
// every later acquisition fails instead of exposing it.
var ErrPoisoned = errors.New("shared state poisoned by an earlier failure")

// SharedState wraps the single application-wide value shared by all
// concurrently running handlers. The value is only reachable under the
// container's exclusive lock; there is no unsynchronized read path. The
// container lives as long as the server and is never destroyed during
// normal operation.
//
// If a closure panics while holding the lock, the container is marked
// poisoned and the panic is re-raised. Every subsequent Update or View
// returns ErrPoisoned, which a handler should treat as fatal for its
// connection.
type SharedState[T any] struct {
	mu       sync.Mutex
	poisoned bool
	value    T
}

// NewSharedState creates the container from the application-supplied
// initial value.
func NewSharedState[T any](initial T) *SharedState[T] {
	return &SharedState[T]{value: initial}
}

// Update acquires the lock, runs fn with exclusive access to the value, and
// releases. Handlers that mutate shared state serialize with each other only
// through this lock, never through request arrival order.
func (s *SharedState[T]) Update(fn func(*T)) error {
	s.mu.Lock()
	if s.poisoned {
		s.mu.Unlock()
		return ErrPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			s.mu.Unlock()
			panic(r)
		}
		s.mu.Unlock()
	}()
	fn(&s.value)
	return nil
}

// View acquires the same exclusive lock as Update and runs fn with
// read-only intent. Reads contend with writers; there is deliberately no
// cheaper path.
func (s *SharedState[T]) View(fn func(T)) error {
	return s.Update(func(v *T) {
		fn(*v)
	})
}
