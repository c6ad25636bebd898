package scene

import (
	"errors"
	"iter"
)

// ErrArenaFull is returned when inserting into an arena at capacity.
var ErrArenaFull = errors.New("arena is full")

// Handle refers to a value stored in an Arena. A handle stays valid until
// its value is removed; after that, lookups through it fail even if the
// slot is reused. The zero Handle is never valid.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

type slot[T any] struct {
	value      T
	generation uint32 // Bumped on every removal; odd while occupied
}

func (s *slot[T]) occupied() bool {
	return s.generation%2 == 1
}

// Arena is a fixed-capacity slot map with generation-checked handles.
// Freed slots are reused most-recently-freed first. Not safe for
// concurrent use.
type Arena[T any] struct {
	slots    []slot[T]
	free     []uint32
	capacity int
	live     int
}

// NewArena creates an arena that holds at most capacity values.
func NewArena[T any](capacity int) *Arena[T] {
	return &Arena[T]{capacity: capacity}
}

// Insert stores v and returns its handle.
func (a *Arena[T]) Insert(v T) (Handle, error) {
	var idx uint32
	switch {
	case len(a.free) > 0:
		idx = a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
	case len(a.slots) < a.capacity:
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{})
	default:
		return Handle{}, ErrArenaFull
	}

	s := &a.slots[idx]
	s.value = v
	s.generation++
	a.live++
	return Handle{index: idx, generation: s.generation}, nil
}

// lookup returns the slot for h when h is still valid.
func (a *Arena[T]) lookup(h Handle) *slot[T] {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.index]
	if s.generation != h.generation {
		return nil
	}
	return s
}

// Get returns the value for h.
func (a *Arena[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// Contains reports whether h refers to a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Remove deletes the value for h and reports whether it was present.
func (a *Arena[T]) Remove(h Handle) bool {
	s := a.lookup(h)
	if s == nil {
		return false
	}
	var zero T
	s.value = zero
	s.generation++
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	return a.live
}

// Cap returns the arena's capacity.
func (a *Arena[T]) Cap() int {
	return a.capacity
}

// All iterates live values in slot order. Values inserted into a free slot
// ahead of the cursor during iteration are visited; removed ones are not.
func (a *Arena[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for i := 0; i < len(a.slots); i++ {
			s := &a.slots[i]
			if !s.occupied() {
				continue
			}
			if !yield(Handle{index: uint32(i), generation: s.generation}, s.value) {
				return
			}
		}
	}
}
