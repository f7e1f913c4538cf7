package container

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/internal/buf"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// Stack is a LIFO stack of T in a manually managed block. The top is slot
// Len()-1. Growth follows List.
type Stack[T comparable] struct {
	block
}

// NewStack allocates an empty stack through h.
func NewStack[T comparable](h alloc.Handle, opts ...Option) (*Stack[T], error) {
	o, err := resolveFor[T](opts)
	if err != nil {
		return nil, err
	}
	s := &Stack[T]{}
	if err := s.open(o, h); err != nil {
		return nil, err
	}
	return s, nil
}

// Push places v on top.
func (s *Stack[T]) Push(v T) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := s.grow(s.count+1, 1); err != nil {
		return err
	}
	raw.Set(s.ptr, s.stride, s.count, v)
	s.count++
	return nil
}

// Pop removes and returns the top element.
func (s *Stack[T]) Pop() (T, error) {
	var zero T
	if s.count == 0 {
		return zero, outOfRange(0, 0)
	}
	s.count--
	return *raw.Get[T](s.ptr, s.stride, s.count), nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, error) {
	p, err := s.PeekRef()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// PeekRef returns a pointer to the top element, valid until the next mutation.
func (s *Stack[T]) PeekRef() (*T, error) {
	if s.count == 0 {
		return nil, outOfRange(0, 0)
	}
	return raw.Get[T](s.ptr, s.stride, s.count-1), nil
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool { return s.count == 0 }

// Contains reports whether some element equals v.
func (s *Stack[T]) Contains(v T) bool {
	return s.ptr != nil && raw.IndexOf(s.ptr, s.stride, s.count, v) >= 0
}

// All yields elements from top to bottom.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := s.count - 1; i >= 0; i-- {
			if !yield(*raw.Get[T](s.ptr, s.stride, i)) {
				return
			}
		}
	}
}

// ToSlice returns the elements in pop order, top first.
func (s *Stack[T]) ToSlice() []T {
	out := make([]T, 0, s.count)
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Clear drops all elements and keeps the block.
func (s *Stack[T]) Clear() error {
	if err := s.live(); err != nil {
		return err
	}
	s.count = 0
	return nil
}

// TrimExcess reallocates the block down to Len() slots when fewer than 90% of
// the slots are live.
func (s *Stack[T]) TrimExcess() error {
	if err := s.live(); err != nil {
		return err
	}
	if s.count >= s.shrinkThreshold() {
		return nil
	}
	size, err := buf.BlockSize(s.count, s.stride)
	if err != nil {
		return err
	}
	p, err := s.reg.Realloc(s.ptr, uintptr(size), s.handle)
	if err != nil {
		return errors.Wrap(err, "trim stack")
	}
	s.ptr = p
	s.capacity = s.count
	return nil
}

// MoveTo transfers the block to dst and disposes s. Any block dst owned is
// released first.
func (s *Stack[T]) MoveTo(dst *Stack[T]) error {
	return s.moveTo(&dst.block)
}
