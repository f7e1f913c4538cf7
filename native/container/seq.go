package container

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/internal/buf"
	"github.com/joshuapare/nativekit/native/algo"
	"github.com/joshuapare/nativekit/native/raw"
)

// seq holds the element accessors shared by containers whose live elements
// occupy slots [0, count) in storage order.
type seq[T comparable] struct {
	block
}

// Get returns the element at i.
func (s *seq[T]) Get(i int) (T, error) {
	if err := s.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return *raw.Get[T](s.ptr, s.stride, i), nil
}

// Set overwrites the element at i.
func (s *seq[T]) Set(i int, v T) error {
	if err := s.live(); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	raw.Set(s.ptr, s.stride, i, v)
	return nil
}

// Ref returns a pointer into the block for the element at i. It is valid until
// the container grows, shrinks, moves or closes.
func (s *seq[T]) Ref(i int) (*T, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}
	return raw.Get[T](s.ptr, s.stride, i), nil
}

// IndexOf returns the index of the first element equal to v, or -1.
func (s *seq[T]) IndexOf(v T) int {
	if s.ptr == nil {
		return -1
	}
	return raw.IndexOf(s.ptr, s.stride, s.count, v)
}

// IndexOfFunc returns the index of the first element e for which eq(v, e), or -1.
func (s *seq[T]) IndexOfFunc(v T, eq func(a, b T) bool) int {
	if s.ptr == nil {
		return -1
	}
	return raw.IndexOfFunc(s.ptr, s.stride, s.count, v, eq)
}

// Contains reports whether some element equals v.
func (s *seq[T]) Contains(v T) bool {
	return s.IndexOf(v) >= 0
}

// CopyTo copies all live elements into dst starting at dst[offset].
func (s *seq[T]) CopyTo(dst []T, offset int) error {
	if _, err := buf.CheckRange(len(dst), offset, s.count); err != nil {
		return errors.Mark(errors.Wrap(err, "copy to slice"), ErrInvalidArgument)
	}
	raw.CopyOut(s.ptr, 0, dst, offset, s.count, s.stride)
	return nil
}

// Sort orders the elements with the recursive quicksort.
func (s *seq[T]) Sort(compare algo.Compare[T]) error {
	return s.SortWith(algo.Recursive, compare)
}

// SortWith orders the elements with the given quicksort strategy.
func (s *seq[T]) SortWith(strategy algo.Strategy, compare algo.Compare[T]) error {
	if err := s.live(); err != nil {
		return err
	}
	if compare == nil {
		return errors.Wrap(ErrInvalidArgument, "nil compare")
	}
	if s.count < 2 {
		return nil
	}
	return algo.Sort(strategy, s.ptr, s.count, s.stride, compare)
}

// All yields index/element pairs in storage order.
func (s *seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, *raw.Get[T](s.ptr, s.stride, i)) {
				return
			}
		}
	}
}

// Values yields elements in storage order.
func (s *seq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(*raw.Get[T](s.ptr, s.stride, i)) {
				return
			}
		}
	}
}

// ToSlice copies the elements into a new Go slice.
func (s *seq[T]) ToSlice() []T {
	out := make([]T, s.count)
	raw.CopyOut(s.ptr, 0, out, 0, s.count, s.stride)
	return out
}
