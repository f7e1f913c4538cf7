package container

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/internal/buf"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// List is a growable sequence of T in a manually managed block.
//
// When full, the block grows to max(capacity+1, capacity*1.5) slots.
type List[T comparable] struct {
	seq[T]
}

// NewList allocates an empty list through h.
func NewList[T comparable](h alloc.Handle, opts ...Option) (*List[T], error) {
	o, err := resolveFor[T](opts)
	if err != nil {
		return nil, err
	}
	l := &List[T]{}
	if err := l.open(o, h); err != nil {
		return nil, err
	}
	return l, nil
}

// Add appends v.
func (l *List[T]) Add(v T) error {
	if err := l.live(); err != nil {
		return err
	}
	if err := l.grow(l.count+1, 1); err != nil {
		return err
	}
	raw.Set(l.ptr, l.stride, l.count, v)
	l.count++
	return nil
}

// Insert places v at i, shifting [i, Len()) right. i may equal Len().
func (l *List[T]) Insert(i int, v T) error {
	if err := l.live(); err != nil {
		return err
	}
	if i < 0 || i > l.count {
		return outOfRange(i, l.count)
	}
	if err := l.grow(l.count+1, 1); err != nil {
		return err
	}
	l.insertGap(i)
	raw.Set(l.ptr, l.stride, i, v)
	return nil
}

// RemoveAt deletes the element at i, shifting the tail left.
func (l *List[T]) RemoveAt(i int) error {
	if err := l.live(); err != nil {
		return err
	}
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.removeRange(i, i+1)
	return nil
}

// Remove deletes the first element equal to v and reports whether one was found.
func (l *List[T]) Remove(v T) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.removeRange(i, i+1)
	return true
}

// RemoveRange deletes elements in [begin, end).
func (l *List[T]) RemoveRange(begin, end int) error {
	if err := l.live(); err != nil {
		return err
	}
	if end < begin {
		return errors.Wrapf(ErrInvalidArgument, "range end %d < begin %d", end, begin)
	}
	if _, err := buf.CheckRange(l.count, begin, end-begin); err != nil {
		return errors.Mark(errors.Wrap(err, "remove range"), ErrOutOfRange)
	}
	l.removeRange(begin, end)
	return nil
}

// Reserve grows the block to at least capacity slots.
func (l *List[T]) Reserve(capacity int) error {
	if err := l.live(); err != nil {
		return err
	}
	if capacity < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative capacity %d", capacity)
	}
	return l.reserve(capacity)
}

// Resize sets the length to n, growing the block if needed. Slots that become
// live are zeroed.
func (l *List[T]) Resize(n int) error {
	if err := l.live(); err != nil {
		return err
	}
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative length %d", n)
	}
	if err := l.reserve(n); err != nil {
		return err
	}
	l.setCount(n)
	return nil
}

// Clear drops all elements and keeps the block.
func (l *List[T]) Clear() error {
	if err := l.live(); err != nil {
		return err
	}
	l.count = 0
	return nil
}

// MoveTo transfers the block to dst and disposes l. Any block dst owned is
// released first.
func (l *List[T]) MoveTo(dst *List[T]) error {
	return l.moveTo(&dst.block)
}
