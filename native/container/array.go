package container

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// Array is a fixed-length sequence of T in a manually managed block. All
// length slots are live and start zeroed.
type Array[T comparable] struct {
	seq[T]
}

// NewArray allocates an array of length zeroed elements through h.
// WithCapacity is ignored; the capacity is always length.
func NewArray[T comparable](length int, h alloc.Handle, opts ...Option) (*Array[T], error) {
	if length <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "array length %d", length)
	}
	o, err := resolveFor[T](opts)
	if err != nil {
		return nil, err
	}
	o.capacity = length

	a := &Array[T]{}
	if err := a.open(o, h); err != nil {
		return nil, err
	}
	a.setCount(length)
	return a, nil
}

// Clear zero-fills every element. The length is unchanged.
func (a *Array[T]) Clear() error {
	if err := a.live(); err != nil {
		return err
	}
	raw.Clear(a.ptr, a.count, a.stride)
	return nil
}

// MoveTo transfers the block to dst and disposes a. Any block dst owned is
// released first.
func (a *Array[T]) MoveTo(dst *Array[T]) error {
	return a.moveTo(&dst.block)
}
