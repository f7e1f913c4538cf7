package container

import (
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/native/algo"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// PriorityQueue is a binary min-heap of T under a comparer fixed at
// construction. Dequeue returns the element that sorts first. Growth follows
// List.
type PriorityQueue[T comparable] struct {
	block
	compare algo.Compare[T]
}

// NewPriorityQueue allocates an empty priority queue through h ordered by compare.
func NewPriorityQueue[T comparable](h alloc.Handle, compare algo.Compare[T], opts ...Option) (*PriorityQueue[T], error) {
	if compare == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil compare")
	}
	o, err := resolveFor[T](opts)
	if err != nil {
		return nil, err
	}
	pq := &PriorityQueue[T]{compare: compare}
	if err := pq.open(o, h); err != nil {
		return nil, err
	}
	return pq, nil
}

// Enqueue adds v.
func (pq *PriorityQueue[T]) Enqueue(v T) error {
	if err := pq.live(); err != nil {
		return err
	}
	if err := pq.grow(pq.count+1, 1); err != nil {
		return err
	}
	raw.Set(pq.ptr, pq.stride, pq.count, v)
	pq.count++
	algo.PushHeap(pq.ptr, pq.count, pq.stride, pq.compare)
	return nil
}

// Dequeue removes and returns the first element in comparer order.
func (pq *PriorityQueue[T]) Dequeue() (T, error) {
	var zero T
	if pq.count == 0 {
		return zero, outOfRange(0, 0)
	}
	algo.PopHeap(pq.ptr, pq.count, pq.stride, pq.compare)
	pq.count--
	return *raw.Get[T](pq.ptr, pq.stride, pq.count), nil
}

// Peek returns the first element in comparer order without removing it.
func (pq *PriorityQueue[T]) Peek() (T, error) {
	var zero T
	if pq.count == 0 {
		return zero, outOfRange(0, 0)
	}
	return *raw.Get[T](pq.ptr, pq.stride, 0), nil
}

// IsEmpty reports whether the queue holds no elements.
func (pq *PriorityQueue[T]) IsEmpty() bool { return pq.count == 0 }

// Values yields elements in heap storage order, which is not sorted order.
func (pq *PriorityQueue[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < pq.count; i++ {
			if !yield(*raw.Get[T](pq.ptr, pq.stride, i)) {
				return
			}
		}
	}
}

// Clear drops all elements and keeps the block.
func (pq *PriorityQueue[T]) Clear() error {
	if err := pq.live(); err != nil {
		return err
	}
	pq.count = 0
	return nil
}

// MoveTo transfers the block and comparer to dst and disposes pq. Any block dst
// owned is released first.
func (pq *PriorityQueue[T]) MoveTo(dst *PriorityQueue[T]) error {
	if err := pq.moveTo(&dst.block); err != nil {
		return err
	}
	dst.compare = pq.compare
	return nil
}
