package container

import (
	"iter"
	"unsafe"

	"github.com/joshuapare/nativekit/internal/buf"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// Queue is a FIFO ring buffer of T in a manually managed block.
//
// Live elements run from head for count slots, wrapping at capacity; tail is
// the next write slot. When full, the ring is linearized into a block of
// max(capacity+4, capacity*1.5) slots.
type Queue[T comparable] struct {
	block
	head int
	tail int
}

// NewQueue allocates an empty queue through h.
func NewQueue[T comparable](h alloc.Handle, opts ...Option) (*Queue[T], error) {
	o, err := resolveFor[T](opts)
	if err != nil {
		return nil, err
	}
	q := &Queue[T]{}
	if err := q.open(o, h); err != nil {
		return nil, err
	}
	return q, nil
}

// linearize copies the live ring into dst starting at slot 0: head to the end
// of the block first, then the wrapped part from slot 0.
func (q *Queue[T]) linearize(dst unsafe.Pointer) {
	first := min(q.count, q.capacity-q.head)
	raw.Copy(q.ptr, q.head, dst, 0, first, q.stride)
	raw.Copy(q.ptr, 0, dst, first, q.count-first, q.stride)
}

func (q *Queue[T]) relocateRing(capacity int) error {
	if err := q.relocate(capacity, q.linearize); err != nil {
		return err
	}
	q.head = 0
	q.tail = 0
	if q.capacity > 0 {
		q.tail = q.count % q.capacity
	}
	return nil
}

// Enqueue appends v at the tail.
func (q *Queue[T]) Enqueue(v T) error {
	if err := q.live(); err != nil {
		return err
	}
	if q.count == q.capacity {
		if err := q.growRing(); err != nil {
			return err
		}
	}
	raw.Set(q.ptr, q.stride, q.tail, v)
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	return nil
}

func (q *Queue[T]) growRing() error {
	next, err := buf.GrowCapacity(q.capacity, 4, q.capacity+1)
	if err != nil {
		return err
	}
	return q.relocateRing(next)
}

// Dequeue removes and returns the head element.
func (q *Queue[T]) Dequeue() (T, error) {
	var zero T
	if q.count == 0 {
		return zero, outOfRange(0, 0)
	}
	v := *raw.Get[T](q.ptr, q.stride, q.head)
	q.head = (q.head + 1) % q.capacity
	q.count--
	return v, nil
}

// Peek returns the head element without removing it.
func (q *Queue[T]) Peek() (T, error) {
	p, err := q.PeekRef()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// PeekRef returns a pointer to the head element, valid until the next mutation.
func (q *Queue[T]) PeekRef() (*T, error) {
	if q.count == 0 {
		return nil, outOfRange(0, 0)
	}
	return raw.Get[T](q.ptr, q.stride, q.head), nil
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue[T]) IsEmpty() bool { return q.count == 0 }

// Contains reports whether some queued element equals v.
func (q *Queue[T]) Contains(v T) bool {
	for e := range q.All() {
		if e == v {
			return true
		}
	}
	return false
}

// All yields elements in FIFO order.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		idx := q.head
		for range q.count {
			if !yield(*raw.Get[T](q.ptr, q.stride, idx)) {
				return
			}
			idx++
			if idx == q.capacity {
				idx = 0
			}
		}
	}
}

// ToSlice copies the elements into a new Go slice in FIFO order.
func (q *Queue[T]) ToSlice() []T {
	out := make([]T, q.count)
	if q.count == 0 {
		return out
	}
	first := min(q.count, q.capacity-q.head)
	raw.CopyOut(q.ptr, q.head, out, 0, first, q.stride)
	raw.CopyOut(q.ptr, 0, out, first, q.count-first, q.stride)
	return out
}

// Clear drops all elements and keeps the block.
func (q *Queue[T]) Clear() error {
	if err := q.live(); err != nil {
		return err
	}
	q.count = 0
	q.head = 0
	q.tail = 0
	return nil
}

// TrimExcess shrinks the block to Len() slots when fewer than 90% of the slots
// are live. The ring is linearized into the new block.
func (q *Queue[T]) TrimExcess() error {
	if err := q.live(); err != nil {
		return err
	}
	if q.count >= q.shrinkThreshold() {
		return nil
	}
	return q.relocateRing(q.count)
}

// Close releases the block.
func (q *Queue[T]) Close() error {
	q.head, q.tail = 0, 0
	return q.block.Close()
}

// MoveTo transfers the block and ring cursors to dst and disposes q. Any block
// dst owned is released first.
func (q *Queue[T]) MoveTo(dst *Queue[T]) error {
	if err := q.moveTo(&dst.block); err != nil {
		return err
	}
	if dst == q {
		return nil
	}
	dst.head, dst.tail = q.head, q.tail
	q.head, q.tail = 0, 0
	return nil
}
