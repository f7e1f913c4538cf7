package container

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/internal/buf"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// noCopy lets go vet's copylocks check flag containers copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// block is the state every container shares: one owned allocation holding
// capacity slots of stride bytes, count of which are live.
//
// A disposed block has a nil ptr, zero count and capacity, and InvalidHandle.
type block struct {
	noCopy noCopy

	reg      *alloc.Registry
	ptr      unsafe.Pointer
	stride   int
	count    int
	capacity int
	handle   alloc.Handle
}

// Len returns the number of live elements.
func (b *block) Len() int { return b.count }

// Cap returns the number of slots in the block.
func (b *block) Cap() int { return b.capacity }

// Stride returns the slot width in bytes.
func (b *block) Stride() int { return b.stride }

// Allocator returns the handle the block was allocated through, or
// alloc.InvalidHandle once disposed.
func (b *block) Allocator() alloc.Handle { return b.handle }

// Ptr returns the block address, or nil once disposed.
func (b *block) Ptr() unsafe.Pointer { return b.ptr }

// Disposed reports whether the container was closed or moved from.
func (b *block) Disposed() bool { return b.ptr == nil }

// open allocates capacity slots through h.
func (b *block) open(o options, h alloc.Handle) error {
	size, err := buf.BlockSize(o.capacity, o.stride)
	if err != nil {
		return errors.Mark(err, ErrInvalidArgument)
	}
	p, err := o.registry.Malloc(uintptr(size), h)
	if err != nil {
		return err
	}

	b.reg = o.registry
	b.ptr = p
	b.stride = o.stride
	b.count = 0
	b.capacity = o.capacity
	b.handle = h
	return nil
}

// reset puts the block into the disposed state without freeing anything.
func (b *block) reset() {
	b.ptr = nil
	b.count = 0
	b.capacity = 0
	b.handle = alloc.InvalidHandle
}

// Close releases the block. Closing a disposed container is a no-op.
func (b *block) Close() error {
	if b.ptr == nil {
		return nil
	}
	p, h := b.ptr, b.handle
	b.reset()
	return b.reg.Free(p, h)
}

// moveTo hands the block to dst, releasing whatever dst held first. The
// receiver is left disposed.
func (b *block) moveTo(dst *block) error {
	if b.ptr == nil {
		return errors.Wrap(ErrDisposed, "move source")
	}
	if dst == b {
		return nil
	}
	if err := dst.Close(); err != nil {
		return errors.Wrap(err, "release move target")
	}

	dst.reg = b.reg
	dst.ptr = b.ptr
	dst.stride = b.stride
	dst.count = b.count
	dst.capacity = b.capacity
	dst.handle = b.handle
	b.reset()
	return nil
}

func (b *block) live() error {
	if b.ptr == nil {
		return ErrDisposed
	}
	return nil
}

func (b *block) checkIndex(i int) error {
	if i < 0 || i >= b.count {
		return outOfRange(i, b.count)
	}
	return nil
}

func (b *block) slot(i int) unsafe.Pointer {
	return raw.Offset(b.ptr, b.stride, i)
}

// relocate moves the live slots into a fresh block of capacity slots. The old
// block is freed only after the copy.
func (b *block) relocate(capacity int, copyLive func(dst unsafe.Pointer)) error {
	size, err := buf.BlockSize(capacity, b.stride)
	if err != nil {
		return err
	}
	p, err := b.reg.Malloc(uintptr(size), b.handle)
	if err != nil {
		return err
	}
	copyLive(p)

	old := b.ptr
	b.ptr = p
	b.capacity = capacity
	return b.reg.Free(old, b.handle)
}

// grow ensures room for need slots, growing by max(capacity+step, capacity*1.5).
func (b *block) grow(need, step int) error {
	if need <= b.capacity {
		return nil
	}
	next, err := buf.GrowCapacity(b.capacity, step, need)
	if err != nil {
		return err
	}
	return b.relocate(next, func(dst unsafe.Pointer) {
		raw.Copy(b.ptr, 0, dst, 0, b.count, b.stride)
	})
}

// reserve grows the block to exactly capacity slots when it is smaller.
func (b *block) reserve(capacity int) error {
	if capacity <= b.capacity {
		return nil
	}
	return b.relocate(capacity, func(dst unsafe.Pointer) {
		raw.Copy(b.ptr, 0, dst, 0, b.count, b.stride)
	})
}

// shrinkThreshold is the live count below which TrimExcess releases slots.
func (b *block) shrinkThreshold() int {
	return b.capacity * 9 / 10
}

// removeRange drops the half-open range [begin, end) and closes the gap.
func (b *block) removeRange(begin, end int) {
	n := end - begin
	if n <= 0 {
		return
	}
	raw.Copy(b.ptr, end, b.ptr, begin, b.count-end, b.stride)
	b.count -= n
	raw.Clear(b.slot(b.count), n, b.stride)
}

// insertGap opens one slot at i by shifting [i, count) right. The block must
// already have room.
func (b *block) insertGap(i int) {
	raw.Copy(b.ptr, i, b.ptr, i+1, b.count-i, b.stride)
	b.count++
}

// setCount moves count to n, zeroing slots that become live.
func (b *block) setCount(n int) {
	if n > b.count {
		raw.Clear(b.slot(b.count), n-b.count, b.stride)
	}
	b.count = n
}
