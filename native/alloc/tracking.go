package alloc

import (
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Tracking counts the blocks that pass through another Allocator. Freeing a
// block it has not seen, or freeing one twice, fails with ErrBadBlock without
// reaching the inner allocator.
type Tracking struct {
	inner Allocator

	mu     sync.Mutex
	live   map[uintptr]uintptr // block -> size
	bytes  uintptr
	allocs int
	frees  int
}

// NewTracking wraps inner.
func NewTracking(inner Allocator) *Tracking {
	return &Tracking{inner: inner, live: make(map[uintptr]uintptr)}
}

// Allocate forwards to the inner allocator and records the block.
func (t *Tracking) Allocate(size uintptr) (unsafe.Pointer, error) {
	p, err := t.inner.Allocate(size)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.live[uintptr(p)] = size
	t.bytes += size
	t.allocs++
	t.mu.Unlock()
	return p, nil
}

// Free forwards known blocks to the inner allocator.
func (t *Tracking) Free(p unsafe.Pointer) error {
	t.mu.Lock()
	size, ok := t.live[uintptr(p)]
	if ok {
		delete(t.live, uintptr(p))
		t.bytes -= size
		t.frees++
	}
	t.mu.Unlock()

	if !ok {
		return errors.Wrapf(ErrBadBlock, "tracking: free of untracked block %p", p)
	}
	return t.inner.Free(p)
}

// Reallocate forwards to the inner allocator and moves the record.
func (t *Tracking) Reallocate(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	t.mu.Lock()
	old, ok := t.live[uintptr(p)]
	t.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(ErrBadBlock, "tracking: realloc of untracked block %p", p)
	}

	np, err := t.inner.Reallocate(p, size)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	delete(t.live, uintptr(p))
	t.live[uintptr(np)] = size
	t.bytes = t.bytes - old + size
	t.mu.Unlock()
	return np, nil
}

// LiveBlocks returns the number of blocks allocated and not yet freed.
func (t *Tracking) LiveBlocks() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// LiveBytes returns the raw bytes held by live blocks.
func (t *Tracking) LiveBytes() uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bytes
}

// Allocs returns the number of successful Allocate calls.
func (t *Tracking) Allocs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs
}

// Frees returns the number of successful Free calls.
func (t *Tracking) Frees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees
}

var _ Allocator = (*Tracking)(nil)
