package alloc

import (
	"math"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"modernc.org/memory"
)

// Mmap allocates from mmap-backed size-class slabs managed by modernc.org/memory.
type Mmap struct {
	mu sync.Mutex // memory.Allocator is not safe for concurrent use
	a  memory.Allocator
}

// NewMmap creates an mmap slab allocator.
func NewMmap() *Mmap { return &Mmap{} }

func mmapSize(size uintptr) (int, error) {
	if size > math.MaxInt {
		return 0, errors.Wrapf(ErrOutOfMemory, "mmap: request of %d bytes too large", size)
	}
	if size == 0 {
		return 1, nil // a zero-sized request would come back nil
	}
	return int(size), nil
}

// Allocate returns a block of at least size bytes.
func (m *Mmap) Allocate(size uintptr) (unsafe.Pointer, error) {
	n, err := mmapSize(size)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.a.UnsafeMalloc(n)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "mmap: malloc %d bytes", n), ErrOutOfMemory)
	}
	if p == nil {
		return nil, errors.Wrapf(ErrOutOfMemory, "mmap: malloc %d bytes", n)
	}
	return p, nil
}

// Free returns p to its slab.
func (m *Mmap) Free(p unsafe.Pointer) error {
	if p == nil {
		return ErrNilBlock
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.a.UnsafeFree(p); err != nil {
		return errors.Mark(errors.Wrapf(err, "mmap: free %p", p), ErrBadBlock)
	}
	return nil
}

// Reallocate resizes p, moving it to a larger size class when needed.
func (m *Mmap) Reallocate(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if p == nil {
		return nil, ErrNilBlock
	}
	n, err := mmapSize(size)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	np, err := m.a.UnsafeRealloc(p, n)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "mmap: realloc %p to %d bytes", p, n), ErrOutOfMemory)
	}
	if np == nil {
		return nil, errors.Wrapf(ErrOutOfMemory, "mmap: realloc %p to %d bytes", p, n)
	}
	return np, nil
}

// UsableSize returns the usable size of the slab slot behind p.
func (m *Mmap) UsableSize(p unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return memory.UnsafeUsableSize(p)
}

// Close releases every mapping owned by the allocator. Blocks handed out earlier
// become invalid.
func (m *Mmap) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.a.Close()
}

var _ Allocator = (*Mmap)(nil)
