package alloc

import (
	"math"
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// maxGoHeapBlock bounds a single request so make never panics on an
// impossible length.
const maxGoHeapBlock = math.MaxInt >> 1

// GoHeap allocates blocks from the Go heap.
//
// Each block is a []byte kept in a live-block table until it is freed, so the
// collector treats it as reachable no matter where the owner stores its address.
// The Go collector does not move heap objects, which keeps addresses stable.
type GoHeap struct {
	limit uintptr // 0 means unlimited

	mu        sync.Mutex
	live      map[uintptr][]byte
	liveBytes uintptr
}

// GoHeapOption configures a GoHeap.
type GoHeapOption func(*GoHeap)

// WithLimit caps the total bytes a GoHeap may have live at once. Requests that
// would exceed the cap fail with ErrOutOfMemory.
func WithLimit(bytes uintptr) GoHeapOption {
	return func(g *GoHeap) { g.limit = bytes }
}

// NewGoHeap creates a Go heap allocator.
func NewGoHeap(opts ...GoHeapOption) *GoHeap {
	g := &GoHeap{live: make(map[uintptr][]byte)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// reserve checks that size more bytes fit, given that release bytes are about to
// be returned. Caller holds g.mu.
func (g *GoHeap) reserve(size, release uintptr) error {
	if size > maxGoHeapBlock {
		return errors.Wrapf(ErrOutOfMemory, "goheap: request of %d bytes exceeds block maximum", size)
	}
	if g.limit == 0 {
		return nil
	}
	if g.liveBytes-release+size > g.limit {
		return errors.Wrapf(ErrOutOfMemory, "goheap: %d live + %d requested exceeds limit %d",
			g.liveBytes-release, size, g.limit)
	}
	return nil
}

// Allocate returns a zeroed block of at least size bytes.
func (g *GoHeap) Allocate(size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		size = 1 // distinct address per block
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.reserve(size, 0); err != nil {
		return nil, err
	}
	b := make([]byte, size)
	p := unsafe.Pointer(unsafe.SliceData(b))
	g.live[uintptr(p)] = b
	g.liveBytes += size
	return p, nil
}

// Free drops the block from the live table.
func (g *GoHeap) Free(p unsafe.Pointer) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	b, ok := g.live[uintptr(p)]
	if !ok {
		return errors.Wrapf(ErrBadBlock, "goheap: free %p", p)
	}
	delete(g.live, uintptr(p))
	g.liveBytes -= uintptr(len(b))
	return nil
}

// Reallocate copies the block into a new array of size bytes. The Go heap cannot
// resize in place, so the result always differs from p.
func (g *GoHeap) Reallocate(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		size = 1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	old, ok := g.live[uintptr(p)]
	if !ok {
		return nil, errors.Wrapf(ErrBadBlock, "goheap: realloc %p", p)
	}
	if err := g.reserve(size, uintptr(len(old))); err != nil {
		return nil, err
	}

	b := make([]byte, size)
	copy(b, old)
	np := unsafe.Pointer(unsafe.SliceData(b))
	delete(g.live, uintptr(p))
	g.live[uintptr(np)] = b
	g.liveBytes = g.liveBytes - uintptr(len(old)) + size
	return np, nil
}

// LiveBytes returns the bytes currently allocated.
func (g *GoHeap) LiveBytes() uintptr {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.liveBytes
}

// LiveBlocks returns the number of blocks currently allocated.
func (g *GoHeap) LiveBlocks() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.live)
}

var _ Allocator = (*GoHeap)(nil)
