//go:build unix

package osheap

import (
	"sync"
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// Heap hands out page-granular private anonymous mappings.
type Heap struct {
	pageSize int

	mu   sync.Mutex
	maps map[uintptr][]byte // block address -> mapping
}

func open() (*Heap, error) {
	return &Heap{
		pageSize: unix.Getpagesize(),
		maps:     make(map[uintptr][]byte),
	}, nil
}

// roundPages rounds size up to a whole number of pages; zero-sized requests get one page.
func (h *Heap) roundPages(size uintptr) (int, error) {
	if size == 0 {
		return h.pageSize, nil
	}
	page := uintptr(h.pageSize)
	if size > ^uintptr(0)-page || size > uintptr(int(^uint(0)>>1))-page {
		return 0, errors.Wrapf(ErrNoMemory, "request of %d bytes too large", size)
	}
	return int((size + page - 1) &^ (page - 1)), nil
}

func mapAnon(length int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(ErrNoMemory, "mmap %d bytes: %v", length, err)
	}
	return data, nil
}

// Alloc maps at least size bytes of zeroed memory.
func (h *Heap) Alloc(size uintptr) (unsafe.Pointer, error) {
	length, err := h.roundPages(size)
	if err != nil {
		return nil, err
	}
	data, err := mapAnon(length)
	if err != nil {
		return nil, err
	}
	p := unsafe.Pointer(unsafe.SliceData(data))

	h.mu.Lock()
	h.maps[uintptr(p)] = data
	h.mu.Unlock()
	return p, nil
}

// Free unmaps the block at p.
func (h *Heap) Free(p unsafe.Pointer) error {
	h.mu.Lock()
	data, ok := h.maps[uintptr(p)]
	if ok {
		delete(h.maps, uintptr(p))
	}
	h.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrUnknownBlock, "free %p", p)
	}
	if err := unix.Munmap(data); err != nil {
		return errors.Wrapf(err, "osheap: munmap %p", p)
	}
	return nil
}

// Realloc resizes the block at p to at least size bytes, preserving its contents
// up to the smaller of the two sizes. The block may move.
func (h *Heap) Realloc(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	length, err := h.roundPages(size)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	data, ok := h.maps[uintptr(p)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownBlock, "realloc %p", p)
	}
	if length == len(data) {
		return p, nil
	}

	moved, err := remap(data, length)
	if err != nil {
		return nil, err
	}
	delete(h.maps, uintptr(p))
	np := unsafe.Pointer(unsafe.SliceData(moved))
	h.maps[uintptr(np)] = moved
	return np, nil
}

// Live reports the number of mappings currently handed out.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.maps)
}
