//go:build windows

package osheap

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

var (
	modkernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetProcessHeap = modkernel32.NewProc("GetProcessHeap")
	procHeapAlloc      = modkernel32.NewProc("HeapAlloc")
	procHeapFree       = modkernel32.NewProc("HeapFree")
	procHeapReAlloc    = modkernel32.NewProc("HeapReAlloc")
)

// Heap wraps the default process heap.
type Heap struct {
	handle uintptr
}

func open() (*Heap, error) {
	h, _, callErr := procGetProcessHeap.Call()
	if h == 0 {
		return nil, errors.Wrapf(ErrUnsupported, "GetProcessHeap: %v", callErr)
	}
	return &Heap{handle: h}, nil
}

// Alloc allocates size bytes from the process heap.
func (h *Heap) Alloc(size uintptr) (unsafe.Pointer, error) {
	r, _, callErr := procHeapAlloc.Call(h.handle, 0, size)
	if r == 0 {
		return nil, errors.Wrapf(ErrNoMemory, "HeapAlloc %d bytes: %v", size, callErr)
	}
	return unsafe.Pointer(r), nil
}

// Free returns the block at p to the process heap.
func (h *Heap) Free(p unsafe.Pointer) error {
	r, _, callErr := procHeapFree.Call(h.handle, 0, uintptr(p))
	if r == 0 {
		return errors.Wrapf(ErrUnknownBlock, "HeapFree %p: %v", p, callErr)
	}
	return nil
}

// Realloc resizes the block at p, moving it if the heap cannot grow it in place.
func (h *Heap) Realloc(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	r, _, callErr := procHeapReAlloc.Call(h.handle, 0, uintptr(p), size)
	if r == 0 {
		return nil, errors.Wrapf(ErrNoMemory, "HeapReAlloc %p to %d bytes: %v", p, size, callErr)
	}
	return unsafe.Pointer(r), nil
}
