//go:build !unix && !windows

package osheap

import "unsafe"

// Heap is a placeholder on platforms without a native heap binding.
type Heap struct{}

func open() (*Heap, error) {
	return nil, ErrUnsupported
}

// Alloc always fails with ErrUnsupported.
func (h *Heap) Alloc(size uintptr) (unsafe.Pointer, error) { return nil, ErrUnsupported }

// Free always fails with ErrUnsupported.
func (h *Heap) Free(p unsafe.Pointer) error { return ErrUnsupported }

// Realloc always fails with ErrUnsupported.
func (h *Heap) Realloc(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	return nil, ErrUnsupported
}
