package alloc

import (
	"unsafe"

	"github.com/cockroachdb/errors"
)

// ptrSize is the width of the base-address word stored before each aligned block.
const ptrSize = unsafe.Sizeof(uintptr(0))

// AlignmentFor returns the alignment Malloc and Realloc use for a request of size
// bytes: size%16, or 16 when size is a multiple of 16.
//
// The result is not always a power of two (24 -> 8, 5 -> 5). For sizes that are a
// whole number of elements of a naturally aligned type the rounding below still
// honours that type's alignment, because size%16 is then a multiple of it.
func AlignmentFor(size uintptr) uintptr {
	if a := size % 16; a != 0 {
		return a
	}
	return 16
}

// overhead is the extra space requested from the backend for alignment padding
// plus the base-address word.
func overhead(align uintptr) uintptr {
	return align - 1 + ptrSize
}

// alignedAddr returns the address inside the raw block at base where the payload starts.
func alignedAddr(base unsafe.Pointer, align uintptr) unsafe.Pointer {
	addr := (uintptr(base) + overhead(align)) &^ (align - 1)
	return unsafe.Add(base, addr-uintptr(base))
}

func storeBase(p, base unsafe.Pointer) {
	*(*uintptr)(unsafe.Add(p, -int(ptrSize))) = uintptr(base)
}

// baseOf recovers the raw block address recorded before p.
func baseOf(p unsafe.Pointer) unsafe.Pointer {
	raw := *(*uintptr)(unsafe.Add(p, -int(ptrSize)))
	return unsafe.Add(p, -int(uintptr(p)-raw))
}

// Malloc allocates size bytes aligned per AlignmentFor(size).
func (r *Registry) Malloc(size uintptr, h Handle) (unsafe.Pointer, error) {
	return r.AlignedMalloc(size, AlignmentFor(size), h)
}

// Free releases a block obtained from Malloc or Realloc.
func (r *Registry) Free(p unsafe.Pointer, h Handle) error {
	return r.AlignedFree(p, h)
}

// Realloc resizes a block, deriving the alignment from newSize.
func (r *Registry) Realloc(p unsafe.Pointer, newSize uintptr, h Handle) (unsafe.Pointer, error) {
	return r.AlignedRealloc(p, newSize, AlignmentFor(newSize), h)
}

// AlignedMalloc requests size + (align-1) + pointer width bytes from h's allocator,
// rounds the address up to align and records the raw base before the result.
func (r *Registry) AlignedMalloc(size, align uintptr, h Handle) (unsafe.Pointer, error) {
	if align == 0 {
		return nil, ErrInvalidAlignment
	}
	a, err := r.Lookup(h)
	if err != nil {
		return nil, err
	}

	extra := overhead(align)
	if size > ^uintptr(0)-extra {
		return nil, errors.Wrapf(ErrOutOfMemory, "aligned malloc of %d bytes overflows", size)
	}
	base, err := a.Allocate(size + extra)
	if err != nil {
		return nil, errors.Wrapf(err, "alloc: aligned malloc %d bytes via %q", size, r.Name(h))
	}
	if base == nil {
		return nil, errors.Wrapf(ErrOutOfMemory, "allocator %q returned nil", r.Name(h))
	}

	p := alignedAddr(base, align)
	storeBase(p, base)
	return p, nil
}

// AlignedFree releases the raw block behind p.
func (r *Registry) AlignedFree(p unsafe.Pointer, h Handle) error {
	if p == nil {
		return ErrNilBlock
	}
	a, err := r.Lookup(h)
	if err != nil {
		return err
	}
	if err := a.Free(baseOf(p)); err != nil {
		return errors.Wrapf(err, "alloc: free via %q", r.Name(h))
	}
	return nil
}

// AlignedRealloc resizes the raw block behind p to hold newSize payload bytes.
// When the backend keeps the block in place p is returned unchanged. When the
// block moves, the aligned pointer is recomputed for the new base, the payload is
// shifted if its offset from the base changed, and the base word is rewritten.
func (r *Registry) AlignedRealloc(p unsafe.Pointer, newSize, align uintptr, h Handle) (unsafe.Pointer, error) {
	if p == nil {
		return nil, ErrNilBlock
	}
	if align == 0 {
		return nil, ErrInvalidAlignment
	}
	a, err := r.Lookup(h)
	if err != nil {
		return nil, err
	}

	base := baseOf(p)
	oldOff := uintptr(p) - uintptr(base)
	// Reserve room for the old offset too, so the preserved payload is in bounds
	// wherever the backend puts the block.
	reserve := max(overhead(align), oldOff)
	if newSize > ^uintptr(0)-reserve {
		return nil, errors.Wrapf(ErrOutOfMemory, "aligned realloc to %d bytes overflows", newSize)
	}

	nb, err := a.Reallocate(base, newSize+reserve)
	if err != nil {
		return nil, errors.Wrapf(err, "alloc: aligned realloc to %d bytes via %q", newSize, r.Name(h))
	}
	if nb == nil {
		return nil, errors.Wrapf(ErrOutOfMemory, "allocator %q returned nil", r.Name(h))
	}
	if nb == base {
		return p, nil
	}

	np := alignedAddr(nb, align)
	if newOff := uintptr(np) - uintptr(nb); newOff != oldOff && newSize > 0 {
		src := unsafe.Slice((*byte)(unsafe.Add(nb, oldOff)), newSize)
		copy(unsafe.Slice((*byte)(np), newSize), src)
	}
	storeBase(np, nb)
	return np, nil
}
