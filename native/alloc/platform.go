package alloc

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/internal/osheap"
)

// Platform allocates from the operating system's native heap. The heap handle is
// obtained once per process (see internal/osheap) and shared by every Platform.
type Platform struct{}

// NewPlatform returns the native heap allocator.
func NewPlatform() *Platform { return &Platform{} }

func processHeap() (*osheap.Heap, error) {
	h, err := osheap.Process()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "platform: open native heap"), ErrOutOfMemory)
	}
	return h, nil
}

// classify maps native heap failures onto this package's taxonomy.
func classify(err error, op string) error {
	switch {
	case errors.Is(err, osheap.ErrUnknownBlock):
		return errors.Mark(errors.Wrapf(err, "platform: %s", op), ErrBadBlock)
	default:
		return errors.Mark(errors.Wrapf(err, "platform: %s", op), ErrOutOfMemory)
	}
}

// Allocate obtains size bytes from the native heap.
func (*Platform) Allocate(size uintptr) (unsafe.Pointer, error) {
	h, err := processHeap()
	if err != nil {
		return nil, err
	}
	p, err := h.Alloc(size)
	if err != nil {
		return nil, classify(err, "allocate")
	}
	return p, nil
}

// Free returns p to the native heap.
func (*Platform) Free(p unsafe.Pointer) error {
	h, err := processHeap()
	if err != nil {
		return err
	}
	if err := h.Free(p); err != nil {
		return classify(err, "free")
	}
	return nil
}

// Reallocate resizes p on the native heap.
func (*Platform) Reallocate(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error) {
	h, err := processHeap()
	if err != nil {
		return nil, err
	}
	np, err := h.Realloc(p, size)
	if err != nil {
		return nil, classify(err, "reallocate")
	}
	return np, nil
}

var _ Allocator = (*Platform)(nil)
