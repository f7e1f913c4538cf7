package alloc

import "unsafe"

// Allocator hands out raw, unaligned blocks of memory.
//
// Implementations:
//   - GoHeap: Go heap backed, optionally capped by WithLimit
//   - Platform: the operating system's native heap
//   - Mmap: modernc.org/memory slab allocator
//   - Tracking: counting decorator over another Allocator
type Allocator interface {
	// Allocate returns a block of at least size bytes.
	// Failure wraps ErrOutOfMemory; the returned pointer is never nil on success.
	Allocate(size uintptr) (unsafe.Pointer, error)

	// Free releases a block previously returned by Allocate or Reallocate.
	Free(p unsafe.Pointer) error

	// Reallocate resizes the block at p, preserving its contents up to the smaller
	// of the old and new sizes. The returned block may differ from p, in which
	// case p is no longer valid.
	Reallocate(p unsafe.Pointer, size uintptr) (unsafe.Pointer, error)
}

// Handle is an index into a Registry.
type Handle int

// InvalidHandle marks a container that no longer owns a block.
const InvalidHandle Handle = -1

// Built-in handles in the Default registry.
const (
	GoHeapHandle   Handle = 0
	PlatformHandle Handle = 1
	MmapHandle     Handle = 2
)

// Names of the built-in allocators in the Default registry.
const (
	NameGoHeap   = "goheap"
	NamePlatform = "platform"
	NameMmap     = "mmap"
)

// Valid reports whether h could refer to a registry entry.
func (h Handle) Valid() bool { return h >= 0 }
