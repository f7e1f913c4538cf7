// Package alloc provides the block allocators that back nativekit's containers.
//
// # Overview
//
// Containers never hold a reference to an allocator object. They hold a small
// integer Handle that indexes a process-wide Registry, and every block request
// goes through the registry's aligned block service:
//
//	p, err := alloc.Malloc(uintptr(stride*capacity), alloc.GoHeapHandle)
//	if err != nil {
//	    return err
//	}
//	defer alloc.Free(p, alloc.GoHeapHandle)
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface, which supports:
//
//   - Allocate(size): obtain a raw block of at least size bytes
//   - Free(p): release a block obtained from Allocate or Reallocate
//   - Reallocate(p, size): resize a block, possibly moving it
//
// Allocation failure is always reported as an error matching ErrOutOfMemory;
// an allocator never returns a nil pointer with a nil error.
//
// # Implementations
//
// Default() registers three backends in this order:
//
//	Handle 0 (GoHeap):   Go heap []byte arrays pinned in a live-block table
//	Handle 1 (Platform): the operating system's native heap (internal/osheap)
//	Handle 2 (Mmap):     modernc.org/memory mmap-backed size-class slabs
//
// Tracking wraps any allocator and counts live blocks, which tests use to prove
// that a container releases its block exactly once.
//
// # Aligned Blocks
//
// The aligned service asks the backend for size + (align-1) + pointer width
// bytes, rounds the address up, and stores the raw base address in the word
// immediately before the pointer it returns:
//
//	base            p-8        p
//	|<-- padding -->|<- base ->|<-------- size bytes -------->|
//
// AlignedFree and AlignedRealloc read that word back to recover the raw block.
// Malloc, Free and Realloc derive the alignment from the requested size with
// AlignmentFor: size%16, or 16 when the size is a multiple of 16.
//
// # Thread Safety
//
// Registry lookups and the built-in backends are safe for concurrent use.
// Registration is expected to happen during startup; Seal freezes the table.
// Blocks themselves are single-owner and unsynchronized.
package alloc
