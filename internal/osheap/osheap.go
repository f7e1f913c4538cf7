// Package osheap provides platform-specific access to the operating system's native heap.
//
// Windows uses the process heap (GetProcessHeap + HeapAlloc/HeapFree/HeapReAlloc).
// Unix systems use private anonymous mappings, one per block, remapped on resize.
// Other platforms report ErrUnsupported.
//
// The heap handle is obtained once per process by Process and reused for the
// process lifetime. A Heap is safe for concurrent use.
package osheap

import (
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNoMemory indicates that the operating system refused an allocation or resize.
	ErrNoMemory = errors.New("osheap: out of memory")

	// ErrUnknownBlock indicates a free or resize of a pointer this heap did not hand out.
	ErrUnknownBlock = errors.New("osheap: unknown block")

	// ErrUnsupported indicates that no native heap is available on this platform.
	ErrUnsupported = errors.New("osheap: native heap not supported on this platform")
)

var process = sync.OnceValues(open)

// Process returns the process-wide native heap, opening it on first use.
func Process() (*Heap, error) {
	return process()
}
