package alloc

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/cockroachdb/errors"
)

// Entry is one registered allocator.
type Entry struct {
	Handle    Handle
	Name      string
	Allocator Allocator
}

// Registry is an append-only table of named allocators addressed by Handle.
// Lookups are lock-free; registrations are serialized.
type Registry struct {
	mu     sync.Mutex // serializes Register
	table  atomic.Pointer[[]Entry]
	sealed atomic.Bool
}

// NewRegistry creates an empty registry. Most callers want Default.
func NewRegistry() *Registry {
	r := &Registry{}
	empty := []Entry{}
	r.table.Store(&empty)
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	// Order fixes the built-in handle values.
	r.mustRegister(NameGoHeap, NewGoHeap(), GoHeapHandle)
	r.mustRegister(NamePlatform, NewPlatform(), PlatformHandle)
	r.mustRegister(NameMmap, NewMmap(), MmapHandle)
	return r
})

// Default returns the process-wide registry, creating it with the built-in
// GoHeap, Platform and Mmap allocators on first use.
func Default() *Registry {
	return defaultRegistry()
}

func (r *Registry) mustRegister(name string, a Allocator, want Handle) {
	h, err := r.Register(name, a)
	if err != nil || h != want {
		panic(errors.AssertionFailedf("alloc: built-in %q registered as %d, want %d: %v", name, h, want, err))
	}
}

// Register appends a to the table and returns its handle. Allocators are not
// deduplicated: registering the same allocator twice yields two handles.
func (r *Registry) Register(name string, a Allocator) (Handle, error) {
	if a == nil {
		return InvalidHandle, errors.Wrapf(ErrNilAllocator, "register %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed.Load() {
		return InvalidHandle, errors.Wrapf(ErrSealed, "register %q", name)
	}

	old := *r.table.Load()
	next := make([]Entry, len(old), len(old)+1)
	copy(next, old)
	h := Handle(len(old))
	next = append(next, Entry{Handle: h, Name: name, Allocator: a})
	r.table.Store(&next)
	return h, nil
}

// Lookup returns the allocator registered under h.
func (r *Registry) Lookup(h Handle) (Allocator, error) {
	t := *r.table.Load()
	if h < 0 || int(h) >= len(t) {
		return nil, errors.Wrapf(ErrUnknownHandle, "handle %d (registered: %d)", h, len(t))
	}
	return t[h].Allocator, nil
}

// Find returns the handle of the first allocator registered under name.
func (r *Registry) Find(name string) (Handle, bool) {
	for _, e := range *r.table.Load() {
		if e.Name == name {
			return e.Handle, true
		}
	}
	return InvalidHandle, false
}

// Name returns the registered name for h, or "" when h is unknown.
func (r *Registry) Name(h Handle) string {
	t := *r.table.Load()
	if h < 0 || int(h) >= len(t) {
		return ""
	}
	return t[h].Name
}

// Len returns the number of registered allocators.
func (r *Registry) Len() int { return len(*r.table.Load()) }

// Entries returns a snapshot of the table in handle order.
func (r *Registry) Entries() []Entry {
	t := *r.table.Load()
	out := make([]Entry, len(t))
	copy(out, t)
	return out
}

// Seal forbids further registrations.
func (r *Registry) Seal() { r.sealed.Store(true) }

// Sealed reports whether the registry is sealed.
func (r *Registry) Sealed() bool { return r.sealed.Load() }

// Register adds a to the Default registry.
func Register(name string, a Allocator) (Handle, error) { return Default().Register(name, a) }

// Lookup resolves h in the Default registry.
func Lookup(h Handle) (Allocator, error) { return Default().Lookup(h) }

// Malloc allocates an aligned block from the Default registry.
func Malloc(size uintptr, h Handle) (unsafe.Pointer, error) { return Default().Malloc(size, h) }

// Free releases a block obtained from Malloc or Realloc on the Default registry.
func Free(p unsafe.Pointer, h Handle) error { return Default().Free(p, h) }

// Realloc resizes a block obtained from the Default registry.
func Realloc(p unsafe.Pointer, newSize uintptr, h Handle) (unsafe.Pointer, error) {
	return Default().Realloc(p, newSize, h)
}

// AlignedMalloc allocates a block with an explicit alignment from the Default registry.
func AlignedMalloc(size, align uintptr, h Handle) (unsafe.Pointer, error) {
	return Default().AlignedMalloc(size, align, h)
}

// AlignedFree releases a block obtained from AlignedMalloc on the Default registry.
func AlignedFree(p unsafe.Pointer, h Handle) error { return Default().AlignedFree(p, h) }

// AlignedRealloc resizes a block obtained from AlignedMalloc on the Default registry.
func AlignedRealloc(p unsafe.Pointer, newSize, align uintptr, h Handle) (unsafe.Pointer, error) {
	return Default().AlignedRealloc(p, newSize, align, h)
}
