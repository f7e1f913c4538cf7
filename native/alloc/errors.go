package alloc

import "github.com/cockroachdb/errors"

var (
	// ErrOutOfMemory indicates that the underlying allocator could not satisfy a request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadBlock indicates a free or resize of a block the allocator does not own.
	ErrBadBlock = errors.New("alloc: bad block")

	// ErrNilBlock indicates a nil block passed to a free or resize.
	ErrNilBlock = errors.New("alloc: nil block")

	// ErrInvalidAlignment indicates a zero alignment request.
	ErrInvalidAlignment = errors.New("alloc: alignment must be positive")

	// ErrUnknownHandle indicates a handle that is not present in the registry.
	ErrUnknownHandle = errors.New("alloc: unknown allocator handle")

	// ErrSealed indicates an attempt to register in a sealed registry.
	ErrSealed = errors.New("alloc: registry sealed")

	// ErrNilAllocator indicates an attempt to register a nil allocator.
	ErrNilAllocator = errors.New("alloc: nil allocator")
)
