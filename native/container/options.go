package container

import (
	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// DefaultCapacity is the initial capacity of List, Queue, Stack, PriorityQueue
// and RawList when WithCapacity is not given.
const DefaultCapacity = 8

// Option configures a container at construction.
type Option func(*options)

type options struct {
	capacity int
	stride   int
	registry *alloc.Registry
}

// WithCapacity sets the initial capacity in elements.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithStride sets the slot width in bytes. It must be at least the element size.
func WithStride(n int) Option {
	return func(o *options) { o.stride = n }
}

// WithRegistry resolves the allocator handle in r instead of alloc.Default().
func WithRegistry(r *alloc.Registry) Option {
	return func(o *options) { o.registry = r }
}

// resolve applies opts over the defaults for an element of elemSize bytes.
func resolve(elemSize int, opts []Option) (options, error) {
	o := options{
		capacity: DefaultCapacity,
		stride:   -1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.stride == -1 {
		o.stride = max(elemSize, 1)
	}
	if o.stride < elemSize || o.stride <= 0 {
		return o, errors.Wrapf(ErrInvalidArgument, "stride %d < element size %d", o.stride, elemSize)
	}
	if o.capacity < 0 {
		return o, errors.Wrapf(ErrInvalidArgument, "negative capacity %d", o.capacity)
	}
	if o.registry == nil {
		o.registry = alloc.Default()
	}
	return o, nil
}

// resolveFor checks T and resolves opts for it.
func resolveFor[T any](opts []Option) (options, error) {
	if err := raw.CheckElem[T](); err != nil {
		return options{}, err
	}
	return resolve(raw.SizeOf[T](), opts)
}
