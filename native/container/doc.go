// Package container provides manually managed containers whose elements live in
// a block obtained from an alloc.Registry rather than the Go heap.
//
// Each container owns exactly one block, addressed by an allocator handle, and
// must be released with Close. Containers are single-owner values: do not copy
// them (go vet reports copies); use MoveTo to hand a block to another container.
//
// Element types must be pointer-free, since the garbage collector does not scan
// blocks. Constructors reject other types with raw.ErrManagedElem.
//
// Example:
//
//	l, err := container.NewList[int64](alloc.GoHeapHandle)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//
//	_ = l.Add(3)
//	_ = l.Add(1)
//	_ = container.SortOrdered[int64](l)
//
// None of the containers are safe for concurrent use.
package container
