package container

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/raw"
)

// RawList is a growable list of untyped stride-byte slots. Callers interpret
// the slots themselves, through At or the AppendValue and ValueAt helpers.
// Growth follows List.
type RawList struct {
	block
}

// NewRawList allocates an empty list of stride-byte slots through h.
// WithStride is ignored.
func NewRawList(stride int, h alloc.Handle, opts ...Option) (*RawList, error) {
	if stride <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "stride %d", stride)
	}
	o, err := resolve(stride, append(opts[:len(opts):len(opts)], WithStride(stride)))
	if err != nil {
		return nil, err
	}
	l := &RawList{}
	if err := l.open(o, h); err != nil {
		return nil, err
	}
	return l, nil
}

// AddRaw appends one slot copied from the stride bytes at src.
func (l *RawList) AddRaw(src unsafe.Pointer) error {
	if err := l.live(); err != nil {
		return err
	}
	if src == nil {
		return errors.Wrap(ErrInvalidArgument, "nil source")
	}
	if err := l.grow(l.count+1, 1); err != nil {
		return err
	}
	raw.SetRaw(l.ptr, l.stride, l.count, src)
	l.count++
	return nil
}

// At returns the address of slot i.
func (l *RawList) At(i int) (unsafe.Pointer, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	return l.slot(i), nil
}

// Bytes returns a view of the stride bytes of slot i.
func (l *RawList) Bytes(i int) ([]byte, error) {
	if err := l.checkIndex(i); err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(l.slot(i)), l.stride), nil
}

// RemoveAt deletes slot i, shifting the tail left.
func (l *RawList) RemoveAt(i int) error {
	if err := l.live(); err != nil {
		return err
	}
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.removeRange(i, i+1)
	return nil
}

// Resize grows the block to at least n slots. With setCount the length also
// becomes n, zeroing slots that become live.
func (l *RawList) Resize(n int, setCount bool) error {
	if err := l.live(); err != nil {
		return err
	}
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "negative size %d", n)
	}
	if err := l.reserve(n); err != nil {
		return err
	}
	if setCount {
		l.setCount(n)
	}
	return nil
}

// Clear drops all slots and keeps the block.
func (l *RawList) Clear() error {
	if err := l.live(); err != nil {
		return err
	}
	l.count = 0
	return nil
}

// MoveTo transfers the block to dst and disposes l. Any block dst owned is
// released first.
func (l *RawList) MoveTo(dst *RawList) error {
	return l.moveTo(&dst.block)
}

// AppendValue appends v to l. T must be pointer-free and fit in l's stride.
func AppendValue[T any](l *RawList, v T) error {
	if err := checkFits[T](l); err != nil {
		return err
	}
	if err := l.live(); err != nil {
		return err
	}
	// Pad v out to a full slot so AddRaw never reads past it.
	slot := raw.Scratch(l.stride)
	*(*T)(slot) = v
	return l.AddRaw(slot)
}

// ValueAt returns a typed view of slot i of l.
func ValueAt[T any](l *RawList, i int) (*T, error) {
	if err := checkFits[T](l); err != nil {
		return nil, err
	}
	p, err := l.At(i)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

func checkFits[T any](l *RawList) error {
	if err := raw.CheckElem[T](); err != nil {
		return err
	}
	if size := raw.SizeOf[T](); size > l.stride {
		return errors.Wrapf(ErrInvalidArgument, "element size %d > stride %d", size, l.stride)
	}
	return nil
}
