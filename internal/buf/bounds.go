// Package buf contains overflow-safe size and offset arithmetic for raw blocks.
package buf

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrOverflow indicates that a size or offset computation does not fit in an int.
var ErrOverflow = errors.New("buf: size overflow")

// ErrOutOfBounds indicates an element range that does not fit its container.
var ErrOutOfBounds = errors.New("buf: range out of bounds")

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow int.
// This is essential for stride * capacity calculations when sizing blocks.
func MulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > 0 && b > 0 {
		if a > math.MaxInt/b {
			return 0, false
		}
	}
	if a < 0 && b < 0 {
		if a < math.MaxInt/b {
			return 0, false
		}
	}
	// Mixed signs - check against MinInt
	if a > 0 && b < 0 {
		if b < math.MinInt/a {
			return 0, false
		}
	}
	if a < 0 && b > 0 {
		if a < math.MinInt/b {
			return 0, false
		}
	}
	return a * b, true
}

// BlockSize returns count * stride in bytes, or an error when either operand is
// negative or the product overflows.
//
// This is the recommended way to size a block before asking an allocator for it:
//
//	size, err := buf.BlockSize(capacity, stride)
//	if err != nil {
//	    return err
//	}
//	p, err := alloc.Malloc(uintptr(size), handle)
func BlockSize(count, stride int) (int, error) {
	if count < 0 {
		return 0, errors.Newf("buf: negative count: %d", count)
	}
	if stride < 0 {
		return 0, errors.Newf("buf: negative stride: %d", stride)
	}
	size, ok := MulOverflowSafe(count, stride)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "count=%d * stride=%d", count, stride)
	}
	return size, nil
}

// CheckRange validates that the element range [start, start+count) lies inside
// [0, length) and returns its end. Failures wrap ErrOutOfBounds or ErrOverflow.
func CheckRange(length, start, count int) (int, error) {
	if start < 0 || start > length {
		return 0, errors.Wrapf(ErrOutOfBounds, "start=%d length=%d", start, length)
	}
	if count < 0 {
		return 0, errors.Wrapf(ErrOutOfBounds, "negative count: %d", count)
	}
	end, ok := AddOverflowSafe(start, count)
	if !ok {
		return 0, errors.Wrapf(ErrOverflow, "start=%d + count=%d", start, count)
	}
	if end > length {
		return 0, errors.Wrapf(ErrOutOfBounds, "end=%d > length=%d", end, length)
	}
	return end, nil
}

// GrowCapacity returns the next capacity for a block that must hold at least need
// elements: max(capacity+step, floor(capacity*1.5)), repeated until need fits.
func GrowCapacity(capacity, step, need int) (int, error) {
	next := capacity
	for next < need {
		grown, ok := AddOverflowSafe(next, next/2)
		if !ok {
			return 0, errors.Wrapf(ErrOverflow, "grow capacity=%d", next)
		}
		stepped, ok := AddOverflowSafe(next, step)
		if !ok {
			return 0, errors.Wrapf(ErrOverflow, "grow capacity=%d", next)
		}
		next = max(stepped, grown)
	}
	return next, nil
}
