package algo

import (
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/joshuapare/nativekit/native/raw"
)

// ErrInvalidRange indicates negative sort bounds or right < left.
var ErrInvalidRange = errors.New("algo: invalid range")

// Compare orders two elements: negative when a sorts before b, zero when equal,
// positive otherwise.
type Compare[T any] func(a, b T) int

// Strategy selects a quicksort implementation.
type Strategy uint8

const (
	// Recursive is the left-pivot hole-filling quicksort.
	Recursive Strategy = iota
	// Iterative is the middle-pivot Hoare quicksort driven by an explicit work stack.
	Iterative
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case Recursive:
		return "recursive"
	case Iterative:
		return "iterative"
	default:
		return "unknown"
	}
}

// Sort orders the first count elements of block ascending under cmp.
func Sort[T any](s Strategy, block unsafe.Pointer, count, stride int, cmp Compare[T]) error {
	if count < 0 {
		return errors.Wrapf(ErrInvalidRange, "count %d", count)
	}
	if count < 2 {
		return nil
	}
	switch s {
	case Recursive:
		return QuickSort(block, 0, count-1, stride, cmp)
	case Iterative:
		QuickSortIterative(block, count, stride, cmp)
		return nil
	default:
		return errors.Newf("algo: unknown strategy %d", s)
	}
}

// QuickSort sorts the inclusive range [left, right] of block.
//
// The element at left is taken out as the pivot, leaving a hole. The scan from
// the right skips elements >= pivot and drops the first smaller one into the
// hole; the scan from the left then skips elements <= pivot and drops the first
// larger one into the new hole on the right. When the scans meet, the pivot is
// written back and both sides are sorted recursively. Equal elements are skipped
// on whichever side is currently scanning, so runs of duplicates cannot stall it.
func QuickSort[T any](block unsafe.Pointer, left, right, stride int, cmp Compare[T]) error {
	if left < 0 || right < 0 {
		return errors.Wrapf(ErrInvalidRange, "left %d right %d", left, right)
	}
	if right < left {
		return errors.Wrapf(ErrInvalidRange, "right %d < left %d", right, left)
	}
	quickSort(block, left, right, stride, cmp, raw.Scratch(stride))
	return nil
}

func quickSort[T any](block unsafe.Pointer, left, right, stride int, cmp Compare[T], scratch unsafe.Pointer) {
	i, j := left, right
	raw.Copy(block, left, scratch, 0, 1, stride)
	pivot := *(*T)(scratch)

	at := func(k int) T { return *raw.Get[T](block, stride, k) }

	for i < j {
		for j > i && cmp(at(j), pivot) >= 0 {
			j--
		}
		if j > i {
			raw.Copy(block, j, block, i, 1, stride)
			i++
			for i < j && cmp(at(i), pivot) <= 0 {
				i++
			}
			if i < j {
				raw.Copy(block, i, block, j, 1, stride)
				j--
			}
		}
	}
	raw.SetRaw(block, stride, i, scratch)

	if left < i-1 {
		quickSort(block, left, i-1, stride, cmp, scratch)
	}
	if j+1 < right {
		quickSort(block, j+1, right, stride, cmp, scratch)
	}
}

// QuickSortIterative sorts the first count elements of block using an explicit
// stack of (left, right) ranges instead of recursion. The pivot is the middle
// element of each range; partitioning is Hoare's crossing scan.
func QuickSortIterative[T any](block unsafe.Pointer, count, stride int, cmp Compare[T]) {
	if count < 2 {
		return
	}

	var local [128]int
	work := append(local[:0], 0, count-1)
	pivotBuf := raw.Scratch(stride)
	at := func(k int) T { return *raw.Get[T](block, stride, k) }

	for len(work) > 0 {
		right := work[len(work)-1]
		left := work[len(work)-2]
		work = work[:len(work)-2]

		raw.Copy(block, (left+right)/2, pivotBuf, 0, 1, stride)
		pivot := *(*T)(pivotBuf)

		i, j := left, right
		for {
			for cmp(at(i), pivot) < 0 {
				i++
			}
			for cmp(at(j), pivot) > 0 {
				j--
			}
			if i <= j {
				raw.Swap(raw.Offset(block, stride, i), raw.Offset(block, stride, j), stride)
				i++
				j--
			}
			if i > j {
				break
			}
		}

		if left < j {
			work = append(work, left, j)
		}
		if i < right {
			work = append(work, i, right)
		}
	}
}
