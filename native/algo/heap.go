package algo

import (
	"unsafe"

	"github.com/joshuapare/nativekit/native/raw"
)

// PushHeap restores the heap property over [0, count) after a new element was
// written at count-1, by sifting it toward the root.
func PushHeap[T any](block unsafe.Pointer, count, stride int, cmp Compare[T]) {
	if count < 2 {
		return
	}
	held := raw.Scratch(stride)
	raw.Copy(block, count-1, held, 0, 1, stride)
	siftUp(block, count-1, 0, held, stride, cmp)
}

// PopHeap moves the root of the heap over [0, count) to slot count-1 and
// re-heapifies [0, count-1). The caller drops the last slot afterwards.
//
// The former last element is held aside while the hole left at the root walks
// down to the bottom, always through the child that sorts first; it is then
// sifted back up from where the hole stopped.
func PopHeap[T any](block unsafe.Pointer, count, stride int, cmp Compare[T]) {
	if count < 2 {
		return
	}
	bottom := count - 1

	held := raw.Scratch(stride)
	raw.Copy(block, bottom, held, 0, 1, stride)
	raw.Copy(block, 0, block, bottom, 1, stride)

	at := func(k int) T { return *raw.Get[T](block, stride, k) }

	hole, top, idx := 0, 0, 0
	maxNonLeaf := (bottom - 1) >> 1
	for idx < maxNonLeaf {
		idx = 2*idx + 2
		if cmp(at(idx-1), at(idx)) < 0 {
			idx--
		}
		raw.Copy(block, idx, block, hole, 1, stride)
		hole = idx
	}

	// Only a left child remains below the hole on the last level.
	if idx == maxNonLeaf && bottom%2 == 0 {
		raw.Copy(block, bottom-1, block, hole, 1, stride)
		hole = bottom - 1
	}

	siftUp(block, hole, top, held, stride, cmp)
}

// siftUp moves the hole toward top while the held element sorts before the
// parent, then stores the held element in the hole.
func siftUp[T any](block unsafe.Pointer, hole, top int, held unsafe.Pointer, stride int, cmp Compare[T]) {
	v := *(*T)(held)
	for idx := (hole - 1) >> 1; top < hole && cmp(v, *raw.Get[T](block, stride, idx)) < 0; idx = (hole - 1) >> 1 {
		raw.Copy(block, idx, block, hole, 1, stride)
		hole = idx
	}
	raw.SetRaw(block, stride, hole, held)
}
