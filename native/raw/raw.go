// Package raw reads and writes elements of a runtime-known stride inside an
// untyped block.
//
// Every primitive takes the block address, the element stride in bytes, and an
// element index; element i lives at byte offset i*stride. None of them check
// bounds: containers validate indexes before calling in. Typed accessors require
// SizeOf[T]() <= stride and a pointer-free T (see CheckElem).
package raw

import (
	"unsafe"
)

// Offset returns the address of element index.
func Offset(block unsafe.Pointer, stride, index int) unsafe.Pointer {
	return unsafe.Add(block, index*stride)
}

// Bytes returns a byte view over count elements starting at block.
func Bytes(block unsafe.Pointer, stride, count int) []byte {
	if count == 0 || stride == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(block), count*stride)
}

// Get returns a mutable view of element index.
func Get[T any](block unsafe.Pointer, stride, index int) *T {
	return (*T)(Offset(block, stride, index))
}

// Set writes v into element index. Bytes of the slot beyond SizeOf[T]() are left
// untouched.
func Set[T any](block unsafe.Pointer, stride, index int, v T) {
	*(*T)(Offset(block, stride, index)) = v
}

// SetRaw copies one stride-sized element from src into element index.
func SetRaw(block unsafe.Pointer, stride, index int, src unsafe.Pointer) {
	Copy(src, 0, block, index, 1, stride)
}

// IndexOf returns the index of the first element equal to v, or -1.
func IndexOf[T comparable](block unsafe.Pointer, stride, count int, v T) int {
	for i := range count {
		if *Get[T](block, stride, i) == v {
			return i
		}
	}
	return -1
}

// IndexOfFunc returns the index of the first element e with eq(v, e), or -1.
func IndexOfFunc[T any](block unsafe.Pointer, stride, count int, v T, eq func(a, b T) bool) int {
	for i := range count {
		if eq(v, *Get[T](block, stride, i)) {
			return i
		}
	}
	return -1
}

// Copy moves count elements from src[srcStart:] to dst[dstStart:]. Source and
// destination may overlap, including within one block.
func Copy(src unsafe.Pointer, srcStart int, dst unsafe.Pointer, dstStart, count, stride int) {
	n := count * stride
	if n <= 0 {
		return
	}
	s := unsafe.Slice((*byte)(Offset(src, stride, srcStart)), n)
	d := unsafe.Slice((*byte)(Offset(dst, stride, dstStart)), n)
	copy(d, s)
}

// CopyOut copies count elements from src[srcStart:] into dst[dstStart:].
// Sources that are not aligned for T are copied byte-wise.
func CopyOut[T any](src unsafe.Pointer, srcStart int, dst []T, dstStart, count, stride int) {
	if count <= 0 {
		return
	}
	var zero T
	size := SizeOf[T]()
	first := Offset(src, stride, srcStart)
	if stride == size && uintptr(first)%unsafe.Alignof(zero) == 0 {
		s := unsafe.Slice((*T)(first), count)
		copy(dst[dstStart:dstStart+count], s)
		return
	}
	for i := range count {
		d := unsafe.Slice((*byte)(unsafe.Pointer(&dst[dstStart+i])), size)
		copy(d, unsafe.Slice((*byte)(Offset(src, stride, srcStart+i)), size))
	}
}

// Clear zero-fills count elements starting at block.
func Clear(block unsafe.Pointer, count, stride int) {
	clear(Bytes(block, stride, count))
}

// scratchWords is the size of Swap's stack scratch in 8-byte words.
const scratchWords = 32

// Swap exchanges the stride-sized elements at a and b. It is a no-op when a == b.
func Swap(a, b unsafe.Pointer, stride int) {
	if a == b || stride <= 0 {
		return
	}
	var local [scratchWords]uint64
	var tmp []byte
	if stride <= scratchWords*8 {
		tmp = unsafe.Slice((*byte)(unsafe.Pointer(&local[0])), stride)
	} else {
		tmp = make([]byte, stride)
	}
	as := unsafe.Slice((*byte)(a), stride)
	bs := unsafe.Slice((*byte)(b), stride)
	copy(tmp, as)
	copy(as, bs)
	copy(bs, tmp)
}

// Scratch returns an 8-byte aligned, zeroed buffer large enough for one element
// of stride bytes. Algorithms use it to hold a pivot or a displaced element.
func Scratch(stride int) unsafe.Pointer {
	words := make([]uint64, max((stride+7)/8, 1))
	return unsafe.Pointer(unsafe.SliceData(words))
}
