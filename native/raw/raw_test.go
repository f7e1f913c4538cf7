package raw

import (
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int32
}

type padded struct {
	A int64
	B int8
}

// block returns 8-byte aligned backing storage for count elements of stride bytes.
func block(count, stride int) unsafe.Pointer {
	return Scratch(count * stride)
}

func TestGetSetWithWideStride(t *testing.T) {
	const stride = 12 // wider than point
	b := block(4, stride)

	for i := range 4 {
		Set(b, stride, i, point{X: int32(i), Y: int32(-i)})
	}
	for i := range 4 {
		require.Equal(t, point{X: int32(i), Y: int32(-i)}, *Get[point](b, stride, i))
	}

	// Get returns a mutable view.
	Get[point](b, stride, 2).X = 99
	require.Equal(t, int32(99), Get[point](b, stride, 2).X)

	// Slot padding beyond the element stays untouched.
	pad := Bytes(b, stride, 4)[stride*1+8 : stride*2]
	require.Equal(t, []byte{0, 0, 0, 0}, pad)
}

func TestSetRaw(t *testing.T) {
	b := block(3, 8)
	v := int64(0x1122334455667788)
	SetRaw(b, 8, 1, unsafe.Pointer(&v))
	require.Equal(t, v, *Get[int64](b, 8, 1))
	require.Zero(t, *Get[int64](b, 8, 0))
	require.Zero(t, *Get[int64](b, 8, 2))
}

func TestIndexOf(t *testing.T) {
	b := block(5, 4)
	for i, v := range []int32{5, 7, 9, 7, 1} {
		Set(b, 4, i, v)
	}

	assert.Equal(t, 1, IndexOf[int32](b, 4, 5, 7))
	assert.Equal(t, 4, IndexOf[int32](b, 4, 5, 1))
	assert.Equal(t, -1, IndexOf[int32](b, 4, 5, 42))
	assert.Equal(t, -1, IndexOf[int32](b, 4, 0, 5), "empty range finds nothing")

	odd := func(a, b int32) bool { return a%2 == b%2 && b > a }
	assert.Equal(t, 1, IndexOfFunc[int32](b, 4, 5, 5, odd))
	assert.Equal(t, -1, IndexOfFunc[int32](b, 4, 5, 9, odd))
}

func TestCopyOverlapping(t *testing.T) {
	b := block(6, 8)
	for i := range 6 {
		Set(b, 8, i, int64(i))
	}

	// Shift right by one, as an insert does.
	Copy(b, 1, b, 2, 4, 8)
	require.Equal(t, []int64{0, 1, 1, 2, 3, 4}, collect[int64](b, 8, 6))

	// Shift left by one, as a removal does.
	Copy(b, 2, b, 1, 4, 8)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 4}, collect[int64](b, 8, 6))

	// Zero count is a no-op.
	Copy(b, 0, b, 3, 0, 8)
	require.Equal(t, []int64{0, 1, 2, 3, 4, 4}, collect[int64](b, 8, 6))
}

func TestCopyOut(t *testing.T) {
	b := block(4, 8)
	for i := range 4 {
		Set(b, 8, i, int64(10+i))
	}
	dst := make([]int64, 6)
	CopyOut(b, 1, dst, 2, 3, 8)
	require.Equal(t, []int64{0, 0, 11, 12, 13, 0}, dst)

	// Stride wider than the element takes the element-wise path.
	w := block(3, 16)
	for i := range 3 {
		Set(w, 16, i, point{X: int32(i), Y: 1})
	}
	pts := make([]point, 3)
	CopyOut(w, 0, pts, 0, 3, 16)
	require.Equal(t, []point{{0, 1}, {1, 1}, {2, 1}}, pts)
}

func TestCopyOutMisaligned(t *testing.T) {
	want := []int64{-1, 1 << 40, 3, -(1 << 50)}

	// Packed int64s starting one byte past an 8-byte boundary.
	b := block(len(want)+1, 8)
	src := unsafe.Add(b, 1)
	for i, v := range want {
		copy(Bytes(src, 8, len(want))[i*8:], (*[8]byte)(unsafe.Pointer(&v))[:])
	}
	got := make([]int64, len(want))
	CopyOut(src, 0, got, 0, len(want), 8)
	require.Equal(t, want, got)

	// A stride of 5 leaves every element after the first unaligned.
	vals := []int32{7, -8, 9, 1 << 30}
	w := block(len(vals), 5)
	for i, v := range vals {
		copy(Bytes(w, 5, len(vals))[i*5:], (*[4]byte)(unsafe.Pointer(&v))[:])
	}
	out := make([]int32, len(vals)+1)
	CopyOut(w, 0, out, 1, len(vals), 5)
	require.Equal(t, append([]int32{0}, vals...), out)
}

func TestClear(t *testing.T) {
	b := block(4, 4)
	for i := range 4 {
		Set(b, 4, i, int32(i+1))
	}
	Clear(Offset(b, 4, 1), 2, 4)
	require.Equal(t, []int32{1, 0, 0, 4}, collect[int32](b, 4, 4))
	Clear(b, 0, 4)
	require.Nil(t, Bytes(b, 4, 0))
}

func TestSwap(t *testing.T) {
	b := block(2, 16)
	Set(b, 16, 0, padded{A: 1, B: 2})
	Set(b, 16, 1, padded{A: 3, B: 4})

	Swap(Offset(b, 16, 0), Offset(b, 16, 1), 16)
	require.Equal(t, padded{A: 3, B: 4}, *Get[padded](b, 16, 0))
	require.Equal(t, padded{A: 1, B: 2}, *Get[padded](b, 16, 1))

	Swap(Offset(b, 16, 0), Offset(b, 16, 0), 16)
	require.Equal(t, padded{A: 3, B: 4}, *Get[padded](b, 16, 0), "self swap is a no-op")
}

func TestSwapWideStrideUsesHeapScratch(t *testing.T) {
	const stride = 1024
	b := block(2, stride)
	left := Bytes(b, stride, 2)[:stride]
	right := Bytes(b, stride, 2)[stride:]
	for i := range left {
		left[i] = 1
		right[i] = 2
	}
	Swap(Offset(b, stride, 0), Offset(b, stride, 1), stride)
	require.Equal(t, byte(2), left[0])
	require.Equal(t, byte(2), left[stride-1])
	require.Equal(t, byte(1), right[0])
	require.Equal(t, byte(1), right[stride-1])
}

func TestScratchAlignment(t *testing.T) {
	for _, stride := range []int{0, 1, 7, 8, 9, 33} {
		p := Scratch(stride)
		require.NotNil(t, p)
		require.Zero(t, uintptr(p)%8)
	}
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, 8, SizeOf[int64]())
	assert.Equal(t, 8, SizeOf[point]())
	assert.Equal(t, 16, SizeOf[padded]())
	assert.Equal(t, 0, SizeOf[struct{}]())
	assert.Equal(t, 24, SizeOf[[3]point]())
	// Cached values are stable.
	assert.Equal(t, SizeOf[padded](), SizeOf[padded]())
}

func TestCheckElem(t *testing.T) {
	require.NoError(t, CheckElem[int]())
	require.NoError(t, CheckElem[point]())
	require.NoError(t, CheckElem[[4]uint64]())
	require.NoError(t, CheckElem[[0]*int]())
	require.NoError(t, CheckElem[complex128]())

	type withString struct {
		ID   int
		Name string
	}
	type nested struct {
		P point
		W [2]withString
	}

	for name, err := range map[string]error{
		"pointer":   CheckElem[*int](),
		"slice":     CheckElem[[]byte](),
		"string":    CheckElem[string](),
		"map":       CheckElem[map[int]int](),
		"interface": CheckElem[any](),
		"func":      CheckElem[func()](),
		"chan":      CheckElem[chan int](),
		"field":     CheckElem[withString](),
		"nested":    CheckElem[nested](),
	} {
		require.True(t, errors.Is(err, ErrManagedElem), name)
	}
	require.Contains(t, CheckElem[nested]().Error(), "W.")
}

func collect[T any](b unsafe.Pointer, stride, count int) []T {
	out := make([]T, count)
	CopyOut(b, 0, out, 0, count, stride)
	return out
}
