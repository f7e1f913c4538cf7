package algo

import (
	"cmp"
	"slices"
	"testing"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/emirpasic/gods/utils"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nativekit/native/raw"
)

var strategies = []Strategy{Recursive, Iterative}

// load copies vals into a fresh block with the given stride.
func load[T any](vals []T, stride int) unsafe.Pointer {
	b := raw.Scratch(max(len(vals), 1) * stride)
	for i, v := range vals {
		raw.Set(b, stride, i, v)
	}
	return b
}

func dump[T any](b unsafe.Pointer, count, stride int) []T {
	out := make([]T, count)
	raw.CopyOut(b, 0, out, 0, count, stride)
	return out
}

func godsInt(a, b int64) int {
	return utils.Int64Comparator(a, b)
}

func TestSortMatchesSlicesSort(t *testing.T) {
	f := fuzz.NewWithSeed(42).NilChance(0).NumElements(0, 10_000)
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			for range 20 {
				var vals []int64
				f.Fuzz(&vals)
				// Squeeze the range so duplicates show up.
				for i := range vals {
					vals[i] %= 1000
				}

				b := load(vals, 8)
				require.NoError(t, Sort(s, b, len(vals), 8, godsInt))

				want := slices.Clone(vals)
				slices.Sort(want)
				require.Equal(t, want, dump[int64](b, len(vals), 8))
			}
		})
	}
}

func TestSortSmallInputs(t *testing.T) {
	for _, s := range strategies {
		t.Run(s.String(), func(t *testing.T) {
			for _, vals := range [][]int32{
				{},
				{7},
				{2, 1},
				{1, 2},
				{3, 1, 2},
				{5, 5, 5, 5},
				{9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
			} {
				b := load(vals, 4)
				require.NoError(t, Sort(s, b, len(vals), 4, cmp.Compare[int32]))
				want := slices.Clone(vals)
				slices.Sort(want)
				require.Equal(t, want, dump[int32](b, len(vals), 4))
			}
		})
	}
}

func TestSortIsIdempotent(t *testing.T) {
	sorted := make([]int64, 2000)
	for i := range sorted {
		sorted[i] = int64(i / 3)
	}
	equal := slices.Repeat([]int64{42}, 2000)

	for _, s := range strategies {
		for _, vals := range [][]int64{sorted, equal} {
			b := load(vals, 8)
			require.NoError(t, Sort(s, b, len(vals), 8, cmp.Compare[int64]))
			require.Equal(t, vals, dump[int64](b, len(vals), 8))
			require.NoError(t, Sort(s, b, len(vals), 8, cmp.Compare[int64]))
			require.Equal(t, vals, dump[int64](b, len(vals), 8))
		}
	}
}

func TestSortWideStride(t *testing.T) {
	// Slots wider than the element keep their padding untouched.
	const stride = 12
	vals := []int32{4, -1, 9, 0, 3, 3, -7}
	b := load(vals, stride)
	for i := range vals {
		raw.Bytes(b, stride, len(vals))[i*stride+4] = 0xAB
	}

	for _, s := range strategies {
		require.NoError(t, Sort(s, b, len(vals), stride, cmp.Compare[int32]))
		require.Equal(t, []int32{-7, -1, 0, 3, 3, 4, 9}, dump[int32](b, len(vals), stride))
	}
	for i := range vals {
		require.Equal(t, byte(0xAB), raw.Bytes(b, stride, len(vals))[i*stride+4])
	}
}

func TestSortUint256(t *testing.T) {
	f := fuzz.NewWithSeed(7).NilChance(0)
	vals := make([]uint256.Int, 500)
	for i := range vals {
		var words [4]uint64
		f.Fuzz(&words)
		vals[i] = uint256.Int(words)
	}
	byCmp := func(a, b uint256.Int) int { return a.Cmp(&b) }

	for _, s := range strategies {
		b := load(vals, 32)
		require.NoError(t, Sort(s, b, len(vals), 32, byCmp))
		got := dump[uint256.Int](b, len(vals), 32)
		require.True(t, slices.IsSortedFunc(got, byCmp))
	}
}

func TestSortDescendingComparer(t *testing.T) {
	vals := []int64{1, 5, 2, 4, 3}
	desc := func(a, b int64) int { return cmp.Compare(b, a) }
	for _, s := range strategies {
		b := load(vals, 8)
		require.NoError(t, Sort(s, b, len(vals), 8, desc))
		require.Equal(t, []int64{5, 4, 3, 2, 1}, dump[int64](b, len(vals), 8))
	}
}

func TestQuickSortSubrange(t *testing.T) {
	vals := []int64{9, 8, 7, 6, 5, 4}
	b := load(vals, 8)
	require.NoError(t, QuickSort(b, 1, 4, 8, cmp.Compare[int64]))
	require.Equal(t, []int64{9, 5, 6, 7, 8, 4}, dump[int64](b, len(vals), 8))

	// A single-element range is a no-op.
	require.NoError(t, QuickSort(b, 3, 3, 8, cmp.Compare[int64]))
}

func TestQuickSortInvalidRange(t *testing.T) {
	b := load([]int64{1, 2}, 8)
	for _, r := range [][2]int{{-1, 1}, {0, -1}, {1, 0}} {
		err := QuickSort(b, r[0], r[1], 8, cmp.Compare[int64])
		require.True(t, errors.Is(err, ErrInvalidRange), "range %v", r)
	}
	require.True(t, errors.Is(Sort(Recursive, b, -1, 8, cmp.Compare[int64]), ErrInvalidRange))
}

func TestQuickSortIterativeNoop(t *testing.T) {
	b := load([]int64{3, 2, 1}, 8)
	QuickSortIterative(b, 0, 8, cmp.Compare[int64])
	QuickSortIterative(b, 1, 8, cmp.Compare[int64])
	require.Equal(t, []int64{3, 2, 1}, dump[int64](b, 3, 8))
}

func TestSortUnknownStrategy(t *testing.T) {
	b := load([]int64{2, 1}, 8)
	require.Error(t, Sort(Strategy(9), b, 2, 8, cmp.Compare[int64]))
	require.Equal(t, "unknown", Strategy(9).String())
}
