package algo

import (
	"cmp"
	"testing"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nativekit/native/raw"
)

// heapOK reports whether [0, count) satisfies the min-heap property.
func heapOK(vals []int64) bool {
	for i := 1; i < len(vals); i++ {
		if vals[(i-1)/2] > vals[i] {
			return false
		}
	}
	return true
}

func TestPushPopHeapMatchesBinaryHeap(t *testing.T) {
	f := fuzz.NewWithSeed(3).NilChance(0).NumElements(1, 2000)
	for range 10 {
		var vals []int64
		f.Fuzz(&vals)

		b := raw.Scratch(len(vals) * 8)
		ref := binaryheap.NewWith(utils.Int64Comparator)

		for i, v := range vals {
			raw.Set(b, 8, i, v)
			PushHeap(b, i+1, 8, cmp.Compare[int64])
			ref.Push(v)
			require.True(t, heapOK(dump[int64](b, i+1, 8)))
		}

		for n := len(vals); n > 0; n-- {
			PopHeap(b, n, 8, cmp.Compare[int64])
			got := *raw.Get[int64](b, 8, n-1)
			want, ok := ref.Pop()
			require.True(t, ok)
			require.Equal(t, want, got)
			require.True(t, heapOK(dump[int64](b, n-1, 8)))
		}
	}
}

func TestHeapSmallCounts(t *testing.T) {
	b := load([]int64{5}, 8)
	PushHeap(b, 1, 8, cmp.Compare[int64])
	PopHeap(b, 1, 8, cmp.Compare[int64])
	require.Equal(t, int64(5), *raw.Get[int64](b, 8, 0))

	PushHeap(b, 0, 8, cmp.Compare[int64])
	PopHeap(b, 0, 8, cmp.Compare[int64])
}

func TestPopHeapEvenBottom(t *testing.T) {
	// Sizes where the last interior node has only a left child.
	for _, n := range []int{3, 5, 7, 11} {
		vals := make([]int64, n)
		b := raw.Scratch(n * 8)
		for i := range n {
			vals[i] = int64((i * 7919) % 13)
			raw.Set(b, 8, i, vals[i])
			PushHeap(b, i+1, 8, cmp.Compare[int64])
		}
		var out []int64
		for k := n; k > 0; k-- {
			PopHeap(b, k, 8, cmp.Compare[int64])
			out = append(out, *raw.Get[int64](b, 8, k-1))
		}
		require.IsNonDecreasing(t, out)
	}
}
