package container

import (
	"cmp"
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nativekit/native/alloc"
)

func TestPriorityQueueOrdering(t *testing.T) {
	forEachBackend(t, func(t *testing.T, r *alloc.Registry, b backend) {
		pq, err := NewPriorityQueue(b.handle, cmp.Compare[int64], WithRegistry(r), WithCapacity(2))
		require.NoError(t, err)
		defer func() { require.NoError(t, pq.Close()) }()

		vals := []int64{5, 1, 4, 1, 9, -2, 6, 5, 3}
		for _, v := range vals {
			require.NoError(t, pq.Enqueue(v))
		}
		top, err := pq.Peek()
		require.NoError(t, err)
		require.Equal(t, int64(-2), top)

		var got []int64
		for !pq.IsEmpty() {
			v, err := pq.Dequeue()
			require.NoError(t, err)
			got = append(got, v)
		}
		want := slices.Clone(vals)
		slices.Sort(want)
		require.Equal(t, want, got)
	})
}

func TestPriorityQueueMatchesBinaryHeap(t *testing.T) {
	r, _ := goHeap(t)
	pq, err := NewPriorityQueue(alloc.GoHeapHandle, cmp.Compare[int64], WithRegistry(r))
	require.NoError(t, err)
	defer pq.Close()
	ref := binaryheap.NewWith(utils.Int64Comparator)

	f := fuzz.NewWithSeed(13).NilChance(0)
	for range 4000 {
		var op uint8
		var v int64
		f.Fuzz(&op)
		f.Fuzz(&v)

		if op%4 == 0 {
			want, ok := ref.Pop()
			got, err := pq.Dequeue()
			if !ok {
				require.True(t, errors.Is(err, ErrOutOfRange))
				continue
			}
			require.NoError(t, err)
			require.Equal(t, want, got)
			continue
		}
		ref.Push(v)
		require.NoError(t, pq.Enqueue(v))
	}
	require.Equal(t, ref.Size(), pq.Len())
}

func TestPriorityQueueCustomOrder(t *testing.T) {
	r, _ := goHeap(t)
	byScoreDesc := func(a, b wide) int { return cmp.Compare(b.Score, a.Score) }
	pq, err := NewPriorityQueue(alloc.GoHeapHandle, byScoreDesc, WithRegistry(r))
	require.NoError(t, err)
	defer pq.Close()

	for i, s := range []float64{0.5, 2.25, -1, 2} {
		require.NoError(t, pq.Enqueue(wide{ID: int64(i), Score: s}))
	}
	require.Len(t, slices.Collect(pq.Values()), 4)

	var ids []int64
	for !pq.IsEmpty() {
		v, err := pq.Dequeue()
		require.NoError(t, err)
		ids = append(ids, v.ID)
	}
	require.Equal(t, []int64{1, 3, 0, 2}, ids)
}

func TestPriorityQueueDisposedAndMove(t *testing.T) {
	r, tr := goHeap(t)
	_, err := NewPriorityQueue[int64](alloc.GoHeapHandle, nil, WithRegistry(r))
	require.True(t, errors.Is(err, ErrInvalidArgument))

	src, err := NewPriorityQueue(alloc.GoHeapHandle, cmp.Compare[int64], WithRegistry(r))
	require.NoError(t, err)
	require.NoError(t, src.Enqueue(3))
	require.NoError(t, src.Enqueue(1))

	var dst PriorityQueue[int64]
	require.NoError(t, src.MoveTo(&dst))
	require.True(t, errors.Is(src.Enqueue(2), ErrDisposed))
	_, err = src.Peek()
	require.True(t, errors.Is(err, ErrOutOfRange))

	require.NoError(t, dst.Enqueue(2))
	v, err := dst.Dequeue()
	require.NoError(t, err)
	require.Equal(t, int64(1), v)

	require.True(t, errors.Is(src.Clear(), ErrDisposed))
	require.NoError(t, dst.Clear())
	require.True(t, dst.IsEmpty())
	require.NoError(t, dst.Close())
	require.Zero(t, tr.LiveBlocks())
}
