package main

import (
	"cmp"
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/queues/arrayqueue"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"

	"github.com/joshuapare/nativekit/cmd/nkbench/workload"
	"github.com/joshuapare/nativekit/native/algo"
	"github.com/joshuapare/nativekit/native/alloc"
	"github.com/joshuapare/nativekit/native/container"
)

// digest folds an element sequence into one value so native and managed runs
// can be compared without keeping both outputs.
type digest uint64

func (d *digest) add(v int64) { *d = *d*31 + digest(v) }

func strategy(name string) algo.Strategy {
	if name == workload.SortIterative {
		return algo.Iterative
	}
	return algo.Recursive
}

// runNative exercises the native container for w and digests its output order.
func runNative(r *alloc.Registry, h alloc.Handle, w workload.Workload, vals []int64) (digest, error) {
	opts := []container.Option{
		container.WithRegistry(r),
		container.WithStride(w.Stride),
	}
	var d digest

	switch w.Container {
	case workload.Array:
		a, err := container.NewArray[int64](len(vals), h, opts...)
		if err != nil {
			return 0, err
		}
		defer a.Close()
		for i, v := range vals {
			if err := a.Set(i, v); err != nil {
				return 0, err
			}
		}
		if w.Sort != "" {
			if err := a.SortWith(strategy(w.Sort), cmp.Compare[int64]); err != nil {
				return 0, err
			}
		}
		for v := range a.Values() {
			d.add(v)
		}

	case workload.List:
		l, err := container.NewList[int64](h, opts...)
		if err != nil {
			return 0, err
		}
		defer l.Close()
		for _, v := range vals {
			if err := l.Add(v); err != nil {
				return 0, err
			}
		}
		if w.Sort != "" {
			if err := l.SortWith(strategy(w.Sort), cmp.Compare[int64]); err != nil {
				return 0, err
			}
		}
		for v := range l.Values() {
			d.add(v)
		}

	case workload.Queue:
		q, err := container.NewQueue[int64](h, opts...)
		if err != nil {
			return 0, err
		}
		defer q.Close()
		for _, v := range vals {
			if err := q.Enqueue(v); err != nil {
				return 0, err
			}
		}
		for !q.IsEmpty() {
			v, err := q.Dequeue()
			if err != nil {
				return 0, err
			}
			d.add(v)
		}

	case workload.Stack:
		s, err := container.NewStack[int64](h, opts...)
		if err != nil {
			return 0, err
		}
		defer s.Close()
		for _, v := range vals {
			if err := s.Push(v); err != nil {
				return 0, err
			}
		}
		for !s.IsEmpty() {
			v, err := s.Pop()
			if err != nil {
				return 0, err
			}
			d.add(v)
		}

	case workload.PriorityQueue:
		pq, err := container.NewPriorityQueue(h, cmp.Compare[int64], opts...)
		if err != nil {
			return 0, err
		}
		defer pq.Close()
		for _, v := range vals {
			if err := pq.Enqueue(v); err != nil {
				return 0, err
			}
		}
		for !pq.IsEmpty() {
			v, err := pq.Dequeue()
			if err != nil {
				return 0, err
			}
			d.add(v)
		}

	default:
		return 0, fmt.Errorf("unknown container %q", w.Container)
	}
	return d, nil
}

// runManaged performs the same work on the gods container for w.
func runManaged(w workload.Workload, vals []int64) digest {
	var d digest

	switch w.Container {
	case workload.Array:
		a := make([]interface{}, len(vals))
		for i, v := range vals {
			a[i] = v
		}
		if w.Sort != "" {
			utils.Sort(a, utils.Int64Comparator)
		}
		for _, v := range a {
			d.add(v.(int64))
		}

	case workload.List:
		l := arraylist.New()
		for _, v := range vals {
			l.Add(v)
		}
		if w.Sort != "" {
			l.Sort(utils.Int64Comparator)
		}
		l.Each(func(_ int, v interface{}) { d.add(v.(int64)) })

	case workload.Queue:
		q := arrayqueue.New()
		for _, v := range vals {
			q.Enqueue(v)
		}
		for v, ok := q.Dequeue(); ok; v, ok = q.Dequeue() {
			d.add(v.(int64))
		}

	case workload.Stack:
		s := arraystack.New()
		for _, v := range vals {
			s.Push(v)
		}
		for v, ok := s.Pop(); ok; v, ok = s.Pop() {
			d.add(v.(int64))
		}

	case workload.PriorityQueue:
		h := binaryheap.NewWith(utils.Int64Comparator)
		for _, v := range vals {
			h.Push(v)
		}
		for v, ok := h.Pop(); ok; v, ok = h.Pop() {
			d.add(v.(int64))
		}
	}
	return d
}
