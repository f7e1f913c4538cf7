package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nativekit/cmd/nkbench/workload"
	"github.com/joshuapare/nativekit/native/alloc"
)

// captureOutput redirects command output into a buffer while fn runs.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	orig := stdout
	stdout = &buf
	defer func() { stdout = orig }()
	err := fn()
	return buf.String(), err
}

func withJSON(t *testing.T) {
	t.Helper()
	jsonOut = true
	t.Cleanup(func() { jsonOut = false })
}

func trackedRegistry(t *testing.T) (*alloc.Registry, *alloc.Tracking) {
	t.Helper()
	r := alloc.NewRegistry()
	tr := alloc.NewTracking(alloc.NewGoHeap())
	_, err := r.Register(alloc.NameGoHeap, tr)
	require.NoError(t, err)
	_, err = r.Register(alloc.NameMmap, alloc.NewMmap())
	require.NoError(t, err)
	return r, tr
}

func TestRunWorkloadsEveryContainer(t *testing.T) {
	r, tr := trackedRegistry(t)

	var ws []workload.Workload
	for _, kind := range []string{workload.Array, workload.List, workload.Queue, workload.Stack, workload.PriorityQueue} {
		ws = append(ws, workload.Workload{
			Name: kind, Container: kind, Allocator: alloc.NameGoHeap, Count: 3000, Stride: 8,
		})
	}
	ws = append(ws,
		workload.Workload{Name: "array-iter", Container: workload.Array, Allocator: alloc.NameMmap,
			Count: 2000, Stride: 16, Sort: workload.SortIterative},
		workload.Workload{Name: "list-rec", Container: workload.List, Allocator: alloc.NameGoHeap,
			Count: 2000, Stride: 8, Sort: workload.SortRecursive},
	)

	results, err := runWorkloads(r, &workload.File{Seed: 42, Workloads: ws})
	require.NoError(t, err)
	require.Len(t, results, len(ws))
	for i, res := range results {
		assert.Equal(t, ws[i].Name, res.Name)
		assert.Equal(t, ws[i].Count, res.Count)
	}
	require.Zero(t, tr.LiveBlocks(), "every workload releases its block")
}

func TestRunWorkloadsUnknownAllocator(t *testing.T) {
	r, _ := trackedRegistry(t)
	f := &workload.File{Workloads: []workload.Workload{
		{Name: "w", Container: workload.List, Allocator: "nope", Count: 1, Stride: 8},
	}}
	_, err := runWorkloads(r, f)
	require.ErrorContains(t, err, `unknown allocator "nope"`)
}

func TestInputsDeterministic(t *testing.T) {
	require.Equal(t, inputs(7, 1, 50), inputs(7, 1, 50))
	require.NotEqual(t, inputs(7, 1, 50), inputs(7, 2, 50))
}

func TestRunFileJSON(t *testing.T) {
	withJSON(t)
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 3
workloads:
  - name: stack-small
    container: stack
    allocator: goheap
    count: 100
`), 0o644))

	out, err := captureOutput(t, func() error { return runFile(path) })
	require.NoError(t, err)

	var results []result
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	require.Equal(t, "stack-small", results[0].Name)
	require.Equal(t, 8, results[0].Stride)
}

func TestRunFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
workloads:
  - name: pq
    container: pqueue
    allocator: goheap
    count: 12345
`), 0o644))

	out, err := captureOutput(t, func() error { return runFile(path) })
	require.NoError(t, err)
	require.Contains(t, out, "WORKLOAD")
	require.Contains(t, out, "12,345")
}

func TestAllocatorsCommand(t *testing.T) {
	out, err := captureOutput(t, func() error { return runAllocators(alloc.Default()) })
	require.NoError(t, err)
	require.Contains(t, out, alloc.NameGoHeap)
	require.Contains(t, out, alloc.NameMmap)

	withJSON(t)
	out, err = captureOutput(t, func() error { return runAllocators(alloc.Default()) })
	require.NoError(t, err)
	var infos []allocatorInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.GreaterOrEqual(t, len(infos), 3)
	require.Equal(t, allocatorInfo{Handle: 0, Name: alloc.NameGoHeap}, infos[0])
}

func TestSampleWorkloadFile(t *testing.T) {
	f, err := workload.Load(filepath.Join("testdata", "workloads.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Workloads, 5)
	for _, w := range f.Workloads {
		_, ok := alloc.Default().Find(w.Allocator)
		require.True(t, ok, "allocator %q registered", w.Allocator)
	}
}
