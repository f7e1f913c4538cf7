package container

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/nativekit/native/alloc"
)

// backend is one tracked allocator registered in a test registry.
type backend struct {
	name    string
	handle  alloc.Handle
	tracker *alloc.Tracking
}

// testRegistry registers every built-in backend wrapped in alloc.Tracking.
func testRegistry(t *testing.T) (*alloc.Registry, []backend) {
	t.Helper()
	r := alloc.NewRegistry()
	inner := []alloc.Allocator{alloc.NewGoHeap(), alloc.NewPlatform(), alloc.NewMmap()}
	names := []string{alloc.NameGoHeap, alloc.NamePlatform, alloc.NameMmap}

	var out []backend
	for i, a := range inner {
		tr := alloc.NewTracking(a)
		h, err := r.Register(names[i], tr)
		require.NoError(t, err)
		out = append(out, backend{name: names[i], handle: h, tracker: tr})
	}
	return r, out
}

// goHeap returns a registry with a single tracked Go heap backend at handle 0.
func goHeap(t *testing.T) (*alloc.Registry, *alloc.Tracking) {
	t.Helper()
	r := alloc.NewRegistry()
	tr := alloc.NewTracking(alloc.NewGoHeap())
	_, err := r.Register(alloc.NameGoHeap, tr)
	require.NoError(t, err)
	return r, tr
}

// forEachBackend runs fn once per backend, skipping the platform heap when the
// host refuses to map memory.
func forEachBackend(t *testing.T, fn func(t *testing.T, r *alloc.Registry, b backend)) {
	r, backends := testRegistry(t)
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			probe, err := r.Malloc(16, b.handle)
			if errors.Is(err, alloc.ErrOutOfMemory) && b.handle == alloc.PlatformHandle {
				t.Skipf("native heap unavailable: %v", err)
			}
			require.NoError(t, err)
			require.NoError(t, r.Free(probe, b.handle))

			fn(t, r, b)
			require.Zero(t, b.tracker.LiveBlocks(), "leaked blocks")
		})
	}
}

// wide is a 24-byte pointer-free element.
type wide struct {
	ID    int64
	Score float64
	Tag   [8]byte
}
