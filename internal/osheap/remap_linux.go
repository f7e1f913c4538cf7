//go:build linux

package osheap

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// remap grows or shrinks a mapping in place when possible, moving it otherwise.
func remap(data []byte, length int) ([]byte, error) {
	moved, err := unix.Mremap(data, length, unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, errors.Wrapf(ErrNoMemory, "mremap %d -> %d bytes: %v", len(data), length, err)
	}
	return moved, nil
}
