//go:build unix && !linux

package osheap

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/unix"
)

// remap emulates mremap by mapping a new region, copying, and unmapping the old one.
func remap(data []byte, length int) ([]byte, error) {
	moved, err := mapAnon(length)
	if err != nil {
		return nil, err
	}
	copy(moved, data)
	if err := unix.Munmap(data); err != nil {
		_ = unix.Munmap(moved)
		return nil, errors.Wrapf(err, "osheap: munmap during remap")
	}
	return moved, nil
}
