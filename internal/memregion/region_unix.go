//go:build unix

package memregion

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Acquire maps a new anonymous, private region of at least size bytes.
func Acquire(size int) (*Region, error) {
	if size <= 0 {
		size = 1
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("memregion: mmap anon failed: %w", err)
	}
	return &Region{
		bytes: data,
		release: func() error {
			return unix.Munmap(data)
		},
	}, nil
}
