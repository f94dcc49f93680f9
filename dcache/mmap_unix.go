//go:build linux || darwin

package dcache

import (
	"fmt"
	"os"
	"syscall"
)

// mapFile memory-maps path read-only and returns its bytes plus a closer
// that unmaps them. Mirrors the mmap-then-validate-header idiom used for
// memory-mapped binary caches elsewhere in the ecosystem (a read-only,
// shared mapping is the cheapest way to make a multi-gigabyte cache file
// available to every worker without copying it into each goroutine's heap).
func mapFile(path string) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	size := fi.Size()
	if size < headerSize {
		return nil, nil, ErrCorrupt
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		// Falling back to a plain read keeps LoadOrBuild usable on
		// filesystems that refuse mmap (some overlay/network mounts).
		return readFileFallback(path)
	}
	closer := func() error { return syscall.Munmap(data) }
	return data, closer, nil
}

func readFileFallback(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	return data, func() error { return nil }, nil
}
