//go:build !linux && !darwin

package dcache

import (
	"fmt"
	"os"
)

// mapFile on platforms without a syscall.Mmap binding (windows, plan9, wasm)
// falls back to a plain read: correctness is identical, only the "avoid a
// copy into the process heap" benefit is lost.
func mapFile(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dcache: %v: %w", err, ErrIo)
	}
	return data, func() error { return nil }, nil
}
