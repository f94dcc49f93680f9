package dcache

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Load memory-maps (or reads) dir/FileName(n) and validates its header and
// CRC32. Returns ErrCorrupt on any magic/CRC/dimension mismatch,
// ErrUnsupportedVersion on a version mismatch, ErrIo if the file cannot be
// opened.
func Load(dir string, n int) (*Cache, error) {
	path := filepath.Join(dir, FileName(n))
	data, closer, err := mapFile(path)
	if err != nil {
		return nil, err
	}
	c, err := parse(data, closer)
	if err != nil {
		if closer != nil {
			_ = closer()
		}
		return nil, err
	}
	if c.n != n {
		_ = c.Close()
		return nil, ErrCorrupt
	}
	return c, nil
}

// LoadOrBuild implements the §4.3 contract: if dir/FileName(n) exists and is
// valid, it is loaded read-only; otherwise (missing, or ErrCorrupt) it is
// (re)built and atomically written before being returned. ErrIo and
// ErrTooLarge propagate to the caller rather than triggering a rebuild.
// logger receives a Warn event whenever a rebuild is triggered (missing
// file, corruption, or a stale format version); the zero zerolog.Logger
// value is a safe no-op for callers that don't care.
func LoadOrBuild(logger zerolog.Logger, dir string, n int) (*Cache, error) {
	path := filepath.Join(dir, FileName(n))
	if _, err := os.Stat(path); err == nil {
		c, loadErr := Load(dir, n)
		if loadErr == nil {
			return c, nil
		}
		if !errors.Is(loadErr, ErrCorrupt) && !errors.Is(loadErr, ErrUnsupportedVersion) {
			return nil, loadErr
		}
		// fall through to rebuild on corruption or a stale format version
		logger.Warn().Int("n", n).Err(loadErr).Msg("rebuilding derangement cache after load failure")
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	} else {
		logger.Warn().Int("n", n).Msg("derangement cache missing, building")
	}
	return BuildToDir(dir, n)
}
