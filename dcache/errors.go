// Package dcache: sentinel error set for cache build/load/validate failures.
package dcache

import "errors"

var (
	// ErrCorrupt indicates a bad magic, CRC mismatch, or dimension mismatch
	// on load. Callers should rebuild; LoadOrBuild does this automatically.
	ErrCorrupt = errors.New("dcache: corrupt cache file")

	// ErrIo indicates the cache directory is missing or unwritable, or an
	// I/O error occurred reading/writing the cache file.
	ErrIo = errors.New("dcache: io error")

	// ErrTooLarge indicates n exceeds MaxN, the implementation cap.
	ErrTooLarge = errors.New("dcache: n exceeds implementation limit")

	// ErrUnsupportedVersion indicates the file's version field does not
	// match the version this build knows how to read. Per the format's
	// policy, future versions are refused rather than silently migrated.
	ErrUnsupportedVersion = errors.New("dcache: unsupported cache format version")
)

// MaxN is the largest n the cache format and enumerator support. The
// on-disk header's count and section-offset fields are u32 (format.go). For
// n=13 the count D(13) = 2,290,792,932 still fits, but the derangement
// section alone is 13*D(13) = 29,780,308,116 bytes, so the signs and
// position-value offsets no longer fit a u32. n=12 is the largest n whose
// offsets fit (the position-value section starts at byte 2,290,792,997).
// n>12 is refused outright rather than widened, since widening those fields
// would change the on-disk format.
const MaxN = 12
