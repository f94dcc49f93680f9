package rectangle

import "errors"

// Sentinel errors returned by this package's enumeration entry points.
// Callers should use errors.Is against these rather than string-matching.
var (
	// ErrInvalidDimensions is returned when r < 2, n < 2, or r > n.
	ErrInvalidDimensions = errors.New("rectangle: invalid dimensions")

	// ErrFirstColumn is returned when a caller-supplied first-column
	// constraint vector is malformed: wrong length, fc[0] != 1, values not
	// distinct, or values outside {2,...,n}.
	ErrFirstColumn = errors.New("rectangle: invalid first-column constraint")

	// ErrCompletionMissing names the case where completion fusion finds no
	// forced completion row. Enumerate does not return it: a rectangle
	// without a forced completion row adds nothing to FusePos/FuseNeg, and
	// when several rows remain the lowest-indexed one is used.
	ErrCompletionMissing = errors.New("rectangle: forced completion row not found")

	// ErrCountOverflow signals that a count overflowed the 128-bit
	// accumulator, either while adding up rectangles or partial sums or
	// while scaling a per-first-column count by (r-1)!.
	ErrCountOverflow = errors.New("rectangle: count overflows the 128-bit accumulator")
)
