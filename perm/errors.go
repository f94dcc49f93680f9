// Package perm: sentinel error set.
// All public functions that validate caller input return these sentinels via
// errors.Is-compatible wrapping; functions that document the input as
// caller-guaranteed (see doc comments) never validate and never return them.
package perm

import "errors"

var (
	// ErrInvalidPermutation is returned by SignChecked when the input is not
	// a permutation of 1..len(p).
	ErrInvalidPermutation = errors.New("perm: input is not a permutation")

	// ErrNegativeN is returned by DerangementCount for n < 0.
	ErrNegativeN = errors.New("perm: n must be non-negative")

	// ErrNonSquareMatrix is returned by Determinant when the input matrix is
	// not square.
	ErrNonSquareMatrix = errors.New("perm: matrix is not square")
)
