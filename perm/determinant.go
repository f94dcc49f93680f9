package perm

import "fmt"

// Determinant computes the exact signed integer determinant of a square
// matrix m (m[row][col]) via the Bareiss fraction-free elimination algorithm.
// Unlike floating-point Gaussian elimination, every intermediate entry stays
// an exact integer, so the result is exact for any input whose entries and
// intermediate minors fit in int64 — true for the small (n <= 16) matrices
// this package is used on (permutation matrices and their rectangle-sign
// cross-checks).
//
// Returns ErrNonSquareMatrix if rows are not all the same length as the
// matrix is wide. An empty matrix (n == 0) has determinant 1 (the empty
// product), matching the identity matrix convention.
//
// Complexity: O(n^3) time, O(n^2) space (the input is copied before the
// in-place elimination mutates it).
func Determinant(m [][]int64) (int64, error) {
	n := len(m)
	for _, row := range m {
		if len(row) != n {
			return 0, fmt.Errorf("perm: determinant: %w", ErrNonSquareMatrix)
		}
	}
	if n == 0 {
		return 1, nil
	}

	// Work on a private copy; Bareiss elimination mutates in place.
	a := make([][]int64, n)
	for i := range m {
		a[i] = append([]int64(nil), m[i]...)
	}

	var prevPivot int64 = 1
	sign := int64(1)

	var k, i, j int
	for k = 0; k < n-1; k++ {
		if a[k][k] == 0 {
			// Find a row below with a non-zero pivot column entry and swap.
			swapped := false
			for i = k + 1; i < n; i++ {
				if a[i][k] != 0 {
					a[k], a[i] = a[i], a[k]
					sign = -sign
					swapped = true
					break
				}
			}
			if !swapped {
				// Entire column below (and at) the pivot is zero: singular.
				return 0, nil
			}
		}
		for i = k + 1; i < n; i++ {
			for j = k + 1; j < n; j++ {
				a[i][j] = (a[i][j]*a[k][k] - a[i][k]*a[k][j]) / prevPivot
			}
		}
		prevPivot = a[k][k]
	}

	return sign * a[n-1][n-1], nil
}

// PermutationMatrix builds the n x n 0/1 permutation matrix for p (a
// permutation of 1..n, 1-based values): row i has a 1 at column p[i]-1.
// Caller-guaranteed valid permutation; see SignChecked to validate first.
//
// Complexity: O(n^2) time and space.
func PermutationMatrix(p []int) [][]int64 {
	n := len(p)
	m := make([][]int64, n)
	for i := range m {
		m[i] = make([]int64, n)
		m[i][p[i]-1] = 1
	}
	return m
}
