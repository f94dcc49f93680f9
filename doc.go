// Package latinrect counts normalized Latin rectangles — r x n arrays whose
// first row is the identity [1,...,n] and whose remaining rows are
// pairwise-conflict-free permutations — partitioned by the sign of the
// rectangle's row permutations.
//
// Count dispatches to a closed-form fast path for r=2, or to a first-column
// symmetry reducer (optionally run in parallel across goroutines) for
// r>=3, backed by an on-disk memory-mapped derangement cache. See
// CountWithCompletion for the fused (r, n)/(r+1, n) path and CountRange for
// batch queries.
package latinrect
