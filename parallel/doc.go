// Package parallel implements the fork-join work-unit driver (C9) that fans
// rectangle.Reduce's first-column work units across goroutines sharing only
// the read-only derangement cache, merging their (pos, neg) sub-results into
// a single 128-bit total and applying the (r-1)! symmetry factor exactly
// once at the join.
package parallel
