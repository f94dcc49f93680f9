// Package perm provides pure, deterministic permutation primitives: sign via
// inversion parity, the derangement-count recurrence D(n), and exact integer
// determinants of small matrices via the Bareiss fraction-free algorithm.
//
// Every function here is side-effect-free and safe for concurrent use — the
// only shared state is DerangementCount's memoization table, which grows
// under a sync.RWMutex (see derangement_count.go).
package perm
