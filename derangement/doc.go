// Package derangement produces every derangement of {1,...,n} in strict
// lexicographic order, each paired with its sign. Ordering is part of the
// contract: two independent calls to Generate(n) always emit the same
// sequence, which the binary cache (package dcache) relies on to make its
// file format deterministic and reproducible byte-for-byte.
package derangement
