// Package dcache implements the binary, checksummed, on-disk derangement
// cache described in the data model: one file per dimension n, holding every
// derangement of {1,...,n} in lexicographic order, their signs, and a dense
// position-value index used both as the prefix-narrowing shortcut and as the
// per-(position, value) conflict mask the enumerator intersects against.
//
// A Cache is built once per n (derangement.Generate plus the position-value
// index), written atomically (temp file + rename, following the
// write-then-publish idiom), and thereafter only ever read. Multiple workers
// for the same n share one immutable *Cache instance — there is no lock on
// the hot read path because nothing ever mutates a published Cache.
//
// On load, the file is memory-mapped where the platform supports it (see
// mmap_unix.go / mmap_fallback.go); the in-memory representation is
// byte-identical either way, so callers never need to know which path was
// taken.
package dcache
