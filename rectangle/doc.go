// Package rectangle implements the hard core of the engine: counting
// normalized Latin rectangles by sign. It provides the r=2 closed-form fast
// path, the r>=3 backtracking enumerator (with optional completion fusion
// into the (n, n) case), and the first-column symmetry reducer that divides
// enumeration work by (r-1)!.
//
// Every exported function here is single-threaded and stateless beyond the
// read-only *dcache.Cache it is given; the parallel package is the one that
// fans work units from this package across goroutines.
package rectangle
