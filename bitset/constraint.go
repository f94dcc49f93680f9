package bitset

import "math/bits"

// Constraint tracks, for each of n columns, which of the n values 1..n are
// already used in that column by rows placed so far. forbidden[c] has bit
// (v-1) set iff value v is taken in column c.
//
// Constraint is owned by a single enumeration task and mutated only by it
// (per the data model's ownership rule); it is never shared across
// goroutines.
type Constraint struct {
	n         int
	forbidden []uint64 // one word per column; n <= 64 so a single word suffices per column
}

// NewConstraint returns a Constraint for n columns/values, initially empty
// (every value available in every column).
func NewConstraint(n int) *Constraint {
	return &Constraint{n: n, forbidden: make([]uint64, n)}
}

// AddRow marks row's values as used in their respective columns.
// row must have length n and hold values in 1..n.
//
// Complexity: O(n).
func (c *Constraint) AddRow(row []uint8) {
	for col, v := range row {
		c.forbidden[col] |= 1 << uint(v-1)
	}
}

// RemoveRow is the inverse of AddRow, used when the enumerator backtracks.
//
// Complexity: O(n).
func (c *Constraint) RemoveRow(row []uint8) {
	for col, v := range row {
		c.forbidden[col] &^= 1 << uint(v-1)
	}
}

// IsForbidden reports whether value v (1-based) is already used in column c.
func (c *Constraint) IsForbidden(col int, v int) bool {
	return c.forbidden[col]&(1<<uint(v-1)) != 0
}

// Available returns the number of values still free in column c, limited to
// the n low bits (values 1..n).
//
// Complexity: O(1) (single popcount, masked to n bits).
func (c *Constraint) Available(col int) int {
	mask := c.forbidden[col]
	if c.n < 64 {
		mask &= (uint64(1) << uint(c.n)) - 1
	}
	return c.n - bits.OnesCount64(mask)
}

// N returns the configured column/value count.
func (c *Constraint) N() int { return c.n }
