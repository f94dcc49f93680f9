package rectangle

import (
	"math/big"
	"math/bits"
)

// Count is an unsigned 128-bit accumulator (Hi*2^64 + Lo). Normalized Latin
// rectangle counts grow combinatorially (D(n) alone exceeds 2^63 from n=21
// on, and first-column reduction sums many such terms), so a
// plain uint64 is not wide enough for realistic n; a fixed 128-bit pair
// avoids the allocation overhead of math/big.Int on the hot accumulation
// path, at the cost of a finite width that callers must check for (see Add
// and Scale) rather than assume.
type Count struct {
	Hi, Lo uint64
}

// Add returns c+o as a 128-bit sum, and whether the sum fit in 128 bits. A
// false ok means the 129th bit was lost; callers must surface this as a
// failure rather than return a silently wrapped total.
func (c Count) Add(o Count) (Count, bool) {
	lo, carry := bits.Add64(c.Lo, o.Lo, 0)
	hi, carryOut := bits.Add64(c.Hi, o.Hi, carry)
	return Count{Hi: hi, Lo: lo}, carryOut == 0
}

// Scale returns c*k and whether the product fit in 128 bits. k is expected
// to be a small factor such as (r-1)!; the ok return lets callers surface an
// internal-invariant failure instead of silently truncating.
func (c Count) Scale(k uint64) (Count, bool) {
	if k == 0 {
		return Count{}, true
	}
	hiFromHi, loFromHi := bits.Mul64(c.Hi, k)
	if hiFromHi != 0 {
		return Count{}, false
	}
	hiFromLo, loFromLo := bits.Mul64(c.Lo, k)
	hi, carry := bits.Add64(hiFromLo, loFromHi, 0)
	if carry != 0 {
		return Count{}, false
	}
	return Count{Hi: hi, Lo: loFromLo}, true
}

// BigInt converts c to an arbitrary-precision integer, for use at reporting
// boundaries (e.g. the signed positive-minus-negative difference) where
// math/big's allocation cost is paid once rather than per accumulation step.
func (c Count) BigInt() *big.Int {
	out := new(big.Int).SetUint64(c.Hi)
	out.Lsh(out, 64)
	out.Add(out, new(big.Int).SetUint64(c.Lo))
	return out
}

// FromUint64 lifts a plain uint64 into a Count.
func FromUint64(v uint64) Count { return Count{Lo: v} }

// String renders c in decimal.
func (c Count) String() string { return c.BigInt().String() }
