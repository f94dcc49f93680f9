package latinrect

import (
	"math/big"
	"time"

	"github.com/ravgal/latinrect/rectangle"
)

// CountResult is the outcome of one Count call.
type CountResult struct {
	R, N int

	Positive, Negative rectangle.Count
	// Difference is Positive - Negative as an int64. signedDifference
	// subtracts the two 128-bit counts with math/big rather than a bespoke
	// signed-128-bit type: this happens exactly once per result, never
	// inside a hot loop, so the allocation cost of big.Int is immaterial.
	Difference int64

	ComputationTime time.Duration

	// Cancelled marks a partial result returned after cooperative
	// cancellation; Positive/Negative are then raw, pre-symmetry-factor
	// partial sums, and UnitsDone/UnitsTotal describe progress made.
	Cancelled  bool
	UnitsDone  int
	UnitsTotal int
}

// signedDifference computes pos-neg as an int64, assuming the result fits
// (true for every n within dcache.MaxN).
func signedDifference(pos, neg rectangle.Count) int64 {
	diff := new(big.Int).Sub(pos.BigInt(), neg.BigInt())
	return diff.Int64()
}
