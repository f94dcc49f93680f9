package rectangle

import "github.com/ravgal/latinrect/perm"

// FastPath computes the exact positive/negative split for r=2 via the
// closed-form identity, without touching the derangement cache at all:
//
//	total = D(n)
//	diff  = (-1)^(n-1) * (n-1)
//	positive = (total + diff) / 2
//	negative = (total - diff) / 2
//
// diff equals det(J_n - I_n), the signed count of derangements (evens minus
// odds), which is why both halves are guaranteed non-negative integers.
//
// Complexity: O(n) (amortized, via perm.DerangementCount's memoized table).
func FastPath(n int) (positive, negative Count, err error) {
	if n < 2 {
		return Count{}, Count{}, ErrInvalidDimensions
	}
	total, err := perm.DerangementCount(n)
	if err != nil {
		return Count{}, Count{}, err
	}

	diff := int64(n - 1)
	if (n-1)%2 != 0 {
		diff = -diff
	}

	signedTotal := int64(total) // n within dcache.MaxN, so this never overflows
	pos := (signedTotal + diff) / 2
	neg := (signedTotal - diff) / 2
	return FromUint64(uint64(pos)), FromUint64(uint64(neg)), nil
}
