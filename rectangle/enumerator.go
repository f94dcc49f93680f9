package rectangle

import (
	"github.com/ravgal/latinrect/bitset"
	"github.com/ravgal/latinrect/dcache"
)

// EnumResult is the outcome of one Enumerate call: the (positive, negative)
// split for the requested r rows, plus — when fusion was requested and
// applicable — the split for the forced (r+1)-row completion.
type EnumResult struct {
	Pos, Neg Count

	Fused   bool
	FusePos Count
	FuseNeg Count
}

// Enumerate runs the r>=3 backtracking enumerator (C6) over cache, optionally
// constrained to a first-column vector fc (fc[0] must be 1; the remaining
// r-1 values distinct, drawn from {2,...,n}; nil means unconstrained),
// optionally fusing in the unique (n, n) completion of an (n-1, n) rectangle
// when fuse is true and r == n-1 (C7).
//
// Traversal is strictly ascending over derangement indices at every row, so
// results are deterministic and independent of caller-side ordering.
//
// Complexity: O(valid partial rectangles explored * n) — see SPEC_FULL.md §4.6.
func Enumerate(cache *dcache.Cache, r, n int, fc []int, fuse bool) (EnumResult, error) {
	if r < 2 || n < r || cache.N() != n {
		return EnumResult{}, ErrInvalidDimensions
	}
	if fc != nil {
		if err := validateFirstColumn(fc, r, n); err != nil {
			return EnumResult{}, err
		}
	}

	doFuse := fuse && r == n-1

	e := &enumeration{cache: cache, r: r, n: n, fc: fc, fuse: doFuse}
	e.run(1, bitset.NewFullMask(cache.Count()), 1)
	if e.overflow {
		return EnumResult{}, ErrCountOverflow
	}
	return EnumResult{
		Pos:     e.pos,
		Neg:     e.neg,
		Fused:   doFuse,
		FusePos: e.fusePos,
		FuseNeg: e.fuseNeg,
	}, nil
}

func validateFirstColumn(fc []int, r, n int) error {
	if len(fc) != r || fc[0] != 1 {
		return ErrFirstColumn
	}
	seen := make(map[int]bool, r)
	seen[1] = true
	for i := 1; i < r; i++ {
		v := fc[i]
		if v < 2 || v > n || seen[v] {
			return ErrFirstColumn
		}
		seen[v] = true
	}
	return nil
}

// enumeration holds the mutable state of one Enumerate call's recursive
// descent. It is never shared across goroutines; the parallel package gives
// each worker its own cache handle reference and its own enumeration.
type enumeration struct {
	cache *dcache.Cache
	r, n  int
	fc    []int
	fuse  bool

	pos, neg         Count
	fusePos, fuseNeg Count
	overflow         bool
}

// run places row `depth` (1-indexed; rows 1..r-1 are chosen derangements,
// row 0 is the fixed identity). mask is the running compatibility mask after
// rows 1..depth-1 have been placed; sign is the running sign product
// (identity row contributes +1).
func (e *enumeration) run(depth int, mask bitset.Mask, sign int) {
	candidates := mask
	if e.fc != nil && depth < len(e.fc) {
		candidates = mask.Clone()
		candidates.And(e.cache.ConflictMask(0, e.fc[depth]))
	}

	last := depth == e.r-1
	candidates.ForEachSet(func(idx int) bool {
		if e.overflow {
			return false
		}
		rowSign := sign * int(e.cache.Sign(idx))
		if !last {
			next := e.advance(mask, idx)
			e.run(depth+1, next, rowSign)
			return !e.overflow
		}

		var ok bool
		if rowSign > 0 {
			e.pos, ok = e.pos.Add(FromUint64(1))
		} else {
			e.neg, ok = e.neg.Add(FromUint64(1))
		}
		if !ok {
			e.overflow = true
			return false
		}

		if e.fuse {
			next := e.advance(mask, idx)
			var forced = -1
			next.ForEachSet(func(j int) bool {
				forced = j
				return false
			})
			if forced >= 0 {
				fusedSign := rowSign * int(e.cache.Sign(forced))
				if fusedSign > 0 {
					e.fusePos, ok = e.fusePos.Add(FromUint64(1))
				} else {
					e.fuseNeg, ok = e.fuseNeg.Add(FromUint64(1))
				}
				if !ok {
					e.overflow = true
					return false
				}
			}
		}
		return true
	})
}

// advance returns the mask of candidates still valid for the row after the
// one that just placed derangement idx: every column's now-used value is
// excluded by OR-ing in that column's conflict mask, then AND-NOT'ing it out
// of the running mask.
func (e *enumeration) advance(mask bitset.Mask, idx int) bitset.Mask {
	row := e.cache.DerangementView(idx)
	excluded := bitset.NewMask(e.cache.Count())
	for c := 0; c < e.n; c++ {
		excluded.Or(e.cache.ConflictMask(c, int(row[c])))
	}
	next := mask.Clone()
	next.AndNot(excluded)
	return next
}
