package derangement

import (
	"github.com/ravgal/latinrect/bitset"
	"github.com/ravgal/latinrect/perm"
)

// Entry is one derangement together with its sign.
type Entry struct {
	Row  []uint8 // values 1..n, no fixed points
	Sign int8    // +1 or -1
}

// Generate returns every derangement of {1,...,n} in lexicographic order,
// each with its sign. Uses the bitset package's constrained permutation
// generator with isForbidden(pos, v) = (v == pos+1), i.e. exactly the "row
// equals its own identity value" forbidden condition from the data model.
//
// Complexity: O(D(n) * n^2) time to enumerate and sign every row (perm.Sign
// counts inversions in O(n^2)), O(D(n) * n) space for the output.
func Generate(n int) []Entry {
	isForbidden := func(pos, v int) bool { return v == pos+1 }
	it := bitset.NewLexPermutations(n, isForbidden)

	entries := make([]Entry, 0, estimateCount(n))
	intRow := make([]int, n)
	for {
		row, ok := it.Next()
		if !ok {
			break
		}
		for i, v := range row {
			intRow[i] = int(v)
		}
		entries = append(entries, Entry{Row: row, Sign: int8(perm.Sign(intRow))})
	}
	return entries
}

// estimateCount gives a capacity hint for Generate's output slice; a wrong
// guess only costs a reallocation, never correctness.
func estimateCount(n int) int {
	d, err := perm.DerangementCount(n)
	if err != nil || d > 1<<20 {
		return 0
	}
	return int(d)
}
