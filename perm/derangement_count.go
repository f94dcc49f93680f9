package perm

import "sync"

// derangementCountTable memoizes D(n) for n already computed by
// DerangementCount. Guarded by muTable: reads take the read lock, the rare
// table-growing write takes the write lock.
var (
	muTable          sync.RWMutex
	derangementTable = []uint64{1, 0} // D(0)=1, D(1)=0
)

// DerangementCount returns D(n), the number of derangements of n elements,
// via the recurrence D(0)=1, D(1)=0, D(n) = (n-1)*(D(n-1)+D(n-2)).
//
// Returns ErrNegativeN for n < 0. Values are tabulated and memoized across
// calls; concurrent callers share one growing table.
//
// Complexity: O(n) the first time a given n is requested, O(1) amortized
// thereafter (table hit), O(1) space growth per distinct n.
func DerangementCount(n int) (uint64, error) {
	if n < 0 {
		return 0, ErrNegativeN
	}

	muTable.RLock()
	if n < len(derangementTable) {
		v := derangementTable[n]
		muTable.RUnlock()
		return v, nil
	}
	muTable.RUnlock()

	muTable.Lock()
	defer muTable.Unlock()
	// Re-check under the write lock: another goroutine may have grown the
	// table while we waited.
	for len(derangementTable) <= n {
		k := len(derangementTable)
		next := uint64(k-1) * (derangementTable[k-1] + derangementTable[k-2])
		derangementTable = append(derangementTable, next)
	}
	return derangementTable[n], nil
}
