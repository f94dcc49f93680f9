// Package store defines the result-store interface consumed by the core
// (keyed by (r, n)) and a default in-memory implementation. The core treats
// a Store as opaque plumbing: no SQL or schema is part of its contract.
package store

import (
	"sync"

	"github.com/ravgal/latinrect/rectangle"
)

// Entry is one stored result for a given (r, n).
type Entry struct {
	R, N                int
	Pos, Neg            rectangle.Count
	Difference          int64
	ComputationTimeNanos int64
}

// Store abstracts result persistence. Lookup's second return reports
// whether an entry was found; both methods return an error so a backend
// that can actually fail (a file- or database-backed store) has somewhere
// to report it. Memory never fails either call.
type Store interface {
	Lookup(r, n int) (Entry, bool, error)
	Store(e Entry) error
}

// Memory is an in-process, goroutine-safe Store backed by a map. It is the
// default used when no external store is configured; it does not persist
// across process restarts.
type Memory struct {
	mu      sync.RWMutex
	entries map[[2]int]Entry
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[[2]int]Entry)}
}

func (m *Memory) Lookup(r, n int) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[[2]int{r, n}]
	return e, ok, nil
}

func (m *Memory) Store(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[[2]int{e.R, e.N}] = e
	return nil
}

var _ Store = (*Memory)(nil)
