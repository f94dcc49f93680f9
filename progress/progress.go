// Package progress defines the progress-sink interface consumed by the core
// (C9's parallel driver and C10's dispatcher) and a no-op default. Sinks are
// fire-and-forget: the core never blocks on them and tolerates dropped
// updates.
package progress

import "github.com/ravgal/latinrect/rectangle"

// Sink receives best-effort progress events from the parallel driver. Every
// method must return quickly and must not panic; a slow or panicking sink
// must not be allowed to affect the correctness of the count it observes.
type Sink interface {
	// OnStart fires once, before any work unit begins.
	OnStart(r, n, totalWorkUnits int)

	// OnUnitComplete fires after each worker finishes one work unit.
	OnUnitComplete(workerID, unitsDone int, rectanglesScanned int, partialPos, partialNeg rectangle.Count)

	// OnFinish fires once, after every worker has joined (including on
	// cancellation, in which case the final result carries partial data).
	OnFinish(result interface{})
}

// Noop is the default Sink: every method is a no-op.
type Noop struct{}

func (Noop) OnStart(int, int, int)                                                       {}
func (Noop) OnUnitComplete(int, int, int, rectangle.Count, rectangle.Count)               {}
func (Noop) OnFinish(interface{})                                                         {}

var _ Sink = Noop{}
