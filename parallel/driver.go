package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ravgal/latinrect/dcache"
	"github.com/ravgal/latinrect/progress"
	"github.com/ravgal/latinrect/rectangle"
)

// Options configures one Run call.
type Options struct {
	// Workers is the number of goroutines to fan work units across. <= 0
	// means auto: min(runtime.GOMAXPROCS(0), number of work units, 8).
	Workers int

	// Fuse requests completion fusion into (n, n) when r == n-1 (C7).
	Fuse bool

	// Progress receives best-effort updates; nil means progress.Noop{}.
	Progress progress.Sink

	// Logger receives worker lifecycle and cancellation events. The zero
	// Logger value (zerolog.Logger{}) is a no-op, same as zerolog.Nop().
	Logger zerolog.Logger
}

// Result is the outcome of one Run call: either a completed, symmetry-scaled
// (pos, neg) pair, or — if ctx was cancelled before every work unit
// finished — a partial, unscaled result with Cancelled set.
type Result struct {
	Pos, Neg Count128

	Fused   bool
	FusePos Count128
	FuseNeg Count128

	Cancelled bool
	UnitsDone int
	UnitsTotal int
}

// Count128 aliases rectangle.Count so callers of this package don't need to
// import rectangle solely to name the accumulator type.
type Count128 = rectangle.Count

// Run implements the parallel driver (C9): it splits rectangle.FirstColumns'
// work units round-robin across Workers goroutines, runs rectangle.Enumerate
// under each unit's constraint, sums the raw per-unit (pos, neg) into 128-bit
// accumulators, and applies the (r-1)! symmetry factor exactly once at the
// join. Cancellation is checked between work units (coarse granularity);
// on cancellation the join returns the raw, pre-scaling partial sums.
func Run(ctx context.Context, cache *dcache.Cache, r, n int, opts Options) (Result, error) {
	if r < 3 || n < r {
		return Result{}, rectangle.ErrInvalidDimensions
	}
	cols, err := rectangle.FirstColumns(r, n)
	if err != nil {
		return Result{}, err
	}
	sink := opts.Progress
	if sink == nil {
		sink = progress.Noop{}
	}
	logger := opts.Logger
	workers := chooseWorkers(opts.Workers, len(cols))
	sink.OnStart(r, n, len(cols))
	logger.Info().Int("r", r).Int("n", n).Int("workers", workers).Int("units", len(cols)).Msg("worker pool starting")

	doFuse := opts.Fuse && r == n-1

	type partial struct {
		pos, neg         Count128
		fusePos, fuseNeg Count128
		unitsDone        int
	}
	results := make([]partial, workers)
	var wg sync.WaitGroup
	var cancelled atomic.Bool
	var overflowed atomic.Bool
	// sinkMu serializes progress calls; a worker that finds it held skips
	// its update instead of waiting.
	var sinkMu sync.Mutex

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			logger.Debug().Int("worker", workerID).Msg("worker started")
			var p partial
			for i := workerID; i < len(cols); i += workers {
				select {
				case <-ctx.Done():
					cancelled.Store(true)
					results[workerID] = p
					logger.Info().Int("worker", workerID).Int("units_done", p.unitsDone).Msg("worker cancelled")
					return
				default:
				}
				res, err := rectangle.Enumerate(cache, r, n, cols[i], doFuse)
				if err != nil {
					if errors.Is(err, rectangle.ErrCountOverflow) {
						overflowed.Store(true)
						results[workerID] = p
						return
					}
					// An invariant violation in one unit cannot be
					// recovered mid-fan-out; stop this worker's
					// progress but let others finish their own units.
					cancelled.Store(true)
					results[workerID] = p
					logger.Info().Int("worker", workerID).Err(err).Msg("worker stopped on enumeration error")
					return
				}
				var ok bool
				if p.pos, ok = p.pos.Add(res.Pos); !ok {
					overflowed.Store(true)
					results[workerID] = p
					return
				}
				if p.neg, ok = p.neg.Add(res.Neg); !ok {
					overflowed.Store(true)
					results[workerID] = p
					return
				}
				if doFuse {
					if p.fusePos, ok = p.fusePos.Add(res.FusePos); !ok {
						overflowed.Store(true)
						results[workerID] = p
						return
					}
					if p.fuseNeg, ok = p.fuseNeg.Add(res.FuseNeg); !ok {
						overflowed.Store(true)
						results[workerID] = p
						return
					}
				}
				p.unitsDone++
				if sinkMu.TryLock() {
					sink.OnUnitComplete(workerID, p.unitsDone, 0, p.pos, p.neg)
					sinkMu.Unlock()
				}
			}
			results[workerID] = p
			logger.Debug().Int("worker", workerID).Int("units_done", p.unitsDone).Msg("worker finished")
		}(w)
	}
	wg.Wait()

	if overflowed.Load() {
		return Result{}, rectangle.ErrCountOverflow
	}

	var rawPos, rawNeg, rawFusePos, rawFuseNeg Count128
	unitsDone := 0
	var ok bool
	for _, p := range results {
		if rawPos, ok = rawPos.Add(p.pos); !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		if rawNeg, ok = rawNeg.Add(p.neg); !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		if rawFusePos, ok = rawFusePos.Add(p.fusePos); !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		if rawFuseNeg, ok = rawFuseNeg.Add(p.fuseNeg); !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		unitsDone += p.unitsDone
	}

	if cancelled.Load() {
		out := Result{
			Pos: rawPos, Neg: rawNeg,
			Fused: doFuse, FusePos: rawFusePos, FuseNeg: rawFuseNeg,
			Cancelled: true, UnitsDone: unitsDone, UnitsTotal: len(cols),
		}
		sink.OnFinish(out)
		return out, nil
	}

	factorial := rectangle.Factorial(r - 1)
	pos, ok := rawPos.Scale(factorial)
	if !ok {
		return Result{}, rectangle.ErrCountOverflow
	}
	neg, ok := rawNeg.Scale(factorial)
	if !ok {
		return Result{}, rectangle.ErrCountOverflow
	}
	out := Result{Pos: pos, Neg: neg, Fused: doFuse, UnitsDone: unitsDone, UnitsTotal: len(cols)}
	if doFuse {
		fp, ok := rawFusePos.Scale(factorial)
		if !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		fn, ok := rawFuseNeg.Scale(factorial)
		if !ok {
			return Result{}, rectangle.ErrCountOverflow
		}
		out.FusePos, out.FuseNeg = fp, fn
	}
	logger.Info().Int("r", r).Int("n", n).Int("units_done", unitsDone).Msg("worker pool finished")
	sink.OnFinish(out)
	return out, nil
}

func chooseWorkers(requested, units int) int {
	if units < 1 {
		return 1
	}
	w := requested
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
		const upperBound = 8
		if w > upperBound {
			w = upperBound
		}
	}
	if w > units {
		w = units
	}
	if w < 1 {
		w = 1
	}
	return w
}
