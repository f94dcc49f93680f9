package latinrect

import (
	"context"
	"errors"
	"time"

	"github.com/ravgal/latinrect/dcache"
	"github.com/ravgal/latinrect/parallel"
	"github.com/ravgal/latinrect/perm"
	"github.com/ravgal/latinrect/rectangle"
	"github.com/ravgal/latinrect/store"
)

// parallelThreshold is the estimated-sequential-time cutoff from §4.10
// above which ModeAuto switches to the parallel driver. It is compared
// against a rough work estimate, not a measured duration, since the
// estimate must be available before any work has run.
const parallelThreshold = 300 * time.Millisecond

// estimatedUnitNanos is a rough per-work-unit cost used only to decide
// ModeAuto's single-vs-parallel split; it is not a performance contract.
const estimatedUnitNanos = 50_000

// Count computes the (positive, negative) split for one (r, n).
func Count(r, n int, opts ...Option) (CountResult, error) {
	o := newOptions(opts...)
	res, err := dispatch(r, n, false, o)
	return res.CountResult, err
}

// CountWithCompletion computes (r, n) and its fused (r+1, n) completion in
// one pass (C7); requires r == n-1. For r == 2 (n == 3) the closed-form
// fast path has no enumeration to fuse into, so the (3, 3) completion is
// counted by a second dispatch.
func CountWithCompletion(r, n int, opts ...Option) (CountResult, CountResult, error) {
	if r != n-1 {
		return CountResult{}, CountResult{}, newFailure(InvalidInput, "CountWithCompletion requires r == n-1", nil)
	}
	o := newOptions(opts...)
	o.fuse = true
	res, err := dispatch(r, n, true, o)
	if err != nil {
		return CountResult{}, CountResult{}, err
	}
	if r == 2 {
		full, err := dispatch(n, n, false, o)
		if err != nil {
			return CountResult{}, CountResult{}, err
		}
		return res.CountResult, full.CountResult, nil
	}
	completion := CountResult{
		R: r + 1, N: n,
		Positive: res.fusePos, Negative: res.fuseNeg,
		ComputationTime: res.ComputationTime,
		Cancelled:       res.Cancelled,
		UnitsDone:       res.UnitsDone,
		UnitsTotal:      res.UnitsTotal,
	}
	completion.Difference = signedDifference(completion.Positive, completion.Negative)
	return res.CountResult, completion, nil
}

// CountRange iterates every (r, n) with r_min<=r<=min(r_max,n), n_min<=n<=n_max,
// in ascending n then ascending r, per spec.md §6.1.
func CountRange(rMin, rMax, nMin, nMax int, opts ...Option) ([]CountResult, error) {
	o := newOptions(opts...)
	var out []CountResult
	for n := nMin; n <= nMax; n++ {
		hi := rMax
		if n < hi {
			hi = n
		}
		for r := rMin; r <= hi; r++ {
			if r < 2 || n < 2 || r > n {
				continue
			}
			res, err := dispatch(r, n, false, o)
			if err != nil {
				return out, err
			}
			out = append(out, res.CountResult)
		}
	}
	return out, nil
}

// dispatchResult wraps CountResult with the raw fusion counts so
// CountWithCompletion can split them out without re-running the enumerator.
type dispatchResult struct {
	CountResult
	fusePos, fuseNeg rectangle.Count
}

func dispatch(r, n int, fuse bool, o *options) (dispatchResult, error) {
	start := time.Now()
	if n < 2 || r < 2 || r > n {
		return dispatchResult{}, newFailure(InvalidInput, "require 2 <= r <= n", nil)
	}
	if n > dcache.MaxN {
		return dispatchResult{}, newFailure(TooLarge, "n exceeds the derangement cache's dimension cap", nil)
	}

	// A stored entry holds no fused counts, so a fused request recomputes.
	if cached, ok, lookupErr := o.store.Lookup(r, n); lookupErr == nil && ok && !fuse {
		return dispatchResult{CountResult: CountResult{
			R: r, N: n,
			Positive: cached.Pos, Negative: cached.Neg,
			Difference:      cached.Difference,
			ComputationTime: time.Duration(cached.ComputationTimeNanos),
		}}, nil
	} else if lookupErr != nil {
		o.logger.Warn().Int("r", r).Int("n", n).Err(lookupErr).Msg("result store lookup failed")
	}

	if r == 2 {
		pos, neg, err := rectangle.FastPath(n)
		if err != nil {
			return dispatchResult{}, newFailure(Internal, "fast path failed", err)
		}
		res := dispatchResult{CountResult: CountResult{
			R: r, N: n,
			Positive: pos, Negative: neg,
			ComputationTime: time.Since(start),
		}}
		res.Difference = signedDifference(res.Positive, res.Negative)
		if storeErr := o.store.Store(toEntry(res.CountResult)); storeErr != nil {
			o.logger.Warn().Int("r", r).Int("n", n).Err(storeErr).Msg("result store write failed")
		}
		o.logger.Debug().Int("r", r).Int("n", n).Msg("dispatched to fast path")
		return res, nil
	}

	cache, err := dcache.LoadOrBuild(o.logger, o.cacheDir, n)
	if err != nil {
		if errors.Is(err, dcache.ErrTooLarge) {
			return dispatchResult{}, newFailure(TooLarge, "cache build exceeds dimension cap", err)
		}
		return dispatchResult{}, newFailure(CacheIo, "failed to load or build derangement cache", err)
	}
	defer cache.Close()

	doFuse := fuse && r == n-1
	mode := o.mode
	if mode == ModeAuto {
		mode = chooseAutoMode(r, n)
	}

	var result dispatchResult
	switch mode {
	case ModeSingle:
		o.logger.Debug().Int("r", r).Int("n", n).Msg("dispatched to single-threaded reducer")
		reduced, err := rectangle.Reduce(cache, r, n, doFuse)
		if err != nil {
			if errors.Is(err, rectangle.ErrCountOverflow) {
				return dispatchResult{}, newFailure(TooLarge, "result exceeds the 128-bit accumulator width", err)
			}
			return dispatchResult{}, newFailure(Internal, "first-column reduction failed", err)
		}
		result = dispatchResult{
			CountResult: CountResult{
				R: r, N: n,
				Positive: reduced.Pos, Negative: reduced.Neg,
				ComputationTime: time.Since(start),
			},
			fusePos: reduced.FusePos, fuseNeg: reduced.FuseNeg,
		}
	default:
		o.logger.Debug().Int("r", r).Int("n", n).Msg("dispatched to parallel driver")
		ctx := o.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		ran, err := parallel.Run(ctx, cache, r, n, parallel.Options{
			Workers:  o.workers,
			Fuse:     doFuse,
			Progress: o.progress,
			Logger:   o.logger,
		})
		if err != nil {
			if errors.Is(err, rectangle.ErrCountOverflow) {
				return dispatchResult{}, newFailure(TooLarge, "result exceeds the 128-bit accumulator width", err)
			}
			return dispatchResult{}, newFailure(Internal, "parallel driver failed", err)
		}
		if ran.Cancelled {
			return dispatchResult{CountResult: CountResult{
				R: r, N: n,
				Positive: ran.Pos, Negative: ran.Neg,
				ComputationTime: time.Since(start),
				Cancelled:       true,
				UnitsDone:       ran.UnitsDone,
				UnitsTotal:      ran.UnitsTotal,
			}, fusePos: ran.FusePos, fuseNeg: ran.FuseNeg}, nil
		}
		result = dispatchResult{
			CountResult: CountResult{
				R: r, N: n,
				Positive: ran.Pos, Negative: ran.Neg,
				ComputationTime: time.Since(start),
			},
			fusePos: ran.FusePos, fuseNeg: ran.FuseNeg,
		}
	}

	result.Difference = signedDifference(result.Positive, result.Negative)
	if storeErr := o.store.Store(toEntry(result.CountResult)); storeErr != nil {
		o.logger.Warn().Int("r", r).Int("n", n).Err(storeErr).Msg("result store write failed")
	}
	return result, nil
}

func toEntry(r CountResult) store.Entry {
	return store.Entry{
		R: r.R, N: r.N,
		Pos: r.Positive, Neg: r.Negative,
		Difference:           r.Difference,
		ComputationTimeNanos: int64(r.ComputationTime),
	}
}

// chooseAutoMode estimates whether (r, n)'s sequential work exceeds
// parallelThreshold using C(n-1, r-1) first-column units times D(n) as a
// rough proxy for total backtracking steps; this is a heuristic, not a
// performance contract (§4.10).
func chooseAutoMode(r, n int) Mode {
	cols, err := rectangle.FirstColumns(r, n)
	if err != nil || len(cols) == 0 {
		return ModeSingle
	}
	d, err := perm.DerangementCount(n)
	if err != nil {
		return ModeSingle
	}
	estimate := time.Duration(uint64(len(cols))*d) * estimatedUnitNanos
	if estimate > parallelThreshold {
		return ModeParallel
	}
	return ModeSingle
}
