package latinrect

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ravgal/latinrect/progress"
	"github.com/ravgal/latinrect/store"
)

// Mode selects how a count request is executed.
type Mode int

const (
	// ModeAuto lets the dispatcher pick single or parallel execution by the
	// heuristic in §4.10: parallel when the estimated sequential time
	// exceeds the fixed parallelThreshold, single otherwise.
	ModeAuto Mode = iota
	// ModeSingle forces single-threaded execution regardless of size.
	ModeSingle
	// ModeParallel forces the parallel driver regardless of size.
	ModeParallel
)

// Option customizes an options struct before a Count/CountWithCompletion/
// CountRange call, following the teacher's functional-options shape
// (builder.BuilderOption/builderConfig). Unlike the teacher's
// WithIDScheme/WithRand/WithWeightFn, which panic on nil because there is
// no sensible default for a required generator function, every zero/nil
// value accepted here (0 workers, a blank cache dir, a nil store/sink/ctx)
// has a well-defined default, so the constructors treat it as "use the
// default" and never panic.
type Option func(o *options)

// options holds every configurable knob accepted by the package's entry
// points. It is not safe for concurrent mutation; each call builds its own
// via newOptions.
type options struct {
	mode     Mode
	workers  int
	fuse     bool
	cacheDir string
	store    store.Store
	progress progress.Sink
	logger   zerolog.Logger
	ctx      context.Context
}

func newOptions(opts ...Option) *options {
	o := &options{
		mode:     ModeAuto,
		workers:  0,
		fuse:     false,
		cacheDir: defaultCacheDir(),
		store:    store.NewMemory(),
		progress: progress.Noop{},
		logger:   zerolog.Nop(),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "latinrect")
	}
	return filepath.Join(os.TempDir(), "latinrect")
}

// WithMode selects single/parallel/auto execution.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithWorkers sets an explicit worker count; <= 0 leaves auto-selection.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithFuse enables completion fusion (C7) whenever r == n-1.
func WithFuse(fuse bool) Option {
	return func(o *options) { o.fuse = fuse }
}

// WithCacheDir overrides the derangement-cache directory. A blank dir is a
// no-op.
func WithCacheDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.cacheDir = dir
		}
	}
}

// WithStore injects a result store. A nil store is a no-op.
func WithStore(s store.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithProgressSink injects a progress sink. A nil sink is a no-op.
func WithProgressSink(s progress.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.progress = s
		}
	}
}

// WithLogger injects a zerolog.Logger. The zero Logger value is a no-op.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithContext sets the cancellation context. A nil ctx is a no-op.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
