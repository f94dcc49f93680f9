// Command latinrect is a thin CLI wrapper over the latinrect package: it
// maps its flags onto latinrect.Count, latinrect.CountWithCompletion, or
// latinrect.CountRange and prints the result as text or JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/ravgal/latinrect"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("latinrect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	r := fs.Int("r", 0, "row count")
	n := fs.Int("n", 0, "column count")
	rMax := fs.Int("r-max", 0, "max row count (range mode)")
	nMax := fs.Int("n-max", 0, "max column count (range mode)")
	workers := fs.Int("workers", 0, "worker count override (0 = auto)")
	fuse := fs.Bool("fuse", false, "enable completion fusion for r == n-1")
	cacheDir := fs.String("cache-dir", "", "derangement cache directory (blank = default)")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if *r < 2 {
		fmt.Fprintln(stderr, "latinrect: -r is required and must be >= 2")
		return 1
	}
	if *n < 2 {
		fmt.Fprintln(stderr, "latinrect: -n is required and must be >= 2")
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	opts := []latinrect.Option{
		latinrect.WithContext(ctx),
		latinrect.WithWorkers(*workers),
		latinrect.WithFuse(*fuse),
		latinrect.WithCacheDir(*cacheDir),
		latinrect.WithLogger(zerolog.New(stderr).With().Timestamp().Logger()),
	}

	var results []latinrect.CountResult
	rangeMode := *rMax > 0 || *nMax > 0
	switch {
	case rangeMode:
		hiR := *rMax
		if hiR == 0 {
			hiR = *r
		}
		hiN := *nMax
		if hiN == 0 {
			hiN = *n
		}
		res, err := latinrect.CountRange(*r, hiR, *n, hiN, opts...)
		if err != nil {
			return emitFailure(stderr, err)
		}
		results = res
	case *fuse && *r == *n-1:
		primary, completion, err := latinrect.CountWithCompletion(*r, *n, opts...)
		if err != nil {
			return emitFailure(stderr, err)
		}
		results = []latinrect.CountResult{primary, completion}
	default:
		res, err := latinrect.Count(*r, *n, opts...)
		if err != nil {
			return emitFailure(stderr, err)
		}
		results = []latinrect.CountResult{res}
	}

	emitResults(stdout, results, *asJSON)
	for _, res := range results {
		if res.Cancelled {
			return 130
		}
	}
	return 0
}

func emitFailure(stderr io.Writer, err error) int {
	var failure *latinrect.Failure
	if !errors.As(err, &failure) {
		fmt.Fprintln(stderr, "latinrect:", err)
		return 2
	}
	fmt.Fprintf(stderr, "latinrect: %s: %s\n", failure.Kind, failure.Message)
	switch failure.Kind {
	case latinrect.InvalidInput, latinrect.TooLarge, latinrect.CacheIo:
		return 1
	case latinrect.Cancelled:
		return 130
	default:
		return 2
	}
}

func emitResults(stdout io.Writer, results []latinrect.CountResult, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
		return
	}
	for _, res := range results {
		status := ""
		if res.Cancelled {
			status = fmt.Sprintf(" (cancelled: %d/%d units)", res.UnitsDone, res.UnitsTotal)
		}
		fmt.Fprintf(stdout, "r=%d n=%d positive=%s negative=%s difference=%d%s\n",
			res.R, res.N, res.Positive.String(), res.Negative.String(), res.Difference, status)
	}
}
