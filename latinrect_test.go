package latinrect_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect"
	"github.com/ravgal/latinrect/store"
)

func TestCountScenarios(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		r, n     int
		pos, neg uint64
	}{
		{2, 4, 3, 6},
		{3, 4, 12, 12},
		{4, 4, 24, 0},
		{2, 8, 7413, 7420},
	}
	for _, tc := range cases {
		res, err := latinrect.Count(tc.r, tc.n, latinrect.WithCacheDir(dir))
		require.NoError(t, err)
		require.Equal(t, tc.r, res.R)
		require.Equal(t, tc.n, res.N)
		require.Equal(t, tc.pos, res.Positive.Lo, "r=%d n=%d pos", tc.r, tc.n)
		require.Equal(t, tc.neg, res.Negative.Lo, "r=%d n=%d neg", tc.r, tc.n)
		require.Equal(t, int64(tc.pos)-int64(tc.neg), res.Difference)
	}
}

func TestCountWithCompletionMatchesSeparateCounts(t *testing.T) {
	dir := t.TempDir()
	main, completion, err := latinrect.CountWithCompletion(3, 4, latinrect.WithCacheDir(dir))
	require.NoError(t, err)
	require.Equal(t, uint64(12), main.Positive.Lo)
	require.Equal(t, uint64(12), main.Negative.Lo)
	require.Equal(t, uint64(24), completion.Positive.Lo)
	require.Equal(t, uint64(0), completion.Negative.Lo)

	direct, err := latinrect.Count(4, 4, latinrect.WithCacheDir(dir))
	require.NoError(t, err)
	require.Equal(t, direct.Positive, completion.Positive)
	require.Equal(t, direct.Negative, completion.Negative)
}

func TestCountWithCompletionRejectsWrongR(t *testing.T) {
	_, _, err := latinrect.CountWithCompletion(2, 4)
	var failure *latinrect.Failure
	require.ErrorAs(t, err, &failure)
	require.Equal(t, latinrect.InvalidInput, failure.Kind)
}

func TestCountRejectsInvalidInput(t *testing.T) {
	_, err := latinrect.Count(1, 4)
	var failure *latinrect.Failure
	require.ErrorAs(t, err, &failure)
	require.Equal(t, latinrect.InvalidInput, failure.Kind)

	_, err = latinrect.Count(5, 4)
	require.ErrorAs(t, err, &failure)
	require.Equal(t, latinrect.InvalidInput, failure.Kind)
}

func TestCountRange(t *testing.T) {
	dir := t.TempDir()
	results, err := latinrect.CountRange(2, 4, 3, 4, latinrect.WithCacheDir(dir))
	require.NoError(t, err)

	var pairs [][2]int
	for _, r := range results {
		pairs = append(pairs, [2]int{r.R, r.N})
	}
	require.Equal(t, [][2]int{{2, 3}, {2, 4}, {3, 4}, {4, 4}}, pairs)
}

func TestCountRespectsCancellation(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := latinrect.Count(3, 8,
		latinrect.WithCacheDir(dir),
		latinrect.WithContext(ctx),
		latinrect.WithMode(latinrect.ModeParallel),
		latinrect.WithStore(noStore{}),
	)
	require.NoError(t, err)
	require.True(t, res.Cancelled)
}

func TestCountUsesResultStore(t *testing.T) {
	dir := t.TempDir()
	s := &countingStore{Memory: store.NewMemory()}
	_, err := latinrect.Count(3, 4, latinrect.WithCacheDir(dir), latinrect.WithStore(s))
	require.NoError(t, err)
	_, err = latinrect.Count(3, 4, latinrect.WithCacheDir(dir), latinrect.WithStore(s))
	require.NoError(t, err)
	require.Equal(t, 1, s.stores)
	require.Equal(t, 2, s.lookups)
}

func TestCountDeterministicAcrossWorkerCounts(t *testing.T) {
	dir := t.TempDir()
	var last latinrect.CountResult
	for i, w := range []int{1, 2, 4, 8} {
		res, err := latinrect.Count(3, 7,
			latinrect.WithCacheDir(dir),
			latinrect.WithMode(latinrect.ModeParallel),
			latinrect.WithWorkers(w),
			latinrect.WithStore(noStore{}),
		)
		require.NoError(t, err)
		if i > 0 {
			require.Equal(t, last.Positive, res.Positive)
			require.Equal(t, last.Negative, res.Negative)
		}
		last = res
	}
}

// countingStore wraps store.Memory with hit/store counters for
// TestCountUsesResultStore.
type countingStore struct {
	*store.Memory
	stores  int
	lookups int
}

func (c *countingStore) Lookup(r, n int) (store.Entry, bool, error) {
	c.lookups++
	return c.Memory.Lookup(r, n)
}

func (c *countingStore) Store(e store.Entry) error {
	c.stores++
	return c.Memory.Store(e)
}

// noStore never caches, so every call recomputes from scratch — used by
// tests that need independent runs rather than a cache hit on the second
// call.
type noStore struct{}

func (noStore) Lookup(int, int) (store.Entry, bool, error) { return store.Entry{}, false, nil }
func (noStore) Store(store.Entry) error                    { return nil }
