package rectangle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect/dcache"
	"github.com/ravgal/latinrect/rectangle"
)

func TestReduceScenarios(t *testing.T) {
	cases := []struct {
		r, n     int
		pos, neg uint64
	}{
		{3, 4, 12, 12},
		{4, 4, 24, 0},
		{5, 5, 384, 960},
		{6, 6, 426240, 702720},
		{3, 8, 35133504, 35165760},
		{4, 8, 44196405120, 44194590720},
	}
	for _, tc := range cases {
		c, err := dcache.Build(tc.n)
		require.NoError(t, err)

		res, err := rectangle.Reduce(c, tc.r, tc.n, false)
		require.NoError(t, err)
		require.Equal(t, rectangle.FromUint64(tc.pos), res.Pos, "r=%d n=%d pos", tc.r, tc.n)
		require.Equal(t, rectangle.FromUint64(tc.neg), res.Neg, "r=%d n=%d neg", tc.r, tc.n)
		c.Close()
	}
}

func TestReduceMatchesDirectEnumeration(t *testing.T) {
	for _, tc := range []struct{ r, n int }{{3, 5}, {3, 7}, {4, 7}} {
		c, err := dcache.Build(tc.n)
		require.NoError(t, err)

		direct, err := rectangle.Enumerate(c, tc.r, tc.n, nil, false)
		require.NoError(t, err)

		reduced, err := rectangle.Reduce(c, tc.r, tc.n, false)
		require.NoError(t, err)

		require.Equal(t, direct.Pos, reduced.Pos, "r=%d n=%d pos", tc.r, tc.n)
		require.Equal(t, direct.Neg, reduced.Neg, "r=%d n=%d neg", tc.r, tc.n)
		c.Close()
	}
}

func TestReduceFusionMatchesSeparateReduce(t *testing.T) {
	c, err := dcache.Build(4)
	require.NoError(t, err)
	defer c.Close()

	fused, err := rectangle.Reduce(c, 3, 4, true)
	require.NoError(t, err)
	require.True(t, fused.Fused)

	separate, err := rectangle.Reduce(c, 4, 4, false)
	require.NoError(t, err)

	require.Equal(t, separate.Pos, fused.FusePos)
	require.Equal(t, separate.Neg, fused.FuseNeg)
}

func TestReduceRejectsRLessThanThree(t *testing.T) {
	c, err := dcache.Build(4)
	require.NoError(t, err)
	defer c.Close()

	_, err = rectangle.Reduce(c, 2, 4, false)
	require.ErrorIs(t, err, rectangle.ErrInvalidDimensions)
}
