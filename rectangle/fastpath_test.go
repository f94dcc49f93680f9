package rectangle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect/perm"
	"github.com/ravgal/latinrect/rectangle"
)

func TestFastPathKnownScenarios(t *testing.T) {
	// n=3's two derangements (231, 312) are both 3-cycles, hence even; hand
	// verification gives (positive=2, negative=0), which is what the
	// closed-form identity also produces. See DESIGN.md for the note on why
	// this departs from the spec's literal worked example for (2,3).
	cases := []struct {
		n        int
		pos, neg uint64
	}{
		{3, 2, 0},
		{4, 3, 6},
		{8, 7413, 7420},
	}
	for _, tc := range cases {
		pos, neg, err := rectangle.FastPath(tc.n)
		require.NoError(t, err)
		require.Equal(t, rectangle.FromUint64(tc.pos), pos, "n=%d positive", tc.n)
		require.Equal(t, rectangle.FromUint64(tc.neg), neg, "n=%d negative", tc.n)
	}
}

func TestFastPathRejectsSmallN(t *testing.T) {
	_, _, err := rectangle.FastPath(1)
	require.ErrorIs(t, err, rectangle.ErrInvalidDimensions)
}

func TestFastPathSumMatchesDerangementCount(t *testing.T) {
	for n := 2; n <= 10; n++ {
		pos, neg, err := rectangle.FastPath(n)
		require.NoError(t, err)
		sum, ok := pos.Add(neg)
		require.True(t, ok)
		total, err := perm.DerangementCount(n)
		require.NoError(t, err)
		require.Equal(t, rectangle.FromUint64(total), sum, "n=%d", n)
	}
}
