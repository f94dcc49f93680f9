package rectangle_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect/rectangle"
)

func TestFirstColumnsCountAndShape(t *testing.T) {
	cols, err := rectangle.FirstColumns(3, 6)
	require.NoError(t, err)
	require.Len(t, cols, 10) // C(5, 2) = 10

	for _, fc := range cols {
		require.Len(t, fc, 3)
		require.Equal(t, 1, fc[0])
		require.Less(t, fc[1], fc[2])
		require.GreaterOrEqual(t, fc[1], 2)
		require.LessOrEqual(t, fc[2], 6)
	}
}

func TestFirstColumnsLexOrder(t *testing.T) {
	cols, err := rectangle.FirstColumns(3, 4)
	require.NoError(t, err)
	require.Equal(t, [][]int{{1, 2, 3}, {1, 2, 4}, {1, 3, 4}}, cols)
}

func TestFactorial(t *testing.T) {
	require.Equal(t, uint64(1), rectangle.Factorial(0))
	require.Equal(t, uint64(1), rectangle.Factorial(1))
	require.Equal(t, uint64(120), rectangle.Factorial(5))
}
