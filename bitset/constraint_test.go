package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect/bitset"
)

func TestConstraintAddRemoveRow(t *testing.T) {
	c := bitset.NewConstraint(4)
	row := []uint8{2, 1, 4, 3}
	c.AddRow(row)

	require.True(t, c.IsForbidden(0, 2))
	require.False(t, c.IsForbidden(0, 1))
	require.Equal(t, 3, c.Available(0))

	c.RemoveRow(row)
	require.False(t, c.IsForbidden(0, 2))
	require.Equal(t, 4, c.Available(0))
}

func TestConstraintAvailableAfterMultipleRows(t *testing.T) {
	c := bitset.NewConstraint(3)
	c.AddRow([]uint8{2, 3, 1})
	c.AddRow([]uint8{3, 1, 2})
	require.Equal(t, 1, c.Available(0))
	require.False(t, c.IsForbidden(0, 1))
	require.True(t, c.IsForbidden(0, 2))
	require.True(t, c.IsForbidden(0, 3))
}
