package bitset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect/bitset"
)

func TestMaskSetClearTest(t *testing.T) {
	m := bitset.NewMask(130)
	m.Set(0)
	m.Set(64)
	m.Set(129)
	require.True(t, m.Test(0))
	require.True(t, m.Test(64))
	require.True(t, m.Test(129))
	require.False(t, m.Test(1))

	m.Clear(64)
	require.False(t, m.Test(64))
}

func TestMaskForEachSetAscending(t *testing.T) {
	m := bitset.NewMask(200)
	want := []int{3, 70, 71, 150, 199}
	for _, i := range want {
		m.Set(i)
	}
	var got []int
	m.ForEachSet(func(i int) bool {
		got = append(got, i)
		return true
	})
	require.Equal(t, want, got)
}

func TestMaskForEachSetEarlyStop(t *testing.T) {
	m := bitset.NewMask(10)
	m.Set(1)
	m.Set(5)
	m.Set(8)
	var got []int
	m.ForEachSet(func(i int) bool {
		got = append(got, i)
		return i != 5
	})
	require.Equal(t, []int{1, 5}, got)
}

func TestMaskAndOrAndNot(t *testing.T) {
	a := bitset.NewMask(8)
	b := bitset.NewMask(8)
	a.Set(0)
	a.Set(1)
	b.Set(1)
	b.Set(2)

	and := a.Clone()
	and.And(b)
	require.Equal(t, 1, and.PopCount())
	require.True(t, and.Test(1))

	or := a.Clone()
	or.Or(b)
	require.Equal(t, 3, or.PopCount())

	andNot := a.Clone()
	andNot.AndNot(b)
	require.Equal(t, 1, andNot.PopCount())
	require.True(t, andNot.Test(0))
}

func TestMaskTrim(t *testing.T) {
	m := bitset.NewMask(5)
	m.Set(0)
	m.Set(1)
	m.Set(2)
	m.Set(3)
	m.Set(4)
	// logically only 5 bits matter even though the word holds 64
	m.Trim(5)
	require.Equal(t, 5, m.PopCount())
}

func TestMaskIsZero(t *testing.T) {
	m := bitset.NewMask(10)
	require.True(t, m.IsZero())
	m.Set(3)
	require.False(t, m.IsZero())
}
