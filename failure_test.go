package latinrect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravgal/latinrect"
)

func TestFailureKindString(t *testing.T) {
	require.Equal(t, "InvalidInput", latinrect.InvalidInput.String())
	require.Equal(t, "TooLarge", latinrect.TooLarge.String())
	require.Equal(t, "Cancelled", latinrect.Cancelled.String())
}

func TestFailureTooLargeForOversizedN(t *testing.T) {
	_, err := latinrect.Count(20, 20) // n beyond dcache.MaxN
	require.Error(t, err)
	var failure *latinrect.Failure
	require.True(t, errors.As(err, &failure))
	require.Equal(t, latinrect.TooLarge, failure.Kind)
}
