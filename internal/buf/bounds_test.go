package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(10, 5)
	require.True(t, ok)
	require.Equal(t, 15, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	require.False(t, ok, "expected overflow when adding to MaxInt")
	_, ok = AddOverflowSafe(math.MinInt, -1)
	require.False(t, ok, "expected underflow when subtracting from MinInt")
}

func TestMulOverflowSafe(t *testing.T) {
	p, ok := MulOverflowSafe(20, 7)
	require.True(t, ok)
	require.Equal(t, 140, p)

	p, ok = MulOverflowSafe(0, math.MaxInt)
	require.True(t, ok)
	require.Zero(t, p)

	_, ok = MulOverflowSafe(math.MaxInt/2, 3)
	require.False(t, ok)
	_, ok = MulOverflowSafe(-1, 3)
	require.False(t, ok)
}

func TestCheckListBounds(t *testing.T) {
	end, err := CheckListBounds(100, 40, 3, 20)
	require.NoError(t, err)
	require.Equal(t, 100, end)

	_, err = CheckListBounds(100, 41, 3, 20)
	require.ErrorContains(t, err, "bounds")

	_, err = CheckListBounds(100, 0, math.MaxInt, 20)
	require.ErrorContains(t, err, "overflow")

	_, err = CheckListBounds(100, -1, 1, 1)
	require.Error(t, err)
	_, err = CheckListBounds(100, 0, -1, 1)
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}

	got, ok := Slice(data, 1, 3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, ok = Slice(data, 4, 2)
	require.False(t, ok, "Slice should fail when extending beyond len")
	_, ok = Slice(data, -1, 1)
	require.False(t, ok)
	_, ok = Slice(data, 1, -1)
	require.False(t, ok)

	got, ok = Slice(data, 5, 0)
	require.True(t, ok)
	require.Empty(t, got)
}
