package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReverse64(t *testing.T) {
	require.Equal(t, uint64(0), BitReverse64(0, 3))
	require.Equal(t, uint64(4), BitReverse64(1, 3))
	require.Equal(t, uint64(2), BitReverse64(2, 3))
	require.Equal(t, uint64(6), BitReverse64(3, 3))
	require.Equal(t, uint64(1), BitReverse64(4, 3))

	// An involution.
	for i := uint64(0); i < 256; i++ {
		require.Equal(t, i, BitReverse64(BitReverse64(i, 8), 8))
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	require.True(t, IsPowerOfTwo(1))
	require.True(t, IsPowerOfTwo(2))
	require.True(t, IsPowerOfTwo(1024))
	require.False(t, IsPowerOfTwo(0))
	require.False(t, IsPowerOfTwo(-2))
	require.False(t, IsPowerOfTwo(12))
}

func TestAllDistinct(t *testing.T) {
	require.True(t, AllDistinct([]uint64{}))
	require.True(t, AllDistinct([]uint64{1, 2, 3}))
	require.False(t, AllDistinct([]uint64{1, 2, 1}))
}

func TestEqualSlice(t *testing.T) {
	require.True(t, EqualSlice([]uint64{1, 2}, []uint64{1, 2}))
	require.False(t, EqualSlice([]uint64{1, 2}, []uint64{2, 1}))
	require.False(t, EqualSlice([]uint64{1}, []uint64{1, 2}))
}

func TestMinMax(t *testing.T) {
	require.Equal(t, 3, Max(2, 3))
	require.Equal(t, 2, Min(2, 3))
	require.Equal(t, uint64(7), MaxSlice([]uint64{1, 7, 3}))
}

func TestAlias1D(t *testing.T) {
	a := make([]uint64, 8)
	require.True(t, Alias1D(a, a[2:]))
	require.False(t, Alias1D(a, make([]uint64, 8)))
}
