package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFloat(t *testing.T) {

	f64, _ := NewFloat(1.5, 128).Float64()
	require.Equal(t, 1.5, f64)

	f64, _ = NewFloat(uint64(42), 128).Float64()
	require.Equal(t, 42.0, f64)

	f64, _ = NewFloat(big.NewInt(-3), 128).Float64()
	require.Equal(t, -3.0, f64)

	require.Panics(t, func() { NewFloat("not a number", 128) })
}

func TestLog2(t *testing.T) {

	log2, _ := Log2(NewFloat(8, 256)).Float64()
	require.InDelta(t, 3.0, log2, 1e-12)

	log2, _ = Log2(NewFloat(new(big.Int).Lsh(big.NewInt(1), 62), 256)).Float64()
	require.InDelta(t, 62.0, log2, 1e-12)
}

func TestPow(t *testing.T) {
	pow, _ := Pow(NewFloat(2, 128), NewFloat(10, 128)).Float64()
	require.InDelta(t, 1024.0, pow, 1e-9)
}

func TestRound(t *testing.T) {
	r, _ := Round(NewFloat(2.5, 128)).Float64()
	require.Equal(t, 3.0, r)
	r, _ = Round(NewFloat(-2.5, 128)).Float64()
	require.Equal(t, -3.0, r)
}
