package ring

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModularReduction(t *testing.T) {

	rng := rand.New(rand.NewSource(0))

	for _, q := range testModuliQ {

		qBig := new(big.Int).SetUint64(q)
		brc := BRedConstant(q)
		mrc := MRedConstant(q)

		mulModQ := func(x, y uint64) uint64 {
			res := new(big.Int).SetUint64(x)
			res.Mul(res, new(big.Int).SetUint64(y))
			return res.Mod(res, qBig).Uint64()
		}

		for i := 0; i < 128; i++ {

			x := rng.Uint64() % q
			y := rng.Uint64() % q

			t.Run("MForm", func(t *testing.T) {
				require.Equal(t, x, IMForm(MForm(x, q, brc), q, mrc))
			})

			t.Run("MRed", func(t *testing.T) {
				require.Equal(t, mulModQ(x, y), MRed(MForm(x, q, brc), y, q, mrc))
			})

			t.Run("BRed", func(t *testing.T) {
				require.Equal(t, mulModQ(x, y), BRed(x, y, q, brc))
			})

			t.Run("BRedAdd", func(t *testing.T) {
				v := rng.Uint64()
				require.Equal(t, v%q, BRedAdd(v, q, brc))
			})

			t.Run("CRed", func(t *testing.T) {
				a := rng.Uint64() % (2 * q)
				want := a
				if want >= q {
					want -= q
				}
				require.Equal(t, want, CRed(a, q))
				require.Equal(t, want, CRedCT(a, q))
			})
		}

		t.Run("ModExp", func(t *testing.T) {
			x := rng.Uint64() % q
			e := rng.Uint64() % 4096
			want := new(big.Int).Exp(new(big.Int).SetUint64(x), new(big.Int).SetUint64(e), qBig).Uint64()
			require.Equal(t, want, ModExp(x, e, q))
		})
	}
}

func TestCRedCTEdgeCases(t *testing.T) {
	for _, q := range testModuliQ {
		require.Equal(t, uint64(0), CRedCT(0, q))
		require.Equal(t, q-1, CRedCT(q-1, q))
		require.Equal(t, uint64(0), CRedCT(q, q))
		require.Equal(t, q-1, CRedCT(2*q-1, q))
	}
}
