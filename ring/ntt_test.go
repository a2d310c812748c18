package ring

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNTTRoundTrip(t *testing.T) {

	for _, degree := range testDegrees {

		tc := genTestContext(t, degree)

		t.Run(testString("NTTRoundTrip", tc.ringQ), func(t *testing.T) {

			p := tc.uniformQ.ReadNew()
			want := p.CopyNew()

			require.NoError(t, p.NTT())
			require.Equal(t, NTT, p.Representation())

			require.NoError(t, p.INTT())
			require.Equal(t, PowerBasis, p.Representation())

			require.True(t, p.Equal(want))
		})
	}
}

// The variable-time transformer must produce bit-identical outputs to the
// constant-time one.
func TestNTTVariableTimeConsistency(t *testing.T) {

	for _, degree := range testDegrees {

		tc := genTestContext(t, degree)

		t.Run(testString("NTTVariableTimeConsistency", tc.ringQ), func(t *testing.T) {

			p := tc.uniformQ.ReadNew()
			pVar := p.CopyNew()
			pVar.AllowVariableTime(true)

			require.NoError(t, p.NTT())
			require.NoError(t, pVar.NTT())
			require.Equal(t, p.Coeffs, pVar.Coeffs)

			require.NoError(t, p.INTT())
			require.NoError(t, pVar.INTT())
			require.Equal(t, p.Coeffs, pVar.Coeffs)
		})
	}
}

// Element-wise products in the NTT domain must agree with the schoolbook
// negacyclic convolution mod X^N+1.
func TestNTTNegacyclicConvolution(t *testing.T) {

	tc := genTestContext(t, 16)

	t.Run(testString("NTTNegacyclicConvolution", tc.ringQ), func(t *testing.T) {

		a := tc.uniformQ.ReadNew()
		b := tc.uniformQ.ReadNew()

		want := tc.ringQ.NewPoly()
		for i, q := range tc.ringQ.Moduli() {
			qBig := new(big.Int).SetUint64(q)
			acc := make([]*big.Int, tc.ringQ.Degree())
			for j := range acc {
				acc[j] = new(big.Int)
			}
			tmp := new(big.Int)
			for j, aj := range a.Coeffs[i] {
				for l, bl := range b.Coeffs[i] {
					tmp.Mul(new(big.Int).SetUint64(aj), new(big.Int).SetUint64(bl))
					if j+l < tc.ringQ.Degree() {
						acc[j+l].Add(acc[j+l], tmp)
					} else {
						acc[j+l-tc.ringQ.Degree()].Sub(acc[j+l-tc.ringQ.Degree()], tmp)
					}
				}
			}
			for j := range acc {
				want.Coeffs[i][j] = acc[j].Mod(acc[j], qBig).Uint64()
			}
		}

		require.NoError(t, a.NTT())
		require.NoError(t, b.NTT())

		c, err := a.MulCoeffs(b)
		require.NoError(t, err)
		require.NoError(t, c.INTT())

		require.True(t, c.Equal(want))
	})
}

func TestNTTRepresentationTag(t *testing.T) {

	tc := genTestContext(t, 8)

	t.Run(testString("NTTRepresentationTag", tc.ringQ), func(t *testing.T) {

		p := tc.uniformQ.ReadNew()

		require.ErrorIs(t, p.INTT(), ErrRepresentation)

		require.NoError(t, p.NTT())
		require.ErrorIs(t, p.NTT(), ErrRepresentation)

		require.NoError(t, p.INTT())
		require.ErrorIs(t, p.INTT(), ErrRepresentation)
	})
}

// Tables are derived deterministically from the modulus, so two contexts
// over the same chain must share bit-identical roots.
func TestNTTTableDeterminism(t *testing.T) {

	c0, err := NewContext(testModuliQ, 8)
	require.NoError(t, err)
	c1, err := NewContext(testModuliQ, 8)
	require.NoError(t, err)

	for i := range c0.tables {
		require.Equal(t, c0.tables[i].primitiveRoot, c1.tables[i].primitiveRoot)
		require.Equal(t, c0.tables[i].rootsForward, c1.tables[i].rootsForward)
		require.Equal(t, c0.tables[i].rootsBackward, c1.tables[i].rootsBackward)
	}
}
