package ring

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"github.com/Fainabi/fhe/utils/sampling"
)

func TestUniformSamplerDeterminism(t *testing.T) {

	c, err := NewContext(testModuliQ, 64)
	require.NoError(t, err)

	newSampler := func(key []byte) *UniformSampler {
		prng, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		return NewUniformSampler(prng, c)
	}

	p0 := newSampler([]byte("seed")).ReadNew()
	p1 := newSampler([]byte("seed")).ReadNew()
	require.True(t, p0.Equal(p1))

	p2 := newSampler([]byte("other seed")).ReadNew()
	require.False(t, p0.Equal(p2))
}

func TestUniformSamplerRange(t *testing.T) {

	for _, degree := range testDegrees {

		tc := genTestContext(t, degree)

		t.Run(testString("UniformSamplerRange", tc.ringQ), func(t *testing.T) {
			p := tc.uniformQ.ReadNew()
			for i, q := range tc.ringQ.Moduli() {
				for _, coeff := range p.Coeffs[i] {
					require.Less(t, coeff, q)
				}
			}
		})
	}
}

// The empirical mean of each residue row should be close to q/2. The PRNG is
// keyed, so the test is deterministic.
func TestUniformSamplerDistribution(t *testing.T) {

	c, err := NewContext(testModuliQ, 2048)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte("distribution"))
	require.NoError(t, err)

	p := NewUniformSampler(prng, c).ReadNew()

	for i, q := range c.Moduli() {

		samples := make([]float64, len(p.Coeffs[i]))
		for j, coeff := range p.Coeffs[i] {
			samples[j] = float64(coeff) / float64(q)
		}

		mean, err := stats.Mean(samples)
		require.NoError(t, err)
		require.InDelta(t, 0.5, mean, 0.05)
	}
}
