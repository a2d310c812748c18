package ring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fainabi/fhe/utils/sampling"
)

// 62-bit NTT-friendly primes supporting degrees up to 2^20.
var (
	testModuliQ = []uint64{4611686018282684417, 4611686018326724609, 4611686018309947393}
	testModuliP = []uint64{4611686018282684417, 4611686018309947393, 4611686018257518593}
)

var testDegrees = []int{8, 64}

type testContext struct {
	ringQ *Context
	ringP *Context

	prng     *sampling.KeyedPRNG
	uniformQ *UniformSampler
}

func testString(opname string, c *Context) string {
	return fmt.Sprintf("%s/N=%d/moduli=%d", opname, c.Degree(), c.ModulusCount())
}

func newTestPRNG() (*sampling.KeyedPRNG, error) {
	return sampling.NewKeyedPRNG([]byte{'r', 'i', 'n', 'g'})
}

func genTestContext(t *testing.T, degree int) (tc *testContext) {

	tc = new(testContext)

	var err error
	tc.ringQ, err = NewContext(testModuliQ, degree)
	require.NoError(t, err)

	tc.ringP, err = NewContext(testModuliP, degree)
	require.NoError(t, err)

	tc.prng, err = newTestPRNG()
	require.NoError(t, err)

	tc.uniformQ = NewUniformSampler(tc.prng, tc.ringQ)

	return
}
