package bfv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fainabi/fhe/ring"
)

var testLiteral = ParametersLiteral{
	Degree:           8,
	Moduli:           []uint64{4611686018282684417, 4611686018326724609, 4611686018309947393},
	PlaintextModulus: 65537,
}

func TestNewParameters(t *testing.T) {

	params, err := NewParameters(testLiteral)
	require.NoError(t, err)

	require.Equal(t, 8, params.Degree())
	require.Equal(t, uint64(65537), params.PlaintextModulus())
	require.Equal(t, 3, params.RingQ().ModulusCount())

	// Three moduli just below 2^62.
	require.InDelta(t, 186.0, params.LogQ(), 0.1)

	other, err := NewParameters(testLiteral)
	require.NoError(t, err)
	require.True(t, params.Equal(other))
}

func TestNewParametersValidation(t *testing.T) {

	literal := testLiteral
	literal.PlaintextModulus = 1
	_, err := NewParameters(literal)
	require.ErrorIs(t, err, ring.ErrParameter)

	literal = testLiteral
	literal.Degree = 12
	_, err = NewParameters(literal)
	require.ErrorIs(t, err, ring.ErrParameter)

	literal = testLiteral
	literal.Moduli = []uint64{4611686018282684417, 4611686018282684417}
	_, err = NewParameters(literal)
	require.ErrorIs(t, err, ring.ErrParameter)
}

func TestPlaintextCiphertextShells(t *testing.T) {

	params, err := NewParameters(testLiteral)
	require.NoError(t, err)

	pt := &Plaintext{Value: params.RingQ().NewPoly(), Encoding: SimdEncoding}
	require.Equal(t, "SimdEncoding", pt.Encoding.String())

	ct := &Ciphertext{Value: []*ring.Poly{params.RingQ().NewPoly(), params.RingQ().NewPoly()}}
	require.Equal(t, 1, ct.Degree())
}
