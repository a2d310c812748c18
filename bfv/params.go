package bfv

import (
	"fmt"

	"github.com/Fainabi/fhe/ring"
	"github.com/Fainabi/fhe/utils/bignum"
)

// ParametersLiteral is a literal representation of BFV parameters. It has
// public fields and is used to express a set of parameters in source code or
// configuration, to be validated with NewParameters.
type ParametersLiteral struct {
	Degree           int
	Moduli           []uint64
	PlaintextModulus uint64
}

// Parameters is a validated, immutable set of BFV parameters.
type Parameters struct {
	ringQ *ring.Context
	t     uint64
}

// NewParameters validates the given parameters literal and instantiates the
// underlying ring context.
func NewParameters(literal ParametersLiteral) (params Parameters, err error) {

	if literal.PlaintextModulus < 2 {
		return Parameters{}, fmt.Errorf("%w: plaintext modulus must be at least 2", ring.ErrParameter)
	}

	ringQ, err := ring.NewContext(literal.Moduli, literal.Degree)
	if err != nil {
		return Parameters{}, err
	}

	return Parameters{ringQ: ringQ, t: literal.PlaintextModulus}, nil
}

// RingQ returns the context of the ciphertext ring.
func (p Parameters) RingQ() *ring.Context {
	return p.ringQ
}

// Degree returns the ring degree N.
func (p Parameters) Degree() int {
	return p.ringQ.Degree()
}

// PlaintextModulus returns the plaintext modulus t.
func (p Parameters) PlaintextModulus() uint64 {
	return p.t
}

// LogQ returns the size of the ciphertext modulus Q in bits, i.e.
// log2(prod(moduli)).
func (p Parameters) LogQ() float64 {
	logQ, _ := bignum.Log2(bignum.NewFloat(p.ringQ.Modulus(), 256)).Float64()
	return logQ
}

// Equal returns true if the two parameter sets are identical.
func (p Parameters) Equal(other Parameters) bool {
	return p.t == other.t && p.ringQ.Equal(other.RingQ())
}
