package ring

import (
	"fmt"
	"math/big"
)

// ScalingFactor is an exact non-negative rational number numerator /
// denominator. The fraction is kept as given and is not reduced, so that the
// caller controls the exact pair used in precomputations. A ScalingFactor is
// immutable.
type ScalingFactor struct {
	numerator   *big.Int
	denominator *big.Int
}

// NewScalingFactor creates a new ScalingFactor from the given numerator and
// denominator. The numerator must be non-negative and the denominator
// strictly positive.
func NewScalingFactor(numerator, denominator *big.Int) (f ScalingFactor, err error) {

	if numerator == nil || numerator.Sign() < 0 {
		return f, fmt.Errorf("%w: scaling factor numerator must be a non-negative integer", ErrParameter)
	}

	if denominator == nil || denominator.Sign() <= 0 {
		return f, fmt.Errorf("%w: scaling factor denominator must be a positive integer", ErrParameter)
	}

	f.numerator = new(big.Int).Set(numerator)
	f.denominator = new(big.Int).Set(denominator)

	return f, nil
}

// NewScalingFactorUint64 creates a new ScalingFactor from uint64 values.
// The denominator must be strictly positive.
func NewScalingFactorUint64(numerator, denominator uint64) (ScalingFactor, error) {
	return NewScalingFactor(new(big.Int).SetUint64(numerator), new(big.Int).SetUint64(denominator))
}

// OneScalingFactor returns the scaling factor 1/1.
func OneScalingFactor() ScalingFactor {
	return ScalingFactor{numerator: big.NewInt(1), denominator: big.NewInt(1)}
}

// Numerator returns a copy of the numerator.
func (f ScalingFactor) Numerator() *big.Int {
	return new(big.Int).Set(f.numerator)
}

// Denominator returns a copy of the denominator.
func (f ScalingFactor) Denominator() *big.Int {
	return new(big.Int).Set(f.denominator)
}

// IsOne returns true if the factor is equal to one, i.e. if the numerator
// equals the denominator.
func (f ScalingFactor) IsOne() bool {
	return f.numerator.Cmp(f.denominator) == 0
}
