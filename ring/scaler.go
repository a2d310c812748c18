package ring

import (
	"fmt"
)

// Scaler multiplies polynomials by an exact rational factor while converting
// them from a source context to a destination context. The two contexts must
// share the same degree but their modulus chains are unrelated.
//
// When the factor is one, the longest common prefix of the two modulus
// chains is detected once at construction and the corresponding rows are
// copied instead of being recomputed.
type Scaler struct {
	from, to *Context
	factor   ScalingFactor

	commonModuli int
	kernel       *RnsScaler
}

// NewScaler creates a new Scaler from the source context to the destination
// context, scaling by the given factor. The contexts must have the same
// degree.
func NewScaler(from, to *Context, factor ScalingFactor) (s *Scaler, err error) {

	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: nil context", ErrParameter)
	}

	if from.degree != to.degree {
		return nil, fmt.Errorf("%w: source and destination contexts have different degrees (%d != %d)", ErrParameter, from.degree, to.degree)
	}

	s = &Scaler{
		from:   from,
		to:     to,
		factor: factor,
		kernel: NewRnsScaler(from, to, factor),
	}

	if factor.IsOne() {
		for i := 0; i < len(from.moduli) && i < len(to.moduli); i++ {
			if from.moduli[i] != to.moduli[i] {
				break
			}
			s.commonModuli++
		}
	}

	return s, nil
}

// Scale returns round(p * factor) reduced mod the destination chain, with
// residues in [Q/2, Q) treated as centered negative values. When floor is
// true the scaled coefficients are truncated towards negative infinity
// instead of rounded.
//
// The result is in the same representation as p and inherits its
// variable-time flag; p is never modified.
func (s *Scaler) Scale(p *Poly, floor bool) (out *Poly, err error) {

	if !s.from.Equal(p.context) {
		return nil, fmt.Errorf("cannot Scale: %w", ErrContextMismatch)
	}

	out = s.to.NewPoly()
	out.representation = p.representation
	out.variableTime = p.variableTime

	// Rows sharing a modulus with the source are unchanged by a factor of
	// one, in either representation, so they are copied verbatim.
	for i := 0; i < s.commonModuli; i++ {
		copy(out.Coeffs[i], p.Coeffs[i])
	}

	if s.commonModuli == len(s.to.moduli) {
		return out, nil
	}

	// The kernel operates on power basis residues, so polynomials in the
	// NTT representation are brought back on a private copy.
	working := p
	if p.representation == NTT {
		working = p.CopyNew()
		if err = working.INTT(); err != nil {
			return nil, err
		}
	}

	k := len(s.from.moduli)
	col := make([]uint64, k)
	res := make([]uint64, len(s.to.moduli))

	for j := 0; j < s.from.degree; j++ {

		for i := range col {
			col[i] = working.Coeffs[i][j]
		}

		s.kernel.Scale(col, res, s.commonModuli, floor)

		for i := s.commonModuli; i < len(res); i++ {
			out.Coeffs[i][j] = res[i]
		}
	}

	if p.representation == NTT {
		for i := s.commonModuli; i < len(s.to.moduli); i++ {
			s.to.transformer(i, p.variableTime).Forward(out.Coeffs[i])
		}
	}

	return out, nil
}
