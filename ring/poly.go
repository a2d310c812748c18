package ring

import (
	"fmt"
)

// Representation identifies the basis in which the coefficients of a
// polynomial are expressed.
type Representation uint8

const (
	// PowerBasis is the coefficient representation, i.e. the coefficients
	// of the polynomial in the power basis 1, X, X^2, ...
	PowerBasis Representation = iota
	// NTT is the evaluation representation, i.e. the values of the
	// polynomial at the roots of X^N+1, in bit-reversed order.
	NTT
)

func (r Representation) String() string {
	switch r {
	case PowerBasis:
		return "PowerBasis"
	case NTT:
		return "NTT"
	default:
		return "Unknown"
	}
}

// Poly is the structure that contains the coefficients of a polynomial over
// a Context, as a matrix of residues: Coeffs[i][j] is the j-th coefficient
// mod the i-th modulus of the chain. The representation tag records whether
// the rows are in the power basis or in the NTT domain; it is updated
// together with the coefficients by NTT and INTT.
type Poly struct {
	Coeffs [][]uint64 // Dimension-2 slice of coefficients (re-slice of Buff)
	Buff   []uint64   // Dimension-1 slice of coefficients

	context        *Context
	representation Representation
	variableTime   bool
}

// Context returns the context the polynomial is attached to.
func (pol *Poly) Context() *Context {
	return pol.context
}

// Representation returns the current representation of the polynomial.
func (pol *Poly) Representation() Representation {
	return pol.representation
}

// AllowVariableTime sets whether operations on the polynomial may use
// variable-time arithmetic. Variable-time operations are faster but leak
// information about the coefficients through timing, so they must be opted
// into explicitly. The flag is propagated to results derived from the
// polynomial.
func (pol *Poly) AllowVariableTime(allow bool) {
	pol.variableTime = allow
}

// VariableTime returns true if operations on the polynomial may use
// variable-time arithmetic.
func (pol *Poly) VariableTime() bool {
	return pol.variableTime
}

// N returns the number of coefficients of the polynomial, which equals the
// degree of the ring cyclotomic polynomial.
func (pol *Poly) N() int {
	return pol.context.degree
}

// CopyNew creates an exact copy of the target polynomial.
func (pol *Poly) CopyNew() (p1 *Poly) {
	p1 = pol.context.NewPoly()
	copy(p1.Buff, pol.Buff)
	p1.representation = pol.representation
	p1.variableTime = pol.variableTime
	return
}

// Equal returns true if the two polynomials are attached to equal contexts,
// are in the same representation and have identical coefficients. The
// variable-time flag is a timing strategy, not a value, and is ignored.
func (pol *Poly) Equal(other *Poly) bool {

	if pol == other {
		return true
	}

	if pol == nil || other == nil {
		return false
	}

	if !pol.context.Equal(other.context) || pol.representation != other.representation {
		return false
	}

	for i := range pol.Buff {
		if pol.Buff[i] != other.Buff[i] {
			return false
		}
	}

	return true
}

// NTT applies the forward negacyclic NTT on each row of the polynomial,
// in-place, and updates the representation tag. The polynomial must be in
// the power basis representation.
func (pol *Poly) NTT() error {

	if pol.representation != PowerBasis {
		return fmt.Errorf("cannot NTT: %w: expected %s but poly is in %s", ErrRepresentation, PowerBasis, pol.representation)
	}

	c := pol.context
	for i := range c.moduli {
		c.transformer(i, pol.variableTime).Forward(pol.Coeffs[i])
	}

	pol.representation = NTT

	return nil
}

// INTT applies the backward negacyclic NTT on each row of the polynomial,
// in-place, and updates the representation tag. The polynomial must be in
// the NTT representation.
func (pol *Poly) INTT() error {

	if pol.representation != NTT {
		return fmt.Errorf("cannot INTT: %w: expected %s but poly is in %s", ErrRepresentation, NTT, pol.representation)
	}

	c := pol.context
	for i := range c.moduli {
		c.transformer(i, pol.variableTime).Backward(pol.Coeffs[i])
	}

	pol.representation = PowerBasis

	return nil
}
