package ring

import (
	"fmt"
	"math/big"
)

func (pol *Poly) checkBinOp(op string, other *Poly) error {
	if !pol.context.Equal(other.context) {
		return fmt.Errorf("cannot %s: %w", op, ErrContextMismatch)
	}
	if pol.representation != other.representation {
		return fmt.Errorf("cannot %s: %w: %s and %s", op, ErrRepresentation, pol.representation, other.representation)
	}
	return nil
}

// Add returns pol + other. The operands must be attached to equal contexts
// and be in the same representation, which the result inherits.
func (pol *Poly) Add(other *Poly) (*Poly, error) {

	if err := pol.checkBinOp("Add", other); err != nil {
		return nil, err
	}

	out := pol.newResult(other)

	for i, q := range pol.context.moduli {
		p0, p1, p2 := pol.Coeffs[i], other.Coeffs[i], out.Coeffs[i]
		if out.variableTime {
			for j := range p2 {
				p2[j] = CRed(p0[j]+p1[j], q)
			}
		} else {
			for j := range p2 {
				p2[j] = CRedCT(p0[j]+p1[j], q)
			}
		}
	}

	return out, nil
}

// Sub returns pol - other. The operands must be attached to equal contexts
// and be in the same representation, which the result inherits.
func (pol *Poly) Sub(other *Poly) (*Poly, error) {

	if err := pol.checkBinOp("Sub", other); err != nil {
		return nil, err
	}

	out := pol.newResult(other)

	for i, q := range pol.context.moduli {
		p0, p1, p2 := pol.Coeffs[i], other.Coeffs[i], out.Coeffs[i]
		if out.variableTime {
			for j := range p2 {
				p2[j] = CRed(p0[j]+q-p1[j], q)
			}
		} else {
			for j := range p2 {
				p2[j] = CRedCT(p0[j]+q-p1[j], q)
			}
		}
	}

	return out, nil
}

// Neg returns -pol.
func (pol *Poly) Neg() *Poly {

	out := pol.newResult(pol)

	for i, q := range pol.context.moduli {
		p0, p2 := pol.Coeffs[i], out.Coeffs[i]
		if out.variableTime {
			for j := range p2 {
				p2[j] = CRed(q-p0[j], q)
			}
		} else {
			for j := range p2 {
				p2[j] = CRedCT(q-p0[j], q)
			}
		}
	}

	return out
}

// MulCoeffs returns the element-wise product pol * other. Both operands must
// be in the NTT representation, in which the element-wise product is the
// negacyclic convolution of the power basis coefficients.
func (pol *Poly) MulCoeffs(other *Poly) (*Poly, error) {

	if err := pol.checkBinOp("MulCoeffs", other); err != nil {
		return nil, err
	}

	if pol.representation != NTT {
		return nil, fmt.Errorf("cannot MulCoeffs: %w: operands must be in %s", ErrRepresentation, NTT)
	}

	out := pol.newResult(other)

	for i, q := range pol.context.moduli {
		brc := pol.context.tables[i].brc
		p0, p1, p2 := pol.Coeffs[i], other.Coeffs[i], out.Coeffs[i]
		for j := range p2 {
			p2[j] = BRed(p0[j], p1[j], q, brc)
		}
	}

	return out, nil
}

// MulScalar returns pol * scalar.
func (pol *Poly) MulScalar(scalar uint64) *Poly {

	out := pol.newResult(pol)

	for i, q := range pol.context.moduli {
		tbl := pol.context.tables[i]
		scalarMont := MForm(BRedAdd(scalar, q, tbl.brc), q, tbl.brc)
		p0, p2 := pol.Coeffs[i], out.Coeffs[i]
		for j := range p2 {
			p2[j] = MRed(p0[j], scalarMont, q, tbl.mrc)
		}
	}

	return out
}

// MulScalarBigint returns pol * scalar, with the scalar reduced mod each
// modulus of the chain. Negative scalars are supported.
func (pol *Poly) MulScalarBigint(scalar *big.Int) *Poly {

	out := pol.newResult(pol)

	tmp := new(big.Int)

	for i, q := range pol.context.moduli {
		tbl := pol.context.tables[i]
		qB := new(big.Int).SetUint64(q)
		scalarMont := MForm(tmp.Mod(scalar, qB).Uint64(), q, tbl.brc)
		p0, p2 := pol.Coeffs[i], out.Coeffs[i]
		for j := range p2 {
			p2[j] = MRed(p0[j], scalarMont, q, tbl.mrc)
		}
	}

	return out
}

// newResult allocates the result of an operation between pol and other,
// inheriting the representation and allowing variable time only when every
// operand does.
func (pol *Poly) newResult(other *Poly) *Poly {
	out := pol.context.NewPoly()
	out.representation = pol.representation
	out.variableTime = pol.variableTime && other.variableTime
	return out
}
