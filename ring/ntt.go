package ring

import (
	"fmt"
	"math/bits"

	"github.com/Fainabi/fhe/utils"
)

// NumberTheoreticTransformer is an interface for the negacyclic number
// theoretic transform over a single prime modulus. Implementations operate
// in-place on a coefficient vector of length equal to the ring degree.
// The forward transform returns coefficients in bit-reversed order and the
// backward transform expects its input in bit-reversed order, so that the
// two compose to the identity and pointwise operations remain valid.
type NumberTheoreticTransformer interface {
	Forward(p []uint64)
	Backward(p []uint64)
}

// nttTable stores the precomputations of the negacyclic NTT for a single
// prime modulus q with q == 1 mod 2N.
type nttTable struct {
	modulus uint64
	mask    uint64

	brc []uint64 // Barrett reduction constants for modulus
	mrc uint64   // Montgomery reduction constant for modulus

	rootsForward  []uint64 // powers of the primitive 2N-th root, Montgomery form, bit-reversed order
	rootsBackward []uint64 // powers of the inverse root, Montgomery form, bit-reversed order
	nInv          uint64   // N^-1 mod q, Montgomery form

	primitiveRoot uint64 // the primitive 2N-th root of unity the tables are built from
}

// newNTTTable generates the NTT tables for the given modulus and degree.
// The primitive 2N-th root of unity is derived deterministically from the
// smallest generator candidate, so that identical inputs always produce
// bit-identical tables.
func newNTTTable(q uint64, degree int) (tbl *nttTable, err error) {

	NthRoot := uint64(degree) << 1

	if (q-1)%NthRoot != 0 {
		return nil, fmt.Errorf("%w: modulus %d != 1 mod %d", ErrParameter, q, NthRoot)
	}

	tbl = &nttTable{
		modulus:       q,
		mask:          (1 << uint64(bits.Len64(q-1))) - 1,
		brc:           BRedConstant(q),
		mrc:           MRedConstant(q),
		rootsForward:  make([]uint64, degree),
		rootsBackward: make([]uint64, degree),
	}

	var psi uint64
	if psi, err = primitiveNthRoot(q, NthRoot); err != nil {
		return nil, err
	}
	tbl.primitiveRoot = psi

	psiMont := MForm(psi, q, tbl.brc)
	psiInvMont := MForm(ModExp(psi, q-2, q), q, tbl.brc)

	tbl.rootsForward[0] = MForm(1, q, tbl.brc)
	tbl.rootsBackward[0] = tbl.rootsForward[0]

	logN := uint64(bits.Len64(uint64(degree) - 1))

	// Computes rootsForward[j] = psi^(bitrev(j)) and rootsBackward[j] = psi^(-bitrev(j))
	for j := uint64(1); j < uint64(degree); j++ {
		indexReversePrev := utils.BitReverse64(j-1, logN)
		indexReverseNext := utils.BitReverse64(j, logN)
		tbl.rootsForward[indexReverseNext] = MRed(tbl.rootsForward[indexReversePrev], psiMont, q, tbl.mrc)
		tbl.rootsBackward[indexReverseNext] = MRed(tbl.rootsBackward[indexReversePrev], psiInvMont, q, tbl.mrc)
	}

	tbl.nInv = MForm(ModExp(uint64(degree), q-2, q), q, tbl.brc)

	return tbl, nil
}

// primitiveNthRoot returns a primitive NthRoot-th root of unity mod q.
// Candidates are derived from increasing generator bases, and a candidate is
// accepted when its order is exactly NthRoot, which for NthRoot = 2N means
// psi^N == -1 mod q. The search is deterministic so that the same modulus
// always yields the same root.
func primitiveNthRoot(q, NthRoot uint64) (psi uint64, err error) {
	for g := uint64(2); g < q; g++ {
		psi = ModExp(g, (q-1)/NthRoot, q)
		if ModExp(psi, NthRoot>>1, q) == q-1 {
			return psi, nil
		}
	}
	return 0, fmt.Errorf("%w: no primitive %d-th root of unity mod %d", ErrParameter, NthRoot, q)
}

// NumberTheoreticTransformerStandard computes the negacyclic NTT in constant
// time: every butterfly reduces with branch-free masked reductions so that
// the sequence of executed instructions does not depend on the coefficients.
type NumberTheoreticTransformerStandard struct {
	tbl *nttTable
}

func (ntt NumberTheoreticTransformerStandard) Forward(p []uint64) {
	nttStandard(p, ntt.tbl)
}

func (ntt NumberTheoreticTransformerStandard) Backward(p []uint64) {
	inttStandard(p, ntt.tbl)
}

// NumberTheoreticTransformerVariableTime computes the negacyclic NTT with
// branching reductions. It is faster than the standard transformer but its
// timing depends on the coefficient values. Outputs are bit-identical to the
// standard transformer.
type NumberTheoreticTransformerVariableTime struct {
	tbl *nttTable
}

func (ntt NumberTheoreticTransformerVariableTime) Forward(p []uint64) {
	nttVariableTime(p, ntt.tbl)
}

func (ntt NumberTheoreticTransformerVariableTime) Backward(p []uint64) {
	inttVariableTime(p, ntt.tbl)
}

// nttStandard computes the forward negacyclic NTT in-place with a
// Cooley-Tukey decimation-in-time pass over the bit-reversed root table.
// All reductions are branch-free.
func nttStandard(p []uint64, tbl *nttTable) {

	N := len(p)
	q := tbl.modulus
	mrc := tbl.mrc
	roots := tbl.rootsForward

	t := N
	for m := 1; m < N; m <<= 1 {

		t >>= 1

		for i := 0; i < m; i++ {

			j1 := 2 * i * t
			j2 := j1 + t
			psi := roots[m+i]

			for j := j1; j < j2; j++ {
				u := p[j]
				v := CRedCT(MRedLazy(p[j+t], psi, q, mrc), q)
				p[j] = CRedCT(u+v, q)
				p[j+t] = CRedCT(u+q-v, q)
			}
		}
	}
}

// inttStandard computes the backward negacyclic NTT in-place with a
// Gentleman-Sande decimation-in-frequency pass, followed by the
// multiplication by N^-1. All reductions are branch-free.
func inttStandard(p []uint64, tbl *nttTable) {

	N := len(p)
	q := tbl.modulus
	mrc := tbl.mrc
	roots := tbl.rootsBackward

	t := 1
	for m := N; m > 1; m >>= 1 {

		j1 := 0
		h := m >> 1

		for i := 0; i < h; i++ {

			j2 := j1 + t
			psi := roots[h+i]

			for j := j1; j < j2; j++ {
				u := p[j]
				v := p[j+t]
				p[j] = CRedCT(u+v, q)
				p[j+t] = CRedCT(MRedLazy(u+q-v, psi, q, mrc), q)
			}

			j1 += t << 1
		}

		t <<= 1
	}

	nInv := tbl.nInv
	for j := range p {
		p[j] = CRedCT(MRedLazy(p[j], nInv, q, mrc), q)
	}
}

// nttVariableTime is the branching variant of nttStandard.
func nttVariableTime(p []uint64, tbl *nttTable) {

	N := len(p)
	q := tbl.modulus
	mrc := tbl.mrc
	roots := tbl.rootsForward

	t := N
	for m := 1; m < N; m <<= 1 {

		t >>= 1

		for i := 0; i < m; i++ {

			j1 := 2 * i * t
			j2 := j1 + t
			psi := roots[m+i]

			for j := j1; j < j2; j++ {
				u := p[j]
				v := MRed(p[j+t], psi, q, mrc)
				p[j] = CRed(u+v, q)
				p[j+t] = CRed(u+q-v, q)
			}
		}
	}
}

// inttVariableTime is the branching variant of inttStandard.
func inttVariableTime(p []uint64, tbl *nttTable) {

	N := len(p)
	q := tbl.modulus
	mrc := tbl.mrc
	roots := tbl.rootsBackward

	t := 1
	for m := N; m > 1; m >>= 1 {

		j1 := 0
		h := m >> 1

		for i := 0; i < h; i++ {

			j2 := j1 + t
			psi := roots[h+i]

			for j := j1; j < j2; j++ {
				u := p[j]
				v := p[j+t]
				p[j] = CRed(u+v, q)
				p[j+t] = MRed(u+q-v, psi, q, mrc)
			}

			j1 += t << 1
		}

		t <<= 1
	}

	nInv := tbl.nInv
	for j := range p {
		p[j] = MRed(p[j], nInv, q, mrc)
	}
}
