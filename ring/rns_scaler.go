package ring

import (
	"math/big"
	"math/bits"
)

// u192 is a 192-bit unsigned fixed-point value, in little-endian 64-bit
// words. It is used to carry the fractional parts of the rescaling
// precomputations with enough precision for the rounding to be exact.
type u192 [3]uint64

// bigToU192 returns the low 192 bits of v, which must be non-negative.
func bigToU192(v *big.Int) (w u192) {
	mask := new(big.Int).SetUint64(^uint64(0))
	t := new(big.Int).Set(v)
	for i := range w {
		w[i] = new(big.Int).And(t, mask).Uint64()
		t.Rsh(t, 64)
	}
	return
}

// accumulator256 is a 256-bit unsigned accumulator.
type accumulator256 [4]uint64

// addMul adds y*x to the accumulator.
func (acc *accumulator256) addMul(y u192, x uint64) {

	hi0, lo0 := bits.Mul64(y[0], x)
	hi1, lo1 := bits.Mul64(y[1], x)
	hi2, lo2 := bits.Mul64(y[2], x)

	p1, c := bits.Add64(hi0, lo1, 0)
	p2, c := bits.Add64(hi1, lo2, c)
	p3 := hi2 + c

	var carry uint64
	acc[0], carry = bits.Add64(acc[0], lo0, 0)
	acc[1], carry = bits.Add64(acc[1], p1, carry)
	acc[2], carry = bits.Add64(acc[2], p2, carry)
	acc[3], _ = bits.Add64(acc[3], p3, carry)
}

// roundShift192 adds one half and returns the accumulator shifted right by
// 192 bits, i.e. the fixed-point value rounded to the nearest integer.
func (acc *accumulator256) roundShift192() uint64 {
	_, c := bits.Add64(acc[2], 1<<63, 0)
	return acc[3] + c
}

// accumulator320 is a 320-bit two's-complement accumulator, interpreted as a
// signed fixed-point value with 192 fractional bits.
type accumulator320 [5]uint64

// addMul adds y*x to the accumulator.
func (acc *accumulator320) addMul(y u192, x uint64) {

	hi0, lo0 := bits.Mul64(y[0], x)
	hi1, lo1 := bits.Mul64(y[1], x)
	hi2, lo2 := bits.Mul64(y[2], x)

	p1, c := bits.Add64(hi0, lo1, 0)
	p2, c := bits.Add64(hi1, lo2, c)
	p3 := hi2 + c

	var carry uint64
	acc[0], carry = bits.Add64(acc[0], lo0, 0)
	acc[1], carry = bits.Add64(acc[1], p1, carry)
	acc[2], carry = bits.Add64(acc[2], p2, carry)
	acc[3], carry = bits.Add64(acc[3], p3, carry)
	acc[4] += carry
}

// subMul subtracts y*x from the accumulator.
func (acc *accumulator320) subMul(y u192, x uint64) {

	hi0, lo0 := bits.Mul64(y[0], x)
	hi1, lo1 := bits.Mul64(y[1], x)
	hi2, lo2 := bits.Mul64(y[2], x)

	p1, c := bits.Add64(hi0, lo1, 0)
	p2, c := bits.Add64(hi1, lo2, c)
	p3 := hi2 + c

	var borrow uint64
	acc[0], borrow = bits.Sub64(acc[0], lo0, 0)
	acc[1], borrow = bits.Sub64(acc[1], p1, borrow)
	acc[2], borrow = bits.Sub64(acc[2], p2, borrow)
	acc[3], borrow = bits.Sub64(acc[3], p3, borrow)
	acc[4] -= borrow
}

// addBit adds 2^bit to the accumulator.
func (acc *accumulator320) addBit(bit uint) {
	var carry uint64
	word := bit >> 6
	acc[word], carry = bits.Add64(acc[word], 1<<(bit&63), 0)
	for i := int(word) + 1; i < len(acc) && carry != 0; i++ {
		acc[i], carry = bits.Add64(acc[i], 0, carry)
	}
}

// RnsScaler stores the precomputations required to apply the exact scaling
// x -> round(x * numerator / denominator) coefficient-wise on RNS residues,
// converting from a source modulus chain Q to a destination chain P without
// reconstructing any multi-precision integer at evaluation time.
//
// Residues x in [Q/2, Q) are treated as the centered value x - Q, and the
// scaled result is reduced mod P, matching an exact computation over the
// integers. The evaluation is exact for denominators below 2^62 and source
// chains of at most 64 moduli, for every coefficient whose distance to the
// Q/2 centering boundary is at least Q/2^128.
//
// The construction is the usual CRT interpolation x = sum_i y_i*(Q/q_i) - vQ
// with y_i = x_i*(Q/q_i)^-1 mod q_i. The overflow count v is recovered by
// rounding sum_i y_i/q_i, evaluated with 192-bit reciprocals; the rounding
// absorbs the centering, as it lands on v+1 exactly when x >= Q/2. The
// scaled value sum_i y_i*(n*(Q/q_i)/d) - v*(nQ/d) is then split into integer
// parts, precomputed as residues mod each destination modulus, and 192-bit
// fractional parts, accumulated in a 320-bit two's-complement accumulator
// whose floor yields the exact rounding correction.
type RnsScaler struct {
	from, to *Context

	qHatInvMont []uint64 // (Q/q_i)^-1 mod q_i, Montgomery form
	rcp         []u192   // ceil(2^192 / q_i)

	theta      []u192     // frac(numerator*(Q/q_i) / denominator), 192-bit fixed point
	thetaGamma u192       // frac(numerator*Q / denominator), 192-bit fixed point
	wFloorMont [][]uint64 // floor(numerator*(Q/q_i) / denominator) mod p_j, Montgomery form
	vGamma     [][]uint64 // v * floor(numerator*Q / denominator) mod p_j, for v in [0, k]

	pow64Mont []uint64 // 2^64 mod p_j, Montgomery form
	pow128    []uint64 // 2^128 mod p_j

	buffY []uint64
}

// NewRnsScaler creates a new RnsScaler converting residues from the source
// context chain to the destination context chain while scaling by the given
// factor. The construction performs all multi-precision arithmetic once, so
// that evaluation is free of big integers.
func NewRnsScaler(from, to *Context, factor ScalingFactor) (r *RnsScaler) {

	k := len(from.moduli)
	l := len(to.moduli)

	r = &RnsScaler{
		from:        from,
		to:          to,
		qHatInvMont: make([]uint64, k),
		rcp:         make([]u192, k),
		theta:       make([]u192, k),
		wFloorMont:  make([][]uint64, k),
		vGamma:      make([][]uint64, l),
		pow64Mont:   make([]uint64, l),
		pow128:      make([]uint64, l),
		buffY:       make([]uint64, k),
	}

	n := factor.numerator
	d := factor.denominator

	Q := from.modulusBigint

	one192 := new(big.Int).Lsh(big.NewInt(1), 192)
	tmp := new(big.Int)

	for i, qi := range from.moduli {
		tbl := from.tables[i]
		qB := new(big.Int).SetUint64(qi)

		qiHat := new(big.Int).Quo(Q, qB)
		qiHatInv := new(big.Int).ModInverse(qiHat, qB)
		r.qHatInvMont[i] = MForm(qiHatInv.Uint64(), qi, tbl.brc)

		// ceil(2^192 / q_i)
		tmp.Sub(new(big.Int).Add(one192, qB), big.NewInt(1))
		r.rcp[i] = bigToU192(tmp.Quo(tmp, qB))

		// numerator * (Q/q_i) / denominator, split into integer and
		// fractional parts
		nQiHat := new(big.Int).Mul(n, qiHat)
		wFloor := new(big.Int).Quo(nQiHat, d)
		r.theta[i] = bigToU192(tmp.Quo(tmp.Lsh(tmp.Mod(nQiHat, d), 192), d))

		r.wFloorMont[i] = make([]uint64, l)
		for j, pj := range to.moduli {
			pB := new(big.Int).SetUint64(pj)
			r.wFloorMont[i][j] = MForm(tmp.Mod(wFloor, pB).Uint64(), pj, to.tables[j].brc)
		}
	}

	// numerator * Q / denominator, split into integer and fractional parts
	nQ := new(big.Int).Mul(n, Q)
	gammaFloor := new(big.Int).Quo(nQ, d)
	r.thetaGamma = bigToU192(tmp.Quo(tmp.Lsh(tmp.Mod(nQ, d), 192), d))

	for j, pj := range to.moduli {
		pB := new(big.Int).SetUint64(pj)
		tblP := to.tables[j]

		gammaModP := new(big.Int).Mod(gammaFloor, pB)
		r.vGamma[j] = make([]uint64, k+1)
		for v := 0; v <= k; v++ {
			r.vGamma[j][v] = tmp.Mod(tmp.Mul(tmp.SetInt64(int64(v)), gammaModP), pB).Uint64()
		}

		r.pow64Mont[j] = MForm(tmp.Mod(tmp.Lsh(big.NewInt(1), 64), pB).Uint64(), pj, tblP.brc)
		r.pow128[j] = tmp.Mod(tmp.Lsh(big.NewInt(1), 128), pB).Uint64()
	}

	return r
}

// Scale computes the scaled residues of a single coefficient. col contains
// the residues of the coefficient mod each source modulus, and the result is
// written on out[start:], one residue per destination modulus starting at
// the start-th one. When floor is true the scaled value is truncated towards
// negative infinity; otherwise it is rounded to the nearest integer, with
// halves going towards positive infinity.
//
// Scale keeps no state across calls but reuses an internal buffer, so an
// RnsScaler is not safe for concurrent use.
func (r *RnsScaler) Scale(col, out []uint64, start int, floor bool) {

	k := len(r.from.moduli)

	if len(col) != k || len(out) != len(r.to.moduli) {
		// Sanity check, callers always pass full residue columns.
		panic("rns scaler: invalid residue column size")
	}

	y := r.buffY

	// y_i = x_i * (Q/q_i)^-1 mod q_i, so that sum_i y_i*(Q/q_i) = x + vQ
	for i, qi := range r.from.moduli {
		y[i] = MRed(col[i], r.qHatInvMont[i], qi, r.from.tables[i].mrc)
	}

	// v = round(sum_i y_i/q_i), which overshoots to v+1 exactly when the
	// coefficient is in the centered negative range [Q/2, Q)
	var vAcc accumulator256
	for i := range y {
		vAcc.addMul(r.rcp[i], y[i])
	}
	v := vAcc.roundShift192()

	// Fractional part sum_i y_i*theta_i - v*thetaGamma, with a +2^-64 bias
	// that absorbs the truncation of the precomputed fractions
	var wAcc accumulator320
	for i := range y {
		wAcc.addMul(r.theta[i], y[i])
	}
	wAcc.subMul(r.thetaGamma, v)
	wAcc.addBit(128)
	if !floor {
		// one half, so that the floor below rounds to nearest
		wAcc.addBit(191)
	}

	// floor of the signed fixed-point accumulator
	wLo, wHi := wAcc[3], wAcc[4]
	sign := wHi >> 63

	for j := start; j < len(out); j++ {

		pj := r.to.moduli[j]
		tblP := r.to.tables[j]

		var sum uint64
		for i := range y {
			sum = CRed(sum+MRed(y[i], r.wFloorMont[i][j], pj, tblP.mrc), pj)
		}

		sum = CRed(sum+pj-r.vGamma[j][v], pj)

		// (wHi*2^64 + wLo) mod p_j, adjusted by -2^128 when negative
		w := MRed(BRedAdd(wHi, pj, tblP.brc), r.pow64Mont[j], pj, tblP.mrc)
		w = CRed(w+BRedAdd(wLo, pj, tblP.brc), pj)
		w = CRed(w+sign*(pj-r.pow128[j]), pj)

		out[j] = CRed(sum+w, pj)
	}
}
