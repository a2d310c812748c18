// Package ring implements RNS-accelerated modular arithmetic operations for
// polynomials in the ring Z_Q[X]/(X^N+1), including number theoretic
// transforms, uniform sampling and exact rescaling between modulus chains.
package ring

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/zeebo/blake3"

	"github.com/Fainabi/fhe/utils"
	"github.com/Fainabi/fhe/utils/sampling"
)

const (
	// MinimumRingDegree is the smallest supported ring degree.
	MinimumRingDegree = 8

	// MaxModulusBits is the largest supported modulus bit-size. The bound
	// leaves enough headroom for the 64-bit modular products and for the
	// fixed-point accumulators of the rescaling kernel to stay exact.
	MaxModulusBits = 62
)

// Context stores the immutable description of a polynomial ring
// Z_Q[X]/(X^N+1) where Q is the product of an ordered chain of distinct
// NTT-friendly primes, along with all the precomputations required to
// operate on polynomials in the RNS representation. A Context is safe for
// concurrent use once created.
type Context struct {
	degree    int
	logDegree int
	moduli    []uint64

	modulusBigint *big.Int

	tables       []*nttTable
	standard     []NumberTheoreticTransformer
	variableTime []NumberTheoreticTransformer

	// crtReconstruction[i] = (Q/q_i) * ((Q/q_i)^-1 mod q_i) mod Q
	crtReconstruction []*big.Int

	fingerprint [32]byte
}

// NewContext creates a new Context for the given modulus chain and degree.
// The degree must be a power of two not smaller than MinimumRingDegree.
// The moduli must be distinct odd primes q of at most MaxModulusBits bits
// with q == 1 mod 2*degree, so that the 2N-th root of unity required by the
// negacyclic NTT exists. The order of the chain is significant.
func NewContext(moduli []uint64, degree int) (c *Context, err error) {

	if !utils.IsPowerOfTwo(degree) || degree < MinimumRingDegree {
		return nil, fmt.Errorf("%w: degree must be a power of two >= %d but is %d", ErrParameter, MinimumRingDegree, degree)
	}

	if len(moduli) == 0 {
		return nil, fmt.Errorf("%w: empty modulus chain", ErrParameter)
	}

	if !utils.AllDistinct(moduli) {
		return nil, fmt.Errorf("%w: duplicated moduli in the chain", ErrParameter)
	}

	NthRoot := uint64(degree) << 1

	for _, q := range moduli {

		if q&1 == 0 {
			return nil, fmt.Errorf("%w: modulus %d is even", ErrParameter, q)
		}

		if bits.Len64(q) > MaxModulusBits {
			return nil, fmt.Errorf("%w: modulus %d exceeds %d bits", ErrParameter, q, MaxModulusBits)
		}

		if (q-1)%NthRoot != 0 {
			return nil, fmt.Errorf("%w: modulus %d != 1 mod %d", ErrParameter, q, NthRoot)
		}

		if !IsPrime(q) {
			return nil, fmt.Errorf("%w: modulus %d is not prime", ErrParameter, q)
		}
	}

	c = &Context{
		degree:            degree,
		logDegree:         bits.Len64(uint64(degree) - 1),
		moduli:            make([]uint64, len(moduli)),
		tables:            make([]*nttTable, len(moduli)),
		standard:          make([]NumberTheoreticTransformer, len(moduli)),
		variableTime:      make([]NumberTheoreticTransformer, len(moduli)),
		crtReconstruction: make([]*big.Int, len(moduli)),
	}

	copy(c.moduli, moduli)

	for i, q := range c.moduli {
		if c.tables[i], err = newNTTTable(q, degree); err != nil {
			return nil, fmt.Errorf("ntt table for modulus %d: %w", q, err)
		}
		c.standard[i] = NumberTheoreticTransformerStandard{tbl: c.tables[i]}
		c.variableTime[i] = NumberTheoreticTransformerVariableTime{tbl: c.tables[i]}
	}

	c.modulusBigint = big.NewInt(1)
	for _, q := range c.moduli {
		c.modulusBigint.Mul(c.modulusBigint, new(big.Int).SetUint64(q))
	}

	for i, q := range c.moduli {
		qB := new(big.Int).SetUint64(q)
		QiHat := new(big.Int).Quo(c.modulusBigint, qB)
		QiHatInv := new(big.Int).ModInverse(QiHat, qB)
		c.crtReconstruction[i] = new(big.Int).Mul(QiHat, QiHatInv)
		c.crtReconstruction[i].Mod(c.crtReconstruction[i], c.modulusBigint)
	}

	c.fingerprint = fingerprint(degree, c.moduli)

	return c, nil
}

func fingerprint(degree int, moduli []uint64) [32]byte {
	data := make([]byte, 0, 8*(len(moduli)+1))
	data = binary.BigEndian.AppendUint64(data, uint64(degree))
	for _, q := range moduli {
		data = binary.BigEndian.AppendUint64(data, q)
	}
	return blake3.Sum256(data)
}

// Degree returns the degree N of the ring.
func (c *Context) Degree() int {
	return c.degree
}

// Moduli returns a copy of the modulus chain.
func (c *Context) Moduli() []uint64 {
	moduli := make([]uint64, len(c.moduli))
	copy(moduli, c.moduli)
	return moduli
}

// ModulusCount returns the number of moduli in the chain.
func (c *Context) ModulusCount() int {
	return len(c.moduli)
}

// Modulus returns the composite modulus Q as a new big.Int.
func (c *Context) Modulus() *big.Int {
	return new(big.Int).Set(c.modulusBigint)
}

// Equal returns true if the two contexts describe the same ring, i.e. have
// the same degree and the same ordered modulus chain.
func (c *Context) Equal(other *Context) bool {
	if c == other {
		return true
	}
	return c != nil && other != nil && c.degree == other.degree && utils.EqualSlice(c.moduli, other.moduli)
}

// Fingerprint returns a digest identifying the context, suitable as a
// compact reference to the ring at a serialization boundary. Two contexts
// have the same fingerprint if and only if they are Equal.
func (c *Context) Fingerprint() [32]byte {
	return c.fingerprint
}

// transformer returns the NTT operator of the i-th modulus for the
// requested timing strategy.
func (c *Context) transformer(i int, variableTime bool) NumberTheoreticTransformer {
	if variableTime {
		return c.variableTime[i]
	}
	return c.standard[i]
}

// NewPoly creates a new polynomial over the context, with all coefficients
// set to zero, in the power basis representation.
func (c *Context) NewPoly() *Poly {
	p := &Poly{
		context: c,
		Buff:    make([]uint64, c.degree*len(c.moduli)),
		Coeffs:  make([][]uint64, len(c.moduli)),
	}
	for i := range p.Coeffs {
		p.Coeffs[i] = p.Buff[i*c.degree : (i+1)*c.degree]
	}
	return p
}

// NewUniformPoly creates a new polynomial over the context with coefficients
// sampled uniformly at random from the given PRNG, in the power basis
// representation.
func (c *Context) NewUniformPoly(prng sampling.PRNG) *Poly {
	p := c.NewPoly()
	NewUniformSampler(prng, c).Read(p)
	return p
}

// PolyToBigint reconstructs the integer coefficients of p in [0, Q) from
// their RNS residues and writes them on values, which must be at
// least N entries long. Nil entries of values are allocated.
func (c *Context) PolyToBigint(p *Poly, values []*big.Int) (err error) {

	if !c.Equal(p.context) {
		return fmt.Errorf("cannot PolyToBigint: %w", ErrContextMismatch)
	}

	if len(values) < c.degree {
		return fmt.Errorf("%w: values is smaller than the ring degree", ErrParameter)
	}

	tmp := new(big.Int)

	for j := 0; j < c.degree; j++ {

		if values[j] == nil {
			values[j] = new(big.Int)
		} else {
			values[j].SetUint64(0)
		}

		for i := range c.moduli {
			tmp.SetUint64(p.Coeffs[i][j])
			tmp.Mul(tmp, c.crtReconstruction[i])
			values[j].Add(values[j], tmp)
		}

		values[j].Mod(values[j], c.modulusBigint)
	}

	return nil
}

// NewPolyFromBigint creates a new polynomial in the power basis
// representation whose coefficients are the given integers reduced mod each
// modulus of the chain. Negative integers are mapped to their representative
// in [0, Q). values must be at least N entries long.
func (c *Context) NewPolyFromBigint(values []*big.Int) (p *Poly, err error) {

	if len(values) < c.degree {
		return nil, fmt.Errorf("%w: values is smaller than the ring degree", ErrParameter)
	}

	p = c.NewPoly()

	tmp := new(big.Int)

	for i, q := range c.moduli {
		qB := new(big.Int).SetUint64(q)
		coeffs := p.Coeffs[i]
		for j := 0; j < c.degree; j++ {
			coeffs[j] = tmp.Mod(values[j], qB).Uint64()
		}
	}

	return p, nil
}
