package ring

import (
	"encoding/binary"

	"github.com/Fainabi/fhe/utils/sampling"
)

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of uniform polynomials. A UniformSampler is not safe for concurrent use.
type UniformSampler struct {
	prng    sampling.PRNG
	context *Context

	randomBuffer []byte
	ptr          int
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG and
// a ring Context.
func NewUniformSampler(prng sampling.PRNG, context *Context) (u *UniformSampler) {
	return &UniformSampler{
		prng:         prng,
		context:      context,
		randomBuffer: make([]byte, 1024),
		ptr:          1024, // empty, filled on first read
	}
}

// Read samples a polynomial with coefficients following a uniform
// distribution over [0, q_i-1] for each modulus, overwriting pol. The
// representation tag of pol is reset to the power basis.
func (u *UniformSampler) Read(pol *Poly) {

	if !u.context.Equal(pol.context) {
		// Sanity check, samplers are bound to a single context.
		panic("uniform sampler: polynomial attached to a different context")
	}

	var randomUint, mask, qi uint64

	buffer := u.randomBuffer
	byteArrayLength := len(buffer)
	ptr := u.ptr

	for i, tbl := range u.context.tables {

		qi = u.context.moduli[i]

		// Starts by computing the mask
		mask = tbl.mask

		coeffs := pol.Coeffs[i]

		// Iterates for each modulus over each coefficient
		for j := range coeffs {

			// Samples an integer between [0, qi-1]
			for {

				// Refills the buffer if it runs empty
				if ptr == byteArrayLength {
					if _, err := u.prng.Read(buffer); err != nil {
						// Sanity check, this error should not happen.
						panic(err)
					}
					ptr = 0
				}

				// Reads bytes from the buffer
				randomUint = binary.BigEndian.Uint64(buffer[ptr:ptr+8]) & mask
				ptr += 8

				// If the integer is between [0, qi-1], breaks the loop
				if randomUint < qi {
					break
				}
			}

			coeffs[j] = randomUint
		}
	}

	u.ptr = ptr

	pol.representation = PowerBasis
}

// ReadNew samples a new polynomial with coefficients following a uniform
// distribution over [0, q_i-1] for each modulus.
func (u *UniformSampler) ReadNew() (pol *Poly) {
	pol = u.context.NewPoly()
	u.Read(pol)
	return
}
