// Package bfv defines the boundary contracts between the ring arithmetic
// core and a BFV-style scheme layer: parameters, plaintext and ciphertext
// containers, and the encoding and encryption interfaces the scheme layer is
// expected to implement on top of the core.
package bfv

import (
	"github.com/Fainabi/fhe/ring"
)

// Encoding identifies how user values are mapped to plaintext polynomials.
type Encoding uint8

const (
	// PolyEncoding maps values directly to polynomial coefficients.
	PolyEncoding Encoding = iota
	// SimdEncoding maps values to plaintext slots via the evaluation
	// representation, enabling component-wise operations.
	SimdEncoding
)

func (e Encoding) String() string {
	switch e {
	case PolyEncoding:
		return "PolyEncoding"
	case SimdEncoding:
		return "SimdEncoding"
	default:
		return "Unknown"
	}
}

// Plaintext is a container for an encoded but unencrypted message.
type Plaintext struct {
	Value    *ring.Poly
	Encoding Encoding
}

// Ciphertext is a container for an encrypted message, as a list of
// polynomials over the ciphertext ring.
type Ciphertext struct {
	Value []*ring.Poly
}

// Degree returns the degree of the ciphertext, i.e. the number of
// polynomials minus one.
func (ct *Ciphertext) Degree() int {
	return len(ct.Value) - 1
}

// Encoder encodes values of type T into plaintexts.
type Encoder[T any] interface {
	Encode(value T, encoding Encoding) (*Plaintext, error)
}

// Decoder decodes plaintexts back into values of type T.
type Decoder[T any] interface {
	Decode(pt *Plaintext, encoding Encoding) (T, error)
}

// Encryptor encrypts plaintexts.
type Encryptor interface {
	Encrypt(pt *Plaintext) (*Ciphertext, error)
}

// Decryptor decrypts ciphertexts.
type Decryptor interface {
	Decrypt(ct *Ciphertext) (*Plaintext, error)
}
