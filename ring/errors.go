package ring

import (
	"errors"
)

// Sentinel errors returned by the package. Errors are wrapped with
// operation-specific context and should be tested with errors.Is.
var (
	// ErrParameter is returned when a constructor receives parameters
	// that do not describe a valid ring.
	ErrParameter = errors.New("invalid ring parameter")

	// ErrContextMismatch is returned when an operation receives operands
	// attached to incompatible contexts.
	ErrContextMismatch = errors.New("mismatched ring contexts")

	// ErrRepresentation is returned when an operation receives a polynomial
	// in a representation it does not accept.
	ErrRepresentation = errors.New("invalid polynomial representation")
)
