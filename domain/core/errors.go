package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrModelNotFound  = fmt.Errorf("%w: model", ErrNotFound)
	ErrAliasNotFound  = fmt.Errorf("%w: variable set alias", ErrNotFound)
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Shape errors
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrMisaligned    = errors.New("target index not aligned with evaluation frame")

	// Numerical errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrDegenerate       = errors.New("degenerate input")

	// Input errors
	ErrInvalidAlpha = errors.New("significance level must be in (0,1)")
	ErrInvalidOrder = errors.New("unknown sequence order")
)

// Error constructors with context
func NewNotFoundError(kind error, name string) error {
	return fmt.Errorf("%w %q", kind, name)
}

func NewShapeError(what string, got, want int) error {
	return fmt.Errorf("%w: %s has %d rows, expected %d", ErrShapeMismatch, what, got, want)
}

func NewInsufficientDataError(test string, got, min int) error {
	return fmt.Errorf("%w: %s needs at least %d observations, got %d", ErrInsufficientData, test, min, got)
}

func NewDegenerateError(test, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrDegenerate, test, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShapeMismatch) || errors.Is(err, ErrMisaligned)
}

func IsNumericalError(err error) bool {
	return errors.Is(err, ErrDegenerate) || errors.Is(err, ErrInsufficientData)
}
