package cubesolver

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubesolver package.
var (
	// Input errors
	ErrInvalidCubeState = errors.New("cubesolver: invalid cube state")
	ErrInvalidNotation  = errors.New("cubesolver: invalid move notation")
	ErrInvalidRotation  = errors.New("cubesolver: invalid rotation")

	// Solver faults
	ErrLocatorExhausted = errors.New("cubesolver: phase incomplete but no piece to work on")
	ErrConvergence      = errors.New("cubesolver: rotation limit reached")
)

// PhaseError reports a solver fault together with the phase it happened in.
type PhaseError struct {
	Phase     Phase
	Rotations int
	Err       error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%v (phase %s, %d rotations)", e.Err, e.Phase, e.Rotations)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}
