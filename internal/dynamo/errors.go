package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrDegenerateConfiguration indicates two bodies at zero separation,
	// where the gravitational force is undefined.
	ErrDegenerateConfiguration = errors.New("dynamo: degenerate configuration (zero separation between bodies)")

	// ErrInvalidMass indicates a body with a non-positive or non-finite mass.
	ErrInvalidMass = errors.New("dynamo: mass must be positive and finite")

	// ErrInvalidTimestep indicates a non-positive or non-finite timestep.
	ErrInvalidTimestep = errors.New("dynamo: timestep must be positive and finite")

	// ErrNoBodies indicates a simulator constructed without bodies.
	ErrNoBodies = errors.New("dynamo: at least one body is required")

	// ErrInvalidState indicates NaN or Inf in a position or velocity.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Body    int
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Body >= 0 {
		return fmt.Sprintf("step %d (t=%g) body %d: %v", e.Step, e.Time, e.Body, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
