package dynamo

import (
	"fmt"
	"math"
)

// Config holds the integration parameters of a run.
type Config struct {
	// G is the gravitational constant in the unit system of the bodies.
	G float64
	// Dt is the fixed timestep in seconds.
	Dt float64
	// ValidateState rejects steps that produce NaN or Inf.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		G:             6.67e-11,
		Dt:            1.0,
		ValidateState: true,
	}
}

// StepsFor is the number of timesteps of length dt needed to cover
// duration. Quotients within 1e-9 of an integer are not rounded up.
func StepsFor(duration, dt float64) int {
	if dt <= 0 || duration <= 0 {
		return 0
	}
	return int(math.Ceil(duration/dt - 1e-9))
}

func (c Config) Validate() error {
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidTimestep, c.Dt)
	}
	if c.G <= 0 || math.IsNaN(c.G) || math.IsInf(c.G, 0) {
		return fmt.Errorf("%w: gravitational constant must be positive, got %g", ErrParameterBounds, c.G)
	}
	return nil
}
