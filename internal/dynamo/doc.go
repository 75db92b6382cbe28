// Package dynamo provides the primitives shared by the gravity simulation
// packages.
//
// The package defines:
//
//   - [Config]: integration parameters (timestep, gravitational constant)
//   - domain errors such as [ErrDegenerateConfiguration]
//   - [SimulationError]: an error annotated with the step that produced it
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.G = 1
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// Nothing in this package holds mutable state. Simulators built on top of
// it are NOT thread-safe.
package dynamo
