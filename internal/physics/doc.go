// Package physics models point masses under Newtonian gravity in two
// dimensions.
//
// The central type is [Body]. Forces are computed by [ForceContributor]
// implementations; [Gravity] is the only one provided:
//
//   - [Body.GravitationalForce]: pairwise attraction between two bodies
//   - [Body.NetForce]: sum over every other body, in slice order
//   - [Body.Integrate]: one semi-implicit Euler step for a single body
//
// Bodies are compared by identity, never by value: two bodies with the same
// mass, position and velocity are still distinct.
//
// # Degenerate Configurations
//
// Two bodies at zero separation have no defined force. Every force
// computation reports [dynamo.ErrDegenerateConfiguration] instead of
// returning NaN or Inf.
//
// # Conserved Quantities
//
// [TotalEnergy], [Momentum] and [AngularMomentum] are exact for the
// continuous system and drift slowly under integration:
//
//	e0 := physics.TotalEnergy(bodies, g)
//	// ... advance ...
//	drift := math.Abs(physics.TotalEnergy(bodies, g)-e0) / math.Abs(e0)
package physics
