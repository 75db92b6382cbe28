package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// CircularOrbitSpeed is the speed of a circular orbit of radius r around
// a mass m.
func CircularOrbitSpeed(g, m, r float64) float64 {
	return math.Sqrt(g * m / r)
}

func OrbitalCircumference(r float64) float64 {
	return 2 * math.Pi * r
}

// OrbitalPeriod is the time to complete one circular orbit of radius r
// around a mass m.
func OrbitalPeriod(g, m, r float64) float64 {
	return OrbitalCircumference(r) / CircularOrbitSpeed(g, m, r)
}

// OrbitalSpeed is the circular orbit speed of b around central at their
// current separation.
func (b *Body) OrbitalSpeed(central *Body, g float64) float64 {
	return CircularOrbitSpeed(g, central.Mass, b.Distance(central))
}

// OrbitalPeriod is the circular orbit period of b around central at their
// current separation.
func (b *Body) OrbitalPeriod(central *Body, g float64) float64 {
	return OrbitalPeriod(g, central.Mass, b.Distance(central))
}

// CircularVelocity returns the velocity that puts b on a counterclockwise
// circular orbit around central, in the frame where central moves with
// its own velocity. The result is zero when the bodies coincide.
func (b *Body) CircularVelocity(central *Body, g float64) r2.Vec {
	rel := r2.Sub(b.Position, central.Position)
	r := r2.Norm(rel)
	if r == 0 {
		return central.Velocity
	}
	v := CircularOrbitSpeed(g, central.Mass, r)
	tangent := r2.Vec{X: -rel.Y / r, Y: rel.X / r}
	return r2.Add(central.Velocity, r2.Scale(v, tangent))
}
