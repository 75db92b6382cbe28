package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		v := bodies[i].Velocity
		ke += 0.5 * bodies[i].Mass * (v.X*v.X + v.Y*v.Y)
	}
	return ke
}

// PotentialEnergy is the pairwise gravitational potential. Coincident
// bodies give -Inf.
func PotentialEnergy(bodies []Body, g float64) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := r2.Norm(r2.Sub(bodies[j].Position, bodies[i].Position))
			if r == 0 {
				return math.Inf(-1)
			}
			pe -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []Body, g float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g)
}

// Momentum returns the total linear momentum.
func Momentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for i := range bodies {
		p = r2.Add(p, r2.Scale(bodies[i].Mass, bodies[i].Velocity))
	}
	return p
}

// AngularMomentum returns the z component of the total angular momentum
// about the origin.
func AngularMomentum(bodies []Body) float64 {
	L := 0.0
	for i := range bodies {
		L += bodies[i].Mass * r2.Cross(bodies[i].Position, bodies[i].Velocity)
	}
	return L
}

// CenterOfMass returns the mass-weighted mean position and the total mass.
func CenterOfMass(bodies []Body) (r2.Vec, float64) {
	var c r2.Vec
	total := 0.0
	for i := range bodies {
		c = r2.Add(c, r2.Scale(bodies[i].Mass, bodies[i].Position))
		total += bodies[i].Mass
	}
	if total == 0 {
		return r2.Vec{}, 0
	}
	return r2.Scale(1/total, c), total
}
