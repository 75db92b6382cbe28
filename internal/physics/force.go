package physics

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// ForceContributor is one source of force acting on a body. Contributors
// are summed by [SumForces].
type ForceContributor interface {
	Name() string
	Force(self *Body, bodies []*Body) (r2.Vec, error)
}

// Gravity is pairwise Newtonian attraction with constant G.
type Gravity struct {
	G float64
}

func (Gravity) Name() string { return "gravity" }

// Force sums the attraction of every body other than self, in slice order.
// Summation order is fixed so results are reproducible.
func (g Gravity) Force(self *Body, bodies []*Body) (r2.Vec, error) {
	var total r2.Vec
	for _, other := range bodies {
		if other == self {
			continue
		}
		f, err := self.GravitationalForce(other, g.G)
		if err != nil {
			return r2.Vec{}, err
		}
		total = r2.Add(total, f)
	}
	return total, nil
}

// SumForces returns the net force of all contributors on self.
func SumForces(self *Body, bodies []*Body, contributors ...ForceContributor) (r2.Vec, error) {
	var total r2.Vec
	for _, c := range contributors {
		f, err := c.Force(self, bodies)
		if err != nil {
			return r2.Vec{}, err
		}
		total = r2.Add(total, f)
	}
	return total, nil
}
