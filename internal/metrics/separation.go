package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

// ClosestApproach records the smallest separation between any two bodies.
// It is diagnostic only; close encounters are not resolved.
type ClosestApproach struct {
	name string
	min  float64
}

func NewClosestApproach() *ClosestApproach {
	return &ClosestApproach{name: "closest_approach", min: math.Inf(1)}
}

func (c *ClosestApproach) Name() string { return c.name }

func (c *ClosestApproach) Observe(s sim.Snapshot) {
	for i := range s.Bodies {
		for j := i + 1; j < len(s.Bodies); j++ {
			d := r2.Norm(r2.Sub(s.Bodies[j].Position, s.Bodies[i].Position))
			c.min = math.Min(c.min, d)
		}
	}
}

// Value is +Inf until two bodies have been observed.
func (c *ClosestApproach) Value() float64 { return c.min }

func (c *ClosestApproach) Reset() { c.min = math.Inf(1) }

// Containment is the fraction of observations in which every body stays
// within radius of the center of mass. Escaping bodies lower it.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(s sim.Snapshot) {
	c.samples++
	com, _ := centerOfMass(s)
	for i := range s.Bodies {
		if r2.Norm(r2.Sub(s.Bodies[i].Position, com)) > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
