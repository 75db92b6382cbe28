package physics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestEnergy(t *testing.T) {
	bodies := []Body{
		{Mass: 2, Position: r2.Vec{X: 0, Y: 0}, Velocity: r2.Vec{X: 1, Y: 0}},
		{Mass: 3, Position: r2.Vec{X: 0, Y: 2}, Velocity: r2.Vec{X: 0, Y: -2}},
	}

	if ke := KineticEnergy(bodies); ke != 0.5*2*1+0.5*3*4 {
		t.Errorf("kinetic energy %v", ke)
	}
	if pe := PotentialEnergy(bodies, 1); pe != -3 {
		t.Errorf("potential energy %v, want -3", pe)
	}
	if e := TotalEnergy(bodies, 1); e != 7-3 {
		t.Errorf("total energy %v, want 4", e)
	}

	coincident := []Body{{Mass: 1}, {Mass: 1}}
	if pe := PotentialEnergy(coincident, 1); !math.IsInf(pe, -1) {
		t.Errorf("coincident bodies: expected -Inf, got %v", pe)
	}
}

func TestMomentum(t *testing.T) {
	bodies := []Body{
		{Mass: 2, Position: r2.Vec{X: 1, Y: 0}, Velocity: r2.Vec{X: 0, Y: 3}},
		{Mass: 6, Position: r2.Vec{X: -1, Y: 0}, Velocity: r2.Vec{X: 0, Y: -1}},
	}

	if p := Momentum(bodies); p != (r2.Vec{}) {
		t.Errorf("momentum %v, want zero", p)
	}
	// 2*(1*3) + 6*(-1*-1) = 12
	if L := AngularMomentum(bodies); L != 12 {
		t.Errorf("angular momentum %v, want 12", L)
	}

	c, m := CenterOfMass(bodies)
	if m != 8 || c.X != -0.5 || c.Y != 0 {
		t.Errorf("center of mass %v (m=%v)", c, m)
	}

	if c, m := CenterOfMass(nil); m != 0 || c != (r2.Vec{}) {
		t.Errorf("empty center of mass %v (m=%v)", c, m)
	}
}
