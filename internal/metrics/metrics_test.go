package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r2"
)

func snapshot(bodies ...physics.Body) sim.Snapshot {
	return sim.Snapshot{Bodies: bodies}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(1)

	a := physics.Body{Mass: 1, Position: r2.Vec{X: 0}}
	b := physics.Body{Mass: 1, Position: r2.Vec{X: 1}, Velocity: r2.Vec{Y: 1}}
	m.Observe(snapshot(a, b)) // E = 0.5 - 1 = -0.5

	if m.Value() != 0 {
		t.Errorf("expected zero drift after first sample, got %v", m.Value())
	}
	if m.Current() != -0.5 {
		t.Errorf("expected energy -0.5, got %v", m.Current())
	}

	b.Velocity = r2.Vec{}
	m.Observe(snapshot(a, b)) // E = -1
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 || m.Current() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentumDrift_ConservedBySimulation(t *testing.T) {
	m := NewMomentumDrift()
	bodies := []*physics.Body{
		{Mass: 1, Velocity: r2.Vec{Y: -0.3}},
		{Mass: 0.5, Position: r2.Vec{X: 1}, Velocity: r2.Vec{Y: 0.8}},
		{Mass: 0.2, Position: r2.Vec{X: -2, Y: 1}, Velocity: r2.Vec{X: 0.4}},
	}
	s, err := sim.New(bodies, dynamo.Config{G: 1, Dt: 0.001}, sim.WithMetric(m))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Record(context.Background(), 2000, 100); err != nil {
		t.Fatal(err)
	}

	if m.Value() > 1e-12 {
		t.Errorf("momentum drift %v above rounding level", m.Value())
	}
}

func TestClosestApproach(t *testing.T) {
	c := NewClosestApproach()
	if !math.IsInf(c.Value(), 1) {
		t.Errorf("expected +Inf before observations, got %v", c.Value())
	}

	c.Observe(snapshot(
		physics.Body{Mass: 1, Position: r2.Vec{X: 0}},
		physics.Body{Mass: 1, Position: r2.Vec{X: 3, Y: 4}},
		physics.Body{Mass: 1, Position: r2.Vec{X: 10}},
	))
	if c.Value() != 5 {
		t.Errorf("expected 5, got %v", c.Value())
	}

	c.Observe(snapshot(
		physics.Body{Mass: 1, Position: r2.Vec{X: 0}},
		physics.Body{Mass: 1, Position: r2.Vec{X: 20}},
	))
	if c.Value() != 5 {
		t.Errorf("minimum should be kept, got %v", c.Value())
	}

	c.Reset()
	if !math.IsInf(c.Value(), 1) {
		t.Error("expected +Inf after reset")
	}
}

func TestContainment(t *testing.T) {
	c := NewContainment(2)
	if c.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %v", c.Value())
	}

	near := snapshot(
		physics.Body{Mass: 1, Position: r2.Vec{X: -1}},
		physics.Body{Mass: 1, Position: r2.Vec{X: 1}},
	)
	far := snapshot(
		physics.Body{Mass: 1, Position: r2.Vec{X: -5}},
		physics.Body{Mass: 1, Position: r2.Vec{X: 5}},
	)

	c.Observe(near)
	c.Observe(far)
	c.Observe(near)
	c.Observe(near)
	if c.Value() != 0.75 {
		t.Errorf("expected 0.75, got %v", c.Value())
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.N != 8 || s.Mean != 5 || s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected summary %+v", s)
	}
	// sample standard deviation
	if math.Abs(s.StdDev-math.Sqrt(32.0/7)) > 1e-12 {
		t.Errorf("std dev %v", s.StdDev)
	}
	if math.Abs(s.RelativeSpread()-7.0/5) > 1e-12 {
		t.Errorf("relative spread %v", s.RelativeSpread())
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("expected zero summary for empty input")
	}
	if one := Summarize([]float64{3}); one.StdDev != 0 || one.Mean != 3 {
		t.Errorf("single sample summary %+v", one)
	}
}

func TestDefaults(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Defaults(1, 10) {
		names[m.Name()] = true
	}
	for _, want := range []string{"energy_drift", "momentum_drift", "closest_approach", "containment"} {
		if !names[want] {
			t.Errorf("missing default metric %s", want)
		}
	}
}
