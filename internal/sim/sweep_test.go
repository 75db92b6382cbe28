package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
)

func orbitBuilder(dt float64) (*Simulator, error) {
	return New([]*physics.Body{
		body(1, 0, 0, 0, 0),
		body(1e-6, 1, 0, 0, 1),
	}, unitConfig(dt))
}

func TestSweep(t *testing.T) {
	dts := []float64{0.01, 0.005, 0.001}
	results, err := Sweep(context.Background(), orbitBuilder, dts, 2*math.Pi, 50)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != len(dts) {
		t.Fatalf("expected %d results, got %d", len(dts), len(results))
	}
	for i, r := range results {
		if r.Dt != dts[i] {
			t.Errorf("result %d out of order: dt %v", i, r.Dt)
		}
		if r.Err != nil {
			t.Errorf("dt=%v: %v", r.Dt, r.Err)
			continue
		}
		want := dynamo.StepsFor(2*math.Pi, r.Dt)
		if r.Result.StepsTaken != want {
			t.Errorf("dt=%v: expected %d steps, got %d", r.Dt, want, r.Result.StepsTaken)
		}
		if r.Result.EnergyDrift > 1e-2 {
			t.Errorf("dt=%v: energy drift %v", r.Dt, r.Result.EnergyDrift)
		}
	}
}

func TestSweep_BuildError(t *testing.T) {
	_, err := Sweep(context.Background(), orbitBuilder, []float64{0.01, -1}, 1, 10)
	if !errors.Is(err, dynamo.ErrInvalidTimestep) {
		t.Errorf("expected timestep error, got %v", err)
	}

	if _, err := Sweep(context.Background(), orbitBuilder, []float64{0.01}, 0, 10); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected parameter error, got %v", err)
	}
}

func TestSweep_StepCountMatchesScenario(t *testing.T) {
	// 3*0.1 is slightly above 0.3, so the quotient is just over 3.
	duration := 3 * 0.1
	results, err := Sweep(context.Background(), orbitBuilder, []float64{0.1}, duration, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := results[0].Result.StepsTaken; got != 3 {
		t.Errorf("expected 3 steps, got %d", got)
	}
}
