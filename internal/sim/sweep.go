package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"golang.org/x/sync/errgroup"
)

// Builder constructs a fresh simulator for the given timestep.
type Builder func(dt float64) (*Simulator, error)

// SweepResult pairs a timestep with the outcome of its run.
type SweepResult struct {
	Dt     float64
	Result *Result
	Err    error
}

// Sweep runs one independent simulator per timestep for the same simulated
// duration, in parallel. Simulators share nothing. A failing simulation is
// reported in its SweepResult; only build errors and cancellation abort
// the sweep.
func Sweep(ctx context.Context, build Builder, dts []float64, duration float64, samples int) ([]SweepResult, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %g", dynamo.ErrParameterBounds, duration)
	}

	results := make([]SweepResult, len(dts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, dt := range dts {
		g.Go(func() error {
			s, err := build(dt)
			if err != nil {
				return fmt.Errorf("dt=%g: %w", dt, err)
			}

			steps := dynamo.StepsFor(duration, dt)
			every := 1
			if samples > 0 && steps > samples {
				every = steps / samples
			}

			res, err := s.Record(ctx, steps, every)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = SweepResult{Dt: dt, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
