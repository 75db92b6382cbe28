package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a series of sampled values.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes count, mean, standard deviation and range. An empty
// series yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return Summary{
		N:      len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
	}
}

// RelativeSpread is (Max-Min)/|Mean|, or 0 when the mean is zero.
func (s Summary) RelativeSpread() float64 {
	if s.Mean == 0 || math.IsNaN(s.Mean) {
		return 0
	}
	return (s.Max - s.Min) / math.Abs(s.Mean)
}

// Defaults returns the metrics attached to every CLI run.
func Defaults(g, radius float64) []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(g),
		NewMomentumDrift(),
		NewClosestApproach(),
		NewContainment(radius),
	}
}

func centerOfMass(s sim.Snapshot) (r2.Vec, float64) {
	return physics.CenterOfMass(s.Bodies)
}
