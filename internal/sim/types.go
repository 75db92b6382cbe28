package sim

import (
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Snapshot is the state of every body after Step steps. Bodies are value
// copies in simulator order and may be retained by the caller.
type Snapshot struct {
	Step   int
	Time   float64
	Bodies []physics.Body
}

// Positions returns the body positions in simulator order.
func (s Snapshot) Positions() []r2.Vec {
	pos := make([]r2.Vec, len(s.Bodies))
	for i := range s.Bodies {
		pos[i] = s.Bodies[i].Position
	}
	return pos
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Snapshot)
}

// Result summarizes a bounded headless run. Energies is sampled, never a
// full trajectory.
type Result struct {
	Final       Snapshot
	StepsTaken  int
	Times       []float64
	Energies    []float64
	Metrics     map[string]float64
	EnergyDrift float64
}
