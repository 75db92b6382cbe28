package metrics

import (
	"math"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

// EnergyDrift tracks the maximum relative deviation of total energy from
// its first observed value.
type EnergyDrift struct {
	name          string
	g             float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		g:    g,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s sim.Snapshot) {
	energy := physics.TotalEnergy(s.Bodies, e.g)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 && !math.IsInf(e.initialEnergy, 0) {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

// Current returns the most recently observed total energy.
func (e *EnergyDrift) Current() float64 {
	return e.currentEnergy
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum change of total linear momentum,
// relative to the momentum scale sum(m*|v|) of the first observation.
// Exact pairwise forces conserve momentum, so this stays at rounding level.
type MomentumDrift struct {
	name     string
	px, py   float64
	scale    float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(s sim.Snapshot) {
	p := physics.Momentum(s.Bodies)
	if m.samples == 0 {
		m.px, m.py = p.X, p.Y
		for i := range s.Bodies {
			m.scale += s.Bodies[i].Mass * s.Bodies[i].Speed()
		}
	}
	m.samples++

	if m.scale > 0 {
		drift := math.Hypot(p.X-m.px, p.Y-m.py) / m.scale
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px, m.py = 0, 0
	m.scale = 0
	m.maxDrift = 0
	m.samples = 0
}
