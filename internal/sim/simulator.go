package sim

import (
	"context"
	"fmt"
	"iter"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gonum.org/v1/gonum/spatial/r2"
)

// Simulator advances an ordered set of bodies with a fixed-timestep
// semi-implicit Euler integrator. It owns copies of the bodies it was
// built from. A Simulator is not safe for concurrent use.
type Simulator struct {
	bodies    []*physics.Body
	forces    []physics.ForceContributor
	cfg       dynamo.Config
	steps     int
	err       error
	metrics   []Metric
	observers []Observer

	// per-step scratch, reused
	snap     []physics.Body
	snapPtrs []*physics.Body
	acc      []r2.Vec
}

type Option func(*Simulator)

// WithForces adds contributors on top of gravity.
func WithForces(f ...physics.ForceContributor) Option {
	return func(s *Simulator) { s.forces = append(s.forces, f...) }
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// New validates cfg and bodies and returns a simulator at time zero.
func New(bodies []*physics.Body, cfg dynamo.Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, dynamo.ErrNoBodies
	}

	n := len(bodies)
	s := &Simulator{
		bodies:   make([]*physics.Body, n),
		forces:   []physics.ForceContributor{physics.Gravity{G: cfg.G}},
		cfg:      cfg,
		snap:     make([]physics.Body, n),
		snapPtrs: make([]*physics.Body, n),
		acc:      make([]r2.Vec, n),
	}
	for i, b := range bodies {
		if b == nil {
			return nil, fmt.Errorf("body %d: %w", i, dynamo.ErrInvalidState)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		c := *b
		s.bodies[i] = &c
		s.snapPtrs[i] = &s.snap[i]
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.notify()
	return s, nil
}

func (s *Simulator) Len() int    { return len(s.bodies) }
func (s *Simulator) Steps() int  { return s.steps }
func (s *Simulator) Dt() float64 { return s.cfg.Dt }
func (s *Simulator) G() float64  { return s.cfg.G }
func (s *Simulator) Err() error  { return s.err }

// Time is Steps * Dt, computed rather than accumulated so it does not
// drift over long runs.
func (s *Simulator) Time() float64 {
	return float64(s.steps) * s.cfg.Dt
}

// Snapshot copies the current state.
func (s *Simulator) Snapshot() Snapshot {
	bodies := make([]physics.Body, len(s.bodies))
	for i, b := range s.bodies {
		bodies[i] = *b
	}
	return Snapshot{Step: s.steps, Time: s.Time(), Bodies: bodies}
}

// Step advances every body by one timestep. All accelerations are taken
// from the positions at the start of the step before any body moves. On
// error no body is modified, and the simulator refuses further steps.
func (s *Simulator) Step() error {
	if s.err != nil {
		return s.err
	}

	for i, b := range s.bodies {
		s.snap[i] = *b
	}

	for i := range s.snap {
		f, err := physics.SumForces(s.snapPtrs[i], s.snapPtrs, s.forces...)
		if err != nil {
			return s.fail(i, err)
		}
		s.acc[i] = r2.Scale(1/s.snap[i].Mass, f)
	}

	// The snapshot is no longer read, so it doubles as the write buffer.
	for i := range s.snap {
		s.snap[i].Advance(s.acc[i], s.cfg.Dt)
		if s.cfg.ValidateState && !s.snap[i].IsValid() {
			return s.fail(i, dynamo.ErrInvalidState)
		}
	}

	for i, b := range s.bodies {
		*b = s.snap[i]
	}
	s.steps++
	s.notify()
	return nil
}

func (s *Simulator) fail(body int, err error) error {
	s.err = &dynamo.SimulationError{
		Step:    s.steps + 1,
		Time:    s.Time(),
		Body:    body,
		Wrapped: err,
	}
	return s.err
}

func (s *Simulator) notify() {
	if len(s.metrics) == 0 && len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, m := range s.metrics {
		m.Observe(snap)
	}
	for _, o := range s.observers {
		o.OnStep(snap)
	}
}

// Run returns the unbounded sequence of states. Each pull performs one
// Step and yields the state after it. The sequence ends only when the
// consumer stops pulling or a step fails; the error is yielded once.
// Ranging over it again continues from the current state.
func (s *Simulator) Run() iter.Seq2[Snapshot, error] {
	return func(yield func(Snapshot, error) bool) {
		for {
			if err := s.Step(); err != nil {
				yield(Snapshot{}, err)
				return
			}
			if !yield(s.Snapshot(), nil) {
				return
			}
		}
	}
}

// RunWithCallback pulls states until callback returns false, a step fails,
// or ctx is done.
func (s *Simulator) RunWithCallback(ctx context.Context, callback func(Snapshot) bool) error {
	for snap, err := range s.Run() {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !callback(snap) {
			return nil
		}
	}
	return nil
}

// Record advances steps times, sampling total energy every sampleEvery
// steps. On cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Record(ctx context.Context, steps, sampleEvery int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrParameterBounds, steps)
	}
	if sampleEvery < 1 {
		sampleEvery = 1
	}

	samples := steps/sampleEvery + 1
	result := &Result{
		Times:    make([]float64, 0, samples),
		Energies: make([]float64, 0, samples),
		Metrics:  make(map[string]float64),
	}

	initial := s.Snapshot()
	e0 := physics.TotalEnergy(initial.Bodies, s.cfg.G)
	result.Times = append(result.Times, initial.Time)
	result.Energies = append(result.Energies, e0)
	result.Final = initial

	var runErr error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
			runErr = s.Step()
		}
		if runErr != nil {
			break
		}
		result.StepsTaken++

		if s.steps%sampleEvery == 0 || i == steps-1 {
			snap := s.Snapshot()
			// Coincident bodies give an infinite energy; such samples are skipped.
			if e := physics.TotalEnergy(snap.Bodies, s.cfg.G); finite(e) {
				result.Times = append(result.Times, snap.Time)
				result.Energies = append(result.Energies, e)
			}
		}
	}

	result.Final = s.Snapshot()
	e1 := physics.TotalEnergy(result.Final.Bodies, s.cfg.G)
	if e0 != 0 && finite(e0) && finite(e1) {
		result.EnergyDrift = math.Abs(e1-e0) / math.Abs(e0)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
