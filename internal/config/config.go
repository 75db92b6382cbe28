package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"gopkg.in/yaml.v3"
)

// Scenario is a named initial configuration loaded from YAML or taken from
// the preset table.
type Scenario struct {
	Name        string       `yaml:"name"`
	G           float64      `yaml:"g"`
	Dt          float64      `yaml:"dt"`
	Duration    float64      `yaml:"duration"`
	SampleEvery int          `yaml:"sample_every,omitempty"`
	ViewRadius  float64      `yaml:"view_radius,omitempty"`
	AutoOrbit   bool         `yaml:"auto_orbit,omitempty"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

type BodyConfig struct {
	Name  string     `yaml:"name,omitempty"`
	Mass  float64    `yaml:"mass"`
	Pos   [2]float64 `yaml:"pos"`
	Vel   [2]float64 `yaml:"vel"`
	Color string     `yaml:"color,omitempty"`
}

func DefaultScenario() *Scenario {
	return &Scenario{
		Name:        "custom",
		G:           G,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a scenario over the defaults and validates it.
func Parse(data []byte) (*Scenario, error) {
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	if err := s.SimConfig().Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	if len(s.Bodies) == 0 {
		return fmt.Errorf("scenario %q: %w", s.Name, dynamo.ErrNoBodies)
	}
	for i, b := range s.Bodies {
		if b.Mass <= 0 || math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) {
			return fmt.Errorf("scenario %q body %d (%s): %w", s.Name, i, b.Name, dynamo.ErrInvalidMass)
		}
	}
	if s.Duration < 0 {
		return fmt.Errorf("scenario %q: %w: negative duration", s.Name, dynamo.ErrParameterBounds)
	}
	return nil
}

// SimConfig returns the integration parameters of the scenario.
func (s *Scenario) SimConfig() dynamo.Config {
	return dynamo.Config{G: s.G, Dt: s.Dt, ValidateState: true}
}

// Steps is the number of timesteps needed to cover Duration.
func (s *Scenario) Steps() int {
	return dynamo.StepsFor(s.Duration, s.Dt)
}

// Clone returns a deep copy, so presets can be modified safely.
func (s *Scenario) Clone() *Scenario {
	c := *s
	c.Bodies = append([]BodyConfig(nil), s.Bodies...)
	return &c
}

// Build creates the bodies described by the scenario, applying circular
// orbit velocities first when AutoOrbit is set.
func (s *Scenario) Build() ([]*physics.Body, error) {
	bodies := make([]*physics.Body, len(s.Bodies))
	for i, bc := range s.Bodies {
		b, err := physics.NewBody(bc.Mass, bc.Pos[0], bc.Pos[1], bc.Vel[0], bc.Vel[1])
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, bc.Name, err)
		}
		b.Name = bc.Name
		bodies[i] = b
	}
	if s.AutoOrbit {
		ApplyCircularOrbits(bodies, s.G)
	}
	return bodies, nil
}

// ApplyCircularOrbits treats the first body as central and gives every
// other body at rest a circular orbit velocity around it.
func ApplyCircularOrbits(bodies []*physics.Body, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for _, b := range bodies[1:] {
		if b.Velocity.X != 0 || b.Velocity.Y != 0 {
			continue
		}
		b.Velocity = b.CircularVelocity(central, g)
	}
}

// Extent returns the view radius: ViewRadius if set, otherwise 1.5 times
// the farthest body from the origin.
func (s *Scenario) Extent() float64 {
	if s.ViewRadius > 0 {
		return s.ViewRadius
	}
	r := 0.0
	for _, b := range s.Bodies {
		r = math.Max(r, math.Hypot(b.Pos[0], b.Pos[1]))
	}
	if r == 0 {
		return 1
	}
	return 1.5 * r
}
