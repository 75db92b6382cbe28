package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Body is a point mass. Mass is in kilograms, Position in meters and
// Velocity in meters per second, or any consistent unit system matching
// the gravitational constant in use.
type Body struct {
	Name     string
	Mass     float64
	Position r2.Vec
	Velocity r2.Vec
}

// NewBody returns a validated body at (x, y) moving with (vx, vy).
func NewBody(mass, x, y, vx, vy float64) (*Body, error) {
	b := &Body{
		Mass:     mass,
		Position: r2.Vec{X: x, Y: y},
		Velocity: r2.Vec{X: vx, Y: vy},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the mass invariant and that every coordinate is finite.
func (b *Body) Validate() error {
	if b.Mass <= 0 || !finite(b.Mass) {
		return fmt.Errorf("%w: got %g", dynamo.ErrInvalidMass, b.Mass)
	}
	if !b.IsValid() {
		return fmt.Errorf("%w: position %v velocity %v", dynamo.ErrInvalidState, b.Position, b.Velocity)
	}
	return nil
}

// IsValid reports whether position and velocity are finite.
func (b *Body) IsValid() bool {
	return finite(b.Position.X) && finite(b.Position.Y) &&
		finite(b.Velocity.X) && finite(b.Velocity.Y)
}

// Distance returns the Euclidean distance between b and other.
func (b *Body) Distance(other *Body) float64 {
	return r2.Norm(r2.Sub(other.Position, b.Position))
}

// GravitationalForce returns the force other exerts on b. It points from b
// toward other with magnitude g*m1*m2/d².
func (b *Body) GravitationalForce(other *Body, g float64) (r2.Vec, error) {
	dir := r2.Sub(other.Position, b.Position)
	d := r2.Norm(dir)
	if d == 0 {
		return r2.Vec{}, fmt.Errorf("%w: both bodies at %v", dynamo.ErrDegenerateConfiguration, b.Position)
	}

	// m1*m2 is commutative, so F(a,b) == -F(b,a) bit for bit.
	k := g * (b.Mass * other.Mass) / (d * d * d)
	if math.IsInf(k, 0) || math.IsNaN(k) {
		return r2.Vec{}, fmt.Errorf("%w: separation %g too small", dynamo.ErrDegenerateConfiguration, d)
	}
	return r2.Scale(k, dir), nil
}

// NetForce sums the gravitational force of every body in bodies except b
// itself.
func (b *Body) NetForce(bodies []*Body, g float64) (r2.Vec, error) {
	return Gravity{G: g}.Force(b, bodies)
}

// Acceleration returns NetForce divided by the mass of b.
func (b *Body) Acceleration(bodies []*Body, g float64) (r2.Vec, error) {
	f, err := b.NetForce(bodies, g)
	if err != nil {
		return r2.Vec{}, err
	}
	return r2.Scale(1/b.Mass, f), nil
}

// Integrate advances b by one semi-implicit Euler step against bodies.
// The acceleration uses the current positions; the position update uses
// the updated velocity. b is left unchanged on error.
func (b *Body) Integrate(bodies []*Body, g, dt float64) error {
	acc, err := b.Acceleration(bodies, g)
	if err != nil {
		return err
	}
	b.Advance(acc, dt)
	return nil
}

// Advance applies a precomputed acceleration: velocity first, then
// position with the new velocity.
func (b *Body) Advance(acc r2.Vec, dt float64) {
	b.Velocity = r2.Add(b.Velocity, r2.Scale(dt, acc))
	b.Position = r2.Add(b.Position, r2.Scale(dt, b.Velocity))
}

// Speed returns the magnitude of the velocity.
func (b *Body) Speed() float64 {
	return r2.Norm(b.Velocity)
}

func (b Body) String() string {
	name := b.Name
	if name == "" {
		name = "body"
	}
	return fmt.Sprintf("%s m=%.4g p=(%.4g, %.4g) v=(%.4g, %.4g)",
		name, b.Mass, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
