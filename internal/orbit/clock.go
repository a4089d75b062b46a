package orbit

import (
	"math"
	"math/rand/v2"

	"github.com/litescript/ls-orrery/internal/system"
)

// Position is a body's location in the orbital plane after a tick.
type Position struct {
	Name     string  `json:"name"`
	Parent   string  `json:"parent,omitempty"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Angle    float64 `json:"angle"`
	Rotation float64 `json:"rotation"`
	Distance float64 `json:"distance"`
}

// Clock owns the orbital state of every body of one system. A Clock is not
// safe for concurrent use; each frame loop owns its own.
type Clock struct {
	bodies []Body
	states []State
	frames uint64
}

// NewClock builds a clock for the planets and moons of d. Starting angles
// are drawn from rng, or all zero when rng is nil.
func NewClock(d *system.Descriptor, p Params, rng *rand.Rand) *Clock {
	c := &Clock{}
	if d == nil {
		return c
	}

	start := func() float64 {
		if rng == nil {
			return 0
		}
		return rng.Float64() * 2 * math.Pi
	}

	for _, pl := range d.Planets {
		parent := len(c.bodies)
		c.add(Body{
			Name:            pl.Name,
			Parent:          -1,
			Speed:           pl.Speed,
			ActualDistance:  pl.ActualDistance,
			OrderedDistance: pl.OrderedDistance,
		}, p, start())
		for _, m := range pl.Moons {
			c.add(Body{
				Name:            m.Name,
				Parent:          parent,
				Speed:           m.Speed,
				ActualDistance:  m.Distance,
				OrderedDistance: m.Distance,
			}, p, start())
		}
	}
	return c
}

func (c *Clock) add(b Body, p Params, angle float64) {
	c.bodies = append(c.bodies, b)
	c.states = append(c.states, NewState(b, p, angle))
}

// Len returns the number of bodies.
func (c *Clock) Len() int { return len(c.bodies) }

// Frames returns the number of ticks applied.
func (c *Clock) Frames() uint64 { return c.frames }

// Body returns the static data of body i.
func (c *Clock) Body(i int) Body { return c.bodies[i] }

// State returns the current state of body i.
func (c *Clock) State(i int) State { return c.states[i] }

// Index returns the index of the named body, or -1.
func (c *Clock) Index(name string) int {
	for i, b := range c.bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Tick advances every body by dt seconds under p and returns the resulting
// positions.
func (c *Clock) Tick(dt float64, p Params) []Position {
	for i := range c.states {
		c.states[i] = Advance(c.states[i], c.bodies[i], dt, p)
	}
	c.frames++
	return c.Positions()
}

// Positions returns current positions without advancing. Moons are offset
// from their parent planet.
func (c *Clock) Positions() []Position {
	out := make([]Position, len(c.bodies))
	for i, b := range c.bodies {
		s := c.states[i]
		x, z := s.Offset()
		pos := Position{
			Name:     b.Name,
			X:        x,
			Z:        z,
			Angle:    s.Angle,
			Rotation: s.Rotation,
			Distance: s.Distance,
		}
		if b.Parent >= 0 {
			parent := out[b.Parent]
			pos.Parent = parent.Name
			pos.X += parent.X
			pos.Z += parent.Z
		}
		out[i] = pos
	}
	return out
}
