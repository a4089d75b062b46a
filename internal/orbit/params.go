// Package orbit advances orbital angles, self-rotation and display distance
// for the bodies of one system, one rendered frame at a time.
package orbit

import (
	"fmt"
	"math"
)

// Direction of simulated time.
type Direction int

const (
	Forward Direction = 1
	Reverse Direction = -1
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts "forward" or "reverse".
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "forward":
		*d = Forward
	case "reverse":
		*d = Reverse
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}

// Speed limits for the time multiplier.
const (
	MinSpeed = 0.1
	MaxSpeed = 100.0
)

// Params are the global time controls. They are immutable: every setter
// returns a modified copy, and the clock only reads them.
type Params struct {
	Speed         float64   `json:"speed"`
	Direction     Direction `json:"direction"`
	Paused        bool      `json:"paused"`
	RealDistances bool      `json:"real_distances"`
	// StepToken identifies the latest single-step request. A body advances
	// one nominal frame the first time it sees a new token.
	StepToken uint64 `json:"step_token"`
}

// DefaultParams returns forward, unpaused, 1x time in compact mode.
func DefaultParams() Params {
	return Params{
		Speed:     1,
		Direction: Forward,
	}
}

// Sign returns the direction as +1 or -1.
func (p Params) Sign() float64 {
	if p.Direction == Reverse {
		return -1
	}
	return 1
}

// WithSpeed returns p with the speed multiplier clamped to its limits.
// NaN and non-positive values leave the current speed in place.
func (p Params) WithSpeed(speed float64) Params {
	if math.IsNaN(speed) || speed <= 0 {
		speed = p.Speed
		if math.IsNaN(speed) || speed <= 0 {
			speed = 1
		}
	}
	switch {
	case speed < MinSpeed:
		speed = MinSpeed
	case speed > MaxSpeed:
		speed = MaxSpeed
	}
	p.Speed = speed
	return p
}

// Faster doubles the speed.
func (p Params) Faster() Params { return p.WithSpeed(p.Speed * 2) }

// Slower halves the speed.
func (p Params) Slower() Params { return p.WithSpeed(p.Speed / 2) }

// WithDirection returns p running in direction d.
func (p Params) WithDirection(d Direction) Params {
	if d != Reverse {
		d = Forward
	}
	p.Direction = d
	return p
}

// WithPaused returns p with the pause flag set.
func (p Params) WithPaused(paused bool) Params {
	p.Paused = paused
	return p
}

// TogglePause flips the pause flag.
func (p Params) TogglePause() Params { return p.WithPaused(!p.Paused) }

// WithRealDistances selects real (true) or compact (false) distances.
func (p Params) WithRealDistances(on bool) Params {
	p.RealDistances = on
	return p
}

// ToggleDistances flips between real and compact distances.
func (p Params) ToggleDistances() Params { return p.WithRealDistances(!p.RealDistances) }

// StepForward requests one forward frame.
func (p Params) StepForward() Params { return p.step(Forward) }

// StepBackward requests one reverse frame.
func (p Params) StepBackward() Params { return p.step(Reverse) }

func (p Params) step(d Direction) Params {
	p.Direction = d
	p.StepToken++
	return p
}
