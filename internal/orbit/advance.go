package orbit

import (
	"math"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Update rule constants.
const (
	NominalFrame       = 0.016 // seconds advanced by one step request
	OrbitScale         = 100.0
	SpinRate           = 0.02
	FrameNormalization = 60.0
	Smoothing          = 0.05 // display distance lerp factor per call
)

// Body is the static orbital data of one planet or moon.
type Body struct {
	Name            string
	Parent          int // index of the parent body, -1 for planets
	Speed           float64
	ActualDistance  float64
	OrderedDistance float64
}

// Target returns the display distance for the selected mode.
func (b Body) Target(realDistances bool) float64 {
	if realDistances {
		return b.ActualDistance
	}
	return b.OrderedDistance
}

// State is the per-body, per-frame orbital state.
type State struct {
	Angle     float64 // radians
	Rotation  float64 // radians of self-rotation
	Distance  float64 // current interpolated display distance
	StepToken uint64  // last step token consumed
}

// NewState starts a body at angle, already at its target distance and
// with any outstanding step token consumed.
func NewState(b Body, p Params, angle float64) State {
	return State{
		Angle:     angle,
		Distance:  b.Target(p.RealDistances),
		StepToken: p.StepToken,
	}
}

// EffectiveDelta returns the time to advance for this call: zero while
// paused, NominalFrame for a pending step token, otherwise dt.
func EffectiveDelta(s State, dt float64, p Params) float64 {
	switch {
	case p.StepToken != s.StepToken:
		return NominalFrame
	case p.Paused:
		return 0
	case math.IsNaN(dt) || dt < 0:
		return 0
	default:
		return dt
	}
}

// Advance applies one frame of the update rule. The display distance always
// moves toward the active target so mode changes animate even while paused.
func Advance(s State, b Body, dt float64, p Params) State {
	eff := EffectiveDelta(s, dt, p)
	dir := p.Sign()

	s.Angle += eff * b.Speed * p.Speed * dir * OrbitScale
	s.Rotation += SpinRate * p.Speed * dir * eff * FrameNormalization
	s.Distance = astro.Lerp(s.Distance, b.Target(p.RealDistances), Smoothing)
	s.StepToken = p.StepToken

	return s
}

// Offset returns the position of the state relative to its orbit center in
// the orbital plane.
func (s State) Offset() (x, z float64) {
	return math.Cos(s.Angle) * s.Distance, math.Sin(s.Angle) * s.Distance
}
