package orbit

import (
	"math"
	"testing"
)

const tolerance = 1e-12

var testBody = Body{Name: "b", Parent: -1, Speed: 0.001, ActualDistance: 50, OrderedDistance: 8}

func TestAdvance_PausedIsIdempotent(t *testing.T) {
	p := DefaultParams().WithPaused(true)
	s := NewState(testBody, p, 1.25)

	for i := 0; i < 10; i++ {
		s = Advance(s, testBody, 0.033, p)
		if s.Angle != 1.25 {
			t.Fatalf("call %d: angle = %v, want 1.25", i, s.Angle)
		}
		if s.Rotation != 0 {
			t.Fatalf("call %d: rotation = %v, want 0", i, s.Rotation)
		}
	}
}

func TestAdvance_StepOnce(t *testing.T) {
	p := DefaultParams().WithPaused(true).WithSpeed(2)
	s := NewState(testBody, p, 0)

	p = p.StepForward()
	s = Advance(s, testBody, 0.5, p)

	want := NominalFrame * testBody.Speed * 2 * OrbitScale
	if math.Abs(s.Angle-want) > tolerance {
		t.Errorf("after step angle = %v, want %v", s.Angle, want)
	}
	wantRot := SpinRate * 2 * NominalFrame * FrameNormalization
	if math.Abs(s.Rotation-wantRot) > tolerance {
		t.Errorf("after step rotation = %v, want %v", s.Rotation, wantRot)
	}

	before := s.Angle
	s = Advance(s, testBody, 0.5, p)
	if s.Angle != before {
		t.Errorf("second call with same token moved angle %v -> %v", before, s.Angle)
	}
}

func TestAdvance_StepBackward(t *testing.T) {
	p := DefaultParams().WithPaused(true)
	s := NewState(testBody, p, 0)

	p = p.StepBackward()
	if p.Direction != Reverse {
		t.Fatalf("StepBackward direction = %v", p.Direction)
	}
	s = Advance(s, testBody, 0.02, p)

	want := -NominalFrame * testBody.Speed * OrbitScale
	if math.Abs(s.Angle-want) > tolerance {
		t.Errorf("angle = %v, want %v", s.Angle, want)
	}
}

func TestAdvance_StepWhilePlayingUsesNominalFrame(t *testing.T) {
	p := DefaultParams()
	s := NewState(testBody, p, 0)

	p = p.StepForward()
	s = Advance(s, testBody, 0.5, p)
	want := NominalFrame * testBody.Speed * OrbitScale
	if math.Abs(s.Angle-want) > tolerance {
		t.Errorf("angle = %v, want %v", s.Angle, want)
	}
}

func TestAdvance_EachBodyConsumesToken(t *testing.T) {
	p := DefaultParams().WithPaused(true)
	a := NewState(testBody, p, 0)
	b := NewState(testBody, p, 0)

	p = p.StepForward()
	a = Advance(a, testBody, 0, p)
	b = Advance(b, testBody, 0, p)
	if a.Angle == 0 || b.Angle != a.Angle {
		t.Errorf("both bodies should step once: a=%v b=%v", a.Angle, b.Angle)
	}
}

func TestAdvance_Playing(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		dt   float64
		want float64
	}{
		{"forward", DefaultParams(), 0.1, 0.1 * 0.001 * OrbitScale},
		{"reverse", DefaultParams().WithDirection(Reverse), 0.1, -0.1 * 0.001 * OrbitScale},
		{"fast", DefaultParams().WithSpeed(10), 0.1, 0.1 * 0.001 * 10 * OrbitScale},
		{"negative dt ignored", DefaultParams(), -1, 0},
		{"NaN dt ignored", DefaultParams(), math.NaN(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Advance(NewState(testBody, tt.p, 0), testBody, tt.dt, tt.p)
			if math.Abs(s.Angle-tt.want) > tolerance {
				t.Errorf("angle = %v, want %v", s.Angle, tt.want)
			}
		})
	}
}

func TestAdvance_DistanceLerpsEvenWhenPaused(t *testing.T) {
	p := DefaultParams().WithPaused(true)
	s := NewState(testBody, p, 0)
	if s.Distance != testBody.OrderedDistance {
		t.Fatalf("initial distance = %v, want compact %v", s.Distance, testBody.OrderedDistance)
	}

	p = p.ToggleDistances()
	s = Advance(s, testBody, 0, p)
	want := 8 + (50-8)*Smoothing
	if math.Abs(s.Distance-want) > tolerance {
		t.Errorf("distance after one call = %v, want %v", s.Distance, want)
	}

	for i := 0; i < 500; i++ {
		s = Advance(s, testBody, 0, p)
	}
	if math.Abs(s.Distance-testBody.ActualDistance) > 1e-6 {
		t.Errorf("distance did not converge: %v", s.Distance)
	}
	if s.Angle != 0 {
		t.Errorf("angle moved while paused: %v", s.Angle)
	}
}

func TestState_Offset(t *testing.T) {
	s := State{Angle: math.Pi / 2, Distance: 10}
	x, z := s.Offset()
	if math.Abs(x) > 1e-9 || math.Abs(z-10) > 1e-9 {
		t.Errorf("offset = (%v, %v), want (0, 10)", x, z)
	}
}

func TestParams(t *testing.T) {
	p := DefaultParams()
	if p.Speed != 1 || p.Direction != Forward || p.Paused || p.RealDistances {
		t.Errorf("defaults = %+v", p)
	}

	q := p.WithSpeed(1000)
	if q.Speed != MaxSpeed {
		t.Errorf("speed clamp high = %v", q.Speed)
	}
	if p.Speed != 1 {
		t.Error("WithSpeed mutated the receiver")
	}
	if got := p.WithSpeed(0.01).Speed; got != MinSpeed {
		t.Errorf("speed clamp low = %v", got)
	}
	if got := p.Faster().Slower().Speed; got != 1 {
		t.Errorf("Faster/Slower = %v", got)
	}
	if got := p.WithDirection(Direction(7)).Direction; got != Forward {
		t.Errorf("invalid direction = %v", got)
	}

	s1 := p.StepForward()
	s2 := s1.StepForward()
	if s1.StepToken == p.StepToken || s2.StepToken == s1.StepToken {
		t.Error("step tokens should be fresh")
	}
	if p.TogglePause().Paused != true {
		t.Error("TogglePause")
	}
	if Reverse.String() != "reverse" || Forward.String() != "forward" {
		t.Error("Direction.String")
	}
}
