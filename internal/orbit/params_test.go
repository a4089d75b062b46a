package orbit

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParams_JSON(t *testing.T) {
	p := DefaultParams().WithDirection(Reverse).WithSpeed(4).StepBackward()

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"speed":4,"direction":"reverse","paused":false,"real_distances":false,"step_token":1}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}

	var got Params
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("decoded mismatch (-want +got):\n%s", diff)
	}
}

func TestDirection_UnmarshalTextRejectsUnknown(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"direction":"sideways"}`), &p)
	if err == nil || !strings.Contains(err.Error(), "unknown direction") {
		t.Errorf("err = %v, want unknown direction", err)
	}
}

func TestParams_WithSpeedRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		base  Params
		speed float64
		want  float64
	}{
		{"nan keeps current", DefaultParams().WithSpeed(4), math.NaN(), 4},
		{"zero keeps current", DefaultParams().WithSpeed(4), 0, 4},
		{"negative keeps current", DefaultParams().WithSpeed(4), -3, 4},
		{"nan over nan base", Params{Speed: math.NaN()}, math.NaN(), 1},
		{"zero over zero base", Params{}, 0, 1},
		{"positive inf clamps", DefaultParams(), math.Inf(1), MaxSpeed},
		{"negative inf keeps current", DefaultParams(), math.Inf(-1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.base.WithSpeed(tt.speed)
			if p.Speed != tt.want {
				t.Fatalf("speed = %v, want %v", p.Speed, tt.want)
			}

			b := Body{Parent: -1, Speed: 0.01, ActualDistance: 20, OrderedDistance: 10}
			s := Advance(NewState(b, p, 0), b, 0.016, p)
			if math.IsNaN(s.Angle) || math.IsNaN(s.Rotation) {
				t.Errorf("advance produced NaN: %+v", s)
			}
		})
	}
}
