package system

import (
	"math"
	"testing"
)

func TestHabitableZone_Sun(t *testing.T) {
	d := SynthesizeHome()

	actual := d.HabitableZone(true)
	if math.Abs(actual.Inner-0.95*DistanceScale) > 1e-9 || math.Abs(actual.Outer-1.37*DistanceScale) > 1e-9 {
		t.Errorf("real zone = %+v, want [47.5, 68.5]", actual)
	}

	in := d.InHabitableZone()
	if len(in) != 1 || in[0].Name != "Earth" {
		t.Errorf("InHabitableZone = %v, want [Earth]", in)
	}

	venus, earth, mars := d.Planet("Venus"), d.Planet("Earth"), d.Planet("Mars")
	compact := d.HabitableZone(false)
	if compact.Inner <= venus.OrderedDistance || compact.Inner >= earth.OrderedDistance {
		t.Errorf("compact inner %v not between Venus %v and Earth %v", compact.Inner, venus.OrderedDistance, earth.OrderedDistance)
	}
	if compact.Outer <= earth.OrderedDistance || compact.Outer >= mars.OrderedDistance {
		t.Errorf("compact outer %v not between Earth %v and Mars %v", compact.Outer, earth.OrderedDistance, mars.OrderedDistance)
	}
}

func TestLuminosity(t *testing.T) {
	tests := []struct {
		name string
		star Star
		want float64
	}{
		{"sun", Star{Size: 3, TemperatureK: 5778}, 1},
		{"twice radius", Star{Size: 6, TemperatureK: 5778}, 4},
		{"twice temperature", Star{Size: 3, TemperatureK: 2 * 5778}, 16},
		{"missing values", Star{}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.star.Luminosity(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Luminosity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompactDistance(t *testing.T) {
	planets := []Planet{
		{ActualDistance: 10, OrderedDistance: 6},
		{ActualDistance: 20, OrderedDistance: 9},
		{ActualDistance: 40, OrderedDistance: 12},
	}
	const star = 3.0

	tests := []struct {
		name string
		real float64
		want float64
	}{
		{"at star", 0, star + 0.5},
		{"half of first", 5, star + (6-star)*0.5},
		{"first", 10, 6},
		{"between", 15, 7.5},
		{"between outer", 30, 10.5},
		{"last", 40, 12},
		{"beyond", 80, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CompactDistance(star, planets, tt.real); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CompactDistance(%v) = %v, want %v", tt.real, got, tt.want)
			}
		})
	}

	if got := CompactDistance(star, nil, 10); got != star+5 {
		t.Errorf("no planets = %v, want %v", got, star+5)
	}
}

func TestCompactDistance_UnsortedInput(t *testing.T) {
	planets := []Planet{
		{Name: "outer", ActualDistance: 40, OrderedDistance: 12},
		{Name: "inner", ActualDistance: 10, OrderedDistance: 6},
	}
	if got := CompactDistance(3, planets, 25); math.Abs(got-9) > 1e-9 {
		t.Errorf("CompactDistance = %v, want 9", got)
	}
	if planets[0].Name != "outer" {
		t.Error("input slice was reordered")
	}
}
