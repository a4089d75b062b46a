package system

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSynthesizeHome_Bodies(t *testing.T) {
	d := SynthesizeHome()

	want := []string{
		"Mercury", "Venus", "Earth", "Mars", "Ceres", "Jupiter", "Saturn",
		"Uranus", "Neptune", "Pluto", "Haumea", "Makemake", "Eris",
	}
	var got []string
	for _, p := range d.Planets {
		got = append(got, p.Name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("home bodies mismatch (-want +got):\n%s", diff)
	}

	if !d.Home || d.Name != HomeName {
		t.Errorf("home flags wrong: Home=%v Name=%q", d.Home, d.Name)
	}
	if d.Star.Size != StarSizeScale || d.Star.Spectral != SpectralG {
		t.Errorf("sun = %+v", d.Star)
	}

	assertPacked(t, d)
}

func TestSynthesizeHome_Deterministic(t *testing.T) {
	if diff := cmp.Diff(SynthesizeHome(), SynthesizeHome()); diff != "" {
		t.Errorf("home synthesis not deterministic:\n%s", diff)
	}
}

func TestSynthesizeHome_EarthAtOneAU(t *testing.T) {
	earth := SynthesizeHome().Planet("earth")
	if earth == nil {
		t.Fatal("Earth missing")
	}
	if math.Abs(earth.DistanceAU-1) > 1e-9 {
		t.Errorf("Earth distance = %v AU, want 1", earth.DistanceAU)
	}
	if math.Abs(earth.ActualDistance-DistanceScale) > 1e-6 {
		t.Errorf("Earth actual = %v, want %v", earth.ActualDistance, DistanceScale)
	}
	if math.Abs(earth.AxialTilt-23.44*math.Pi/180) > 1e-12 {
		t.Errorf("Earth tilt = %v rad", earth.AxialTilt)
	}

	if len(earth.Moons) != 1 {
		t.Fatalf("Earth moons = %d, want 1", len(earth.Moons))
	}
	moon := earth.Moons[0]
	if math.Abs(moon.Size-0.27*PlanetSizeScale) > 1e-12 {
		t.Errorf("Moon size = %v", moon.Size)
	}
	if math.Abs(moon.Distance-60.3*earth.Size) > 1e-12 {
		t.Errorf("Moon distance = %v, want %v", moon.Distance, 60.3*earth.Size)
	}
}

func TestSynthesizeHome_Rings(t *testing.T) {
	d := SynthesizeHome()
	for _, name := range []string{"Saturn", "Uranus"} {
		if !d.Planet(name).HasRings() {
			t.Errorf("%s should have rings", name)
		}
	}
	if d.Planet("Jupiter").HasRings() {
		t.Error("Jupiter should not have rings")
	}

	// Mutating one system's ring must not leak into the next.
	d.Planet("Saturn").Rings.Outer = 99
	if SynthesizeHome().Planet("Saturn").Rings.Outer != 2.3 {
		t.Error("ring definitions are shared between systems")
	}
}

func TestSynthesizeHome_BeltsAnchored(t *testing.T) {
	d := SynthesizeHome()
	if len(d.Belts) != 2 {
		t.Fatalf("belts = %d, want 2", len(d.Belts))
	}

	mars, jupiter := d.Planet("Mars"), d.Planet("Jupiter")
	neptune, eris := d.Planet("Neptune"), d.Planet("Eris")

	main := d.Belts[0]
	if main.OrderedInner != mars.OrderedDistance+1 || main.OrderedOuter != jupiter.OrderedDistance-1 {
		t.Errorf("main belt compact = [%v, %v], want between Mars and Jupiter", main.OrderedInner, main.OrderedOuter)
	}
	if main.Inner != mars.ActualDistance+5 || main.Outer != jupiter.ActualDistance-10 {
		t.Errorf("main belt real = [%v, %v]", main.Inner, main.Outer)
	}

	kuiper := d.Belts[1]
	if kuiper.OrderedInner != neptune.OrderedDistance+2 || kuiper.OrderedOuter != eris.OrderedDistance+5 {
		t.Errorf("kuiper belt compact = [%v, %v]", kuiper.OrderedInner, kuiper.OrderedOuter)
	}

	for _, b := range d.Belts {
		if b.Inner >= b.Outer || b.OrderedInner >= b.OrderedOuter {
			t.Errorf("%s has inverted bounds: %+v", b.Name, b)
		}
	}
}
