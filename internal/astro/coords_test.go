package astro

import (
	"math"
	"testing"
)

func TestEquatorialUnit(t *testing.T) {
	tests := []struct {
		name    string
		ra, dec float64
		want    Vec3
	}{
		{"vernal equinox", 0, 0, Vec3{X: 1}},
		{"RA 90", 90, 0, Vec3{Z: 1}},
		{"north pole", 0, 90, Vec3{Y: 1}},
		{"south pole", 123, -90, Vec3{Y: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EquatorialUnit(tt.ra, tt.dec)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("EquatorialUnit(%v, %v) = %v, want %v", tt.ra, tt.dec, got, tt.want)
			}
			if math.Abs(got.Norm()-1) > 1e-12 {
				t.Errorf("EquatorialUnit not unit length: %v", got.Norm())
			}
		})
	}
}

func TestSkyCoordValid(t *testing.T) {
	tests := []struct {
		c    SkyCoord
		want bool
	}{
		{SkyCoord{RAdeg: 0, DecDeg: 0}, true},
		{SkyCoord{RAdeg: 359.9, DecDeg: -90}, true},
		{SkyCoord{RAdeg: 360, DecDeg: 0}, false},
		{SkyCoord{RAdeg: 10, DecDeg: 91}, false},
		{SkyCoord{RAdeg: math.NaN(), DecDeg: 0}, false},
	}

	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := NormalizeDeg(-30); got != 330 {
		t.Errorf("NormalizeDeg(-30) = %v, want 330", got)
	}
	if got := NormalizeDeg(720); got != 0 {
		t.Errorf("NormalizeDeg(720) = %v, want 0", got)
	}

	got := NormalizeRad(-math.Pi / 2)
	if math.Abs(got-3*math.Pi/2) > 1e-12 {
		t.Errorf("NormalizeRad(-π/2) = %v, want 3π/2", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, 270, 359} {
		if got := RadToDeg(DegToRad(deg)); math.Abs(got-deg) > 1e-9 {
			t.Errorf("round trip %v -> %v", deg, got)
		}
	}
}
