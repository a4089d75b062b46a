package astro

import (
	"math"
)

// SkyCoord represents equatorial celestial coordinates plus distance.
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360)
	DecDeg float64 // Declination in degrees (-90 to +90)
	DistPc float64 // Distance in parsecs (0 when unknown)
}

// Valid reports whether the coordinates are within their nominal ranges.
func (c SkyCoord) Valid() bool {
	if math.IsNaN(c.RAdeg) || math.IsNaN(c.DecDeg) {
		return false
	}
	return c.RAdeg >= 0 && c.RAdeg < 360 && c.DecDeg >= -90 && c.DecDeg <= 90
}

// EquatorialUnit converts RA/Dec to a unit vector with Y pointing to the
// celestial north pole and RA measured from +X toward +Z.
func EquatorialUnit(raDeg, decDeg float64) Vec3 {
	ra := degToRad(raDeg)
	dec := degToRad(decDeg)

	cosD := math.Cos(dec)
	return Vec3{
		X: cosD * math.Cos(ra),
		Y: math.Sin(dec),
		Z: cosD * math.Sin(ra),
	}
}

// NormalizeDeg wraps an angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// NormalizeRad wraps an angle into [0, 2π).
func NormalizeRad(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return degToRad(deg) }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return radToDeg(rad) }
