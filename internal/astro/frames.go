// Package astro provides the coordinate math shared by the orrery and the
// galactic overview.
package astro

import (
	"math"
)

const (
	// AU is the Astronomical Unit in kilometers.
	AU = 149597870.7

	// SolarRadiiPerAU is the number of solar radii in one AU (rounded, as
	// used by the equilibrium temperature estimate).
	SolarRadiiPerAU = 215.0

	// DaysPerYear is the orbital period of a body at 1 AU in days.
	DaysPerYear = 365.0
)

// Vec3 represents a 3D vector in scene units.
// The orrery uses Y as "up"; orbits lie in the XZ plane.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Lerp moves a toward b by factor t (0 keeps a, 1 returns b).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// KeplerDistanceAU returns the semi-major axis in AU of a body orbiting a
// solar-mass star with the given period, from Kepler's third law.
func KeplerDistanceAU(periodDays float64) float64 {
	return math.Pow(periodDays/DaysPerYear, 2.0/3.0)
}

// EquilibriumTemp estimates a planet's equilibrium temperature in Kelvin.
// starRadius is in solar radii and distAU in AU.
func EquilibriumTemp(starTeffK, starRadius, distAU float64) float64 {
	if distAU <= 0 {
		return math.NaN()
	}
	return starTeffK * math.Sqrt(starRadius/(2*SolarRadiiPerAU*distAU))
}

// ProjectedPoint represents a 2D projected position with metadata.
type ProjectedPoint struct {
	X float64 // Screen X in display units
	Y float64 // Screen Y in display units
	R float64 // Original radial distance
}

// ScaleMode defines how radial distances are mapped to screen space.
type ScaleMode int

const (
	// ScaleLinear keeps radial distances proportional.
	ScaleLinear ScaleMode = iota

	// ScaleLogR uses logarithmic scaling: r_display = log10(r + 1)
	ScaleLogR
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleLinear:
		return "linear"
	case ScaleLogR:
		return "log"
	default:
		return "unknown"
	}
}

// ProjectionConfig configures the top-down projection.
type ProjectionConfig struct {
	Scale float64   // Base scale factor
	Mode  ScaleMode // Scaling mode
}

// DefaultProjectionConfig returns a reasonable default configuration.
func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		Scale: 1.0,
		Mode:  ScaleLinear,
	}
}

// ProjectTopDown projects a point on the orbital (XZ) plane to screen
// coordinates, looking down the Y axis. Screen Y grows with -Z so that
// counter-clockwise orbits stay counter-clockwise on screen.
func ProjectTopDown(v Vec3, cfg ProjectionConfig) ProjectedPoint {
	r := math.Hypot(v.X, v.Z)
	if r == 0 {
		return ProjectedPoint{}
	}

	rDisplay := scaleRadius(r, cfg.Mode)
	angle := math.Atan2(v.Z, v.X)

	return ProjectedPoint{
		X: rDisplay * math.Cos(angle) * cfg.Scale,
		Y: rDisplay * math.Sin(angle) * cfg.Scale,
		R: r,
	}
}

// ScaleRadius applies a scaling mode to a radial distance.
func ScaleRadius(r float64, mode ScaleMode) float64 {
	return scaleRadius(r, mode)
}

func scaleRadius(r float64, mode ScaleMode) float64 {
	switch mode {
	case ScaleLogR:
		return math.Log10(r + 1)
	default:
		return r
	}
}
