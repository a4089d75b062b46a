package system

import (
	"math"
	"sort"

	"github.com/litescript/ls-orrery/internal/astro"
)

// Habitable zone bounds in AU for a solar-luminosity star.
const (
	HabitableInnerAU = 0.95
	HabitableOuterAU = 1.37
)

// Zone is a radial band in scene units.
type Zone struct {
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Contains reports whether r lies inside the band.
func (z Zone) Contains(r float64) bool {
	return r >= z.Inner && r <= z.Outer
}

// Luminosity estimates stellar luminosity in solar units from the
// Stefan-Boltzmann relation L = R^2 * (T/Tsun)^4.
func (s Star) Luminosity() float64 {
	temp := s.TemperatureK
	if temp <= 0 || math.IsNaN(temp) {
		temp = DefaultStarTempK
	}
	radius := s.Size / StarSizeScale
	if radius <= 0 || math.IsNaN(radius) {
		radius = DefaultStarRadius
	}
	t := temp / DefaultStarTempK
	return radius * radius * t * t * t * t
}

// HabitableZone returns the habitable band in real scene units, or mapped
// onto the packed orbits when realDistances is false.
func (d *Descriptor) HabitableZone(realDistances bool) Zone {
	sqrtL := math.Sqrt(d.Star.Luminosity())
	actual := Zone{
		Inner: HabitableInnerAU * sqrtL * DistanceScale,
		Outer: HabitableOuterAU * sqrtL * DistanceScale,
	}
	if realDistances {
		return actual
	}
	return Zone{
		Inner: CompactDistance(d.Star.Size, d.Planets, actual.Inner),
		Outer: CompactDistance(d.Star.Size, d.Planets, actual.Outer),
	}
}

// CompactDistance maps a real scene distance onto the packed layout by
// piecewise-linear interpolation between neighboring planets. Inside the
// first orbit it scales from the star surface; beyond the last orbit it
// scales proportionally.
func CompactDistance(starSize float64, planets []Planet, realDist float64) float64 {
	if len(planets) == 0 {
		return starSize + 5
	}

	sorted := planets
	if !sort.SliceIsSorted(planets, func(i, j int) bool {
		return planets[i].ActualDistance < planets[j].ActualDistance
	}) {
		sorted = make([]Planet, len(planets))
		copy(sorted, planets)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ActualDistance < sorted[j].ActualDistance
		})
	}

	first := sorted[0]
	if realDist <= first.ActualDistance {
		ratio := realDist / first.ActualDistance
		return math.Max(starSize+0.5, starSize+(first.OrderedDistance-starSize)*ratio)
	}

	for i := 0; i < len(sorted)-1; i++ {
		p1, p2 := sorted[i], sorted[i+1]
		if realDist >= p1.ActualDistance && realDist <= p2.ActualDistance {
			span := p2.ActualDistance - p1.ActualDistance
			if span == 0 {
				return p1.OrderedDistance
			}
			progress := (realDist - p1.ActualDistance) / span
			return astro.Lerp(p1.OrderedDistance, p2.OrderedDistance, progress)
		}
	}

	last := sorted[len(sorted)-1]
	return last.OrderedDistance * realDist / last.ActualDistance
}

// InHabitableZone lists the planets whose real distance falls inside the
// habitable band.
func (d *Descriptor) InHabitableZone() []Planet {
	z := d.HabitableZone(true)
	var out []Planet
	for _, p := range d.Planets {
		if z.Contains(p.ActualDistance) {
			out = append(out, p)
		}
	}
	return out
}
