package system

import (
	"fmt"

	"github.com/litescript/ls-orrery/internal/astro"
)

// HomeName is the host name of the built-in system.
const HomeName = "Solar System"

// homeYearDays is the year length used to turn home periods into AU.
const homeYearDays = 365.2

// homeBody is a literal definition of a home-system body. Moon sizes are in
// planet-scale units and moon distances in multiples of the parent size.
type homeBody struct {
	name        string
	radius      float64 // Earth radii
	period      float64 // days
	color       string
	tiltDeg     float64
	dwarf       bool
	kind        PlanetType
	rings       *Ring
	description string
	moons       []Moon
}

var homeBodies = []homeBody{
	{name: "Mercury", radius: 0.383, period: 88, color: "#A5A5A5", tiltDeg: 0.034, kind: PlanetRocky},
	{name: "Venus", radius: 0.949, period: 224.7, color: "#E3BB76", tiltDeg: 177.4, kind: PlanetRocky},
	{name: "Earth", radius: 1.0, period: 365.2, color: "#2233FF", tiltDeg: 23.44, kind: PlanetRocky,
		moons: []Moon{
			{Name: "Moon", Size: 0.27, Distance: 60.3, Speed: 0.006, Color: "#D1D1D1"},
		}},
	{name: "Mars", radius: 0.532, period: 687, color: "#E27B58", tiltDeg: 25.19, kind: PlanetRocky,
		moons: []Moon{
			{Name: "Phobos", Size: 0.01, Distance: 2.76, Speed: 0.03, Color: "#A19181"},
			{Name: "Deimos", Size: 0.01, Distance: 6.9, Speed: 0.019, Color: "#B1A191"},
		}},
	{name: "Ceres", radius: 0.074, period: 1682, color: "#A5A5A5", tiltDeg: 4, dwarf: true, kind: PlanetRocky,
		description: "The largest object in the main asteroid belt and the only dwarf planet in the inner solar system."},
	{name: "Jupiter", radius: 11.21, period: 4331, color: "#D39C7E", tiltDeg: 3.13, kind: PlanetGas,
		moons: []Moon{
			{Name: "Metis", Size: 0.01, Distance: 1.79, Speed: 0.037, Color: "#A19181"},
			{Name: "Adrastea", Size: 0.01, Distance: 1.81, Speed: 0.037, Color: "#B1A191"},
			{Name: "Amalthea", Size: 0.02, Distance: 2.54, Speed: 0.031, Color: "#D18171"},
			{Name: "Thebe", Size: 0.01, Distance: 3.11, Speed: 0.028, Color: "#C19181"},
			{Name: "Io", Size: 0.28, Distance: 5.9, Speed: 0.02, Color: "#F3E346"},
			{Name: "Europa", Size: 0.24, Distance: 9.4, Speed: 0.016, Color: "#E1D1C1"},
			{Name: "Ganymede", Size: 0.41, Distance: 15.0, Speed: 0.013, Color: "#A19181"},
			{Name: "Callisto", Size: 0.37, Distance: 26.3, Speed: 0.01, Color: "#817161"},
		}},
	{name: "Saturn", radius: 9.45, period: 10747, color: "#C5AB6E", tiltDeg: 26.73, kind: PlanetGas,
		rings: &Ring{Inner: 1.2, Outer: 2.3},
		moons: []Moon{
			{Name: "Pan", Size: 0.01, Distance: 2.2, Speed: 0.033, Color: "#FFFFFF"},
			{Name: "Daphnis", Size: 0.01, Distance: 2.2, Speed: 0.033, Color: "#FFFFFF"},
			{Name: "Atlas", Size: 0.01, Distance: 2.3, Speed: 0.032, Color: "#FFFFFF"},
			{Name: "Prometheus", Size: 0.02, Distance: 2.3, Speed: 0.032, Color: "#D1D1D1"},
			{Name: "Pandora", Size: 0.02, Distance: 2.3, Speed: 0.032, Color: "#D1D1D1"},
			{Name: "Epimetheus", Size: 0.02, Distance: 2.5, Speed: 0.031, Color: "#C1C1C1"},
			{Name: "Janus", Size: 0.02, Distance: 2.5, Speed: 0.031, Color: "#C1C1C1"},
			{Name: "Mimas", Size: 0.04, Distance: 3.1, Speed: 0.028, Color: "#D1D1D1"},
			{Name: "Enceladus", Size: 0.05, Distance: 3.9, Speed: 0.025, Color: "#FFFFFF"},
			{Name: "Tethys", Size: 0.08, Distance: 4.9, Speed: 0.022, Color: "#E1E1E1"},
			{Name: "Dione", Size: 0.09, Distance: 6.3, Speed: 0.02, Color: "#D1D1D1"},
			{Name: "Rhea", Size: 0.12, Distance: 8.7, Speed: 0.017, Color: "#D1D1D1"},
			{Name: "Titan", Size: 0.40, Distance: 20.2, Speed: 0.011, Color: "#E3BB76"},
			{Name: "Hyperion", Size: 0.03, Distance: 24.5, Speed: 0.01, Color: "#C1B1A1"},
			{Name: "Iapetus", Size: 0.11, Distance: 59.0, Speed: 0.006, Color: "#D1D1D1"},
		}},
	{name: "Uranus", radius: 4.01, period: 30589, color: "#BBE1E4", tiltDeg: 97.77, kind: PlanetIceGiant,
		rings: &Ring{Inner: 1.1, Outer: 1.5, Color: "#FFFFFF", Opacity: 0.3},
		moons: []Moon{
			{Name: "Miranda", Size: 0.04, Distance: 5.1, Speed: 0.022, Color: "#D1D1D1"},
			{Name: "Ariel", Size: 0.09, Distance: 7.5, Speed: 0.018, Color: "#E1E1E1"},
			{Name: "Umbriel", Size: 0.09, Distance: 10.4, Speed: 0.015, Color: "#A1A1A1"},
			{Name: "Titania", Size: 0.12, Distance: 17.1, Speed: 0.012, Color: "#D1D1D1"},
			{Name: "Oberon", Size: 0.11, Distance: 22.9, Speed: 0.01, Color: "#C1B1A1"},
		}},
	{name: "Neptune", radius: 3.88, period: 59800, color: "#6081FF", tiltDeg: 28.32, kind: PlanetIceGiant,
		moons: []Moon{
			{Name: "Triton", Size: 0.21, Distance: 14.3, Speed: 0.013, Color: "#E1D1D1"},
		}},
	{name: "Pluto", radius: 0.186, period: 90560, color: "#D1D1D1", tiltDeg: 122.53, dwarf: true, kind: PlanetRocky,
		description: "A dwarf planet in the Kuiper belt, a ring of bodies beyond the orbit of Neptune.",
		moons: []Moon{
			{Name: "Charon", Size: 0.12, Distance: 16.5, Speed: 0.012, Color: "#A1A1A1"},
			{Name: "Styx", Size: 0.01, Distance: 36.3, Speed: 0.008, Color: "#888888"},
			{Name: "Nix", Size: 0.03, Distance: 41.5, Speed: 0.007, Color: "#A1A1A1"},
			{Name: "Kerberos", Size: 0.02, Distance: 49.9, Speed: 0.007, Color: "#888888"},
			{Name: "Hydra", Size: 0.04, Distance: 55.4, Speed: 0.006, Color: "#A1A1A1"},
		}},
	{name: "Haumea", radius: 0.13, period: 103774, color: "#D1D1D1", tiltDeg: 126, dwarf: true, kind: PlanetRocky,
		description: "A dwarf planet in the Kuiper belt, known for its elongated shape and rapid rotation.",
		moons: []Moon{
			{Name: "Namaka", Size: 0.04, Distance: 32.0, Speed: 0.009, Color: "#A1A1A1"},
			{Name: "Hiʻiaka", Size: 0.08, Distance: 62.0, Speed: 0.006, Color: "#D1D1D1"},
		}},
	{name: "Makemake", radius: 0.11, period: 111400, color: "#D1A181", tiltDeg: 0, dwarf: true, kind: PlanetRocky,
		description: "A dwarf planet in the Kuiper belt and one of the largest known objects in the outer solar system.",
		moons: []Moon{
			{Name: "MK2", Size: 0.03, Distance: 29.0, Speed: 0.009, Color: "#888888"},
		}},
	{name: "Eris", radius: 0.18, period: 203600, color: "#E1E1E1", tiltDeg: 78, dwarf: true, kind: PlanetRocky,
		description: "One of the largest known dwarf planets in our solar system, located in the scattered disc.",
		moons: []Moon{
			{Name: "Dysnomia", Size: 0.06, Distance: 32.0, Speed: 0.009, Color: "#A1A1A1"},
		}},
}

// SynthesizeHome returns the built-in home system. It is deterministic and
// packed the same way as catalog systems, with the main asteroid belt and
// the Kuiper belt anchored between neighboring packed orbits.
func SynthesizeHome() *Descriptor {
	star := Star{
		Name:              "Sun",
		Color:             "#ffffff",
		Size:              DefaultStarRadius * StarSizeScale,
		RadiusSolar:       DefaultStarRadius,
		TemperatureK:      DefaultStarTempK,
		Spectral:          SpectralG,
		EmissiveIntensity: EmissiveIntensity,
	}

	planets := make([]Planet, 0, len(homeBodies))
	for _, b := range homeBodies {
		size := b.radius * PlanetSizeScale
		distAU := astro.KeplerDistanceAU(b.period * DaysPerYear / homeYearDays)

		moons := make([]Moon, len(b.moons))
		for i, m := range b.moons {
			moons[i] = Moon{
				Name:     m.Name,
				Size:     m.Size * PlanetSizeScale,
				Distance: m.Distance * size,
				Speed:    m.Speed,
				Color:    m.Color,
			}
		}

		var rings *Ring
		if b.rings != nil {
			r := *b.rings
			rings = &r
		}

		desc := b.description
		if desc == "" {
			desc = fmt.Sprintf("The %s of our Solar System. Orbital period: %g days.", b.name, b.period)
		}

		planets = append(planets, Planet{
			Name:           b.name,
			Color:          b.color,
			RadiusEarth:    b.radius,
			Size:           size,
			PeriodDays:     b.period,
			DistanceAU:     distAU,
			ActualDistance: distAU * DistanceScale,
			Speed:          0.1 / b.period,
			TemperatureK:   astro.EquilibriumTemp(star.TemperatureK, star.RadiusSolar, distAU),
			Type:           b.kind,
			AxialTilt:      astro.DegToRad(b.tiltDeg),
			Dwarf:          b.dwarf,
			Rings:          rings,
			Moons:          moons,
			Description:    desc,
		})
	}

	Pack(star.Size, planets)

	d := &Descriptor{
		ID:          SystemID(HomeName),
		Name:        HomeName,
		Home:        true,
		Description: "Our home system, featuring the Sun and eight planets.",
		Star:        star,
		Planets:     planets,
	}
	d.Belts = homeBelts(d)
	return d
}

func homeBelts(d *Descriptor) []Belt {
	mars, jupiter := d.Planet("Mars"), d.Planet("Jupiter")
	neptune, eris := d.Planet("Neptune"), d.Planet("Eris")

	return []Belt{
		{
			Name:         "Main Asteroid Belt",
			Inner:        mars.ActualDistance + 5,
			Outer:        jupiter.ActualDistance - 10,
			OrderedInner: mars.OrderedDistance + 1,
			OrderedOuter: jupiter.OrderedDistance - 1,
			Count:        2000,
			Color:        "#888888",
		},
		{
			Name:         "Kuiper Belt",
			Inner:        neptune.ActualDistance + 10,
			Outer:        neptune.ActualDistance + 60,
			OrderedInner: neptune.OrderedDistance + 2,
			OrderedOuter: eris.OrderedDistance + 5,
			Count:        3000,
			Color:        "#666688",
		},
	}
}
