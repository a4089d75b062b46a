// Package system synthesizes displayable star systems from catalog rows or
// from the built-in home system table.
package system

import (
	"fmt"
	"strings"
)

// Scene scale constants shared by every synthesized system.
const (
	StarSizeScale     = 3.0    // star display size per solar radius
	PlanetSizeScale   = 0.15   // planet display size per Earth radius
	DistanceScale     = 50.0   // scene units per AU
	OrbitMargin       = 1.5    // gap between packed orbits
	StarMargin        = 2.0    // gap between the star and the first orbit
	SolarRadiiPerAU   = 215.0  // unit conversion for equilibrium temperature
	DefaultStarTempK  = 5778.0 // used when a catalog row has no st_teff
	DefaultStarRadius = 1.0
	FallbackSpacing   = 0.5 // AU between planets with unknown periods
	EmissiveIntensity = 1.5
	DefaultStarColor  = "#ffdd00"
	DaysPerYear       = 365.0
)

// SpectralType is a Morgan-Keenan temperature class.
type SpectralType int

const (
	SpectralO SpectralType = iota
	SpectralB
	SpectralA
	SpectralF
	SpectralG
	SpectralK
	SpectralM
)

var spectralLetters = [...]string{"O", "B", "A", "F", "G", "K", "M"}

// String returns the class letter.
func (s SpectralType) String() string {
	if s < SpectralO || s > SpectralM {
		return "?"
	}
	return spectralLetters[s]
}

// MarshalText encodes the class as its letter.
func (s SpectralType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a class letter.
func (s *SpectralType) UnmarshalText(b []byte) error {
	for i, l := range spectralLetters {
		if strings.EqualFold(l, string(b)) {
			*s = SpectralType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown spectral type %q", b)
}

// PlanetType is the coarse size class of a planet.
type PlanetType string

const (
	PlanetRocky      PlanetType = "rocky"
	PlanetSuperEarth PlanetType = "super-earth"
	PlanetGas        PlanetType = "gas"
	PlanetIceGiant   PlanetType = "ice giant"
)

// Star describes the central body.
type Star struct {
	Name              string       `json:"name"`
	Color             string       `json:"color"`
	Size              float64      `json:"size"`
	RadiusSolar       float64      `json:"radius_solar"`
	TemperatureK      float64      `json:"temperature_k"`
	Spectral          SpectralType `json:"spectral_type"`
	EmissiveIntensity float64      `json:"emissive_intensity"`
}

// Ring describes a planetary ring in multiples of the planet size.
type Ring struct {
	Inner      float64 `json:"inner"`
	Outer      float64 `json:"outer"`
	Color      string  `json:"color,omitempty"`
	Opacity    float64 `json:"opacity,omitempty"`
	Procedural bool    `json:"procedural,omitempty"`
}

// Moon is a satellite. Distance is measured from the parent planet center.
type Moon struct {
	Name     string  `json:"name"`
	Size     float64 `json:"size"`
	Distance float64 `json:"distance"`
	Speed    float64 `json:"speed"`
	Color    string  `json:"color"`
}

// Planet is one orbiting body with both real and compact distances.
type Planet struct {
	Name            string     `json:"name"`
	Color           string     `json:"color"`
	RadiusEarth     float64    `json:"radius_earth"`
	Size            float64    `json:"size"`
	PeriodDays      float64    `json:"period_days,omitempty"`
	DistanceAU      float64    `json:"distance_au"`
	ActualDistance  float64    `json:"actual_distance"`
	OrderedDistance float64    `json:"ordered_distance"`
	Speed           float64    `json:"speed"`
	TemperatureK    float64    `json:"temperature_k"`
	Type            PlanetType `json:"planet_type"`
	AxialTilt       float64    `json:"axial_tilt,omitempty"` // radians
	Dwarf           bool       `json:"dwarf,omitempty"`
	Rings           *Ring      `json:"rings,omitempty"`
	Moons           []Moon     `json:"moons"`
	MoonsProcedural bool       `json:"moons_procedural,omitempty"`
	Procedural      bool       `json:"procedural"`
	Seed            float64    `json:"seed,omitempty"`
	DiscoveryMethod string     `json:"discovery_method,omitempty"`
	Description     string     `json:"description"`
}

// HasRings reports whether the planet carries a ring.
func (p Planet) HasRings() bool { return p.Rings != nil }

// Belt is an asteroid or debris belt. Inner/Outer are real distances;
// OrderedInner/OrderedOuter are anchored to the packed planet orbits.
type Belt struct {
	Name         string  `json:"name"`
	Inner        float64 `json:"inner_radius"`
	Outer        float64 `json:"outer_radius"`
	OrderedInner float64 `json:"ordered_inner"`
	OrderedOuter float64 `json:"ordered_outer"`
	Count        int     `json:"count"`
	Color        string  `json:"color"`
}

// Coords locates a system on the sky.
type Coords struct {
	RAdeg  float64 `json:"ra"`
	DecDeg float64 `json:"dec"`
	DistPc float64 `json:"dist"`
}

// Descriptor is a fully synthesized system. Planets are sorted by
// ActualDistance and carry packed OrderedDistance values.
type Descriptor struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Home          bool     `json:"home,omitempty"`
	DiscoveryYear int      `json:"discovery_year,omitempty"`
	Coords        Coords   `json:"coords"`
	Description   string   `json:"description"`
	Star          Star     `json:"star"`
	Planets       []Planet `json:"planets"`
	Belts         []Belt   `json:"belts,omitempty"`
}

// Planet returns the named planet, or nil.
func (d *Descriptor) Planet(name string) *Planet {
	for i := range d.Planets {
		if strings.EqualFold(d.Planets[i].Name, name) {
			return &d.Planets[i]
		}
	}
	return nil
}

// MoonCount returns the number of moons across all planets.
func (d *Descriptor) MoonCount() int {
	n := 0
	for _, p := range d.Planets {
		n += len(p.Moons)
	}
	return n
}

// SystemID derives a stable identifier from a host name.
func SystemID(hostname string) string {
	return strings.Join(strings.Fields(strings.ToLower(hostname)), "-")
}
