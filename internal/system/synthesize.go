package system

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
)

// planetPalette colors catalog planets by index.
var planetPalette = []string{"#A5A5A5", "#E3BB76", "#2233FF", "#E27B58", "#D39C7E", "#C5AB6E", "#BBE1E4", "#6081FF"}

// Size-gated procedural attachment thresholds, in Earth radii.
const (
	GasGiantRadius   = 6.0
	SuperEarthRadius = 1.5
	MoonMinRadius    = 2.0
	LargeMoonRadius  = 8.0 // planets above this may have up to 5 moons
)

// Option configures synthesis.
type Option func(*synthOptions)

type synthOptions struct {
	rng *rand.Rand
}

// WithSeed makes procedural rings and moons reproducible for a key,
// typically the host name.
func WithSeed(key string) Option {
	return func(o *synthOptions) {
		o.rng = SeededRand(key)
	}
}

// WithRand uses the given generator for procedural attachment.
func WithRand(r *rand.Rand) Option {
	return func(o *synthOptions) {
		if r != nil {
			o.rng = r
		}
	}
}

// SeededRand returns a PCG generator keyed by the SHA-256 of key.
func SeededRand(key string) *rand.Rand {
	sum := sha256.Sum256([]byte(key))
	return rand.New(rand.NewPCG(
		binary.BigEndian.Uint64(sum[0:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	))
}

// ClassifyPlanet buckets a planet by radius in Earth radii.
func ClassifyPlanet(radiusEarth float64) PlanetType {
	switch {
	case radiusEarth > GasGiantRadius:
		return PlanetGas
	case radiusEarth > SuperEarthRadius:
		return PlanetSuperEarth
	default:
		return PlanetRocky
	}
}

// OrbitDistanceAU converts an orbital period to a semi-major axis using
// Kepler's third law for a solar-mass star. Periods that are missing or
// not positive fall back to index-based spacing.
func OrbitDistanceAU(periodDays float64, index int) float64 {
	if math.IsNaN(periodDays) || periodDays <= 0 {
		return float64(index+1) * FallbackSpacing
	}
	return astro.KeplerDistanceAU(periodDays)
}

// Synthesize builds the system of hostname from catalog records. Rows are
// matched case-insensitively; a host without rows yields a *NotFoundError.
// Procedural rings and moons are unseeded unless WithSeed or WithRand is
// given.
func Synthesize(hostname string, records []catalog.Record, opts ...Option) (*Descriptor, error) {
	rows := catalog.FilterHost(records, hostname)
	if len(rows) == 0 {
		return nil, &NotFoundError{Hostname: hostname}
	}

	o := synthOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	first := rows[0]
	name := first.Hostname()
	teff, _ := first.StarTeffK()
	srad, _ := first.StarRadiusSolar()
	star := newStar(name, teff, srad)

	planets := make([]Planet, 0, len(rows))
	for i, row := range rows {
		planets = append(planets, synthPlanet(row, i, star, o.rng))
	}

	sort.SliceStable(planets, func(i, j int) bool {
		return planets[i].ActualDistance < planets[j].ActualDistance
	})
	Pack(star.Size, planets)

	year := first.DiscoveryYear()
	yearText := "unknown"
	if year > 0 {
		yearText = strconv.Itoa(year)
	}

	return &Descriptor{
		ID:            SystemID(name),
		Name:          name,
		DiscoveryYear: year,
		Coords: Coords{
			RAdeg:  first.FloatOr(catalog.ColRA, 0),
			DecDeg: first.FloatOr(catalog.ColDec, 0),
			DistPc: first.FloatOr(catalog.ColDistance, 0),
		},
		Description: fmt.Sprintf("The %s system, discovered in %s. Data from NASA Exoplanet Archive.", name, yearText),
		Star:        star,
		Planets:     planets,
	}, nil
}

func synthPlanet(row catalog.Record, index int, star Star, rng *rand.Rand) Planet {
	radius := row.FloatOr(catalog.ColRadiusEarth, 1)
	if radius <= 0 {
		radius = 1
	}
	size := radius * PlanetSizeScale
	period, hasPeriod := row.OrbitalPeriodDays()
	if hasPeriod && period <= 0 {
		hasPeriod = false
	}
	distAU := OrbitDistanceAU(period, index)

	speedPeriod := DaysPerYear
	periodText := "unknown"
	if hasPeriod {
		speedPeriod = period
		periodText = row.Field(catalog.ColOrbitalPeriod)
	}
	method := row.DiscoveryMethod()
	methodText := method
	if methodText == "" {
		methodText = "unknown"
	}

	p := Planet{
		Name:            row.PlanetName(),
		Color:           planetPalette[index%len(planetPalette)],
		RadiusEarth:     radius,
		Size:            size,
		DistanceAU:      distAU,
		ActualDistance:  distAU * DistanceScale,
		Speed:           0.1 / speedPeriod,
		TemperatureK:    astro.EquilibriumTemp(star.TemperatureK, star.RadiusSolar, distAU),
		Type:            ClassifyPlanet(radius),
		Procedural:      true,
		DiscoveryMethod: method,
		Description: fmt.Sprintf("Planet %s. Orbital period: %s days. Discovery method: %s.",
			row.PlanetName(), periodText, methodText),
		Moons: []Moon{},
	}
	if hasPeriod {
		p.PeriodDays = period
	}

	if radius > GasGiantRadius && rng.Float64() > 0.5 {
		p.Rings = &Ring{
			Inner:      1.2,
			Outer:      1.5 + rng.Float64(),
			Color:      planetPalette[index%len(planetPalette)],
			Opacity:    0.3 + rng.Float64()*0.4,
			Procedural: true,
		}
	}

	if radius > MoonMinRadius {
		p.MoonsProcedural = true
		limit := 3.0
		if radius > LargeMoonRadius {
			limit = 5
		}
		count := int(rng.Float64() * limit)
		for i := 0; i < count; i++ {
			p.Moons = append(p.Moons, Moon{
				Name:     fmt.Sprintf("%s %c", p.Name, 'i'+rune(i)),
				Size:     size * (0.1 + rng.Float64()*0.2),
				Distance: size * (2 + float64(i)*1.5 + rng.Float64()),
				Speed:    (0.5 + rng.Float64()*1.5) * 0.01,
				Color:    "#888888",
			})
		}
	}

	p.Seed = rng.Float64()
	return p
}

// Pack assigns OrderedDistance to planets already sorted by ActualDistance.
// The first orbit clears the star by StarMargin plus its own size and
// OrbitMargin; every following orbit clears its inner neighbor by both
// sizes plus OrbitMargin.
func Pack(starSize float64, planets []Planet) {
	cur := starSize + StarMargin
	for i := range planets {
		if i == 0 {
			cur += planets[i].Size + OrbitMargin
		} else {
			cur += planets[i-1].Size + planets[i].Size + OrbitMargin
		}
		planets[i].OrderedDistance = cur
	}
}
