// Package catalog parses and fetches the exoplanet catalog: one row per
// known planet, grouped by host star.
package catalog

import (
	"math"
	"strconv"
	"strings"
)

// Column names used by the NASA Exoplanet Archive export.
const (
	ColHostname        = "hostname"
	ColPlanetName      = "pl_name"
	ColOrbitalPeriod   = "pl_orbper"
	ColRadiusEarth     = "pl_rade"
	ColStarTeff        = "st_teff"
	ColStarRadius      = "st_rad"
	ColRA              = "ra"
	ColDec             = "dec"
	ColDistance        = "sy_dist"
	ColDiscoveryYear   = "disc_year"
	ColDiscoveryMethod = "discoverymethod"
)

// Record is one catalog row. Fields are kept as raw strings keyed by header
// name; numeric values are parsed on access.
type Record struct {
	fields map[string]string
}

// NewRecord builds a record from header/value pairs. Used by tests and by
// callers that assemble rows themselves.
func NewRecord(fields map[string]string) Record {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = strings.TrimSpace(v)
	}
	return Record{fields: cp}
}

// Field returns the raw value of a column, or "" when absent.
func (r Record) Field(name string) string {
	return r.fields[name]
}

// Hostname returns the host star name.
func (r Record) Hostname() string { return r.fields[ColHostname] }

// PlanetName returns the planet name.
func (r Record) PlanetName() string { return r.fields[ColPlanetName] }

// DiscoveryMethod returns the discovery method label.
func (r Record) DiscoveryMethod() string { return r.fields[ColDiscoveryMethod] }

// OrbitalPeriodDays returns the orbital period in days.
func (r Record) OrbitalPeriodDays() (float64, bool) { return r.Float(ColOrbitalPeriod) }

// RadiusEarth returns the planet radius in Earth radii.
func (r Record) RadiusEarth() (float64, bool) { return r.Float(ColRadiusEarth) }

// StarTeffK returns the stellar effective temperature in Kelvin.
func (r Record) StarTeffK() (float64, bool) { return r.Float(ColStarTeff) }

// StarRadiusSolar returns the stellar radius in solar radii.
func (r Record) StarRadiusSolar() (float64, bool) { return r.Float(ColStarRadius) }

// RAdeg returns the right ascension in degrees.
func (r Record) RAdeg() (float64, bool) { return r.Float(ColRA) }

// DecDeg returns the declination in degrees.
func (r Record) DecDeg() (float64, bool) { return r.Float(ColDec) }

// DistancePc returns the system distance in parsecs.
func (r Record) DistancePc() (float64, bool) { return r.Float(ColDistance) }

// DiscoveryYear returns the discovery year, or 0 when unknown.
func (r Record) DiscoveryYear() int {
	v, ok := r.Float(ColDiscoveryYear)
	if !ok {
		return 0
	}
	return int(v)
}

// Float parses a numeric column. Missing, empty and non-numeric values
// yield (NaN, false).
func (r Record) Float(name string) (float64, bool) {
	raw, ok := r.fields[name]
	if !ok || raw == "" {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

// FloatOr parses a numeric column, returning def when it is unusable.
// Zero is treated as unusable, matching the catalog convention that a 0 in a
// physical column means "not measured".
func (r Record) FloatOr(name string, def float64) float64 {
	v, ok := r.Float(name)
	if !ok || v == 0 {
		return def
	}
	return v
}

// SameHost reports whether the record belongs to hostname, ignoring case.
func (r Record) SameHost(hostname string) bool {
	return strings.EqualFold(r.Hostname(), hostname)
}
