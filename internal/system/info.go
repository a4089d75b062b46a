package system

import (
	"math"
	"strings"
)

// EarthDiameterKm is used to size planets known only by radius.
const EarthDiameterKm = 12742.0

// Gas is one atmospheric constituent by volume percent.
type Gas struct {
	Formula string  `json:"formula"`
	Percent float64 `json:"percent"`
}

// Atmosphere lists constituents in descending order of abundance.
type Atmosphere []Gas

// Dominant returns the most abundant gas, or "" for no atmosphere.
func (a Atmosphere) Dominant() string {
	if len(a) == 0 {
		return ""
	}
	return a[0].Formula
}

// Details are measured properties of a well-studied body.
type Details struct {
	Type           string     `json:"type"`
	DiameterKm     float64    `json:"diameter_km"`
	MassEarths     float64    `json:"mass_earths"`
	GravityMs2     float64    `json:"gravity_ms2"`
	AvgTempC       float64    `json:"avg_temp_c"`
	DistanceAU     float64    `json:"distance_au"`
	DayLengthHours float64    `json:"day_length_hours"`
	YearLengthDays float64    `json:"year_length_days,omitempty"`
	Atmosphere     Atmosphere `json:"atmosphere,omitempty"`
	AtmosphereDesc string     `json:"atmosphere_desc"`
	DiscoveredBy   string     `json:"discovered_by,omitempty"`
}

// PlanetInfo is either Known measured details or an Estimated profile
// derived from the synthesized planet. Use ResolveInfo to obtain one.
type PlanetInfo interface {
	Atmosphere() Atmosphere
	AtmosphereDescription() string
	DiameterKm() float64
	TemperatureC() float64
	isPlanetInfo()
}

// Known wraps measured details.
type Known struct {
	Details Details
}

func (k Known) Atmosphere() Atmosphere        { return k.Details.Atmosphere }
func (k Known) AtmosphereDescription() string { return k.Details.AtmosphereDesc }
func (k Known) DiameterKm() float64           { return k.Details.DiameterKm }
func (k Known) TemperatureC() float64         { return k.Details.AvgTempC }
func (Known) isPlanetInfo()                   {}

// Estimated is a heuristic profile for bodies without measured details.
type Estimated struct {
	Type         PlanetType
	RadiusEarth  float64
	TemperatureK float64
}

func (e Estimated) Atmosphere() Atmosphere {
	return EstimateAtmosphere(e.Type, e.TemperatureK)
}

func (e Estimated) AtmosphereDescription() string {
	switch e.Type {
	case PlanetGas:
		return "Thick hydrogen-helium atmosphere characteristic of gas giants."
	case PlanetSuperEarth:
		return "Scientists estimate a dense atmosphere, possibly rich in volatiles."
	case PlanetRocky:
		switch {
		case e.TemperatureK > 600:
			return "Extremely hot, potentially toxic atmosphere with heavy greenhouse effects."
		case e.TemperatureK > 250 && e.TemperatureK < 350:
			return "Potentially life-supporting atmosphere with balanced nitrogen and oxygen."
		default:
			return "Thin, freezing atmosphere primarily composed of inert gases."
		}
	}
	return "Atmospheric composition estimated based on planetary mass and temperature."
}

func (e Estimated) DiameterKm() float64 { return e.RadiusEarth * EarthDiameterKm }

func (e Estimated) TemperatureC() float64 {
	if math.IsNaN(e.TemperatureK) {
		return math.NaN()
	}
	return e.TemperatureK - 273.15
}

func (Estimated) isPlanetInfo() {}

// ResolveInfo returns Known details when the body is in the details table,
// otherwise an Estimated profile.
func ResolveInfo(p Planet) PlanetInfo {
	if d, ok := LookupDetails(p.Name); ok {
		return Known{Details: d}
	}
	return Estimated{Type: p.Type, RadiusEarth: p.RadiusEarth, TemperatureK: p.TemperatureK}
}

// EstimateAtmosphere guesses a composition from size class and equilibrium
// temperature in Kelvin. It returns nil when no estimate applies.
func EstimateAtmosphere(t PlanetType, tempK float64) Atmosphere {
	if math.IsNaN(tempK) {
		tempK = 0
	}
	switch t {
	case PlanetGas:
		return Atmosphere{{"H2", 90}, {"He", 10}}
	case PlanetIceGiant:
		return Atmosphere{{"H2", 80}, {"He", 18}, {"CH4", 2}}
	case PlanetSuperEarth, PlanetRocky:
		switch {
		case tempK > 600:
			return Atmosphere{{"CO2", 95}, {"N2", 4}, {"SO2", 1}}
		case tempK > 250 && tempK < 350:
			return Atmosphere{{"N2", 78}, {"O2", 21}, {"Ar", 1}}
		case tempK < 100:
			return Atmosphere{{"N2", 99}, {"CH4", 0.5}, {"CO", 0.5}}
		default:
			return Atmosphere{{"CO2", 95}, {"N2", 3}, {"Ar", 2}}
		}
	}
	return nil
}

// LookupDetails returns measured details for a home-system body.
func LookupDetails(name string) (Details, bool) {
	for k, d := range knownDetails {
		if strings.EqualFold(k, name) {
			return d, true
		}
	}
	return Details{}, false
}

var knownDetails = map[string]Details{
	"Mercury": {
		Type: "Terrestrial", DiameterKm: 4879, MassEarths: 0.055, GravityMs2: 3.7, AvgTempC: -8,
		DistanceAU: 0.39, DayLengthHours: 1416, YearLengthDays: 88,
		AtmosphereDesc: "No significant atmosphere", DiscoveredBy: "Known since antiquity",
	},
	"Venus": {
		Type: "Terrestrial", DiameterKm: 12104, MassEarths: 0.815, GravityMs2: 8.87, AvgTempC: 464,
		DistanceAU: 0.72, DayLengthHours: 5832, YearLengthDays: 225,
		Atmosphere:     Atmosphere{{"CO2", 96.5}, {"N2", 3.5}, {"SO2", 0.015}},
		AtmosphereDesc: "Thick, toxic atmosphere with sulfuric acid clouds", DiscoveredBy: "Known since antiquity",
	},
	"Earth": {
		Type: "Terrestrial", DiameterKm: 12742, MassEarths: 1.0, GravityMs2: 9.81, AvgTempC: 15,
		DistanceAU: 1.0, DayLengthHours: 24, YearLengthDays: 365.25,
		Atmosphere:     Atmosphere{{"N2", 78}, {"O2", 21}, {"Ar", 0.93}, {"CO2", 0.04}},
		AtmosphereDesc: "Nitrogen-oxygen atmosphere supporting life",
	},
	"Moon": {
		Type: "Moon (Natural Satellite)", DiameterKm: 3474, MassEarths: 0.0123, GravityMs2: 1.62, AvgTempC: -23,
		DistanceAU: 1.0, DayLengthHours: 655.2,
		AtmosphereDesc: "No atmosphere (exosphere only)", DiscoveredBy: "Known since antiquity",
	},
	"Mars": {
		Type: "Terrestrial", DiameterKm: 6779, MassEarths: 0.107, GravityMs2: 3.71, AvgTempC: -65,
		DistanceAU: 1.52, DayLengthHours: 24.6, YearLengthDays: 687,
		Atmosphere:     Atmosphere{{"CO2", 95.3}, {"N2", 2.7}, {"Ar", 1.6}, {"O2", 0.13}},
		AtmosphereDesc: "Thin CO2 atmosphere, 1% of Earth's pressure", DiscoveredBy: "Known since antiquity",
	},
	"Ceres": {
		Type: "Dwarf Planet", DiameterKm: 946, MassEarths: 0.00016, GravityMs2: 0.28, AvgTempC: -105,
		DistanceAU: 2.77, DayLengthHours: 9.1, YearLengthDays: 1680,
		AtmosphereDesc: "Transient water vapor detected", DiscoveredBy: "Giuseppe Piazzi (1801)",
	},
	"Jupiter": {
		Type: "Gas Giant", DiameterKm: 139820, MassEarths: 317.8, GravityMs2: 24.79, AvgTempC: -110,
		DistanceAU: 5.2, DayLengthHours: 9.9, YearLengthDays: 4333,
		Atmosphere:     Atmosphere{{"H2", 89.8}, {"He", 10.2}},
		AtmosphereDesc: "Hydrogen-helium atmosphere with colorful cloud bands", DiscoveredBy: "Known since antiquity",
	},
	"Saturn": {
		Type: "Gas Giant", DiameterKm: 116460, MassEarths: 95.2, GravityMs2: 10.44, AvgTempC: -140,
		DistanceAU: 9.58, DayLengthHours: 10.7, YearLengthDays: 10759,
		Atmosphere:     Atmosphere{{"H2", 96.3}, {"He", 3.25}},
		AtmosphereDesc: "Hydrogen-helium atmosphere with ammonia clouds", DiscoveredBy: "Known since antiquity (rings by Galileo 1610)",
	},
	"Uranus": {
		Type: "Ice Giant", DiameterKm: 50724, MassEarths: 14.5, GravityMs2: 8.87, AvgTempC: -195,
		DistanceAU: 19.22, DayLengthHours: 17.2, YearLengthDays: 30687,
		Atmosphere:     Atmosphere{{"H2", 82.5}, {"He", 15.2}, {"CH4", 2.3}},
		AtmosphereDesc: "Hydrogen-helium with methane giving blue color", DiscoveredBy: "William Herschel (1781)",
	},
	"Neptune": {
		Type: "Ice Giant", DiameterKm: 49528, MassEarths: 17.1, GravityMs2: 11.15, AvgTempC: -200,
		DistanceAU: 30.05, DayLengthHours: 16.1, YearLengthDays: 60190,
		Atmosphere:     Atmosphere{{"H2", 80}, {"He", 19}, {"CH4", 1}},
		AtmosphereDesc: "Hydrogen-helium with methane creating deep blue color", DiscoveredBy: "Johann Galle (1846)",
	},
	"Pluto": {
		Type: "Dwarf Planet", DiameterKm: 2377, MassEarths: 0.0022, GravityMs2: 0.62, AvgTempC: -230,
		DistanceAU: 39.5, DayLengthHours: 153.3, YearLengthDays: 90560,
		Atmosphere:     Atmosphere{{"N2", 99}, {"CH4", 0.5}, {"CO", 0.5}},
		AtmosphereDesc: "Thin nitrogen atmosphere that freezes when far from Sun", DiscoveredBy: "Clyde Tombaugh (1930)",
	},
	"Eris": {
		Type: "Dwarf Planet", DiameterKm: 2326, MassEarths: 0.0028, GravityMs2: 0.82, AvgTempC: -243,
		DistanceAU: 67.7, DayLengthHours: 25.9, YearLengthDays: 204199,
		AtmosphereDesc: "Possibly thin methane atmosphere when closest to Sun",
		DiscoveredBy:   "Mike Brown, Chad Trujillo, David Rabinowitz (2005)",
	},
	"Haumea": {
		Type: "Dwarf Planet", DiameterKm: 1632, MassEarths: 0.00067, GravityMs2: 0.44, AvgTempC: -241,
		DistanceAU: 43.3, DayLengthHours: 3.9, YearLengthDays: 103774,
		AtmosphereDesc: "No significant atmosphere", DiscoveredBy: "Mike Brown, Chad Trujillo (2004)",
	},
	"Makemake": {
		Type: "Dwarf Planet", DiameterKm: 1430, MassEarths: 0.00052, GravityMs2: 0.50, AvgTempC: -243,
		DistanceAU: 45.8, DayLengthHours: 22.5, YearLengthDays: 111400,
		AtmosphereDesc: "Possible thin nitrogen atmosphere",
		DiscoveredBy:   "Mike Brown, Chad Trujillo, David Rabinowitz (2005)",
	},
}
