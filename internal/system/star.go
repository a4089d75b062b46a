package system

import "math"

// SpectralInfo holds descriptive data for a spectral class.
type SpectralInfo struct {
	Type            SpectralType
	Name            string
	Description     string
	MinTempK        float64
	MaxTempK        float64
	Color           string
	LuminosityClass string
	SizeMultiplier  float64
}

// spectralTable is ordered hottest first and indexed by SpectralType.
var spectralTable = [...]SpectralInfo{
	{SpectralO, "O-type", "Blue supergiant, extremely hot and luminous", 30000, 60000, "#9bb0ff", "Supergiant", 3.0},
	{SpectralB, "B-type", "Blue-white giant, hot and bright", 10000, 30000, "#aabfff", "Giant", 2.5},
	{SpectralA, "A-type", "White star, common bright stars", 7500, 10000, "#cad7ff", "Main Sequence", 1.8},
	{SpectralF, "F-type", "Yellow-white star, slightly hotter than the Sun", 6000, 7500, "#f8f7ff", "Main Sequence", 1.3},
	{SpectralG, "G-type", "Yellow dwarf, Sun-like star", 5200, 6000, "#fff4ea", "Main Sequence", 1.0},
	{SpectralK, "K-type", "Orange dwarf, cooler and longer-lived", 3700, 5200, "#ffd2a1", "Main Sequence", 0.8},
	{SpectralM, "M-type", "Red dwarf, cool, small and common", 2400, 3700, "#ffb56c", "Main Sequence", 0.5},
}

// Info returns the descriptive data for the class.
func (s SpectralType) Info() SpectralInfo {
	if s < SpectralO || s > SpectralM {
		return spectralTable[SpectralG]
	}
	return spectralTable[s]
}

// ClassifySpectral buckets an effective temperature. Missing or
// non-positive temperatures classify as G.
func ClassifySpectral(tempK float64) SpectralType {
	switch {
	case math.IsNaN(tempK) || tempK <= 0:
		return SpectralG
	case tempK >= 30000:
		return SpectralO
	case tempK >= 10000:
		return SpectralB
	case tempK >= 7500:
		return SpectralA
	case tempK >= 6000:
		return SpectralF
	case tempK >= 5200:
		return SpectralG
	case tempK >= 3700:
		return SpectralK
	default:
		return SpectralM
	}
}

// starColors is the display color per class, indexed by SpectralType.
var starColors = [...]string{
	"#9bb0ff", // O
	"#aaccff", // B
	"#ccf2ff", // A
	"#ffffcc", // F
	DefaultStarColor,
	"#ffaa00", // K
	"#ff4400", // M
}

// StarColor returns the display color for an effective temperature, with
// the G-type yellow as fallback.
func StarColor(tempK float64) string {
	return starColors[ClassifySpectral(tempK)]
}

// newStar derives the star of a catalog system. Missing values fall
// back to a Sun-like star.
func newStar(name string, teff, radius float64) Star {
	if math.IsNaN(radius) || radius <= 0 {
		radius = DefaultStarRadius
	}
	temp := teff
	if math.IsNaN(temp) || temp <= 0 {
		temp = DefaultStarTempK
	}
	return Star{
		Name:              name,
		Color:             StarColor(teff),
		Size:              radius * StarSizeScale,
		RadiusSolar:       radius,
		TemperatureK:      temp,
		Spectral:          ClassifySpectral(teff),
		EmissiveIntensity: EmissiveIntensity,
	}
}
