package astro

import "math"

const (
	// GalacticBaseRadius is the scene radius of a system at 1 pc.
	GalacticBaseRadius = 10.0

	// GalacticSpread is the scene units per decade of distance.
	// Catalog distances run from ~1 pc to ~8000 pc, giving a 10-480 range.
	GalacticSpread = 120.0
)

// GalacticRadius compresses a distance in parsecs onto the overview scale.
// Distances below 1 pc (or missing) clamp to the base radius.
func GalacticRadius(distPc float64) float64 {
	if math.IsNaN(distPc) || distPc < 1 {
		distPc = 1
	}
	return GalacticBaseRadius + math.Log10(distPc)*GalacticSpread
}

// ProjectGalactic maps a system's RA/Dec/distance to a Cartesian position
// on the galaxy overview: RA is the azimuth in the XZ plane and Dec the
// elevation toward +Y. The result depends only on its inputs.
func ProjectGalactic(raDeg, decDeg, distPc float64) Vec3 {
	return EquatorialUnit(raDeg, decDeg).Scale(GalacticRadius(distPc))
}

// ProjectSky is ProjectGalactic for a SkyCoord.
func ProjectSky(c SkyCoord) Vec3 {
	return ProjectGalactic(c.RAdeg, c.DecDeg, c.DistPc)
}
