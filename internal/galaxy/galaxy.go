// Package galaxy summarizes catalog hosts for browsing and places them on
// the galaxy-scale overview.
package galaxy

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/system"
)

// DefaultDistancePc places hosts with unknown distance on the map.
const DefaultDistancePc = 100.0

// MaxResults caps search and star-type listings.
const MaxResults = 10

// FeaturedHosts are notable systems offered first in discovery.
var FeaturedHosts = []string{
	"TRAPPIST-1", // seven Earth-sized planets
	"Kepler-186", // Earth-sized planet in the habitable zone
	"Kepler-90",  // eight planets
	"Proxima Cen",
	"TOI-700",
	"Kepler-452",
	"Kepler-22",
	"HD 10180",
	"LHS 1140",
	"GJ 1061",
}

// Entry is one host on the map.
type Entry struct {
	Hostname      string     `json:"hostname"`
	PlanetCount   int        `json:"planet_count"`
	StarTempK     float64    `json:"star_temp_k,omitempty"` // 0 when unknown
	StarType      string     `json:"star_type"`
	StarColor     string     `json:"star_color"`
	DiscoveryYear int        `json:"discovery_year,omitempty"`
	RAdeg         float64    `json:"ra"`
	DecDeg        float64    `json:"dec"`
	DistancePc    float64    `json:"distance_pc"`
	Position      astro.Vec3 `json:"position"`
	Featured      bool       `json:"featured,omitempty"`
	Favorite      bool       `json:"favorite,omitempty"`
}

// StarTypeLabel returns the browsing label for an effective temperature.
func StarTypeLabel(tempK float64) string {
	switch {
	case math.IsNaN(tempK) || tempK <= 0:
		return "Unknown"
	case tempK < 3700:
		return "M-type (Red Dwarf)"
	case tempK < 5200:
		return "K-type (Orange)"
	case tempK < 6000:
		return "G-type (Yellow)"
	case tempK < 7500:
		return "F-type (White)"
	case tempK < 10000:
		return "A-type (Blue-White)"
	default:
		return "O/B-type (Blue)"
	}
}

// IndicatorColor returns the map marker color for an effective temperature.
func IndicatorColor(tempK float64) string {
	switch {
	case math.IsNaN(tempK) || tempK <= 0:
		return "#888888"
	case tempK < 3700:
		return "#ff4400"
	case tempK < 5200:
		return "#ffaa00"
	case tempK < 6000:
		return "#ffdd00"
	case tempK < 7500:
		return "#ffffcc"
	case tempK < 10000:
		return "#ccddff"
	default:
		return "#aaccff"
	}
}

// Map is the set of catalog hosts with their projected positions. It is
// built once per loaded catalog and not modified afterwards.
type Map struct {
	Entries []Entry
	index   map[string]int // lowercase host -> entry
}

// Build aggregates records into one entry per host, in first-seen order.
func Build(records []catalog.Record) *Map {
	m := &Map{index: make(map[string]int)}
	for _, r := range records {
		key := strings.ToLower(r.Hostname())
		if i, ok := m.index[key]; ok {
			m.Entries[i].PlanetCount++
			continue
		}

		temp, ok := r.StarTeffK()
		if !ok || temp <= 0 {
			temp = 0
		}
		dist := r.FloatOr(catalog.ColDistance, DefaultDistancePc)
		ra := r.FloatOr(catalog.ColRA, 0)
		dec := r.FloatOr(catalog.ColDec, 0)

		m.index[key] = len(m.Entries)
		m.Entries = append(m.Entries, Entry{
			Hostname:      r.Hostname(),
			PlanetCount:   1,
			StarTempK:     temp,
			StarType:      StarTypeLabel(temp),
			StarColor:     IndicatorColor(temp),
			DiscoveryYear: r.DiscoveryYear(),
			RAdeg:         ra,
			DecDeg:        dec,
			DistancePc:    dist,
			Position:      astro.ProjectGalactic(ra, dec, dist),
			Featured:      isFeatured(r.Hostname()),
		})
	}
	return m
}

// FromCatalog builds the map of a loaded catalog.
func FromCatalog(c *catalog.Catalog) *Map {
	if c == nil {
		return Build(nil)
	}
	return Build(c.Records)
}

func isFeatured(host string) bool {
	for _, f := range FeaturedHosts {
		if strings.EqualFold(f, host) {
			return true
		}
	}
	return false
}

// Len returns the number of hosts.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Lookup returns the entry for a host, matched case-insensitively.
func (m *Map) Lookup(host string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	i, ok := m.index[strings.ToLower(host)]
	if !ok {
		return Entry{}, false
	}
	return m.Entries[i], true
}

// Search returns up to MaxResults hosts whose name contains term.
func (m *Map) Search(term string) []Entry {
	if m == nil {
		return nil
	}
	term = strings.ToLower(strings.TrimSpace(term))
	var out []Entry
	for _, e := range m.Entries {
		if strings.Contains(strings.ToLower(e.Hostname), term) {
			out = append(out, e)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// Featured returns the featured hosts present in the map, in curated order.
func (m *Map) Featured() []Entry {
	var out []Entry
	for _, name := range FeaturedHosts {
		if e, ok := m.Lookup(name); ok {
			out = append(out, e)
		}
	}
	return out
}

// Random returns n distinct hosts chosen by a Fisher-Yates shuffle.
func (m *Map) Random(n int, rng *rand.Rand) []Entry {
	if m == nil || n <= 0 {
		return nil
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	shuffled := make([]Entry, len(m.Entries))
	copy(shuffled, m.Entries)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// ByStarType returns up to MaxResults hosts whose star type label starts
// with prefix, most planets first.
func (m *Map) ByStarType(prefix string) []Entry {
	if m == nil {
		return nil
	}
	var out []Entry
	for _, e := range m.Entries {
		if strings.HasPrefix(e.StarType, prefix) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlanetCount > out[j].PlanetCount
	})
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

// Favorites resolves favorite host names to entries, keeping favorite
// order. The home system is summarized even though it is not in the
// catalog; unknown hosts are skipped.
func (m *Map) Favorites(hosts []string) []Entry {
	var out []Entry
	for _, h := range hosts {
		if strings.EqualFold(h, system.HomeName) {
			e := HomeEntry()
			e.Favorite = true
			out = append(out, e)
			continue
		}
		if e, ok := m.Lookup(h); ok {
			e.Favorite = true
			out = append(out, e)
		}
	}
	return out
}

// HomeEntry summarizes the home system at the map origin.
func HomeEntry() Entry {
	return Entry{
		Hostname:    system.HomeName,
		PlanetCount: 8,
		StarTempK:   system.DefaultStarTempK,
		StarType:    StarTypeLabel(system.DefaultStarTempK),
		StarColor:   "#ffffff",
	}
}
