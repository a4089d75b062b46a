package galaxy

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/system"
)

const mapCSV = `hostname,pl_name,st_teff,ra,dec,sy_dist,disc_year
TRAPPIST-1,TRAPPIST-1 b,2566,346.62,-5.04,12.43,2016
TRAPPIST-1,TRAPPIST-1 c,2566,346.62,-5.04,12.43,2016
TRAPPIST-1,TRAPPIST-1 d,2566,346.62,-5.04,12.43,2016
Kepler-22,Kepler-22 b,5596,284.98,47.88,194.49,2011
Proxima Cen,Proxima Cen b,3050,217.39,-62.68,1.30,2016
Proxima Cen,Proxima Cen d,3050,217.39,-62.68,1.30,2022
Mystery,Mystery b,,,,,
`

func testMap(t *testing.T) *Map {
	t.Helper()
	return Build(catalog.Parse(strings.NewReader(mapCSV)))
}

func TestBuild_Aggregates(t *testing.T) {
	m := testMap(t)

	if m.Len() != 4 {
		t.Fatalf("hosts = %d, want 4", m.Len())
	}

	trappist, ok := m.Lookup("trappist-1")
	if !ok {
		t.Fatal("TRAPPIST-1 missing")
	}
	if trappist.PlanetCount != 3 {
		t.Errorf("TRAPPIST-1 planets = %d, want 3", trappist.PlanetCount)
	}
	if trappist.StarType != "M-type (Red Dwarf)" || trappist.StarColor != "#ff4400" {
		t.Errorf("TRAPPIST-1 star = %q %q", trappist.StarType, trappist.StarColor)
	}
	if !trappist.Featured {
		t.Error("TRAPPIST-1 should be featured")
	}

	want := astro.ProjectGalactic(346.62, -5.04, 12.43)
	if trappist.Position != want {
		t.Errorf("position = %+v, want %+v", trappist.Position, want)
	}
}

func TestBuild_Defaults(t *testing.T) {
	e, ok := testMap(t).Lookup("Mystery")
	if !ok {
		t.Fatal("Mystery missing")
	}
	if e.DistancePc != DefaultDistancePc {
		t.Errorf("distance = %v, want %v", e.DistancePc, DefaultDistancePc)
	}
	if e.StarType != "Unknown" || e.StarColor != "#888888" {
		t.Errorf("unknown star = %q %q", e.StarType, e.StarColor)
	}
	wantR := astro.GalacticRadius(DefaultDistancePc)
	if math.Abs(e.Position.Norm()-wantR) > 1e-9 {
		t.Errorf("radius = %v, want %v", e.Position.Norm(), wantR)
	}
}

func TestSearch(t *testing.T) {
	m := testMap(t)

	got := m.Search("kep")
	if len(got) != 1 || got[0].Hostname != "Kepler-22" {
		t.Errorf("Search(kep) = %v", got)
	}
	if len(m.Search("zzz")) != 0 {
		t.Error("Search(zzz) should be empty")
	}

	var b strings.Builder
	b.WriteString("hostname,pl_name\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "Kepler-%d,Kepler-%d b\n", i, i)
	}
	big := Build(catalog.Parse(strings.NewReader(b.String())))
	if n := len(big.Search("kepler")); n != MaxResults {
		t.Errorf("Search cap = %d, want %d", n, MaxResults)
	}
}

func TestFeatured_CuratedOrder(t *testing.T) {
	var names []string
	for _, e := range testMap(t).Featured() {
		names = append(names, e.Hostname)
	}
	want := []string{"TRAPPIST-1", "Proxima Cen", "Kepler-22"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("featured mismatch (-want +got):\n%s", diff)
	}
}

func TestRandom(t *testing.T) {
	m := testMap(t)
	rng := rand.New(rand.NewPCG(42, 42))

	got := m.Random(3, rng)
	if len(got) != 3 {
		t.Fatalf("Random(3) = %d entries", len(got))
	}
	seen := map[string]bool{}
	for _, e := range got {
		if seen[e.Hostname] {
			t.Errorf("duplicate %s", e.Hostname)
		}
		seen[e.Hostname] = true
	}

	if len(m.Random(50, rng)) != m.Len() {
		t.Error("Random should cap at map size")
	}
	if m.Random(0, rng) != nil {
		t.Error("Random(0) should be nil")
	}

	a := m.Random(4, rand.New(rand.NewPCG(1, 1)))
	b := m.Random(4, rand.New(rand.NewPCG(1, 1)))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed differs:\n%s", diff)
	}
}

func TestByStarType(t *testing.T) {
	got := testMap(t).ByStarType("M-type")
	var names []string
	for _, e := range got {
		names = append(names, e.Hostname)
	}
	want := []string{"TRAPPIST-1", "Proxima Cen"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("ByStarType mismatch (-want +got):\n%s", diff)
	}
}

func TestFavorites(t *testing.T) {
	got := testMap(t).Favorites([]string{"Kepler-22", "Gone", system.HomeName})
	if len(got) != 2 {
		t.Fatalf("favorites = %d, want 2", len(got))
	}
	if got[0].Hostname != "Kepler-22" || !got[0].Favorite {
		t.Errorf("first favorite = %+v", got[0])
	}
	if got[1].Hostname != system.HomeName || got[1].StarType != "G-type (Yellow)" {
		t.Errorf("home favorite = %+v", got[1])
	}
}

func TestLabels(t *testing.T) {
	tests := []struct {
		temp  float64
		label string
		color string
	}{
		{0, "Unknown", "#888888"},
		{3000, "M-type (Red Dwarf)", "#ff4400"},
		{4500, "K-type (Orange)", "#ffaa00"},
		{5778, "G-type (Yellow)", "#ffdd00"},
		{7000, "F-type (White)", "#ffffcc"},
		{9000, "A-type (Blue-White)", "#ccddff"},
		{20000, "O/B-type (Blue)", "#aaccff"},
	}
	for _, tt := range tests {
		if got := StarTypeLabel(tt.temp); got != tt.label {
			t.Errorf("StarTypeLabel(%v) = %q, want %q", tt.temp, got, tt.label)
		}
		if got := IndicatorColor(tt.temp); got != tt.color {
			t.Errorf("IndicatorColor(%v) = %q, want %q", tt.temp, got, tt.color)
		}
	}
}

func TestNilMap(t *testing.T) {
	var m *Map
	if m.Len() != 0 || m.Search("x") != nil || m.Featured() != nil {
		t.Error("nil map should be empty")
	}
	if FromCatalog(nil).Len() != 0 {
		t.Error("FromCatalog(nil) should be empty")
	}
}
