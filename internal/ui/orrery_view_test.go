package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/system"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func homeOrrery(t *testing.T) OrreryModel {
	t.Helper()
	m := NewOrreryModel()
	return m.SetSystem(system.SynthesizeHome(), orbit.DefaultParams(), nil)
}

func TestOrreryModelInit(t *testing.T) {
	m := NewOrreryModel()

	if m.focusIdx != -1 {
		t.Errorf("expected focusIdx -1 (star), got %d", m.focusIdx)
	}
	if m.scale() != 1.0 {
		t.Errorf("expected scale 1.0, got %f", m.scale())
	}
	if m.scaleMode != astro.ScaleLinear {
		t.Errorf("expected ScaleLinear, got %d", m.scaleMode)
	}
	if m.System() != nil {
		t.Error("new model should have no system")
	}
	if got := m.View(); got != "Terminal too small for orrery view" {
		t.Errorf("View() = %q", got)
	}
}

func TestOrreryModelSetSystem(t *testing.T) {
	m := homeOrrery(t)

	if m.System().Name != system.HomeName {
		t.Errorf("System() = %q, want %q", m.System().Name, system.HomeName)
	}
	if len(m.planets) != len(m.desc.Planets) {
		t.Errorf("planets = %d, want %d", len(m.planets), len(m.desc.Planets))
	}
	for _, i := range m.planets {
		if m.clock.Body(i).Parent != -1 {
			t.Errorf("planet index %d has parent %d", i, m.clock.Body(i).Parent)
		}
	}
	if m.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", m.Frames())
	}
}

func TestOrreryModelFocusNavigation(t *testing.T) {
	m := homeOrrery(t)

	if m.FocusedPlanet() != nil {
		t.Fatal("expected star focus initially")
	}

	m, _ = m.Update(key("j"))
	if p := m.FocusedPlanet(); p == nil || p.Name != "Mercury" {
		t.Errorf("after next, focused = %v, want Mercury", p)
	}

	m, _ = m.Update(key("j"))
	if p := m.FocusedPlanet(); p == nil || p.Name != "Venus" {
		t.Errorf("after next again, focused = %v, want Venus", p)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.FocusedPlanet() != nil {
		t.Error("esc should return focus to the star")
	}

	// Prev from the star wraps to the outermost body
	m, _ = m.Update(key("k"))
	last := m.desc.Planets[len(m.desc.Planets)-1].Name
	if p := m.FocusedPlanet(); p == nil || p.Name != last {
		t.Errorf("after prev from star, focused = %v, want %s", p, last)
	}

	// Next from the last body wraps to the star
	m, _ = m.Update(key("j"))
	if m.FocusedPlanet() != nil {
		t.Error("next from last body should wrap to the star")
	}
}

func TestOrreryModelFocusNoPlanets(t *testing.T) {
	m := NewOrreryModel()
	m = m.SetSystem(&system.Descriptor{Name: "Lonely", Star: system.Star{Size: 1}}, orbit.DefaultParams(), nil)

	m, _ = m.Update(key("j"))
	if m.focusIdx != -1 {
		t.Errorf("focusIdx = %d, want -1", m.focusIdx)
	}
}

func TestOrreryModelZoom(t *testing.T) {
	m := NewOrreryModel()

	m, _ = m.Update(key("]"))
	if m.scale() != 1.5 {
		t.Errorf("after zoom in, scale = %f, want 1.5", m.scale())
	}

	for i := 0; i < 20; i++ {
		m, _ = m.Update(key("]"))
	}
	if m.scale() != zoomLevels[len(zoomLevels)-1] {
		t.Errorf("zoom should clamp at %f, got %f", zoomLevels[len(zoomLevels)-1], m.scale())
	}

	for i := 0; i < 20; i++ {
		m, _ = m.Update(key("["))
	}
	if m.scale() != zoomLevels[0] {
		t.Errorf("zoom should clamp at %f, got %f", zoomLevels[0], m.scale())
	}

	m, _ = m.Update(key("0"))
	if m.scale() != 1.0 {
		t.Errorf("after reset, scale = %f, want 1.0", m.scale())
	}
}

func TestOrreryModelToggles(t *testing.T) {
	m := NewOrreryModel()

	m, _ = m.Update(key("m"))
	if m.scaleMode != astro.ScaleLogR {
		t.Errorf("scaleMode = %v, want log", m.scaleMode)
	}
	m, _ = m.Update(key("m"))
	if m.scaleMode != astro.ScaleLinear {
		t.Errorf("scaleMode = %v, want linear", m.scaleMode)
	}

	m, _ = m.Update(key("l"))
	if m.labelMode != LabelAll {
		t.Errorf("labelMode = %v, want all", m.labelMode)
	}
	m, _ = m.Update(key("l"))
	if m.labelMode != LabelNone {
		t.Errorf("labelMode = %v, want off", m.labelMode)
	}

	m, _ = m.Update(key("o"))
	if m.showOrbits {
		t.Error("orbits should be hidden after o")
	}
	m, _ = m.Update(key("h"))
	if m.showHabitable {
		t.Error("habitable zone should be hidden after h")
	}
}

func TestOrreryModelTick(t *testing.T) {
	m := homeOrrery(t)
	earth := m.clock.Index("Earth")
	start := m.clock.State(earth).Angle

	paused := orbit.DefaultParams().WithPaused(true)
	m = m.Tick(0.5, paused)
	if got := m.clock.State(earth).Angle; got != start {
		t.Errorf("paused tick moved Earth: %f -> %f", start, got)
	}
	if m.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", m.Frames())
	}

	m = m.Tick(0.5, orbit.DefaultParams())
	if got := m.clock.State(earth).Angle; got <= start {
		t.Errorf("forward tick should advance Earth: %f -> %f", start, got)
	}
	if m.params.Paused {
		t.Error("Tick should record the params it ran with")
	}
}

func TestOrreryModelTickWithoutSystem(t *testing.T) {
	m := NewOrreryModel()
	m = m.Tick(1, orbit.DefaultParams())
	if m.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", m.Frames())
	}
}

func TestOrreryModelView(t *testing.T) {
	m := homeOrrery(t).SetSize(120, 40).SetFavorite(true)

	view := m.View()
	for _, want := range []string{"Solar System", "✹", "★", "Planets:", "Speed:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = m.Update(key("j"))
	view = m.View()
	if !strings.Contains(view, "Mercury") {
		t.Error("focused planet should be named in the view")
	}
}

func TestOrreryModelViewRealDistances(t *testing.T) {
	p := orbit.DefaultParams().WithRealDistances(true)
	m := NewOrreryModel().SetSize(100, 30)
	m = m.SetSystem(system.SynthesizeHome(), p, nil)
	m = m.Tick(0, p)

	if !strings.Contains(m.View(), "real") {
		t.Error("HUD should report real distances")
	}
}

func TestPlanetGlyph(t *testing.T) {
	tests := []struct {
		name    string
		planet  system.Planet
		focused bool
		want    rune
	}{
		{"focused", system.Planet{Type: system.PlanetGas}, true, '◉'},
		{"ringed", system.Planet{Type: system.PlanetGas, Rings: &system.Ring{}}, false, '⊖'},
		{"gas giant", system.Planet{Type: system.PlanetGas}, false, '○'},
		{"ice giant", system.Planet{Type: system.PlanetIceGiant}, false, '○'},
		{"dwarf", system.Planet{Type: system.PlanetRocky, Dwarf: true}, false, '∙'},
		{"rocky", system.Planet{Type: system.PlanetRocky}, false, '•'},
		{"super earth", system.Planet{Type: system.PlanetSuperEarth}, false, '•'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := planetGlyph(tt.planet, tt.focused); got != tt.want {
				t.Errorf("planetGlyph() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDrawCircle(t *testing.T) {
	blank := func() [][]cell {
		grid := make([][]cell, 11)
		for y := range grid {
			grid[y] = make([]cell, 21)
			for x := range grid[y] {
				grid[y][x] = cell{ch: ' '}
			}
		}
		return grid
	}
	count := func(grid [][]cell, ch rune) int {
		n := 0
		for _, row := range grid {
			for _, c := range row {
				if c.ch == ch {
					n++
				}
			}
		}
		return n
	}

	grid := blank()
	drawCircle(grid, 10, 5, 0.5, cell{ch: '·'})
	if n := count(grid, '·'); n != 0 {
		t.Errorf("sub-cell radius drew %d cells", n)
	}

	grid = blank()
	grid[5][18] = cell{ch: 'X'}
	drawCircle(grid, 10, 5, 8, cell{ch: '·'})
	if n := count(grid, '·'); n == 0 {
		t.Error("circle drew nothing")
	}
	if grid[5][18].ch != 'X' {
		t.Error("circle should not overwrite occupied cells")
	}
	if grid[5][10].ch != ' ' {
		t.Error("circle should not touch its center")
	}
}
