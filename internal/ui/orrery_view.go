package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/system"
)

// LabelMode controls which bodies are labeled.
type LabelMode int

const (
	LabelNone LabelMode = iota
	LabelFocused
	LabelAll
)

// String returns the label mode name.
func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// Discrete zoom levels for clean stepping
var zoomLevels = []float64{0.25, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 5.0, 10.0}

const defaultZoom = 3 // index of 1.0

// OrreryModel renders a top-down view of one system and owns its clock.
type OrreryModel struct {
	width  int
	height int

	desc      *system.Descriptor
	clock     *orbit.Clock
	positions []orbit.Position
	params    orbit.Params
	planets   []int // clock indices of planets, in orbit order
	favorite  bool

	// View state
	focusIdx      int // index into planets (-1 = star)
	zoomLevel     int
	scaleMode     astro.ScaleMode
	labelMode     LabelMode
	showOrbits    bool
	showHabitable bool
}

// NewOrreryModel creates a new orrery view model.
func NewOrreryModel() OrreryModel {
	return OrreryModel{
		focusIdx:      -1,
		zoomLevel:     defaultZoom,
		scaleMode:     astro.ScaleLinear,
		labelMode:     LabelFocused,
		showOrbits:    true,
		showHabitable: true,
		params:        orbit.DefaultParams(),
	}
}

// scale returns the current zoom scale.
func (m OrreryModel) scale() float64 {
	if m.zoomLevel < 0 || m.zoomLevel >= len(zoomLevels) {
		return 1.0
	}
	return zoomLevels[m.zoomLevel]
}

// SetSize updates the viewport size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// SetSystem replaces the displayed system with a fresh clock. Starting
// angles come from rng; nil starts every body at angle zero.
func (m OrreryModel) SetSystem(d *system.Descriptor, p orbit.Params, rng *rand.Rand) OrreryModel {
	m.desc = d
	m.params = p
	m.clock = orbit.NewClock(d, p, rng)
	m.positions = m.clock.Positions()
	m.focusIdx = -1

	m.planets = nil
	for i := 0; i < m.clock.Len(); i++ {
		if m.clock.Body(i).Parent < 0 {
			m.planets = append(m.planets, i)
		}
	}
	return m
}

// SetFavorite marks whether the displayed system is a favorite.
func (m OrreryModel) SetFavorite(fav bool) OrreryModel {
	m.favorite = fav
	return m
}

// Tick advances the clock by dt seconds.
func (m OrreryModel) Tick(dt float64, p orbit.Params) OrreryModel {
	m.params = p
	if m.clock == nil {
		return m
	}
	m.positions = m.clock.Tick(dt, p)
	return m
}

// System returns the displayed descriptor.
func (m OrreryModel) System() *system.Descriptor {
	return m.desc
}

// Frames returns the number of ticks applied to the current system.
func (m OrreryModel) Frames() uint64 {
	if m.clock == nil {
		return 0
	}
	return m.clock.Frames()
}

// Update handles input messages.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.focusNext()
		case "k", "up":
			m.focusPrev()
		case "esc":
			m.focusIdx = -1

		case "]":
			if m.zoomLevel < len(zoomLevels)-1 {
				m.zoomLevel++
			}
		case "[":
			if m.zoomLevel > 0 {
				m.zoomLevel--
			}
		case "0":
			m.zoomLevel = defaultZoom

		case "m":
			if m.scaleMode == astro.ScaleLinear {
				m.scaleMode = astro.ScaleLogR
			} else {
				m.scaleMode = astro.ScaleLinear
			}
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "o":
			m.showOrbits = !m.showOrbits
		case "h":
			m.showHabitable = !m.showHabitable
		}
	}
	return m, nil
}

func (m *OrreryModel) focusNext() {
	if len(m.planets) == 0 {
		return
	}
	m.focusIdx++
	if m.focusIdx >= len(m.planets) {
		m.focusIdx = -1 // Wrap to star
	}
}

func (m *OrreryModel) focusPrev() {
	if len(m.planets) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < -1 {
		m.focusIdx = len(m.planets) - 1
	}
}

// FocusedPlanet returns the focused planet, or nil for the star.
func (m OrreryModel) FocusedPlanet() *system.Planet {
	if m.desc == nil || m.focusIdx < 0 || m.focusIdx >= len(m.planets) {
		return nil
	}
	name := m.clock.Body(m.planets[m.focusIdx]).Name
	return m.desc.Planet(name)
}

// View renders the orrery.
func (m OrreryModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for orrery view"
	}
	if m.desc == nil {
		return "No system loaded"
	}

	canvas := m.buildCanvas()
	hud := m.renderHUD()
	return lipgloss.JoinVertical(lipgloss.Left, canvas, hud)
}

// cell is one canvas character with its color.
type cell struct {
	ch    rune
	color string
	bold  bool
}

// bodyPos tracks a body's screen position for label rendering.
type bodyPos struct {
	x, y      int
	name      string
	isFocused bool
}

// extent returns the largest display radius the view must fit.
func (m OrreryModel) extent() float64 {
	outer := 0.0
	for _, p := range m.desc.Planets {
		r := p.OrderedDistance
		if m.params.RealDistances {
			r = p.ActualDistance
		}
		outer = math.Max(outer, r+p.Size)
	}
	// Distances still animating toward a new mode
	for _, i := range m.planets {
		outer = math.Max(outer, m.clock.State(i).Distance)
	}
	if outer <= 0 {
		outer = math.Max(m.desc.Star.Size*2, 1)
	}
	return astro.ScaleRadius(outer, m.scaleMode)
}

// buildCanvas renders the system to a string canvas.
func (m OrreryModel) buildCanvas() string {
	// Reserve space for HUD (3 lines)
	canvasH := m.height - 4
	if canvasH < 5 {
		canvasH = 5
	}
	canvasW := m.width

	grid := make([][]cell, canvasH)
	for y := range grid {
		grid[y] = make([]cell, canvasW)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	cx := canvasW / 2
	cy := canvasH / 2
	cfg := astro.ProjectionConfig{Scale: 1, Mode: m.scaleMode}

	maxDisplayR := float64(min(cx, cy*2)) * 0.9
	displayScale := maxDisplayR / m.extent() * m.scale()

	if m.showHabitable {
		zone := m.desc.HabitableZone(m.params.RealDistances)
		for _, r := range []float64{zone.Inner, zone.Outer} {
			drawCircle(grid, cx, cy, astro.ScaleRadius(r, m.scaleMode)*displayScale, cell{ch: '░', color: "#1f6f3f"})
		}
	}

	if m.showOrbits {
		for _, i := range m.planets {
			r := astro.ScaleRadius(m.clock.State(i).Distance, m.scaleMode) * displayScale
			drawCircle(grid, cx, cy, r, cell{ch: '·', color: "240"})
		}
	}

	var labels []bodyPos
	focusName := ""
	if fp := m.FocusedPlanet(); fp != nil {
		focusName = fp.Name
	}

	// Moons first so planets win shared cells.
	for pass := 0; pass < 2; pass++ {
		for _, pos := range m.positions {
			isMoon := pos.Parent != ""
			if (pass == 0) != isMoon {
				continue
			}

			proj := astro.ProjectTopDown(astro.Vec3{X: pos.X, Z: pos.Z}, cfg)
			sx := cx + int(math.Round(proj.X*displayScale))
			sy := cy - int(math.Round(proj.Y*displayScale*0.5))
			if sx < 0 || sx >= canvasW || sy < 0 || sy >= canvasH {
				continue
			}

			if isMoon {
				if grid[sy][sx].ch == ' ' || grid[sy][sx].ch == '·' {
					grid[sy][sx] = cell{ch: '∘', color: "245"}
				}
				continue
			}

			p := m.desc.Planet(pos.Name)
			if p == nil {
				continue
			}
			focused := pos.Name == focusName
			grid[sy][sx] = cell{ch: planetGlyph(*p, focused), color: p.Color, bold: focused}
			labels = append(labels, bodyPos{x: sx, y: sy, name: pos.Name, isFocused: focused})
		}
	}

	// Star at the origin LAST so it's always visible
	grid[cy][cx] = cell{ch: '✹', color: m.desc.Star.Color, bold: true}
	labels = append(labels, bodyPos{x: cx, y: cy, name: m.desc.Star.Name, isFocused: m.focusIdx == -1})

	m.renderLabels(grid, labels)
	return renderCells(grid)
}

// planetGlyph picks a glyph by planet type.
func planetGlyph(p system.Planet, focused bool) rune {
	if focused {
		return '◉'
	}
	switch {
	case p.HasRings():
		return '⊖'
	case p.Type == system.PlanetGas || p.Type == system.PlanetIceGiant:
		return '○'
	case p.Dwarf:
		return '∙'
	default:
		return '•'
	}
}

// drawCircle traces a circle with aspect ratio correction, leaving
// occupied cells alone.
func drawCircle(grid [][]cell, cx, cy int, r float64, c cell) {
	if r < 1 || math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}

	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 720 {
		steps = 720
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(r*math.Cos(theta))
		y := cy - int(r*math.Sin(theta)*0.5)

		if x >= 0 && x < w && y >= 0 && y < h && grid[y][x].ch == ' ' {
			grid[y][x] = c
		}
	}
}

// renderLabels draws body labels on the canvas based on label mode.
func (m OrreryModel) renderLabels(grid [][]cell, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}
	height := len(grid)
	width := len(grid[0])

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= height || labelX >= width {
			continue
		}

		text := pos.name
		if pos.isFocused {
			text = "◄ " + pos.name
		}

		x := labelX
		for _, r := range text {
			if x >= width {
				break
			}
			// Only write over empty cells and orbit lines
			if ch := grid[labelY][x].ch; ch == ' ' || ch == '·' || ch == '░' {
				grid[labelY][x] = cell{ch: r, color: "249", bold: pos.isFocused}
			}
			x++
		}
	}
}

// renderCells converts a cell grid to a styled string.
func renderCells(grid [][]cell) string {
	var b strings.Builder
	styles := map[string]lipgloss.Style{}

	for _, row := range grid {
		for _, c := range row {
			if c.ch == ' ' {
				b.WriteRune(' ')
				continue
			}
			key := c.color
			if c.bold {
				key += "!"
			}
			style, ok := styles[key]
			if !ok {
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.color)).Bold(c.bold)
				styles[key] = style
			}
			b.WriteString(style.Render(string(c.ch)))
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (m OrreryModel) renderHUD() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	favStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	field := func(label, value string) {
		b.WriteString(labelStyle.Render(label + " "))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("  ")
	}

	// Line 1: system
	title := m.desc.Name
	if m.favorite {
		title += " " + favStyle.Render("★")
	}
	b.WriteString(headerStyle.Render("✹ " + title))
	b.WriteString("  ")
	field("Star:", fmt.Sprintf("%s %.0fK", m.desc.Star.Spectral, m.desc.Star.TemperatureK))
	field("Planets:", fmt.Sprintf("%d", len(m.desc.Planets)))
	field("Moons:", fmt.Sprintf("%d", m.desc.MoonCount()))
	if m.desc.Coords.DistPc > 0 {
		field("Dist:", fmt.Sprintf("%.1f pc", m.desc.Coords.DistPc))
	}
	b.WriteString("\n")

	// Line 2: focused body
	if p := m.FocusedPlanet(); p != nil {
		info := system.ResolveInfo(*p)
		b.WriteString(headerStyle.Render("◆ " + p.Name))
		b.WriteString("  ")
		field("Type:", string(p.Type))
		field("Orbit:", fmt.Sprintf("%.3f AU", p.DistanceAU))
		if p.PeriodDays > 0 {
			field("Period:", fmt.Sprintf("%.1f d", p.PeriodDays))
		}
		field("Diameter:", fmt.Sprintf("%.0f km", info.DiameterKm()))
		if t := info.TemperatureC(); !math.IsNaN(t) {
			field("Temp:", fmt.Sprintf("%.0f°C", t))
		}
		if atm := info.Atmosphere(); len(atm) > 0 {
			field("Atmosphere:", atm.Dominant())
		}
		if m.desc.HabitableZone(true).Contains(p.ActualDistance) {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3fbf6f")).Render("habitable zone"))
		}
	} else {
		b.WriteString(dimStyle.Render(m.desc.Description))
	}
	b.WriteString("\n")

	// Line 3: time controls and view modes
	play := "▶"
	if m.params.Paused {
		play = "⏸"
	}
	dist := "compact"
	if m.params.RealDistances {
		dist = "real"
	}
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	b.WriteString(valueStyle.Render(play))
	b.WriteString("  ")
	field("Speed:", fmt.Sprintf("%.2gx %s", m.params.Speed, m.params.Direction))
	field("Distances:", dist)
	field("Scale:", m.scaleMode.String())
	field("Zoom:", fmt.Sprintf("%.2gx", m.scale()))
	field("Labels:", m.labelMode.String())
	field("Orbits:", onOff(m.showOrbits))
	field("HZ:", onOff(m.showHabitable))
	b.WriteString(dimStyle.Render(fmt.Sprintf("frame %d", m.Frames())))

	return b.String()
}
