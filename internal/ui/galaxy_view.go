package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/galaxy"
)

// ListMode selects which hosts the galaxy view lists.
type ListMode int

const (
	ListFeatured ListMode = iota
	ListSearch
	ListFavorites
	ListRandom
	ListStarType
)

// String returns the list title.
func (l ListMode) String() string {
	switch l {
	case ListFeatured:
		return "Featured"
	case ListSearch:
		return "Search"
	case ListFavorites:
		return "Favorites"
	case ListRandom:
		return "Random"
	case ListStarType:
		return "Star type"
	default:
		return "?"
	}
}

// starTypePrefixes cycle the star type filter.
var starTypePrefixes = []string{"M", "K", "G", "F", "A", "O/B"}

// RandomCount is the number of hosts a random pick lists.
const RandomCount = 10

// Messages emitted by the galaxy view.
type (
	// OpenSystemMsg requests showing a host in the orrery.
	OpenSystemMsg struct {
		Host string
	}

	// ToggleFavoriteMsg requests adding or removing a favorite.
	ToggleFavoriteMsg struct {
		Host string
	}
)

// GalaxyModel browses catalog hosts and plots them on a galactic map.
type GalaxyModel struct {
	width  int
	height int

	gmap      *galaxy.Map
	favorites []string

	mode     ListMode
	entries  []galaxy.Entry
	cursor   int
	typing   bool
	query    string
	typeIdx  int
	showMap  bool
	lastNote string
}

// NewGalaxyModel creates a new galaxy view model.
func NewGalaxyModel() GalaxyModel {
	return GalaxyModel{
		mode:    ListFeatured,
		showMap: true,
	}
}

// SetSize updates the viewport size.
func (m GalaxyModel) SetSize(width, height int) GalaxyModel {
	m.width = width
	m.height = height
	return m
}

// SetMap replaces the host map and refreshes the current list.
func (m GalaxyModel) SetMap(g *galaxy.Map) GalaxyModel {
	m.gmap = g
	if m.mode == ListRandom {
		// Keep the current pick; a new catalog only changes membership.
		m.entries = m.resolve(m.entries)
	} else {
		m.refresh()
	}
	return m
}

// SetFavorites replaces the favorites list.
func (m GalaxyModel) SetFavorites(hosts []string) GalaxyModel {
	m.favorites = append([]string{}, hosts...)
	if m.mode == ListFavorites {
		m.refresh()
	}
	return m
}

// Typing reports whether the search prompt is capturing keys.
func (m GalaxyModel) Typing() bool {
	return m.typing
}

// Selected returns the entry under the cursor.
func (m GalaxyModel) Selected() (galaxy.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return galaxy.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// refresh recomputes the listed entries for the current mode.
func (m *GalaxyModel) refresh() {
	switch m.mode {
	case ListFeatured:
		m.entries = m.gmap.Featured()
	case ListSearch:
		m.entries = m.gmap.Search(m.query)
	case ListFavorites:
		m.entries = m.gmap.Favorites(m.favorites)
	case ListRandom:
		m.entries = m.gmap.Random(RandomCount, nil)
	case ListStarType:
		m.entries = m.gmap.ByStarType(starTypePrefixes[m.typeIdx])
	}
	if m.cursor >= len(m.entries) {
		m.cursor = max(len(m.entries)-1, 0)
	}
}

// resolve looks entries up again in the current map, dropping hosts it
// no longer has.
func (m GalaxyModel) resolve(entries []galaxy.Entry) []galaxy.Entry {
	var out []galaxy.Entry
	for _, e := range entries {
		if fresh, ok := m.gmap.Lookup(e.Hostname); ok {
			out = append(out, fresh)
		}
	}
	return out
}

func (m GalaxyModel) isFavorite(host string) bool {
	for _, h := range m.favorites {
		if strings.EqualFold(h, host) {
			return true
		}
	}
	return false
}

// Update handles input messages.
func (m GalaxyModel) Update(msg tea.Msg) (GalaxyModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.typing {
		switch key.Type {
		case tea.KeyEnter:
			m.typing = false
			m.mode = ListSearch
			m.cursor = 0
			m.refresh()
		case tea.KeyEsc:
			m.typing = false
		case tea.KeyBackspace:
			if r := []rune(m.query); len(r) > 0 {
				m.query = string(r[:len(r)-1])
			}
		case tea.KeySpace:
			m.query += " "
		case tea.KeyRunes:
			m.query += string(key.Runes)
		}
		return m, nil
	}

	switch key.String() {
	case "/":
		m.typing = true
		m.query = ""
	case "e":
		m.mode = ListFeatured
		m.cursor = 0
		m.refresh()
	case "v":
		m.mode = ListFavorites
		m.cursor = 0
		m.refresh()
	case "r":
		m.mode = ListRandom
		m.cursor = 0
		m.refresh()
	case "t":
		if m.mode == ListStarType {
			m.typeIdx = (m.typeIdx + 1) % len(starTypePrefixes)
		}
		m.mode = ListStarType
		m.cursor = 0
		m.refresh()
	case "m":
		m.showMap = !m.showMap

	case "j", "down":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter":
		if e, ok := m.Selected(); ok {
			host := e.Hostname
			return m, func() tea.Msg { return OpenSystemMsg{Host: host} }
		}
	case "f":
		if e, ok := m.Selected(); ok {
			host := e.Hostname
			return m, func() tea.Msg { return ToggleFavoriteMsg{Host: host} }
		}
	}
	return m, nil
}

// View renders the galaxy browser.
func (m GalaxyModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small for galaxy view"
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	listH := len(m.entries) + 1
	if m.showMap {
		mapH := m.height - listH - 3
		if mapH >= 5 {
			b.WriteString(m.renderMap(m.width, mapH))
		}
	}
	b.WriteString(m.renderList())
	return b.String()
}

func (m GalaxyModel) renderTitle() string {
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	title := headerStyle.Render("✦ " + m.mode.String())
	switch m.mode {
	case ListSearch:
		title += dimStyle.Render(" for ") + valueStyle.Render(fmt.Sprintf("%q", m.query))
	case ListStarType:
		title += dimStyle.Render(" ") + valueStyle.Render(starTypePrefixes[m.typeIdx]+"-type")
	}
	title += dimStyle.Render(fmt.Sprintf("  %d of %d hosts", len(m.entries), m.gmap.Len()))

	if m.typing {
		title += "\n" + valueStyle.Render("search: "+m.query+"█")
	}
	return title
}

// renderMap plots every host top-down, with listed hosts highlighted.
func (m GalaxyModel) renderMap(w, h int) string {
	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}
	if m.gmap.Len() == 0 {
		return renderCells(grid)
	}

	cx, cy := w/2, h/2
	outer := 0.0
	for _, e := range m.gmap.Entries {
		outer = math.Max(outer, math.Hypot(e.Position.X, e.Position.Z))
	}
	if outer <= 0 {
		outer = 1
	}
	displayScale := float64(min(cx, cy*2)) * 0.95 / outer
	cfg := astro.ProjectionConfig{Scale: 1, Mode: astro.ScaleLinear}

	plot := func(e galaxy.Entry, c cell) {
		p := astro.ProjectTopDown(e.Position, cfg)
		x := cx + int(math.Round(p.X*displayScale))
		y := cy - int(math.Round(p.Y*displayScale*0.5))
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = c
		}
	}

	for _, e := range m.gmap.Entries {
		plot(e, cell{ch: '·', color: "238"})
	}
	for i, e := range m.entries {
		c := cell{ch: '✦', color: e.StarColor}
		if i == m.cursor {
			c = cell{ch: '◉', color: "229", bold: true}
		}
		plot(e, c)
	}
	grid[cy][cx] = cell{ch: '☉', color: "220", bold: true}

	return renderCells(grid)
}

func (m GalaxyModel) renderList() string {
	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	rowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	favStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))

	if len(m.entries) == 0 {
		if m.gmap.Len() == 0 {
			return dimStyle.Render("  catalog not loaded")
		}
		return dimStyle.Render("  no matching hosts")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-24s %7s  %-20s %9s", "HOST", "PLANETS", "STAR", "DIST (pc)")))
	b.WriteString("\n")

	for i, e := range m.entries {
		marker := "  "
		style := rowStyle
		if i == m.cursor {
			marker = "▶ "
			style = selStyle
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(e.StarColor)).Render("●")
		line := fmt.Sprintf("%-24s %7d  %-20s %9.1f",
			truncate(e.Hostname, 24), e.PlanetCount, truncate(e.StarType, 20), e.DistancePc)
		b.WriteString(marker + swatch + " " + style.Render(line))
		if m.isFavorite(e.Hostname) {
			b.WriteString(" " + favStyle.Render("★"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
