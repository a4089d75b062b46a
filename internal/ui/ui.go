// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/favorites"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/system"
	"github.com/litescript/ls-orrery/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewOrrery ViewMode = iota
	ViewGalaxy
)

// DefaultFPS is the frame rate used when Options.FPS is unset.
const DefaultFPS = 30

// maxFrameDelta caps the time advanced by one frame after a stall.
const maxFrameDelta = 0.25

// Msg types for Bubble Tea
type (
	// FrameMsg advances the orbital clock.
	FrameMsg time.Time

	// CatalogLoadedMsg carries the result of a background catalog fetch.
	CatalogLoadedMsg struct {
		Result catalog.FetchResult
	}

	// CatalogReloadMsg signals the watched catalog file changed.
	CatalogReloadMsg struct {
		Reload catalog.Reload
	}

	// FavoritesMsg carries the persisted favorites after a load or toggle.
	FavoritesMsg struct {
		Hosts []string
		Err   error
	}
)

// Options are the dependencies of the root model. Everything but State is
// optional.
type Options struct {
	State     *state.Manager
	Fetcher   *catalog.Fetcher
	Watcher   *catalog.Watcher
	Favorites *favorites.Favorites
	Metrics   *metrics.Collector
	Log       *logging.Logger
	Rand      *rand.Rand // starting orbit angles
	FPS       int
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state     *state.Manager
	fetcher   *catalog.Fetcher
	watcher   *catalog.Watcher
	favorites *favorites.Favorites
	metrics   *metrics.Collector
	log       *logging.Logger
	rng       *rand.Rand
	fps       int

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int
	lastFrame time.Time

	// Sub-models
	orrery OrreryModel
	galaxy GalaxyModel

	snapshot state.Snapshot
}

// New creates a new root UI model showing the home system.
func New(opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}

	m := Model{
		state:     opts.State,
		fetcher:   opts.Fetcher,
		watcher:   opts.Watcher,
		favorites: opts.Favorites,
		metrics:   opts.Metrics,
		log:       opts.Log.Named("ui"),
		rng:       opts.Rand,
		fps:       opts.FPS,
		viewMode:  ViewOrrery,
		orrery:    NewOrreryModel(),
		galaxy:    NewGalaxyModel(),
	}

	home, _ := m.state.System(system.HomeName)
	m.orrery = m.orrery.SetSystem(home, m.state.Params(), m.rng)
	m.galaxy = m.galaxy.SetMap(m.state.Galaxy())
	m.snapshot = m.state.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.fps)}
	if m.fetcher != nil && m.state.BeginFetch() {
		cmds = append(cmds, loadCatalogCmd(m.fetcher))
	}
	if m.favorites != nil {
		cmds = append(cmds, loadFavoritesCmd(m.favorites))
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.viewMode == ViewGalaxy && m.galaxy.Typing() {
			cmds = append(cmds, m.updateActiveView(msg))
			break
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "g":
			if m.viewMode == ViewGalaxy {
				m.viewMode = ViewOrrery
			} else {
				m.viewMode = ViewGalaxy
			}
		case "esc":
			if m.viewMode == ViewGalaxy {
				m.viewMode = ViewOrrery
			} else {
				cmds = append(cmds, m.updateActiveView(msg))
			}

		// Time controls apply in every view.
		case " ":
			m.updateParams(orbit.Params.TogglePause)
		case "<":
			m.updateParams(func(p orbit.Params) orbit.Params { return p.WithDirection(orbit.Reverse) })
		case ">":
			m.updateParams(func(p orbit.Params) orbit.Params { return p.WithDirection(orbit.Forward) })
		case ",":
			m.updateParams(orbit.Params.StepBackward)
		case ".":
			m.updateParams(orbit.Params.StepForward)
		case "+", "=":
			m.updateParams(orbit.Params.Faster)
		case "-":
			m.updateParams(orbit.Params.Slower)
		case "d":
			m.updateParams(orbit.Params.ToggleDistances)

		case "tab":
			m.openSystem(m.state.Cycle(m.orrery.System().Name, 1))
		case "shift+tab":
			m.openSystem(m.state.Cycle(m.orrery.System().Name, -1))

		case "R":
			if m.fetcher != nil && m.state.BeginFetch() {
				m.statusMsg = "Fetching catalog..."
				m.snapshot = m.state.Snapshot()
				cmds = append(cmds, loadCatalogCmd(m.fetcher))
			}

		case "f":
			if m.viewMode == ViewOrrery {
				cmds = append(cmds, m.toggleFavorite(m.orrery.System().Name))
			} else {
				cmds = append(cmds, m.updateActiveView(msg))
			}

		default:
			// Pass to active view
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~11 lines, tabs 1, footer ~2
		contentHeight := msg.Height - 14
		m.orrery = m.orrery.SetSize(msg.Width, contentHeight)
		m.galaxy = m.galaxy.SetSize(msg.Width, contentHeight)

	case FrameMsg:
		cmds = append(cmds, frameCmd(m.fps))
		now := time.Time(msg)
		dt := 0.0
		if !m.lastFrame.IsZero() {
			dt = min(now.Sub(m.lastFrame).Seconds(), maxFrameDelta)
		}
		m.lastFrame = now
		m.animTick++
		m.orrery = m.orrery.Tick(dt, m.state.Params())
		m.snapshot = m.state.Snapshot()

	case CatalogLoadedMsg:
		res := msg.Result
		m.state.UpdateCatalog(res.Catalog, res.Duration, res.Error)
		if m.metrics != nil {
			m.metrics.RecordFetch(res.Duration, res.Catalog.Len(), len(res.Catalog.Hosts()), res.Error)
		}
		if res.Error != nil {
			m.log.Warn("catalog fetch failed: %v", res.Error)
			m.statusMsg = ""
		} else {
			m.log.Info("catalog loaded: %d rows, %d hosts in %s",
				res.Catalog.Len(), len(res.Catalog.Hosts()), res.Duration.Round(time.Millisecond))
			m.statusMsg = fmt.Sprintf("Catalog loaded: %d hosts", len(res.Catalog.Hosts()))
		}
		m.galaxy = m.galaxy.SetMap(m.state.Galaxy())
		m.snapshot = m.state.Snapshot()

	case CatalogReloadMsg:
		if m.watcher != nil {
			cmds = append(cmds, waitForReload(m.watcher))
		}
		r := msg.Reload
		m.state.UpdateCatalog(r.Catalog, 0, r.Err)
		if r.Err != nil {
			m.log.Warn("catalog reload failed: %v", r.Err)
		} else {
			m.statusMsg = fmt.Sprintf("Catalog reloaded: %d hosts", len(r.Catalog.Hosts()))
		}
		m.galaxy = m.galaxy.SetMap(m.state.Galaxy())
		m.snapshot = m.state.Snapshot()

	case FavoritesMsg:
		if msg.Err != nil {
			m.log.Warn("favorites: %v", msg.Err)
			m.statusMsg = "Favorites unavailable: " + msg.Err.Error()
			break
		}
		m.state.SetFavorites(msg.Hosts)
		m.galaxy = m.galaxy.SetFavorites(msg.Hosts)
		m.orrery = m.orrery.SetFavorite(m.state.IsFavorite(m.orrery.System().Name))

	case OpenSystemMsg:
		m.openSystem(msg.Host)

	case ToggleFavoriteMsg:
		cmds = append(cmds, m.toggleFavorite(msg.Host))

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewOrrery:
		m.orrery, cmd = m.orrery.Update(msg)
	case ViewGalaxy:
		m.galaxy, cmd = m.galaxy.Update(msg)
	}
	return cmd
}

func (m *Model) updateParams(fn func(orbit.Params) orbit.Params) {
	m.state.UpdateParams(fn)
}

// openSystem switches the orrery to host, synthesizing it on first use.
func (m *Model) openSystem(host string) {
	d, err := m.state.System(host)
	if m.metrics != nil {
		m.metrics.RecordSystem(err)
	}
	if err != nil {
		if errors.Is(err, system.ErrNotFound) {
			m.statusMsg = fmt.Sprintf("System not found: %s", host)
		} else {
			m.statusMsg = err.Error()
		}
		return
	}

	m.orrery = m.orrery.SetSystem(d, m.state.Params(), m.rng)
	m.orrery = m.orrery.SetFavorite(m.state.IsFavorite(d.Name))
	m.viewMode = ViewOrrery
	m.statusMsg = ""
}

func (m *Model) toggleFavorite(host string) tea.Cmd {
	if m.favorites == nil {
		m.statusMsg = "Favorites are not configured"
		return nil
	}
	return toggleFavoriteCmd(m.favorites, host)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewOrrery:
		content = m.orrery.View()
	case ViewGalaxy:
		content = m.galaxy.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗       ██████╗ ██████╗ ██████╗ ███████╗██████╗ ██╗   ██╗`,
		`  ██║     ██╔════╝      ██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗╚██╗ ██╔╝`,
		`  ██║     ███████╗█████╗██║   ██║██████╔╝██████╔╝█████╗  ██████╔╝ ╚████╔╝`,
		`  ██║     ╚════██║╚════╝██║   ██║██╔══██╗██╔══██╗██╔══╝  ██╔══██╗  ╚██╔╝`,
		`  ███████╗███████║      ╚██████╔╝██║  ██║██║  ██║███████╗██║  ██║   ██║`,
		`  ╚══════╝╚══════╝       ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝   ╚═╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Exoplanet Orrery · NASA Exoplanet Archive"))
	b.WriteString("\n")

	copyright := fmt.Sprintf("  (c) 2025 litescript.net | v%s", version.Version)
	b.WriteString(muted.Render(copyright))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep blue through violet to a warm star white.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Blue (#2563EB) -> Violet (#7C3AED) -> Amber (#F59E0B)
	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 37 + t*(124-37)
		g = 99 + t*(58-99)
		b = 235 + t*(237-235)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 124 + t*(245-124)
		g = 58 + t*(158-58)
		b = 237 + t*(11-237)
	}

	// Vertical fade: brighter at top
	f := 1.0 - (yRatio * 0.45)
	clamp := func(v float64) int {
		return max(0, min(255, int(v*f)))
	}

	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func (m Model) renderTabs() string {
	tabs := []string{"[o] Orrery", "[g] Galaxy"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}

	loaded := m.snapshot.Loaded
	if len(loaded) > 1 {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("  %d systems loaded (tab to cycle)", len(loaded))))
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[(m.animTick/3)%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.Fetching:
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Fetching exoplanet catalog...")
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("Catalog unavailable: "+m.snapshot.LastError.Error()) +
			dimStyle.Render(" (R: retry)")
	case m.snapshot.Catalog != nil:
		status = dimStyle.Render(fmt.Sprintf("%d hosts", m.snapshot.Galaxy.Len()))
		if m.snapshot.FetchDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.FetchDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = dimStyle.Render("home system only")
	}

	var help string
	switch m.viewMode {
	case ViewGalaxy:
		help = dimStyle.Render("j/k: select | enter: open | /: search | e/v/r/t: featured/favs/random/type | f: fav | m: map")
	default:
		help = dimStyle.Render("space: pause | </>: direction | ,/.: step | +/-: speed | d: distances | j/k: focus | [/]: zoom | f: fav | g: galaxy")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}

	return footer
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := (m.animTick / 2) % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		case dist <= 5:
			r8, g8, b8 = 110, 90, 150
		default:
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}

func frameCmd(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}

func loadCatalogCmd(f *catalog.Fetcher) tea.Cmd {
	return func() tea.Msg {
		return CatalogLoadedMsg{Result: f.Fetch(context.Background())}
	}
}

// waitForReload blocks on the next watcher reload. It returns nil once the
// watcher is stopped.
func waitForReload(w *catalog.Watcher) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-w.Reloads
		if !ok {
			return nil
		}
		return CatalogReloadMsg{Reload: r}
	}
}

func loadFavoritesCmd(f *favorites.Favorites) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hosts, err := f.List(ctx)
		return FavoritesMsg{Hosts: hosts, Err: err}
	}
}

func toggleFavoriteCmd(f *favorites.Favorites, host string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hosts, err := f.Toggle(ctx, host)
		return FavoritesMsg{Hosts: hosts, Err: err}
	}
}
