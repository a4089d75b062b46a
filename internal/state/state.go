// Package state provides thread-safe state management for the application.
package state

import (
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/galaxy"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/system"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventCatalogLoaded   EventType = "CATALOG_LOADED"
	EventCatalogFailed   EventType = "CATALOG_FAILED"
	EventSystemLoaded    EventType = "SYSTEM_LOADED"
	EventSystemMissing   EventType = "SYSTEM_MISSING"
	EventFavoritesChange EventType = "FAVORITES_CHANGED"
)

// Event records a state change for the status log.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Host      string    `json:"host,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Catalog
	catalog       *catalog.Catalog
	galaxy        *galaxy.Map
	fetching      bool
	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration

	// Synthesized systems, keyed by lowercase host
	systems map[string]*system.Descriptor
	loaded  []string
	seed    string

	params    orbit.Params
	favorites []string

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents int
	Seed      string // non-empty makes synthesis reproducible per host
	Params    orbit.Params
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
		Params:    orbit.DefaultParams(),
	}
}

// NewManager creates a new state manager. The home system is always
// available, before any catalog has loaded.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	params := cfg.Params
	if params.Speed == 0 {
		params = orbit.DefaultParams()
	}

	home := system.SynthesizeHome()
	return &Manager{
		galaxy:    galaxy.Build(nil),
		systems:   map[string]*system.Descriptor{strings.ToLower(home.Name): home},
		loaded:    []string{home.Name},
		seed:      cfg.Seed,
		params:    params,
		favorites: []string{},
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// BeginFetch marks a catalog fetch as in flight. It returns false when
// one already is; the caller must then not start another.
func (m *Manager) BeginFetch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fetching {
		return false
	}
	m.fetching = true
	return true
}

// Fetching reports whether a catalog fetch is in flight.
func (m *Manager) Fetching() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fetching
}

// UpdateCatalog records the outcome of a fetch and ends it. A failed fetch
// keeps the previous catalog. A new catalog drops cached catalog systems.
func (m *Manager) UpdateCatalog(c *catalog.Catalog, fetchDuration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetching = false
	m.lastFetch = time.Now()
	m.lastError = err
	m.fetchDuration = fetchDuration

	if err != nil {
		m.addEvent(Event{Type: EventCatalogFailed, Timestamp: m.lastFetch, Detail: err.Error()})
		return
	}
	if c == nil {
		return
	}

	m.catalog = c
	m.galaxy = galaxy.FromCatalog(c)

	home := m.systems[strings.ToLower(system.HomeName)]
	m.systems = map[string]*system.Descriptor{strings.ToLower(home.Name): home}
	kept := m.loaded[:0]
	for _, h := range m.loaded {
		if strings.EqualFold(h, system.HomeName) || c.Has(h) {
			kept = append(kept, h)
		}
	}
	m.loaded = kept

	m.addEvent(Event{
		Type:      EventCatalogLoaded,
		Timestamp: m.lastFetch,
		Detail:    c.Source,
	})
}

// System returns the descriptor of host, synthesizing and caching it on
// first use. The home system name resolves without a catalog.
func (m *Manager) System(host string) (*system.Descriptor, error) {
	host = strings.TrimSpace(host)
	key := strings.ToLower(host)

	m.mu.RLock()
	d, ok := m.systems[key]
	m.mu.RUnlock()
	if ok {
		return d, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.systems[key]; ok {
		return d, nil
	}

	var opts []system.Option
	if m.seed != "" {
		opts = append(opts, system.WithSeed(m.seed+"/"+system.SystemID(host)))
	}
	d, err := system.Synthesize(host, m.catalog.Lookup(host), opts...)
	if err != nil {
		m.addEvent(Event{Type: EventSystemMissing, Timestamp: time.Now(), Host: host})
		return nil, err
	}

	m.systems[key] = d
	m.loaded = append(m.loaded, d.Name)
	m.addEvent(Event{Type: EventSystemLoaded, Timestamp: time.Now(), Host: d.Name})
	return d, nil
}

// Loaded returns the names of synthesized systems in load order, home
// first.
func (m *Manager) Loaded() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.loaded))
	copy(out, m.loaded)
	return out
}

// Cycle returns the loaded system offset by delta from current, wrapping.
func (m *Manager) Cycle(current string, delta int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.loaded)
	if n == 0 {
		return current
	}
	idx := 0
	for i, h := range m.loaded {
		if strings.EqualFold(h, current) {
			idx = i
			break
		}
	}
	return m.loaded[((idx+delta)%n+n)%n]
}

// Params returns the current simulation parameters.
func (m *Manager) Params() orbit.Params {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.params
}

// UpdateParams applies fn to the simulation parameters and returns the
// result.
func (m *Manager) UpdateParams(fn func(orbit.Params) orbit.Params) orbit.Params {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.params = fn(m.params)
	return m.params
}

// SetFavorites replaces the cached favorites list.
func (m *Manager) SetFavorites(hosts []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites = append([]string{}, hosts...)
	m.addEvent(Event{Type: EventFavoritesChange, Timestamp: time.Now()})
}

// IsFavorite reports whether host is in the cached favorites list.
func (m *Manager) IsFavorite(host string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, h := range m.favorites {
		if h == host {
			return true
		}
	}
	return false
}

// Galaxy returns the map built from the current catalog.
func (m *Manager) Galaxy() *galaxy.Map {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.galaxy
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Catalog       *catalog.Catalog
	Galaxy        *galaxy.Map
	Fetching      bool
	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	Loaded        []string
	Params        orbit.Params
	Favorites     []string
	Events        []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loaded := make([]string, len(m.loaded))
	copy(loaded, m.loaded)

	favs := make([]string, len(m.favorites))
	copy(favs, m.favorites)

	return Snapshot{
		Catalog:       m.catalog,
		Galaxy:        m.galaxy,
		Fetching:      m.fetching,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		Loaded:        loaded,
		Params:        m.params,
		Favorites:     favs,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// HasCatalog returns true once a catalog has loaded.
func (m *Manager) HasCatalog() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog != nil
}
