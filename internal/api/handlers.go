package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/litescript/ls-orrery/internal/galaxy"
	"github.com/litescript/ls-orrery/internal/system"
)

// DefaultRandomCount is the number of hosts /api/systems/random returns
// without n.
const DefaultRandomCount = 5

// maxRandomCount bounds n.
const maxRandomCount = 50

// entryList is the envelope of host listings.
type entryList struct {
	Count   int            `json:"count"`
	Entries []galaxy.Entry `json:"entries"`
}

func newEntryList(entries []galaxy.Entry) entryList {
	if entries == nil {
		entries = []galaxy.Entry{}
	}
	return entryList{Count: len(entries), Entries: entries}
}

// galaxyResponse describes the galaxy map.
type galaxyResponse struct {
	Home       galaxy.Entry   `json:"home"`
	Loaded     bool           `json:"catalog_loaded"`
	Source     string         `json:"source,omitempty"`
	Count      int            `json:"count"`
	Entries    []galaxy.Entry `json:"entries"`
	FetchError string         `json:"fetch_error,omitempty"`
}

// favoritesRequest replaces the favorites list.
type favoritesRequest struct {
	Hosts []string `json:"hosts"`
}

// favoritesResponse lists favorites with their map entries.
type favoritesResponse struct {
	Hosts   []string       `json:"hosts"`
	Entries []galaxy.Entry `json:"entries"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// hostParam returns the decoded {host} path segment.
func hostParam(r *http.Request) string {
	raw := chi.URLParam(r, "host")
	if h, err := url.PathUnescape(raw); err == nil {
		raw = h
	}
	return strings.TrimSpace(raw)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	d, err := s.state.System(system.HomeName)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, system.ExportSystem(d, time.Now().UTC()))
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	host := hostParam(r)
	if host == "" {
		writeError(w, http.StatusBadRequest, "missing host")
		return
	}

	d, err := s.state.System(host)
	s.metrics.RecordSystem(err)
	if errors.Is(err, system.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, system.ExportSystem(d, time.Now().UTC()))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	starType := strings.TrimSpace(r.URL.Query().Get("type"))

	m := s.state.Galaxy()
	var entries []galaxy.Entry
	switch {
	case starType != "":
		entries = m.ByStarType(starType)
	case q != "":
		entries = m.Search(q)
	default:
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	writeJSON(w, http.StatusOK, newEntryList(s.markFavorites(entries)))
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newEntryList(s.markFavorites(s.state.Galaxy().Featured())))
}

func (s *Server) handleRandom(w http.ResponseWriter, r *http.Request) {
	n := DefaultRandomCount
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = min(v, maxRandomCount)
	}
	writeJSON(w, http.StatusOK, newEntryList(s.markFavorites(s.state.Galaxy().Random(n, nil))))
}

func (s *Server) handleGalaxy(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()

	resp := galaxyResponse{
		Home:    galaxy.HomeEntry(),
		Loaded:  snap.Catalog != nil,
		Entries: []galaxy.Entry{},
	}
	if snap.Catalog != nil {
		resp.Source = snap.Catalog.Source
	}
	if snap.LastError != nil {
		resp.FetchError = snap.LastError.Error()
	}
	if snap.Galaxy != nil {
		resp.Entries = s.markFavorites(snap.Galaxy.Entries)
	}
	resp.Count = len(resp.Entries)

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites are not configured")
		return
	}
	hosts, err := s.favorites.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.state.SetFavorites(hosts)
	s.writeFavorites(w, hosts)
}

func (s *Server) handleReplaceFavorites(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites are not configured")
		return
	}

	var req favoritesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	hosts := dedupe(req.Hosts)
	if err := s.favorites.Replace(r.Context(), hosts); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.state.SetFavorites(hosts)
	s.writeFavorites(w, hosts)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		writeError(w, http.StatusServiceUnavailable, "favorites are not configured")
		return
	}
	host := hostParam(r)
	if host == "" {
		writeError(w, http.StatusBadRequest, "missing host")
		return
	}

	hosts, err := s.favorites.Toggle(r.Context(), host)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.state.SetFavorites(hosts)
	s.log.Info("favorites toggled %q", host)
	s.writeFavorites(w, hosts)
}

func (s *Server) writeFavorites(w http.ResponseWriter, hosts []string) {
	entries := s.state.Galaxy().Favorites(hosts)
	if entries == nil {
		entries = []galaxy.Entry{}
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Hosts: hosts, Entries: entries})
}

// markFavorites flags entries that are favorites. The input is not
// modified.
func (s *Server) markFavorites(entries []galaxy.Entry) []galaxy.Entry {
	out := make([]galaxy.Entry, len(entries))
	for i, e := range entries {
		e.Favorite = s.state.IsFavorite(e.Hostname)
		out[i] = e
	}
	return out
}

func dedupe(hosts []string) []string {
	seen := make(map[string]bool, len(hosts))
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, h)
	}
	return out
}
