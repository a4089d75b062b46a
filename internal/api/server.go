// Package api serves systems, the galaxy map, favorites and live orbit
// streams over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/litescript/ls-orrery/internal/favorites"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/state"
)

// Config holds server settings.
type Config struct {
	Addr      string
	RateLimit float64 // requests per second per client; 0 disables
	Burst     int
	StreamFPS int // default frame rate of orbit streams
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:      "127.0.0.1:8420",
		RateLimit: 10,
		Burst:     20,
		StreamFPS: 30,
	}
}

// MaxStreamFPS caps the frame rate a client may request.
const MaxStreamFPS = 60

// Server is the HTTP API.
type Server struct {
	cfg       Config
	state     *state.Manager
	favorites *favorites.Favorites
	metrics   *metrics.Collector
	log       *logging.Logger
	limiter   *IPRateLimiter
	upgrader  websocket.Upgrader
}

// NewServer wires the API over shared state. A nil collector or logger is
// replaced with a private or discarding one.
func NewServer(cfg Config, st *state.Manager, favs *favorites.Favorites, m *metrics.Collector, log *logging.Logger) *Server {
	if m == nil {
		m = metrics.NewCollector()
	}
	if log == nil {
		log = logging.Discard()
	}
	if cfg.StreamFPS <= 0 {
		cfg.StreamFPS = DefaultConfig().StreamFPS
	}

	s := &Server{
		cfg:       cfg,
		state:     st,
		favorites: favs,
		metrics:   m,
		log:       log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = NewIPRateLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return s
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", s.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Use(s.instrument)

		r.Route("/api", func(api chi.Router) {
			api.Get("/home", s.handleHome)
			api.Get("/systems", s.handleSearch)
			api.Get("/systems/featured", s.handleFeatured)
			api.Get("/systems/random", s.handleRandom)
			api.Get("/systems/{host}", s.handleSystem)
			api.Get("/galaxy", s.handleGalaxy)
			api.Get("/favorites", s.handleListFavorites)
			api.Post("/favorites", s.handleReplaceFavorites)
			api.Post("/favorites/{host}/toggle", s.handleToggleFavorite)
		})

		r.Get("/ws/orbits/{host}", s.handleOrbitStream)
	})

	return r
}

// instrument records request counts and latency by route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.RecordRequest(route, status, time.Since(start))
		s.log.Debug("%s %s %d %s", r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond))
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("listening on %s", s.cfg.Addr)

	pruneTicker := time.NewTicker(time.Minute)
	defer pruneTicker.Stop()

	for {
		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("serve: %w", err)
		case <-pruneTicker.C:
			if s.limiter != nil {
				if n := s.limiter.Prune(10 * time.Minute); n > 0 {
					s.log.Debug("pruned %d idle rate limiters", n)
				}
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		}
	}
}
