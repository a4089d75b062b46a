package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/favorites"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/version"
)

// app carries the resolved configuration shared by every command.
type app struct {
	v   *viper.Viper
	cfg config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logging.Discard()}

	root := &cobra.Command{
		Use:   "ls-orrery",
		Short: "Terminal orrery for the Solar System and known exoplanet systems",
		Long: `ls-orrery synthesizes planetary systems from the NASA Exoplanet Archive
and animates them in the terminal. Run without a command to start the
interactive orrery.`,
		Version:           version.String(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runTUI,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .ls-orrery.toml in . or $HOME)")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("catalog", "", "catalog URL or file path")
	pf.String("seed", "", "seed for reproducible moons and rings")
	pf.Bool("watch", false, "reload a local catalog file when it changes")
	_ = a.v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("catalog.source", pf.Lookup("catalog"))
	_ = a.v.BindPFlag("catalog.watch", pf.Lookup("watch"))
	_ = a.v.BindPFlag("sim.seed", pf.Lookup("seed"))

	f := root.Flags()
	f.Float64("speed", 1, "initial speed multiplier")
	f.Bool("real", false, "start with real distances")
	f.Int("fps", 30, "frame rate")
	_ = a.v.BindPFlag("sim.speed", f.Lookup("speed"))
	_ = a.v.BindPFlag("sim.real_distances", f.Lookup("real"))
	_ = a.v.BindPFlag("sim.fps", f.Lookup("fps"))

	root.AddCommand(
		newSynthCmd(a),
		newGalaxyCmd(a),
		newFavoritesCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup reads the config file, environment and flags into a.cfg.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	config.Setup(a.v, cfgFile)
	if err := config.ReadFile(a.v); err != nil {
		return err
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.log.SetOutput(cmd.ErrOrStderr())
	if used := a.v.ConfigFileUsed(); used != "" {
		a.log.Debug("using config %s", used)
	}
	return nil
}

func (a *app) newState() *state.Manager {
	params := orbit.DefaultParams().
		WithSpeed(a.cfg.Sim.Speed).
		WithRealDistances(a.cfg.Sim.RealDistances)
	return state.NewManager(state.Config{
		Seed:   a.cfg.Sim.Seed,
		Params: params,
	})
}

func (a *app) newFetcher() *catalog.Fetcher {
	return catalog.NewFetcher(
		catalog.WithSource(a.cfg.Catalog.Source),
		catalog.WithTimeout(a.cfg.Catalog.Timeout),
	)
}

// fetchCatalog loads the catalog synchronously for one-shot commands.
func (a *app) fetchCatalog(ctx context.Context) (*catalog.Catalog, error) {
	f := a.newFetcher()
	a.log.Debug("fetching catalog from %s", f.Source())

	res := f.Fetch(ctx)
	if res.Error != nil {
		return nil, res.Error
	}
	c := res.Catalog
	a.log.Info("catalog: %d rows, %d hosts in %s (%d malformed, %d unnamed)",
		c.Len(), len(c.Hosts()), res.Duration.Round(time.Millisecond),
		len(c.Report.Malformed), c.Report.Unnamed)
	return c, nil
}

// loadCatalog runs one background fetch into st, unless one is already in
// flight.
func (a *app) loadCatalog(ctx context.Context, f *catalog.Fetcher, st *state.Manager, m *metrics.Collector) {
	if !st.BeginFetch() {
		return
	}
	res := f.Fetch(ctx)
	st.UpdateCatalog(res.Catalog, res.Duration, res.Error)
	if m != nil {
		m.RecordFetch(res.Duration, res.Catalog.Len(), len(res.Catalog.Hosts()), res.Error)
	}
	if res.Error != nil {
		a.log.Warn("catalog fetch failed: %v", res.Error)
		return
	}
	a.log.Info("catalog: %d hosts in %s", len(res.Catalog.Hosts()), res.Duration.Round(time.Millisecond))
}

// startWatcher watches a local catalog when enabled. It returns nil when
// watching is off or the source is remote.
func (a *app) startWatcher(f *catalog.Fetcher) *catalog.Watcher {
	if !a.cfg.Catalog.Watch {
		return nil
	}
	path, ok := f.LocalPath()
	if !ok {
		a.log.Warn("catalog watch ignored for remote source %s", f.Source())
		return nil
	}
	w, err := catalog.NewWatcher(path)
	if err != nil {
		a.log.Warn("catalog watch: %v", err)
		return nil
	}
	if err := w.Start(); err != nil {
		a.log.Warn("catalog watch: %v", err)
		w.Stop()
		return nil
	}
	a.log.Info("watching %s", w.Path)
	return w
}

// openFavorites opens the configured favorites backend.
func (a *app) openFavorites(ctx context.Context) (*favorites.Favorites, error) {
	fc := a.cfg.Favorites
	path := fc.Path

	var store favorites.Store
	switch fc.Backend {
	case "sqlite":
		if filepath.Ext(path) == ".json" {
			path = strings.TrimSuffix(path, ".json") + ".db"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create favorites dir: %w", err)
		}
		s, err := favorites.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		store = s
	default:
		store = favorites.NewFileStore(path)
	}

	a.log.Debug("favorites: %s backend at %s", fc.Backend, path)
	return favorites.New(store, a.log.Named("favorites")), nil
}
