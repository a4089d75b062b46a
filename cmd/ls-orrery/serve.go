package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/api"
	"github.com/litescript/ls-orrery/internal/metrics"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and orbit streams",
		Long: `Serve systems, the galaxy map and favorites as JSON, live orbital
positions over websockets at /ws/orbits/{host}, and Prometheus metrics at
/metrics. The catalog loads in the background.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st := a.newState()
			m := metrics.NewCollector()

			favs, err := a.openFavorites(ctx)
			if err != nil {
				a.log.Warn("favorites disabled: %v", err)
				favs = nil
			} else {
				defer favs.Close()
			}

			fetcher := a.newFetcher()
			go a.loadCatalog(ctx, fetcher, st, m)

			if w := a.startWatcher(fetcher); w != nil {
				defer w.Stop()
				go func() {
					for r := range w.Reloads {
						st.UpdateCatalog(r.Catalog, 0, r.Err)
						if r.Err != nil {
							a.log.Warn("catalog reload failed: %v", r.Err)
							continue
						}
						m.RecordFetch(0, r.Catalog.Len(), len(r.Catalog.Hosts()), nil)
					}
				}()
			}

			srv := api.NewServer(api.Config{
				Addr:      a.cfg.Server.Addr,
				RateLimit: a.cfg.Server.RateLimit,
				Burst:     a.cfg.Server.Burst,
				StreamFPS: a.cfg.Server.StreamFPS,
			}, st, favs, m, a.log.Named("api"))

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", a.cfg.Server.Addr)
			return srv.ListenAndServe(ctx)
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "listen address (default 127.0.0.1:8420)")
	f.Float64("rate-limit", 0, "requests per second per client (default 10)")
	f.Int("burst", 0, "rate limit burst (default 20)")
	_ = a.v.BindPFlag("server.addr", f.Lookup("addr"))
	_ = a.v.BindPFlag("server.rate_limit", f.Lookup("rate-limit"))
	_ = a.v.BindPFlag("server.burst", f.Lookup("burst"))
	return cmd
}
