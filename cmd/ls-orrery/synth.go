package main

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/system"
)

func newSynthCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "synth <host>",
		Short: "Synthesize one system and print it",
		Long: `Synthesize the planetary system of a catalog host and print a summary
table, or the full descriptor with --json. "Solar System" needs no catalog.`,
		Example: `  ls-orrery synth TRAPPIST-1
  ls-orrery synth "Kepler-11" --json --seed demo`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.synthesize(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return system.ExportSystem(d, time.Now().UTC()).WriteJSON(out)
			}
			system.WriteSummaryTable(out, d)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full descriptor as JSON")
	return cmd
}

// synthesize resolves host through the session state so seeding matches
// the TUI and the API. The catalog is only fetched for non-home hosts.
func (a *app) synthesize(ctx context.Context, host string) (*system.Descriptor, error) {
	st := a.newState()
	if strings.EqualFold(strings.TrimSpace(host), system.HomeName) {
		return st.System(host)
	}

	c, err := a.fetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	st.UpdateCatalog(c, 0, nil)
	return st.System(host)
}
