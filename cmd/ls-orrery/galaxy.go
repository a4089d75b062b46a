package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-orrery/internal/galaxy"
)

func newGalaxyCmd(a *app) *cobra.Command {
	var (
		search   string
		featured bool
		random   int
		starType string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "galaxy",
		Short: "List catalog hosts",
		Long: `List the hosts of the exoplanet catalog. Without a filter every host is
listed; --search, --featured, --type and --random narrow the list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if random < 0 {
				return errors.New("--random must be positive")
			}

			c, err := a.fetchCatalog(cmd.Context())
			if err != nil {
				return err
			}
			m := galaxy.FromCatalog(c)

			var entries []galaxy.Entry
			switch {
			case search != "":
				entries = m.Search(search)
			case featured:
				entries = m.Featured()
			case starType != "":
				entries = m.ByStarType(strings.ToUpper(starType))
			case random > 0:
				entries = m.Random(random, nil)
			default:
				entries = m.Entries
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if entries == nil {
					entries = []galaxy.Entry{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			writeEntries(out, entries)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&search, "search", "", "hosts whose name contains term")
	f.BoolVar(&featured, "featured", false, "curated notable systems")
	f.IntVar(&random, "random", 0, "n hosts picked at random")
	f.StringVar(&starType, "type", "", "hosts by star type (M, K, G, F, A, O/B)")
	f.BoolVar(&asJSON, "json", false, "print entries as JSON")
	cmd.MarkFlagsMutuallyExclusive("search", "featured", "random", "type")
	return cmd
}

func writeEntries(w io.Writer, entries []galaxy.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No matching hosts")
		return
	}

	fmt.Fprintf(w, "%-28s %7s  %-20s %10s %6s\n", "Host", "Planets", "Star", "Dist(pc)", "Year")
	fmt.Fprintln(w, strings.Repeat("─", 76))
	for _, e := range entries {
		year := "-"
		if e.DiscoveryYear > 0 {
			year = fmt.Sprintf("%d", e.DiscoveryYear)
		}
		fmt.Fprintf(w, "%-28s %7d  %-20s %10.1f %6s\n",
			e.Hostname, e.PlanetCount, e.StarType, e.DistancePc, year)
	}
	fmt.Fprintf(w, "\n%d hosts\n", len(entries))
}
