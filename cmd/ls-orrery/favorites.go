package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List or toggle favorite systems",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listFavorites(cmd)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite systems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listFavorites(cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <host>",
		Short: "Add a host to favorites, or remove it if present",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host := strings.Join(args, " ")

			favs, err := a.openFavorites(cmd.Context())
			if err != nil {
				return err
			}
			defer favs.Close()

			hosts, err := favs.Toggle(cmd.Context(), host)
			if err != nil {
				return fmt.Errorf("toggle favorite: %w", err)
			}
			if slices.Contains(hosts, host) {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", host)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", host)
			}
			return nil
		},
	})

	return cmd
}

func (a *app) listFavorites(cmd *cobra.Command) error {
	favs, err := a.openFavorites(cmd.Context())
	if err != nil {
		return err
	}
	defer favs.Close()

	hosts, err := favs.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list favorites: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(hosts) == 0 {
		fmt.Fprintln(out, "No favorites")
		return nil
	}
	for _, h := range hosts {
		fmt.Fprintln(out, h)
	}
	return nil
}
