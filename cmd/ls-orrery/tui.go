package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/ui"
)

// runTUI starts the interactive orrery. The catalog loads in the
// background; the home system is usable immediately.
func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal; use 'ls-orrery synth' or 'ls-orrery galaxy' for text output")
	}

	// Log lines would tear the alt screen; send them to a file.
	if err := os.MkdirAll(config.DataDir(), 0o755); err == nil {
		logPath := filepath.Join(config.DataDir(), "ls-orrery.log")
		if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			defer f.Close()
			a.log.SetOutput(f)
		}
	}

	ctx := cmd.Context()
	st := a.newState()

	favs, err := a.openFavorites(ctx)
	if err != nil {
		a.log.Warn("favorites disabled: %v", err)
		favs = nil
	} else {
		defer favs.Close()
	}

	fetcher := a.newFetcher()
	watcher := a.startWatcher(fetcher)
	if watcher != nil {
		defer watcher.Stop()
	}

	model := ui.New(ui.Options{
		State:     st,
		Fetcher:   fetcher,
		Watcher:   watcher,
		Favorites: favs,
		Log:       a.log,
		FPS:       a.cfg.Sim.FPS,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
