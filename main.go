package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/casedesk/internal/config"
	"github.com/sadopc/casedesk/internal/logger"
	"github.com/sadopc/casedesk/internal/store"
	"github.com/sadopc/casedesk/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closer, err := logger.Open(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	s := store.New(log)
	if cfg.Seed.Enabled() {
		store.Seed(s)
	}

	app := tui.NewApp(s, *cfg, log)
	defer app.Close()

	log.Info("starting", "export_dir", cfg.Export.Dir, "seeded", cfg.Seed.Enabled())
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	log.Info("stopped")
	return nil
}
