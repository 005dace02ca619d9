package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tellerdesk/internal/api"
	"tellerdesk/internal/config"
	"tellerdesk/internal/logging"
	"tellerdesk/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(logging.Config{Path: cfg.Log.Path, Level: cfg.Log.Level})
	defer func() { _ = logger.Sync() }()

	client := api.NewLedgerClient(api.Config{
		BaseURL:          cfg.API.BaseURL,
		Timeout:          cfg.API.Timeout,
		BreakerThreshold: cfg.API.BreakerThreshold,
	}, logger)

	logger.Info("starting",
		zap.String("backend", cfg.API.BaseURL),
		zap.String("export_dir", cfg.Export.Dir),
	)

	m := tui.New(client, cfg.Export.Dir, tui.Options{
		DefaultAccount:   cfg.UI.DefaultAccount,
		DefaultStartDate: cfg.UI.DefaultStartDate,
		DefaultEndDate:   cfg.UI.DefaultEndDate,
	}, logger)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}
