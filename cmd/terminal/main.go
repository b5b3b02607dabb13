package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/stockmood/internal/app"
	"github.com/zappabad/stockmood/internal/config"
	"github.com/zappabad/stockmood/internal/logging"
	"github.com/zappabad/stockmood/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Console output would draw over the dashboard
	logCfg := cfg.Logging
	logCfg.Output = []string{"file"}
	logger := logging.New(logCfg)

	a, err := app.New(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	model := tui.NewModel(ctx, a.Analyzer, tui.Options{
		Ticker: cfg.Defaults.Ticker,
		Query:  cfg.Defaults.Query,
		Period: cfg.Period(),
	})

	logger.Info().Str("version", app.Version).Msg("Terminal dashboard starting")

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
