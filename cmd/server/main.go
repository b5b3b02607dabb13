package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ternarybob/banner"

	"github.com/zappabad/stockmood/internal/api"
	"github.com/zappabad/stockmood/internal/app"
	"github.com/zappabad/stockmood/internal/config"
	"github.com/zappabad/stockmood/internal/logging"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to TOML config file")
	host := flag.String("host", "", "Server host (overrides config)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	b := banner.New().SetStyle(banner.StyleRound).SetWidth(60)
	b.PrintTopLine()
	b.PrintCenteredText("stockmood")
	b.PrintSeparatorLine()
	b.PrintKeyValue("Version", app.Version, 10)
	b.PrintKeyValue("Address", cfg.Addr(), 10)
	b.PrintKeyValue("Period", string(cfg.Period()), 10)
	b.PrintBottomLine()

	logCfg := cfg.Logging
	if _, console := logging.Outputs(logCfg); !console {
		logCfg.Output = append(append([]string{}, logCfg.Output...), "console")
	}
	logger := logging.New(logCfg)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to start")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	svc := api.NewService(a.Analyzer, logger, api.Config{})
	if err := svc.ListenAndServe(ctx, cfg.Addr()); err != nil {
		logger.Error().Err(err).Msg("Server stopped")
		os.Exit(1)
	}
	logger.Info().Msg("Server shut down")
}
