// Package app assembles the providers, scorer and analyzer from configuration.
package app

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/config"
	"github.com/zappabad/stockmood/internal/logging"
	"github.com/zappabad/stockmood/internal/market/yahoo"
	"github.com/zappabad/stockmood/internal/news/newsapi"
	"github.com/zappabad/stockmood/internal/sentiment"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

// App owns the long-lived clients. They are built once and hold no
// per-request state.
type App struct {
	Prices   *yahoo.Client
	News     *newsapi.Client
	Scorer   *sentiment.VADER
	Analyzer *service.Analyzer
	Logger   arbor.ILogger
}

// New builds an App from a validated configuration.
func New(cfg *config.Config, logger arbor.ILogger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	httpClient := &http.Client{}

	prices := yahoo.NewClient(
		yahoo.WithBaseURL(cfg.Market.BaseURL),
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithLogger(logger),
	)

	headlines, err := newsapi.NewClient(cfg.News.APIKey,
		newsapi.WithBaseURL(cfg.News.BaseURL),
		newsapi.WithHTTPClient(httpClient),
		newsapi.WithLogger(logger),
		newsapi.WithPageSize(cfg.News.PageSize),
		newsapi.WithLanguage(cfg.News.Language),
	)
	if err != nil {
		return nil, fmt.Errorf("create news client: %w", err)
	}

	scorer := sentiment.NewVADER()

	analyzer := service.NewAnalyzer(prices, headlines, scorer, logger, service.Config{
		DefaultPeriod: cfg.Period(),
		Timeout:       cfg.RequestTimeout(),
	})

	logger.Debug().
		Str("market_base_url", cfg.Market.BaseURL).
		Str("news_base_url", cfg.News.BaseURL).
		Str("period", cfg.Market.Period).
		Msg("Application assembled")

	return &App{
		Prices:   prices,
		News:     headlines,
		Scorer:   scorer,
		Analyzer: analyzer,
		Logger:   logger,
	}, nil
}
