// Package service runs one price-versus-sentiment analysis end to end.
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/logging"
	"github.com/zappabad/stockmood/internal/market"
	"github.com/zappabad/stockmood/internal/news"
	"github.com/zappabad/stockmood/internal/sentiment"
)

// Request is one user-triggered analysis.
type Request struct {
	Ticker string
	Query  string
	Period market.LookbackPeriod
}

// Result is everything the presentation layers render for a request.
type Result struct {
	ID          string                    `json:"id"`
	Ticker      string                    `json:"ticker"`
	Query       string                    `json:"query"`
	Period      market.LookbackPeriod     `json:"period"`
	Headlines   []news.ScoredHeadline     `json:"headlines"`
	Daily       []analysis.DailySentiment `json:"daily"`
	Merged      []analysis.MergedRecord   `json:"merged"`
	Latest      float64                   `json:"latest_sentiment"`
	Signal      analysis.Signal           `json:"signal"`
	GeneratedAt time.Time                 `json:"generated_at"`
}

// Analyzer wires the providers, the scorer and the merge pipeline.
type Analyzer struct {
	cfg       Config
	prices    market.PriceFetcher
	headlines news.HeadlineFetcher
	scorer    sentiment.Scorer
	logger    arbor.ILogger
	now       func() time.Time
}

// NewAnalyzer creates an Analyzer. A nil logger discards output.
func NewAnalyzer(prices market.PriceFetcher, headlines news.HeadlineFetcher, scorer sentiment.Scorer, logger arbor.ILogger, cfg Config) *Analyzer {
	if !cfg.DefaultPeriod.Valid() {
		cfg.DefaultPeriod = DefaultConfig().DefaultPeriod
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Analyzer{
		cfg:       cfg,
		prices:    prices,
		headlines: headlines,
		scorer:    scorer,
		logger:    logger,
		now:       time.Now,
	}
}

// Normalize trims and upper-cases the ticker, trims the query and fills in
// the default period. It returns an ErrInvalidRequest error when a field is
// unusable.
func (a *Analyzer) Normalize(req Request) (Request, error) {
	req.Ticker = strings.ToUpper(strings.TrimSpace(req.Ticker))
	req.Query = strings.TrimSpace(req.Query)
	if req.Period == "" {
		req.Period = a.cfg.DefaultPeriod
	}

	switch {
	case req.Ticker == "":
		return req, fmt.Errorf("%w: ticker is required", ErrInvalidRequest)
	case strings.ContainsAny(req.Ticker, " \t/?#"):
		return req, fmt.Errorf("%w: ticker %q is malformed", ErrInvalidRequest, req.Ticker)
	case req.Query == "":
		return req, fmt.Errorf("%w: search term is required", ErrInvalidRequest)
	case !req.Period.Valid():
		return req, fmt.Errorf("%w: unsupported period %q", ErrInvalidRequest, req.Period)
	}
	return req, nil
}

// Run fetches prices then headlines, scores and merges them, and classifies
// the most recent price date. Empty provider results end the run with ErrNoPriceData or
// ErrNoHeadlines. A panic inside the run is returned as ErrUnexpected.
func (a *Analyzer) Run(ctx context.Context, req Request) (res *Result, err error) {
	runID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().
				Str("run_id", runID).
				Str("panic", fmt.Sprint(r)).
				Msg("Analysis panicked")
			res = nil
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	req, err = a.Normalize(req)
	if err != nil {
		return nil, err
	}

	if a.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
		defer cancel()
	}

	a.logger.Info().
		Str("run_id", runID).
		Str("ticker", req.Ticker).
		Str("query", req.Query).
		Str("period", string(req.Period)).
		Msg("Analysis started")

	prices, err := a.prices.FetchPrices(ctx, req.Ticker, req.Period)
	if err != nil {
		a.logger.Warn().Str("run_id", runID).Err(err).Msg("Price fetch failed")
		return nil, &ProviderError{Provider: "price provider", Err: err}
	}
	if len(prices) == 0 {
		a.logger.Warn().Str("run_id", runID).Str("ticker", req.Ticker).Msg("No price data")
		return nil, fmt.Errorf("%w for %s", ErrNoPriceData, req.Ticker)
	}

	headlines, err := a.headlines.FetchHeadlines(ctx, req.Query)
	if err != nil {
		a.logger.Warn().Str("run_id", runID).Err(err).Msg("Headline fetch failed")
		return nil, &ProviderError{Provider: "news provider", Err: err}
	}
	if len(headlines) == 0 {
		a.logger.Warn().Str("run_id", runID).Str("query", req.Query).Msg("No headlines")
		return nil, fmt.Errorf("%w for %q", ErrNoHeadlines, req.Query)
	}

	prices = chronological(prices)
	scored := sentiment.ScoreAll(a.scorer, headlines)
	merged := analysis.Merge(prices, scored)
	latest, _ := analysis.Latest(merged)
	signal := analysis.Classify(latest)

	a.logger.Info().
		Str("run_id", runID).
		Int("prices", len(prices)).
		Int("headlines", len(scored)).
		Str("signal", string(signal)).
		Msg("Analysis complete")

	return &Result{
		ID:          runID,
		Ticker:      req.Ticker,
		Query:       req.Query,
		Period:      req.Period,
		Headlines:   scored,
		Daily:       analysis.DailyMeans(scored),
		Merged:      merged,
		Latest:      latest,
		Signal:      signal,
		GeneratedAt: a.now().UTC(),
	}, nil
}

// chronological returns prices ordered by date. A sorted series is returned
// as is; otherwise a sorted copy is made so the fetcher's slice is untouched.
func chronological(prices []market.PriceRecord) []market.PriceRecord {
	less := func(s []market.PriceRecord) func(i, j int) bool {
		return func(i, j int) bool { return s[i].Date.Before(s[j].Date) }
	}
	if sort.SliceIsSorted(prices, less(prices)) {
		return prices
	}
	out := append([]market.PriceRecord(nil), prices...)
	sort.SliceStable(out, less(out))
	return out
}
