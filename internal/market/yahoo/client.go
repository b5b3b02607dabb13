// Package yahoo fetches daily price history from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ternarybob/arbor"

	"github.com/zappabad/stockmood/internal/market"
)

const (
	// DefaultBaseURL is the chart API host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultUserAgent is sent with every request; the API rejects empty agents.
	DefaultUserAgent = "Mozilla/5.0 (compatible; stockmood/1.0)"
)

// notFoundCode is the chart.error code for an unrecognized symbol.
const notFoundCode = "Not Found"

// ErrEmptyTicker is returned when no ticker symbol is given.
var ErrEmptyTicker = errors.New("ticker symbol is required")

// APIError is a non-success answer from the chart API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
	Ticker      string
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("yahoo chart %s: %s (status: %d)", e.Ticker, e.Description, e.StatusCode)
	}
	return fmt.Sprintf("yahoo chart %s: status %d", e.Ticker, e.StatusCode)
}

// Client is a Yahoo Finance chart API client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a chart API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ market.PriceFetcher = (*Client)(nil)

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResult struct {
	Meta struct {
		Symbol               string `json:"symbol"`
		Currency             string `json:"currency"`
		ExchangeTimezoneName string `json:"exchangeTimezoneName"`
		GMTOffset            int    `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// FetchPrices returns daily records for ticker over period, oldest first.
// Dates are exchange-local; rows without a close are dropped and a repeated
// date keeps its last row. An unrecognized ticker yields no records and no
// error.
func (c *Client) FetchPrices(ctx context.Context, ticker string, period market.LookbackPeriod) ([]market.PriceRecord, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, ErrEmptyTicker
	}
	if !period.Valid() {
		return nil, fmt.Errorf("unsupported lookback period %q", period)
	}

	params := url.Values{}
	params.Set("range", string(period))
	params.Set("interval", "1d")
	params.Set("events", "div,split")
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(ticker), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Str("period", string(period)).
			Msg("Yahoo chart request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chart response: %w", err)
	}

	var parsed chartResponse
	decodeErr := json.Unmarshal(body, &parsed)

	// An unknown symbol is an empty series, not an upstream failure.
	if resp.StatusCode == http.StatusNotFound || (parsed.Chart.Error != nil && parsed.Chart.Error.Code == notFoundCode) {
		if c.logger != nil {
			c.logger.Debug().
				Str("ticker", ticker).
				Msg("Yahoo chart has no data for symbol")
		}
		return nil, nil
	}
	if parsed.Chart.Error != nil {
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        parsed.Chart.Error.Code,
			Description: parsed.Chart.Error.Description,
			Ticker:      ticker,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Description: strings.TrimSpace(string(body)),
			Ticker:      ticker,
		}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode chart response: %w", decodeErr)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, nil
	}

	records := toRecords(parsed.Chart.Result[0])

	if c.logger != nil {
		c.logger.Debug().
			Str("ticker", ticker).
			Int("records", len(records)).
			Msg("Yahoo chart parsed")
	}

	return records, nil
}

func toRecords(res chartResult) []market.PriceRecord {
	if len(res.Indicators.Quote) == 0 {
		return nil
	}
	q := res.Indicators.Quote[0]
	loc := time.FixedZone(res.Meta.ExchangeTimezoneName, res.Meta.GMTOffset)

	byDate := make(map[market.Date]market.PriceRecord, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		closePx := floatAt(q.Close, i)
		if closePx == nil {
			continue
		}
		d := market.DateOf(time.Unix(ts, 0).In(loc))
		rec := market.PriceRecord{
			Date:  d,
			Close: decimal.NewFromFloat(*closePx),
		}
		if v := floatAt(q.Open, i); v != nil {
			rec.Open = decimal.NewFromFloat(*v)
		}
		if v := floatAt(q.High, i); v != nil {
			rec.High = decimal.NewFromFloat(*v)
		}
		if v := floatAt(q.Low, i); v != nil {
			rec.Low = decimal.NewFromFloat(*v)
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			rec.Volume = *q.Volume[i]
		}
		byDate[d] = rec
	}

	out := make([]market.PriceRecord, 0, len(byDate))
	for _, rec := range byDate {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func floatAt(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
