package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/api"
	"github.com/zappabad/stockmood/internal/logging"
	"github.com/zappabad/stockmood/internal/market"
)

type stubRunner struct {
	res *service.Result
	err error
	got service.Request
}

func (s *stubRunner) Run(_ context.Context, req service.Request) (*service.Result, error) {
	s.got = req
	return s.res, s.err
}

func serve(t *testing.T, runner api.Runner, target string) *httptest.ResponseRecorder {
	t.Helper()
	svc := api.NewService(runner, logging.Discard(), api.Config{})
	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, &stubRunner{}, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAnalysisSuccess(t *testing.T) {
	runner := &stubRunner{res: &service.Result{
		ID:     "run-1",
		Ticker: "AAPL",
		Query:  "Apple Inc",
		Period: market.Period1Month,
		Merged: []analysis.MergedRecord{{
			PriceRecord:   market.PriceRecord{Date: market.Date{Year: 2024, Month: time.January, Day: 2}, Close: decimal.RequireFromString("185.64")},
			MeanSentiment: 0.35,
			HeadlineCount: 2,
		}},
		Latest:      0.35,
		Signal:      analysis.SignalPositive,
		GeneratedAt: time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC),
	}}

	rec := serve(t, runner, "/api/analysis?ticker=aapl&q=Apple+Inc&period=1mo")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, service.Request{Ticker: "aapl", Query: "Apple Inc", Period: market.Period1Month}, runner.got)

	var body struct {
		Ticker string `json:"ticker"`
		Signal string `json:"signal"`
		Merged []struct {
			Date          string          `json:"date"`
			Close         decimal.Decimal `json:"close"`
			MeanSentiment float64         `json:"mean_sentiment"`
			HeadlineCount int             `json:"headline_count"`
		} `json:"merged"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "AAPL", body.Ticker)
	require.Equal(t, "positive", body.Signal)
	require.Len(t, body.Merged, 1)
	require.Equal(t, "2024-01-02", body.Merged[0].Date)
	require.True(t, body.Merged[0].Close.Equal(decimal.RequireFromString("185.64")))
	require.Equal(t, 0.35, body.Merged[0].MeanSentiment)
	require.Equal(t, 2, body.Merged[0].HeadlineCount)
}

func TestAnalysisErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "validation",
			err:     fmt.Errorf("%w: ticker is required", service.ErrInvalidRequest),
			status:  http.StatusBadRequest,
			message: "invalid request: ticker is required",
		},
		{
			name:    "no prices",
			err:     fmt.Errorf("%w for ZZZZ", service.ErrNoPriceData),
			status:  http.StatusNotFound,
			message: service.NoDataMessage,
		},
		{
			name:    "no headlines",
			err:     service.ErrNoHeadlines,
			status:  http.StatusNotFound,
			message: service.NoDataMessage,
		},
		{
			name:    "provider",
			err:     &service.ProviderError{Provider: "news provider", Err: errors.New("rate limited")},
			status:  http.StatusBadGateway,
			message: "news provider: rate limited",
		},
		{
			name:    "unexpected",
			err:     fmt.Errorf("%w: nil map", service.ErrUnexpected),
			status:  http.StatusInternalServerError,
			message: "An error occurred: unexpected error: nil map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubRunner{err: tt.err}, "/api/analysis?ticker=x&q=y")
			require.Equal(t, tt.status, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.Equal(t, tt.message, body["error"])
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(t, &stubRunner{}, "/api/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	svc := api.NewService(&stubRunner{}, nil, api.Config{ShutdownTimeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- svc.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRecentAnalyses(t *testing.T) {
	runner := &stubRunner{res: &service.Result{ID: "run-1", Ticker: "AAPL", Signal: analysis.SignalNeutral}}
	svc := api.NewService(runner, nil, api.Config{HistorySize: 2})
	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := get("/api/analysis/recent")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	require.Equal(t, http.StatusOK, get("/api/analysis?ticker=aapl&q=Apple").Code)
	runner.res = &service.Result{ID: "run-2", Ticker: "MSFT", Signal: analysis.SignalNegative}
	require.Equal(t, http.StatusOK, get("/api/analysis?ticker=msft&q=Microsoft").Code)
	runner.res, runner.err = nil, service.ErrNoHeadlines
	require.Equal(t, http.StatusNotFound, get("/api/analysis?ticker=x&q=y").Code)

	var entries []struct {
		ID     string `json:"id"`
		Ticker string `json:"ticker"`
		Signal string `json:"signal"`
	}
	rec = get("/api/analysis/recent?n=5")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	require.Equal(t, "run-2", entries[0].ID)
	require.Equal(t, "negative", entries[0].Signal)
	require.Equal(t, "run-1", entries[1].ID)

	require.Equal(t, http.StatusBadRequest, get("/api/analysis/recent?n=zero").Code)
}
