package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/api"
	"github.com/zappabad/stockmood/internal/config"
	"github.com/zappabad/stockmood/internal/news/newsapi"
)

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(config.NewDefaultConfig(), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, newsapi.ErrMissingAPIKey))

	_, err = New(nil, nil)
	require.Error(t, err)
}

// TestEndToEnd runs the assembled analyzer against fake providers.
func TestEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"chart": map[string]any{
					"result": []any{map[string]any{
						"meta":      map[string]any{"symbol": "AAPL", "gmtoffset": -18000},
						"timestamp": []int64{1704205800, 1704292200},
						"indicators": map[string]any{"quote": []any{map[string]any{
							"open":   []float64{187.15, 184.22},
							"high":   []float64{188.44, 185.88},
							"low":    []float64{183.89, 183.43},
							"close":  []float64{185.64, 184.25},
							"volume": []int64{82488700, 58414500},
						}}},
					}},
					"error": nil,
				},
			})
		case r.URL.Path == "/v2/everything":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":       "ok",
				"totalResults": 1,
				"articles": []any{map[string]any{
					"source":      map[string]any{"name": "Wire"},
					"title":       "Apple faces a terrible lawsuit and horrible losses",
					"publishedAt": "2024-01-03T15:00:00Z",
				}},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.NewDefaultConfig()
	cfg.Market.BaseURL = srv.URL
	cfg.News.BaseURL = srv.URL + "/v2"
	cfg.News.APIKey = "test-key"
	require.NoError(t, cfg.Validate())

	a, err := New(cfg, nil)
	require.NoError(t, err)

	res, err := a.Analyzer.Run(context.Background(), service.Request{Ticker: "aapl", Query: "Apple"})
	require.NoError(t, err)
	require.Equal(t, "AAPL", res.Ticker)
	require.Len(t, res.Merged, 2)
	require.Equal(t, 0.0, res.Merged[0].MeanSentiment)
	require.Less(t, res.Merged[1].MeanSentiment, -0.2)
	require.Equal(t, analysis.SignalNegative, res.Signal)
}

func TestUnknownTickerIsNoData(t *testing.T) {
	var newsCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/v8/finance/chart/"):
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
		default:
			newsCalls++
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.NewDefaultConfig()
	cfg.Market.BaseURL = srv.URL
	cfg.News.BaseURL = srv.URL + "/v2"
	cfg.News.APIKey = "test-key"

	a, err := New(cfg, nil)
	require.NoError(t, err)

	_, err = a.Analyzer.Run(context.Background(), service.Request{Ticker: "zzzzq", Query: "Nothing"})
	require.ErrorIs(t, err, service.ErrNoPriceData)
	require.Equal(t, service.NoDataMessage, service.UserMessage(err))
	require.Zero(t, newsCalls)

	rec := httptest.NewRecorder()
	api.NewService(a.Analyzer, nil, api.Config{}).Handler().
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analysis?ticker=zzzzq&q=Nothing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, service.NoDataMessage, body["error"])
}
