// Package api exposes the analysis pipeline as a small JSON HTTP service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ternarybob/arbor"

	"github.com/zappabad/stockmood/internal/analysis/history"
	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/logging"
	"github.com/zappabad/stockmood/internal/market"
)

// Runner runs one analysis. *service.Analyzer satisfies it.
type Runner interface {
	Run(ctx context.Context, req service.Request) (*service.Result, error)
}

// Service serves analyses over HTTP and remembers the recent ones.
type Service struct {
	cfg     Config
	runner  Runner
	logger  arbor.ILogger
	history *history.History
	router  chi.Router
}

// NewService routes the endpoints. A nil logger discards output.
func NewService(runner Runner, logger arbor.ILogger, cfg Config) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	cfg = cfg.withDefaults()
	s := &Service{
		cfg:     cfg,
		runner:  runner,
		logger:  logger,
		history: history.New(cfg.HistorySize),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/api/analysis", s.handleAnalysis)
	r.Get("/api/analysis/recent", s.handleRecent)

	s.router = r
	return s
}

// Handler returns the routed handler.
func (s *Service) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Service) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Service) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.Request{
		Ticker: q.Get("ticker"),
		Query:  q.Get("q"),
		Period: market.LookbackPeriod(q.Get("period")),
	}

	start := time.Now()
	res, err := s.runner.Run(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		s.logger.Warn().
			Str("request_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Err(err).
			Msg("Analysis request failed")
		writeJSON(w, status, errorResponse{Error: service.UserMessage(err)})
		return
	}

	s.logger.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Str("ticker", res.Ticker).
		Str("signal", string(res.Signal)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("Analysis request served")
	s.history.Record(res)
	writeJSON(w, http.StatusOK, res)
}

func (s *Service) handleRecent(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "n must be a positive integer"})
			return
		}
		n = v
	}

	entries := s.history.Latest(n)
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func statusFor(err error) int {
	var pe *service.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoPriceData), errors.Is(err, service.ErrNoHeadlines):
		return http.StatusNotFound
	case errors.As(err, &pe):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
