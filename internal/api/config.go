package api

import (
	"time"

	"github.com/zappabad/stockmood/internal/analysis/history"
)

// Config holds the HTTP server timeouts and the history size.
type Config struct {
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration

	// WriteTimeout must outlast a full analysis run; zero leaves it unbounded.
	WriteTimeout time.Duration

	ShutdownTimeout time.Duration

	// HistorySize bounds the list served by /api/analysis/recent.
	HistorySize int
}

func (c Config) withDefaults() Config {
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = 5 * time.Second
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.HistorySize <= 0 {
		c.HistorySize = history.DefaultCapacity
	}
	return c
}
