package service

import (
	"time"

	"github.com/zappabad/stockmood/internal/market"
)

// Config holds configuration for the analyzer.
type Config struct {
	// DefaultPeriod is used when a request leaves the period empty.
	DefaultPeriod market.LookbackPeriod
	// Timeout bounds one whole run. Zero means no deadline.
	Timeout time.Duration
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		DefaultPeriod: market.DefaultPeriod,
	}
}
