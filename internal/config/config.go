// Package config loads stockmood settings from defaults, an optional TOML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/zappabad/stockmood/internal/market"
	"github.com/zappabad/stockmood/internal/market/yahoo"
	"github.com/zappabad/stockmood/internal/news/newsapi"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "stockmood.toml"

// ErrMissingAPIKey is returned by Validate when no news credential is set.
var ErrMissingAPIKey = newsapi.ErrMissingAPIKey

type Config struct {
	Market   MarketConfig   `toml:"market"`
	News     NewsConfig     `toml:"news"`
	HTTP     HTTPConfig     `toml:"http"`
	Server   ServerConfig   `toml:"server"`
	Logging  LoggingConfig  `toml:"logging"`
	Defaults DefaultsConfig `toml:"defaults"`
}

type MarketConfig struct {
	BaseURL string `toml:"base_url"`
	Period  string `toml:"period"` // lookback used when a request gives none
}

type NewsConfig struct {
	BaseURL  string `toml:"base_url"`
	APIKey   string `toml:"api_key"`
	PageSize int    `toml:"page_size"`
	Language string `toml:"language"`
}

type HTTPConfig struct {
	RequestTimeout string `toml:"request_timeout"` // Go duration; "0s" disables the deadline
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`
	Output []string `toml:"output"` // "file", "console"/"stdout"
	File   string   `toml:"file"`
}

// DefaultsConfig pre-fills the dashboard inputs.
type DefaultsConfig struct {
	Ticker string `toml:"ticker"`
	Query  string `toml:"query"`
}

// NewDefaultConfig returns the built-in settings. The API key is left empty.
func NewDefaultConfig() *Config {
	return &Config{
		Market: MarketConfig{
			BaseURL: yahoo.DefaultBaseURL,
			Period:  string(market.DefaultPeriod),
		},
		News: NewsConfig{
			BaseURL:  newsapi.DefaultBaseURL,
			PageSize: newsapi.MaxPageSize,
			Language: newsapi.DefaultLanguage,
		},
		HTTP: HTTPConfig{
			RequestTimeout: "0s",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"file"},
			File:   "logs/stockmood.log",
		},
		Defaults: DefaultsConfig{
			Ticker: "AAPL",
			Query:  "Apple Inc",
		},
	}
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path means DefaultPath. Variables in ./.env are loaded into the
// environment before overrides apply, without replacing ones already set.
func Load(path string) (*Config, error) {
	config := NewDefaultConfig()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	_ = godotenv.Load(".env")

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if baseURL := os.Getenv("STOCKMOOD_MARKET_BASE_URL"); baseURL != "" {
		config.Market.BaseURL = baseURL
	}
	if period := os.Getenv("STOCKMOOD_PERIOD"); period != "" {
		config.Market.Period = period
	}

	if baseURL := os.Getenv("STOCKMOOD_NEWS_BASE_URL"); baseURL != "" {
		config.News.BaseURL = baseURL
	}
	if apiKey := os.Getenv("NEWS_API_KEY"); apiKey != "" {
		config.News.APIKey = apiKey
	}
	if pageSize := os.Getenv("STOCKMOOD_NEWS_PAGE_SIZE"); pageSize != "" {
		if n, err := strconv.Atoi(pageSize); err == nil {
			config.News.PageSize = n
		}
	}
	if language := os.Getenv("STOCKMOOD_NEWS_LANGUAGE"); language != "" {
		config.News.Language = language
	}

	if timeout := os.Getenv("STOCKMOOD_REQUEST_TIMEOUT"); timeout != "" {
		config.HTTP.RequestTimeout = timeout
	}

	if host := os.Getenv("STOCKMOOD_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("STOCKMOOD_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STOCKMOOD_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("STOCKMOOD_LOG_OUTPUT"); output != "" {
		var outputs []string
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
	if file := os.Getenv("STOCKMOOD_LOG_FILE"); file != "" {
		config.Logging.File = file
	}
}

// Validate reports the first setting that would stop the program from
// running an analysis.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.News.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if !c.Period().Valid() {
		return fmt.Errorf("market.period %q is not one of %v", c.Market.Period, market.SupportedPeriods())
	}
	if c.News.PageSize < 1 || c.News.PageSize > newsapi.MaxPageSize {
		return fmt.Errorf("news.page_size must be between 1 and %d, got %d", newsapi.MaxPageSize, c.News.PageSize)
	}
	timeout, err := time.ParseDuration(c.HTTP.RequestTimeout)
	if err != nil {
		return fmt.Errorf("http.request_timeout: %w", err)
	}
	if timeout < 0 {
		return fmt.Errorf("http.request_timeout must not be negative, got %s", timeout)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

// Period is the configured default lookback.
func (c *Config) Period() market.LookbackPeriod {
	return market.LookbackPeriod(c.Market.Period)
}

// RequestTimeout is the parsed http.request_timeout; invalid values yield 0.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.RequestTimeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
