// Package newsapi searches headlines through the NewsAPI "everything" endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/zappabad/stockmood/internal/news"
)

const (
	// DefaultBaseURL is the NewsAPI v2 root.
	DefaultBaseURL = "https://newsapi.org/v2"

	// MaxPageSize is the largest page the provider serves.
	MaxPageSize = 100

	// DefaultLanguage restricts results to English articles.
	DefaultLanguage = "en"
)

var (
	// ErrMissingAPIKey is returned when the client is built without a credential.
	ErrMissingAPIKey = errors.New("NEWS_API_KEY is not configured")

	// ErrEmptyQuery is returned when the search phrase is blank.
	ErrEmptyQuery = errors.New("search query is required")
)

// APIError is an error reported by NewsAPI.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("NewsAPI error: %s (code: %s, status: %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("NewsAPI error: %s (status: %d)", e.Message, e.StatusCode)
}

// Client is a NewsAPI client bound to one API key.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	language   string
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

// WithPageSize caps the number of articles per search (1..100).
func WithPageSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 && n <= MaxPageSize {
			c.pageSize = n
		}
	}
}

// WithLanguage sets the ISO-639-1 language filter.
func WithLanguage(lang string) ClientOption {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// NewClient creates a NewsAPI client. An empty key is a configuration error.
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		pageSize:   MaxPageSize,
		language:   DefaultLanguage,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ news.HeadlineFetcher = (*Client)(nil)

type everythingResponse struct {
	Status       string    `json:"status"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	TotalResults int       `json:"totalResults"`
	Articles     []article `json:"articles"`
}

type article struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// FetchHeadlines returns the newest articles matching query, in provider order.
func (c *Client) FetchHeadlines(ctx context.Context, query string) ([]news.Headline, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", c.language)
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(c.pageSize))
	reqURL := fmt.Sprintf("%s/everything?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("query", query).
			Int("page_size", c.pageSize).
			Msg("NewsAPI request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search headlines: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w", err)
	}

	var parsed everythingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		}
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || parsed.Status == "error" {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       parsed.Code,
			Message:    parsed.Message,
		}
	}

	headlines := make([]news.Headline, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		ts, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn().
					Str("published_at", a.PublishedAt).
					Str("title", a.Title).
					Msg("Skipping article with unparseable timestamp")
			}
			continue
		}
		headlines = append(headlines, news.Headline{
			PublishedAt: ts,
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
		})
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("query", query).
			Int("total_results", parsed.TotalResults).
			Int("headlines", len(headlines)).
			Msg("NewsAPI response parsed")
	}

	return headlines, nil
}
