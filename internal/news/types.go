package news

import (
	"context"
	"time"
)

// Headline is one article returned by the news provider.
type Headline struct {
	PublishedAt time.Time `json:"published_at"`
	Title       string    `json:"title"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
}

// ScoredHeadline is a Headline annotated with its compound sentiment in [-1, 1].
type ScoredHeadline struct {
	Headline
	Sentiment float64 `json:"sentiment"`
}

// HeadlineFetcher searches the news provider for a free-text query.
type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context, query string) ([]Headline, error)
}
