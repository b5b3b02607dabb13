package sentiment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zappabad/stockmood/internal/news"
	"github.com/zappabad/stockmood/internal/sentiment"
)

func TestVADERPolarity(t *testing.T) {
	v := sentiment.NewVADER()

	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, score float64)
	}{
		{name: "empty", text: "", check: func(t *testing.T, s float64) { require.Zero(t, s) }},
		{name: "no lexicon words", text: "The company held a meeting on Tuesday", check: func(t *testing.T, s float64) { require.Zero(t, s) }},
		{name: "positive", text: "Shares soar after great and wonderful earnings", check: func(t *testing.T, s float64) { require.Greater(t, s, 0.2) }},
		{name: "negative", text: "Terrible losses and a horrible scandal hit the firm", check: func(t *testing.T, s float64) { require.Less(t, s, -0.2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := v.Score(tt.text)
			require.GreaterOrEqual(t, score, -1.0)
			require.LessOrEqual(t, score, 1.0)
			tt.check(t, score)
		})
	}
}

func TestVADERDeterministic(t *testing.T) {
	v := sentiment.NewVADER()
	text := "Apple stock rallies on strong iPhone demand"
	require.Equal(t, v.Score(text), v.Score(text))
}

type lengthScorer struct{}

func (lengthScorer) Score(text string) float64 { return float64(len(text)) / 100 }

func TestScoreAllKeepsOrder(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	headlines := []news.Headline{
		{PublishedAt: ts, Title: "ab"},
		{PublishedAt: ts.Add(time.Hour), Title: "abcd"},
		{PublishedAt: ts, Title: "ab"},
	}

	scored := sentiment.ScoreAll(lengthScorer{}, headlines)
	require.Len(t, scored, 3)
	require.Equal(t, 0.02, scored[0].Sentiment)
	require.Equal(t, 0.04, scored[1].Sentiment)
	require.Equal(t, headlines[1], scored[1].Headline)
	require.Equal(t, 0.02, scored[2].Sentiment)

	require.Empty(t, sentiment.ScoreAll(lengthScorer{}, nil))
}
