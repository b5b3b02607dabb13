// Package sentiment scores headline text with the VADER lexicon.
package sentiment

import (
	"math"

	"github.com/jonreiter/govader"

	"github.com/zappabad/stockmood/internal/news"
)

// Scorer maps text to a compound polarity score in [-1, 1].
type Scorer interface {
	Score(text string) float64
}

// VADER scores text with a lexicon and rule-based analyzer. It holds no
// per-call state and is safe to share for the life of the process.
type VADER struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVADER loads the lexicon once.
func NewVADER() *VADER {
	return &VADER{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the compound score of text; empty text scores 0.
func (v *VADER) Score(text string) float64 {
	if text == "" {
		return 0
	}
	compound := v.analyzer.PolarityScores(text).Compound
	if math.IsNaN(compound) {
		return 0
	}
	return math.Max(-1, math.Min(1, compound))
}

// ScoreAll scores every headline on its own, keeping input order.
func ScoreAll(s Scorer, headlines []news.Headline) []news.ScoredHeadline {
	out := make([]news.ScoredHeadline, len(headlines))
	for i, h := range headlines {
		out[i] = news.ScoredHeadline{
			Headline:  h,
			Sentiment: s.Score(h.Title),
		}
	}
	return out
}
