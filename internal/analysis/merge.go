// Package analysis joins daily headline sentiment onto a price series and
// classifies the latest reading.
package analysis

import (
	"sort"

	"github.com/zappabad/stockmood/internal/market"
	"github.com/zappabad/stockmood/internal/news"
)

// DailySentiment is the mean headline score for one calendar date.
type DailySentiment struct {
	Date          market.Date `json:"date"`
	MeanSentiment float64     `json:"mean_sentiment"`
	Count         int         `json:"count"`
}

// MergedRecord is a price day with that day's mean sentiment attached.
// MeanSentiment is 0 for days without news; HeadlineCount is 0 then too.
type MergedRecord struct {
	market.PriceRecord
	MeanSentiment float64 `json:"mean_sentiment"`
	HeadlineCount int     `json:"headline_count"`
}

// DailyMeans groups scored headlines by publish date and averages each group.
// The result is sorted by date.
func DailyMeans(scored []news.ScoredHeadline) []DailySentiment {
	if len(scored) == 0 {
		return nil
	}

	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[market.Date]*acc)
	for _, h := range scored {
		d := market.DateOf(h.PublishedAt)
		g, ok := groups[d]
		if !ok {
			g = &acc{}
			groups[d] = g
		}
		g.sum += h.Sentiment
		g.count++
	}

	out := make([]DailySentiment, 0, len(groups))
	for d, g := range groups {
		out = append(out, DailySentiment{
			Date:          d,
			MeanSentiment: g.sum / float64(g.count),
			Count:         g.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Merge left-joins daily sentiment onto prices. Every price day is kept in
// its original order and news-only dates are dropped.
func Merge(prices []market.PriceRecord, scored []news.ScoredHeadline) []MergedRecord {
	out := make([]MergedRecord, len(prices))
	for i, p := range prices {
		out[i] = MergedRecord{PriceRecord: p}
	}
	if len(scored) == 0 {
		return out
	}

	daily := DailyMeans(scored)
	byDate := make(map[market.Date]DailySentiment, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d
	}

	for i := range out {
		if d, ok := byDate[out[i].Date]; ok {
			out[i].MeanSentiment = d.MeanSentiment
			out[i].HeadlineCount = d.Count
		}
	}
	return out
}
