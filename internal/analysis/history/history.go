// Package history keeps a bounded log of recently completed analyses.
package history

import (
	"sync"
	"time"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/market"
)

const DefaultCapacity = 50

// Entry summarizes one completed analysis.
type Entry struct {
	ID          string                `json:"id"`
	Ticker      string                `json:"ticker"`
	Query       string                `json:"query"`
	Period      market.LookbackPeriod `json:"period"`
	Days        int                   `json:"days"`
	Headlines   int                   `json:"headlines"`
	Latest      float64               `json:"latest_sentiment"`
	Signal      analysis.Signal       `json:"signal"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// EntryFor builds the summary of a result.
func EntryFor(res *service.Result) Entry {
	return Entry{
		ID:          res.ID,
		Ticker:      res.Ticker,
		Query:       res.Query,
		Period:      res.Period,
		Days:        len(res.Merged),
		Headlines:   len(res.Headlines),
		Latest:      res.Latest,
		Signal:      res.Signal,
		GeneratedAt: res.GeneratedAt,
	}
}

// History is a ring buffer of entries, safe for concurrent use.
type History struct {
	mu    sync.RWMutex
	buf   []Entry
	size  int
	start int
	count int
}

// New creates a History holding at most capacity entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{
		buf:  make([]Entry, capacity),
		size: capacity,
	}
}

// Record appends the summary of res. Nil results are ignored.
func (h *History) Record(res *service.Result) {
	if res == nil {
		return
	}
	e := EntryFor(res)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count < h.size {
		h.buf[(h.start+h.count)%h.size] = e
		h.count++
		return
	}
	// overwrite oldest
	h.buf[h.start] = e
	h.start = (h.start + 1) % h.size
}

// Latest returns up to n entries, newest first.
func (h *History) Latest(n int) []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n <= 0 || h.count == 0 {
		return nil
	}
	if n > h.count {
		n = h.count
	}

	out := make([]Entry, n)
	last := h.start + h.count - 1
	for i := 0; i < n; i++ {
		out[i] = h.buf[(last-i)%h.size]
	}
	return out
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
