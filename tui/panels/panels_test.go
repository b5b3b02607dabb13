package panels

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/market"
	"github.com/zappabad/stockmood/internal/news"
)

func TestValueToRow(t *testing.T) {
	tests := []struct {
		v, lo, hi float64
		height    int
		want      int
	}{
		{v: 1, lo: -1, hi: 1, height: 11, want: 0},
		{v: -1, lo: -1, hi: 1, height: 11, want: 10},
		{v: 0, lo: -1, hi: 1, height: 11, want: 5},
		{v: 0.2, lo: -1, hi: 1, height: 11, want: 4},
		{v: 5, lo: -1, hi: 1, height: 11, want: 0},
		{v: -5, lo: -1, hi: 1, height: 11, want: 10},
		{v: 3, lo: 3, hi: 3, height: 8, want: 4},
	}

	for _, tt := range tests {
		if got := ValueToRow(tt.v, tt.lo, tt.hi, tt.height); got != tt.want {
			t.Errorf("ValueToRow(%v, %v, %v, %d) = %d, want %d", tt.v, tt.lo, tt.hi, tt.height, got, tt.want)
		}
	}
}

func TestRowToValueInvertsValueToRow(t *testing.T) {
	const height = 21
	for row := 0; row < height; row++ {
		v := RowToValue(row, SentimentMin, SentimentMax, height)
		if got := ValueToRow(v, SentimentMin, SentimentMax, height); got != row {
			t.Errorf("row %d: value %v maps back to row %d", row, v, got)
		}
	}
	if RowToValue(0, 100, 200, 10) != 200 || RowToValue(9, 100, 200, 10) != 100 {
		t.Error("expected axis ends to be hi at the top and lo at the bottom")
	}
}

func TestSampleIndices(t *testing.T) {
	if got := SampleIndices(3, 10); len(got) != 3 || got[0] != 0 || got[2] != 2 {
		t.Errorf("short series should keep every index, got %v", got)
	}

	got := SampleIndices(100, 10)
	if len(got) != 10 {
		t.Fatalf("expected 10 indices, got %d", len(got))
	}
	if got[0] != 0 || got[9] != 99 {
		t.Errorf("expected first and last kept, got %v", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("indices not increasing: %v", got)
		}
	}

	if SampleIndices(0, 10) != nil {
		t.Error("expected nil for empty series")
	}
	if got := SampleIndices(5, 1); len(got) != 1 || got[0] != 4 {
		t.Errorf("width 1 should keep the latest record, got %v", got)
	}
}

func merged(closes ...int64) []analysis.MergedRecord {
	out := make([]analysis.MergedRecord, len(closes))
	for i, c := range closes {
		out[i] = analysis.MergedRecord{
			PriceRecord: market.PriceRecord{
				Date:  market.Date{Year: 2024, Month: time.January, Day: i + 1},
				Close: decimal.NewFromInt(c),
			},
			MeanSentiment: float64(i%3-1) * 0.5,
		}
	}
	return out
}

func TestPriceBounds(t *testing.T) {
	lo, hi := PriceBounds(merged(100, 120, 110))
	if !lo.Equal(decimal.NewFromInt(99)) || !hi.Equal(decimal.NewFromInt(121)) {
		t.Errorf("expected [99, 121], got [%s, %s]", lo, hi)
	}

	lo, hi = PriceBounds(merged(50, 50))
	if !lo.Equal(decimal.NewFromInt(49)) || !hi.Equal(decimal.NewFromInt(51)) {
		t.Errorf("flat series: expected [49, 51], got [%s, %s]", lo, hi)
	}
}

func TestChartView(t *testing.T) {
	p := NewChartPanel()
	p.SetSize(100, 24)

	if !strings.Contains(p.View(), "No analysis yet") {
		t.Error("expected placeholder before data")
	}

	p.SetData("MSFT", merged(300, 305, 298, 310, 312))
	view := p.View()
	for _, want := range []string{ChartTitle("MSFT"), "Stock Price", "Sentiment Score", "+1.00", "-1.00", "2024-01-01", "2024-01-05"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in chart view", want)
		}
	}

	p.Clear()
	if p.Ticker() != "" || !strings.Contains(p.View(), "No analysis yet") {
		t.Error("expected Clear to reset the chart")
	}
}

func TestSignalPanel(t *testing.T) {
	p := NewSignalPanel()
	p.SetSize(80, 1)
	if p.Text() != IntroMessage {
		t.Errorf("unexpected initial text %q", p.Text())
	}

	tests := []struct {
		sig    analysis.Signal
		latest float64
		want   string
	}{
		{sig: analysis.SignalPositive, latest: 0.3456, want: "Signal: Strong Positive Sentiment (0.35)"},
		{sig: analysis.SignalNeutral, latest: 0, want: "Signal: Neutral Sentiment (0.00)"},
		{sig: analysis.SignalNegative, latest: -0.5, want: "Signal: Strong Negative Sentiment (-0.50)"},
	}
	for _, tt := range tests {
		p.SetSignal(tt.sig, tt.latest)
		if p.Text() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, p.Text())
		}
		if !strings.Contains(p.View(), tt.want) {
			t.Errorf("expected %q in view", tt.want)
		}
	}

	p.SetError("Could not retrieve data. Please check the ticker or search term.")
	if !strings.Contains(p.View(), "Could not retrieve data") {
		t.Error("expected error text in view")
	}
}

func TestHeadlineRows(t *testing.T) {
	rows := HeadlineRows([]news.ScoredHeadline{
		{Headline: news.Headline{PublishedAt: time.Date(2024, 3, 5, 9, 7, 0, 0, time.UTC), Title: "Chip demand surges"}, Sentiment: 0.4019},
		{Headline: news.Headline{PublishedAt: time.Date(2024, 3, 4, 18, 0, 0, 0, time.UTC), Title: "Lawsuit filed"}, Sentiment: -0.25},
	})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "2024-03-05 09:07" || rows[0][1] != "Chip demand surges" || rows[0][2] != "+0.40" {
		t.Errorf("unexpected first row %v", rows[0])
	}
	if rows[1][2] != "-0.25" {
		t.Errorf("unexpected second score %q", rows[1][2])
	}
}

func TestHeadlinesPanelNavigation(t *testing.T) {
	p := NewHeadlinesPanel()
	p.SetSize(100, 12)
	p.SetHeadlines([]news.ScoredHeadline{
		{Headline: news.Headline{Title: "first"}},
		{Headline: news.Headline{Title: "second"}},
	})

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if h, _ := p.Selected(); h.Title != "first" {
		t.Errorf("unfocused table must ignore keys, selected %q", h.Title)
	}

	p.SetFocus(true)
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if h, ok := p.Selected(); !ok || h.Title != "second" {
		t.Errorf("expected second headline selected, got %q", h.Title)
	}
	if !strings.Contains(p.View(), "(2/2)") {
		t.Error("expected cursor position in footer")
	}

	p.SetHeadlines(nil)
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection for an empty table")
	}
	if !strings.Contains(p.View(), "No headlines") {
		t.Error("expected empty placeholder")
	}
}

func TestInputPanelTrigger(t *testing.T) {
	p := NewInputPanel(" tsla ", "Tesla")
	p.SetFocus(true)
	p.SetField(FieldAnalyze)

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a trigger command")
	}
	req, ok := cmd().(AnalyzeRequestMsg)
	if !ok {
		t.Fatalf("expected AnalyzeRequestMsg, got %T", cmd())
	}
	if req.Ticker != "tsla" || req.Query != "Tesla" {
		t.Errorf("unexpected request %+v", req)
	}

	p.SetBusy(true)
	if _, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("expected no trigger while busy")
	}
}
