package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/tui/styles"
)

// Sentiment axis bounds. The right axis never rescales.
const (
	SentimentMin = -1.0
	SentimentMax = 1.0
)

const (
	leftAxisWidth  = 10 // "%8s │"
	rightAxisWidth = 8  // "│ %+5.2f"

	pricePoint     = '●'
	priceLink      = '│'
	sentimentPoint = '◆'
	zeroLine       = '┈'
)

// ChartPanel draws closing price (left axis) and daily mean sentiment
// (right axis, fixed to [-1, 1]) over the same dates.
type ChartPanel struct {
	ticker  string
	records []analysis.MergedRecord

	focused bool
	width   int
	height  int
}

// NewChartPanel creates an empty chart panel.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// ChartTitle is the heading shown above a ticker's chart.
func ChartTitle(ticker string) string {
	return fmt.Sprintf("%s Price vs. News Sentiment", ticker)
}

// View renders the panel.
func (p *ChartPanel) View() string {
	title := "📉 Price vs. News Sentiment"
	if p.ticker != "" {
		title = "📉 " + ChartTitle(p.ticker)
	}

	var content string
	if len(p.records) == 0 {
		content = styles.MutedStyle.Render("No analysis yet...")
	} else {
		content = p.renderChart(p.width-4, p.height-3)
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	panel := lipgloss.JoinVertical(lipgloss.Left, styles.RenderTitle(title, p.focused), content)
	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderChart(width, height int) string {
	plotWidth := width - leftAxisWidth - rightAxisWidth
	if plotWidth < 10 {
		plotWidth = 10
	}

	// Reserve rows for the bottom border, date labels and legend
	plotHeight := height - 3
	if plotHeight < 5 {
		plotHeight = 5
	}

	indices := SampleIndices(len(p.records), plotWidth)
	minPrice, maxPrice := PriceBounds(p.records)
	lo, hi := minPrice.InexactFloat64(), maxPrice.InexactFloat64()

	zeroRow := ValueToRow(0, SentimentMin, SentimentMax, plotHeight)
	grid := make([][]rune, plotHeight)
	kind := make([][]lipgloss.Style, plotHeight)
	for row := range grid {
		grid[row] = make([]rune, len(indices))
		kind[row] = make([]lipgloss.Style, len(indices))
		for col := range grid[row] {
			grid[row][col] = ' '
		}
	}
	for col := range indices {
		grid[zeroRow][col] = zeroLine
		kind[zeroRow][col] = styles.ZeroLineStyle
	}

	prevRow := -1
	for col, idx := range indices {
		r := p.records[idx]

		sRow := ValueToRow(r.MeanSentiment, SentimentMin, SentimentMax, plotHeight)
		grid[sRow][col] = sentimentPoint
		kind[sRow][col] = styles.SentimentLineStyle

		pRow := ValueToRow(r.Close.InexactFloat64(), lo, hi, plotHeight)
		if prevRow >= 0 {
			from, to := prevRow, pRow
			if from > to {
				from, to = to, from
			}
			for row := from + 1; row < to; row++ {
				if grid[row][col] == ' ' || grid[row][col] == zeroLine {
					grid[row][col] = priceLink
					kind[row][col] = styles.PriceLineStyle
				}
			}
		}
		grid[pRow][col] = pricePoint
		kind[pRow][col] = styles.PriceLineStyle
		prevRow = pRow
	}

	var result strings.Builder

	for row := 0; row < plotHeight; row++ {
		price := RowToValue(row, lo, hi, plotHeight)
		result.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8s │", decimal.NewFromFloat(price).StringFixed(2))))

		for col := range indices {
			ch := grid[row][col]
			if ch == ' ' {
				result.WriteRune(ch)
				continue
			}
			result.WriteString(kind[row][col].Render(string(ch)))
		}
		// pad short series so the right axis lines up
		result.WriteString(strings.Repeat(" ", plotWidth-len(indices)))

		sentiment := RowToValue(row, SentimentMin, SentimentMax, plotHeight)
		result.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("│ %+5.2f", sentiment)))
		result.WriteString("\n")
	}

	result.WriteString(styles.ChartAxisStyle.Render(strings.Repeat("─", leftAxisWidth-1) + "┴" + strings.Repeat("─", plotWidth) + "┴"))
	result.WriteString("\n")

	first := p.records[0].Date.String()
	last := p.records[len(p.records)-1].Date.String()
	gap := plotWidth - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	result.WriteString(strings.Repeat(" ", leftAxisWidth))
	result.WriteString(styles.ChartLabelStyle.Render(first + strings.Repeat(" ", gap) + last))
	result.WriteString("\n")

	result.WriteString(strings.Repeat(" ", leftAxisWidth))
	result.WriteString(styles.PriceLineStyle.Render(string(pricePoint) + " Stock Price"))
	result.WriteString("   ")
	result.WriteString(styles.SentimentLineStyle.Render(string(sentimentPoint) + " Sentiment Score"))

	return result.String()
}

// ValueToRow maps v onto a row of a plot height rows tall, row 0 at hi.
// Values outside [lo, hi] are clamped to the edge rows.
func ValueToRow(v, lo, hi float64, height int) int {
	if height <= 1 || hi == lo {
		return height / 2
	}
	ratio := (hi - v) / (hi - lo)
	y := int(ratio*float64(height-1) + 0.5)
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return y
}

// RowToValue is the axis value printed beside row.
func RowToValue(row int, lo, hi float64, height int) float64 {
	if height <= 1 {
		return lo
	}
	ratio := float64(row) / float64(height-1)
	return hi - ratio*(hi-lo)
}

// SampleIndices picks at most width record indices spread evenly over n
// records, always keeping the first and last.
func SampleIndices(n, width int) []int {
	if n <= 0 || width <= 0 {
		return nil
	}
	if n <= width {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if width == 1 {
		return []int{n - 1}
	}
	out := make([]int, width)
	for i := range out {
		out[i] = i * (n - 1) / (width - 1)
	}
	return out
}

// PriceBounds returns the close range of records widened by 5% on each
// side. A flat series is widened by one unit.
func PriceBounds(records []analysis.MergedRecord) (lo, hi decimal.Decimal) {
	if len(records) == 0 {
		return decimal.Zero, decimal.NewFromInt(1)
	}
	lo, hi = records[0].Close, records[0].Close
	for _, r := range records[1:] {
		lo = decimal.Min(lo, r.Close)
		hi = decimal.Max(hi, r.Close)
	}

	span := hi.Sub(lo)
	if span.IsZero() {
		return lo.Sub(decimal.NewFromInt(1)), hi.Add(decimal.NewFromInt(1))
	}
	pad := span.Mul(decimal.NewFromFloat(0.05))
	return lo.Sub(pad), hi.Add(pad)
}

// SetData replaces the plotted series.
func (p *ChartPanel) SetData(ticker string, records []analysis.MergedRecord) {
	p.ticker = ticker
	p.records = records
}

// Clear removes the plotted series.
func (p *ChartPanel) Clear() {
	p.ticker = ""
	p.records = nil
}

// Ticker returns the charted ticker.
func (p *ChartPanel) Ticker() string {
	return p.ticker
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}
