package panels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/internal/news"
	"github.com/zappabad/stockmood/tui/styles"
)

const (
	publishedColWidth = 16 // "2006-01-02 15:04"
	sentimentColWidth = 9
	minTitleColWidth  = 20
)

// HeadlinesPanel lists scored headlines in provider order.
type HeadlinesPanel struct {
	table     table.Model
	headlines []news.ScoredHeadline

	focused bool
	width   int
	height  int
}

// NewHeadlinesPanel creates an empty headline table.
func NewHeadlinesPanel() *HeadlinesPanel {
	t := table.New(
		table.WithColumns(headlineColumns(minTitleColWidth)),
		table.WithHeight(5),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.BorderColor).
		BorderBottom(true).
		Foreground(styles.TextSecondaryColor).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.TextColor).
		Background(styles.BorderColor).
		Bold(false)
	t.SetStyles(s)

	return &HeadlinesPanel{table: t}
}

func headlineColumns(titleWidth int) []table.Column {
	return []table.Column{
		{Title: "Published", Width: publishedColWidth},
		{Title: "Headline", Width: titleWidth},
		{Title: "Sentiment", Width: sentimentColWidth},
	}
}

// HeadlineRows converts scored headlines into table rows.
func HeadlineRows(headlines []news.ScoredHeadline) []table.Row {
	rows := make([]table.Row, len(headlines))
	for i, h := range headlines {
		rows[i] = table.Row{
			h.PublishedAt.Format("2006-01-02 15:04"),
			h.Title,
			styles.FormatScore(h.Sentiment),
		}
	}
	return rows
}

// Init initializes the panel.
func (p *HeadlinesPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *HeadlinesPanel) Update(msg tea.Msg) (*HeadlinesPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p *HeadlinesPanel) View() string {
	var content string
	if len(p.headlines) == 0 {
		content = styles.MutedStyle.Render("No headlines")
	} else {
		content = lipgloss.JoinVertical(lipgloss.Left, p.table.View(), p.footer())
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📰 Headlines (%d)", len(p.headlines)), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content)

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// footer shows the cursor position and the selected headline's score.
func (p *HeadlinesPanel) footer() string {
	h, ok := p.Selected()
	if !ok {
		return ""
	}
	pos := styles.MutedStyle.Render(fmt.Sprintf(" (%d/%d) ", p.table.Cursor()+1, len(p.headlines)))
	score := styles.ScoreStyle(h.Sentiment, analysis.Threshold).Render(styles.FormatScore(h.Sentiment))
	return pos + score
}

// SetHeadlines replaces the table contents and moves the cursor to the top.
func (p *HeadlinesPanel) SetHeadlines(headlines []news.ScoredHeadline) {
	p.headlines = headlines
	p.table.SetRows(HeadlineRows(headlines))
	p.table.GotoTop()
}

// Selected returns the headline under the cursor.
func (p *HeadlinesPanel) Selected() (news.ScoredHeadline, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.headlines) {
		return news.ScoredHeadline{}, false
	}
	return p.headlines[i], true
}

// Len returns the number of headlines shown.
func (p *HeadlinesPanel) Len() int {
	return len(p.headlines)
}

// SetFocus sets the focus state of the panel.
func (p *HeadlinesPanel) SetFocus(focused bool) {
	p.focused = focused
	if focused {
		p.table.Focus()
	} else {
		p.table.Blur()
	}
}

// SetSize sets the panel dimensions.
func (p *HeadlinesPanel) SetSize(width, height int) {
	p.width = width
	p.height = height

	// border, padding and the cell padding of three columns
	titleWidth := width - 4 - publishedColWidth - sentimentColWidth - 6
	if titleWidth < minTitleColWidth {
		titleWidth = minTitleColWidth
	}
	p.table.SetColumns(headlineColumns(titleWidth))
	p.table.SetWidth(width - 4)

	// border, panel title, header and its rule, footer
	rows := height - 2 - 1 - 2 - 1
	if rows < 1 {
		rows = 1
	}
	p.table.SetHeight(rows)
}
