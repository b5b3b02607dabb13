package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmood/tui/styles"
)

// InputField represents the currently focused input field.
type InputField int

const (
	FieldTicker InputField = iota
	FieldQuery
	FieldAnalyze
)

// AnalyzeButtonLabel is the trigger's caption.
const AnalyzeButtonLabel = "Analyze Sentiment"

var enterKey = key.NewBinding(key.WithKeys("enter"))

// AnalyzeRequestMsg is sent when the user triggers an analysis.
type AnalyzeRequestMsg struct {
	Ticker string
	Query  string
}

// InputPanel holds the ticker and search phrase fields and the trigger.
type InputPanel struct {
	tickerInput textinput.Model
	queryInput  textinput.Model

	currentField InputField
	busy         bool

	focused bool
	width   int
	height  int
}

// NewInputPanel creates the input panel pre-filled with the given values.
func NewInputPanel(ticker, query string) *InputPanel {
	tickerInput := textinput.New()
	tickerInput.Placeholder = "Ticker, e.g. AAPL"
	tickerInput.Width = 12
	tickerInput.CharLimit = 15
	tickerInput.SetValue(ticker)

	queryInput := textinput.New()
	queryInput.Placeholder = "Search term, e.g. Apple Inc"
	queryInput.Width = 30
	queryInput.CharLimit = 200
	queryInput.SetValue(query)

	p := &InputPanel{
		tickerInput:  tickerInput,
		queryInput:   queryInput,
		currentField: FieldTicker,
	}
	p.syncInputFocus()
	return p
}

// Init initializes the panel.
func (p *InputPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *InputPanel) Update(msg tea.Msg) (*InputPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, enterKey) {
		return p, p.trigger()
	}

	var cmd tea.Cmd
	switch p.currentField {
	case FieldTicker:
		p.tickerInput, cmd = p.tickerInput.Update(msg)
	case FieldQuery:
		p.queryInput, cmd = p.queryInput.Update(msg)
	}
	return p, cmd
}

// trigger emits an AnalyzeRequestMsg unless a run is already in flight.
func (p *InputPanel) trigger() tea.Cmd {
	if p.busy {
		return nil
	}
	ticker, query := p.Values()
	req := AnalyzeRequestMsg{
		Ticker: strings.TrimSpace(ticker),
		Query:  strings.TrimSpace(query),
	}
	return func() tea.Msg { return req }
}

// View renders the panel.
func (p *InputPanel) View() string {
	tickerStyle := styles.InputStyle
	queryStyle := styles.InputStyle
	if p.focused {
		switch p.currentField {
		case FieldTicker:
			tickerStyle = styles.FocusedInputStyle
		case FieldQuery:
			queryStyle = styles.FocusedInputStyle
		}
	}

	ticker := lipgloss.JoinVertical(lipgloss.Left,
		styles.LabelStyle.Render("Stock Ticker"),
		tickerStyle.Render(p.tickerInput.View()),
	)
	query := lipgloss.JoinVertical(lipgloss.Left,
		styles.LabelStyle.Render("News Search Term"),
		queryStyle.Render(p.queryInput.View()),
	)

	buttonStyle := styles.ButtonStyle
	switch {
	case p.busy:
		buttonStyle = styles.DisabledButtonStyle
	case p.focused && p.currentField == FieldAnalyze:
		buttonStyle = styles.FocusedButtonStyle
	}
	button := lipgloss.JoinVertical(lipgloss.Left,
		"",
		"",
		buttonStyle.Render(AnalyzeButtonLabel),
	)

	row := lipgloss.JoinHorizontal(lipgloss.Top, ticker, "  ", query, "  ", button)

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("Market Sentiment Analyzer 📈", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, row)

	return panelStyle.Width(p.width - 2).Render(panel)
}

// SetField moves the cursor to the given field.
func (p *InputPanel) SetField(f InputField) {
	p.currentField = f
	p.syncInputFocus()
}

// Field returns the currently selected field.
func (p *InputPanel) Field() InputField {
	return p.currentField
}

func (p *InputPanel) syncInputFocus() {
	p.tickerInput.Blur()
	p.queryInput.Blur()
	if !p.focused {
		return
	}
	switch p.currentField {
	case FieldTicker:
		p.tickerInput.Focus()
	case FieldQuery:
		p.queryInput.Focus()
	}
}

// SetBusy disables the trigger while an analysis runs.
func (p *InputPanel) SetBusy(busy bool) {
	p.busy = busy
}

// Values returns the current ticker and query text.
func (p *InputPanel) Values() (ticker, query string) {
	return p.tickerInput.Value(), p.queryInput.Value()
}

// SetFocus sets the focus state of the panel.
func (p *InputPanel) SetFocus(focused bool) {
	p.focused = focused
	p.syncInputFocus()
}

// SetSize sets the panel dimensions.
func (p *InputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Height is the number of rows the panel renders.
func (p *InputPanel) Height() int {
	// border + title + label + bordered input
	return 2 + 1 + 1 + 3
}
