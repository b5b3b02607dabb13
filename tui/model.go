package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmood/internal/analysis/service"
	"github.com/zappabad/stockmood/internal/market"
	"github.com/zappabad/stockmood/tui/panels"
	"github.com/zappabad/stockmood/tui/styles"
)

// Focus is a stop in the Tab cycle.
type Focus int

const (
	FocusTicker Focus = iota
	FocusQuery
	FocusAnalyze
	FocusHeadlines

	focusStops = 4
)

// Analyzer runs one analysis. *service.Analyzer satisfies it.
type Analyzer interface {
	Run(ctx context.Context, req service.Request) (*service.Result, error)
}

// Options pre-fill the dashboard.
type Options struct {
	Ticker string
	Query  string
	Period market.LookbackPeriod
}

// Model is the main TUI application model.
type Model struct {
	ctx      context.Context
	analyzer Analyzer
	period   market.LookbackPeriod

	// Panels
	inputPanel     *panels.InputPanel
	signalPanel    *panels.SignalPanel
	chartPanel     *panels.ChartPanel
	headlinesPanel *panels.HeadlinesPanel

	spinner spinner.Model

	// Focus management
	focus Focus

	// Window dimensions
	width  int
	height int

	// Status
	loading   bool
	pending   string
	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model. ctx cancels any in-flight analysis
// when the program exits.
func NewModel(ctx context.Context, analyzer Analyzer, opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.PrimaryColor)

	m := &Model{
		ctx:            ctx,
		analyzer:       analyzer,
		period:         opts.Period,
		inputPanel:     panels.NewInputPanel(opts.Ticker, opts.Query),
		signalPanel:    panels.NewSignalPanel(),
		chartPanel:     panels.NewChartPanel(),
		headlinesPanel: panels.NewHeadlinesPanel(),
		spinner:        sp,
		focus:          FocusTicker,
	}
	m.applyFocus()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.inputPanel.Init(),
		m.signalPanel.Init(),
		m.chartPanel.Init(),
		m.headlinesPanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.focus == FocusHeadlines {
				return m, tea.Quit
			}

		// Cycle focus with tab
		case "tab":
			m.setFocus((m.focus + 1) % focusStops)
			return m, nil

		// Reverse cycle focus with shift+tab
		case "shift+tab":
			m.setFocus((m.focus + focusStops - 1) % focusStops)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updatePanelSizes()
		m.ready = true
		return m, nil

	case panels.AnalyzeRequestMsg:
		return m, m.startAnalysis(msg)

	case analysisDoneMsg:
		m.finishAnalysis(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	// Update focused panel
	m.updateFocusedPanel(msg, &cmds)

	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focus {
	case FocusTicker, FocusQuery, FocusAnalyze:
		m.inputPanel, cmd = m.inputPanel.Update(msg)
	case FocusHeadlines:
		m.headlinesPanel, cmd = m.headlinesPanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

// startAnalysis begins a run unless one is already in flight.
func (m *Model) startAnalysis(req panels.AnalyzeRequestMsg) tea.Cmd {
	if m.loading {
		return nil
	}
	m.loading = true
	m.pending = req.Ticker
	m.inputPanel.SetBusy(true)
	m.statusMsg = ""
	return tea.Batch(m.spinner.Tick, m.runAnalysis(req))
}

func (m *Model) runAnalysis(req panels.AnalyzeRequestMsg) tea.Cmd {
	ctx := m.ctx
	analyzer := m.analyzer
	sreq := service.Request{Ticker: req.Ticker, Query: req.Query, Period: m.period}

	return func() tea.Msg {
		res, err := analyzer.Run(ctx, sreq)
		return analysisDoneMsg{result: res, err: err}
	}
}

func (m *Model) finishAnalysis(msg analysisDoneMsg) {
	m.loading = false
	m.inputPanel.SetBusy(false)

	if msg.err != nil {
		text := service.UserMessage(msg.err)
		m.signalPanel.SetError(text)
		m.chartPanel.Clear()
		m.headlinesPanel.SetHeadlines(nil)
		m.statusMsg = "✗ " + text
		return
	}

	res := msg.result
	m.chartPanel.SetData(res.Ticker, res.Merged)
	m.signalPanel.SetSignal(res.Signal, res.Latest)
	m.headlinesPanel.SetHeadlines(res.Headlines)
	m.statusMsg = fmt.Sprintf("✓ %s: %d trading days, %d headlines (%s)",
		res.Ticker, len(res.Merged), len(res.Headlines), res.Period)
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	// Layout:
	// ┌──────────────────────────────────────────┐
	// │  Ticker  │  Search term  │  [Analyze]    │
	// └──────────────────────────────────────────┘
	//   Signal banner
	// ┌──────────────────────────────────────────┐
	// │  Price vs. sentiment chart               │
	// ├──────────────────────────────────────────┤
	// │  Headlines                               │
	// └──────────────────────────────────────────┘
	//   status bar

	return lipgloss.JoinVertical(lipgloss.Left,
		m.inputPanel.View(),
		m.signalPanel.View(),
		m.chartPanel.View(),
		m.headlinesPanel.View(),
		m.renderStatusBar(),
	)
}

func (m *Model) renderStatusBar() string {
	if m.loading {
		text := fmt.Sprintf("%s Fetching data and analyzing sentiment for %s...", m.spinner.View(), m.pending)
		return styles.StatusBarStyle.Width(m.width).Render(text)
	}

	// Help text
	help := []string{
		styles.StatusBarKeyStyle.Render("Tab") + styles.StatusBarDescStyle.Render(" focus"),
		styles.StatusBarKeyStyle.Render("Enter") + styles.StatusBarDescStyle.Render(" analyze"),
		styles.StatusBarKeyStyle.Render("↑↓") + styles.StatusBarDescStyle.Render(" headlines"),
		styles.StatusBarKeyStyle.Render("q") + styles.StatusBarDescStyle.Render(" quit (table)"),
	}

	helpStr := lipgloss.JoinHorizontal(lipgloss.Center, help[0], " │ ", help[1], " │ ", help[2], " │ ", help[3])

	// Status message
	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(helpStr + status)
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.applyFocus()
}

func (m *Model) applyFocus() {
	switch m.focus {
	case FocusTicker:
		m.inputPanel.SetField(panels.FieldTicker)
	case FocusQuery:
		m.inputPanel.SetField(panels.FieldQuery)
	case FocusAnalyze:
		m.inputPanel.SetField(panels.FieldAnalyze)
	}
	m.inputPanel.SetFocus(m.focus != FocusHeadlines)
	m.headlinesPanel.SetFocus(m.focus == FocusHeadlines)
}

func (m *Model) updatePanelSizes() {
	inputHeight := m.inputPanel.Height()
	signalHeight := 1
	statusHeight := 1

	rest := m.height - inputHeight - signalHeight - statusHeight
	chartHeight := rest * 3 / 5
	if chartHeight < 12 {
		chartHeight = 12
	}
	headlinesHeight := rest - chartHeight
	if headlinesHeight < 6 {
		headlinesHeight = 6
	}

	m.inputPanel.SetSize(m.width, inputHeight)
	m.signalPanel.SetSize(m.width, signalHeight)
	m.chartPanel.SetSize(m.width, chartHeight)
	m.headlinesPanel.SetSize(m.width, headlinesHeight)
}

// Focused returns the current focus stop.
func (m *Model) Focused() Focus { return m.focus }

// Loading reports whether an analysis is in flight.
func (m *Model) Loading() bool { return m.loading }

// analysisDoneMsg carries the outcome of runAnalysis.
type analysisDoneMsg struct {
	result *service.Result
	err    error
}
