package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmood/internal/analysis"
	"github.com/zappabad/stockmood/tui/styles"
)

// IntroMessage is shown before the first analysis.
const IntroMessage = "Enter a ticker and search term, then press Enter to analyze."

type signalState int

const (
	signalInfo signalState = iota
	signalResult
	signalError
)

// SignalPanel is the banner above the chart: a hint, the latest signal, or
// the error that ended the last run.
type SignalPanel struct {
	state   signalState
	message string
	signal  analysis.Signal
	latest  float64

	width int
}

// NewSignalPanel creates the banner showing IntroMessage.
func NewSignalPanel() *SignalPanel {
	return &SignalPanel{state: signalInfo, message: IntroMessage}
}

// Init initializes the panel.
func (p *SignalPanel) Init() tea.Cmd {
	return nil
}

// SignalText is the banner text for a signal and the mean it came from.
func SignalText(sig analysis.Signal, latest float64) string {
	return fmt.Sprintf("Signal: %s (%.2f)", sig.Label(), latest)
}

// View renders the panel.
func (p *SignalPanel) View() string {
	var line string
	switch p.state {
	case signalResult:
		style := styles.SignalNeutralStyle
		switch p.signal {
		case analysis.SignalPositive:
			style = styles.SignalPositiveStyle
		case analysis.SignalNegative:
			style = styles.SignalNegativeStyle
		}
		line = style.Render(SignalText(p.signal, p.latest))
	case signalError:
		line = styles.ErrorStyle.Render("✗ " + p.message)
	default:
		line = styles.InfoStyle.Render(p.message)
	}

	return lipgloss.NewStyle().Width(p.width).Padding(0, 1).Render(line)
}

// Text returns the unstyled banner text.
func (p *SignalPanel) Text() string {
	if p.state == signalResult {
		return SignalText(p.signal, p.latest)
	}
	return p.message
}

// SetSignal shows the outcome of a successful run.
func (p *SignalPanel) SetSignal(sig analysis.Signal, latest float64) {
	p.state = signalResult
	p.signal = sig
	p.latest = latest
	p.message = ""
}

// SetError shows the message of a failed run.
func (p *SignalPanel) SetError(msg string) {
	p.state = signalError
	p.message = msg
}

// SetInfo shows a neutral hint.
func (p *SignalPanel) SetInfo(msg string) {
	p.state = signalInfo
	p.message = msg
}

// SetSize sets the panel width; the banner is one row tall.
func (p *SignalPanel) SetSize(width, _ int) {
	p.width = width
}
