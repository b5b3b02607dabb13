package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple

	// Signal colors
	PositiveColor = lipgloss.Color("#10B981") // Green
	NegativeColor = lipgloss.Color("#EF4444") // Red
	NeutralColor  = lipgloss.Color("#F59E0B") // Amber

	// Series colors
	PriceSeriesColor     = lipgloss.Color("#3B82F6") // Blue
	SentimentSeriesColor = lipgloss.Color("#EF4444") // Red

	// Background colors
	BackgroundColor      = lipgloss.Color("#1F2937")
	PanelBackgroundColor = lipgloss.Color("#111827")
	BorderColor          = lipgloss.Color("#374151")
	FocusBorderColor     = lipgloss.Color("#7C3AED")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	// Base panel style
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// Focused panel style
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	// Panel title style
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)
)

// Sentiment text styles
var (
	PositiveStyle = lipgloss.NewStyle().
			Foreground(PositiveColor)

	NegativeStyle = lipgloss.NewStyle().
			Foreground(NegativeColor)

	NeutralStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Signal banner styles
var (
	SignalPositiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PanelBackgroundColor).
				Background(PositiveColor).
				Padding(0, 2)

	SignalNegativeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor).
				Background(NegativeColor).
				Padding(0, 2)

	SignalNeutralStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PanelBackgroundColor).
				Background(NeutralColor).
				Padding(0, 2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(NegativeColor)
)

// Input styles
var (
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(BorderColor).
			Padding(0, 2)

	FocusedButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(TextColor).
				Background(PrimaryColor).
				Padding(0, 2)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor).
				Background(PanelBackgroundColor).
				Padding(0, 2)
)

// Chart styles
var (
	PriceLineStyle = lipgloss.NewStyle().
			Foreground(PriceSeriesColor)

	SentimentLineStyle = lipgloss.NewStyle().
				Foreground(SentimentSeriesColor)

	ZeroLineStyle = lipgloss.NewStyle().
			Foreground(BorderColor)

	ChartAxisStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// Helper function to render a title bar for a panel
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// FormatScore formats a sentiment score with an explicit sign.
func FormatScore(score float64) string {
	return fmt.Sprintf("%+.2f", score)
}

// ScoreStyle picks the text style for a sentiment score.
func ScoreStyle(score, threshold float64) lipgloss.Style {
	switch {
	case score > threshold:
		return PositiveStyle
	case score < -threshold:
		return NegativeStyle
	default:
		return NeutralStyle
	}
}
