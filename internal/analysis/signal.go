package analysis

// Signal is the categorical reading of the latest day's mean sentiment.
type Signal string

const (
	SignalPositive Signal = "positive"
	SignalNeutral  Signal = "neutral"
	SignalNegative Signal = "negative"
)

// Threshold is the magnitude a mean must exceed to leave neutral.
const Threshold = 0.2

// Classify maps a mean sentiment to a Signal. Exactly ±Threshold is neutral.
func Classify(mean float64) Signal {
	switch {
	case mean > Threshold:
		return SignalPositive
	case mean < -Threshold:
		return SignalNegative
	default:
		return SignalNeutral
	}
}

// Label is the banner text for the signal.
func (s Signal) Label() string {
	switch s {
	case SignalPositive:
		return "Strong Positive Sentiment"
	case SignalNegative:
		return "Strong Negative Sentiment"
	default:
		return "Neutral Sentiment"
	}
}

// Latest returns the mean sentiment of the last merged record.
func Latest(merged []MergedRecord) (float64, bool) {
	if len(merged) == 0 {
		return 0, false
	}
	return merged[len(merged)-1].MeanSentiment, true
}
