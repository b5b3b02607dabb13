package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNoPriceData    = errors.New("no price data")
	ErrNoHeadlines    = errors.New("no headlines")
	ErrUnexpected     = errors.New("unexpected error")
)

// NoDataMessage is shown when either provider comes back empty.
const NoDataMessage = "Could not retrieve data. Please check the ticker or search term."

// ProviderError wraps a failure reported by an upstream data provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// UserMessage renders err for display at the end of a failed run.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var pe *ProviderError
	switch {
	case errors.Is(err, ErrNoPriceData), errors.Is(err, ErrNoHeadlines):
		return NoDataMessage
	case errors.Is(err, ErrInvalidRequest):
		return err.Error()
	case errors.As(err, &pe):
		return pe.Error()
	default:
		return "An error occurred: " + err.Error()
	}
}
