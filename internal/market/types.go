package market

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Date is a calendar day with no time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PriceRecord is one trading day of a price series.
type PriceRecord struct {
	Date   Date            `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// LookbackPeriod is the window of history requested from the provider.
type LookbackPeriod string

const (
	Period1Month  LookbackPeriod = "1mo"
	Period3Months LookbackPeriod = "3mo"
	Period6Months LookbackPeriod = "6mo"
	Period1Year   LookbackPeriod = "1y"
	Period2Years  LookbackPeriod = "2y"
	Period5Years  LookbackPeriod = "5y"
	PeriodYTD     LookbackPeriod = "ytd"
	PeriodMax     LookbackPeriod = "max"
)

// DefaultPeriod is the window the dashboard asks for.
const DefaultPeriod = Period3Months

var supportedPeriods = []LookbackPeriod{
	Period1Month, Period3Months, Period6Months, Period1Year,
	Period2Years, Period5Years, PeriodYTD, PeriodMax,
}

// SupportedPeriods returns every accepted lookback period.
func SupportedPeriods() []LookbackPeriod {
	out := make([]LookbackPeriod, len(supportedPeriods))
	copy(out, supportedPeriods)
	return out
}

// Valid reports whether p is a supported period.
func (p LookbackPeriod) Valid() bool {
	for _, s := range supportedPeriods {
		if p == s {
			return true
		}
	}
	return false
}

// PriceFetcher returns a chronological daily price series for a ticker.
type PriceFetcher interface {
	FetchPrices(ctx context.Context, ticker string, period LookbackPeriod) ([]PriceRecord, error)
}
