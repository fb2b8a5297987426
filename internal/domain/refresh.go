package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RawCountry is a single entry from the country directory source,
// before reconciliation. Optional fields stay nil when the source omits them.
type RawCountry struct {
	Name       string        `json:"name"`
	Capital    *string       `json:"capital"`
	Region     *string       `json:"region"`
	Population *int64        `json:"population"`
	Currencies []RawCurrency `json:"currencies"`
	Flag       *string       `json:"flag"`
}

type RawCurrency struct {
	Code string `json:"code"`
}

// Rates maps a 3-letter currency code to its exchange rate against
// the reference currency.
type Rates map[string]decimal.Decimal

type RateSource interface {
	FetchRates(ctx context.Context) (Rates, error)
}

type CountrySource interface {
	FetchCountries(ctx context.Context) ([]RawCountry, error)
}

type SettingRepository interface {
	GetLastGlobalRefresh() (*time.Time, error)
	SetLastGlobalRefresh(t time.Time) error
}

// RefreshStore scopes country and setting writes to one transaction.
// The callback's repositories are only valid inside fn.
type RefreshStore interface {
	WithinTransaction(fn func(countries CountryRepository, settings SettingRepository) error) error
}

type RefreshResult struct {
	BatchID   string
	Processed int
	Created   int
	Updated   int
	Errors    []string
}

type RefreshUsecase interface {
	Refresh(ctx context.Context) (*RefreshResult, error)
}

type SummaryRenderer interface {
	Render(totalCountries int64, lastRefreshedAt time.Time, top []*Country) error
}

type RefreshEvent struct {
	BatchID     string    `json:"batch_id"`
	Processed   int       `json:"processed"`
	Created     int       `json:"created"`
	Updated     int       `json:"updated"`
	Errors      int       `json:"errors"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type EventPublisher interface {
	PublishRefresh(ctx context.Context, event RefreshEvent) error
}
