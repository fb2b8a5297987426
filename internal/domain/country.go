package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Country struct {
	ID              string
	Name            string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *decimal.Decimal
	EstimatedGDP    *decimal.Decimal
	FlagURL         *string
	LastRefreshedAt time.Time
}

type SortKey string

const (
	SortGDPDesc        SortKey = "gdp_desc"
	SortGDPAsc         SortKey = "gdp_asc"
	SortPopulationDesc SortKey = "population_desc"
	SortPopulationAsc  SortKey = "population_asc"
	SortNameAsc        SortKey = "name_asc"
	SortNameDesc       SortKey = "name_desc"
)

// ListQuery is a validated, normalized /countries query.
// Filters are case-insensitive exact matches; empty strings mean "no filter".
type ListQuery struct {
	Region   string
	Currency string
	Name     string
	Sort     SortKey
}

type ServiceStatus struct {
	TotalCountries  int64
	LastRefreshedAt *time.Time
}

type CountryRepository interface {
	// Upsert creates or fully overwrites the record keyed by exact name.
	// Returns true when a new row was created.
	Upsert(country *Country) (bool, error)
	GetByName(name string) (*Country, error)
	DeleteByName(name string) error
	List(query ListQuery) ([]*Country, error)
	Count() (int64, error)
	TopByGDP(limit int) ([]*Country, error)
}

type CountryUsecase interface {
	List(params map[string][]string) ([]*Country, error)
	GetByName(name string) (*Country, error)
	DeleteByName(name string) error
	Status() (*ServiceStatus, error)
}
