package dto

import (
	"encoding/json"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/shopspring/decimal"
)

type CountryResponse struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Capital         *string      `json:"capital"`
	Region          *string      `json:"region"`
	Population      int64        `json:"population"`
	CurrencyCode    *string      `json:"currency_code"`
	ExchangeRate    *json.Number `json:"exchange_rate"`
	EstimatedGDP    *json.Number `json:"estimated_gdp"`
	FlagURL         *string      `json:"flag_url"`
	LastRefreshedAt time.Time    `json:"last_refreshed_at"`
}

type RefreshResponse struct {
	Message            string `json:"message"`
	CountriesProcessed int    `json:"countries_processed"`
	CountriesUpdated   int    `json:"countries_updated"`
	CountriesCreated   int    `json:"countries_created"`
	Errors             int    `json:"errors"`
}

type StatusResponse struct {
	TotalCountries  int64      `json:"total_countries"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type InvalidQueryResponse struct {
	Error             string   `json:"error"`
	InvalidParameters []string `json:"invalid_parameters"`
	ValidParameters   []string `json:"valid_parameters"`
}

func FromCountry(country *domain.Country) CountryResponse {
	return CountryResponse{
		ID:              country.ID,
		Name:            country.Name,
		Capital:         country.Capital,
		Region:          country.Region,
		Population:      country.Population,
		CurrencyCode:    country.CurrencyCode,
		ExchangeRate:    toNumber(country.ExchangeRate),
		EstimatedGDP:    toNumber(country.EstimatedGDP),
		FlagURL:         country.FlagURL,
		LastRefreshedAt: country.LastRefreshedAt,
	}
}

func FromCountries(countries []*domain.Country) []CountryResponse {
	responses := make([]CountryResponse, len(countries))
	for i, country := range countries {
		responses[i] = FromCountry(country)
	}
	return responses
}

func toNumber(value *decimal.Decimal) *json.Number {
	if value == nil {
		return nil
	}
	number := json.Number(value.String())
	return &number
}
