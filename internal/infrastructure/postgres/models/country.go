package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CountryModel struct {
	ID              string           `gorm:"primaryKey;type:uuid"`
	Name            string           `gorm:"uniqueIndex:idx_countries_name;not null"`
	Capital         *string
	Region          *string
	Population      int64            `gorm:"not null;default:0"`
	CurrencyCode    *string          `gorm:"column:currency_code;type:varchar(3)"`
	ExchangeRate    *decimal.Decimal `gorm:"column:exchange_rate;type:numeric(20,10)"`
	EstimatedGDP    *decimal.Decimal `gorm:"column:estimated_gdp;type:numeric(30,2)"`
	FlagURL         *string          `gorm:"column:flag_url"`
	LastRefreshedAt time.Time        `gorm:"column:last_refreshed_at"`
}

func (CountryModel) TableName() string {
	return "countries"
}
