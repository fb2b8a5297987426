package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/LavaJover/shvark-country-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultCountryRepository struct {
	DB *gorm.DB
}

func NewDefaultCountryRepository(db *gorm.DB) *DefaultCountryRepository {
	return &DefaultCountryRepository{DB: db}
}

func toCountryDomain(model *models.CountryModel) *domain.Country {
	return &domain.Country{
		ID:              model.ID,
		Name:            model.Name,
		Capital:         model.Capital,
		Region:          model.Region,
		Population:      model.Population,
		CurrencyCode:    model.CurrencyCode,
		ExchangeRate:    model.ExchangeRate,
		EstimatedGDP:    model.EstimatedGDP,
		FlagURL:         model.FlagURL,
		LastRefreshedAt: model.LastRefreshedAt,
	}
}

// Upsert creates or fully overwrites the row matching country.Name exactly.
// The name column carries a unique index, so a concurrent create of the same
// name loses the race with a duplicate-key error and is retried as an update.
// The whole operation runs in its own (possibly nested) transaction, so a
// failed record rolls back to a savepoint instead of poisoning the batch.
func (r *DefaultCountryRepository) Upsert(country *domain.Country) (bool, error) {
	var existing models.CountryModel
	err := r.DB.Where("name = ?", country.Name).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		createErr := r.DB.Transaction(func(tx *gorm.DB) error {
			return (&DefaultCountryRepository{DB: tx}).create(country)
		})
		if createErr == nil {
			return true, nil
		}
		if !errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return false, createErr
		}
		// lost the race to a concurrent refresh; fall through to update
	}

	updateErr := r.DB.Transaction(func(tx *gorm.DB) error {
		return (&DefaultCountryRepository{DB: tx}).update(country)
	})
	return false, updateErr
}

func (r *DefaultCountryRepository) create(country *domain.Country) error {
	now := time.Now().UTC()
	countryModel := models.CountryModel{
		ID:              uuid.New().String(),
		Name:            country.Name,
		Capital:         country.Capital,
		Region:          country.Region,
		Population:      country.Population,
		CurrencyCode:    country.CurrencyCode,
		ExchangeRate:    country.ExchangeRate,
		EstimatedGDP:    country.EstimatedGDP,
		FlagURL:         country.FlagURL,
		LastRefreshedAt: now,
	}

	if err := r.DB.Create(&countryModel).Error; err != nil {
		return err
	}

	country.ID = countryModel.ID
	country.LastRefreshedAt = now
	return nil
}

func (r *DefaultCountryRepository) update(country *domain.Country) error {
	now := time.Now().UTC()
	// Map update so absent fields overwrite to NULL
	updateData := map[string]interface{}{
		"capital":           country.Capital,
		"region":            country.Region,
		"population":        country.Population,
		"currency_code":     country.CurrencyCode,
		"exchange_rate":     country.ExchangeRate,
		"estimated_gdp":     country.EstimatedGDP,
		"flag_url":          country.FlagURL,
		"last_refreshed_at": now,
	}

	if err := r.DB.Model(&models.CountryModel{}).
		Where("name = ?", country.Name).
		Updates(updateData).Error; err != nil {
		return err
	}

	country.LastRefreshedAt = now
	return nil
}

func (r *DefaultCountryRepository) GetByName(name string) (*domain.Country, error) {
	var countryModel models.CountryModel
	if err := r.DB.Where("LOWER(name) = LOWER(?)", name).First(&countryModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCountryNotFound
		}
		return nil, err
	}

	return toCountryDomain(&countryModel), nil
}

func (r *DefaultCountryRepository) DeleteByName(name string) error {
	result := r.DB.Where("LOWER(name) = LOWER(?)", name).Delete(&models.CountryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

func (r *DefaultCountryRepository) List(query domain.ListQuery) ([]*domain.Country, error) {
	tx := r.DB.Model(&models.CountryModel{})

	if query.Region != "" {
		tx = tx.Where("LOWER(region) = LOWER(?)", query.Region)
	}
	if query.Currency != "" {
		tx = tx.Where("LOWER(currency_code) = LOWER(?)", query.Currency)
	}
	if query.Name != "" {
		tx = tx.Where("LOWER(name) = LOWER(?)", query.Name)
	}

	switch query.Sort {
	case domain.SortGDPDesc:
		tx = tx.Where("estimated_gdp IS NOT NULL").Order("estimated_gdp DESC")
	case domain.SortGDPAsc:
		tx = tx.Where("estimated_gdp IS NOT NULL").Order("estimated_gdp ASC")
	case domain.SortPopulationDesc:
		tx = tx.Order("population DESC")
	case domain.SortPopulationAsc:
		tx = tx.Order("population ASC")
	case domain.SortNameDesc:
		tx = tx.Order("name DESC")
	default:
		tx = tx.Order("name ASC")
	}

	var countryModels []models.CountryModel
	if err := tx.Find(&countryModels).Error; err != nil {
		return nil, err
	}

	countries := make([]*domain.Country, len(countryModels))
	for i := range countryModels {
		countries[i] = toCountryDomain(&countryModels[i])
	}

	return countries, nil
}

func (r *DefaultCountryRepository) Count() (int64, error) {
	var total int64
	if err := r.DB.Model(&models.CountryModel{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *DefaultCountryRepository) TopByGDP(limit int) ([]*domain.Country, error) {
	var countryModels []models.CountryModel
	if err := r.DB.Where("estimated_gdp IS NOT NULL").
		Order("estimated_gdp DESC").
		Limit(limit).
		Find(&countryModels).Error; err != nil {
		return nil, err
	}

	countries := make([]*domain.Country, len(countryModels))
	for i := range countryModels {
		countries[i] = toCountryDomain(&countryModels[i])
	}

	return countries, nil
}
