package repository

import (
	"github.com/LavaJover/shvark-country-service/internal/domain"
	"gorm.io/gorm"
)

// Store hands out transaction-scoped repositories so a refresh batch and its
// global marker commit or roll back together.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) WithinTransaction(fn func(countries domain.CountryRepository, settings domain.SettingRepository) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(NewDefaultCountryRepository(tx), NewDefaultSettingRepository(tx))
	})
}
