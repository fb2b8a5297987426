package repository

import (
	"errors"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSettingRepository struct {
	DB *gorm.DB
}

func NewDefaultSettingRepository(db *gorm.DB) *DefaultSettingRepository {
	return &DefaultSettingRepository{DB: db}
}

// GetLastGlobalRefresh returns nil when no refresh has ever run.
func (r *DefaultSettingRepository) GetLastGlobalRefresh() (*time.Time, error) {
	var settingModel models.SettingModel
	err := r.DB.Where("key = ?", models.LastGlobalRefreshKey).First(&settingModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &settingModel.LastUpdated, nil
}

func (r *DefaultSettingRepository) SetLastGlobalRefresh(t time.Time) error {
	settingModel := models.SettingModel{
		Key:         models.LastGlobalRefreshKey,
		LastUpdated: t,
	}

	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_updated"}),
	}).Create(&settingModel).Error
}
