package models

import "time"

// SettingModel is a single keyed value. The global refresh marker lives in
// the row keyed "last_global_refresh"; its LastUpdated column is the marker.
type SettingModel struct {
	Key         string    `gorm:"primaryKey"`
	LastUpdated time.Time `gorm:"column:last_updated"`
}

func (SettingModel) TableName() string {
	return "settings"
}

const LastGlobalRefreshKey = "last_global_refresh"
