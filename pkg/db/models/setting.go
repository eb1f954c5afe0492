package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenbasket/farmmarket-backend/pkg/enums"
)

// Setting holds per-user preferences. One row per user, created on first
// write and overwritten thereafter.
type Setting struct {
	ID            uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID   `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	WeatherAlerts bool        `gorm:"column:weather_alerts;not null;default:false"`
	CropAlerts    bool        `gorm:"column:crop_alerts;not null;default:false"`
	Language      string      `gorm:"column:language;not null;default:'en'"`
	Theme         enums.Theme `gorm:"column:theme;type:text;not null;default:'light'"`
	UpdatedAt     time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
