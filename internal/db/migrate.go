package db

import (
	"gorm.io/gorm"

	"github.com/friendsincode/verdandi/internal/models"
)

// Migrate applies the schema for the preference store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserPreference{},
		&models.WorkingHoursRule{},
		&models.DayOff{},
	)
}
