/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// UserPreference stores a user's timezone. Working hours and days off hang
// off it as separate rows.
type UserPreference struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string `gorm:"type:varchar(64);uniqueIndex;not null" json:"user_id"`
	Timezone  string `gorm:"type:varchar(64);not null;default:UTC" json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (UserPreference) TableName() string {
	return "user_preferences"
}

// WorkingHoursRule defines one weekday's working window for a user.
type WorkingHoursRule struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);index:idx_working_hours_user;not null" json:"user_id"`

	DayOfWeek int `gorm:"not null" json:"day_of_week"` // 0=Sunday, 6=Saturday

	// Time window in the user's local zone
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"` // HH:MM format
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`   // HH:MM format

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (WorkingHoursRule) TableName() string {
	return "working_hours_rules"
}

// DayOff blocks a whole calendar date regardless of working hours.
type DayOff struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:varchar(64);index:idx_days_off_user;not null" json:"user_id"`

	Date string `gorm:"type:varchar(10);not null" json:"date"` // YYYY-MM-DD in the user's zone
	Note string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (DayOff) TableName() string {
	return "days_off"
}
