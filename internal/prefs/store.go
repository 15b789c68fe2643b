/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package prefs persists and loads per-user scheduling preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/friendsincode/verdandi/internal/models"
)

// Store reads and writes user scheduling preferences.
type Store struct {
	db     *gorm.DB
	logger zerolog.Logger
}

// NewStore creates a preference store.
func NewStore(db *gorm.DB, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "prefs_store").Logger(),
	}
}

// ScheduleContext loads a user's preferences as an engine context. A user
// with nothing stored gets the defaults: UTC, Monday-Friday 09:00-17:00,
// no days off. Malformed working-hour rows are a hard error; preferences
// are caller-supplied data validated on the way in, so a bad row means
// the write path was bypassed.
func (s *Store) ScheduleContext(ctx context.Context, userID string) (models.ScheduleContext, error) {
	var pref models.UserPreference
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Debug().Str("user_id", userID).Msg("no stored preferences, using defaults")
		return models.NewScheduleContext("", nil, nil), nil
	}
	if err != nil {
		return models.ScheduleContext{}, fmt.Errorf("load preferences: %w", err)
	}

	var rules []models.WorkingHoursRule
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day_of_week ASC").
		Find(&rules).Error; err != nil {
		return models.ScheduleContext{}, fmt.Errorf("load working hours: %w", err)
	}

	hours := models.WorkingHours{}
	for _, rule := range rules {
		window, err := models.ParseWindow(rule.StartTime, rule.EndTime)
		if err != nil {
			return models.ScheduleContext{}, fmt.Errorf("working hours rule %s: %w", rule.ID, err)
		}
		hours[time.Weekday(rule.DayOfWeek)] = window
	}

	var offs []models.DayOff
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&offs).Error; err != nil {
		return models.ScheduleContext{}, fmt.Errorf("load days off: %w", err)
	}

	daysOff := models.DaysOff{}
	for _, off := range offs {
		if err := daysOff.AddISO(off.Date); err != nil {
			return models.ScheduleContext{}, fmt.Errorf("day off %s: %w", off.ID, err)
		}
	}

	return models.NewScheduleContext(pref.Timezone, hours, daysOff), nil
}

// Save replaces a user's stored preferences with the given context. The
// context is validated before anything is written: every window must
// parse back and every day off must be a real date.
func (s *Store) Save(ctx context.Context, userID string, sctx models.ScheduleContext) error {
	if _, err := time.LoadLocation(sctx.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", sctx.Timezone, err)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pref models.UserPreference
		err := tx.Where("user_id = ?", userID).First(&pref).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			pref = models.UserPreference{
				ID:     uuid.NewString(),
				UserID: userID,
			}
		case err != nil:
			return fmt.Errorf("load preferences: %w", err)
		}

		pref.Timezone = sctx.Timezone
		if sctx.Timezone == "" {
			pref.Timezone = "UTC"
		}
		if err := tx.Save(&pref).Error; err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.WorkingHoursRule{}).Error; err != nil {
			return fmt.Errorf("clear working hours: %w", err)
		}
		for weekday, window := range sctx.WorkingHours {
			rule := models.WorkingHoursRule{
				ID:        uuid.NewString(),
				UserID:    userID,
				DayOfWeek: int(weekday),
				StartTime: window.Start.String(),
				EndTime:   window.End.String(),
			}
			if _, err := models.ParseWindow(rule.StartTime, rule.EndTime); err != nil {
				return fmt.Errorf("working hours for %s: %w", weekday, err)
			}
			if err := tx.Create(&rule).Error; err != nil {
				return fmt.Errorf("save working hours: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.DayOff{}).Error; err != nil {
			return fmt.Errorf("clear days off: %w", err)
		}
		for date := range sctx.DaysOff {
			off := models.DayOff{
				ID:     uuid.NewString(),
				UserID: userID,
				Date:   date,
			}
			if err := tx.Create(&off).Error; err != nil {
				return fmt.Errorf("save day off: %w", err)
			}
		}

		s.logger.Info().
			Str("user_id", userID).
			Str("timezone", pref.Timezone).
			Int("working_hour_rules", len(sctx.WorkingHours)).
			Int("days_off", len(sctx.DaysOff)).
			Msg("preferences saved")
		return nil
	})
}
