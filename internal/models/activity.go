/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/friendsincode/verdandi/internal/interval"
)

// ActivityCategory classifies flexible activities.
type ActivityCategory string

const (
	CategoryWork     ActivityCategory = "work"
	CategoryPersonal ActivityCategory = "personal"
	CategoryExercise ActivityCategory = "exercise"
	CategoryBreak    ActivityCategory = "break"
	CategorySocial   ActivityCategory = "social"
	CategoryRest     ActivityCategory = "rest"
	CategoryOther    ActivityCategory = "other"
)

// Priority orders flexible tasks; higher means more important.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 5
	PriorityHigh   Priority = 10
)

var (
	// ErrMissingTitle indicates an activity without a title.
	ErrMissingTitle = errors.New("activity title is required")

	// ErrInvalidDuration indicates a non-positive estimated duration.
	ErrInvalidDuration = errors.New("estimated duration must be positive")
)

// FixedActivity must occupy an exact interval. An optional RRULE string
// turns it into a recurring commitment expanded before placement.
type FixedActivity struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Interval interval.Interval `json:"interval"`
	Priority Priority          `json:"priority"`
	RRule    string            `json:"rrule,omitempty"`
}

// NewFixedActivity validates and constructs a FixedActivity. An empty id
// is replaced with a fresh UUID.
func NewFixedActivity(id, title string, iv interval.Interval, priority Priority) (FixedActivity, error) {
	if title == "" {
		return FixedActivity{}, ErrMissingTitle
	}
	if err := iv.Validate(); err != nil {
		return FixedActivity{}, fmt.Errorf("fixed activity %q: %w", title, err)
	}
	if id == "" {
		id = uuid.NewString()
	}
	return FixedActivity{ID: id, Title: title, Interval: iv, Priority: priority}, nil
}

// FlexibleActivity carries a duration only; placement is deferred to the
// first-fit scheduler.
type FlexibleActivity struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	EstimatedDuration time.Duration    `json:"estimated_duration"`
	Priority          Priority         `json:"priority"`
	Category          ActivityCategory `json:"category"`
	Deadline          *time.Time       `json:"deadline,omitempty"`
}

// NewFlexibleActivity validates and constructs a FlexibleActivity.
func NewFlexibleActivity(id, title string, estimated time.Duration, priority Priority, category ActivityCategory) (FlexibleActivity, error) {
	if title == "" {
		return FlexibleActivity{}, ErrMissingTitle
	}
	if estimated <= 0 {
		return FlexibleActivity{}, fmt.Errorf("flexible activity %q: %w", title, ErrInvalidDuration)
	}
	if id == "" {
		id = uuid.NewString()
	}
	if category == "" {
		category = CategoryOther
	}
	return FlexibleActivity{
		ID:                id,
		Title:             title,
		EstimatedDuration: estimated,
		Priority:          priority,
		Category:          category,
	}, nil
}
