/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package planfile loads a scheduling run from a YAML document: the
// bounding range, the busy calendar, the fixed and flexible activities,
// and optional inline preferences. A loaded file satisfies the engine's
// source interfaces, so a plan can run entirely from disk without a
// database or a remote calendar.
package planfile

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/verdandi/internal/engine"
	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
)

// File is the parsed plan document.
type File struct {
	CalendarID  string           `yaml:"calendar_id"`
	UserID      string           `yaml:"user_id"`
	Range       RangeSpec        `yaml:"range"`
	Busy        []IntervalSpec   `yaml:"busy"`
	Fixed       []FixedSpec      `yaml:"fixed"`
	Flexible    []FlexibleSpec   `yaml:"flexible"`
	Preferences *PreferencesSpec `yaml:"preferences"`
}

// RangeSpec bounds the scheduling run.
type RangeSpec struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// IntervalSpec is a bare busy interval.
type IntervalSpec struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
}

// FixedSpec describes a fixed activity.
type FixedSpec struct {
	ID       string    `yaml:"id"`
	Title    string    `yaml:"title"`
	Start    time.Time `yaml:"start"`
	End      time.Time `yaml:"end"`
	Priority int       `yaml:"priority"`
	RRule    string    `yaml:"rrule"`
}

// FlexibleSpec describes a flexible activity.
type FlexibleSpec struct {
	ID              string     `yaml:"id"`
	Title           string     `yaml:"title"`
	DurationMinutes int        `yaml:"duration_minutes"`
	Priority        int        `yaml:"priority"`
	Category        string     `yaml:"category"`
	Deadline        *time.Time `yaml:"deadline"`
}

// PreferencesSpec carries inline scheduling preferences. Working hours
// are keyed by lowercase weekday name.
type PreferencesSpec struct {
	Timezone     string                `yaml:"timezone"`
	WorkingHours map[string]WindowSpec `yaml:"working_hours"`
	DaysOff      []string              `yaml:"days_off"`
}

// WindowSpec is an "HH:MM" working window.
type WindowSpec struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Load reads and validates a plan file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse plan file: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("plan file %s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	if err := interval.ValidateRange(f.Range.Start, f.Range.End); err != nil {
		return fmt.Errorf("range: %w", err)
	}
	for i, b := range f.Busy {
		iv := interval.Interval{Start: b.Start, End: b.End}
		if err := iv.Validate(); err != nil {
			return fmt.Errorf("busy[%d]: %w", i, err)
		}
	}
	if _, err := f.FixedActivities(); err != nil {
		return err
	}
	if _, err := f.FlexibleActivities(); err != nil {
		return err
	}
	if f.Preferences != nil {
		if _, err := f.Preferences.scheduleContext(); err != nil {
			return err
		}
	}
	return nil
}

// FixedActivities converts the fixed specs to model activities.
func (f *File) FixedActivities() ([]models.FixedActivity, error) {
	out := make([]models.FixedActivity, 0, len(f.Fixed))
	for i, spec := range f.Fixed {
		activity, err := models.NewFixedActivity(spec.ID, spec.Title,
			interval.Interval{Start: spec.Start, End: spec.End},
			models.Priority(spec.Priority))
		if err != nil {
			return nil, fmt.Errorf("fixed[%d]: %w", i, err)
		}
		activity.RRule = spec.RRule
		out = append(out, activity)
	}
	return out, nil
}

// FlexibleActivities converts the flexible specs to model activities.
func (f *File) FlexibleActivities() ([]models.FlexibleActivity, error) {
	out := make([]models.FlexibleActivity, 0, len(f.Flexible))
	for i, spec := range f.Flexible {
		activity, err := models.NewFlexibleActivity(spec.ID, spec.Title,
			time.Duration(spec.DurationMinutes)*time.Minute,
			models.Priority(spec.Priority),
			models.ActivityCategory(spec.Category))
		if err != nil {
			return nil, fmt.Errorf("flexible[%d]: %w", i, err)
		}
		activity.Deadline = spec.Deadline
		out = append(out, activity)
	}
	return out, nil
}

// PlanRequest builds the engine request for this file.
func (f *File) PlanRequest() (engine.PlanRequest, error) {
	fixed, err := f.FixedActivities()
	if err != nil {
		return engine.PlanRequest{}, err
	}
	flexible, err := f.FlexibleActivities()
	if err != nil {
		return engine.PlanRequest{}, err
	}
	return engine.PlanRequest{
		CalendarID: f.CalendarID,
		UserID:     f.UserID,
		RangeStart: f.Range.Start,
		RangeEnd:   f.Range.End,
		Fixed:      fixed,
		Flexible:   flexible,
	}, nil
}

// BusyIntervals implements engine.BusyIntervalSource from the file's busy
// list. The calendar id and range are ignored; the file is the calendar.
func (f *File) BusyIntervals(_ context.Context, _ string, _, _ time.Time) ([]interval.Interval, error) {
	out := make([]interval.Interval, 0, len(f.Busy))
	for _, b := range f.Busy {
		out = append(out, interval.Interval{Start: b.Start, End: b.End})
	}
	return out, nil
}

// ScheduleContext implements engine.PreferenceSource from the file's
// inline preferences, falling back to the defaults when the file has
// none.
func (f *File) ScheduleContext(_ context.Context, _ string) (models.ScheduleContext, error) {
	if f.Preferences == nil {
		return models.NewScheduleContext("", nil, nil), nil
	}
	return f.Preferences.scheduleContext()
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (p *PreferencesSpec) scheduleContext() (models.ScheduleContext, error) {
	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return models.ScheduleContext{}, fmt.Errorf("preferences timezone %q: %w", p.Timezone, err)
		}
	}

	hours := models.WorkingHours{}
	for name, spec := range p.WorkingHours {
		weekday, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return models.ScheduleContext{}, fmt.Errorf("preferences: unknown weekday %q", name)
		}
		window, err := models.ParseWindow(spec.Start, spec.End)
		if err != nil {
			return models.ScheduleContext{}, fmt.Errorf("preferences %s: %w", name, err)
		}
		hours[weekday] = window
	}

	daysOff := models.DaysOff{}
	for _, date := range p.DaysOff {
		if err := daysOff.AddISO(date); err != nil {
			return models.ScheduleContext{}, fmt.Errorf("preferences: %w", err)
		}
	}

	return models.NewScheduleContext(p.Timezone, hours, daysOff), nil
}
