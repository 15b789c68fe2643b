/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow indicates a working-hours window whose end does not
// come after its start. Zero-length windows are rejected.
var ErrInvalidWindow = errors.New("window end must be after window start")

// Clock is a wall-clock time of day without a date.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String renders the clock back to "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// At anchors the clock time on the given day in the given location.
func (c Clock) At(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.In(loc).Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Window is a local-time working window within a single day.
type Window struct {
	Start Clock
	End   Clock
}

// NewWindow validates and constructs a Window.
func NewWindow(start, end Clock) (Window, error) {
	if end.minutes() <= start.minutes() {
		return Window{}, ErrInvalidWindow
	}
	return Window{Start: start, End: end}, nil
}

// ParseWindow parses "HH:MM" start and end strings into a Window.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	return NewWindow(s, e)
}

// WorkingHours maps a weekday to its working window. A missing weekday
// means the user is never available that day.
type WorkingHours map[time.Weekday]Window

// DefaultWorkingHours is Monday through Friday, 09:00-17:00.
func DefaultWorkingHours() WorkingHours {
	window := Window{Start: Clock{Hour: 9}, End: Clock{Hour: 17}}
	return WorkingHours{
		time.Monday:    window,
		time.Tuesday:   window,
		time.Wednesday: window,
		time.Thursday:  window,
		time.Friday:    window,
	}
}

// DaysOff is a set of calendar dates, keyed "YYYY-MM-DD" in the user's
// timezone, overriding any working-hours window.
type DaysOff map[string]struct{}

const dateKeyLayout = "2006-01-02"

// DateKey formats a time as a days-off key using its own location.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// Add marks a date as a day off.
func (d DaysOff) Add(t time.Time) {
	d[DateKey(t)] = struct{}{}
}

// AddISO marks an ISO "YYYY-MM-DD" date as a day off.
func (d DaysOff) AddISO(s string) error {
	if _, err := time.Parse(dateKeyLayout, s); err != nil {
		return fmt.Errorf("parse day off %q: %w", s, err)
	}
	d[s] = struct{}{}
	return nil
}

// Contains reports whether the date of t is a day off.
func (d DaysOff) Contains(t time.Time) bool {
	_, ok := d[DateKey(t)]
	return ok
}

// ScheduleContext carries the per-user scheduling preferences consumed by
// the preference filter. It is built fresh for every scheduling call.
type ScheduleContext struct {
	Timezone     string
	WorkingHours WorkingHours
	DaysOff      DaysOff
}

// NewScheduleContext returns a context with defaults applied: UTC when no
// timezone is given, Monday-Friday 09:00-17:00 when no hours are given.
func NewScheduleContext(timezone string, hours WorkingHours, daysOff DaysOff) ScheduleContext {
	if timezone == "" {
		timezone = "UTC"
	}
	if len(hours) == 0 {
		hours = DefaultWorkingHours()
	}
	if daysOff == nil {
		daysOff = DaysOff{}
	}
	return ScheduleContext{Timezone: timezone, WorkingHours: hours, DaysOff: daysOff}
}
