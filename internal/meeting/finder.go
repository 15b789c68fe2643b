/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package meeting suggests concrete meeting times from preference-filtered
// free slots.
package meeting

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
)

// ErrInvalidOptions indicates unusable search options.
var ErrInvalidOptions = errors.New("invalid meeting search options")

// DefaultMaxSuggestions bounds the number of returned suggestions.
const DefaultMaxSuggestions = 5

// Options constrains the meeting search.
type Options struct {
	Duration          time.Duration
	EarliestStartHour int // local hour, default 9
	LatestEndHour     int // local hour, default 17
	PreferredWindows  []models.Window
	MaxSuggestions    int
}

func (o *Options) applyDefaults() {
	if o.EarliestStartHour == 0 {
		o.EarliestStartHour = 9
	}
	if o.LatestEndHour == 0 {
		o.LatestEndHour = 17
	}
	if o.MaxSuggestions <= 0 {
		o.MaxSuggestions = DefaultMaxSuggestions
	}
}

func (o Options) validate() error {
	if o.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidOptions)
	}
	if o.EarliestStartHour < 0 || o.EarliestStartHour > 23 {
		return fmt.Errorf("%w: earliest start hour out of range", ErrInvalidOptions)
	}
	if o.LatestEndHour < 1 || o.LatestEndHour > 24 {
		return fmt.Errorf("%w: latest end hour out of range", ErrInvalidOptions)
	}
	return nil
}

// Suggestion is one proposed meeting time.
type Suggestion struct {
	Interval interval.Interval `json:"interval"`
	Weekday  time.Weekday      `json:"weekday"`
}

// Finder searches free slots for meeting candidates.
type Finder struct {
	logger zerolog.Logger
}

// NewFinder creates a meeting time finder.
func NewFinder(logger zerolog.Logger) *Finder {
	return &Finder{
		logger: logger.With().Str("component", "meeting_finder").Logger(),
	}
}

// Suggest anchors a candidate meeting at the start of each slot long
// enough for the requested duration, keeps candidates within the
// earliest-start / latest-end hour bounds (evaluated in loc), optionally
// requires the candidate to sit inside a preferred window, and returns the
// earliest suggestions first, capped at MaxSuggestions.
func (f *Finder) Suggest(slots []interval.Interval, loc *time.Location, opts Options) ([]Suggestion, error) {
	opts.applyDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	var candidates []Suggestion
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		if slot.Duration() < opts.Duration {
			continue
		}

		start := slot.Start.In(loc)
		end := start.Add(opts.Duration)

		if start.Hour() < opts.EarliestStartHour {
			continue
		}
		endHour := end.Hour()
		if end.Minute() > 0 {
			endHour++
		}
		if endHour > opts.LatestEndHour && !endsAtMidnight(end) {
			continue
		}

		if len(opts.PreferredWindows) > 0 && !inPreferredWindow(start, end, opts.PreferredWindows) {
			continue
		}

		candidates = append(candidates, Suggestion{
			Interval: interval.Interval{Start: slot.Start, End: slot.Start.Add(opts.Duration)},
			Weekday:  start.Weekday(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Interval.Start.Before(candidates[j].Interval.Start)
	})

	if len(candidates) > opts.MaxSuggestions {
		candidates = candidates[:opts.MaxSuggestions]
	}

	f.logger.Debug().
		Int("slots", len(slots)).
		Int("suggestions", len(candidates)).
		Dur("duration", opts.Duration).
		Msg("meeting search finished")

	return candidates, nil
}

func endsAtMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0
}

func inPreferredWindow(start, end time.Time, windows []models.Window) bool {
	startMin := start.Hour()*60 + start.Minute()
	endMin := end.Hour()*60 + end.Minute()
	if endsAtMidnight(end) {
		endMin = 24 * 60
	}

	for _, w := range windows {
		wStart := w.Start.Hour*60 + w.Start.Minute
		wEnd := w.End.Hour*60 + w.End.Minute
		if startMin >= wStart && endMin <= wEnd {
			return true
		}
	}
	return false
}
