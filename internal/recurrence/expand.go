/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package recurrence materializes recurring fixed activities into concrete
// occurrences within a bounded range.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
)

// ExpandFixed returns the concrete occurrences of a fixed activity within
// [rangeStart, rangeEnd). An activity without an RRULE yields itself when
// its interval overlaps the range, nothing otherwise. Occurrences keep the
// activity's duration and carry derived ids so conflicts stay traceable to
// a single occurrence.
func ExpandFixed(activity models.FixedActivity, rangeStart, rangeEnd time.Time) ([]models.FixedActivity, error) {
	if err := interval.ValidateRange(rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	if err := activity.Interval.Validate(); err != nil {
		return nil, fmt.Errorf("activity %q: %w", activity.Title, err)
	}

	queryRange := interval.Interval{Start: rangeStart, End: rangeEnd}

	if activity.RRule == "" {
		if activity.Interval.Overlaps(queryRange) {
			return []models.FixedActivity{activity}, nil
		}
		return nil, nil
	}

	rr, err := rrule.StrToRRule(activity.RRule)
	if err != nil {
		return nil, fmt.Errorf("activity %q: parse rrule: %w", activity.Title, err)
	}
	rr.DTStart(activity.Interval.Start)

	duration := activity.Interval.Duration()

	// Occurrences starting before the range may still reach into it.
	occurrences := rr.Between(rangeStart.Add(-duration), rangeEnd, true)

	var expanded []models.FixedActivity
	for _, startsAt := range occurrences {
		occ := interval.Interval{Start: startsAt, End: startsAt.Add(duration)}
		if !occ.Overlaps(queryRange) {
			continue
		}
		expanded = append(expanded, models.FixedActivity{
			ID:       fmt.Sprintf("%s@%s", activity.ID, startsAt.Format("2006-01-02T15:04")),
			Title:    activity.Title,
			Interval: occ,
			Priority: activity.Priority,
		})
	}
	return expanded, nil
}

// ExpandAll expands every activity in the list and concatenates the
// occurrences.
func ExpandAll(activities []models.FixedActivity, rangeStart, rangeEnd time.Time) ([]models.FixedActivity, error) {
	var out []models.FixedActivity
	for _, activity := range activities {
		expanded, err := ExpandFixed(activity, rangeStart, rangeEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
