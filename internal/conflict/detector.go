/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package conflict places fixed activities onto a timeline and reports
// overlaps. It is a one-pass placement, not a solver: already-placed
// items are never rearranged.
package conflict

import (
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
	"github.com/friendsincode/verdandi/internal/timeline"
)

// Conflict describes a detected overlap between a new fixed activity and
// an item already on the timeline.
type Conflict struct {
	ExistingID    string    `json:"existing_id"`
	NewID         string    `json:"new_id"`
	ExistingTitle string    `json:"existing_title"`
	NewTitle      string    `json:"new_title"`
	OverlapStart  time.Time `json:"overlap_start"`
	OverlapEnd    time.Time `json:"overlap_end"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("conflict between %q and %q from %s to %s",
		c.ExistingTitle, c.NewTitle,
		c.OverlapStart.Format(time.RFC3339), c.OverlapEnd.Format(time.RFC3339))
}

// Detector places fixed activities and records conflicts.
type Detector struct {
	logger zerolog.Logger
}

// NewDetector creates a conflict detector.
func NewDetector(logger zerolog.Logger) *Detector {
	return &Detector{
		logger: logger.With().Str("component", "conflict_detector").Logger(),
	}
}

// Place processes fixed activities in ascending start order (stable, so
// activities sharing a start time keep their input order) against the
// timeline, which may be pre-populated. Conflicting activities are not
// inserted: existing placements always win. Returns the mutated timeline
// and every detected conflict.
func (d *Detector) Place(activities []models.FixedActivity, tl *timeline.Timeline) (*timeline.Timeline, []Conflict, error) {
	if tl == nil {
		tl = timeline.New()
	}

	sorted := make([]models.FixedActivity, len(activities))
	copy(sorted, activities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.Start.Before(sorted[j].Interval.Start)
	})

	conflicts := []Conflict{}

	for _, activity := range sorted {
		overlapping, err := tl.Overlapping(activity.Interval.Start, activity.Interval.End)
		if err != nil {
			return tl, conflicts, fmt.Errorf("query timeline for %q: %w", activity.Title, err)
		}

		if len(overlapping) > 0 {
			for _, existing := range overlapping {
				conflicts = append(conflicts, Conflict{
					ExistingID:    existing.ActivityID,
					NewID:         activity.ID,
					ExistingTitle: existing.Title,
					NewTitle:      activity.Title,
					OverlapStart:  interval.MaxTime(activity.Interval.Start, existing.Interval.Start),
					OverlapEnd:    interval.MinTime(activity.Interval.End, existing.Interval.End),
				})
			}
			d.logger.Warn().
				Str("activity_id", activity.ID).
				Str("title", activity.Title).
				Int("overlaps", len(overlapping)).
				Msg("fixed activity conflicts with existing placement, skipping")
			continue
		}

		if err := tl.Insert(timeline.Item{
			Interval:   activity.Interval,
			ActivityID: activity.ID,
			Title:      activity.Title,
		}); err != nil {
			return tl, conflicts, fmt.Errorf("place %q: %w", activity.Title, err)
		}
	}

	d.logger.Debug().
		Int("placed", tl.Len()).
		Int("conflicts", len(conflicts)).
		Msg("fixed activity placement finished")

	return tl, conflicts, nil
}
