/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package availability turns busy calendar intervals and user preferences
// into schedulable free time.
package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/friendsincode/verdandi/internal/interval"
)

// ComputeFreeSlots complements the busy intervals against the bounding
// range [rangeStart, rangeEnd) and returns the free intervals, sorted and
// pairwise non-overlapping.
//
// Busy intervals need not be pre-sorted or pre-merged: the cursor sweep
// clamps each busy interval to the range and only ever advances, so
// overlapping input collapses without a separate merge pass.
func ComputeFreeSlots(busy []interval.Interval, rangeStart, rangeEnd time.Time) ([]interval.Interval, error) {
	if err := interval.ValidateRange(rangeStart, rangeEnd); err != nil {
		return nil, err
	}
	for i, b := range busy {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("busy interval %d: %w", i, err)
		}
	}

	sorted := make([]interval.Interval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	free := []interval.Interval{}
	cursor := rangeStart

	for _, b := range sorted {
		if !b.End.After(cursor) {
			// Entirely before the cursor.
			continue
		}
		if !b.Start.Before(rangeEnd) {
			// This and all later busy intervals are out of range.
			break
		}

		effStart := interval.MaxTime(b.Start, cursor)
		effEnd := interval.MinTime(b.End, rangeEnd)

		if effStart.After(cursor) {
			free = append(free, interval.Interval{Start: cursor, End: effStart})
		}
		cursor = interval.MaxTime(cursor, effEnd)
	}

	if cursor.Before(rangeEnd) {
		free = append(free, interval.Interval{Start: cursor, End: rangeEnd})
	}

	return free, nil
}
