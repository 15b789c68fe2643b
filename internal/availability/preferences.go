/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
)

// ErrUnknownTimezone indicates an unrecognized timezone identifier.
var ErrUnknownTimezone = errors.New("unknown timezone identifier")

// FilterByPreferences intersects free intervals with the user's working
// hours and days off, evaluated in the user's timezone.
//
// Each free interval is walked day by day from its start date to its end
// date. An interval ending exactly at local midnight belongs to the
// previous day only. Days off drop the whole day; weekdays without a
// working window contribute nothing (no default availability). The result
// is re-sorted by start because a multi-day interval emits its pieces in
// day order, which may interleave with later intervals.
func FilterByPreferences(free []interval.Interval, sctx models.ScheduleContext) ([]interval.Interval, error) {
	loc, err := time.LoadLocation(sctx.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, sctx.Timezone)
	}

	filtered := []interval.Interval{}

	for i, slot := range free {
		if err := slot.Validate(); err != nil {
			return nil, fmt.Errorf("free interval %d: %w", i, err)
		}

		slotStart := slot.Start.In(loc)
		slotEnd := slot.End.In(loc)

		day := midnightOf(slotStart, loc)
		lastDay := midnightOf(slotEnd, loc)
		if slotEnd.Equal(lastDay) {
			// Ends exactly at midnight: the end date belongs to the
			// previous day only.
			lastDay = lastDay.AddDate(0, 0, -1)
		}

		for !day.After(lastDay) {
			if sctx.DaysOff.Contains(day) {
				day = day.AddDate(0, 0, 1)
				continue
			}

			window, ok := sctx.WorkingHours[day.Weekday()]
			if !ok {
				day = day.AddDate(0, 0, 1)
				continue
			}

			workStart := window.Start.At(day, loc)
			workEnd := window.End.At(day, loc)

			start := interval.MaxTime(slotStart, workStart)
			end := interval.MinTime(slotEnd, workEnd)
			if end.After(start) {
				filtered = append(filtered, interval.Interval{Start: start, End: end})
			}

			day = day.AddDate(0, 0, 1)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})

	return filtered, nil
}

func midnightOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
