/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package scheduler assigns flexible tasks into free slots using a
// first-fit strategy. First-fit (not best-fit) is a deliberate
// simplification; do not upgrade it silently.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
)

// Assignment maps a task id to its assigned interval.
type Assignment map[string]interval.Interval

// Scheduler performs first-fit assignment.
type Scheduler struct {
	logger zerolog.Logger
}

// New creates a first-fit scheduler.
func New(logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With().Str("component", "firstfit_scheduler").Logger(),
	}
}

// Assign walks tasks in the caller-supplied order (expected to be
// descending priority) and places each at the start of the first slot
// whose duration is at least the task's estimate. An exact fit consumes
// the slot; otherwise the slot shrinks to its remainder. Tasks that fit
// nowhere are returned unmodified, in order, as unscheduled.
//
// The input slot list is not mutated; the scheduler works on a sorted
// copy. Complexity is O(tasks x slots).
func (s *Scheduler) Assign(tasks []models.FlexibleActivity, slots []interval.Interval) (Assignment, []models.FlexibleActivity, error) {
	for i, slot := range slots {
		if err := slot.Validate(); err != nil {
			return nil, nil, fmt.Errorf("slot %d: %w", i, err)
		}
	}

	remaining := make([]interval.Interval, len(slots))
	copy(remaining, slots)
	sort.Slice(remaining, func(i, j int) bool {
		return remaining[i].Start.Before(remaining[j].Start)
	})

	assignments := Assignment{}
	var unscheduled []models.FlexibleActivity

	for _, task := range tasks {
		if task.EstimatedDuration <= 0 {
			return nil, nil, fmt.Errorf("task %q: %w", task.Title, models.ErrInvalidDuration)
		}

		placed := false
		for i, slot := range remaining {
			if slot.Duration() < task.EstimatedDuration {
				continue
			}

			assigned := interval.Interval{
				Start: slot.Start,
				End:   slot.Start.Add(task.EstimatedDuration),
			}
			assignments[task.ID] = assigned

			if slot.Duration() == task.EstimatedDuration {
				// Exact fit: the slot is fully consumed.
				remaining = append(remaining[:i], remaining[i+1:]...)
			} else {
				remaining[i] = interval.Interval{Start: assigned.End, End: slot.End}
			}

			s.logger.Debug().
				Str("task_id", task.ID).
				Str("title", task.Title).
				Time("start", assigned.Start).
				Time("end", assigned.End).
				Msg("task assigned")
			placed = true
			break
		}

		if !placed {
			unscheduled = append(unscheduled, task)
			s.logger.Debug().
				Str("task_id", task.ID).
				Str("title", task.Title).
				Dur("duration", task.EstimatedDuration).
				Msg("no slot long enough, task unscheduled")
		}
	}

	s.logger.Info().
		Int("scheduled", len(assignments)).
		Int("unscheduled", len(unscheduled)).
		Msg("first-fit assignment finished")

	return assignments, unscheduled, nil
}
