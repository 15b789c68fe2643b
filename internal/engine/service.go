/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package engine composes the availability and scheduling pipeline: busy
// intervals become free slots, preferences carve those down, fixed
// activities are placed with conflict detection, and the flexible backlog
// is first-fit assigned into what remains.
//
// The engine itself is pure and stateless across invocations; everything
// with side effects lives behind the collaborator interfaces.
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/availability"
	"github.com/friendsincode/verdandi/internal/conflict"
	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
	"github.com/friendsincode/verdandi/internal/recurrence"
	"github.com/friendsincode/verdandi/internal/scheduler"
	"github.com/friendsincode/verdandi/internal/telemetry"
	"github.com/friendsincode/verdandi/internal/timeline"
)

// BusyIntervalSource supplies busy intervals for a calendar. The source
// owns authentication, pagination, retries, and rate limiting; returned
// intervals carry no ordering guarantee.
type BusyIntervalSource interface {
	BusyIntervals(ctx context.Context, calendarID string, rangeStart, rangeEnd time.Time) ([]interval.Interval, error)
}

// PreferenceSource supplies a user's scheduling context.
type PreferenceSource interface {
	ScheduleContext(ctx context.Context, userID string) (models.ScheduleContext, error)
}

// Service wires the pipeline together.
type Service struct {
	busy      BusyIntervalSource
	prefs     PreferenceSource
	detector  *conflict.Detector
	scheduler *scheduler.Scheduler
	logger    zerolog.Logger
}

// New creates an engine service.
func New(busy BusyIntervalSource, prefs PreferenceSource, logger zerolog.Logger) *Service {
	return &Service{
		busy:      busy,
		prefs:     prefs,
		detector:  conflict.NewDetector(logger),
		scheduler: scheduler.New(logger),
		logger:    logger.With().Str("component", "engine").Logger(),
	}
}

// AvailableSlots runs busy -> free -> preference filter for one calendar
// and user over [rangeStart, rangeEnd).
func (s *Service) AvailableSlots(ctx context.Context, calendarID, userID string, rangeStart, rangeEnd time.Time) ([]interval.Interval, error) {
	busy, err := s.busy.BusyIntervals(ctx, calendarID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch busy intervals: %w", err)
	}

	free, err := availability.ComputeFreeSlots(busy, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	sctx, err := s.prefs.ScheduleContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	filtered, err := availability.FilterByPreferences(free, sctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("calendar_id", calendarID).
		Str("user_id", userID).
		Int("busy", len(busy)).
		Int("free", len(free)).
		Int("filtered", len(filtered)).
		Msg("available slots computed")

	return filtered, nil
}

// PlanRequest describes one scheduling run.
type PlanRequest struct {
	CalendarID string
	UserID     string
	RangeStart time.Time
	RangeEnd   time.Time
	Fixed      []models.FixedActivity
	Flexible   []models.FlexibleActivity
}

// PlanResult is the outcome of a scheduling run.
type PlanResult struct {
	FreeSlots   []interval.Interval       `json:"free_slots"`
	Timeline    []timeline.Item           `json:"timeline"`
	Conflicts   []conflict.Conflict       `json:"conflicts"`
	Assignments scheduler.Assignment      `json:"assignments"`
	Unscheduled []models.FlexibleActivity `json:"unscheduled"`
}

// Plan runs the full pipeline:
//
//  1. expand recurring fixed activities into occurrences in range,
//  2. place fixed occurrences on a fresh timeline, collecting conflicts,
//  3. compute preference-filtered free slots from the busy calendar,
//  4. carve the placed fixed occurrences out of those slots,
//  5. first-fit the flexible backlog (sorted by descending priority,
//     input order breaking ties) into what is left.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	started := time.Now()

	result, err := s.plan(ctx, req)
	if err != nil {
		telemetry.PlanErrors.Inc()
		return nil, err
	}

	telemetry.PlansTotal.Inc()
	telemetry.PlanDuration.Observe(time.Since(started).Seconds())
	telemetry.FreeSlotsPerPlan.Observe(float64(len(result.FreeSlots)))
	telemetry.ConflictsDetected.Add(float64(len(result.Conflicts)))
	telemetry.TasksUnscheduled.Add(float64(len(result.Unscheduled)))

	s.logger.Info().
		Str("user_id", req.UserID).
		Int("fixed_placed", len(result.Timeline)).
		Int("conflicts", len(result.Conflicts)).
		Int("assigned", len(result.Assignments)).
		Int("unscheduled", len(result.Unscheduled)).
		Dur("elapsed", time.Since(started)).
		Msg("plan computed")

	return result, nil
}

func (s *Service) plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	if err := interval.ValidateRange(req.RangeStart, req.RangeEnd); err != nil {
		return nil, err
	}

	occurrences, err := recurrence.ExpandAll(req.Fixed, req.RangeStart, req.RangeEnd)
	if err != nil {
		return nil, err
	}

	tl, conflicts, err := s.detector.Place(occurrences, timeline.New())
	if err != nil {
		return nil, err
	}

	slots, err := s.AvailableSlots(ctx, req.CalendarID, req.UserID, req.RangeStart, req.RangeEnd)
	if err != nil {
		return nil, err
	}

	slots, err = subtractPlaced(slots, tl.Snapshot())
	if err != nil {
		return nil, err
	}

	tasks := make([]models.FlexibleActivity, len(req.Flexible))
	copy(tasks, req.Flexible)
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority > tasks[j].Priority
	})

	assignments, unscheduled, err := s.scheduler.Assign(tasks, slots)
	if err != nil {
		return nil, err
	}

	return &PlanResult{
		FreeSlots:   slots,
		Timeline:    tl.Snapshot(),
		Conflicts:   conflicts,
		Assignments: assignments,
		Unscheduled: unscheduled,
	}, nil
}

// subtractPlaced removes placed fixed occurrences from the free slots by
// re-running the complement within each slot.
func subtractPlaced(slots []interval.Interval, placed []timeline.Item) ([]interval.Interval, error) {
	if len(placed) == 0 {
		return slots, nil
	}

	busy := make([]interval.Interval, 0, len(placed))
	for _, item := range placed {
		busy = append(busy, item.Interval)
	}

	var out []interval.Interval
	for _, slot := range slots {
		free, err := availability.ComputeFreeSlots(busy, slot.Start, slot.End)
		if err != nil {
			return nil, err
		}
		out = append(out, free...)
	}
	return out, nil
}
