/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/friendsincode/verdandi/internal/engine"
	"github.com/friendsincode/verdandi/internal/models"
	"github.com/friendsincode/verdandi/internal/planfile"
	"github.com/friendsincode/verdandi/internal/prefs"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.UserPreference{},
		&models.WorkingHoursRule{},
		&models.DayOff{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

const weekPlan = `
calendar_id: primary
user_id: alice
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-07T00:00:00Z
busy:
  - start: 2025-05-05T10:00:00Z
    end: 2025-05-05T12:00:00Z
fixed:
  - id: f-standup
    title: Standup
    start: 2025-05-05T09:00:00Z
    end: 2025-05-05T09:15:00Z
    rrule: FREQ=DAILY;COUNT=5
flexible:
  - id: t-deep
    title: Deep work
    duration_minutes: 120
    priority: 10
    category: work
`

// TestPlanFromFileWithStoredPreferences runs the whole pipeline: busy
// intervals from a plan file, preferences from the database store, fixed
// recurrence expansion, and first-fit assignment.
func TestPlanFromFileWithStoredPreferences(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	store := prefs.NewStore(setupTestDB(t), logger)

	window, err := models.ParseWindow("09:00", "13:00")
	if err != nil {
		t.Fatalf("parse window: %v", err)
	}
	sctx := models.NewScheduleContext("UTC", models.WorkingHours{
		time.Monday:  window,
		time.Tuesday: window,
	}, nil)
	if err := store.Save(ctx, "alice", sctx); err != nil {
		t.Fatalf("save preferences: %v", err)
	}

	path := filepath.Join(t.TempDir(), "week.yaml")
	if err := os.WriteFile(path, []byte(weekPlan), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	f, err := planfile.Load(path)
	if err != nil {
		t.Fatalf("load plan: %v", err)
	}

	svc := engine.New(f, store, logger)

	req, err := f.PlanRequest()
	if err != nil {
		t.Fatalf("plan request: %v", err)
	}
	result, err := svc.Plan(ctx, req)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	// The standup recurs Monday and Tuesday inside the range.
	if len(result.Timeline) != 2 {
		t.Fatalf("got %d placed occurrences, want 2: %+v", len(result.Timeline), result.Timeline)
	}
	if len(result.Conflicts) != 0 {
		t.Fatalf("unexpected conflicts: %+v", result.Conflicts)
	}

	// Monday 09:15-10:00 and 12:00-13:00 are too short for two hours of
	// deep work; Tuesday 09:15-13:00 is the first slot that fits.
	assigned, ok := result.Assignments["t-deep"]
	if !ok {
		t.Fatalf("deep work not assigned: %+v", result.Assignments)
	}
	wantStart := time.Date(2025, 5, 6, 9, 15, 0, 0, time.UTC)
	if !assigned.Start.Equal(wantStart) || !assigned.End.Equal(wantStart.Add(2*time.Hour)) {
		t.Fatalf("deep work = %v-%v, want Tuesday 09:15-11:15", assigned.Start, assigned.End)
	}

	if len(result.Unscheduled) != 0 {
		t.Fatalf("unexpected unscheduled tasks: %+v", result.Unscheduled)
	}
}
