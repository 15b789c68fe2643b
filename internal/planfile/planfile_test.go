/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package planfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const samplePlan = `
calendar_id: primary
user_id: user-1
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
busy:
  - start: 2025-05-05T10:00:00Z
    end: 2025-05-05T12:00:00Z
fixed:
  - id: f-review
    title: Design review
    start: 2025-05-05T13:00:00Z
    end: 2025-05-05T14:00:00Z
    priority: 10
    rrule: FREQ=WEEKLY;COUNT=4
flexible:
  - id: t-deep
    title: Deep work
    duration_minutes: 180
    priority: 10
    category: work
preferences:
  timezone: Europe/Oslo
  working_hours:
    monday:
      start: "08:00"
      end: "16:00"
    Friday:
      start: "08:00"
      end: "12:00"
  days_off:
    - 2025-05-17
`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	return path
}

func TestLoadSamplePlan(t *testing.T) {
	f, err := Load(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if f.CalendarID != "primary" || f.UserID != "user-1" {
		t.Errorf("ids = %q/%q", f.CalendarID, f.UserID)
	}

	req, err := f.PlanRequest()
	if err != nil {
		t.Fatalf("plan request: %v", err)
	}
	if !req.RangeStart.Equal(time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("range start = %v", req.RangeStart)
	}
	if len(req.Fixed) != 1 || req.Fixed[0].RRule != "FREQ=WEEKLY;COUNT=4" {
		t.Fatalf("fixed = %+v", req.Fixed)
	}
	if len(req.Flexible) != 1 || req.Flexible[0].EstimatedDuration != 3*time.Hour {
		t.Fatalf("flexible = %+v", req.Flexible)
	}

	busy, err := f.BusyIntervals(context.Background(), "primary", req.RangeStart, req.RangeEnd)
	if err != nil {
		t.Fatalf("busy intervals: %v", err)
	}
	if len(busy) != 1 || !busy[0].Start.Equal(time.Date(2025, 5, 5, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("busy = %+v", busy)
	}
}

func TestScheduleContextFromFile(t *testing.T) {
	f, err := Load(writePlan(t, samplePlan))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sctx, err := f.ScheduleContext(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("schedule context: %v", err)
	}

	if sctx.Timezone != "Europe/Oslo" {
		t.Errorf("timezone = %q", sctx.Timezone)
	}
	if len(sctx.WorkingHours) != 2 {
		t.Fatalf("got %d working-hour days, want 2", len(sctx.WorkingHours))
	}
	// Weekday names are case-insensitive.
	friday, ok := sctx.WorkingHours[time.Friday]
	if !ok {
		t.Fatal("Friday window missing")
	}
	if friday.End.String() != "12:00" {
		t.Errorf("friday end = %s", friday.End)
	}
	if !sctx.DaysOff.Contains(time.Date(2025, 5, 17, 10, 0, 0, 0, time.UTC)) {
		t.Error("day off missing")
	}
}

func TestScheduleContextDefaultsWithoutPreferences(t *testing.T) {
	const minimal = `
user_id: user-1
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
`
	f, err := Load(writePlan(t, minimal))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	sctx, err := f.ScheduleContext(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("schedule context: %v", err)
	}
	if sctx.Timezone != "UTC" || len(sctx.WorkingHours) != 5 {
		t.Errorf("defaults not applied: tz=%q days=%d", sctx.Timezone, len(sctx.WorkingHours))
	}
}

func TestLoadRejectsBadPlans(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "inverted range",
			yaml: `
range:
  start: 2025-05-06T00:00:00Z
  end: 2025-05-05T00:00:00Z
`,
		},
		{
			name: "busy interval without end",
			yaml: `
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
busy:
  - start: 2025-05-05T10:00:00Z
`,
		},
		{
			name: "fixed without title",
			yaml: `
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
fixed:
  - id: f1
    start: 2025-05-05T10:00:00Z
    end: 2025-05-05T11:00:00Z
`,
		},
		{
			name: "flexible with zero duration",
			yaml: `
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
flexible:
  - id: t1
    title: Task
    duration_minutes: 0
`,
		},
		{
			name: "unknown weekday",
			yaml: `
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
preferences:
  working_hours:
    frideg:
      start: "09:00"
      end: "17:00"
`,
		},
		{
			name: "unknown timezone",
			yaml: `
range:
  start: 2025-05-05T00:00:00Z
  end: 2025-05-06T00:00:00Z
preferences:
  timezone: Atlantis/Sunken_City
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writePlan(t, tc.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
