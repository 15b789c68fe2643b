/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package conflict

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/interval"
	"github.com/friendsincode/verdandi/internal/models"
	"github.com/friendsincode/verdandi/internal/timeline"
)

var day = time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func fixed(t *testing.T, id, title string, start, end time.Time) models.FixedActivity {
	t.Helper()
	iv, err := interval.New(start, end)
	if err != nil {
		t.Fatalf("interval for %s: %v", id, err)
	}
	act, err := models.NewFixedActivity(id, title, iv, models.PriorityHigh)
	if err != nil {
		t.Fatalf("activity %s: %v", id, err)
	}
	return act
}

func TestPlaceDetectsSingleConflict(t *testing.T) {
	detector := NewDetector(zerolog.Nop())

	tl := timeline.New()
	if err := tl.Insert(timeline.Item{
		Interval:   interval.Interval{Start: at(9, 0), End: at(10, 0)},
		ActivityID: "m1",
		Title:      "Meeting A",
	}); err != nil {
		t.Fatalf("seed timeline: %v", err)
	}

	tl, conflicts, err := detector.Place([]models.FixedActivity{
		fixed(t, "m3", "Standup", at(9, 30), at(9, 45)),
	}, tl)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.ExistingID != "m1" || c.NewID != "m3" {
		t.Errorf("conflict ids = %s/%s, want m1/m3", c.ExistingID, c.NewID)
	}
	if !c.OverlapStart.Equal(at(9, 30)) || !c.OverlapEnd.Equal(at(9, 45)) {
		t.Errorf("overlap = %s..%s, want 09:30..09:45", c.OverlapStart, c.OverlapEnd)
	}
	if tl.Len() != 1 {
		t.Fatalf("conflicting activity was inserted; timeline has %d items", tl.Len())
	}
}

func TestPlaceFullyOverlappingPairKeepsEarlierProcessed(t *testing.T) {
	detector := NewDetector(zerolog.Nop())

	// Same interval; given in reverse input order. Sorting is stable on
	// start time, so input order breaks the tie: "first" wins.
	first := fixed(t, "f1", "First", at(9, 0), at(10, 0))
	second := fixed(t, "f2", "Second", at(9, 0), at(10, 0))

	tl, conflicts, err := detector.Place([]models.FixedActivity{first, second}, nil)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if tl.Len() != 1 {
		t.Fatalf("timeline has %d items, want exactly 1", tl.Len())
	}
	if got := tl.Snapshot()[0].ActivityID; got != "f1" {
		t.Fatalf("surviving activity = %s, want f1", got)
	}
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want exactly 1", len(conflicts))
	}
	if conflicts[0].ExistingID != "f1" || conflicts[0].NewID != "f2" {
		t.Fatalf("conflict = %s vs %s, want f1 vs f2", conflicts[0].ExistingID, conflicts[0].NewID)
	}
}

func TestPlaceProcessesInStartOrder(t *testing.T) {
	detector := NewDetector(zerolog.Nop())

	// Given out of order: the later activity overlaps the earlier one, so
	// after the start-time sort the earlier one must win.
	late := fixed(t, "late", "Late", at(9, 30), at(10, 30))
	early := fixed(t, "early", "Early", at(9, 0), at(10, 0))

	tl, conflicts, err := detector.Place([]models.FixedActivity{late, early}, nil)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if tl.Len() != 1 || tl.Snapshot()[0].ActivityID != "early" {
		t.Fatalf("expected only 'early' placed, got %v", tl.Snapshot())
	}
	if len(conflicts) != 1 || conflicts[0].NewID != "late" {
		t.Fatalf("expected one conflict for 'late', got %v", conflicts)
	}
}

func TestPlaceAdjacentActivitiesDoNotConflict(t *testing.T) {
	detector := NewDetector(zerolog.Nop())

	tl, conflicts, err := detector.Place([]models.FixedActivity{
		fixed(t, "a", "Morning", at(9, 0), at(10, 0)),
		fixed(t, "b", "Next", at(10, 0), at(11, 0)),
	}, nil)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if len(conflicts) != 0 {
		t.Fatalf("adjacent activities reported conflicts: %v", conflicts)
	}
	if tl.Len() != 2 {
		t.Fatalf("timeline has %d items, want 2", tl.Len())
	}
}

func TestPlaceReportsEveryOverlappingItem(t *testing.T) {
	detector := NewDetector(zerolog.Nop())

	tl, conflicts, err := detector.Place([]models.FixedActivity{
		fixed(t, "a", "A", at(9, 0), at(10, 0)),
		fixed(t, "b", "B", at(10, 0), at(11, 0)),
		fixed(t, "c", "C", at(9, 30), at(10, 30)), // overlaps both
	}, nil)
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if tl.Len() != 2 {
		t.Fatalf("timeline has %d items, want 2", tl.Len())
	}
	if len(conflicts) != 2 {
		t.Fatalf("got %d conflicts, want 2: %v", len(conflicts), conflicts)
	}
	for _, c := range conflicts {
		if c.NewID != "c" {
			t.Errorf("conflict new id = %s, want c", c.NewID)
		}
	}
}
