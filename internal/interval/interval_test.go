/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package interval

import (
	"errors"
	"testing"
	"time"
)

var base = time.Date(2025, 5, 5, 9, 0, 0, 0, time.UTC)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"valid", base, base.Add(time.Hour), nil},
		{"zero start", time.Time{}, base, ErrNaiveTimestamp},
		{"zero end", base, time.Time{}, ErrNaiveTimestamp},
		{"end equals start", base, base, ErrInvalidInterval},
		{"end before start", base.Add(time.Hour), base, ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRange(t *testing.T) {
	if err := ValidateRange(base, base.Add(time.Minute)); err != nil {
		t.Fatalf("valid range rejected: %v", err)
	}
	if err := ValidateRange(base.Add(time.Minute), base); !errors.Is(err, ErrRangeOrder) {
		t.Fatalf("reversed range error = %v, want ErrRangeOrder", err)
	}
	if err := ValidateRange(time.Time{}, base); !errors.Is(err, ErrNaiveTimestamp) {
		t.Fatalf("zero start error = %v, want ErrNaiveTimestamp", err)
	}
}

func TestOverlapsIsStrict(t *testing.T) {
	a := Interval{Start: base, End: base.Add(time.Hour)}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"identical", a, true},
		{"contained", Interval{Start: base.Add(10 * time.Minute), End: base.Add(20 * time.Minute)}, true},
		{"partial", Interval{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)}, true},
		{"touching after", Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}, false},
		{"touching before", Interval{Start: base.Add(-time.Hour), End: base}, false},
		{"disjoint", Interval{Start: base.Add(3 * time.Hour), End: base.Add(4 * time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	a := Interval{Start: base, End: base.Add(time.Hour)}
	b := Interval{Start: base.Add(30 * time.Minute), End: base.Add(2 * time.Hour)}

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected intersection")
	}
	if !got.Start.Equal(base.Add(30*time.Minute)) || !got.End.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected intersection: %s", got)
	}

	c := Interval{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}
	if _, ok := a.Intersect(c); ok {
		t.Fatal("touching intervals must not intersect")
	}
}

func TestIntersectCrossZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// Same instants expressed in different zones must intersect normally.
	a := Interval{Start: base, End: base.Add(time.Hour)}
	b := Interval{Start: base.In(ny), End: base.Add(2 * time.Hour).In(ny)}

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("expected intersection across zones")
	}
	if got.Duration() != time.Hour {
		t.Fatalf("intersection duration = %s, want 1h", got.Duration())
	}
}
