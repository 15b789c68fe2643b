/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package interval provides the half-open time range type used by the
// availability calculator, the timeline, and the schedulers.
package interval

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNaiveTimestamp indicates a timestamp without a usable instant.
	// Go times always carry a location, so the zero value is the closest
	// analogue of a timezone-naive timestamp and is rejected everywhere.
	ErrNaiveTimestamp = errors.New("timestamp must be set and carry an explicit offset")

	// ErrInvalidInterval indicates end <= start.
	ErrInvalidInterval = errors.New("interval end must be after start")

	// ErrRangeOrder indicates a malformed query or bounding range.
	ErrRangeOrder = errors.New("range end must be after range start")
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// New validates and constructs an Interval.
func New(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start, End: end}
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// Validate checks both endpoints and their order.
func (iv Interval) Validate() error {
	if err := ValidateInstant(iv.Start); err != nil {
		return err
	}
	if err := ValidateInstant(iv.End); err != nil {
		return err
	}
	if !iv.End.After(iv.Start) {
		return ErrInvalidInterval
	}
	return nil
}

// ValidateInstant rejects zero-value timestamps.
func ValidateInstant(t time.Time) error {
	if t.IsZero() {
		return ErrNaiveTimestamp
	}
	return nil
}

// ValidateRange checks a [start, end) query range.
func ValidateRange(start, end time.Time) error {
	if err := ValidateInstant(start); err != nil {
		return err
	}
	if err := ValidateInstant(end); err != nil {
		return err
	}
	if !end.After(start) {
		return ErrRangeOrder
	}
	return nil
}

// Duration returns End - Start.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether the two intervals share any time. The test is
// strict: intervals that merely touch (a.End == b.Start) do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Intersect returns the overlapping portion of two intervals, if any.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	start := MaxTime(iv.Start, other.Start)
	end := MinTime(iv.End, other.End)
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Contains reports whether other lies fully within iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%s, %s)", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// MaxTime returns the later of two times.
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinTime returns the earlier of two times.
func MinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
