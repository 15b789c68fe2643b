/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timeline provides the ordered interval index used for conflict
// detection. A Timeline is created, populated, and discarded within a
// single scheduling call; it is not safe for concurrent use and does not
// need to be.
package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/friendsincode/verdandi/internal/interval"
)

// Item is an activity placed onto the timeline.
type Item struct {
	Interval   interval.Interval `json:"interval"`
	ActivityID string            `json:"activity_id"`
	Title      string            `json:"title"`
}

func (it Item) String() string {
	return fmt.Sprintf("Item(%s %q %s)", it.ActivityID, it.Title, it.Interval)
}

// Timeline holds placed items sorted by (start, end). Unsorted state is
// never observable.
type Timeline struct {
	items []Item
}

// New creates an empty timeline.
func New() *Timeline {
	return &Timeline{}
}

// Len returns the number of placed items.
func (t *Timeline) Len() int {
	return len(t.items)
}

// Insert places an item at its sorted position.
func (t *Timeline) Insert(item Item) error {
	if err := item.Interval.Validate(); err != nil {
		return err
	}

	idx := sort.Search(len(t.items), func(i int) bool {
		return !lessItem(t.items[i], item)
	})

	t.items = append(t.items, Item{})
	copy(t.items[idx+1:], t.items[idx:])
	t.items[idx] = item
	return nil
}

// Overlapping returns all items overlapping [queryStart, queryEnd). The
// test is strict: an item ending exactly at queryStart, or starting
// exactly at queryEnd, does not overlap.
func (t *Timeline) Overlapping(queryStart, queryEnd time.Time) ([]Item, error) {
	if err := interval.ValidateRange(queryStart, queryEnd); err != nil {
		return nil, err
	}

	// Items are sorted by start, so everything from the first item whose
	// start is >= queryEnd onward cannot overlap; only the prefix needs
	// the end-time check.
	limit := sort.Search(len(t.items), func(i int) bool {
		return !t.items[i].Interval.Start.Before(queryEnd)
	})

	var overlapping []Item
	for _, item := range t.items[:limit] {
		if item.Interval.End.After(queryStart) {
			overlapping = append(overlapping, item)
		}
	}
	return overlapping, nil
}

// Snapshot returns a copy of all items in order.
func (t *Timeline) Snapshot() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

// lessItem orders by start time, then end time as the tie-breaker.
func lessItem(a, b Item) bool {
	if !a.Interval.Start.Equal(b.Interval.Start) {
		return a.Interval.Start.Before(b.Interval.Start)
	}
	return a.Interval.End.Before(b.Interval.End)
}
