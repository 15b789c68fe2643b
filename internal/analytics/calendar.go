/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package analytics summarizes how a calendar's time was spent.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/friendsincode/verdandi/internal/interval"
)

// Category buckets a calendar event by what it was for.
type Category string

const (
	CategoryInterviews Category = "interviews"
	CategoryOneOnOnes  Category = "one_on_ones"
	CategoryMeetings   Category = "meetings"
	CategoryFocusTime  Category = "focus_time"
	CategoryBreaks     Category = "breaks"
	CategoryUncategorized Category = "other"
)

// Event is a past calendar entry under analysis.
type Event struct {
	Title       string
	Interval    interval.Interval
	Attendees   int
	Transparent bool // marked free/transparent, does not consume time
	Cancelled   bool
}

// Categorize buckets an event from its title keywords and attendee count.
func Categorize(ev Event) Category {
	title := strings.ToLower(ev.Title)

	if ev.Attendees > 1 {
		switch {
		case containsAny(title, "interview", "candidate"):
			return CategoryInterviews
		case containsAny(title, "1:1", "one-on-one", "sync"):
			return CategoryOneOnOnes
		default:
			return CategoryMeetings
		}
	}
	switch {
	case containsAny(title, "focus", "work", "deep work"):
		return CategoryFocusTime
	case containsAny(title, "lunch", "break", "coffee"):
		return CategoryBreaks
	default:
		return CategoryUncategorized
	}
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// CategoryStats aggregates events in one category.
type CategoryStats struct {
	Count   int           `json:"count"`
	Total   time.Duration `json:"total"`
	Average time.Duration `json:"average"`
}

// DayStats aggregates events on one calendar date.
type DayStats struct {
	Count int           `json:"count"`
	Total time.Duration `json:"total"`
}

// DaySummary is one entry of the busiest-days ranking.
type DaySummary struct {
	Date  string        `json:"date"` // YYYY-MM-DD
	Count int           `json:"count"`
	Total time.Duration `json:"total"`
}

// Report is the full analytics result.
type Report struct {
	TotalEvents            int                       `json:"total_events"`
	TotalTime              time.Duration             `json:"total_time"`
	ByCategory             map[Category]CategoryStats `json:"by_category"`
	ByDay                  map[string]DayStats        `json:"by_day"`
	BusiestDays            []DaySummary               `json:"busiest_days"`
	AverageMeetingDuration time.Duration              `json:"average_meeting_duration"`
	AverageEventsPerDay    float64                    `json:"average_events_per_day"`
	Insights               []string                   `json:"insights"`
}

// Analyzer computes calendar reports.
type Analyzer struct {
	logger zerolog.Logger
}

// NewAnalyzer creates a calendar analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		logger: logger.With().Str("component", "calendar_analytics").Logger(),
	}
}

// Analyze aggregates the events over the analysis window. Transparent and
// cancelled events are skipped. daysAnalyzed scales the per-day average
// and must be at least 1.
func (a *Analyzer) Analyze(events []Event, daysAnalyzed int) Report {
	if daysAnalyzed < 1 {
		daysAnalyzed = 1
	}

	report := Report{
		ByCategory: map[Category]CategoryStats{},
		ByDay:      map[string]DayStats{},
	}

	counted := 0
	for _, ev := range events {
		if ev.Transparent || ev.Cancelled {
			continue
		}
		if ev.Interval.Validate() != nil {
			continue
		}

		duration := ev.Interval.Duration()
		counted++
		report.TotalTime += duration

		cat := Categorize(ev)
		cs := report.ByCategory[cat]
		cs.Count++
		cs.Total += duration
		report.ByCategory[cat] = cs

		dayKey := ev.Interval.Start.Format("2006-01-02")
		ds := report.ByDay[dayKey]
		ds.Count++
		ds.Total += duration
		report.ByDay[dayKey] = ds
	}

	report.TotalEvents = counted
	if counted > 0 {
		report.AverageMeetingDuration = report.TotalTime / time.Duration(counted)
	}
	report.AverageEventsPerDay = float64(counted) / float64(daysAnalyzed)

	for cat, cs := range report.ByCategory {
		if cs.Count > 0 {
			cs.Average = cs.Total / time.Duration(cs.Count)
			report.ByCategory[cat] = cs
		}
	}

	report.BusiestDays = busiestDays(report.ByDay, 5)
	report.Insights = deriveInsights(report)

	a.logger.Debug().
		Int("events", counted).
		Dur("total", report.TotalTime).
		Msg("calendar analysis finished")

	return report
}

// busiestDays ranks days by total scheduled time, descending.
func busiestDays(byDay map[string]DayStats, limit int) []DaySummary {
	out := make([]DaySummary, 0, len(byDay))
	for date, stats := range byDay {
		out = append(out, DaySummary{Date: date, Count: stats.Count, Total: stats.Total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Date < out[j].Date
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func deriveInsights(r Report) []string {
	var insights []string

	if r.TotalTime > 0 {
		meetingTime := r.ByCategory[CategoryMeetings].Total +
			r.ByCategory[CategoryOneOnOnes].Total +
			r.ByCategory[CategoryInterviews].Total
		pct := float64(meetingTime) / float64(r.TotalTime) * 100
		if pct > 50 {
			insights = append(insights, fmt.Sprintf("meetings consume %.0f%% of scheduled time", pct))
		}
	}

	if r.AverageMeetingDuration > time.Hour {
		insights = append(insights, fmt.Sprintf("average event runs %s; consider shorter defaults", r.AverageMeetingDuration.Round(time.Minute)))
	}

	for _, day := range r.BusiestDays {
		if day.Count > 6 {
			insights = append(insights, fmt.Sprintf("%s had %d events; consider blocking focus time", day.Date, day.Count))
			break
		}
	}

	return insights
}
