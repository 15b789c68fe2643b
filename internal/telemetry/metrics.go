/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package telemetry exposes engine metrics.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PlansTotal counts completed scheduling plans.
	PlansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdandi_plans_total",
		Help: "Number of scheduling plans computed.",
	})

	// PlanErrors counts plans aborted by validation or collaborator errors.
	PlanErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdandi_plan_errors_total",
		Help: "Number of scheduling plans that failed.",
	})

	// ConflictsDetected counts fixed-activity conflicts across all plans.
	ConflictsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdandi_conflicts_detected_total",
		Help: "Number of fixed-activity conflicts detected.",
	})

	// TasksUnscheduled counts flexible tasks that fit in no slot.
	TasksUnscheduled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "verdandi_tasks_unscheduled_total",
		Help: "Number of flexible tasks left unscheduled.",
	})

	// FreeSlotsPerPlan observes how many free slots survive the
	// preference filter.
	FreeSlotsPerPlan = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "verdandi_free_slots_per_plan",
		Help:    "Free slots remaining after preference filtering.",
		Buckets: prometheus.LinearBuckets(0, 5, 10),
	})

	// PlanDuration observes wall time per plan.
	PlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "verdandi_plan_duration_seconds",
		Help:    "Time spent computing a scheduling plan.",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler exposes the metrics endpoint for embedders.
func Handler() http.Handler {
	return promhttp.Handler()
}
