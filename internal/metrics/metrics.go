// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package metrics provides Prometheus instrumentation for the pipeline:
// ingestion volume, per-stage latency, DuckDB query performance, and
// classification outcomes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsIngested is the number of sessions in the current run's
	// normalized table.
	SessionsIngested = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "viatrix_sessions_ingested",
			Help: "Number of normalized sessions in the current run",
		},
	)

	// VocabularySize is the number of distinct cities in the current
	// run's vocabulary.
	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "viatrix_vocabulary_size",
			Help: "Number of distinct cities in the current run",
		},
	)

	// StageDuration tracks per-stage pipeline latency.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "viatrix_pipeline_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"stage"},
	)

	// PipelineRuns counts completed pipeline runs by outcome.
	PipelineRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viatrix_pipeline_runs_total",
			Help: "Total number of pipeline runs by status",
		},
		[]string{"status"},
	)

	// IntentSessions counts classified sessions by label.
	IntentSessions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "viatrix_intent_sessions_total",
			Help: "Total number of classified sessions by intent label",
		},
		[]string{"label"},
	)

	// DBQueryDuration tracks DuckDB session query latency.
	DBQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "viatrix_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB session queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DBQueryErrors counts DuckDB session query failures.
	DBQueryErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "viatrix_duckdb_query_errors_total",
			Help: "Total number of DuckDB session query errors",
		},
	)
)
