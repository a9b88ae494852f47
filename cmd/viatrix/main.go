// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package main is the entry point for the Viatrix batch analyzer.
//
// Viatrix processes travel-search session logs and produces two outputs
// per run: a nearest-neighbor city recommendation table and a per-session
// intent classification, both derived from a cosine similarity matrix over
// city co-occurrence in sessions.
//
// # Application Flow
//
// One invocation is one batch run:
//
//  1. Configuration: load settings from config file and environment (Koanf v2)
//  2. Session source: JSON file or a read-only DuckDB database
//  3. Pipeline: ingest, vectorize, similarity matrix, recommend, classify
//  4. Outputs: recommendations and session intents written as JSON files
//
// The process exits 0 on a completed run and non-zero on any failure.
// Nothing is cached between runs; rerunning on unchanged input produces
// byte-identical outputs.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the VIATRIX_ prefix
//   - Config file (config.yaml, or VIATRIX_CONFIG_PATH)
//   - Built-in defaults
//
// # Example Usage
//
// Analyze a JSON session export:
//
//	export VIATRIX_INPUT_SOURCE=json
//	export VIATRIX_INPUT_PATH=sessions.json
//	./viatrix
//
// Analyze sessions stored in DuckDB:
//
//	export VIATRIX_INPUT_SOURCE=duckdb
//	export VIATRIX_DATABASE_PATH=sessions.duckdb
//	./viatrix
//
// With Prometheus metrics exposed for the duration of the run:
//
//	export VIATRIX_METRICS_LISTEN=:9090
//	./viatrix
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run context; an interrupted run exits
// non-zero and leaves no partial output files behind.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viatrixhq/viatrix/internal/config"
	"github.com/viatrixhq/viatrix/internal/database"
	"github.com/viatrixhq/viatrix/internal/logging"
	"github.com/viatrixhq/viatrix/internal/pipeline"
	"github.com/viatrixhq/viatrix/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("source", cfg.Input.Source).
		Msg("Starting Viatrix batch run")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, cleanup, err := openSource(cfg)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to open session source")
		return 1
	}
	defer cleanup()

	stopMetrics := startMetricsServer(cfg)
	defer stopMetrics()

	result, err := pipeline.New(cfg, source).Run(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Pipeline run failed")
		return 1
	}

	logging.Info().
		Str("run_id", result.RunID).
		Int("sessions", result.SessionCount).
		Int("cities", result.VocabularySize).
		Msg("Batch run completed")
	return 0
}

// openSource selects the session source from configuration. The cleanup
// function is always safe to call.
func openSource(cfg *config.Config) (session.Source, func(), error) {
	switch cfg.Input.Source {
	case "duckdb":
		store, err := database.Open(&cfg.Database)
		if err != nil {
			return nil, func() {}, err
		}
		cleanup := func() {
			if err := store.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing database")
			}
		}
		return store, cleanup, nil
	default:
		return session.NewJSONSource(cfg.Input.Path), func() {}, nil
	}
}

// startMetricsServer exposes /metrics when a listen address is configured.
// The server lives for the duration of the run; the returned function
// shuts it down within the configured timeout.
func startMetricsServer(cfg *config.Config) func() {
	if cfg.Metrics.Listen == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: cfg.Metrics.Listen, Handler: mux}

	go func() {
		logging.Info().Str("addr", cfg.Metrics.Listen).Msg("Metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("Metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Metrics.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("Metrics server shutdown failed")
		}
	}
}
