// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package config loads Viatrix configuration via Koanf v2 with layered
// sources, highest priority last:
//
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml, /etc/viatrix/config.yaml,
//     or VIATRIX_CONFIG_PATH)
//  3. VIATRIX_-prefixed environment variables
//
// Environment variables map the first underscore to a section separator:
// VIATRIX_INTENT_CUTOFF_QUANTILE -> intent.cutoff_quantile.
package config

import "time"

// Config is the root configuration for one pipeline run.
type Config struct {
	Input      InputConfig      `koanf:"input"`
	Database   DatabaseConfig   `koanf:"database"`
	Similarity SimilarityConfig `koanf:"similarity"`
	Intent     IntentConfig     `koanf:"intent"`
	Output     OutputConfig     `koanf:"output"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// InputConfig selects the session source.
type InputConfig struct {
	// Source is the session source kind: "json" or "duckdb".
	Source string `koanf:"source" validate:"oneof=json duckdb"`

	// Path is the session JSON file. Required when Source is "json".
	Path string `koanf:"path"`
}

// DatabaseConfig holds DuckDB settings, used when Input.Source is
// "duckdb".
type DatabaseConfig struct {
	// Path is the DuckDB database file.
	Path string `koanf:"path"`

	// Query returns one row per session with columns
	// (session_id, city_list, country). Empty selects the default query.
	Query string `koanf:"query"`

	// Threads limits DuckDB worker threads. 0 means runtime.NumCPU().
	Threads int `koanf:"threads" validate:"gte=0"`

	// MaxMemory caps DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`
}

// SimilarityConfig tunes the matrix build.
type SimilarityConfig struct {
	// NumWorkers is the number of parallel workers for the all-pairs
	// computation. 0 means runtime.NumCPU().
	NumWorkers int `koanf:"num_workers" validate:"gte=0"`
}

// IntentConfig tunes the session intent classifier.
type IntentConfig struct {
	// CutoffQuantile is the empirical score quantile used as the
	// High/Low intent cutoff. Derived from the live score distribution
	// each run; this only selects which quantile, never a fixed score.
	CutoffQuantile float64 `koanf:"cutoff_quantile" validate:"gte=0,lt=1"`
}

// OutputConfig selects where run results are written.
type OutputConfig struct {
	// RecommendationsPath is the JSON file for per-city recommendations.
	// Empty disables the file output.
	RecommendationsPath string `koanf:"recommendations_path"`

	// IntentsPath is the JSON file for session intent labels. Empty
	// disables the file output.
	IntentsPath string `koanf:"intents_path"`
}

// MetricsConfig controls the optional Prometheus scrape endpoint.
type MetricsConfig struct {
	// Listen is the address for the /metrics endpoint, e.g. ":9090".
	// Empty disables the endpoint; metrics are still recorded.
	Listen string `koanf:"listen"`

	// ShutdownTimeout bounds the metrics server shutdown on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is the minimum log level.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`

	// Format is "json" or "console".
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line in log output.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. Defaults are
// loaded first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Source: "json",
			Path:   "",
		},
		Database: DatabaseConfig{
			Path:      "",
			Query:     "",
			Threads:   0, // 0 = use runtime.NumCPU()
			MaxMemory: "2GB",
		},
		Similarity: SimilarityConfig{
			NumWorkers: 0, // 0 = use runtime.NumCPU()
		},
		Intent: IntentConfig{
			CutoffQuantile: 0.25,
		},
		Output: OutputConfig{
			RecommendationsPath: "recommendations.json",
			IntentsPath:         "session_intents.json",
		},
		Metrics: MetricsConfig{
			Listen:          "",
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
