// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package database reads session records from a DuckDB database. It is a
// read-only input channel for the pipeline: results are never written
// back, and no state persists between runs.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/viatrixhq/viatrix/internal/config"
	"github.com/viatrixhq/viatrix/internal/logging"
	"github.com/viatrixhq/viatrix/internal/metrics"
	"github.com/viatrixhq/viatrix/internal/models"
	"github.com/viatrixhq/viatrix/internal/session"
)

// DefaultQuery is the query used when none is configured. It expects a
// sessions table (or view) with one row per session and a delimited
// city_list column, the shape produced by DuckDB's read_json_auto over a
// session export.
const DefaultQuery = `SELECT session_id, city_list, country FROM sessions`

// SessionStore is a session.Source backed by DuckDB.
type SessionStore struct {
	conn  *sql.DB
	query string
}

// connString builds the DuckDB DSN. The database is opened read-only:
// the pipeline only ever consumes session rows.
func connString(cfg *config.DatabaseConfig) string {
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "2GB"
	}
	return fmt.Sprintf("%s?access_mode=read_only&threads=%d&max_memory=%s", cfg.Path, threads, maxMemory)
}

// Open opens the DuckDB database and verifies the connection.
func Open(cfg *config.DatabaseConfig) (*SessionStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	conn, err := sql.Open("duckdb", connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", cfg.Path, err)
	}

	query := cfg.Query
	if query == "" {
		query = DefaultQuery
	}

	logging.Debug().Str("path", cfg.Path).Msg("DuckDB session store opened")

	return &SessionStore{conn: conn, query: query}, nil
}

// Records fetches all session rows in one pass.
func (s *SessionStore) Records(ctx context.Context) ([]session.Record, error) {
	start := time.Now()

	rows, err := s.conn.QueryContext(ctx, s.query)
	if err != nil {
		metrics.DBQueryErrors.Inc()
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var records []session.Record
	for rows.Next() {
		var (
			sessionID string
			cityList  sql.NullString
			country   sql.NullString
		)
		if err := rows.Scan(&sessionID, &cityList, &country); err != nil {
			metrics.DBQueryErrors.Inc()
			return nil, fmt.Errorf("%w: scanning session row: %v", models.ErrDataFormat, err)
		}
		records = append(records, session.Record{
			SessionID: sessionID,
			CityList:  cityList.String,
			Country:   country.String,
		})
	}
	if err := rows.Err(); err != nil {
		metrics.DBQueryErrors.Inc()
		return nil, fmt.Errorf("reading session rows: %w", err)
	}

	metrics.DBQueryDuration.Observe(time.Since(start).Seconds())
	return records, nil
}

// Close releases the database connection.
func (s *SessionStore) Close() error {
	return s.conn.Close()
}

// Ensure interface compliance.
var _ session.Source = (*SessionStore)(nil)
