// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package session normalizes raw session records from any source (JSON
// files, DuckDB) into the canonical in-memory session table consumed by
// the similarity engine.
//
// Every ingestion decision about blank fields is explicit: an empty
// country is a "Missing" category that survives grouping, while an empty
// city list is an invalid record rejected with models.ErrDataFormat.
// Nothing downstream ever has to interpret a blank string.
package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/viatrixhq/viatrix/internal/models"
)

// CityDelimiter separates city names in the delimited city_list record
// form.
const CityDelimiter = ","

// Record is one raw session row as supplied by a source, before
// normalization. Exactly one of Cities or CityList must be populated.
type Record struct {
	// SessionID is the unique session identifier.
	SessionID string `json:"session_id"`

	// Cities is the searched city list in explicit array form.
	Cities []string `json:"cities,omitempty"`

	// CityList is the searched city list in delimited string form, as
	// exported by upstream reporting tools.
	CityList string `json:"city_list,omitempty"`

	// Country is the originating country; may be blank.
	Country string `json:"country,omitempty"`

	// Metadata carries opaque user attributes.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Source supplies raw session records to the pipeline.
type Source interface {
	// Records returns all session records. The whole collection is read
	// in one pass; there is no streaming or incremental form.
	Records(ctx context.Context) ([]Record, error)
}

// Build normalizes raw records into the canonical session table.
//
// Per record: city names are trimmed and empty tokens dropped; repeated
// searches for the same city collapse into one distinct entry with its
// search count accumulated; a blank country becomes the explicit
// models.MissingCountry sentinel. A record with no usable city, a blank
// session id, or a session id already seen fails with a wrapped
// models.ErrDataFormat. An empty input yields an empty table, not an
// error.
func Build(records []Record) ([]models.Session, error) {
	sessions := make([]models.Session, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for i, rec := range records {
		id := strings.TrimSpace(rec.SessionID)
		if id == "" {
			return nil, fmt.Errorf("%w: record %d has no session id", models.ErrDataFormat, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: duplicate session id %q", models.ErrDataFormat, id)
		}
		seen[id] = struct{}{}

		names := rec.Cities
		if len(names) == 0 && rec.CityList != "" {
			names = strings.Split(rec.CityList, CityDelimiter)
		}

		var distinct []string
		counts := make(map[string]int)
		for _, raw := range names {
			city := strings.TrimSpace(raw)
			if city == "" {
				continue
			}
			if counts[city] == 0 {
				distinct = append(distinct, city)
			}
			counts[city]++
		}

		if len(distinct) == 0 {
			return nil, fmt.Errorf("%w: session %q has an empty city list", models.ErrDataFormat, id)
		}

		country := strings.TrimSpace(rec.Country)
		if country == "" {
			country = models.MissingCountry
		}

		sessions = append(sessions, models.Session{
			ID:           id,
			Cities:       distinct,
			SearchCounts: counts,
			Country:      country,
			Metadata:     rec.Metadata,
		})
	}

	return sessions, nil
}
