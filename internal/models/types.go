// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package models

import (
	"fmt"

	"github.com/goccy/go-json"
)

// MissingCountry is the sentinel used when a session record carries no
// country value. Keeping it as an explicit category means downstream
// grouping sees "Missing" as its own bucket instead of silently dropping
// or merging blank rows.
const MissingCountry = "Missing"

// Session is one normalized browsing episode: a set of city searches made
// by a single user within one session.
type Session struct {
	// ID is the unique session identifier.
	ID string `json:"session_id"`

	// Cities is the distinct list of city names searched in this session,
	// in order of first appearance.
	Cities []string `json:"cities"`

	// SearchCounts maps each city in Cities to the number of times it was
	// searched within the session. Repeated searches add weight to the
	// city's vector entry, never new vocabulary entries.
	SearchCounts map[string]int `json:"search_counts"`

	// Country is the originating country, or MissingCountry when the
	// source record left it blank.
	Country string `json:"country"`

	// Metadata carries opaque user attributes not consumed by the core.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// DistinctCityCount returns the number of distinct cities in the session.
func (s *Session) DistinctCityCount() int {
	return len(s.Cities)
}

// CityRecommendation is the recommender output for a single city: the
// co-searched city with the highest cosine similarity.
type CityRecommendation struct {
	// City is the city the recommendation is for.
	City string `json:"city"`

	// MostSimilarCity is the non-self city with the highest similarity.
	MostSimilarCity string `json:"most_similar_city"`

	// SimilarityScore is the cosine similarity between the two city
	// vectors, in [0, 1].
	SimilarityScore float64 `json:"similarity_score"`
}

// IntentLabel classifies a multi-city session's travel intent.
type IntentLabel int

const (
	// IntentLow indicates dispersed, low-similarity browsing ("dreaming").
	IntentLow IntentLabel = iota
	// IntentHigh indicates focused, high-similarity trip planning.
	IntentHigh
)

// String returns the human-readable label name.
func (l IntentLabel) String() string {
	switch l {
	case IntentHigh:
		return "High Intent"
	case IntentLow:
		return "Low Intent"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the label as its display string.
func (l IntentLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a label from its display string.
func (l *IntentLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "High Intent":
		*l = IntentHigh
	case "Low Intent":
		*l = IntentLow
	default:
		return fmt.Errorf("unknown intent label %q", s)
	}
	return nil
}

// SessionIntent is the classifier output for a single multi-city session.
// Single-city sessions are never represented here; they are excluded from
// classification rather than labeled with a sentinel score.
type SessionIntent struct {
	// SessionID is the session the score belongs to.
	SessionID string `json:"session_id"`

	// IntentScore is the mean pairwise city similarity within the session.
	IntentScore float64 `json:"intent_score"`

	// IntentLabel is the thresholded classification of IntentScore.
	IntentLabel IntentLabel `json:"intent_label"`
}
