// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package intent scores multi-city sessions by their mean intra-session
// city similarity and classifies them into High and Low travel intent.
//
// Low cosine similarity between co-searched cities proxies high
// geographic or topical distance, itself a proxy for "dreaming" browsing;
// high similarity proxies focused trip planning. The High/Low cutoff is
// derived from the empirical score distribution of the current session
// population, never hardcoded: the same score can land on different
// sides of the cutoff for different datasets.
package intent

import (
	"errors"
	"fmt"
	"sort"

	"github.com/viatrixhq/viatrix/internal/models"
	"github.com/viatrixhq/viatrix/internal/similarity"
)

// ErrInsufficientCities indicates a score request for a session with
// fewer than two distinct cities. Such sessions carry no pairwise
// information; they are excluded from classification, never defaulted to
// a sentinel score.
var ErrInsufficientCities = errors.New("session has fewer than 2 distinct cities")

// DefaultCutoffQuantile is the fraction of scored sessions labeled Low
// Intent when no quantile is configured.
const DefaultCutoffQuantile = 0.25

// Config configures the classifier.
type Config struct {
	// CutoffQuantile is the empirical quantile of the score distribution
	// used as the High/Low cutoff. Scores at or below the cutoff are Low
	// Intent. Must be in (0, 1); zero selects DefaultCutoffQuantile.
	CutoffQuantile float64
}

// Result is the classifier output for one session population.
type Result struct {
	// Intents holds one record per multi-city session, in input order.
	// Single-city sessions are omitted entirely.
	Intents []models.SessionIntent `json:"intents"`

	// Cutoff is the score threshold derived from the population.
	Cutoff float64 `json:"cutoff"`

	// Summary describes the empirical score distribution.
	Summary Distribution `json:"summary"`
}

// Score computes the intent score of a single session: the arithmetic
// mean of the pairwise similarities over all C(n,2) unordered pairs of
// its distinct cities.
//
// Fails with ErrInsufficientCities for sessions with fewer than two
// distinct cities, and propagates similarity lookup failures unchanged.
func Score(s *models.Session, m *similarity.Matrix) (float64, error) {
	cities := s.Cities
	if len(cities) < 2 {
		return 0, fmt.Errorf("%w: session %q", ErrInsufficientCities, s.ID)
	}

	var sum float64
	pairs := 0
	for i := 0; i < len(cities); i++ {
		for j := i + 1; j < len(cities); j++ {
			sim, err := m.Score(cities[i], cities[j])
			if err != nil {
				return 0, fmt.Errorf("session %q: %w", s.ID, err)
			}
			sum += sim
			pairs++
		}
	}

	return sum / float64(pairs), nil
}

// Classify scores every multi-city session, derives the cutoff from the
// configured quantile of the score distribution, and labels each scored
// session. Sessions with a single distinct city are skipped, not
// labeled. An input with no qualifying sessions yields an empty Result.
func Classify(sessions []models.Session, m *similarity.Matrix, cfg Config) (*Result, error) {
	q := cfg.CutoffQuantile
	if q <= 0 || q >= 1 {
		q = DefaultCutoffQuantile
	}

	type scored struct {
		id    string
		score float64
	}

	qualifying := make([]scored, 0, len(sessions))
	for i := range sessions {
		if sessions[i].DistinctCityCount() < 2 {
			continue
		}
		score, err := Score(&sessions[i], m)
		if err != nil {
			return nil, err
		}
		qualifying = append(qualifying, scored{id: sessions[i].ID, score: score})
	}

	if len(qualifying) == 0 {
		return &Result{Intents: []models.SessionIntent{}}, nil
	}

	scores := make([]float64, len(qualifying))
	for i, s := range qualifying {
		scores[i] = s.score
	}
	sort.Float64s(scores)

	cutoff := Quantile(scores, q)

	intents := make([]models.SessionIntent, len(qualifying))
	for i, s := range qualifying {
		label := models.IntentLow
		if s.score > cutoff {
			label = models.IntentHigh
		}
		intents[i] = models.SessionIntent{
			SessionID:   s.id,
			IntentScore: s.score,
			IntentLabel: label,
		}
	}

	return &Result{
		Intents: intents,
		Cutoff:  cutoff,
		Summary: summarize(scores),
	}, nil
}
