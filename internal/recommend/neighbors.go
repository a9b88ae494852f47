// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package recommend derives per-city co-search recommendations from the
// similarity matrix: for each city, the non-self city with the highest
// cosine similarity.
package recommend

import (
	"errors"

	"github.com/viatrixhq/viatrix/internal/models"
	"github.com/viatrixhq/viatrix/internal/similarity"
)

// ErrInsufficientVocabulary indicates a neighbor lookup against a matrix
// with fewer than two cities; no valid non-self neighbor exists.
var ErrInsufficientVocabulary = errors.New("fewer than 2 cities in vocabulary")

// Neighbors returns, for every city in the matrix, its most similar
// non-self city and the similarity score, ordered by city name.
//
// Ties are broken by lexicographic order of the candidate city name.
// The matrix stores cities in lexicographic order, so scanning each row
// left to right with a strict greater-than comparison keeps the first,
// lexicographically smallest, candidate at equal score.
//
// An empty matrix yields an empty result; a matrix with exactly one city
// fails with ErrInsufficientVocabulary.
func Neighbors(m *similarity.Matrix) ([]models.CityRecommendation, error) {
	n := m.Size()
	if n == 0 {
		return []models.CityRecommendation{}, nil
	}
	if n < 2 {
		return nil, ErrInsufficientVocabulary
	}

	cities := m.Cities()
	recs := make([]models.CityRecommendation, 0, n)

	for i := 0; i < n; i++ {
		best := -1
		bestScore := -1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if s := m.At(i, j); s > bestScore {
				best = j
				bestScore = s
			}
		}

		recs = append(recs, models.CityRecommendation{
			City:            cities[i],
			MostSimilarCity: cities[best],
			SimilarityScore: bestScore,
		})
	}

	return recs, nil
}
