// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/viatrixhq/viatrix/internal/models"
)

// entry is one nonzero component of a city vector.
type entry struct {
	// session is the dense session index.
	session int

	// count is the number of searches for the city in that session.
	count float64
}

// Vector is a sparse city vector over dense session indices.
// Entries are sorted by session index; absent sessions have implicit
// count 0. Vectors are immutable after construction.
type Vector struct {
	entries []entry
	normSq  float64
}

// Norm returns the Euclidean norm of the vector.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.normSq)
}

// NonZeroCount returns the number of sessions the city appears in.
func (v Vector) NonZeroCount() int {
	return len(v.entries)
}

// dot computes the sparse dot product of two vectors by merge-walking
// their entry lists. Products accumulate in increasing session-index
// order regardless of argument order, so dot(a, b) == dot(b, a) exactly.
func dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.entries) && j < len(b.entries) {
		switch {
		case a.entries[i].session < b.entries[j].session:
			i++
		case a.entries[i].session > b.entries[j].session:
			j++
		default:
			sum += a.entries[i].count * b.entries[j].count
			i++
			j++
		}
	}
	return sum
}

// VectorSet holds the city-session vectors for one session population,
// together with the vocabulary. Built once; immutable after construction.
type VectorSet struct {
	// cities is the vocabulary, sorted lexicographically.
	cities []string

	// index maps city name to its position in cities.
	index map[string]int

	// sessionIDs maps dense session index back to the session id.
	sessionIDs []string

	// vectors holds one vector per city, aligned with cities.
	vectors []Vector
}

// BuildVectorSet constructs the per-city sparse count vectors from the
// normalized session table. The vocabulary is exactly the set of distinct
// city names observed across all sessions, sorted lexicographically so
// index assignment is deterministic.
func BuildVectorSet(sessions []models.Session) *VectorSet {
	counts := make(map[string][]entry)
	sessionIDs := make([]string, len(sessions))

	for si, s := range sessions {
		sessionIDs[si] = s.ID
		for _, city := range s.Cities {
			n := s.SearchCounts[city]
			if n <= 0 {
				n = 1
			}
			// Sessions are visited in index order, so entry lists stay
			// sorted without an explicit sort.
			counts[city] = append(counts[city], entry{session: si, count: float64(n)})
		}
	}

	cities := make([]string, 0, len(counts))
	for city := range counts {
		cities = append(cities, city)
	}
	sort.Strings(cities)

	vs := &VectorSet{
		cities:     cities,
		index:      make(map[string]int, len(cities)),
		sessionIDs: sessionIDs,
		vectors:    make([]Vector, len(cities)),
	}

	for ci, city := range cities {
		vs.index[city] = ci
		entries := counts[city]
		var sumSq float64
		for _, e := range entries {
			sumSq += e.count * e.count
		}
		vs.vectors[ci] = Vector{entries: entries, normSq: sumSq}
	}

	return vs
}

// Cities returns the vocabulary in lexicographic order. The returned
// slice must not be modified.
func (vs *VectorSet) Cities() []string {
	return vs.cities
}

// Len returns the vocabulary size.
func (vs *VectorSet) Len() int {
	return len(vs.cities)
}

// SessionCount returns the vector dimensionality.
func (vs *VectorSet) SessionCount() int {
	return len(vs.sessionIDs)
}

// Vector returns the vector for the named city.
func (vs *VectorSet) Vector(city string) (Vector, bool) {
	ci, ok := vs.index[city]
	if !ok {
		return Vector{}, false
	}
	return vs.vectors[ci], true
}

// Cosine computes the cosine similarity between two cities' vectors.
//
// The self-pair is special-cased to exactly 1 before the general formula
// runs; cosine of a vector with itself is 1 by convention even for a
// degenerate vector, and the special case avoids 0/0. A zero-norm
// operand in a non-self pair fails with ErrUndefinedSimilarity.
func (vs *VectorSet) Cosine(a, b string) (float64, error) {
	ai, ok := vs.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCity, a)
	}
	bi, ok := vs.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCity, b)
	}
	if ai == bi {
		return 1, nil
	}
	return cosine(vs.vectors[ai], vs.vectors[bi], a, b)
}

// cosine computes the non-self cosine similarity, failing on zero norms.
func cosine(u, v Vector, uName, vName string) (float64, error) {
	if u.normSq == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUndefinedSimilarity, uName)
	}
	if v.normSq == 0 {
		return 0, fmt.Errorf("%w: %q", ErrUndefinedSimilarity, vName)
	}
	return cosineValue(u, v), nil
}

// cosineValue computes dot / (||u||·||v||) for vectors with nonzero
// norms. The denominator is sqrt(normSq·normSq), not the product of the
// two rounded norms: when the vectors hold equal counts the dot product
// accumulates the same terms in the same order as the squared norm, and
// sqrt(x·x) == x in IEEE arithmetic, so equal vectors score exactly 1.
// The quotient is clamped to [0, 1] so rounding can never push a score
// outside the valid range.
func cosineValue(u, v Vector) float64 {
	sim := dot(u, v) / math.Sqrt(u.normSq*v.normSq)
	switch {
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	}
	return sim
}
