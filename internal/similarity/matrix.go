// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package similarity

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Matrix is the symmetric city × city cosine similarity matrix.
// Entries are in [0, 1] with diagonal exactly 1. The matrix is read-only
// after construction; it is recomputed in full whenever the session
// population changes, never updated incrementally.
type Matrix struct {
	cities []string
	index  map[string]int
	data   []float64 // row-major, len = n*n
}

// Options configures the matrix build.
type Options struct {
	// NumWorkers is the number of parallel workers for the all-pairs
	// computation. 0 means runtime.NumCPU().
	NumWorkers int
}

// BuildMatrix computes the full similarity matrix for the vector set.
//
// The build either fully succeeds or fails before any matrix is exposed:
// zero-norm vectors are rejected up front with ErrUndefinedSimilarity,
// and context cancellation aborts with ctx.Err(). An empty vocabulary
// yields an empty matrix, not an error.
//
// Work is split into contiguous row ranges. The worker owning row i
// computes the pairs (i, j) for j > i and writes both the cell and its
// mirror; cell (j, i) with i < j belongs to the owner of row i alone, so
// writes are disjoint and need no locking.
func BuildMatrix(ctx context.Context, vs *VectorSet, opts Options) (*Matrix, error) {
	n := vs.Len()
	m := &Matrix{
		cities: vs.cities,
		index:  vs.index,
		data:   make([]float64, n*n),
	}
	if n == 0 {
		return m, nil
	}

	// Reject degenerate vectors before spending O(C²) work. A city with
	// no sessions has no defined similarity to anything.
	for ci, v := range vs.vectors {
		if v.normSq == 0 {
			return nil, fmt.Errorf("%w: %q", ErrUndefinedSimilarity, vs.cities[ci])
		}
	}

	workers := opts.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for i := start; i < end; i++ {
				if ctx.Err() != nil {
					return
				}

				m.data[i*n+i] = 1
				u := vs.vectors[i]
				for j := i + 1; j < n; j++ {
					sim := cosineValue(u, vs.vectors[j])
					m.data[i*n+j] = sim
					m.data[j*n+i] = sim
				}
			}
		}(start, end)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Size returns the number of cities in the matrix.
func (m *Matrix) Size() int {
	return len(m.cities)
}

// Cities returns the vocabulary in lexicographic order. The returned
// slice must not be modified.
func (m *Matrix) Cities() []string {
	return m.cities
}

// At returns the similarity at the given city indices.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*len(m.cities)+j]
}

// Score returns the similarity between two cities by name.
func (m *Matrix) Score(a, b string) (float64, error) {
	ai, ok := m.index[a]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCity, a)
	}
	bi, ok := m.index[b]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCity, b)
	}
	return m.At(ai, bi), nil
}
