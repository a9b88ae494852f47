// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

// Package similarity builds sparse city-session vectors from normalized
// sessions and computes the all-pairs cosine similarity matrix over them.
//
// A city's vector is indexed by dense session index and holds the number
// of times the city was searched in each session. Vectors are sparse:
// with tens of thousands of sessions and thousands of cities the dense
// form is memory-prohibitive, and sparse dot products keep the O(C²·S)
// matrix build tractable (C cities, S average vector sparsity).
//
// # Determinism
//
// The vocabulary is sorted lexicographically before index assignment and
// vector entries are stored in session-index order, so dot products
// accumulate in a fixed order. Rerunning the build on unchanged input
// yields a byte-identical matrix.
//
// # Concurrency
//
// The matrix build is parallel across row ranges. Each worker owns a
// disjoint set of rows and writes only cells derived from its own rows
// (the upper-triangle pair and its mirror), so no two workers ever write
// the same cell and no locking is needed. The matrix is immutable once
// returned.
package similarity
