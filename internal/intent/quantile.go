// Viatrix - Travel Search Session Analytics
// Copyright 2026 Viatrix Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/viatrixhq/viatrix

package intent

import "math"

// Quantile returns the empirical q-quantile of a sorted sample using
// linear interpolation between order statistics. q is clamped to [0, 1].
// An empty sample yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	h := q * float64(n-1)
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Distribution summarizes an empirical score distribution. It is
// reported alongside classification output so operators can sanity-check
// the derived cutoff against the score spread.
type Distribution struct {
	// Count is the number of scored sessions.
	Count int `json:"count"`

	// Min is the smallest observed score.
	Min float64 `json:"min"`

	// Q1 is the first quartile.
	Q1 float64 `json:"q1"`

	// Median is the second quartile.
	Median float64 `json:"median"`

	// Q3 is the third quartile.
	Q3 float64 `json:"q3"`

	// Max is the largest observed score.
	Max float64 `json:"max"`

	// Mean is the arithmetic mean.
	Mean float64 `json:"mean"`
}

// summarize computes the distribution summary of a sorted, non-empty
// sample.
func summarize(sorted []float64) Distribution {
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return Distribution{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
	}
}
