// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histogram

import (
	"errors"
	"fmt"
	"math"
)

// ErrEmptyInput is returned when projecting an empty sample
// sequence, whose density is undefined.
var ErrEmptyInput = errors.New("empty sample sequence")

// ErrEdgeMismatch is returned when comparing histograms that were not
// projected onto the same edges.
var ErrEdgeMismatch = errors.New("histograms have different bin edges")

// A Hist is a density histogram over a set of bin edges.
type Hist struct {
	Edges Edges

	// Density[i] is the fraction of all projected samples that
	// fell in bin i, divided by the width of bin i.
	Density []float64

	// N is the total number of samples projected, including
	// samples that fell outside the edges.
	N int
}

// Project counts samples into the bins defined by edges and
// normalizes the counts to a density.
//
// Densities are normalized by the total sample count, not the
// in-range count. Samples outside the edges (and NaNs) contribute to
// no bin, so the histogram's Mass is less than 1 if any sample is out
// of range.
func Project(samples []float64, edges Edges) (*Hist, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	if err := edges.Validate(); err != nil {
		return nil, err
	}

	counts := make([]int, edges.Bins())
	for _, x := range samples {
		if i, ok := edges.Bin(x); ok {
			counts[i]++
		}
	}

	n := float64(len(samples))
	density := make([]float64, len(counts))
	for i, c := range counts {
		density[i] = float64(c) / (n * edges.Width(i))
	}
	return &Hist{Edges: edges, Density: density, N: len(samples)}, nil
}

// Mass returns the total probability mass covered by h, that is,
// the integral of its density over its edges. This is 1 (up to
// rounding) if every projected sample fell within the edges.
func (h *Hist) Mass() float64 {
	var m float64
	for i, d := range h.Density {
		m += d * h.Edges.Width(i)
	}
	return m
}

// TVD returns the total variation distance between p and q,
//
//	0.5 * Σ |p.Density[i] - q.Density[i]| * width[i]
//
// p and q must share identical edges. The result is symmetric, zero
// for identical histograms, and in [0, 1] for histograms whose mass is
// at most 1.
func TVD(p, q *Hist) (float64, error) {
	if !p.Edges.Equal(q.Edges) || len(p.Density) != len(q.Density) {
		return 0, fmt.Errorf("%w: %d vs %d bins", ErrEdgeMismatch, len(p.Density), len(q.Density))
	}
	var sum float64
	for i := range p.Density {
		sum += math.Abs(p.Density[i]-q.Density[i]) * p.Edges.Width(i)
	}
	return 0.5 * sum, nil
}
