// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package histogram projects sample sequences onto fixed bin edges
// and compares the resulting density histograms.
//
// All histograms compared against each other must share the same
// Edges. A target distribution's edges are derived once and reused
// for every candidate scored against it.
package histogram

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/vec"
)

// ErrBadEdges is wrapped by errors returned for malformed bin edges.
var ErrBadEdges = errors.New("bad bin edges")

// Edges is an ordered sequence of B+1 strictly increasing bin
// boundaries defining B contiguous bins. Bin i covers
// [Edges[i], Edges[i+1]), except the last bin, which also includes
// its right boundary.
type Edges []float64

// Linear returns bins+1 equally spaced edges spanning [lo, hi].
func Linear(lo, hi float64, bins int) (Edges, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("%w: bin count %d must be positive", ErrBadEdges, bins)
	}
	if !(lo < hi) {
		return nil, fmt.Errorf("%w: range [%v, %v] is empty", ErrBadEdges, lo, hi)
	}
	e := Edges(vec.Linspace(lo, hi, bins+1))
	// Linspace may round the last element.
	e[0], e[bins] = lo, hi
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks that e has at least two finite, strictly
// increasing edges.
func (e Edges) Validate() error {
	if len(e) < 2 {
		return fmt.Errorf("%w: need at least 2 edges, have %d", ErrBadEdges, len(e))
	}
	for i, x := range e {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: edge %d is %v", ErrBadEdges, i, x)
		}
		if i > 0 && !(e[i-1] < x) {
			return fmt.Errorf("%w: edge %d (%v) does not exceed edge %d (%v)", ErrBadEdges, i, x, i-1, e[i-1])
		}
	}
	return nil
}

// Bins returns the number of bins defined by e.
func (e Edges) Bins() int {
	if len(e) == 0 {
		return 0
	}
	return len(e) - 1
}

// Width returns the width of bin i.
func (e Edges) Width(i int) float64 {
	return e[i+1] - e[i]
}

// Widths returns the width of every bin.
func (e Edges) Widths() []float64 {
	w := make([]float64, e.Bins())
	for i := range w {
		w[i] = e.Width(i)
	}
	return w
}

// Centers returns the midpoint of every bin.
func (e Edges) Centers() []float64 {
	c := make([]float64, e.Bins())
	for i := range c {
		c[i] = (e[i] + e[i+1]) / 2
	}
	return c
}

// Bin returns the index of the bin containing x, or false if x lies
// outside [e[0], e[len(e)-1]] or is NaN.
func (e Edges) Bin(x float64) (int, bool) {
	n := len(e)
	if n < 2 || !(x >= e[0] && x <= e[n-1]) {
		return 0, false
	}
	if x == e[n-1] {
		// The last bin is closed on the right.
		return n - 2, true
	}
	// Binary search for the last edge <= x.
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if e[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true
}

// Equal reports whether e and f are exactly the same edges.
func (e Edges) Equal(f Edges) bool {
	if len(e) != len(f) {
		return false
	}
	for i := range e {
		if e[i] != f[i] {
			return false
		}
	}
	return true
}
