// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

import (
	"fmt"
	"sort"
	"strings"
)

// A Spec describes a Generator declaratively, as read from a
// configuration file.
type Spec struct {
	// Kind is one of "uniform", "normal", "weibull",
	// "weibull-left" or "empirical".
	Kind string

	// Params holds the kind's parameters:
	//
	//	uniform:       min, max
	//	normal:        mu, sigma
	//	weibull:       k, lambda
	//	weibull-left:  k, lambda
	//	empirical:     (none)
	Params map[string]float64

	// Range is the declared support range [lo, hi]. It is
	// required for normal and Weibull kinds. For uniform it
	// defaults to [min, max]; for empirical, to the data bounds.
	Range []float64

	// Path is the .npy dataset for the empirical kind.
	Path string

	Size int
	Seed uint64
}

var kindParams = map[string][]string{
	"uniform":      {"min", "max"},
	"normal":       {"mu", "sigma"},
	"weibull":      {"k", "lambda"},
	"weibull-left": {"k", "lambda"},
	"empirical":    nil,
}

// Kinds returns the supported generator kinds, sorted.
func Kinds() []string {
	var ks []string
	for k := range kindParams {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Build constructs the Generator described by s.
func (s Spec) Build() (*Generator, error) {
	names, ok := kindParams[s.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown distribution kind %q (want one of %s)", s.Kind, strings.Join(Kinds(), ", "))
	}
	p := make([]float64, len(names))
	for i, name := range names {
		v, ok := s.Params[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing parameter %q", s.Kind, name)
		}
		p[i] = v
	}
	for name := range s.Params {
		if !contains(names, name) {
			return nil, fmt.Errorf("%s: unknown parameter %q", s.Kind, name)
		}
	}

	var lo, hi float64
	haveRange := false
	switch len(s.Range) {
	case 0:
	case 2:
		lo, hi, haveRange = s.Range[0], s.Range[1], true
	default:
		return nil, fmt.Errorf("%s: range must have 2 elements, have %d", s.Kind, len(s.Range))
	}
	needRange := func() error {
		if !haveRange {
			return fmt.Errorf("%s: range is required", s.Kind)
		}
		return nil
	}

	var g *Generator
	var err error
	switch s.Kind {
	case "uniform":
		g, err = Uniform(p[0], p[1])
		if err == nil && haveRange {
			err = checkRange(lo, hi)
			g.lo, g.hi = lo, hi
		}
	case "normal":
		if err = needRange(); err == nil {
			g, err = Normal(p[0], p[1], lo, hi)
		}
	case "weibull":
		if err = needRange(); err == nil {
			g, err = Weibull(p[0], p[1], lo, hi)
		}
	case "weibull-left":
		if err = needRange(); err == nil {
			g, err = WeibullLeft(p[0], p[1], lo, hi)
		}
	case "empirical":
		if s.Path == "" {
			return nil, fmt.Errorf("empirical: path is required")
		}
		g, err = LoadEmpirical(s.Path, lo, hi)
	}
	if err != nil {
		return nil, err
	}
	g.Size, g.Seed = s.Size, s.Seed
	return g, nil
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}
