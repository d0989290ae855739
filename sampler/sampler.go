// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampler generates target samples from reference
// distributions.
//
// Every Generator draws from its own seeded source, created afresh on
// each call to Generate, so repeated calls return identical samples.
package sampler

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultSize is the number of samples a Generator draws if Size is
// zero.
const DefaultSize = 1000

// A Generator draws a fixed number of samples from a distribution
// with a declared support range.
type Generator struct {
	// Size is the number of samples drawn by Generate.
	Size int

	// Seed seeds the random source.
	Seed uint64

	lo, hi float64

	// bounds, if non-nil, supplies the range lazily.
	bounds  func() (lo, hi float64)
	newDraw func(src rand.Source) (func() float64, error)
}

// Generate returns g.Size samples. Samples are not clipped to the
// declared range.
func (g *Generator) Generate() ([]float64, error) {
	n := g.Size
	if n == 0 {
		n = DefaultSize
	}
	if n < 0 {
		return nil, fmt.Errorf("sample size %d must be positive", n)
	}
	draw, err := g.newDraw(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))
	if err != nil {
		return nil, err
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = draw()
	}
	return xs, nil
}

// Range returns the declared support range of g's distribution.
func (g *Generator) Range() (lo, hi float64) {
	if g.bounds != nil {
		return g.bounds()
	}
	return g.lo, g.hi
}

func checkRange(lo, hi float64) error {
	if !(lo < hi) {
		return fmt.Errorf("empty range [%v, %v]", lo, hi)
	}
	return nil
}

// Uniform returns a Generator for the uniform distribution on
// [min, max). Its declared range is [min, max].
func Uniform(min, max float64) (*Generator, error) {
	if err := checkRange(min, max); err != nil {
		return nil, err
	}
	return &Generator{
		lo: min, hi: max,
		newDraw: func(src rand.Source) (func() float64, error) {
			return distuv.Uniform{Min: min, Max: max, Src: src}.Rand, nil
		},
	}, nil
}

// Normal returns a Generator for the normal distribution with mean mu
// and standard deviation sigma, declared over [lo, hi].
func Normal(mu, sigma, lo, hi float64) (*Generator, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("normal: sigma %v must be positive", sigma)
	}
	if err := checkRange(lo, hi); err != nil {
		return nil, err
	}
	return &Generator{
		lo: lo, hi: hi,
		newDraw: func(src rand.Source) (func() float64, error) {
			return distuv.Normal{Mu: mu, Sigma: sigma, Src: src}.Rand, nil
		},
	}, nil
}

// Weibull returns a Generator for the right-skewed Weibull
// distribution with shape k and scale lambda, offset so its support
// starts at lo, declared over [lo, hi].
func Weibull(k, lambda, lo, hi float64) (*Generator, error) {
	if err := checkWeibull(k, lambda, lo, hi); err != nil {
		return nil, err
	}
	return &Generator{
		lo: lo, hi: hi,
		newDraw: func(src rand.Source) (func() float64, error) {
			w := distuv.Weibull{K: k, Lambda: lambda, Src: src}
			return func() float64 { return lo + w.Rand() }, nil
		},
	}, nil
}

// WeibullLeft returns a Generator for the left-skewed mirror image of
// Weibull: samples are reflected about hi, so the long tail extends
// toward lo.
func WeibullLeft(k, lambda, lo, hi float64) (*Generator, error) {
	if err := checkWeibull(k, lambda, lo, hi); err != nil {
		return nil, err
	}
	return &Generator{
		lo: lo, hi: hi,
		newDraw: func(src rand.Source) (func() float64, error) {
			w := distuv.Weibull{K: k, Lambda: lambda, Src: src}
			return func() float64 { return hi - w.Rand() }, nil
		},
	}, nil
}

func checkWeibull(k, lambda, lo, hi float64) error {
	if !(k > 0) || !(lambda > 0) {
		return fmt.Errorf("weibull: shape %v and scale %v must be positive", k, lambda)
	}
	return checkRange(lo, hi)
}

// SeedFor derives a per-distribution seed from a base seed and the
// distribution's name, so that adding or reordering distributions
// does not change the samples of the others.
func SeedFor(base uint64, name string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return base ^ h.Sum64()
}
