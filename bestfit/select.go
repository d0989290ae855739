// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bestfit selects, for each target distribution, the
// candidate model whose trained samples best reproduce the target's
// shape.
//
// Targets and candidates are each projected onto the same histogram
// bin edges and compared by total variation distance (TVD). The
// candidate with the smallest TVD wins. Candidates are visited in
// registry order and ties keep the earliest candidate, so selection
// is deterministic given deterministic inputs.
package bestfit

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/qufoundry/bestfit/artifact"
	"github.com/qufoundry/bestfit/histogram"
)

// DefaultBins is the number of histogram bins used when Options.Bins
// is zero.
const DefaultBins = 20

// A Target generates samples from a reference distribution.
type Target interface {
	// Generate returns a fixed-size sample of the distribution.
	Generate() ([]float64, error)

	// Range returns the declared support range of the
	// distribution. Bin edges are derived from this range.
	Range() (lo, hi float64)
}

// A Candidate identifies one trained model variant. The candidate's
// name is its key in the candidate Registry.
type Candidate struct {
	// Label is a short display label, such as "A1".
	Label string
}

// A Loader retrieves the trained sample array for a (candidate,
// distribution) pair. It returns an error wrapping
// artifact.ErrNotFound if no array exists for the pair.
type Loader interface {
	Load(candidate, dist string) ([]float64, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(candidate, dist string) ([]float64, error)

func (f LoaderFunc) Load(candidate, dist string) ([]float64, error) {
	return f(candidate, dist)
}

// Options configures Select.
type Options struct {
	// Bins is the number of histogram bins. If 0, DefaultBins is
	// used.
	Bins int

	// Parallel is the maximum number of distributions evaluated
	// concurrently. Values <= 1 evaluate sequentially.
	Parallel int

	// Pair, if non-nil, restricts which (distribution, candidate)
	// pairs are scored. Pairs for which it returns false are
	// skipped.
	Pair func(dist, candidate string) bool

	// Logger receives warnings about skipped pairs. If nil,
	// slog.Default() is used.
	Logger *slog.Logger
}

// A TargetError records a failure to produce a distribution's target
// histogram. It aborts evaluation of that distribution only.
type TargetError struct {
	Dist string
	Err  error
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("distribution %q: %v", e.Dist, e.Err)
}

func (e *TargetError) Unwrap() error {
	return e.Err
}

// Select evaluates every candidate against every target and returns
// the best candidate per target.
//
// The returned Results always contains an entry for every target. A
// pair whose candidate samples are missing, unreadable, or empty is
// skipped with a warning. If a target's own samples cannot be
// generated or projected, that target's entry carries a *TargetError
// and Select returns all such errors joined, after evaluating every
// other target.
func Select(targets *Registry[Target], candidates *Registry[Candidate], store Loader, opts Options) (*Results, error) {
	bins := opts.Bins
	if bins == 0 {
		bins = DefaultBins
	}
	if bins < 0 {
		return nil, fmt.Errorf("bin count %d must be positive", bins)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &selector{
		candidates: candidates,
		store:      store,
		bins:       bins,
		pair:       opts.Pair,
		log:        log,
	}

	// Each distribution writes only its own slot.
	out := make([]*Result, targets.Len())
	var g errgroup.Group
	if opts.Parallel > 1 {
		g.SetLimit(opts.Parallel)
	} else {
		g.SetLimit(1)
	}
	for i := range out {
		name, target := targets.At(i)
		g.Go(func() error {
			out[i] = s.evaluate(name, target)
			return nil
		})
	}
	g.Wait()

	res := newResults(out)
	var errs []error
	for _, r := range out {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return res, errors.Join(errs...)
}

type selector struct {
	candidates *Registry[Candidate]
	store      Loader
	bins       int
	pair       func(dist, candidate string) bool
	log        *slog.Logger
}

// evaluate scores every candidate against target dist.
func (s *selector) evaluate(dist string, target Target) *Result {
	r := &Result{Dist: dist, Score: math.Inf(1)}

	p, err := s.targetHist(target)
	if err != nil {
		r.Err = &TargetError{Dist: dist, Err: err}
		return r
	}
	r.Target = p

	for _, cand := range s.candidates.Names() {
		if s.pair != nil && !s.pair(dist, cand) {
			continue
		}

		samples, err := s.store.Load(cand, dist)
		if err != nil {
			reason := SkipUnreadable
			if errors.Is(err, artifact.ErrNotFound) {
				reason = SkipMissing
			} else if errors.As(err, new(*artifact.CorruptError)) {
				reason = SkipCorrupt
			}
			s.skip(r, cand, reason, err)
			continue
		}

		q, err := histogram.Project(samples, p.Edges)
		if err != nil {
			reason := SkipUnreadable
			if errors.Is(err, histogram.ErrEmptyInput) {
				reason = SkipEmpty
			}
			s.skip(r, cand, reason, err)
			continue
		}

		tvd, err := histogram.TVD(p, q)
		if err != nil {
			// Both histograms use p.Edges.
			panic(err)
		}
		r.Scores = append(r.Scores, Score{
			Candidate: cand,
			TVD:       tvd,
			N:         q.N,
			Mass:      q.Mass(),
		})

		// Strictly less, so ties keep the earliest candidate.
		if len(r.Scores) == 1 || tvd < r.Score {
			r.Candidate, r.Score = cand, tvd
		}
	}

	if !r.Found() {
		s.log.Warn("no candidate scored", "dist", dist, "skipped", len(r.Skipped))
	} else {
		s.log.Debug("selected candidate", "dist", dist, "ansatz", r.Candidate, "tvd", r.Score)
	}
	return r
}

// targetHist generates target samples and projects them onto edges
// derived from the target's declared range.
func (s *selector) targetHist(target Target) (*histogram.Hist, error) {
	samples, err := target.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating samples: %w", err)
	}
	lo, hi := target.Range()
	edges, err := histogram.Linear(lo, hi, s.bins)
	if err != nil {
		return nil, err
	}
	return histogram.Project(samples, edges)
}

func (s *selector) skip(r *Result, cand string, reason SkipReason, err error) {
	r.Skipped = append(r.Skipped, Skip{Candidate: cand, Reason: reason, Err: err})
	s.log.Warn("skipping candidate", "dist", r.Dist, "ansatz", cand, "reason", reason, "err", err)
}
