// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bestfit

import (
	"encoding/json"
	"math"

	"github.com/qufoundry/bestfit/histogram"
)

// Result is the outcome of evaluating all candidates against one
// target distribution.
type Result struct {
	Dist string

	// Candidate is the name of the candidate with the smallest
	// TVD. It is meaningful only if Found returns true.
	Candidate string

	// Score is the TVD of Candidate, or +Inf if no candidate was
	// scored.
	Score float64

	// Scores records every candidate that was scored, in
	// candidate registry order.
	Scores []Score

	// Skipped records every candidate that could not be scored.
	Skipped []Skip

	// Target is the target histogram all candidates were compared
	// against. It is nil if Err is non-nil.
	Target *histogram.Hist

	// Err is a *TargetError if the target itself could not be
	// evaluated.
	Err error
}

// Found reports whether any candidate was scored for r.
func (r *Result) Found() bool {
	return len(r.Scores) > 0
}

// A Score is the distance between a target and one candidate.
type Score struct {
	Candidate string
	TVD       float64

	// N is the number of candidate samples.
	N int

	// Mass is the fraction of candidate samples that fell within
	// the target's bin edges.
	Mass float64
}

// SkipReason classifies why a candidate was not scored.
type SkipReason string

const (
	SkipMissing    SkipReason = "missing"
	SkipCorrupt    SkipReason = "corrupt"
	SkipUnreadable SkipReason = "unreadable"
	SkipEmpty      SkipReason = "empty"
)

// A Skip records a candidate that was not scored for a target.
type Skip struct {
	Candidate string
	Reason    SkipReason
	Err       error
}

// Results maps distribution names to their Result, in target
// registry order.
type Results struct {
	list  []*Result
	index map[string]int
}

func newResults(list []*Result) *Results {
	index := make(map[string]int, len(list))
	for i, r := range list {
		index[r.Dist] = i
	}
	return &Results{list, index}
}

// Lookup returns the Result for dist.
func (rs *Results) Lookup(dist string) (*Result, bool) {
	i, ok := rs.index[dist]
	if !ok {
		return nil, false
	}
	return rs.list[i], true
}

// All returns every Result in target registry order.
func (rs *Results) All() []*Result {
	return rs.list
}

// Len returns the number of distributions in rs.
func (rs *Results) Len() int {
	return len(rs.list)
}

type jsonScore struct {
	Candidate string  `json:"candidate"`
	TVD       float64 `json:"tvd"`
	N         int     `json:"n"`
	Mass      float64 `json:"mass"`
}

type jsonSkip struct {
	Candidate string     `json:"candidate"`
	Reason    SkipReason `json:"reason"`
	Error     string     `json:"error"`
}

type jsonResult struct {
	Dist      string      `json:"dist"`
	Candidate *string     `json:"candidate"`
	Score     *float64    `json:"score"`
	Scores    []jsonScore `json:"scores"`
	Skipped   []jsonSkip  `json:"skipped,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// MarshalJSON encodes r. If no candidate was scored, the candidate
// and score are null.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := jsonResult{Dist: r.Dist, Scores: []jsonScore{}}
	if r.Found() {
		cand, score := r.Candidate, r.Score
		out.Candidate, out.Score = &cand, &score
	}
	for _, s := range r.Scores {
		out.Scores = append(out.Scores, jsonScore(s))
	}
	for _, s := range r.Skipped {
		js := jsonSkip{Candidate: s.Candidate, Reason: s.Reason}
		if s.Err != nil {
			js.Error = s.Err.Error()
		}
		out.Skipped = append(out.Skipped, js)
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	if out.Score != nil && math.IsInf(*out.Score, 0) {
		out.Score = nil
	}
	return json.Marshal(out)
}

// MarshalJSON encodes rs as a list of results in registry order.
func (rs *Results) MarshalJSON() ([]byte, error) {
	if rs.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(rs.list)
}
