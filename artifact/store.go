// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package artifact provides read-only access to the sample arrays
// written by training runs.
//
// Artifacts are keyed by (ansatz, distribution, kind). How keys map
// to storage is up to the Store; callers only observe whether an
// artifact exists and its flattened contents.
package artifact

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (possibly wrapped) when no artifact exists
// for a key.
var ErrNotFound = errors.New("artifact not found")

// A CorruptError reports an artifact that exists but could not be
// decoded as a numeric array.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%s: corrupt artifact: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Kind distinguishes the arrays a training run writes for one
// (ansatz, distribution) pair.
type Kind int

const (
	// Trained is the sample array produced by the trained model.
	Trained Kind = iota
	// Initial is the sample array produced by the model at its
	// initial parameters, before training.
	Initial
)

// String returns the file-name suffix used for k.
func (k Kind) String() string {
	switch k {
	case Trained:
		return "results"
	case Initial:
		return "x0_results"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "results":
		return Trained, nil
	case "x0_results":
		return Initial, nil
	}
	return 0, fmt.Errorf("unknown artifact kind %q", s)
}

// A Store looks up sample arrays.
type Store interface {
	// Load returns the flattened array for the given key. It
	// returns an error wrapping ErrNotFound if the artifact does
	// not exist, and a *CorruptError if it cannot be decoded.
	Load(ansatz, dist string, kind Kind) ([]float64, error)

	// Exists reports whether an artifact exists for the given
	// key without decoding it.
	Exists(ansatz, dist string, kind Kind) (bool, error)
}

// KindLoader binds a Store to a single artifact kind, giving a
// two-key lookup suitable for bestfit.Select.
type KindLoader struct {
	Store Store
	Kind  Kind
}

// Load loads the artifact of l.Kind for (ansatz, dist).
func (l KindLoader) Load(ansatz, dist string) ([]float64, error) {
	return l.Store.Load(ansatz, dist, l.Kind)
}

// A MissingArtifact identifies an artifact that does not exist.
type MissingArtifact struct {
	Ansatz, Dist string
	Kind         Kind
}

// Missing returns every (ansatz, dist, kind) combination for which s
// has no artifact, in ansatz, dist, kind order.
func Missing(s Store, ansatzes, dists []string, kinds ...Kind) ([]MissingArtifact, error) {
	var out []MissingArtifact
	for _, a := range ansatzes {
		for _, d := range dists {
			for _, k := range kinds {
				ok, err := s.Exists(a, d, k)
				if err != nil {
					return nil, err
				}
				if !ok {
					out = append(out, MissingArtifact{a, d, k})
				}
			}
		}
	}
	return out, nil
}
