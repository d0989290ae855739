// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import "fmt"

// Mem is an in-memory Store. The zero value is an empty store.
//
// Mem is not safe for concurrent use while it is being modified.
type Mem struct {
	arrays map[memKey][]float64
}

type memKey struct {
	ansatz, dist string
	kind         Kind
}

// Put stores a copy of xs under the given key.
func (m *Mem) Put(ansatz, dist string, kind Kind, xs []float64) {
	if m.arrays == nil {
		m.arrays = make(map[memKey][]float64)
	}
	m.arrays[memKey{ansatz, dist, kind}] = append([]float64(nil), xs...)
}

// Load returns a copy of the array stored under the given key.
func (m *Mem) Load(ansatz, dist string, kind Kind) ([]float64, error) {
	xs, ok := m.arrays[memKey{ansatz, dist, kind}]
	if !ok {
		return nil, fmt.Errorf("%s/%s/%s: %w", ansatz, dist, kind, ErrNotFound)
	}
	return append([]float64(nil), xs...), nil
}

// Exists reports whether an array is stored under the given key.
func (m *Mem) Exists(ansatz, dist string, kind Kind) (bool, error) {
	_, ok := m.arrays[memKey{ansatz, dist, kind}]
	return ok, nil
}
