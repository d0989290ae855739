// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bestfit

import "fmt"

// A Registry is an insertion-ordered map from names to values.
//
// Iteration order is the order in which names were first added. The
// selector relies on this order to break ties between candidates, so
// a Registry must be built in a deterministic order.
//
// The zero value of Registry is an empty registry ready to use.
type Registry[T any] struct {
	// names is the keys of this registry in insertion order.
	names []string

	// pos maps from name to that name's position in names.
	pos map[string]int

	vals []T
}

// NewRegistry returns a Registry containing the given name/value
// pairs, in order. It panics if a name is repeated.
func NewRegistry[T any](entries ...Entry[T]) *Registry[T] {
	r := new(Registry[T])
	for _, e := range entries {
		if err := r.Add(e.Name, e.Value); err != nil {
			panic(err)
		}
	}
	return r
}

// An Entry is a single name/value pair in a Registry.
type Entry[T any] struct {
	Name  string
	Value T
}

// Add appends name to r with value val. It is an error to add a name
// twice.
func (r *Registry[T]) Add(name string, val T) error {
	if _, ok := r.pos[name]; ok {
		return fmt.Errorf("duplicate registry entry %q", name)
	}
	if r.pos == nil {
		r.pos = make(map[string]int)
	}
	r.pos[name] = len(r.names)
	r.names = append(r.names, name)
	r.vals = append(r.vals, val)
	return nil
}

// Load returns the value associated with name and whether name is in
// the registry.
func (r *Registry[T]) Load(name string) (T, bool) {
	if r == nil {
		var zero T
		return zero, false
	}
	i, ok := r.pos[name]
	if !ok {
		var zero T
		return zero, false
	}
	return r.vals[i], true
}

// Len returns the number of entries in r.
func (r *Registry[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the names in r in insertion order. The caller must
// not modify the returned slice.
func (r *Registry[T]) Names() []string {
	if r == nil {
		return nil
	}
	return r.names
}

// At returns the i'th entry of r in insertion order.
func (r *Registry[T]) At(i int) (string, T) {
	return r.names[i], r.vals[i]
}
