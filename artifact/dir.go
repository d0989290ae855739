// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the directory training runs write artifacts under.
const DefaultRoot = "Annealing"

// DefaultLayout is the path of an artifact relative to the root,
// for 5-qubit, single-layer runs.
const DefaultLayout = "{ansatz}/{dist}/5/1/1/{ansatz}_5_1_{kind}.npy"

// Dir is a Store backed by .npy files in a directory tree.
//
// Layout is a slash-separated path template relative to Root. The
// placeholders {ansatz}, {dist} and {kind} are replaced by the
// artifact key; {kind} is Kind.String().
type Dir struct {
	Root   string
	Layout string
}

// NewDir returns a Dir store. Empty arguments select DefaultRoot and
// DefaultLayout.
func NewDir(root, layout string) (*Dir, error) {
	if root == "" {
		root = DefaultRoot
	}
	if layout == "" {
		layout = DefaultLayout
	}
	if !strings.Contains(layout, "{ansatz}") || !strings.Contains(layout, "{dist}") || !strings.Contains(layout, "{kind}") {
		return nil, fmt.Errorf("artifact layout %q must reference {ansatz}, {dist} and {kind}", layout)
	}
	return &Dir{Root: root, Layout: layout}, nil
}

// Path returns the file path of the artifact for the given key.
func (d *Dir) Path(ansatz, dist string, kind Kind) string {
	r := strings.NewReplacer("{ansatz}", ansatz, "{dist}", dist, "{kind}", kind.String())
	return filepath.Join(d.Root, filepath.FromSlash(r.Replace(d.Layout)))
}

// Load reads and flattens the artifact for the given key.
func (d *Dir) Load(ansatz, dist string, kind Kind) ([]float64, error) {
	path := d.Path(ansatz, dist, kind)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	defer f.Close()

	xs, err := ReadNPY(f)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	return xs, nil
}

// Exists reports whether the artifact file for the given key exists.
func (d *Dir) Exists(ansatz, dist string, kind Kind) (bool, error) {
	_, err := os.Stat(d.Path(ansatz, dist, kind))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
