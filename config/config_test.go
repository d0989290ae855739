// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	targets, err := c.Targets()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Uniform", "Normal", "Left Weibull", "Right Weibull",
		"MNIST", "Fashion MNIST", "CIFAR", "QCHEM",
		"Soillow", "Soilhigh", "dmlow", "dmhigh",
	}, targets.Names())
	assert.Equal(t, c.Plot.Order, targets.Names())

	cands, err := c.Candidates()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sixteen", "Five", "Custom_One", "Custom_Two"}, cands.Names())
	for i, label := range []string{"A1", "A2", "A3", "A4"} {
		_, cand := cands.At(i)
		assert.Equal(t, label, cand.Label)
	}

	uni, ok := targets.Load("Uniform")
	require.True(t, ok)
	xs, err := uni.Generate()
	require.NoError(t, err)
	assert.Len(t, xs, 1000)
	lo, hi := uni.Range()
	assert.Equal(t, []float64{0, 0.5}, []float64{lo, hi})

	store, err := c.NewStore()
	require.NoError(t, err)
	assert.Equal(t, "Annealing", store.Root)
}

func TestParseOverrides(t *testing.T) {
	c, err := Parse([]byte(`
bins: 10
seed: 7
store:
  root: runs
logging:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 10, c.Bins)
	assert.Equal(t, uint64(7), c.Seed)
	assert.Equal(t, "runs", c.Store.Root)
	assert.Equal(t, Default().Store.Layout, c.Store.Layout)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Len(t, c.Distributions, 12, "defaults kept")
	assert.Equal(t, "Soil Low", c.Plot.Titles["Soillow"])
	assert.Equal(t, 0.6, c.Plot.XMax)
}

func TestParseReplacesLists(t *testing.T) {
	c, err := Parse([]byte(`
distributions:
  - name: Flat
    title: Flat Target
    kind: uniform
    params: {min: 0, max: 1}
  - name: Bell
    kind: normal
    params: {mu: 0.5, sigma: 0.1}
    range: [0, 1]
ansatzes:
  - {name: Five, label: B}
plot:
  order: [Flat, Bell]
  rows: 1
  cols: 2
  titles: {Bell: Gaussian}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Flat", "Bell"}, c.DistNames())
	assert.Equal(t, []string{"Five"}, c.AnsatzNames())

	s := c.Style()
	assert.Equal(t, "Flat Target", s.Title("Flat"))
	assert.Equal(t, "Gaussian", s.Title("Bell"))
	assert.Equal(t, "Soillow", s.Title("Soillow"), "default titles replaced")
	assert.Empty(t, c.Plot.Titles["Flat"], "Style must not modify c.Plot")
}

func TestParseErrors(t *testing.T) {
	bad := func(yaml, want string) {
		t.Helper()
		_, err := Parse([]byte(yaml))
		if assert.Error(t, err, yaml) {
			assert.Contains(t, err.Error(), want)
		}
	}
	bad(`binz: 3`, "field binz not found")
	bad(`bins: 0`, "bins must be positive")
	bad(`samples: -1`, "samples must be positive")
	bad(`ansatzes: []`, "no ansatzes")
	bad(`
distributions:
  - {name: A, kind: uniform, params: {min: 0, max: 1}}
  - {name: A, kind: uniform, params: {min: 0, max: 1}}
`, `duplicate distribution "A"`)
	bad(`
distributions:
  - {name: A, kind: cauchy}
`, `distribution "A": unknown distribution kind`)
	bad(`
ansatzes:
  - {name: Five, label: A}
  - {name: Five, label: B}
`, `duplicate ansatz "Five"`)
	bad(`store: {layout: "{ansatz}.npy"}`, "store:")
	bad(`plot: {out: fig.gif}`, "plot:")
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadResolvesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bestfit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store: {root: Annealing}
distributions:
  - {name: MNIST, kind: empirical, path: data/mnist.npy}
  - {name: Abs, kind: empirical, path: /data/abs.npy}
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Annealing"), c.Store.Root)
	assert.Equal(t, filepath.Join(dir, "data", "mnist.npy"), c.Distributions[0].Path)
	assert.Equal(t, "/data/abs.npy", c.Distributions[1].Path)

	_, err = Load(filepath.Join(dir, "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)
	c, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
