// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qufoundry/bestfit/artifact"
	"github.com/qufoundry/bestfit/bestfit"
	"github.com/qufoundry/bestfit/internal/logging"
	"github.com/qufoundry/bestfit/sampler"
)

// testInput selects among two candidates for two distributions. Only
// "Uniform" has artifacts, so "Normal" renders without data.
func testInput(t *testing.T, log *slog.Logger) Input {
	t.Helper()
	uni, err := sampler.Uniform(0, 0.5)
	require.NoError(t, err)
	norm, err := sampler.Normal(0.25, 0.05, 0, 0.5)
	require.NoError(t, err)
	targets := bestfit.NewRegistry(
		bestfit.Entry[bestfit.Target]{Name: "Uniform", Value: uni},
		bestfit.Entry[bestfit.Target]{Name: "Normal", Value: norm},
	)
	cands := bestfit.NewRegistry(
		bestfit.Entry[bestfit.Candidate]{Name: "Sixteen", Value: bestfit.Candidate{Label: "A1"}},
		bestfit.Entry[bestfit.Candidate]{Name: "Five", Value: bestfit.Candidate{Label: "A2"}},
	)

	store := new(artifact.Mem)
	samples, err := uni.Generate()
	require.NoError(t, err)
	store.Put("Five", "Uniform", artifact.Trained, samples)
	store.Put("Five", "Uniform", artifact.Initial, []float64{0.1, 0.2, 0.2, 0.3})

	quiet := logging.Discard()
	res, err := bestfit.Select(targets, cands, artifact.KindLoader{Store: store, Kind: artifact.Trained}, bestfit.Options{Logger: quiet})
	require.NoError(t, err)
	return Input{Results: res, Targets: targets, Candidates: cands, Store: store, Logger: log}
}

func smallStyle(out string) Style {
	s := DefaultStyle()
	s.Order = []string{"Uniform", "Normal"}
	s.Rows, s.Cols = 1, 2
	s.Width, s.Height, s.FontSize = 6, 3, 8
	s.Out = out
	return s
}

func TestWriteFile(t *testing.T) {
	var logBuf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logBuf, nil))
	in := testInput(t, log)

	for _, ext := range []string{"png", "svg", "pdf"} {
		out := filepath.Join(t.TempDir(), "Results", "combined."+ext)
		require.NoError(t, WriteFile(in, smallStyle(out)), ext)
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), ext)
	}

	// The Normal panel has no candidate; it is drawn, not fatal.
	assert.Contains(t, logBuf.String(), "plotting without data")
	assert.Contains(t, logBuf.String(), "dist=Normal")
	assert.NotContains(t, logBuf.String(), "dist=Uniform")
}

func TestDrawSVGTitles(t *testing.T) {
	in := testInput(t, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	s := smallStyle("out.svg")
	s.Titles = map[string]string{"Uniform": "Flat"}

	var buf bytes.Buffer
	require.NoError(t, Draw(&buf, "svg", in, s))
	svg := buf.String()
	assert.Contains(t, svg, "Flat (A2)")
	assert.Contains(t, svg, "no data")
	assert.Contains(t, svg, "QuFoundry")
}

func TestDrawGrowsRows(t *testing.T) {
	in := testInput(t, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	s := smallStyle("out.svg")
	s.Order = nil // every target, in registry order
	s.Rows, s.Cols = 1, 1

	var buf bytes.Buffer
	require.NoError(t, Draw(&buf, "svg", in, s))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "<?xml"))
}

func TestStyleValidate(t *testing.T) {
	s := DefaultStyle()
	require.NoError(t, s.Validate())

	bad := func(mod func(s *Style)) {
		t.Helper()
		s := DefaultStyle()
		mod(&s)
		assert.Error(t, s.Validate())
	}
	bad(func(s *Style) { s.Cols = 0 })
	bad(func(s *Style) { s.XMin, s.XMax = 1, 1 })
	bad(func(s *Style) { s.Bins = 0 })
	bad(func(s *Style) { s.FontSize = 0 })
	bad(func(s *Style) { s.TrainedColor = "navy" })
	bad(func(s *Style) { s.Out = "figure.gif" })
}

func TestParseColor(t *testing.T) {
	check := func(s string, want color.Color) {
		t.Helper()
		got, err := parseColor(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	check("#4ae6cd", color.RGBA{0x4a, 0xe6, 0xcd, 0xff})
	check("#1d4670", color.RGBA{0x1d, 0x46, 0x70, 0xff})
	check("#fff", color.RGBA{0xff, 0xff, 0xff, 0xff})
	check("Black", color.Black)

	for _, s := range []string{"", "4ae6cd", "#4ae6c", "#zzzzzz"} {
		_, err := parseColor(s)
		assert.Error(t, err, s)
	}
}

func TestTitle(t *testing.T) {
	s := DefaultStyle()
	assert.Equal(t, "Soil Low", s.Title("Soillow"))
	assert.Equal(t, "MNIST", s.Title("MNIST"))
}
