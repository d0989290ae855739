// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampler

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/aclements/go-moremath/stats"

	"github.com/qufoundry/bestfit/artifact"
)

// Empirical returns a Generator that resamples data with replacement.
//
// If lo >= hi, the declared range is the bounds of data.
func Empirical(data []float64, lo, hi float64) (*Generator, error) {
	data = append([]float64(nil), data...)
	if err := checkData(data); err != nil {
		return nil, err
	}
	if !(lo < hi) {
		lo, hi = stats.Sample{Xs: data}.Bounds()
	}
	return &Generator{
		lo: lo, hi: hi,
		newDraw: func(src rand.Source) (func() float64, error) {
			return resample(data, src), nil
		},
	}, nil
}

// LoadEmpirical returns an Empirical generator over the flattened
// values of a .npy dataset.
//
// The file is read on first use, so a missing or malformed dataset
// surfaces as an error from Generate rather than from LoadEmpirical.
// If lo >= hi, the declared range is the bounds of the data, and
// Range returns (0, 0) if the data cannot be read.
func LoadEmpirical(path string, lo, hi float64) (*Generator, error) {
	d := &dataset{path: path}
	g := &Generator{
		lo: lo, hi: hi,
		newDraw: func(src rand.Source) (func() float64, error) {
			data, err := d.load()
			if err != nil {
				return nil, err
			}
			return resample(data, src), nil
		},
	}
	if !(lo < hi) {
		g.bounds = func() (float64, float64) {
			data, err := d.load()
			if err != nil {
				return 0, 0
			}
			return stats.Sample{Xs: data}.Bounds()
		}
	}
	return g, nil
}

type dataset struct {
	path string
	once sync.Once
	data []float64
	err  error
}

func (d *dataset) load() ([]float64, error) {
	d.once.Do(func() {
		f, err := os.Open(d.path)
		if err != nil {
			d.err = err
			return
		}
		defer f.Close()
		data, err := artifact.ReadNPY(f)
		if err == nil {
			err = checkData(data)
		}
		if err != nil {
			d.err = fmt.Errorf("%s: %w", d.path, err)
			return
		}
		d.data = data
	})
	return d.data, d.err
}

func checkData(data []float64) error {
	if len(data) == 0 {
		return fmt.Errorf("empirical: no data")
	}
	lo, hi := stats.Sample{Xs: data}.Bounds()
	if lo == hi {
		return fmt.Errorf("empirical: all %d values equal %v", len(data), lo)
	}
	return nil
}

func resample(data []float64, src rand.Source) func() float64 {
	rng := rand.New(src)
	return func() float64 { return data[rng.IntN(len(data))] }
}
