// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package histogram

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func mustLinear(t *testing.T, lo, hi float64, bins int) Edges {
	t.Helper()
	e, err := Linear(lo, hi, bins)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestLinear(t *testing.T) {
	e := mustLinear(t, 0, 1, 20)
	if e.Bins() != 20 || len(e) != 21 {
		t.Fatalf("want 20 bins, got %d (%d edges)", e.Bins(), len(e))
	}
	if e[0] != 0 || e[20] != 1 {
		t.Errorf("want edges spanning [0, 1], got [%v, %v]", e[0], e[20])
	}
	for i, w := range e.Widths() {
		if math.Abs(w-0.05) > 1e-12 {
			t.Errorf("bin %d: want width 0.05, got %v", i, w)
		}
	}

	bad := func(lo, hi float64, bins int) {
		t.Helper()
		if _, err := Linear(lo, hi, bins); !errors.Is(err, ErrBadEdges) {
			t.Errorf("Linear(%v, %v, %d): want ErrBadEdges, got %v", lo, hi, bins, err)
		}
	}
	bad(0, 1, 0)
	bad(0, 1, -3)
	bad(1, 1, 10)
	bad(2, 1, 10)
	bad(0, math.Inf(1), 10)
}

func TestValidate(t *testing.T) {
	check := func(e Edges, ok bool) {
		t.Helper()
		err := e.Validate()
		if ok && err != nil {
			t.Errorf("%v: unexpected error %v", e, err)
		} else if !ok && !errors.Is(err, ErrBadEdges) {
			t.Errorf("%v: want ErrBadEdges, got %v", e, err)
		}
	}
	check(Edges{0, 1}, true)
	check(Edges{-1, 0, 0.5, 3}, true)
	check(nil, false)
	check(Edges{0}, false)
	check(Edges{0, 0}, false)
	check(Edges{0, 2, 1}, false)
	check(Edges{0, math.NaN()}, false)
}

func TestBin(t *testing.T) {
	e := Edges{0, 1, 2, 4}
	check := func(x float64, want int, wantOK bool) {
		t.Helper()
		got, ok := e.Bin(x)
		if ok != wantOK || (ok && got != want) {
			t.Errorf("Bin(%v): got %d, %v; want %d, %v", x, got, ok, want, wantOK)
		}
	}
	check(0, 0, true)
	check(0.5, 0, true)
	check(1, 1, true) // Left-closed
	check(1.999, 1, true)
	check(2, 2, true)
	check(4, 2, true) // Last bin is right-closed
	check(-0.001, 0, false)
	check(4.001, 0, false)
	check(math.NaN(), 0, false)
}

func TestProject(t *testing.T) {
	e := Edges{0, 1, 2, 4}
	h, err := Project([]float64{0, 0.5, 1.5, 4}, e)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{2.0 / 4 / 1, 1.0 / 4 / 1, 1.0 / 4 / 2}
	for i := range want {
		if h.Density[i] != want[i] {
			t.Errorf("bin %d: want density %v, got %v", i, want[i], h.Density[i])
		}
	}
	if h.N != 4 {
		t.Errorf("want N=4, got %d", h.N)
	}
	if m := h.Mass(); math.Abs(m-1) > 1e-12 {
		t.Errorf("want mass 1, got %v", m)
	}
}

func TestProjectEmpty(t *testing.T) {
	_, err := Project(nil, Edges{0, 1})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("want ErrEmptyInput, got %v", err)
	}
	_, err = Project([]float64{}, Edges{0, 1})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("want ErrEmptyInput, got %v", err)
	}
}

func TestProjectOutOfRange(t *testing.T) {
	// Out-of-range samples are dropped without renormalizing.
	e := mustLinear(t, 0, 0.6, 20)
	h, err := Project([]float64{0.1, 0.2, 0.9, -1}, e)
	if err != nil {
		t.Fatal(err)
	}
	if m := h.Mass(); math.Abs(m-0.5) > 1e-9 {
		t.Errorf("want mass 0.5, got %v", m)
	}

	h, err = Project([]float64{5, 6, 7}, e)
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range h.Density {
		if d != 0 {
			t.Errorf("bin %d: want 0 density, got %v", i, d)
		}
	}
}

func TestProjectProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for iter := 0; iter < 100; iter++ {
		bins := 1 + rng.IntN(40)
		lo := rng.Float64()*10 - 5
		hi := lo + 0.1 + rng.Float64()*10
		e := mustLinear(t, lo, hi, bins)

		n := 1 + rng.IntN(500)
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = lo + rng.Float64()*(hi-lo)
		}
		// Always include both endpoints.
		samples[0] = lo
		samples[n-1] = hi

		h, err := Project(samples, e)
		if err != nil {
			t.Fatal(err)
		}
		if len(h.Density) != len(e)-1 {
			t.Fatalf("want %d bins, got %d", len(e)-1, len(h.Density))
		}
		for i, d := range h.Density {
			if d < 0 {
				t.Fatalf("bin %d: negative density %v", i, d)
			}
		}
		if m := h.Mass(); math.Abs(m-1) > 1e-9 {
			t.Fatalf("in-range samples: want mass 1, got %v", m)
		}
	}
}
