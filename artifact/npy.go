// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sbinet/npyio"
)

// ReadNPY decodes a NumPy .npy array of any shape from r and returns
// its elements as a flat []float64. Boolean, integer and
// floating-point dtypes of either byte order are accepted.
//
// The declared shape must fit in the bytes r actually holds, so a
// corrupt header cannot force a large allocation.
func ReadNPY(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	nr, err := npyio.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	descr := nr.Header.Descr.Type
	dt, ok := dtypes[strings.TrimLeft(descr, "<>=|")]
	if !ok {
		return nil, fmt.Errorf("unsupported dtype %q", descr)
	}
	n, err := elements(nr.Header.Descr.Shape, dt.size, len(data))
	if err != nil {
		return nil, err
	}
	return dt.read(nr, n)
}

// elements returns the element count of shape, checking that the
// elements fit in limit bytes.
func elements(shape []int, size, limit int) (int, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v", shape)
		}
		if d != 0 && n > math.MaxInt/d {
			return 0, fmt.Errorf("shape %v overflows", shape)
		}
		n *= d
	}
	if n > limit/size {
		return 0, fmt.Errorf("shape %v needs %d bytes, file has %d: %w", shape, n, limit, io.ErrUnexpectedEOF)
	}
	return n, nil
}

type dtype struct {
	size int
	read func(r *npyio.Reader, n int) ([]float64, error)
}

// readAs reads n elements of type T and widens them to float64.
func readAs[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float32 | float64](r *npyio.Reader, n int) ([]float64, error) {
	buf := make([]T, n)
	if err := r.Read(&buf); err != nil {
		return nil, err
	}
	if len(buf) != n {
		return nil, fmt.Errorf("read %d elements, want %d", len(buf), n)
	}
	xs := make([]float64, n)
	for i, v := range buf {
		xs[i] = float64(v)
	}
	return xs, nil
}

func readBool(r *npyio.Reader, n int) ([]float64, error) {
	buf := make([]bool, n)
	if err := r.Read(&buf); err != nil {
		return nil, err
	}
	if len(buf) != n {
		return nil, fmt.Errorf("read %d elements, want %d", len(buf), n)
	}
	xs := make([]float64, n)
	for i, v := range buf {
		if v {
			xs[i] = 1
		}
	}
	return xs, nil
}

var dtypes = map[string]dtype{
	"f8": {8, readAs[float64]},
	"f4": {4, readAs[float32]},
	"i8": {8, readAs[int64]},
	"i4": {4, readAs[int32]},
	"i2": {2, readAs[int16]},
	"i1": {1, readAs[int8]},
	"u8": {8, readAs[uint64]},
	"u4": {4, readAs[uint32]},
	"u2": {2, readAs[uint16]},
	"u1": {1, readAs[uint8]},
	"b1": {1, readBool},
}

// WriteNPY encodes xs as a one-dimensional float64 .npy array.
func WriteNPY(w io.Writer, xs []float64) error {
	return npyio.Write(w, xs)
}
