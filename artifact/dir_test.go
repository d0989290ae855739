// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeArray(t *testing.T, d *Dir, ansatz, dist string, kind Kind, val any) {
	t.Helper()
	path := d.Path(ansatz, dist, kind)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npyio.Write(f, val))
}

// rawNPY builds a version 1.0 .npy file with the given header fields
// and data bytes, valid or not.
func rawNPY(descr, shape string, data []byte) []byte {
	dict := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }", descr, shape)
	if pad := (64 - (10+len(dict)+1)%64) % 64; pad > 0 {
		dict += strings.Repeat(" ", pad)
	}
	dict += "\n"
	var buf bytes.Buffer
	buf.WriteString("\x93NUMPY\x01\x00")
	binary.Write(&buf, binary.LittleEndian, uint16(len(dict)))
	buf.WriteString(dict)
	buf.Write(data)
	return buf.Bytes()
}

func TestDirPath(t *testing.T) {
	d, err := NewDir("Annealing", "")
	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join("Annealing", "Five", "Left Weibull", "5", "1", "1", "Five_5_1_results.npy"),
		d.Path("Five", "Left Weibull", Trained))
	assert.Equal(t,
		filepath.Join("Annealing", "Five", "Uniform", "5", "1", "1", "Five_5_1_x0_results.npy"),
		d.Path("Five", "Uniform", Initial))

	_, err = NewDir("x", "{ansatz}/{dist}.npy")
	assert.Error(t, err, "layout without {kind}")
}

func TestDirLoad(t *testing.T) {
	d, err := NewDir(t.TempDir(), "")
	require.NoError(t, err)

	want := []float64{0.1, 0.25, 0.5}
	writeArray(t, d, "Five", "Uniform", Trained, want)

	got, err := d.Load("Five", "Uniform", Trained)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ok, err := d.Exists("Five", "Uniform", Trained)
	require.NoError(t, err)
	assert.True(t, ok)

	// Same pair, other kind.
	_, err = d.Load("Five", "Uniform", Initial)
	assert.ErrorIs(t, err, ErrNotFound)
	ok, err = d.Exists("Five", "Uniform", Initial)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDirLoadDtypes(t *testing.T) {
	d, err := NewDir(t.TempDir(), "")
	require.NoError(t, err)

	writeArray(t, d, "A", "f4", Trained, []float32{0.5, 1.5})
	writeArray(t, d, "A", "i8", Trained, []int64{1, 2, 3})
	writeArray(t, d, "A", "i4", Trained, []int32{-1, 7})

	check := func(dist string, want []float64) {
		t.Helper()
		got, err := d.Load("A", dist, Trained)
		require.NoError(t, err, dist)
		assert.Equal(t, want, got, dist)
	}
	check("f4", []float64{0.5, 1.5})
	check("i8", []float64{1, 2, 3})
	check("i4", []float64{-1, 7})
}

func TestDirLoadCorrupt(t *testing.T) {
	d, err := NewDir(t.TempDir(), "")
	require.NoError(t, err)

	check := func(dist string, contents []byte) {
		t.Helper()
		path := d.Path("Five", dist, Trained)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, contents, 0o644))

		xs, err := d.Load("Five", dist, Trained)
		var ce *CorruptError
		require.True(t, errors.As(err, &ce), "%s: want *CorruptError, got %v (%d values)", dist, err, len(xs))
		assert.Equal(t, path, ce.Path)
		assert.False(t, errors.Is(err, ErrNotFound))
	}
	check("garbage", []byte("not an array"))
	// A shape far larger than the file must not be allocated.
	check("huge", rawNPY("<f8", "100000000000000000,", make([]byte, 16)))
	check("large", rawNPY("<f8", "10000000000,", make([]byte, 16)))
	// 2^62 * 4 wraps to 0 in int arithmetic.
	check("overflow", rawNPY("<f8", "4611686018427387904, 4", make([]byte, 16)))
	check("truncated", rawNPY("<f8", "3,", make([]byte, 20)))
	check("complex", rawNPY("<c16", "1,", make([]byte, 16)))
}

func TestReadNPYRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteNPY(&buf, []float64{3, 1, 2}))
	got, err := ReadNPY(&buf)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, got)
}

func TestReadNPYLayouts(t *testing.T) {
	be := make([]byte, 4*8)
	for i, v := range []float64{1, 2, 3, 4} {
		binary.BigEndian.PutUint64(be[i*8:], math.Float64bits(v))
	}
	got, err := ReadNPY(bytes.NewReader(rawNPY(">f8", "2, 2", be)))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, got)

	got, err = ReadNPY(bytes.NewReader(rawNPY("|u1", "3,", []byte{0, 128, 255})))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 128, 255}, got)

	got, err = ReadNPY(bytes.NewReader(rawNPY("<f8", "0,", nil)))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ReadNPY(bytes.NewReader(rawNPY("<f8", "100,", make([]byte, 16))))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadNPY(bytes.NewReader(rawNPY("<c16", "1,", make([]byte, 16))))
	assert.ErrorContains(t, err, "unsupported dtype")
}

func TestMissing(t *testing.T) {
	var m Mem
	m.Put("A", "Uniform", Trained, []float64{1})
	m.Put("A", "Uniform", Initial, []float64{1})
	m.Put("B", "Uniform", Trained, []float64{1})

	missing, err := Missing(&m, []string{"A", "B"}, []string{"Uniform", "Normal"}, Trained, Initial)
	require.NoError(t, err)
	assert.Equal(t, []MissingArtifact{
		{"A", "Normal", Trained},
		{"A", "Normal", Initial},
		{"B", "Uniform", Initial},
		{"B", "Normal", Trained},
		{"B", "Normal", Initial},
	}, missing)
}

func TestKindLoader(t *testing.T) {
	var m Mem
	m.Put("A", "Uniform", Initial, []float64{4, 5})
	l := KindLoader{&m, Initial}
	got, err := l.Load("A", "Uniform")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, got)

	_, err = KindLoader{&m, Trained}.Load("A", "Uniform")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Trained, Initial} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("bogus")
	assert.Error(t, err)
}
