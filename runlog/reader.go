// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package runlog reads the text summaries written by training runs.
//
// A summary is a block of "Key: value" lines, for example
//
//	Ansatz: Five
//	Dist: Uniform
//	Final Cost: 0.0132
//	Training Time: 812.4
//
// Blocks are separated by blank lines or end of file. Lines that are
// not key/value pairs are ignored.
//
// The costs in these summaries are whatever the training objective
// reported. They are kept for reporting only; candidate selection
// always recomputes distances from the sample arrays.
package runlog

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A Record is one training run summary.
type Record struct {
	Ansatz       string
	Dist         string
	FinalCost    float64
	TrainingTime float64

	// Fields is every key/value pair in the block, in order,
	// including the ones above.
	Fields []Field

	// File and Line locate the start of the block.
	File string
	Line int
}

// Field is a single key/value line.
type Field struct {
	Key, Value string
}

// Get returns the value of the first field named key.
func (r *Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// A Reader reads run summaries.
//
// Its API is modeled on bufio.Scanner. The Record returned by Record
// is overwritten by the next call to Scan.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // current I/O error

	rec    Record
	recErr error
}

// SyntaxError represents a malformed summary block.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRecord = errors.New("Reader.Scan has not been called")

// NewReader constructs a reader to parse run summaries from r.
// fileName is used in error messages and Record.File.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.recErr = noRecord
	r.rec.Fields = r.rec.Fields[:0]
}

// Scan advances the reader to the next summary block and returns
// true if one was read. The caller should use the Record method to
// get the record. If an I/O error occurs, or this reaches the end of
// the input, it returns false and the caller should use the Err method
// to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	r.rec.Fields = r.rec.Fields[:0]
	start := 0
	for r.s.Scan() {
		r.lineNum++
		line := r.s.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			if len(r.rec.Fields) > 0 {
				r.recErr = r.finish(start)
				return true
			}
			continue
		}
		if key, val, ok := parseFieldLine(line); ok {
			if len(r.rec.Fields) == 0 {
				start = r.lineNum
			}
			r.rec.Fields = append(r.rec.Fields, Field{string(key), string(val)})
		}
		// Ignore the line.
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
		return false
	}
	if len(r.rec.Fields) > 0 {
		r.recErr = r.finish(start)
		return true
	}
	return false
}

// parseFieldLine attempts to parse line as a "Key: value" pair. Keys
// begin with a letter and contain only letters, digits, spaces and
// underscores.
func parseFieldLine(line []byte) (key, val []byte, ok bool) {
	colon := bytes.IndexByte(line, ':')
	if colon <= 0 {
		return
	}
	key = bytes.TrimSpace(line[:colon])
	if len(key) == 0 {
		return
	}
	for i := 0; i < len(key); {
		c, n := utf8.DecodeRune(key[i:])
		if i == 0 && !unicode.IsLetter(c) {
			return
		}
		if !(unicode.IsLetter(c) || unicode.IsDigit(c) || c == ' ' || c == '_') {
			return
		}
		i += n
	}
	return key, bytes.TrimSpace(line[colon+1:]), true
}

// finish fills in the typed fields of r.rec from its key/value
// fields.
func (r *Reader) finish(start int) error {
	rec := &r.rec
	rec.File, rec.Line = r.fileName, start
	rec.Ansatz, rec.Dist = "", ""
	rec.FinalCost, rec.TrainingTime = 0, 0

	var missing []string
	str := func(key string, dst *string) {
		if v, ok := rec.Get(key); ok && v != "" {
			*dst = v
		} else {
			missing = append(missing, key)
		}
	}
	var numErr error
	num := func(key string, dst *float64) {
		v, ok := rec.Get(key)
		if !ok || v == "" {
			missing = append(missing, key)
			return
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil && numErr == nil {
			numErr = &SyntaxError{r.fileName, start, fmt.Sprintf("parsing %s: %v", key, err.(*strconv.NumError).Err)}
		}
		*dst = x
	}
	str("Ansatz", &rec.Ansatz)
	str("Dist", &rec.Dist)
	num("Final Cost", &rec.FinalCost)
	num("Training Time", &rec.TrainingTime)

	if len(missing) > 0 {
		return &SyntaxError{r.fileName, start, fmt.Sprintf("missing %q", missing)}
	}
	return numErr
}

// Record returns the last record read, or an error if the block was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Record, as it will be overwritten
// by the next call to Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recErr != nil {
		return nil, r.recErr
	}
	return &r.rec, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
