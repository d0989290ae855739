// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pairquery selects (distribution, ansatz) pairs with a small
// boolean query language.
//
// A query matches the keys "dist" and "ansatz" against anchored
// regular expressions. "candidate" is an alias for "ansatz".
//
//	dist:MNIST
//	ansatz:(Five Sixteen)
//	dist:"Left Weibull" OR -ansatz:Custom_.*
//
// Grammar:
//
//	query  = and {"OR" and} .
//	and    = phrase {"AND" phrase} .
//	phrase = match {match} .
//	match  = "(" query ")" | "-" match | "*" | key ":" values .
//	values = word | "(" word {word} ")" .
//	word   = [^ ():]* | "\"" [^"]* "\"" .
//
// Adjacent matches must all hold. A parenthesized value list matches
// any of its words.
package pairquery

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Keys a query may match on.
const (
	KeyDist   = "dist"
	KeyAnsatz = "ansatz"
)

var keyAliases = map[string]string{
	KeyDist:     KeyDist,
	KeyAnsatz:   KeyAnsatz,
	"candidate": KeyAnsatz,
}

// A Filter selects (distribution, ansatz) pairs.
type Filter struct {
	pred pred
}

// NewFilter compiles query into a Filter. A malformed query returns
// a *SyntaxError.
func NewFilter(query string) (*Filter, error) {
	p := &parser{src: query}
	pr := p.query()
	if t := p.peek(); t.kind != tokEOF {
		p.unexpected(t)
	}
	if p.err != nil {
		return nil, p.err
	}
	return &Filter{pr}, nil
}

// Match reports whether the pair (dist, ansatz) passes f. A nil
// Filter matches every pair.
func (f *Filter) Match(dist, ansatz string) bool {
	if f == nil {
		return true
	}
	return f.pred.match(dist, ansatz)
}

// String returns the canonical form of f's query, with implicit
// conjunctions spelled out and every compound fully parenthesized.
func (f *Filter) String() string {
	if f == nil {
		return "*"
	}
	return f.pred.text
}

// SyntaxError reports a malformed query.
type SyntaxError struct {
	Query string // The query string
	Off   int    // Byte offset of the error in Query
	Msg   string
}

func (e *SyntaxError) Error() string {
	col := utf8.RuneCountInString(e.Query[:min(e.Off, len(e.Query))])
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%s^", e.Msg, e.Query, strings.Repeat(" ", col))
}

// pred is a compiled query node.
type pred struct {
	match func(dist, ansatz string) bool
	text  string
}

var matchAll = pred{func(string, string) bool { return true }, "*"}

func allOf(ps []pred) pred {
	switch len(ps) {
	case 0:
		return matchAll
	case 1:
		return ps[0]
	}
	return pred{func(dist, ansatz string) bool {
		for _, p := range ps {
			if !p.match(dist, ansatz) {
				return false
			}
		}
		return true
	}, group(ps, " AND ")}
}

func anyOf(ps []pred) pred {
	if len(ps) == 1 {
		return ps[0]
	}
	return pred{func(dist, ansatz string) bool {
		for _, p := range ps {
			if p.match(dist, ansatz) {
				return true
			}
		}
		return false
	}, group(ps, " OR ")}
}

func negate(p pred) pred {
	return pred{func(dist, ansatz string) bool {
		return !p.match(dist, ansatz)
	}, "-" + p.text}
}

func group(ps []pred, sep string) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.text
	}
	return "(" + strings.Join(parts, sep) + ")"
}
