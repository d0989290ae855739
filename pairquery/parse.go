// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pairquery

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token kinds. Punctuation tokens use their own byte as the kind.
const (
	tokEOF    = 0
	tokWord   = 'w'
	tokQuoted = 'q'
	tokAnd    = 'A'
	tokOr     = 'O'
)

type token struct {
	kind     byte
	off, end int // byte range in the query
	text     string
}

func (t token) isWord() bool {
	return t.kind == tokWord || t.kind == tokQuoted
}

// parser compiles a query straight to predicates. It scans lazily
// from pos and keeps only the first error; after an error pos sits
// at the end of the input so every production unwinds.
type parser struct {
	src string
	pos int
	err *SyntaxError
}

func (p *parser) fail(off int, msg string) {
	if p.err == nil {
		p.err = &SyntaxError{p.src, off, msg}
	}
	p.pos = len(p.src)
}

func (p *parser) unexpected(t token) {
	p.fail(t.off, "unexpected "+strconv.Quote(t.text))
}

// peek scans the token at pos without consuming it.
func (p *parser) peek() token {
	i := p.pos
	for i < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[i:])
		if !unicode.IsSpace(r) {
			break
		}
		i += n
	}
	if i == len(p.src) {
		return token{tokEOF, i, i, ""}
	}
	switch c := p.src[i]; c {
	case '(', ')', ':', '-', '*':
		return token{c, i, i + 1, p.src[i : i+1]}
	case '"':
		j := strings.IndexByte(p.src[i+1:], '"')
		if j < 0 {
			p.fail(i, "missing end quote")
			return token{tokEOF, len(p.src), len(p.src), ""}
		}
		return token{tokQuoted, i, i + j + 2, p.src[i+1 : i+1+j]}
	}
	// "-" and "*" only start tokens, so "Custom_.*" is one word.
	j := i
	for j < len(p.src) {
		r, n := utf8.DecodeRuneInString(p.src[j:])
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == ':' {
			break
		}
		j += n
	}
	t := token{tokWord, i, j, p.src[i:j]}
	switch t.text {
	case "AND":
		t.kind = tokAnd
	case "OR":
		t.kind = tokOr
	}
	return t
}

func (p *parser) next() token {
	t := p.peek()
	p.pos = max(p.pos, t.end)
	return t
}

func (p *parser) query() pred {
	ps := []pred{p.and()}
	for p.peek().kind == tokOr {
		p.next()
		ps = append(ps, p.and())
	}
	return anyOf(ps)
}

func (p *parser) and() pred {
	ps := []pred{p.phrase()}
	for p.peek().kind == tokAnd {
		p.next()
		ps = append(ps, p.phrase())
	}
	return allOf(ps)
}

func (p *parser) phrase() pred {
	var ps []pred
	for {
		t := p.peek()
		switch {
		case t.isWord() || t.kind == '(' || t.kind == '-' || t.kind == '*':
			ps = append(ps, p.match())
			continue
		case t.kind == ':':
			p.unexpected(t)
		case len(ps) == 0:
			p.fail(t.off, "nothing to match")
		}
		return allOf(ps)
	}
}

func (p *parser) match() pred {
	t := p.next()
	switch {
	case t.kind == '(':
		pr := p.query()
		if c := p.next(); c.kind != ')' {
			p.fail(c.off, `missing ")"`)
		}
		return pr
	case t.kind == '-':
		return negate(p.match())
	case t.kind == '*':
		return matchAll
	case t.isWord():
		return p.keyValues(t)
	}
	p.fail(t.off, "expected key:value or subexpression")
	return matchAll
}

func (p *parser) keyValues(k token) pred {
	if p.next().kind != ':' {
		p.fail(k.off, "expected key:value")
		return matchAll
	}
	key, ok := keyAliases[k.text]
	if !ok {
		p.fail(k.off, "unknown key "+strconv.Quote(k.text))
		return matchAll
	}
	v := p.next()
	if v.isWord() {
		return p.value(key, v)
	}
	if v.kind != '(' {
		p.fail(k.off, "expected key:value")
		return matchAll
	}
	var alts []pred
	for v = p.next(); v.isWord(); v = p.next() {
		alts = append(alts, p.value(key, v))
	}
	switch {
	case v.kind != ')':
		p.fail(v.off, "expected value")
	case len(alts) == 0:
		p.fail(v.off, "nothing to match")
	}
	return anyOf(alts)
}

// value compiles v as a regexp anchored to the whole value of key.
func (p *parser) value(key string, v token) pred {
	// Compile unanchored first so errors quote what was written.
	if _, err := regexp.Compile(v.text); err != nil {
		p.fail(v.off, err.Error())
		return matchAll
	}
	re := regexp.MustCompile("^(?:" + v.text + ")$")
	text := key + ":" + quote(v.text)
	if key == KeyDist {
		return pred{func(dist, _ string) bool { return re.MatchString(dist) }, text}
	}
	return pred{func(_, ansatz string) bool { return re.MatchString(ansatz) }, text}
}

// quote returns s as it must be written to scan back as one word.
func quote(s string) string {
	if s == "" || s == "AND" || s == "OR" || s[0] == '-' || s[0] == '*' {
		return strconv.Quote(s)
	}
	if strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`"():`, r)
	}) {
		return strconv.Quote(s)
	}
	return s
}
