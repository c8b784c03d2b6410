// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mi2

import (
	"fmt"
	"strconv"
)

// DefaultMaxLine is the default overlong-line limit from spec.md §4.2.
const DefaultMaxLine = 1 << 20 // 1 MiB

// ParseError reports a malformed MI2 line. Per spec.md §4.2 the parser is
// total on well-formed input; any other input raises this.
type ParseError struct {
	Line     string
	Position int
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mi2: parse error at %d (expected %s): %q", e.Position, e.Expected, e.Line)
}

// ProtocolLimit is raised when a line exceeds the configured maximum length
// before parsing is even attempted.
type ProtocolLimit struct {
	Length, Max int
}

func (e *ProtocolLimit) Error() string {
	return fmt.Sprintf("mi2: line length %d exceeds limit %d", e.Length, e.Max)
}

// gdbPrompt is the distinguished pseudo-line that terminates a command's
// output batch (spec.md §4.1).
const gdbPrompt = "(gdb)"

// ParseRecord parses a single line of MI2 output into a Record. maxLine
// bounds the accepted input length (0 selects DefaultMaxLine); exceeding it
// raises ProtocolLimit before any parsing is attempted.
func ParseRecord(line string, maxLine int) (Record, error) {
	if maxLine <= 0 {
		maxLine = DefaultMaxLine
	}
	if len(line) > maxLine {
		return Record{}, &ProtocolLimit{Length: len(line), Max: maxLine}
	}
	if line == gdbPrompt {
		return Record{Kind: RecordPrompt}, nil
	}
	p := &parser{s: line}

	var tok uint64
	hasTok := false
	start := p.pos
	for p.pos < len(p.s) && isDigit(p.s[p.pos]) {
		p.pos++
	}
	if p.pos > start {
		n, err := strconv.ParseUint(p.s[start:p.pos], 10, 64)
		if err != nil {
			return Record{}, &ParseError{Line: line, Position: start, Expected: "token"}
		}
		tok, hasTok = n, true
	}

	if p.pos >= len(p.s) {
		return Record{}, &ParseError{Line: line, Position: p.pos, Expected: "record marker"}
	}

	marker := p.s[p.pos]
	switch marker {
	case '~', '@', '&':
		p.pos++
		cs, err := p.parseCString()
		if err != nil {
			return Record{}, err
		}
		var sk StreamKind
		switch marker {
		case '~':
			sk = StreamConsole
		case '@':
			sk = StreamTarget
		case '&':
			sk = StreamLog
		}
		return Record{Kind: RecordStream, Token: tok, HasToken: hasTok, StreamKind: sk, Text: cs}, p.finish()

	case '*', '+', '=':
		p.pos++
		class, err := p.parseIdent()
		if err != nil {
			return Record{}, err
		}
		results, err := p.parseResultTail()
		if err != nil {
			return Record{}, err
		}
		var ak AsyncKind
		switch marker {
		case '*':
			ak = AsyncExec
		case '+':
			ak = AsyncStatus
		case '=':
			ak = AsyncNotify
		}
		return Record{Kind: RecordAsync, Token: tok, HasToken: hasTok, AsyncKind: ak, Class: class, Results: results}, p.finish()

	case '^':
		p.pos++
		class, err := p.parseIdent()
		if err != nil {
			return Record{}, err
		}
		results, err := p.parseResultTail()
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: RecordResult, Token: tok, HasToken: hasTok, ResultClass: ResultClass(class), Results: results}, p.finish()
	}

	return Record{}, &ParseError{Line: line, Position: p.pos, Expected: "'~', '@', '&', '*', '+', '=' or '^'"}
}

// parser is a minimal recursive-descent cursor over one MI2 line, a
// single hand-rolled parser in place of a grammar-generator dependency,
// per spec.md §9.
type parser struct {
	s   string
	pos int
}

func (p *parser) finish() error {
	if p.pos != len(p.s) {
		return &ParseError{Line: p.s, Position: p.pos, Expected: "end of line"}
	}
	return nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}

func (p *parser) parseIdent() (string, error) {
	if p.pos >= len(p.s) || !isIdentStart(p.s[p.pos]) {
		return "", &ParseError{Line: p.s, Position: p.pos, Expected: "identifier"}
	}
	start := p.pos
	p.pos++
	for p.pos < len(p.s) && isIdentCont(p.s[p.pos]) {
		p.pos++
	}
	return p.s[start:p.pos], nil
}

// parseResultTail parses a (',' result)* sequence, as found after an async
// or result record's class.
func (p *parser) parseResultTail() (Tuple, error) {
	var out Tuple
	for p.pos < len(p.s) && p.s[p.pos] == ',' {
		p.pos++
		r, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (p *parser) parseResult() (Result, error) {
	key, err := p.parseIdent()
	if err != nil {
		return Result{}, err
	}
	if p.pos >= len(p.s) || p.s[p.pos] != '=' {
		return Result{}, &ParseError{Line: p.s, Position: p.pos, Expected: "'='"}
	}
	p.pos++
	v, err := p.parseValue()
	if err != nil {
		return Result{}, err
	}
	return Result{Key: key, Value: v}, nil
}

func (p *parser) parseValue() (Value, error) {
	if p.pos >= len(p.s) {
		return Value{}, &ParseError{Line: p.s, Position: p.pos, Expected: "value"}
	}
	switch p.s[p.pos] {
	case '"':
		cs, err := p.parseCString()
		if err != nil {
			return Value{}, err
		}
		return String(cs), nil
	case '{':
		p.pos++
		results, err := p.parseResultSeq('}')
		if err != nil {
			return Value{}, err
		}
		if p.pos >= len(p.s) || p.s[p.pos] != '}' {
			return Value{}, &ParseError{Line: p.s, Position: p.pos, Expected: "'}'"}
		}
		p.pos++
		return TupleValue(Tuple(results)), nil
	case '[':
		p.pos++
		list, err := p.parseList()
		if err != nil {
			return Value{}, err
		}
		if p.pos >= len(p.s) || p.s[p.pos] != ']' {
			return Value{}, &ParseError{Line: p.s, Position: p.pos, Expected: "']'"}
		}
		p.pos++
		return ListValue(list), nil
	}
	return Value{}, &ParseError{Line: p.s, Position: p.pos, Expected: "'\"', '{' or '['"}
}

// parseResultSeq parses a comma-separated result sequence up to (but not
// consuming) the terminator byte.
func (p *parser) parseResultSeq(terminator byte) ([]Result, error) {
	var out []Result
	if p.pos < len(p.s) && p.s[p.pos] == terminator {
		return out, nil
	}
	for {
		r, err := p.parseResult()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		if p.pos < len(p.s) && p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		break
	}
	return out, nil
}

// parseList parses the body of a '[' ... ']' construct: an empty list, a
// value-list, or a result-list, never mixed, determined by the first
// element per spec.md §4.2.
func (p *parser) parseList() (List, error) {
	if p.pos < len(p.s) && p.s[p.pos] == ']' {
		return newValueList(nil), nil
	}
	// Peek: a result element starts with ident '=', a value element can
	// also start with an identifier only if it's actually a result
	// (bare identifiers are not a value production), so try result
	// first and fall back to value.
	save := p.pos
	if r, err := p.parseResult(); err == nil {
		results := []Result{r}
		for p.pos < len(p.s) && p.s[p.pos] == ',' {
			p.pos++
			r, err := p.parseResult()
			if err != nil {
				return List{}, err
			}
			results = append(results, r)
		}
		return newResultList(results), nil
	}
	p.pos = save

	v, err := p.parseValue()
	if err != nil {
		return List{}, err
	}
	values := []Value{v}
	for p.pos < len(p.s) && p.s[p.pos] == ',' {
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return List{}, err
		}
		values = append(values, v)
	}
	return newValueList(values), nil
}

// parseCString parses a '"' ... '"' token, honoring \" \\ \' escapes, and
// returns the decoded contents.
func (p *parser) parseCString() (string, error) {
	if p.pos >= len(p.s) || p.s[p.pos] != '"' {
		return "", &ParseError{Line: p.s, Position: p.pos, Expected: "'\"'"}
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '\\' && p.pos+1 < len(p.s) {
			p.pos += 2
			continue
		}
		if c == '"' {
			raw := p.s[start:p.pos]
			p.pos++
			return decodeCString(raw), nil
		}
		p.pos++
	}
	return "", &ParseError{Line: p.s, Position: p.pos, Expected: "closing '\"'"}
}
