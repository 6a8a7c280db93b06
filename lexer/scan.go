// This file is part of xcc - https://github.com/db47h/xcc
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lexer

import (
	"strconv"
	"strings"

	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

// lexOne scans exactly one token's worth of raw source, expanding a macro
// use (if any) into the pending queue and recursing once to return the
// first expanded token (or the original identifier, if it is not a macro).
func (l *Lexer) lexOne() (token.Token, error) {
	for {
		if l.skipCommentOrSpace() {
			continue
		}
		// preprocessor directives are only recognized as the first
		// non-whitespace content on a line.
		if l.startOfLine && l.peekByte() == '#' {
			if err := l.handleDirective(); err != nil {
				return token.Token{}, err
			}
			continue
		}
		break
	}

	if l.pos >= len(l.src) {
		return l.makeTok(token.EOF, "", l.line, l.col, 0), nil
	}

	startLine, startCol := l.line, l.col
	c := l.peekByte()

	switch {
	case isIdentStart(c):
		return l.lexIdentOrMacro(startLine, startCol)
	case isDigit(c):
		return l.lexInteger(startLine, startCol)
	default:
		return l.lexPunct(startLine, startCol)
	}
}

// skipCommentOrSpace consumes one run of whitespace and/or a single line
// comment, reporting whether anything was consumed.
func (l *Lexer) skipCommentOrSpace() bool {
	consumed := false
	for l.pos < len(l.src) && isSpace(l.peekByte()) {
		l.advance()
		consumed = true
	}
	if l.peekByte() == '/' && l.peekByteAt(1) == '/' {
		for l.pos < len(l.src) && l.peekByte() != '\n' {
			l.advance()
		}
		if l.pos < len(l.src) {
			l.advance() // consume the newline too
		}
		consumed = true
	}
	return consumed
}

func (l *Lexer) lexIdentOrMacro(line, col int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
		l.advance()
	}
	name := string(l.src[start:l.pos])

	if m := l.lookupMacro(name); m != nil {
		l.expandMacro(m, line, col)
		return l.next()
	}

	kind := token.Ident
	if kw, ok := token.Keywords[name]; ok {
		kind = kw
	}
	return l.makeTok(kind, name, line, col, len(name)), nil
}

func (l *Lexer) lookupMacro(name string) *macro {
	for m := l.macros; m != nil; m = m.next {
		if m.name == name {
			return m
		}
	}
	return nil
}

// expandMacro copies m's token vector into the pending queue, rewriting
// each copy's source coordinates to the call site (line, col) and linking
// it back to the corresponding definition-site token via AltSource.
func (l *Lexer) expandMacro(m *macro, line, col int) {
	expanded := make([]token.Token, len(m.tokens))
	for i := range m.tokens {
		def := m.tokens[i]
		t := def
		t.Line = line
		t.Column = col
		t.LineText = l.curLineText()
		altCopy := def
		t.AltSource = &altCopy
		expanded[i] = t
	}
	l.pending = append(expanded, l.pending...)
}

func (l *Lexer) lexInteger(line, col int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		tok := l.makeTok(token.Integer, text, line, col, len(text))
		return token.Token{}, diag.New(stage, "integer literal out of range", &tok)
	}
	tok := l.makeTok(token.Integer, text, line, col, len(text))
	tok.IntValue = v
	return tok, nil
}

type punct struct {
	text string
	kind token.Kind
}

// punctuators, longest match first so that e.g. "<=" wins over "<".
var punctuators = []punct{
	{"<=", token.Le},
	{">=", token.Ge},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{";", token.Semi},
	{",", token.Comma},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"=", token.Assign},
	{"<", token.Lt},
	{">", token.Gt},
}

func (l *Lexer) lexPunct(line, col int) (token.Token, error) {
	rest := l.src[l.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(string(rest), p.text) {
			for range p.text {
				l.advance()
			}
			return l.makeTok(p.kind, p.text, line, col, len(p.text)), nil
		}
	}
	c := l.advance()
	return l.makeTok(token.Unknown, string(c), line, col, 1), nil
}
