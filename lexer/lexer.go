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

// Package lexer turns a source buffer into a token stream, expanding
// object-like #define macros inline as it goes.
package lexer

import (
	"github.com/db47h/xcc/token"
)

const stage = "Lex"

// macro is a stored #define: a name and the token vector to substitute for
// it. Macros are prepended to the lexer's list, so the most recent
// definition of a name is found first by a linear scan (LIFO shadowing).
type macro struct {
	name   string
	tokens []token.Token
	next   *macro
}

// Lexer produces a token stream from a source buffer.
type Lexer struct {
	src    []byte
	pos    int
	line   int
	col    int
	file   string
	macros *macro

	lineStart int // byte offset of the start of the current line

	// pending holds tokens copied in from a macro expansion, waiting to
	// be returned before the lexer resumes scanning raw source.
	pending []token.Token

	// startOfLine tracks whether no non-whitespace character has been
	// consumed yet on the current line, used to recognize a leading '#'
	// as a preprocessor directive introducer.
	startOfLine bool
}

// New creates a Lexer over src, attributing positions to file.
func New(file string, src []byte) *Lexer {
	return &Lexer{src: src, pos: 0, line: 1, col: 1, file: file, lineStart: 0, startOfLine: true}
}

// Lex runs the lexer to completion and returns the full token stream,
// terminated by a trailing EOF token. The first error encountered aborts
// lexing and is returned.
func Lex(file string, src []byte) ([]token.Token, error) {
	l := New(file, src)
	var out []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out, nil
		}
	}
}

func (l *Lexer) curLineText() string {
	end := l.lineStart
	for end < len(l.src) && l.src[end] != '\n' {
		end++
	}
	return string(l.src[l.lineStart:end])
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
		l.lineStart = l.pos
		l.startOfLine = true
	} else {
		l.col++
		if !isSpace(c) {
			l.startOfLine = false
		}
	}
	return c
}

func (l *Lexer) makeTok(kind token.Kind, contents string, line, col, length int) token.Token {
	return token.Token{
		Kind:     kind,
		Contents: contents,
		File:     l.file,
		Line:     line,
		Column:   col,
		Length:   length,
		LineText: l.curLineText(),
	}
}

// next lexes and returns a single token, consulting and updating the macro
// list as needed. Macro expansion is implemented by maintaining a small
// pending-token queue filled from a macro's token vector.
func (l *Lexer) next() (token.Token, error) {
	if len(l.pending) > 0 {
		t := l.pending[0]
		l.pending = l.pending[1:]
		return t, nil
	}
	return l.lexOne()
}
