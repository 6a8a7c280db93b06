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
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

// handleDirective is invoked with the cursor on the '#' that introduces a
// preprocessor line. Only a null directive ("#" alone) and "#define NAME
// <tokens until end of line>" are recognized.
func (l *Lexer) handleDirective() error {
	l.advance() // consume '#'
	for l.pos < len(l.src) && (l.peekByte() == ' ' || l.peekByte() == '\t') {
		l.advance()
	}

	if l.pos >= len(l.src) || l.peekByte() == '\n' {
		return nil // null directive
	}

	if !isIdentStart(l.peekByte()) {
		tok := l.makeTok(token.Unknown, "#", l.line, l.col, 1)
		return diag.New(stage, "unknown preprocessor command", &tok)
	}

	start := l.pos
	line, col := l.line, l.col
	for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
		l.advance()
	}
	directive := string(l.src[start:l.pos])

	if directive != "define" {
		tok := l.makeTok(token.Ident, directive, line, col, len(directive))
		return diag.New(stage, "unknown preprocessor command", &tok)
	}

	return l.handleDefine()
}

// handleDefine captures a macro name followed by tokens up to end of line
// and records a new macro definition, prepended so it shadows any earlier
// definition of the same name.
func (l *Lexer) handleDefine() error {
	for l.pos < len(l.src) && (l.peekByte() == ' ' || l.peekByte() == '\t') {
		l.advance()
	}
	if !isIdentStart(l.peekByte()) {
		tok := l.makeTok(token.Unknown, "define", l.line, l.col, 6)
		return diag.New(stage, "expected macro name after #define", &tok)
	}
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
		l.advance()
	}
	name := string(l.src[start:l.pos])

	var toks []token.Token
	for {
		for l.pos < len(l.src) && (l.peekByte() == ' ' || l.peekByte() == '\t') {
			l.advance()
		}
		if l.pos >= len(l.src) || l.peekByte() == '\n' {
			break
		}
		if l.peekByte() == '/' && l.peekByteAt(1) == '/' {
			for l.pos < len(l.src) && l.peekByte() != '\n' {
				l.advance()
			}
			break
		}
		line, col := l.line, l.col
		var tok token.Token
		var err error
		switch {
		case isIdentStart(l.peekByte()):
			tok, err = l.lexIdentRaw(line, col)
		case isDigit(l.peekByte()):
			tok, err = l.lexInteger(line, col)
		default:
			tok, err = l.lexPunct(line, col)
		}
		if err != nil {
			return err
		}
		toks = append(toks, tok)
	}

	l.macros = &macro{name: name, tokens: toks, next: l.macros}
	return nil
}

// lexIdentRaw lexes an identifier/keyword token without consulting the
// macro table, used while capturing a macro's own definition body (macro
// bodies are stored verbatim, not pre-expanded).
func (l *Lexer) lexIdentRaw(line, col int) (token.Token, error) {
	start := l.pos
	for l.pos < len(l.src) && isIdentCont(l.peekByte()) {
		l.advance()
	}
	name := string(l.src[start:l.pos])
	kind := token.Ident
	if kw, ok := token.Keywords[name]; ok {
		kind = kw
	}
	return l.makeTok(kind, name, line, col, len(name)), nil
}
