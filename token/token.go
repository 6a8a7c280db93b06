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

// Package token defines the lexical atoms produced by the lexer and
// consumed by the parser and diagnostics packages.
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind int

// The complete set of token kinds recognized by the lexer.
const (
	EOF Kind = iota
	Unknown

	Ident
	Integer

	// keywords
	KwInt
	KwChar
	KwVoid
	KwShort
	KwLong
	KwSigned
	KwUnsigned
	KwReturn
	KwIf
	KwElse
	KwWhile

	// punctuators
	LParen
	RParen
	LBrace
	RBrace
	Semi
	Comma
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Lt
	Gt
	Le
	Ge
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Unknown:    "unknown token",
	Ident:      "identifier",
	Integer:    "integer literal",
	KwInt:      "'int'",
	KwChar:     "'char'",
	KwVoid:     "'void'",
	KwShort:    "'short'",
	KwLong:     "'long'",
	KwSigned:   "'signed'",
	KwUnsigned: "'unsigned'",
	KwReturn:   "'return'",
	KwIf:       "'if'",
	KwElse:     "'else'",
	KwWhile:    "'while'",
	LParen:     "'('",
	RParen:     "')'",
	LBrace:     "'{'",
	RBrace:     "'}'",
	Semi:       "';'",
	Comma:      "','",
	Plus:       "'+'",
	Minus:      "'-'",
	Star:       "'*'",
	Slash:      "'/'",
	Percent:    "'%'",
	Assign:     "'='",
	Lt:         "'<'",
	Gt:         "'>'",
	Le:         "'<='",
	Ge:         "'>='",
}

// Keywords maps the fixed set of reserved identifiers to their keyword Kind.
var Keywords = map[string]Kind{
	"int":      KwInt,
	"char":     KwChar,
	"void":     KwVoid,
	"short":    KwShort,
	"long":     KwLong,
	"signed":   KwSigned,
	"unsigned": KwUnsigned,
	"return":   KwReturn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is a single lexical atom, decorated with enough source information
// to render caret diagnostics and macro-expansion traces.
type Token struct {
	Kind     Kind
	Contents string // textual contents; for Integer, the decimal digits

	File   string
	Line   int // 1-based
	Column int // 1-based, in runes
	Length int // length in runes of Contents as it appears in the source

	// LineText is the full source line containing this token, used to
	// render caret/tilde diagnostics without re-scanning the buffer.
	LineText string

	// IntValue is populated for Integer tokens after range checking.
	IntValue int64

	// AltSource, when non-nil, is the macro-definition token that this
	// token was copied from during macro expansion. Diagnostics follow
	// this chain to print "expanded from" footers.
	AltSource *Token
}

// Pos renders a "file:line:column" location string.
func (t *Token) Pos() string {
	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

func (t *Token) String() string {
	if t.Contents != "" {
		return t.Contents
	}
	return t.Kind.String()
}
