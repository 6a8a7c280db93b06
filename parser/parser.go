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

// Package parser implements a single-pass recursive-descent parser that
// builds a decorated AST following C's declaration/declarator grammar.
package parser

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

const stage = "Parse"

// Parser holds the token vector and a single index into it.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a Parser over a complete token stream (as produced by
// lexer.Lex, including the trailing EOF token).
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses a full translation unit, producing an ast.Program node.
func Parse(toks []token.Token) (*ast.Node, error) {
	return New(toks).ParseProgram()
}

func (p *Parser) cur() *token.Token {
	if p.pos >= len(p.toks) {
		return &p.toks[len(p.toks)-1] // EOF
	}
	return &p.toks[p.pos]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// accept consumes and returns the current token if it matches k.
func (p *Parser) accept(k token.Kind) (*token.Token, bool) {
	if p.at(k) {
		t := p.cur()
		p.pos++
		return t, true
	}
	return nil, false
}

// expect consumes the current token if it matches k, else fails.
func (p *Parser) expect(k token.Kind) (*token.Token, error) {
	if t, ok := p.accept(k); ok {
		return t, nil
	}
	return nil, diag.New(stage, "expected "+k.String()+", found "+p.cur().Kind.String(), p.cur())
}

func (p *Parser) errorf(msg string) error {
	return diag.New(stage, msg, p.cur())
}

// ParseProgram parses Declaration* until EOF.
func (p *Parser) ParseProgram() (*ast.Node, error) {
	root := ast.NewNode(ast.Program, *p.cur())
	for !p.at(token.EOF) {
		decl, err := p.parseDeclarationOrDefinition()
		if err != nil {
			return nil, err
		}
		root.Append(decl)
	}
	return root, nil
}
