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

package parser

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/token"
)

// parseStatement dispatches to the specific statement production for the
// current token.
func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.cur().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.LBrace:
		return p.parseBlock()
	}
	if p.currentTokenIsSpecifier() {
		return p.parseDeclarationOrDefinition()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	tok, err := p.expect(token.KwReturn)
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.ReturnStmt, *tok)
	if !p.at(token.Semi) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		n.Append(expr)
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	tok, err := p.expect(token.KwIf)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.If, *tok, cond, then)
	if _, ok := p.accept(token.KwElse); ok {
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		n.Append(els)
	}
	return n, nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	tok, err := p.expect(token.KwWhile)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.NewNode(ast.While, *tok, cond, body), nil
}

func (p *Parser) parseBlock() (*ast.Node, error) {
	tok, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(ast.BlockStatement, *tok)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		n.Append(stmt)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return n, nil
}

func (p *Parser) parseExpressionStatement() (*ast.Node, error) {
	tok := *p.cur()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return ast.NewNode(ast.StatementExpression, tok, expr), nil
}
