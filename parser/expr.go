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

// parseExpression is the widest expression production.
func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseAssignment()
}

// parseAssignment → Comparison ( '=' Assignment )?, right-associative.
func (p *Parser) parseAssignment() (*ast.Node, error) {
	lhs, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.accept(token.Assign); ok {
		rhs, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewNode(ast.Assign, *tok, lhs, rhs), nil
	}
	return lhs, nil
}

var cmpKinds = map[token.Kind]ast.Kind{
	token.Lt: ast.CmpLt,
	token.Gt: ast.CmpGt,
	token.Le: ast.CmpLe,
	token.Ge: ast.CmpGe,
}

// parseComparison → Additive ( ('<'|'>'|'<='|'>=') Additive )? — chaining
// is explicitly rejected.
func (p *Parser) parseComparison() (*ast.Node, error) {
	lhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	k, ok := cmpKinds[p.cur().Kind]
	if !ok {
		return lhs, nil
	}
	tok := *p.cur()
	p.pos++
	rhs, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	n := ast.NewNode(k, tok, lhs, rhs)
	if _, ok := cmpKinds[p.cur().Kind]; ok {
		return nil, p.errorf("sus chaining of comparison operators")
	}
	return n, nil
}

// parseAdditive → Multiplicative ( ('+'|'-') Multiplicative )*.
func (p *Parser) parseAdditive() (*ast.Node, error) {
	lhs, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var k ast.Kind
		switch p.cur().Kind {
		case token.Plus:
			k = ast.Add
		case token.Minus:
			k = ast.Subtract
		default:
			return lhs, nil
		}
		tok := *p.cur()
		p.pos++
		rhs, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewNode(k, tok, lhs, rhs)
	}
}

// parseMultiplicative → UnaryPostfix ( ('*'|'/'|'%') UnaryPostfix )*.
func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var k ast.Kind
		switch p.cur().Kind {
		case token.Star:
			k = ast.Multiply
		case token.Slash:
			k = ast.Divide
		case token.Percent:
			k = ast.Remainder
		default:
			return lhs, nil
		}
		tok := *p.cur()
		p.pos++
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = ast.NewNode(k, tok, lhs, rhs)
	}
}

// parseUnary handles the prefix '*' dereference operator before falling
// through to postfix call syntax.
func (p *Parser) parseUnary() (*ast.Node, error) {
	if tok, ok := p.accept(token.Star); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewNode(ast.Deref, *tok, operand), nil
	}
	return p.parseUnaryPostfix()
}

// parseUnaryPostfix → Primary ( '(' Arguments ')' )*.
func (p *Parser) parseUnaryPostfix() (*ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.at(token.LParen) {
		tok := *p.cur()
		p.pos++
		call := ast.NewNode(ast.Call, tok, expr)
		if !p.at(token.RParen) {
			for {
				arg, err := p.parseAssignment()
				if err != nil {
					return nil, err
				}
				call.Append(arg)
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		expr = call
	}
	return expr, nil
}

// parsePrimary → '(' Expression ')' | IntegerLiteral | Identifier.
func (p *Parser) parsePrimary() (*ast.Node, error) {
	if _, ok := p.accept(token.LParen); ok {
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	}
	if tok, ok := p.accept(token.Integer); ok {
		n := ast.NewNode(ast.IntegerLiteral, *tok)
		n.IntValue = tok.IntValue
		return n, nil
	}
	if tok, ok := p.accept(token.Ident); ok {
		n := ast.NewNode(ast.IdentUse, *tok)
		n.Ident = tok.Contents
		return n, nil
	}
	return nil, p.errorf("missing expression")
}
