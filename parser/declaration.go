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

func (p *Parser) currentTokenIsSpecifier() bool {
	switch p.cur().Kind {
	case token.KwInt, token.KwChar, token.KwVoid, token.KwShort,
		token.KwLong, token.KwSigned, token.KwUnsigned:
		return true
	}
	return false
}

// parseDeclarationSpecifiers collects one or more type-specifier keywords
// into an AST_DECLARATION_SPECIFIERS node. At least one specifier is
// required and an empty set is reported as a parse error here; a caller
// that doesn't see a specifier at all should not call this — see
// currentTokenIsSpecifier.
func (p *Parser) parseDeclarationSpecifiers() (*ast.Node, error) {
	start := *p.cur()
	specs := ast.NewNode(ast.DeclarationSpecifiers, start)
	for p.currentTokenIsSpecifier() {
		tok := *p.cur()
		p.pos++
		specs.Append(ast.NewNode(ast.Specifier, tok))
	}
	if len(specs.Nodes) == 0 {
		return nil, p.errorf("not type specified (and I won't assume int...)")
	}
	return specs, nil
}

// parseDeclarationOrDefinition parses a top-level or block-level
// declaration, reclassifying it as a FunctionDefinition if the single
// declarator is immediately followed by '{'.
func (p *Parser) parseDeclarationOrDefinition() (*ast.Node, error) {
	start := *p.cur()
	specs, err := p.parseDeclarationSpecifiers()
	if err != nil {
		return nil, err
	}

	decl := ast.NewNode(ast.Declaration, start, specs)

	declarator, err := p.parseDeclarator()
	if err != nil {
		return nil, err
	}

	if p.at(token.LBrace) {
		if _, ok := lastFuncSuffix(declarator); !ok {
			return nil, p.errorf("function definition but not a function")
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		group := ast.NewNode(ast.DeclaratorGroup, declarator.Tok, declarator)
		def := ast.NewNode(ast.FunctionDefinition, start, specs, group, body)
		return def, nil
	}

	group, err := p.parseDeclaratorGroupTail(declarator)
	if err != nil {
		return nil, err
	}
	decl.Append(group)

	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		d2, err := p.parseDeclarator()
		if err != nil {
			return nil, err
		}
		g2, err := p.parseDeclaratorGroupTail(d2)
		if err != nil {
			return nil, err
		}
		decl.Append(g2)
		if p.at(token.LBrace) {
			return nil, p.errorf("function definition can only have one declarator")
		}
	}

	if _, err := p.expect(token.Semi); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseDeclaratorGroupTail wraps declarator (with an optional '=
// initializer') into an AST_DECLARATOR_GROUP.
func (p *Parser) parseDeclaratorGroupTail(declarator *ast.Node) (*ast.Node, error) {
	group := ast.NewNode(ast.DeclaratorGroup, declarator.Tok, declarator)
	if _, ok := p.accept(token.Assign); ok {
		init, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		group.Append(init)
	}
	return group, nil
}

// lastFuncSuffix reports whether declarator's outermost layer is a
// DeclaratorFunc, which is required for it to be reclassified as a
// function definition.
func lastFuncSuffix(declarator *ast.Node) (*ast.Node, bool) {
	if declarator.Kind == ast.DeclaratorFunc {
		return declarator, true
	}
	return nil, false
}

// parseDeclarator parses: '*' Declarator | '(' Declarator ')' | Identifier,
// followed by zero or more '(' Parameters ')' function suffixes.
func (p *Parser) parseDeclarator() (*ast.Node, error) {
	var inner *ast.Node

	switch {
	case p.at(token.Star):
		tok := *p.cur()
		p.pos++
		operand, err2 := p.parseDeclarator()
		if err2 != nil {
			return nil, err2
		}
		inner = ast.NewNode(ast.DeclaratorPointer, tok, operand)
	case p.at(token.LParen):
		p.pos++
		grouped, err2 := p.parseDeclarator()
		if err2 != nil {
			return nil, err2
		}
		if _, err2 = p.expect(token.RParen); err2 != nil {
			return nil, err2
		}
		inner = ast.NewNode(ast.DeclaratorGroup, grouped.Tok, grouped)
	default:
		tok, ok := p.accept(token.Ident)
		if !ok {
			return nil, p.errorf("invalid declarator")
		}
		n := ast.NewNode(ast.DeclaratorIdent, *tok)
		n.Ident = tok.Contents
		inner = n
	}

	for p.at(token.LParen) {
		tok := *p.cur()
		p.pos++
		params, err2 := p.parseParameterList()
		if err2 != nil {
			return nil, err2
		}
		if _, err2 = p.expect(token.RParen); err2 != nil {
			return nil, err2
		}
		fn := ast.NewNode(ast.DeclaratorFunc, tok, inner)
		fn.Append(params...)
		inner = fn
	}

	return inner, nil
}

// parseParameterList parses a comma-separated parameter list. An empty
// list, or a single lone 'void', both mean "no parameters" (Open Question
// (a): preserved exactly as the reference behavior, not the classic K&R
// unspecified-prototype reading).
func (p *Parser) parseParameterList() ([]*ast.Node, error) {
	if p.at(token.RParen) {
		return nil, nil
	}
	if p.at(token.KwVoid) {
		// lookahead: a lone 'void' means no parameters.
		save := p.pos
		tok := *p.cur()
		p.pos++
		if p.at(token.RParen) {
			_ = tok
			return nil, nil
		}
		p.pos = save
	}

	var params []*ast.Node
	seenVoid := false
	for {
		start := *p.cur()
		specs, err := p.parseDeclarationSpecifiers()
		if err != nil {
			return nil, err
		}
		isVoidOnly := len(specs.Nodes) == 1 && specs.Nodes[0].Tok.Kind == token.KwVoid &&
			(p.at(token.Comma) || p.at(token.RParen))
		if seenVoid || (isVoidOnly && len(params) > 0) {
			return nil, p.errorf("void after parameter!")
		}
		param := ast.NewNode(ast.Parameter, start, specs)
		if !p.at(token.Comma) && !p.at(token.RParen) {
			declarator, err := p.parseDeclarator()
			if err != nil {
				return nil, err
			}
			group := ast.NewNode(ast.DeclaratorGroup, declarator.Tok, declarator)
			param.Append(group)
		} else if isVoidOnly {
			seenVoid = true
		}
		params = append(params, param)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	return params, nil
}
