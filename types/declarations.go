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

package types

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

// buildType threads base down through a declarator's pointer/function
// layers, substituting a freshly wrapped base at each layer before
// recursing into its inner declarator, so that suffixes attached to a
// parenthesized sub-declarator correctly modify the type fed into it
// rather than the type produced by it (the textbook distinction between
// `*f()`, a function returning a pointer, and `(*f)()`, a pointer to a
// function). It returns the fully built type together with the
// DeclaratorIdent leaf it was built for.
func buildType(d *ast.Node, base *ast.Type) (*ast.Type, *ast.Node, error) {
	switch d.Kind {
	case ast.DeclaratorIdent:
		return base, d, nil
	case ast.DeclaratorGroup:
		if len(d.Nodes) == 0 {
			return nil, nil, diag.New(stage, "empty declarator group", &d.Tok)
		}
		return buildType(d.Nodes[0], base)
	case ast.DeclaratorPointer:
		if len(d.Nodes) != 1 {
			panic("DeclaratorPointer with wrong arity")
		}
		return buildType(d.Nodes[0], ast.NewPointer(base))
	case ast.DeclaratorFunc:
		if len(d.Nodes) < 1 {
			panic("DeclaratorFunc with no inner declarator")
		}
		params, err := paramTypes(d.Nodes[1:])
		if err != nil {
			return nil, nil, err
		}
		return buildType(d.Nodes[0], ast.NewFunction(base, params))
	}
	panic("buildType: unexpected declarator kind " + d.Kind.String())
}

// paramTypes computes the parameter type vector for a DeclaratorFunc from
// its AST_PARAMETER children, also typing each parameter's own
// declaration when it names an identifier.
func paramTypes(params []*ast.Node) ([]*ast.Type, error) {
	types := make([]*ast.Type, 0, len(params))
	for _, p := range params {
		if p.Kind != ast.Parameter {
			panic("expected Parameter node")
		}
		base, err := foldSpecifiers(p.Nodes[0])
		if err != nil {
			return nil, err
		}
		if len(p.Nodes) < 2 {
			// abstract (unnamed) parameter: type only, no declaration.
			types = append(types, base)
			continue
		}
		group := p.Nodes[1]
		full, ident, err := buildType(group.Nodes[0], base)
		if err != nil {
			return nil, err
		}
		if ident.Declaration != nil {
			ident.Declaration.Type = full
		}
		types = append(types, full)
	}
	return types, nil
}

// checkDeclaration types an AST_DECLARATION node: one AST_DECLARATION_SPECIFIERS
// followed by one or more AST_DECLARATOR_GROUP children, each possibly
// carrying an initializer expression.
func (c *checker) checkDeclaration(n *ast.Node) error {
	base, err := foldSpecifiers(n.Nodes[0])
	if err != nil {
		return err
	}
	for _, group := range n.Nodes[1:] {
		full, ident, err := buildType(group.Nodes[0], base)
		if err != nil {
			return err
		}
		if ident.Declaration == nil {
			panic("declarator ident missing its resolved Declaration")
		}
		if ident.Declaration.Type != nil && !ident.Declaration.Type.Compatible(full) {
			return diag.New(stage, "redeclaration with incompatible types", &ident.Tok)
		}
		ident.Declaration.Type = full
		n.Type = full

		if len(group.Nodes) == 2 {
			init, err := c.checkExpr(group.Nodes[1])
			if err != nil {
				return err
			}
			init, err = implicitConvert(init, full.AsRvalue())
			if err != nil {
				return err
			}
			group.Nodes[1] = init
		}
	}
	return nil
}

// checkFunctionDefinition types an AST_FUNCTION_DEFINITION: the
// declarator's type is built exactly as for an ordinary declaration, the
// current function is tracked for AST_RETURN_STMT checking, an implicit
// trailing return is appended to void-returning bodies (and to `main`,
// which also gets its signature validated), and the body is walked.
func (c *checker) checkFunctionDefinition(n *ast.Node) error {
	base, err := foldSpecifiers(n.Nodes[0])
	if err != nil {
		return err
	}
	group := n.Nodes[1]
	full, ident, err := buildType(group.Nodes[0], base)
	if err != nil {
		return err
	}
	if ident.Declaration == nil {
		panic("function definition declarator missing its resolved Declaration")
	}
	ident.Declaration.Type = full
	n.Type = full

	isMain := ident.Ident == "main"
	if isMain {
		if full.Underlying.Kind != ast.TInteger || full.Underlying.IntegerType != ast.Int || len(full.Params) != 0 {
			return diag.New(stage, "main must be declared as returning int with no parameters", &ident.Tok)
		}
	}

	prevFunc := c.currentFunc
	c.currentFunc = n
	body := n.Nodes[2]
	if err := c.checkBlock(body); err != nil {
		c.currentFunc = prevFunc
		return err
	}
	c.currentFunc = prevFunc

	retType := full.Underlying
	if retType.Kind == ast.TVoid || isMain {
		var ret *ast.Node
		if isMain {
			ret = ast.NewNode(ast.ReturnStmt, ident.Tok, zeroLiteral(ident.Tok))
		} else {
			ret = ast.NewNode(ast.ReturnStmt, ident.Tok)
		}
		ret.Declaration = ident.Declaration
		body.Append(ret)
	}
	return nil
}

func zeroLiteral(tok token.Token) *ast.Node {
	n := ast.NewNode(ast.IntegerLiteral, tok)
	n.IntValue = 0
	n.Type = ast.Integer(ast.Int)
	return n
}
