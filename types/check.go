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
	"github.com/db47h/xcc/supplement"
)

// checker carries the running state of the type propagation walk.
type checker struct {
	currentFunc *ast.Node
}

// Check runs type propagation over program, a fully resolved Program node
// (see resolve.Resolve), assigning a Type to every expression node and
// inserting explicit AST_CONVERT_TO_BOOL/AST_CONVERT_TO_INT nodes where
// C's implicit conversions apply.
func Check(program *ast.Node) error {
	c := &checker{}
	for _, top := range program.Nodes {
		if err := c.checkTopLevel(top); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkTopLevel(n *ast.Node) error {
	switch n.Kind {
	case ast.FunctionDefinition:
		return c.checkFunctionDefinition(n)
	case ast.Declaration:
		return c.checkDeclaration(n)
	}
	panic("unexpected top-level node kind " + n.Kind.String())
}

func (c *checker) checkBlock(n *ast.Node) error {
	for _, stmt := range n.Nodes {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *checker) checkStatement(n *ast.Node) error {
	switch n.Kind {
	case ast.BlockStatement:
		return c.checkBlock(n)
	case ast.Declaration:
		return c.checkDeclaration(n)
	case ast.StatementExpression:
		expr, err := c.checkExpr(n.Nodes[0])
		if err != nil {
			return err
		}
		n.Nodes[0] = expr
		return nil
	case ast.ReturnStmt:
		return c.checkReturn(n)
	case ast.If:
		cond, err := c.checkExpr(n.Nodes[0])
		if err != nil {
			return err
		}
		cond, err = implicitConvert(cond, ast.Integer(ast.Bool))
		if err != nil {
			return err
		}
		n.Nodes[0] = cond
		if err := c.checkStatement(n.Nodes[1]); err != nil {
			return err
		}
		if len(n.Nodes) == 3 {
			if err := c.checkStatement(n.Nodes[2]); err != nil {
				return err
			}
		}
		return nil
	case ast.While:
		cond, err := c.checkExpr(n.Nodes[0])
		if err != nil {
			return err
		}
		cond, err = implicitConvert(cond, ast.Integer(ast.Bool))
		if err != nil {
			return err
		}
		n.Nodes[0] = cond
		return c.checkStatement(n.Nodes[1])
	}
	panic("unexpected statement node kind " + n.Kind.String())
}

func (c *checker) checkReturn(n *ast.Node) error {
	if c.currentFunc == nil {
		panic("return statement outside of a function after resolve succeeded")
	}
	retType := c.currentFunc.Type.Underlying
	switch {
	case len(n.Nodes) == 0 && retType.Kind == ast.TVoid:
		return nil
	case len(n.Nodes) == 0:
		return diag.New(stage, "return without a value in a non-void function", &n.Tok)
	case retType.Kind == ast.TVoid:
		return diag.New(stage, "return with a value in a void function", &n.Tok)
	}
	val, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return err
	}
	val, err = implicitConvert(val, retType)
	if err != nil {
		return err
	}
	n.Nodes[0] = val
	return nil
}

// checkExpr types n and returns the node to use in its place (n itself,
// unless an implicit conversion had to be inserted around it).
func (c *checker) checkExpr(n *ast.Node) (*ast.Node, error) {
	switch n.Kind {
	case ast.IntegerLiteral:
		n.Type = ast.Integer(ast.Int)
		return n, nil
	case ast.IdentUse:
		return c.checkIdentUse(n)
	case ast.Call:
		return c.checkCall(n)
	case ast.Deref:
		return c.checkDeref(n)
	case ast.Add, ast.Subtract, ast.Multiply, ast.Divide, ast.Remainder:
		return c.checkBinaryArith(n)
	case ast.CmpLt, ast.CmpGt, ast.CmpLe, ast.CmpGe:
		return c.checkComparison(n)
	case ast.Assign:
		return c.checkAssign(n)
	}
	panic("unexpected expression node kind " + n.Kind.String())
}

func (c *checker) checkIdentUse(n *ast.Node) (*ast.Node, error) {
	d := n.Declaration
	if d == nil {
		panic("IdentUse missing its resolved Declaration")
	}
	if d.Type == nil {
		sym, ok := supplement.Lookup(d.Name)
		if !ok {
			return nil, diag.New(stage, "identifier has no type", &n.Tok)
		}
		d.Type = sym.FunctionType()
	}
	n.Type = d.Type
	return n, nil
}

func (c *checker) checkDeref(n *ast.Node) (*ast.Node, error) {
	operand, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	n.Nodes[0] = operand
	t := operand.Type.AsRvalue()
	if t.Kind != ast.TPointer {
		return nil, diag.New(stage, "can't dereference a non-pointer", &n.Tok)
	}
	n.Type = t.Underlying
	return n, nil
}

func (c *checker) checkBinaryArith(n *ast.Node) (*ast.Node, error) {
	l, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := c.checkExpr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	common, err := usualArithmeticConversions(l, r)
	if err != nil {
		return nil, err
	}
	l, err = implicitConvert(l, common)
	if err != nil {
		return nil, err
	}
	r, err = implicitConvert(r, common)
	if err != nil {
		return nil, err
	}
	n.Nodes[0], n.Nodes[1] = l, r
	n.Type = common
	return n, nil
}

func (c *checker) checkComparison(n *ast.Node) (*ast.Node, error) {
	l, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := c.checkExpr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	common, err := usualArithmeticConversions(l, r)
	if err != nil {
		return nil, err
	}
	l, err = implicitConvert(l, common)
	if err != nil {
		return nil, err
	}
	r, err = implicitConvert(r, common)
	if err != nil {
		return nil, err
	}
	n.Nodes[0], n.Nodes[1] = l, r
	n.Type = ast.Integer(ast.Int)
	return n, nil
}

// checkAssign types an assignment. Whether the left operand is actually an
// lvalue is verified later, by the check package's dedicated pass — here
// we only need its type to drive the right operand's conversion.
func (c *checker) checkAssign(n *ast.Node) (*ast.Node, error) {
	lhs, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	rhs, err := c.checkExpr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	rhs, err = implicitConvert(rhs, lhs.Type.AsRvalue())
	if err != nil {
		return nil, err
	}
	n.Nodes[0], n.Nodes[1] = lhs, rhs
	n.Type = lhs.Type.AsRvalue()
	return n, nil
}

func (c *checker) checkCall(n *ast.Node) (*ast.Node, error) {
	callee, err := c.checkExpr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	n.Nodes[0] = callee
	ft := callee.Type.AsRvalue()
	if ft.Kind != ast.TFunction {
		return nil, diag.New(stage, "callee is not a function", &n.Tok)
	}
	args := n.Nodes[1:]
	if len(args) != len(ft.Params) {
		return nil, diag.New(stage, "mismatch in number of parameters in call", &n.Tok)
	}
	for i, arg := range args {
		typed, err := c.checkExpr(arg)
		if err != nil {
			return nil, err
		}
		typed, err = implicitConvert(typed, ft.Params[i])
		if err != nil {
			return nil, err
		}
		n.Nodes[i+1] = typed
	}
	n.Type = ft.Underlying
	return n, nil
}
