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

package asm

import (
	"fmt"

	"github.com/db47h/xcc/ast"
)

func (g *generator) block(n *ast.Node) error {
	for _, stmt := range n.Nodes {
		if err := g.statement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) statement(n *ast.Node) error {
	switch n.Kind {
	case ast.BlockStatement:
		return g.block(n)
	case ast.Declaration:
		return g.localDeclaration(n)
	case ast.StatementExpression:
		_, err := g.expr(n.Nodes[0])
		return err
	case ast.ReturnStmt:
		return g.returnStmt(n)
	case ast.If:
		return g.ifStmt(n)
	case ast.While:
		return g.whileStmt(n)
	}
	panic("unexpected statement node kind " + n.Kind.String())
}

// localDeclaration emits the initializer assignment for a block-scope
// declaration; the slot itself was already reserved by the allocator.
func (g *generator) localDeclaration(n *ast.Node) error {
	for _, group := range n.Nodes[1:] {
		if len(group.Nodes) != 2 {
			continue
		}
		ident := group.Nodes[0]
		init, err := g.expr(group.Nodes[1])
		if err != nil {
			return err
		}
		size := ident.Declaration.Pos.Size
		g.mov(size, operand(init, size), operand(ident.Declaration.Pos, size))
	}
	return nil
}

func (g *generator) returnStmt(n *ast.Node) error {
	if len(n.Nodes) == 1 {
		pos, err := g.expr(n.Nodes[0])
		if err != nil {
			return err
		}
		size := n.Nodes[0].Type.AsRvalue().IntegerType.Size()
		if n.Nodes[0].Type.Kind != ast.TInteger {
			size = 8
		}
		g.mov(size, operand(pos, size), regOperand(ast.RegRAX, size))
	}
	g.epilogue()
	return nil
}

func (g *generator) ifStmt(n *ast.Node) error {
	cond, err := g.expr(n.Nodes[0])
	if err != nil {
		return err
	}
	size := n.Nodes[0].Type.AsRvalue().IntegerType.Size()
	reg := regOperand(ast.RegRAX, size)
	g.mov(size, operand(cond, size), reg)
	fmt.Fprintf(g.w, "\ttest%c %s, %s\n", movSuffix(size), reg, reg)

	hasElse := len(n.Nodes) == 3
	falseLabel := g.newLabel()
	fmt.Fprintf(g.w, "\tjz %s\n", falseLabel)
	if err := g.statement(n.Nodes[1]); err != nil {
		return err
	}
	if hasElse {
		endLabel := g.newLabel()
		fmt.Fprintf(g.w, "\tjmp %s\n", endLabel)
		fmt.Fprintf(g.w, "%s:\n", falseLabel)
		if err := g.statement(n.Nodes[2]); err != nil {
			return err
		}
		fmt.Fprintf(g.w, "%s:\n", endLabel)
	} else {
		fmt.Fprintf(g.w, "%s:\n", falseLabel)
	}
	return nil
}

func (g *generator) whileStmt(n *ast.Node) error {
	topLabel := g.newLabel()
	endLabel := g.newLabel()
	fmt.Fprintf(g.w, "%s:\n", topLabel)

	cond, err := g.expr(n.Nodes[0])
	if err != nil {
		return err
	}
	size := n.Nodes[0].Type.AsRvalue().IntegerType.Size()
	reg := regOperand(ast.RegRAX, size)
	g.mov(size, operand(cond, size), reg)
	fmt.Fprintf(g.w, "\ttest%c %s, %s\n", movSuffix(size), reg, reg)
	fmt.Fprintf(g.w, "\tjz %s\n", endLabel)

	if err := g.statement(n.Nodes[1]); err != nil {
		return err
	}
	fmt.Fprintf(g.w, "\tjmp %s\n", topLabel)
	fmt.Fprintf(g.w, "%s:\n", endLabel)
	return nil
}
