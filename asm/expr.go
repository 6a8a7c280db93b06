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
	"github.com/db47h/xcc/diag"
)

// expr emits the code for n and returns the position holding its value.
// This is usually n.Pos itself, but an assignment returns its left
// operand's position rather than moving the result into a separate slot
// (no move needed, per the calling convention note), and a narrowing
// integer conversion returns the aliased position the allocator already
// gave it without emitting anything.
func (g *generator) expr(n *ast.Node) (*ast.ValuePosition, error) {
	switch n.Kind {
	case ast.IntegerLiteral:
		return g.integerLiteral(n)
	case ast.IdentUse:
		return n.Pos, nil
	case ast.Call:
		return g.call(n)
	case ast.Deref:
		return g.deref(n)
	case ast.Add:
		return g.binaryArith(n, "add", true)
	case ast.Subtract:
		return g.binaryArith(n, "sub", false)
	case ast.Multiply:
		return g.multiply(n)
	case ast.Divide:
		return g.divide(n, false)
	case ast.Remainder:
		return g.divide(n, true)
	case ast.CmpLt, ast.CmpGt, ast.CmpLe, ast.CmpGe:
		return g.comparison(n)
	case ast.Assign:
		return g.assign(n)
	case ast.ConvertToBool:
		return g.convertToBool(n)
	case ast.ConvertToInt:
		return g.convertToInt(n)
	}
	panic("unexpected expression node kind " + n.Kind.String())
}

func (g *generator) integerLiteral(n *ast.Node) (*ast.ValuePosition, error) {
	size := valueSize(n.Type)
	fmt.Fprintf(g.w, "\tmov%c $%d, %s\n", movSuffix(size), n.IntValue, operand(n.Pos, size))
	return n.Pos, nil
}

func (g *generator) call(n *ast.Node) (*ast.ValuePosition, error) {
	calleePos, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	if calleePos.Kind != ast.PosFuncName {
		panic("call target is not a direct function symbol")
	}

	args := n.Nodes[1:]
	if len(args) > len(argRegs) {
		return nil, diag.New(stage, "too many arguments in call", &n.Tok)
	}
	positions := make([]*ast.ValuePosition, len(args))
	for i, arg := range args {
		pos, err := g.expr(arg)
		if err != nil {
			return nil, err
		}
		positions[i] = pos
	}
	for i, arg := range args {
		size := valueSize(arg.Type)
		g.mov(size, operand(positions[i], size), regOperand(argRegs[i], size))
	}

	fmt.Fprintf(g.w, "\tcall %s\n", calleePos.FuncName)

	if n.Type.Kind == ast.TVoid {
		return n.Pos, nil
	}
	size := valueSize(n.Type)
	g.mov(size, regOperand(ast.RegRAX, size), operand(n.Pos, size))
	return n.Pos, nil
}

func (g *generator) deref(n *ast.Node) (*ast.ValuePosition, error) {
	ptr, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	g.mov(8, operand(ptr, 8), regOperand(ast.RegR11, 8))
	size := valueSize(n.Type)
	fmt.Fprintf(g.w, "\tmov%c (%%r11), %s\n", movSuffix(size), operand(n.Pos, size))
	return n.Pos, nil
}

// binaryArith implements ADD/SUB: if the destination slot already holds
// one of the operands (the commutative rewrite), the other operand folds
// into it directly; otherwise the left operand is bridged through %r11.
// The allocator gives an expression node the same stack slot as its first
// temporary-producing child, so when the left operand is a temporary the
// destination already holds it and the first case is taken.
func (g *generator) binaryArith(n *ast.Node, op string, commutative bool) (*ast.ValuePosition, error) {
	l, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := g.expr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	size := valueSize(n.Type)
	lOp, rOp, dOp := operand(l, size), operand(r, size), operand(n.Pos, size)

	switch {
	case dOp == lOp:
		fmt.Fprintf(g.w, "\t%s%c %s, %s\n", op, movSuffix(size), rOp, dOp)
	case commutative && dOp == rOp:
		fmt.Fprintf(g.w, "\t%s%c %s, %s\n", op, movSuffix(size), lOp, dOp)
	default:
		bridge := regOperand(ast.RegR11, size)
		g.mov(size, lOp, bridge)
		fmt.Fprintf(g.w, "\t%s%c %s, %s\n", op, movSuffix(size), rOp, bridge)
		g.mov(size, bridge, dOp)
	}
	return n.Pos, nil
}

func (g *generator) multiply(n *ast.Node) (*ast.ValuePosition, error) {
	l, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := g.expr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	size := valueSize(n.Type)
	rax := regOperand(ast.RegRAX, size)
	g.mov(size, operand(l, size), rax)
	fmt.Fprintf(g.w, "\timul%c %s, %s\n", movSuffix(size), operand(r, size), rax)
	g.mov(size, rax, operand(n.Pos, size))
	return n.Pos, nil
}

// divide implements both '/' and '%': usual arithmetic conversions
// already promoted both operands to at least int, so the 8-bit AH:AL
// division encoding never applies here.
func (g *generator) divide(n *ast.Node, wantRemainder bool) (*ast.ValuePosition, error) {
	l, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := g.expr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	size := valueSize(n.Type)
	rax := regOperand(ast.RegRAX, size)
	rdx := regOperand(ast.RegRDX, size)
	g.mov(size, operand(l, size), rax)

	if n.Type.IntegerType.Signed() {
		if size == 8 {
			fmt.Fprintln(g.w, "\tcqto")
		} else {
			fmt.Fprintln(g.w, "\tcltd")
		}
		fmt.Fprintf(g.w, "\tidiv%c %s\n", movSuffix(size), operand(r, size))
	} else {
		fmt.Fprintf(g.w, "\txor%c %s, %s\n", movSuffix(size), rdx, rdx)
		fmt.Fprintf(g.w, "\tdiv%c %s\n", movSuffix(size), operand(r, size))
	}

	result := rax
	if wantRemainder {
		result = rdx
	}
	g.mov(size, result, operand(n.Pos, size))
	return n.Pos, nil
}

// comparison computes R - L (the inverted order AT&T's cmp demands) and
// maps the requested relation onto the corresponding set instruction:
// LT->setg, LE->setge, GT->setl, GE->setle.
func (g *generator) comparison(n *ast.Node) (*ast.ValuePosition, error) {
	l, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := g.expr(n.Nodes[1])
	if err != nil {
		return nil, err
	}

	resSize := valueSize(n.Type)
	rax := regOperand(ast.RegRAX, resSize)
	fmt.Fprintf(g.w, "\txor%c %s, %s\n", movSuffix(resSize), rax, rax)

	cmpSize := valueSize(n.Nodes[0].Type)
	bridge := regOperand(ast.RegR11, cmpSize)
	g.mov(cmpSize, operand(r, cmpSize), bridge)
	fmt.Fprintf(g.w, "\tcmp%c %s, %s\n", movSuffix(cmpSize), operand(l, cmpSize), bridge)

	al := regOperand(ast.RegRAX, 1)
	fmt.Fprintf(g.w, "\t%s %s\n", setCC(n.Kind), al)

	g.mov(resSize, rax, operand(n.Pos, resSize))
	return n.Pos, nil
}

func setCC(k ast.Kind) string {
	switch k {
	case ast.CmpLt:
		return "setg"
	case ast.CmpLe:
		return "setge"
	case ast.CmpGt:
		return "setl"
	case ast.CmpGe:
		return "setle"
	}
	panic("setCC: not a comparison kind")
}

// assign moves the right operand's value into the left operand's storage
// and reports the left operand's own position as the expression's value,
// rather than copying into a third, freshly allocated slot.
func (g *generator) assign(n *ast.Node) (*ast.ValuePosition, error) {
	l, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	r, err := g.expr(n.Nodes[1])
	if err != nil {
		return nil, err
	}
	size := valueSize(n.Type)
	g.mov(size, operand(r, size), operand(l, size))
	return l, nil
}

func (g *generator) convertToBool(n *ast.Node) (*ast.ValuePosition, error) {
	src, err := g.expr(n.Nodes[0])
	if err != nil {
		return nil, err
	}
	srcSize := valueSize(n.Nodes[0].Type)
	rax := regOperand(ast.RegRAX, srcSize)
	fmt.Fprintf(g.w, "\txor%c %s, %s\n", movSuffix(srcSize), rax, rax)
	fmt.Fprintf(g.w, "\tcmp%c $0, %s\n", movSuffix(srcSize), operand(src, srcSize))
	al := regOperand(ast.RegRAX, 1)
	fmt.Fprintf(g.w, "\tsetne %s\n", al)

	dstSize := valueSize(n.Type)
	g.mov(dstSize, regOperand(ast.RegRAX, dstSize), operand(n.Pos, dstSize))
	return n.Pos, nil
}

// convertToInt implements both directions of an integer conversion. A
// narrowing (or same-size) conversion is a no-op: the position allocator
// already aliased n.Pos onto the source's low-order bytes. A widening
// conversion sign- or zero-extends through %r11 depending on the source's
// signedness.
func (g *generator) convertToInt(n *ast.Node) (*ast.ValuePosition, error) {
	child := n.Nodes[0]
	src, err := g.expr(child)
	if err != nil {
		return nil, err
	}
	srcSize := valueSize(child.Type)
	dstSize := valueSize(n.Type)
	if dstSize <= srcSize {
		return n.Pos, nil
	}

	bridge := regOperand(ast.RegR11, dstSize)
	signed := child.Type.AsRvalue().IntegerType.Signed()
	switch {
	case !signed && srcSize == 4 && dstSize == 8:
		// a plain 32-bit mov into a general purpose register zero-extends
		// the upper 32 bits on x86-64; there is no movzlq.
		fmt.Fprintf(g.w, "\tmovl %s, %s\n", operand(src, 4), regOperand(ast.RegR11, 4))
	case signed:
		fmt.Fprintf(g.w, "\tmovs%c%c %s, %s\n", movSuffix(srcSize), movSuffix(dstSize), operand(src, srcSize), bridge)
	default:
		fmt.Fprintf(g.w, "\tmovz%c%c %s, %s\n", movSuffix(srcSize), movSuffix(dstSize), operand(src, srcSize), bridge)
	}
	g.mov(dstSize, bridge, operand(n.Pos, dstSize))
	return n.Pos, nil
}
