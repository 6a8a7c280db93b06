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
	"io"
	"strings"

	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/internal/xcci"
)

const stage = "Generate"

// generator carries the running state of one translation unit's code
// generation: the output stream, the monotonic label counter and the
// current function's frame size (needed by every return site's epilogue).
type generator struct {
	w      *xcci.ErrWriter
	labels int
	frame  int
}

// Generate writes GAS-style AT&T x86-64 assembly text for program, a fully
// resolved, typed and position-allocated Program node, to w.
func Generate(w io.Writer, program *ast.Node) error {
	ew := xcci.NewErrWriter(w)
	fmt.Fprintln(ew, "# generated by xcc, do not edit")
	fmt.Fprintln(ew, ".section .text")
	fmt.Fprintln(ew, ".align 4")

	g := &generator{w: ew}
	for _, top := range program.Nodes {
		if top.Kind != ast.FunctionDefinition {
			continue
		}
		if err := g.function(top); err != nil {
			return err
		}
	}
	if ew.Err != nil {
		return diag.Wrap(stage, ew.Err, "writing assembly output")
	}
	return nil
}

func (g *generator) newLabel() string {
	g.labels++
	return fmt.Sprintf(".L%d", g.labels)
}

// function emits one function definition's label, prologue, parameter
// loads, body and (via each ReturnStmt) epilogue.
func (g *generator) function(fn *ast.Node) error {
	d := fn.Declaration
	if d == nil {
		panic("function definition missing its resolved declaration")
	}
	group, body := fn.Nodes[1], fn.Nodes[2]
	funcDecl := group.Nodes[0]
	if funcDecl.Kind != ast.DeclaratorFunc {
		panic("function definition's declarator is not a DeclaratorFunc")
	}
	params := funcDecl.Nodes[1:]
	if len(params) > len(argRegs) {
		return diag.New(stage, "too many parameters in function definition", &fn.Tok)
	}

	g.frame = body.MaxStackDepth
	fmt.Fprintf(g.w, ".global %s\n%s:\n", d.Name, d.Name)
	g.prologue()

	for i, p := range params {
		if len(p.Nodes) < 2 {
			continue // abstract (unnamed) parameter: nothing to store
		}
		ident := p.Nodes[1].Nodes[0]
		pos := ident.Declaration.Pos
		g.mov(pos.Size, regOperand(argRegs[i], pos.Size), operand(pos, pos.Size))
	}

	if err := g.block(body); err != nil {
		return err
	}
	return nil
}

func (g *generator) prologue() {
	if g.frame == 0 {
		return
	}
	fmt.Fprintln(g.w, "\tpush %rbp")
	fmt.Fprintln(g.w, "\tmovq %rsp, %rbp")
	fmt.Fprintf(g.w, "\tsub $%d, %%rsp\n", g.frame)
}

func (g *generator) epilogue() {
	if g.frame == 0 {
		fmt.Fprintln(g.w, "\tret")
		return
	}
	fmt.Fprintf(g.w, "\tadd $%d, %%rsp\n", g.frame)
	fmt.Fprintln(g.w, "\tpop %rbp")
	fmt.Fprintln(g.w, "\tret")
}

// mov emits a size-suffixed mov from src to dst, skipping the instruction
// entirely when both operands already denote the same storage (for
// example the narrowing-conversion aliasing done by the position
// allocator, or an Assign whose value lands back in its target).
// A stack slot and a stack slot, or a stack slot and a %rip-relative
// global, can't be the two operands of a single mov: x86-64 allows at
// most one memory operand per instruction. When both src and dst are
// memory, the move is bridged through %r11.
func (g *generator) mov(size int, src, dst string) {
	if src == dst {
		return
	}
	if isMemoryOperand(src) && isMemoryOperand(dst) {
		tmp := regOperand(ast.RegR11, size)
		fmt.Fprintf(g.w, "\tmov%c %s, %s\n", movSuffix(size), src, tmp)
		fmt.Fprintf(g.w, "\tmov%c %s, %s\n", movSuffix(size), tmp, dst)
		return
	}
	fmt.Fprintf(g.w, "\tmov%c %s, %s\n", movSuffix(size), src, dst)
}

// isMemoryOperand reports whether an AT&T-syntax operand rendered by
// operand denotes memory (stack-relative or %rip-relative) rather than
// a register: every register operand is a bare "%name", while both
// memory forms carry a parenthesized base.
func isMemoryOperand(operand string) bool {
	return strings.Contains(operand, "(")
}
