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

// Package alloc implements the storage-position allocator: a
// stack-discipline walk that assigns every expression and every
// local/parameter declaration a concrete ValuePosition, and records each
// block's maximum combined stack depth for the code generator's frame
// size.
package alloc

import "github.com/db47h/xcc/ast"

// status carries the running depth counters for one function's walk.
type status struct {
	temporaryDepth int
	localVarDepth  int
	maxDepth       int
}

func (s *status) total() int { return s.temporaryDepth + s.localVarDepth }

func (s *status) bump() {
	if t := s.total(); t > s.maxDepth {
		s.maxDepth = t
	}
}

// Allocate assigns storage positions across an entire resolved, typed
// Program node.
func Allocate(program *ast.Node) {
	for _, top := range program.Nodes {
		if top.Kind != ast.FunctionDefinition {
			allocateGlobal(top)
			continue
		}
		if top.Declaration != nil && top.Declaration.Pos == nil {
			top.Declaration.Pos = symbolPosition(top.Declaration)
		}
		s := &status{}
		walk(top, s)
	}
}

// allocateGlobal gives every identifier declared at file scope a
// FUNC_NAME-kind position: a symbol the assembler references by label,
// whether it names a function prototype or a true global variable (the
// allocator does not distinguish storage class beyond that; both live in
// a named, process-lifetime location rather than on some function's
// stack frame).
func allocateGlobal(n *ast.Node) {
	if n.Kind != ast.Declaration {
		return
	}
	for _, group := range n.Nodes[1:] {
		ident := declaratorIdentLeaf(group.Nodes[0])
		d := ident.Declaration
		if d == nil || d.Pos != nil {
			continue
		}
		d.Pos = symbolPosition(d)
	}
}

// declaratorIdentLeaf unwraps a declarator's pointer/function/group
// layers down to the DeclaratorIdent leaf it was built around, mirroring
// the type engine's buildType traversal but without threading a type.
func declaratorIdentLeaf(d *ast.Node) *ast.Node {
	for d.Kind != ast.DeclaratorIdent {
		d = d.Nodes[0]
	}
	return d
}

func symbolPosition(d *ast.Declaration) *ast.ValuePosition {
	pos := &ast.ValuePosition{Kind: ast.PosFuncName, FuncName: d.Name}
	if d.Type != nil && d.Type.Kind != ast.TFunction && d.Type.Kind != ast.TVoid {
		setSize(pos, d.Type)
	}
	return pos
}

// walk mirrors allocate_vals_recursive: temporaries are reclaimed on
// return from every node, locals are additionally reclaimed on return
// from a block.
func walk(n *ast.Node, s *status) {
	oldTemp, oldLocal := s.temporaryDepth, s.localVarDepth

	for _, c := range n.Nodes {
		walk(c, s)
	}

	s.temporaryDepth = oldTemp

	switch {
	case n.Kind.IsBlock():
		s.localVarDepth = oldLocal
		n.MaxStackDepth = s.maxDepth
	case n.Kind == ast.DeclaratorIdent && isLocalOrParam(n.Declaration):
		allocateLocal(n, s)
	case n.Kind == ast.DeclaratorGroup && len(n.Nodes) > 0 && n.Nodes[0].Pos != nil:
		// mirrors the original giving its VAR_DECLARE statement node a
		// position too, even though it is never read as a value.
		n.Pos = n.Nodes[0].Pos
	case n.Kind == ast.IdentUse:
		allocateIdentUse(n)
	case n.Kind == ast.ConvertToInt && isNarrowing(n):
		// a truncating conversion reuses the source's low-order bytes in
		// place rather than spilling to a fresh slot: no move is needed
		// at code generation time.
		src := n.Nodes[0].Pos
		n.Pos = &ast.ValuePosition{
			Kind: ast.PosStack, StackOffset: src.StackOffset,
			Size: n.Type.IntegerType.Size(), Alignment: n.Type.IntegerType.Size(),
			Signed: n.Type.IntegerType.Signed(),
		}
	case n.Kind.IsExpression():
		allocateExpr(n, s)
	}

	s.bump()
}

// isNarrowing reports whether a ConvertToInt node narrows (or keeps the
// same size as) its operand, the case that can alias the operand's
// position instead of allocating a fresh one.
func isNarrowing(n *ast.Node) bool {
	return n.Type.IntegerType.Size() <= n.Nodes[0].Type.AsRvalue().IntegerType.Size()
}

func isLocalOrParam(d *ast.Declaration) bool {
	return d != nil && (d.Kind == ast.DeclLocal || d.Kind == ast.DeclParam)
}

// allocateLocal gives a LOCAL or PARAM declarator's identifier a fresh
// stack slot, recorded both on the node (for the generator's convenience)
// and on the shared Declaration (so every later IdentUse can copy it).
func allocateLocal(n *ast.Node, s *status) {
	d := n.Declaration
	if d.Pos != nil {
		// a PARAM declarator is visited once as a parameter and, for a
		// function definition, is not revisited as a DeclaratorIdent
		// elsewhere, but a redeclared prototype parameter reusing the
		// same Declaration could be; only the first slot sticks.
		n.Pos = d.Pos
		return
	}
	pos := &ast.ValuePosition{Kind: ast.PosStack}
	setSize(pos, d.Type)
	s.localVarDepth += pos.Size
	pos.StackOffset = s.total()
	d.Pos = pos
	n.Pos = pos
}

func allocateIdentUse(n *ast.Node) {
	d := n.Declaration
	if d.Pos == nil {
		if d.Kind != ast.DeclFuncPrototype {
			panic("IdentUse's declaration has no position: allocator ordering bug")
		}
		// a prototype-only declaration not otherwise visited by
		// allocateGlobal: a supplement-registry extern, or a function
		// prototype declared inside a function body.
		d.Pos = symbolPosition(d)
	}
	n.Pos = d.Pos
}

func allocateExpr(n *ast.Node, s *status) {
	if n.Type.Kind == ast.TVoid {
		n.Pos = &ast.ValuePosition{Kind: ast.PosVoid}
		return
	}
	pos := &ast.ValuePosition{Kind: ast.PosStack}
	setSize(pos, n.Type)
	s.temporaryDepth += pos.Size
	pos.StackOffset = s.total()
	n.Pos = pos
}

// setSize fills in a ValuePosition's size/alignment/signedness from t,
// per the System V AMD64 ABI (integer alignment equals size; so does a
// pointer's).
func setSize(pos *ast.ValuePosition, t *ast.Type) {
	switch t.Kind {
	case ast.TInteger:
		pos.Size = t.IntegerType.Size()
		pos.Alignment = pos.Size
		pos.Signed = t.IntegerType.Signed()
	case ast.TPointer, ast.TFunction:
		pos.Size = 8
		pos.Alignment = 8
		pos.Signed = false
	}
}
