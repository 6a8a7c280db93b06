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

package alloc_test

import (
	"testing"

	"github.com/db47h/xcc/alloc"
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/lexer"
	"github.com/db47h/xcc/parser"
	"github.com/db47h/xcc/resolve"
	"github.com/db47h/xcc/supplement"
	"github.com/db47h/xcc/types"
)

// buildProgram runs every stage up to, but not including, Allocate, so
// each test exercises alloc.Allocate against a realistic, fully typed
// tree rather than a hand-built fixture.
func buildProgram(t *testing.T, src string) *ast.Node {
	t.Helper()
	toks, err := lexer.Lex("t.c", []byte(src))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	program, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := resolve.Resolve(program, supplement.Names()...); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := types.Check(program); err != nil {
		t.Fatalf("types.Check: %v", err)
	}
	return program
}

func findFunction(program *ast.Node, name string) *ast.Node {
	for _, top := range program.Nodes {
		if top.Kind == ast.FunctionDefinition && top.Declaration.Name == name {
			return top
		}
	}
	return nil
}

func TestAllocateGivesFunctionDefinitionAFuncNamePosition(t *testing.T) {
	program := buildProgram(t, "int f() { return 1; }\n")
	alloc.Allocate(program)

	f := findFunction(program, "f")
	if f == nil {
		t.Fatal("function f not found")
	}
	pos := f.Declaration.Pos
	if pos == nil {
		t.Fatal("function definition's own declaration has no position")
	}
	if pos.Kind != ast.PosFuncName || pos.FuncName != "f" {
		t.Errorf("pos = %+v, want PosFuncName \"f\"", pos)
	}
}

func TestAllocateGivesPrototypeOnlyFunctionAFuncNamePosition(t *testing.T) {
	src := `int g();
int f() { return g(); }
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	// the prototype's own Declaration is shared with the call site's
	// resolved identifier, so checking the call's callee position is
	// sufficient; walk to find it.
	f := findFunction(program, "f")
	var calleePos *ast.ValuePosition
	f.Walk(func(n *ast.Node) {
		if n.Kind == ast.Call {
			calleePos = n.Nodes[0].Pos
		}
	})
	if calleePos == nil {
		t.Fatal("call's callee has no position")
	}
	if calleePos.Kind != ast.PosFuncName || calleePos.FuncName != "g" {
		t.Errorf("calleePos = %+v, want PosFuncName \"g\"", calleePos)
	}
}

func TestAllocateSupplementExternGetsLazyFuncNamePosition(t *testing.T) {
	src := `int main() {
	supplement_print_nl();
	return 0;
}
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	main := findFunction(program, "main")
	var calleePos *ast.ValuePosition
	main.Walk(func(n *ast.Node) {
		if n.Kind == ast.Call {
			calleePos = n.Nodes[0].Pos
		}
	})
	if calleePos == nil {
		t.Fatal("call to supplement extern has no position")
	}
	if calleePos.Kind != ast.PosFuncName || calleePos.FuncName != "supplement_print_nl" {
		t.Errorf("calleePos = %+v, want PosFuncName \"supplement_print_nl\"", calleePos)
	}
}

func TestAllocateGlobalVariableGetsFuncNamePosition(t *testing.T) {
	src := `int counter;
int f() { return counter; }
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	f := findFunction(program, "f")
	var usePos *ast.ValuePosition
	f.Walk(func(n *ast.Node) {
		if n.Kind == ast.IdentUse && n.Ident == "counter" {
			usePos = n.Pos
		}
	})
	if usePos == nil {
		t.Fatal("global variable use has no position")
	}
	if usePos.Kind != ast.PosFuncName || usePos.FuncName != "counter" {
		t.Errorf("usePos = %+v, want PosFuncName \"counter\"", usePos)
	}
}

func TestAllocateLocalsGetDistinctStackSlots(t *testing.T) {
	src := `int f() {
	int a;
	int b;
	a = 1;
	b = 2;
	return a + b;
}
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	f := findFunction(program, "f")
	positions := map[string]*ast.ValuePosition{}
	f.Walk(func(n *ast.Node) {
		if n.Kind == ast.DeclaratorIdent {
			if n.Declaration.Kind == ast.DeclLocal {
				positions[n.Ident] = n.Pos
			}
		}
	})
	a, b := positions["a"], positions["b"]
	if a == nil || b == nil {
		t.Fatalf("missing local positions: %+v", positions)
	}
	if a.Kind != ast.PosStack || b.Kind != ast.PosStack {
		t.Errorf("locals should be stack positions, got a=%+v b=%+v", a, b)
	}
	if a.StackOffset == b.StackOffset {
		t.Errorf("a and b share the same stack offset %d", a.StackOffset)
	}
}

func TestAllocateConvertToIntNarrowingAliasesSourcePosition(t *testing.T) {
	src := `int f(int x) {
	char c;
	c = x;
	return c;
}
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	f := findFunction(program, "f")
	var narrowing *ast.Node
	f.Walk(func(n *ast.Node) {
		if n.Kind == ast.ConvertToInt && n.Type.IntegerType == ast.Char {
			narrowing = n
		}
	})
	if narrowing == nil {
		t.Fatal("expected a narrowing ConvertToInt node from int to char")
	}
	src0 := narrowing.Nodes[0].Pos
	if narrowing.Pos.Kind != ast.PosStack || src0.Kind != ast.PosStack {
		t.Fatalf("expected stack positions, got dst=%+v src=%+v", narrowing.Pos, src0)
	}
	if narrowing.Pos.StackOffset != src0.StackOffset {
		t.Errorf("narrowing conversion's position (offset %d) is not aliased to its source's (offset %d)",
			narrowing.Pos.StackOffset, src0.StackOffset)
	}
}

func TestAllocateBlockRecordsMaxStackDepth(t *testing.T) {
	src := `int f() {
	int a;
	a = 1 + 2 + 3;
	return a;
}
`
	program := buildProgram(t, src)
	alloc.Allocate(program)

	f := findFunction(program, "f")
	body := f.Nodes[2]
	if body.MaxStackDepth <= 0 {
		t.Errorf("MaxStackDepth = %d, want > 0", body.MaxStackDepth)
	}
}

func TestRegPositionSharesTheSamePointerPerPair(t *testing.T) {
	a := alloc.RegPosition(ast.RegRAX, 4)
	b := alloc.RegPosition(ast.RegRAX, 4)
	if a != b {
		t.Error("RegPosition returned distinct pointers for the same (register, size) pair")
	}
	c := alloc.RegPosition(ast.RegRAX, 8)
	if a == c {
		t.Error("RegPosition returned the same pointer for different sizes")
	}
	if c.Register != ast.RegRAX || c.Size != 8 {
		t.Errorf("RegPosition(RAX, 8) = %+v, want Register=RAX Size=8", c)
	}
}
