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

package asm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/xcc/alloc"
	"github.com/db47h/xcc/asm"
	"github.com/db47h/xcc/lexer"
	"github.com/db47h/xcc/parser"
	"github.com/db47h/xcc/resolve"
	"github.com/db47h/xcc/supplement"
	"github.com/db47h/xcc/types"
)

// generate runs the full front end (through position allocation) over
// src and returns the emitted assembly text.
func generate(t *testing.T, src string) string {
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
	alloc.Allocate(program)

	var buf bytes.Buffer
	if err := asm.Generate(&buf, program); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return buf.String()
}

func TestGenerateEmitsFunctionLabelAndRet(t *testing.T) {
	out := generate(t, "int f() { return 0; }\n")
	for _, want := range []string{".global f", "f:", "ret"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got:\n%s", want, out)
		}
	}
}

func TestGenerateSkipsPrologueForEmptyFrame(t *testing.T) {
	out := generate(t, "void f() { return; }\n")
	if strings.Contains(out, "push %rbp") {
		t.Errorf("expected no stack frame for a function with no locals/temporaries; got:\n%s", out)
	}
}

func TestGenerateUsesFrameForLocals(t *testing.T) {
	out := generate(t, "int f() { int a; a = 1; return a; }\n")
	for _, want := range []string{"push %rbp", "movq %rsp, %rbp", "sub $", "add $", "pop %rbp"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q for a function using stack locals; got:\n%s", want, out)
		}
	}
}

func TestGenerateComparisonUsesInvertedSetCC(t *testing.T) {
	out := generate(t, "int f(int a, int b) { return a < b; }\n")
	if !strings.Contains(out, "setg") {
		t.Errorf("CmpLt should emit setg (inverted R-L comparison); got:\n%s", out)
	}
}

func TestGenerateCallPassesArgumentsInRegisters(t *testing.T) {
	out := generate(t, "int g(int a, int b) { return a; }\nint f() { return g(1, 2); }\n")
	if !strings.Contains(out, "call g") {
		t.Errorf("output missing call to g; got:\n%s", out)
	}
	// first and second integer arguments load through rdi/rsi per the
	// System V AMD64 convention.
	if !strings.Contains(out, "%edi") && !strings.Contains(out, "%rdi") {
		t.Errorf("output missing an argument load into the first arg register; got:\n%s", out)
	}
}

func TestGenerateTooManyParametersIsADiagnostic(t *testing.T) {
	_, err := func() (string, error) {
		toks, err := lexer.Lex("t.c", []byte(
			"int f(int a, int b, int c, int d, int e, int g, int h) { return a; }\n"))
		if err != nil {
			return "", err
		}
		program, err := parser.Parse(toks)
		if err != nil {
			return "", err
		}
		if _, err := resolve.Resolve(program, supplement.Names()...); err != nil {
			return "", err
		}
		if err := types.Check(program); err != nil {
			return "", err
		}
		alloc.Allocate(program)
		var buf bytes.Buffer
		return "", asm.Generate(&buf, program)
	}()
	if err == nil {
		t.Fatal("Generate() returned nil error, want a diagnostic for too many parameters")
	}
	if !strings.Contains(err.Error(), "too many parameters") {
		t.Errorf("error = %v, want it to mention too many parameters", err)
	}
}

func TestGenerateDivideUsesSignedExtension(t *testing.T) {
	out := generate(t, "int f(int a, int b) { return a / b; }\n")
	if !strings.Contains(out, "cltd") {
		t.Errorf("signed int division should sign-extend via cltd; got:\n%s", out)
	}
	if !strings.Contains(out, "idivl") {
		t.Errorf("signed int division should use idivl; got:\n%s", out)
	}
}

func TestGenerateWhileLoopHasBackEdge(t *testing.T) {
	out := generate(t, "int f(int n) { while (n > 0) { n = n - 1; } return n; }\n")
	if !strings.Contains(out, "jmp") || !strings.Contains(out, "jz") {
		t.Errorf("while loop should emit a conditional exit and an unconditional back edge; got:\n%s", out)
	}
}
