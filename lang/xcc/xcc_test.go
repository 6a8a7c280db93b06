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

package xcc_test

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/lang/xcc"
)

func compile(t *testing.T, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cc := &xcc.Context{Output: &out}
	err := xcc.Compile(context.Background(), cc, "t.c", []byte(src))
	return out.String(), err
}

func TestCompileSimpleFunction(t *testing.T) {
	src := `int add(int a, int b) {
	return a + b;
}
`
	asm, err := compile(t, src)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	for _, want := range []string{".global add", "add:", "ret"} {
		if !strings.Contains(asm, want) {
			t.Errorf("generated assembly missing %q; got:\n%s", want, asm)
		}
	}
}

func TestCompileCallsSupplementRuntime(t *testing.T) {
	src := `int main() {
	supplement_print_int(1 + 2);
	return 0;
}
`
	asm, err := compile(t, src)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !strings.Contains(asm, "call supplement_print_int") {
		t.Errorf("generated assembly missing call to supplement runtime; got:\n%s", asm)
	}
}

func TestCompileControlFlow(t *testing.T) {
	src := `int max(int a, int b) {
	if (a < b) {
		return b;
	} else {
		return a;
	}
}
`
	asm, err := compile(t, src)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !strings.Contains(asm, "setg") {
		t.Errorf("generated assembly missing comparison set instruction; got:\n%s", asm)
	}
}

func TestCompileWhileLoop(t *testing.T) {
	src := `int sum(int n) {
	int total;
	total = 0;
	while (n > 0) {
		total = total + n;
		n = n - 1;
	}
	return total;
}
`
	asm, err := compile(t, src)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	if !strings.Contains(asm, "jmp") {
		t.Errorf("generated assembly missing loop back-edge; got:\n%s", asm)
	}
}

func TestCompileUnknownIdentifierReportsResolveStage(t *testing.T) {
	src := `int main() {
	return undeclared;
}
`
	_, err := compile(t, src)
	if err == nil {
		t.Fatal("Compile() returned nil error, want a Resolve diagnostic")
	}
	d, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error type = %T, want *diag.Error", err)
	}
	if d.Stage != "Resolve" {
		t.Errorf("Stage = %q, want %q", d.Stage, "Resolve")
	}
}

func TestCompileMissingReturnReportsCheckStage(t *testing.T) {
	src := `int f() {
	int x;
	x = 1;
}
`
	_, err := compile(t, src)
	if err == nil {
		t.Fatal("Compile() returned nil error, want a Check diagnostic")
	}
	d, ok := err.(*diag.Error)
	if !ok {
		t.Fatalf("error type = %T, want *diag.Error", err)
	}
	if d.Stage != "Check" {
		t.Errorf("Stage = %q, want %q", d.Stage, "Check")
	}
}

func TestCompileVerboseDumpsEveryStage(t *testing.T) {
	var out, verbose bytes.Buffer
	cc := &xcc.Context{Output: &out, Verbose: &verbose}
	src := "int main() {\n\treturn 0;\n}\n"
	if err := xcc.Compile(context.Background(), cc, "t.c", []byte(src)); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	dump := verbose.String()
	for _, stage := range []string{"-- Parse --", "-- Resolve --", "-- Type --", "-- Allocate --"} {
		if !strings.Contains(dump, stage) {
			t.Errorf("verbose dump missing %q", stage)
		}
	}
}

func TestCompileCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	cc := &xcc.Context{Output: &out}
	src := "int main() {\n\treturn 0;\n}\n"
	err := xcc.Compile(ctx, cc, "t.c", []byte(src))
	if err != context.Canceled {
		t.Errorf("Compile() error = %v, want context.Canceled", err)
	}
}

func TestCompileLogsLevelTaggedCensusAndCompletionLines(t *testing.T) {
	var out, logbuf bytes.Buffer
	cc := &xcc.Context{
		Output: &out,
		Logger: log.New(&logbuf, "", 0),
	}
	src := "int main() {\n\treturn 0;\n}\n"
	if err := xcc.Compile(context.Background(), cc, "t.c", []byte(src)); err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	logged := logbuf.String()
	if !strings.Contains(logged, "[DEBUG] census:") {
		t.Errorf("log output missing level-tagged census line; got:\n%s", logged)
	}
	if !strings.Contains(logged, "[INFO] stage Generate: done") {
		t.Errorf("log output missing level-tagged completion line; got:\n%s", logged)
	}
}
