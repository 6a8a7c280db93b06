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

package diag_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

func TestErrorString(t *testing.T) {
	tok := &token.Token{File: "a.c", Line: 1, Column: 5, Contents: "x"}
	err := diag.New("Parse", "unexpected token", tok)
	want := "Parse: a.c:1:5: unexpected token: x"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithoutToken(t *testing.T) {
	err := diag.New("Check", "no return statement", nil)
	want := "Check: no return statement"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := diag.Wrap("Generate", cause, "write failed")
	if !strings.Contains(err.Error(), "Generate") {
		t.Errorf("Error() = %q, missing stage", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find the wrapped cause")
	}
}

func TestInternal(t *testing.T) {
	err := diag.Internal("Allocate", "nil declaration")
	if err.Stage != "Internal" {
		t.Errorf("Stage = %q, want %q", err.Stage, "Internal")
	}
	if !strings.Contains(err.Msg, "Allocate") || !strings.Contains(err.Msg, "nil declaration") {
		t.Errorf("Msg = %q, missing stage/cause", err.Msg)
	}
}

func TestRenderShowsSourceContextAndCaret(t *testing.T) {
	defer func(prev bool) { diag.Colorize = prev }(diag.Colorize)
	diag.Colorize = false

	tok := &token.Token{
		File:     "a.c",
		Line:     2,
		Column:   5,
		Length:   3,
		Contents: "foo",
		LineText: "int foo;",
	}
	err := diag.New("Parse", "unknown identifier", tok)

	var buf bytes.Buffer
	diag.Render(&buf, err)
	out := buf.String()

	for _, want := range []string{"Parse: unknown identifier", "at a.c:2:5", "int foo;", "^~~"} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q; got:\n%s", want, out)
		}
	}
}

func TestRenderFollowsMacroExpansionChain(t *testing.T) {
	def := &token.Token{File: "a.c", Line: 1, Column: 1, LineText: "#define X bad"}
	use := &token.Token{File: "a.c", Line: 5, Column: 3, LineText: "X;", AltSource: def}
	err := diag.New("Parse", "bad token", use)

	var buf bytes.Buffer
	diag.Render(&buf, err)
	out := buf.String()
	if !strings.Contains(out, "expanded from a.c:1:1") {
		t.Errorf("Render output missing macro trace; got:\n%s", out)
	}
}

func TestRenderToDiscardingWriterDoesNotPanic(t *testing.T) {
	// Render has no error return; this just documents it tolerates a
	// writer that discards everything without panicking.
	err := diag.New("Lex", "oops", nil)
	diag.Render(io.Discard, err)
}
