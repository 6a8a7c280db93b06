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

package xcci_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/db47h/xcc/internal/xcci"
)

type failingWriter struct{ err error }

func (f failingWriter) Write(p []byte) (int, error) { return 0, f.err }

func TestErrWriterPassesThroughOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	w := xcci.NewErrWriter(&buf)
	w.WriteString("hello ")
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatalf("Write returned %v", err)
	}
	if got, want := buf.String(), "hello world"; got != want {
		t.Errorf("buf = %q, want %q", got, want)
	}
	if w.Err != nil {
		t.Errorf("Err = %v, want nil", w.Err)
	}
}

func TestErrWriterLatchesFirstError(t *testing.T) {
	boom := errors.New("boom")
	w := xcci.NewErrWriter(failingWriter{boom})

	if _, err := w.Write([]byte("a")); err == nil {
		t.Fatal("Write returned nil error, want non-nil")
	}
	firstErr := w.Err

	w.WriteString("b")
	if w.Err != firstErr {
		t.Errorf("Err changed after a second write: %v -> %v", firstErr, w.Err)
	}

	n, err := w.Write([]byte("c"))
	if n != 0 || err != firstErr {
		t.Errorf("Write after latch = (%d, %v), want (0, %v)", n, err, firstErr)
	}
}

func TestArenaCounts(t *testing.T) {
	var a xcci.Arena
	a.CountNode()
	a.CountNode()
	a.CountType()
	a.CountDeclaration()
	a.CountDeclaration()
	a.CountDeclaration()

	nodes, types, decls := a.Counts()
	if nodes != 2 || types != 1 || decls != 3 {
		t.Errorf("Counts() = (%d, %d, %d), want (2, 1, 3)", nodes, types, decls)
	}
}
