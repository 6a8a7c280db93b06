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

// Package xcci holds small helpers shared between multiple xcc packages
// that don't deserve their own top-level package.
package xcci

import (
	"io"

	"github.com/pkg/errors"
)

// ErrWriter wraps an io.Writer, latching the first write error so that
// callers emitting many small fragments (assembly lines, AST dump lines)
// can check for failure once at the end instead of after every Write.
type ErrWriter struct {
	w   io.Writer
	Err error
}

// NewErrWriter returns a new ErrWriter wrapping w.
func NewErrWriter(w io.Writer) *ErrWriter {
	return &ErrWriter{w: w}
}

func (w *ErrWriter) Write(p []byte) (n int, err error) {
	if w.Err != nil {
		return 0, w.Err
	}
	n, err = w.w.Write(p)
	if err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
	return n, w.Err
}

// WriteString writes s, same latching behavior as Write.
func (w *ErrWriter) WriteString(s string) {
	if w.Err != nil {
		return
	}
	if _, err := io.WriteString(w.w, s); err != nil {
		w.Err = errors.Wrap(err, "write failed")
	}
}
