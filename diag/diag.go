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

// Package diag renders stage-tagged compiler diagnostics with caret/tilde
// source highlighting and macro-expansion traces, the way the reference
// compiler's diagnostic routine does, minus the process abort: every
// diagnostic here is an ordinary error value.
package diag

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/db47h/xcc/token"
)

// Error is a single compiler diagnostic: a human-readable message anchored
// to a token range, tagged with the pipeline stage that raised it.
type Error struct {
	Stage string
	Msg   string
	Tok   *token.Token
	Cause error
}

func (e *Error) Error() string {
	if e.Tok != nil {
		return fmt.Sprintf("%s: %s: %s: %s", e.Stage, e.Tok.Pos(), e.Msg, e.Tok.String())
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Msg)
}

// Unwrap exposes the underlying cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.Cause }

// New builds a stage-tagged diagnostic anchored to tok.
func New(stage, msg string, tok *token.Token) *Error {
	return &Error{Stage: stage, Msg: msg, Tok: tok}
}

// Wrap builds a stage-tagged diagnostic around an underlying error, with no
// specific token (used for I/O failures at the driver edges).
func Wrap(stage string, cause error, msg string) *Error {
	return &Error{Stage: stage, Msg: msg, Cause: errors.Wrap(cause, msg)}
}

// Internal builds a diagnostic for a recovered internal assertion failure.
func Internal(stage string, v interface{}) *Error {
	return &Error{Stage: "Internal", Msg: fmt.Sprintf("assertion failed in stage %s: %v", stage, v)}
}

// Colorize controls whether Render emits ANSI color codes. Callers (the CLI
// driver) set this once, based on a terminal capability probe, instead of
// Render probing isatty itself — keeping this package free of platform code.
var Colorize = false

const (
	colorRed   = "\033[31;1m"
	colorReset = "\033[0m"
)

// Render writes a human-readable rendering of err to w: the stage-tagged
// message, a line of source context, a caret/tilde underline of the
// offending token, and (recursively, through Tok.AltSource) an
// "expanded from" trace for tokens produced by macro expansion.
func Render(w io.Writer, err *Error) {
	fmt.Fprintf(w, "%s: %s\n", err.Stage, err.Msg)
	if err.Cause != nil {
		fmt.Fprintf(w, "  caused by: %v\n", err.Cause)
	}
	tok := err.Tok
	for tok != nil {
		renderTokenContext(w, tok)
		tok = tok.AltSource
		if tok != nil {
			fmt.Fprintf(w, "expanded from %s:\n", tok.Pos())
		}
	}
}

func renderTokenContext(w io.Writer, tok *token.Token) {
	fmt.Fprintf(w, "  at %s\n", tok.Pos())
	line := tok.LineText
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	col := tok.Column - 1
	if col < 0 {
		col = 0
	}
	length := tok.Length
	if length < 1 {
		length = 1
	}
	prefix := leadingRunes(line, col)
	underline := strings.Repeat(" ", utf8.RuneCountInString(prefix))
	if Colorize {
		underline += colorRed
	}
	underline += "^" + strings.Repeat("~", length-1)
	if Colorize {
		underline += colorReset
	}
	fmt.Fprintf(w, "    %s\n", underline)
}

func leadingRunes(s string, n int) string {
	r := []rune(s)
	if n > len(r) {
		n = len(r)
	}
	return string(r[:n])
}
