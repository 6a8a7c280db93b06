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

// Package xcc wires the lexer, parser, resolver, type engine, checker,
// position allocator and code emitter into a single Compile entry point.
package xcc

import (
	"context"
	"io"
	"log"

	"github.com/db47h/xcc/alloc"
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/asm"
	"github.com/db47h/xcc/check"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/internal/xcci"
	"github.com/db47h/xcc/lexer"
	"github.com/db47h/xcc/parser"
	"github.com/db47h/xcc/resolve"
	"github.com/db47h/xcc/supplement"
	"github.com/db47h/xcc/types"
)

// Context carries everything one compilation needs that would otherwise
// have to live in package-level state: where the generated assembly
// goes, an optional verbose AST-dump sink, and a logger for internal
// pipeline tracing. A Context is used for exactly one Compile call; it
// holds no state that could leak between compilations.
type Context struct {
	// Output receives the generated assembly text.
	Output io.Writer

	// Verbose, if non-nil, receives an AST dump after every pipeline
	// stage that mutates the tree.
	Verbose io.Writer

	// Logger, if non-nil, receives pipeline trace lines (the token
	// count, a node/type/declaration census and a completion line; no
	// timings), distinct from and never a substitute for the
	// *diag.Error values Compile returns.
	Logger *log.Logger
}

// logf emits a level-tagged line through c.Logger, in the
// "[LEVEL] message" form github.com/hashicorp/logutils.LevelFilter
// expects at the driver end; a line with no recognized level prefix
// would bypass the filter entirely, so every call site must name one.
func (c *Context) logf(level, format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf("[%s] "+format, append([]interface{}{level}, args...)...)
	}
}

// Compile runs the full pipeline over a single translation unit: lex,
// parse, resolve, type, check, allocate, generate. file names the
// translation unit for diagnostics; src is its full source text. The
// generated assembly is written to cc.Output.
//
// Cancellation via ctx is checked between pipeline stages only — no
// individual pass is large enough to warrant finer-grained checks. An
// internal assertion failure (a panic raised by an invariant the earlier
// stages are supposed to guarantee) is recovered here and reported as a
// stage-tagged "Internal" diagnostic rather than crashing the process.
func Compile(ctx context.Context, cc *Context, file string, src []byte) (err error) {
	stage := "Lex"
	defer func() {
		if r := recover(); r != nil {
			err = diag.Internal(stage, r)
		}
	}()

	toks, err := lexer.Lex(file, src)
	if err != nil {
		return err
	}
	cc.logf("DEBUG", "stage %s: %d tokens consumed", stage, len(toks))
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Parse"
	program, err := parser.Parse(toks)
	if err != nil {
		return err
	}
	if cc.Verbose != nil {
		if err := DumpAST(cc.Verbose, stage, program); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Resolve"
	if _, err := resolve.Resolve(program, supplement.Names()...); err != nil {
		return err
	}
	if cc.Verbose != nil {
		if err := DumpAST(cc.Verbose, stage, program); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Type"
	if err := types.Check(program); err != nil {
		return err
	}
	if cc.Verbose != nil {
		if err := DumpAST(cc.Verbose, stage, program); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Check"
	if err := check.Run(program); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Allocate"
	alloc.Allocate(program)
	if cc.Verbose != nil {
		if err := DumpAST(cc.Verbose, stage, program); err != nil {
			return err
		}
	}
	census(cc, program)
	if err := ctx.Err(); err != nil {
		return err
	}

	stage = "Generate"
	if err := asm.Generate(cc.Output, program); err != nil {
		return err
	}
	cc.logf("INFO", "stage %s: done", stage)
	return nil
}

// census walks the finished tree once, tallying it through an
// xcci.Arena, and logs the totals at debug level. It replaces the
// original compiler's leak-checking allocation counter: there is
// nothing to free here, so the only use for a count of nodes, types and
// declarations is this one diagnostic line.
func census(cc *Context, program *ast.Node) {
	if cc.Logger == nil {
		return
	}
	var a xcci.Arena
	seenTypes := make(map[*ast.Type]bool)
	seenDecls := make(map[*ast.Declaration]bool)
	program.Walk(func(n *ast.Node) {
		a.CountNode()
		if n.Type != nil && !seenTypes[n.Type] {
			seenTypes[n.Type] = true
			a.CountType()
		}
		if n.Declaration != nil && !seenDecls[n.Declaration] {
			seenDecls[n.Declaration] = true
			a.CountDeclaration()
		}
	})
	nodes, typeCount, decls := a.Counts()
	cc.logf("DEBUG", "census: %d nodes, %d distinct types, %d distinct declarations", nodes, typeCount, decls)
}
