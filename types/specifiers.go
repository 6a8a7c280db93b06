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

// Package types implements the type propagation pass: specifier folding,
// declarator type construction, usual arithmetic conversions and implicit
// conversion insertion.
package types

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

const stage = "Type"

type specifierCounts struct {
	void, char, short, long, intK, signed, unsigned int
}

// foldSpecifiers computes the base Type described by an
// AST_DECLARATION_SPECIFIERS node.
func foldSpecifiers(specs *ast.Node) (*ast.Type, error) {
	var c specifierCounts
	for _, s := range specs.Nodes {
		switch s.Tok.Kind {
		case token.KwVoid:
			c.void++
		case token.KwChar:
			c.char++
		case token.KwShort:
			c.short++
		case token.KwLong:
			c.long++
		case token.KwInt:
			c.intK++
		case token.KwSigned:
			c.signed++
		case token.KwUnsigned:
			c.unsigned++
		}
	}

	if c.void > 1 || c.char > 1 || c.short > 1 || c.intK > 1 || c.signed > 1 || c.unsigned > 1 {
		return nil, diag.New(stage, "duplicate specifier", &specs.Tok)
	}
	if c.long > 2 {
		return nil, diag.New(stage, "more than two 'long's in type specifier", &specs.Tok)
	}
	if c.signed > 0 && c.unsigned > 0 {
		return nil, diag.New(stage, "both signed and unsigned in type specifier", &specs.Tok)
	}

	exclusive := 0
	if c.void > 0 {
		exclusive++
	}
	if c.char > 0 {
		exclusive++
	}
	if c.short > 0 {
		exclusive++
	}
	// a bare 'int' does not conflict with 'short'/'long'/'signed'/'unsigned'
	if c.intK > 0 && c.short == 0 && c.long == 0 && c.char == 0 && c.void == 0 {
		exclusive++
	}
	if exclusive > 1 {
		return nil, diag.New(stage, "too many types in specifier", &specs.Tok)
	}

	if c.void > 0 {
		if c.signed > 0 || c.unsigned > 0 {
			return nil, diag.New(stage, "void doesn't have signedness!", &specs.Tok)
		}
		return ast.Void(), nil
	}

	unsigned := c.unsigned > 0

	switch {
	case c.char > 0:
		if c.signed > 0 {
			return ast.Integer(ast.SChar), nil
		}
		if unsigned {
			return ast.Integer(ast.UChar), nil
		}
		return ast.Integer(ast.Char), nil
	case c.short > 0:
		if unsigned {
			return ast.Integer(ast.UShort), nil
		}
		return ast.Integer(ast.Short), nil
	case c.long >= 2:
		if unsigned {
			return ast.Integer(ast.ULongLong), nil
		}
		return ast.Integer(ast.LongLong), nil
	case c.long == 1:
		if unsigned {
			return ast.Integer(ast.ULong), nil
		}
		return ast.Integer(ast.Long), nil
	case c.intK > 0 || c.signed > 0 || c.unsigned > 0:
		if unsigned {
			return ast.Integer(ast.UInt), nil
		}
		return ast.Integer(ast.Int), nil
	default:
		return nil, diag.New(stage, "not type specified (and I won't assume int...)", &specs.Tok)
	}
}
