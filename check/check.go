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

// Package check runs the miscellaneous validations that don't fit
// naturally into name resolution or type propagation: that assignment
// targets are lvalues, and that every non-void function actually returns
// a value somewhere in its body.
package check

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
)

const stage = "Check"

// Run walks program (after resolve.Resolve and types.Check have both
// succeeded) and reports the first violation found.
func Run(program *ast.Node) error {
	for _, top := range program.Nodes {
		if top.Kind != ast.FunctionDefinition {
			continue
		}
		if err := checkLvalues(top); err != nil {
			return err
		}
		if err := checkReturnPresence(top); err != nil {
			return err
		}
	}
	return nil
}

// checkLvalues verifies that every AST_ASSIGN node's left operand is an
// lvalue-producing kind. Only AST_IDENT_USE qualifies today; AST_DEREF
// will join it once pointer assignment is wired into the grammar.
func checkLvalues(n *ast.Node) error {
	var walkErr error
	n.Walk(func(m *ast.Node) {
		if walkErr != nil || m.Kind != ast.Assign {
			return
		}
		if !isLvalue(m.Nodes[0]) {
			walkErr = diag.New(stage, "left operand of assignment must be an lvalue", &m.Tok)
		}
	})
	return walkErr
}

func isLvalue(n *ast.Node) bool {
	return n.Kind == ast.IdentUse
}

// checkReturnPresence verifies that a function definition whose return
// type is not void contains at least one AST_RETURN_STMT in its body.
func checkReturnPresence(fn *ast.Node) error {
	retType := fn.Type.Underlying
	if retType.Kind == ast.TVoid {
		return nil
	}
	body := fn.Nodes[2]
	found := false
	body.Walk(func(m *ast.Node) {
		if m.Kind == ast.ReturnStmt {
			found = true
		}
	})
	if !found {
		return diag.New(stage, "function doesn't have a return", &fn.Tok)
	}
	return nil
}
