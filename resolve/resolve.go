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

// Package resolve implements the two-scope name resolver: a single
// depth-first walk that attaches a Declaration to every declarator and
// identifier use, enforcing C block scoping as it goes.
package resolve

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
)

const stage = "Resolve"

// Resolver carries the walk's running state.
type Resolver struct {
	inScope     []*ast.Declaration
	currentFunc *ast.Node
	all         []*ast.Declaration
}

// Resolve runs name resolution over program, a Program node as produced by
// the parser. externs lists identifiers (e.g. the supplement registry's
// symbol names) that should resolve as if forward-declared at file scope
// even though no declarator for them appears in program: a Declaration
// stub is seeded for each, with no Type attached, leaving the type engine
// to fill one in from its own registry on first actual use. Resolve
// returns the Resolver so callers (verbose dumps) can inspect the full
// declaration list via All.
func Resolve(program *ast.Node, externs ...string) (*Resolver, error) {
	r := &Resolver{}
	for _, name := range externs {
		d := &ast.Declaration{Name: name, Kind: ast.DeclFuncPrototype, Scope: 0}
		r.all = append(r.all, d)
		r.inScope = append(r.inScope, d)
	}
	if err := r.walk(program, nil, nil, nil, 0); err != nil {
		return nil, err
	}
	return r, nil
}

// All returns every declaration created during this resolve, in order of
// first appearance, for use by verbose diagnostics dumps.
func (r *Resolver) All() []*ast.Declaration { return r.all }

// findSameScopeConflict returns the existing declaration that ast's name
// conflicts (or compatibly overlaps) with at the given scope, and whether
// it is a compatible-prototype match rather than a hard conflict.
func (r *Resolver) findSameScopeConflict(name string, scope int, isPrototype bool) (decl *ast.Declaration, compatible bool, found bool) {
	for i := len(r.inScope) - 1; i >= 0; i-- {
		d := r.inScope[i]
		if d.Scope == scope && d.Name == name {
			if d.Kind == ast.DeclFuncPrototype && isPrototype {
				return d, true, true
			}
			return d, false, true
		}
	}
	return nil, false, false
}

func (r *Resolver) handleDeclaratorIdent(n, parent, declarationRoot, declaratorGroup *ast.Node, scope int) error {
	providesFuncPrototype := parent != nil && parent.Kind == ast.DeclaratorFunc

	existing, compatible, found := r.findSameScopeConflict(n.Ident, scope, providesFuncPrototype)
	if found && !compatible {
		return diag.New(stage, "shadowing of existing declaration!", &n.Tok)
	}

	var d *ast.Declaration
	if found && compatible {
		d = existing
	} else {
		d = &ast.Declaration{Name: n.Ident, Scope: scope}
		r.all = append(r.all, d)
		r.inScope = append(r.inScope, d)
	}

	switch {
	case providesFuncPrototype:
		d.Kind = ast.DeclFuncPrototype
		if declarationRoot.Kind == ast.FunctionDefinition {
			declarationRoot.Declaration = d
		}
	case declarationRoot.Kind == ast.FunctionDefinition:
		return diag.New(stage, "function definition but not a function", &n.Tok)
	case declarationRoot.Kind == ast.Parameter:
		d.Kind = ast.DeclParam
		declarationRoot.Declaration = d
	case r.currentFunc != nil:
		d.Kind = ast.DeclLocal
	default:
		d.Kind = ast.DeclGlobal
	}

	n.Declaration = d
	d.LastDeclaratorAST = n
	if declaratorGroup != nil {
		declaratorGroup.Declaration = d
	}

	if declarationRoot.Kind == ast.FunctionDefinition {
		if d.DefinitionAST != nil {
			return diag.New(stage, "redefinition of function", &n.Tok)
		}
		d.DefinitionAST = declarationRoot
	}
	return nil
}

func (r *Resolver) handleIdentUse(n *ast.Node) error {
	for i := len(r.inScope) - 1; i >= 0; i-- {
		if r.inScope[i].Name == n.Ident {
			n.Declaration = r.inScope[i]
			return nil
		}
	}
	return diag.New(stage, "unknown identifier", &n.Tok)
}

func (r *Resolver) walk(n, parent, declarationRoot, declaratorGroup *ast.Node, scope int) error {
	switch n.Kind {
	case ast.DeclaratorIdent:
		if err := r.handleDeclaratorIdent(n, parent, declarationRoot, declaratorGroup, scope); err != nil {
			return err
		}
	case ast.IdentUse:
		if err := r.handleIdentUse(n); err != nil {
			return err
		}
	case ast.ReturnStmt:
		if r.currentFunc != nil {
			n.Declaration = r.currentFunc.Declaration
		}
	}

	oldDeclarationRoot := declarationRoot

	if n.Kind == ast.Declaration || n.Kind == ast.Parameter || n.Kind == ast.FunctionDefinition {
		declarationRoot = n
	}

	if n.Kind == ast.DeclaratorGroup {
		declaratorGroup = n
		if declarationRoot != nil && declarationRoot.Kind == ast.Parameter && len(n.Nodes) == 2 {
			return diag.New(stage, "can't have an initialiser for parameter", &n.Tok)
		}
	}

	oldNumLocals := len(r.inScope)
	// A function's own top-level body block does not open a further
	// nested scope: its parameters and its direct local declarations
	// coexist in one scope (a body local with the same name as a
	// parameter is a conflict, not shadowing), so only a BlockStatement
	// whose parent is not the FunctionDefinition itself introduces one.
	isScopeIntroduction := n.Kind == ast.BlockStatement && (parent == nil || parent.Kind != ast.FunctionDefinition)
	nodeOffset := 0

	if n.Kind == ast.FunctionDefinition {
		if r.currentFunc != nil {
			return diag.New(stage, "can't have functions in functions :(", &n.Tok)
		}
		r.currentFunc = n
		isScopeIntroduction = true
	}

	if n.Kind == ast.DeclaratorFunc && declarationRoot.Kind != ast.FunctionDefinition {
		if len(n.Nodes) < 1 {
			panic("DeclaratorFunc with no inner declarator")
		}
		if err := r.walk(n.Nodes[0], n, declarationRoot, declaratorGroup, scope); err != nil {
			return err
		}
		oldNumLocals = len(r.inScope)
		isScopeIntroduction = true
		nodeOffset = 1
	}

	childScope := scope
	if isScopeIntroduction {
		childScope = scope + 1
	}
	for i := nodeOffset; i < len(n.Nodes); i++ {
		if err := r.walk(n.Nodes[i], n, declarationRoot, declaratorGroup, childScope); err != nil {
			return err
		}
	}

	if n.Kind == ast.Parameter && oldDeclarationRoot != nil && oldDeclarationRoot.Kind == ast.FunctionDefinition {
		// a parameter resolved directly under a function definition (as
		// opposed to a standalone prototype) lives for the whole
		// function body, so it is reclassified from PARAM to LOCAL.
		if n.Declaration != nil {
			n.Declaration.Kind = ast.DeclLocal
		}
	}

	if isScopeIntroduction {
		r.inScope = r.inScope[:oldNumLocals]
	}

	if n.Kind == ast.FunctionDefinition {
		if n.Declaration == nil {
			return diag.New(stage, "function definition is missing a declarator", &n.Tok)
		}
		r.inScope = append(r.inScope, n.Declaration)
		r.currentFunc = nil
	}

	return nil
}
