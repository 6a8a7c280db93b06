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

package ast

// DeclKind classifies what a Declaration denotes.
type DeclKind int

const (
	DeclLocal DeclKind = iota
	DeclGlobal
	DeclFuncPrototype
	DeclParam
)

func (k DeclKind) String() string {
	switch k {
	case DeclLocal:
		return "local variable"
	case DeclGlobal:
		return "global variable"
	case DeclFuncPrototype:
		return "function"
	case DeclParam:
		return "parameter"
	}
	return "unknown declaration"
}

// Declaration is a resolved binding of a name at a scope level.
type Declaration struct {
	Name  string
	Kind  DeclKind
	Type  *Type
	Scope int

	// LastDeclaratorAST is the most recent DeclaratorIdent node that
	// bound to this declaration (used for redeclaration diagnostics).
	LastDeclaratorAST *Node

	// DefinitionAST is the FunctionDefinition node that defines this
	// declaration, if it is a function and has been defined.
	DefinitionAST *Node

	// Pos is the storage location assigned by the position allocator.
	Pos *ValuePosition
}
