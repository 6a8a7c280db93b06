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

// Package ast defines the decorated abstract syntax tree shared by every
// compiler pass, along with the three kinds of decoration hung off each
// node as the pipeline progresses: Declaration, Type and ValuePosition.
package ast

import "fmt"

// Kind tags the syntactic role of a Node.
type Kind int

const (
	Program Kind = iota

	IntegerLiteral
	IdentUse
	Call
	Deref

	Multiply
	Divide
	Remainder
	Add
	Subtract

	CmpLt
	CmpGt
	CmpLe
	CmpGe

	Assign

	ConvertToBool
	ConvertToInt

	ReturnStmt
	If
	While
	BlockStatement
	StatementExpression

	Declaration
	DeclarationSpecifiers
	Specifier
	DeclaratorGroup
	DeclaratorIdent
	DeclaratorFunc
	DeclaratorPointer
	Parameter
	FunctionDefinition
)

var kindNames = [...]string{
	Program:                "Program",
	IntegerLiteral:         "IntegerLiteral",
	IdentUse:               "IdentUse",
	Call:                   "Call",
	Deref:                  "Deref",
	Multiply:               "Multiply",
	Divide:                 "Divide",
	Remainder:              "Remainder",
	Add:                    "Add",
	Subtract:               "Subtract",
	CmpLt:                  "CmpLt",
	CmpGt:                  "CmpGt",
	CmpLe:                  "CmpLe",
	CmpGe:                  "CmpGe",
	Assign:                 "Assign",
	ConvertToBool:          "ConvertToBool",
	ConvertToInt:           "ConvertToInt",
	ReturnStmt:             "ReturnStmt",
	If:                     "If",
	While:                  "While",
	BlockStatement:         "BlockStatement",
	StatementExpression:    "StatementExpression",
	Declaration:            "Declaration",
	DeclarationSpecifiers:  "DeclarationSpecifiers",
	Specifier:              "Specifier",
	DeclaratorGroup:        "DeclaratorGroup",
	DeclaratorIdent:        "DeclaratorIdent",
	DeclaratorFunc:         "DeclaratorFunc",
	DeclaratorPointer:      "DeclaratorPointer",
	Parameter:              "Parameter",
	FunctionDefinition:     "FunctionDefinition",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsExpression reports whether nodes of kind k are expressions: they must
// carry a non-nil Type after the type pass and a non-nil Pos after
// allocation.
func (k Kind) IsExpression() bool {
	switch k {
	case IntegerLiteral, IdentUse, Call, Deref,
		Multiply, Divide, Remainder, Add, Subtract,
		CmpLt, CmpGt, CmpLe, CmpGe,
		Assign, ConvertToBool, ConvertToInt:
		return true
	}
	return false
}

// IsComparison reports whether k is one of the four ordered-comparison
// kinds.
func (k Kind) IsComparison() bool {
	switch k {
	case CmpLt, CmpGt, CmpLe, CmpGe:
		return true
	}
	return false
}

// IsBlock reports whether k introduces a lexical scope whose maximum stack
// depth is tracked on the node (BlockStatement, or a function definition's
// body is itself wrapped in one).
func (k Kind) IsBlock() bool {
	return k == BlockStatement
}
