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

import "fmt"

// PosKind is the storage kind of a ValuePosition.
type PosKind int

const (
	PosLiteral PosKind = iota
	PosStack
	PosReg
	PosVoid
	PosFuncName
)

// Reg identifies one of the x86-64 general purpose registers usable as a
// value position.
type Reg int

const (
	RegRAX Reg = iota
	RegRDI
	RegRSI
	RegRDX
	RegRCX
	RegR8
	RegR9
	RegR11
	regLast
)

// ValuePosition describes where an expression's value lives during code
// generation.
type ValuePosition struct {
	Kind PosKind

	// StackOffset is the byte offset from the frame base (%rbp),
	// positive and growing downward, valid when Kind == PosStack.
	StackOffset int

	// Register identifies the register, valid when Kind == PosReg.
	Register Reg

	// FuncName is the symbol name, valid when Kind == PosFuncName.
	FuncName string

	Size      int
	Alignment int
	Signed    bool
}

func (p *ValuePosition) String() string {
	switch p.Kind {
	case PosStack:
		return fmt.Sprintf("stack[-%d]", p.StackOffset)
	case PosReg:
		return fmt.Sprintf("reg[%d]", p.Register)
	case PosLiteral:
		return "literal"
	case PosVoid:
		return "void"
	case PosFuncName:
		return fmt.Sprintf("func %q", p.FuncName)
	}
	return "?"
}
