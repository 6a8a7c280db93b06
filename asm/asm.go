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

// Package asm generates x86-64 AT&T/GAS assembly text from a fully
// resolved, typed and position-allocated AST. It assumes the System V
// AMD64 calling convention and the presence of the supplement runtime's
// externally linked helper symbols at link time; it neither invokes nor
// bundles an actual assembler.
package asm

import (
	"fmt"

	"github.com/db47h/xcc/alloc"
	"github.com/db47h/xcc/ast"
)

// regNames is indexed [register][byteSize-1], mirroring the opcode-name
// table idiom this package's predecessor used to map an instruction
// number to its mnemonic: here the lookup key is a (register, size) pair
// instead of an opcode.
var regNames = [...][8]string{
	ast.RegRAX: {"al", "ax", "", "eax", "", "", "", "rax"},
	ast.RegRDI: {"dil", "di", "", "edi", "", "", "", "rdi"},
	ast.RegRSI: {"sil", "si", "", "esi", "", "", "", "rsi"},
	ast.RegRDX: {"dl", "dx", "", "edx", "", "", "", "rdx"},
	ast.RegRCX: {"cl", "cx", "", "ecx", "", "", "", "rcx"},
	ast.RegR8:  {"r8b", "r8w", "", "r8d", "", "", "", "r8"},
	ast.RegR9:  {"r9b", "r9w", "", "r9d", "", "", "", "r9"},
	ast.RegR11: {"r11b", "r11w", "", "r11d", "", "", "", "r11"},
}

// argRegs is the System V AMD64 integer/pointer argument-passing order.
var argRegs = [...]ast.Reg{ast.RegRDI, ast.RegRSI, ast.RegRDX, ast.RegRCX, ast.RegR8, ast.RegR9}

func regName(reg ast.Reg, size int) string {
	name := regNames[reg][size-1]
	if name == "" {
		panic(fmt.Sprintf("no register name for size %d", size))
	}
	return "%" + name
}

// regOperand renders reg at the given byte width through the position
// allocator's preallocated register table, rather than formatting the
// name inline, so that every register operand the generator emits shares
// the same table the allocator itself would hand out for a register-kind
// ValuePosition.
func regOperand(reg ast.Reg, size int) string {
	return operand(alloc.RegPosition(reg, size), size)
}

// movSuffix picks the mov{b,w,l,q} size suffix.
func movSuffix(size int) byte {
	switch size {
	case 1:
		return 'b'
	case 2:
		return 'w'
	case 4:
		return 'l'
	case 8:
		return 'q'
	}
	panic(fmt.Sprintf("unsupported operand size %d", size))
}

// valueSize returns the byte width a type occupies in a register or on
// the stack: an integer subkind's own size, or 8 for a pointer/function
// (function only ever appears here as a callee's address).
func valueSize(t *ast.Type) int {
	t = t.AsRvalue()
	if t.Kind == ast.TInteger {
		return t.IntegerType.Size()
	}
	return 8
}

// operand renders the AT&T-syntax text for a ValuePosition at the given
// byte width (which may differ from pos.Size when a register is reused
// at a narrower width, e.g. while loading a call argument).
func operand(pos *ast.ValuePosition, size int) string {
	switch pos.Kind {
	case ast.PosStack:
		return fmt.Sprintf("-%d(%%rbp)", pos.StackOffset)
	case ast.PosReg:
		return regName(pos.Register, size)
	case ast.PosFuncName:
		return pos.FuncName + "(%rip)"
	}
	panic(fmt.Sprintf("no operand rendering for position kind %v", pos.Kind))
}