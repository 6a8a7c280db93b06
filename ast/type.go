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

import (
	"strconv"
	"strings"
)

// TypeKind is the top-level classification of a Type.
type TypeKind int

const (
	TVoid TypeKind = iota
	TInteger
	TPointer
	TArray
	TFunction
)

// IntegerSubkind enumerates the concrete integer flavors, ordered so that
// comparison by value roughly tracks conversion rank (exact rank is given
// by Rank, below — do not compare subkinds directly for rank purposes).
type IntegerSubkind int

const (
	Bool IntegerSubkind = iota
	Char
	SChar
	UChar
	Short
	UShort
	Int
	UInt
	Long
	ULong
	LongLong
	ULongLong
)

var subkindNames = [...]string{
	Bool: "_Bool", Char: "char", SChar: "signed char", UChar: "unsigned char",
	Short: "short", UShort: "unsigned short", Int: "int", UInt: "unsigned int",
	Long: "long", ULong: "unsigned long", LongLong: "long long", ULongLong: "unsigned long long",
}

func (s IntegerSubkind) String() string { return subkindNames[s] }

// Rank implements the integer conversion rank ordering: BOOL < CHAR-family
// < SHORT-family < INT-family < LONG-family < LONG_LONG-family.
func (s IntegerSubkind) Rank() int {
	switch s {
	case Bool:
		return 10
	case Char, SChar, UChar:
		return 12
	case Short, UShort:
		return 14
	case Int, UInt:
		return 16
	case Long, ULong:
		return 18
	case LongLong, ULongLong:
		return 20
	}
	return 0
}

// Signed reports whether s is a signed integer subkind. char is signed,
// per the System V AMD64 ABI.
func (s IntegerSubkind) Signed() bool {
	switch s {
	case UChar, UShort, UInt, ULong, ULongLong, Bool:
		return false
	}
	return true
}

// Size returns the size in bytes of s, per the System V AMD64 ABI.
func (s IntegerSubkind) Size() int {
	switch s {
	case Bool, Char, SChar, UChar:
		return 1
	case Short, UShort:
		return 2
	case Int, UInt:
		return 4
	default:
		return 8
	}
}

// Type is an interned or freshly-built structural type description.
// Unqualified integer and void types are shared singletons (see Void and
// Integer below); pointer and function types are allocated per occurrence but
// share their Underlying/Params components.
type Type struct {
	Kind TypeKind

	IntegerType IntegerSubkind // valid when Kind == TInteger

	Const, Volatile bool

	// Underlying is the pointee (TPointer), element (TArray) or return
	// type (TFunction).
	Underlying *Type

	// ArraySize is the declared element count for TArray, or -1 if
	// unknown (a bare `[]`).
	ArraySize int

	// Params is the parameter type vector for TFunction.
	Params []*Type
}

var (
	voidType = &Type{Kind: TVoid}

	integerTypes = func() map[IntegerSubkind]*Type {
		m := make(map[IntegerSubkind]*Type)
		for sk := Bool; sk <= ULongLong; sk++ {
			m[sk] = &Type{Kind: TInteger, IntegerType: sk}
		}
		return m
	}()
)

// Void returns the singleton void type.
func Void() *Type { return voidType }

// Integer returns the shared, unqualified Type for the given subkind.
func Integer(sk IntegerSubkind) *Type { return integerTypes[sk] }

// NewPointer builds a (freshly allocated) pointer type to underlying.
func NewPointer(underlying *Type) *Type {
	return &Type{Kind: TPointer, Underlying: underlying}
}

// NewFunction builds a (freshly allocated) function type.
func NewFunction(ret *Type, params []*Type) *Type {
	return &Type{Kind: TFunction, Underlying: ret, Params: params}
}

// IsScalar reports whether t is usable where C requires a scalar (integer
// or pointer) operand.
func (t *Type) IsScalar() bool {
	return t.Kind == TInteger || t.Kind == TPointer
}

// Compatible reports whether t and other are the same type for
// redeclaration and implicit-conversion purposes.
func (t *Type) Compatible(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Const != other.Const || t.Volatile != other.Volatile {
		return false
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TVoid:
		return true
	case TInteger:
		return t.IntegerType == other.IntegerType
	case TPointer:
		return t.Underlying.Compatible(other.Underlying)
	case TArray:
		if t.ArraySize >= 0 && other.ArraySize >= 0 && t.ArraySize != other.ArraySize {
			return false
		}
		return t.Underlying.Compatible(other.Underlying)
	case TFunction:
		if len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Compatible(other.Params[i]) {
				return false
			}
		}
		return t.Underlying.Compatible(other.Underlying)
	}
	return false
}

// AsRvalue strips qualifiers, as C does before using a value in an
// expression context.
func (t *Type) AsRvalue() *Type {
	if !t.Const && !t.Volatile {
		return t
	}
	cp := *t
	cp.Const, cp.Volatile = false, false
	return &cp
}

func (t *Type) String() string {
	var b strings.Builder
	if t.Const {
		b.WriteString("const ")
	}
	if t.Volatile {
		b.WriteString("volatile ")
	}
	switch t.Kind {
	case TVoid:
		b.WriteString("void")
	case TInteger:
		b.WriteString(t.IntegerType.String())
	case TPointer:
		b.WriteString(t.Underlying.String())
		b.WriteString(" *")
	case TArray:
		b.WriteString(t.Underlying.String())
		if t.ArraySize >= 0 {
			b.WriteString(" [")
			b.WriteString(strconv.Itoa(t.ArraySize))
			b.WriteString("]")
		} else {
			b.WriteString(" []")
		}
	case TFunction:
		b.WriteString(t.Underlying.String())
		b.WriteString(" (")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(")")
	}
	return b.String()
}
