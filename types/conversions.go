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

package types

import (
	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/diag"
	"github.com/db47h/xcc/token"
)

// promote integer-promotes t: anything of rank below int becomes int (char
// and short, signed or not, all fit in a signed int). Non-integer types
// pass through unchanged.
func promote(t *ast.Type) *ast.Type {
	if t.Kind != ast.TInteger {
		return t
	}
	if t.IntegerType.Rank() < ast.Integer(ast.Int).IntegerType.Rank() {
		return ast.Integer(ast.Int)
	}
	return t
}

// commonType implements the usual arithmetic conversions' common-type
// computation over two already rvalue'd, promoted integer types. Mixed
// signedness is not resolved by rank here: it is rejected outright,
// rather than silently picking a conversion rule, matching the
// original compiler's refusal to guess on this case.
func commonType(l, r *ast.Type, tok *token.Token) (*ast.Type, error) {
	if l.IntegerType == r.IntegerType {
		return l, nil
	}
	signedL, signedR := l.IntegerType.Signed(), r.IntegerType.Signed()
	if signedL != signedR {
		return nil, diag.New(stage, "TODO: type conversion of mixed signedness", tok)
	}
	if l.IntegerType.Rank() >= r.IntegerType.Rank() {
		return l, nil
	}
	return r, nil
}

// usualArithmeticConversions computes the common type for a binary
// arithmetic or ordered-comparison operator applied to l and r (already
// typed expression nodes); it does not modify the tree, and callers insert
// any implicit conversion nodes. It returns the common type (the operator's own
// node type for arithmetic; callers doing comparisons override with int).
func usualArithmeticConversions(l, r *ast.Node) (*ast.Type, error) {
	lt, rt := l.Type.AsRvalue(), r.Type.AsRvalue()
	if lt.Kind != ast.TInteger || rt.Kind != ast.TInteger {
		return nil, diag.New(stage, "usual arithmetic conversions require integer operands", &l.Tok)
	}
	lt, rt = promote(lt), promote(rt)
	return commonType(lt, rt, &l.Tok)
}

// implicitConvert wraps expr (already typed) in a conversion node if
// needed to make it usable as a value of type target, or returns expr
// unchanged if no conversion is needed. It errors if no implicit
// conversion exists between the two types.
func implicitConvert(expr *ast.Node, target *ast.Type) (*ast.Node, error) {
	src := expr.Type.AsRvalue()
	if src.Compatible(target) {
		return expr, nil
	}
	if target.Kind == ast.TInteger && target.IntegerType == ast.Bool {
		if !src.IsScalar() {
			return nil, diag.New(stage, "can't convert "+src.String()+" to "+target.String(), &expr.Tok)
		}
		n := ast.NewNode(ast.ConvertToBool, expr.Tok, expr)
		n.Type = target
		return n, nil
	}
	if target.Kind == ast.TInteger && src.Kind == ast.TInteger {
		n := ast.NewNode(ast.ConvertToInt, expr.Tok, expr)
		n.Type = target
		return n, nil
	}
	return nil, diag.New(stage, "can't convert "+src.String()+" to "+target.String(), &expr.Tok)
}
