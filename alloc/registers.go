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

package alloc

import (
	"sync"

	"github.com/db47h/xcc/ast"
)

// regPreallocatedMaxSize is the widest register position this table
// hands out; x86-64 general purpose registers top out at 8 bytes.
const regPreallocatedMaxSize = 8

var (
	regTableOnce sync.Once
	regTable     [][regPreallocatedMaxSize]ast.ValuePosition
)

func buildRegTable() {
	regTable = make([][regPreallocatedMaxSize]ast.ValuePosition, int(ast.RegR11)+1)
	for reg := range regTable {
		for size := 1; size <= regPreallocatedMaxSize; size++ {
			regTable[reg][size-1] = ast.ValuePosition{
				Kind:      ast.PosReg,
				Register:  ast.Reg(reg),
				Size:      size,
				Alignment: size,
				Signed:    true,
			}
		}
	}
}

// RegPosition returns the shared ValuePosition for reg at the given byte
// size (1, 2, 4 or 8 are the meaningful cases; any size up to 8 is
// accepted since the table is built for every size in that range). The
// table is built once, on first call, and never mutated afterward, so
// sharing a single *ValuePosition per (register, size) pair across the
// whole compilation is safe.
func RegPosition(reg ast.Reg, size int) *ast.ValuePosition {
	regTableOnce.Do(buildRegTable)
	return &regTable[reg][size-1]
}
