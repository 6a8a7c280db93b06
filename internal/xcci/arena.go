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

package xcci

import "sync/atomic"

// Arena is a debug-only allocation tally, consulted exclusively by
// -debug logging's end-of-pipeline census. It replaces the original C
// compiler's leak-checking malloc wrapper with an accounting structure
// that never influences program behavior: nothing here frees anything,
// since the garbage collector owns reclamation for every node, type and
// declaration this compiler builds.
type Arena struct {
	nodes        int64
	types        int64
	declarations int64
}

// CountNode records the allocation of an AST node.
func (a *Arena) CountNode() { atomic.AddInt64(&a.nodes, 1) }

// CountType records the allocation of a non-interned Type.
func (a *Arena) CountType() { atomic.AddInt64(&a.types, 1) }

// CountDeclaration records the allocation of a Declaration.
func (a *Arena) CountDeclaration() { atomic.AddInt64(&a.declarations, 1) }

// Counts returns the running totals, for a debug log line.
func (a *Arena) Counts() (nodes, types, declarations int64) {
	return atomic.LoadInt64(&a.nodes), atomic.LoadInt64(&a.types), atomic.LoadInt64(&a.declarations)
}
