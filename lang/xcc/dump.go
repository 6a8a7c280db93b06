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

package xcc

import (
	"fmt"
	"io"

	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/internal/xcci"
)

// DumpAST walks root, writing one line per node to w: indentation by
// depth, the node's kind, and whatever decorations (resolved
// declaration, type, storage position) the named stage has attached to
// it so far. Adapted from the teacher's recursive stack/memory dumper,
// here walking a tree instead of flat VM storage.
func DumpAST(w io.Writer, stage string, root *ast.Node) error {
	ew := xcci.NewErrWriter(w)
	fmt.Fprintf(ew, "-- %s --\n", stage)
	dumpNode(ew, root, 0)
	return ew.Err
}

func dumpNode(w *xcci.ErrWriter, n *ast.Node, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString("  ")
	}
	w.WriteString(n.Kind.String())
	if n.Ident != "" {
		fmt.Fprintf(w, " %q", n.Ident)
	}
	if n.Kind == ast.IntegerLiteral {
		fmt.Fprintf(w, " %d", n.IntValue)
	}
	if n.Declaration != nil {
		fmt.Fprintf(w, " decl=%s", n.Declaration.Name)
	}
	if n.Type != nil {
		fmt.Fprintf(w, " type=%s", n.Type.String())
	}
	if n.Pos != nil {
		fmt.Fprintf(w, " pos=%s", n.Pos.String())
	}
	w.WriteString("\n")
	for _, c := range n.Nodes {
		dumpNode(w, c, depth+1)
	}
}
