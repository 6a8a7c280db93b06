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

import "github.com/db47h/xcc/token"

// Node is the uniform tree node used by every pass. Kind-dependent payload
// that would be a tagged union in C is rendered here as a small set of
// typed fields, only some of which are meaningful for any given Kind.
type Node struct {
	Kind  Kind
	Tok   token.Token
	Nodes []*Node

	// Ident holds the identifier string for IdentUse and DeclaratorIdent
	// nodes.
	Ident string

	// IntValue holds the literal value for IntegerLiteral nodes.
	IntValue int64

	// MaxStackDepth is populated by the position allocator on
	// BlockStatement (and function-body) nodes: the deepest combined
	// temporary+local stack usage observed anywhere inside the block.
	MaxStackDepth int

	// Decorations, populated progressively by later passes.
	Declaration *Declaration
	Type        *Type
	Pos         *ValuePosition
}

// NewNode builds a Node of the given kind anchored to tok, with the given
// children.
func NewNode(kind Kind, tok token.Token, children ...*Node) *Node {
	return &Node{Kind: kind, Tok: tok, Nodes: children}
}

// Append adds children to n in order.
func (n *Node) Append(children ...*Node) {
	n.Nodes = append(n.Nodes, children...)
}

// Walk calls visit on n and then recursively on every descendant,
// depth-first, pre-order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Nodes {
		c.Walk(visit)
	}
}
