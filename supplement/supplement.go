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

// Package supplement describes the calling contract of the externally
// linked supplement runtime: a small, fixed set of I/O helper functions
// that compiled programs call but that this repository never implements
// or assembles. It exists purely so that the type engine has something
// authoritative to validate calls against.
package supplement

import "github.com/db47h/xcc/ast"

// Symbol describes one supplement runtime entry point.
type Symbol struct {
	Name    string
	Params  []ast.IntegerSubkind
	Returns ast.TypeKind
}

// Registry lists every supplement symbol the compiler knows about.
var Registry = []Symbol{
	{Name: "supplement_print_int", Params: []ast.IntegerSubkind{ast.Int}, Returns: ast.TVoid},
	{Name: "supplement_print_char_int", Params: []ast.IntegerSubkind{ast.Int}, Returns: ast.TVoid},
	{Name: "supplement_print_nl", Returns: ast.TVoid},
	{Name: "supplement_print_space", Returns: ast.TVoid},
}

// Names returns the symbol names in Registry, for seeding the name
// resolver's extern list.
func Names() []string {
	names := make([]string, len(Registry))
	for i, s := range Registry {
		names[i] = s.Name
	}
	return names
}

// Lookup finds the Symbol with the given name, if any.
func Lookup(name string) (Symbol, bool) {
	for _, s := range Registry {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// FunctionType builds the *ast.Type a Symbol describes.
func (s Symbol) FunctionType() *ast.Type {
	var ret *ast.Type
	if s.Returns == ast.TVoid {
		ret = ast.Void()
	} else {
		ret = ast.Integer(ast.Int)
	}
	params := make([]*ast.Type, len(s.Params))
	for i, p := range s.Params {
		params[i] = ast.Integer(p)
	}
	return ast.NewFunction(ret, params)
}
