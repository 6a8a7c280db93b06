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

package supplement_test

import (
	"testing"

	"github.com/db47h/xcc/ast"
	"github.com/db47h/xcc/supplement"
)

func TestNamesMatchesRegistry(t *testing.T) {
	names := supplement.Names()
	if len(names) != len(supplement.Registry) {
		t.Fatalf("Names() returned %d names, Registry has %d entries", len(names), len(supplement.Registry))
	}
	for i, s := range supplement.Registry {
		if names[i] != s.Name {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], s.Name)
		}
	}
}

func TestLookupFound(t *testing.T) {
	s, ok := supplement.Lookup("supplement_print_int")
	if !ok {
		t.Fatal("Lookup(supplement_print_int) = false, want true")
	}
	if len(s.Params) != 1 || s.Params[0] != ast.Int {
		t.Errorf("Params = %v, want [Int]", s.Params)
	}
	if s.Returns != ast.TVoid {
		t.Errorf("Returns = %v, want TVoid", s.Returns)
	}
}

func TestLookupNotFound(t *testing.T) {
	if _, ok := supplement.Lookup("does_not_exist"); ok {
		t.Error("Lookup(does_not_exist) = true, want false")
	}
}

func TestFunctionTypeVoidReturn(t *testing.T) {
	s, _ := supplement.Lookup("supplement_print_nl")
	ft := s.FunctionType()
	if ft.Kind != ast.TFunction {
		t.Fatalf("FunctionType().Kind = %v, want TFunction", ft.Kind)
	}
	if len(ft.Params) != 0 {
		t.Errorf("Params = %v, want none", ft.Params)
	}
}

func TestFunctionTypeParamCount(t *testing.T) {
	s, _ := supplement.Lookup("supplement_print_char_int")
	ft := s.FunctionType()
	if len(ft.Params) != 1 {
		t.Fatalf("Params = %v, want 1 entry", ft.Params)
	}
	if ft.Params[0].Kind != ast.TInteger {
		t.Errorf("Params[0].Kind = %v, want TInteger", ft.Params[0].Kind)
	}
}
