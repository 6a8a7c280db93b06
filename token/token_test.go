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

package token_test

import (
	"testing"

	"github.com/db47h/xcc/token"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    token.Kind
		want string
	}{
		{token.EOF, "EOF"},
		{token.KwReturn, "'return'"},
		{token.Le, "'<='"},
		{token.Kind(9999), "Kind(9999)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestKeywordsRoundTrip(t *testing.T) {
	for word, kind := range token.Keywords {
		tok := &token.Token{Kind: kind, Contents: word}
		if tok.String() != word {
			t.Errorf("keyword %q: Token.String() = %q", word, tok.String())
		}
	}
}

func TestTokenPos(t *testing.T) {
	tok := &token.Token{File: "foo.c", Line: 3, Column: 7}
	if got, want := tok.Pos(), "foo.c:3:7"; got != want {
		t.Errorf("Pos() = %q, want %q", got, want)
	}
}

func TestTokenStringFallsBackToKind(t *testing.T) {
	tok := &token.Token{Kind: token.Semi}
	if got, want := tok.String(), "';'"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
