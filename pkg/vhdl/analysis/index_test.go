// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package analysis

import (
	"testing"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
)

func TestSearchReferenceRoundTripsWithSetReference(t *testing.T) {
	f := source.NewSourceFile("t.vhd", []byte("signal x : bit; y <= x;"))
	idx := NewRootIndex()
	//
	def := &ast.Declaration{
		Designator: ast.NewIdentifier("x"),
		Kind:       ast.Other,
		Node:       ast.NewPosition(f, source.NewSpan(7, 8)),
	}
	//
	useSpan := source.NewSpan(21, 22)
	use := ast.NewPosition(f, useSpan)
	//
	idx.SetReference(&use, def)
	//
	found, ok := idx.SearchReference(f, useSpan.End())
	if !ok {
		t.Fatalf("expected SearchReference to find the occurrence by its end offset")
	}
	//
	if found != def {
		t.Fatalf("expected SearchReference to resolve to the recorded declaration")
	}
}

func TestFindAllReferencesIncludesDeclarationAndUses(t *testing.T) {
	f := source.NewSourceFile("t.vhd", []byte("signal x : bit; y <= x; z <= x;"))
	idx := NewRootIndex()
	//
	defPos := ast.NewPosition(f, source.NewSpan(7, 8))
	def := &ast.Declaration{Designator: ast.NewIdentifier("x"), Kind: ast.Other, Node: defPos}
	//
	use1 := ast.NewPosition(f, source.NewSpan(21, 22))
	use2 := ast.NewPosition(f, source.NewSpan(29, 30))
	idx.SetReference(&use1, def)
	idx.SetReference(&use2, def)
	//
	refs := idx.FindAllReferences(def)
	if len(refs) != 3 {
		t.Fatalf("expected 3 references (1 declaration + 2 uses), got %d", len(refs))
	}
}
