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
package region

import (
	"testing"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
)

func decl(file *source.File, start, end int, name string, kind ast.DeclarationKind) *ast.Declaration {
	pos := ast.NewPosition(file, source.NewSpan(start, end))
	return &ast.Declaration{
		Designator: ast.NewIdentifier(name),
		Kind:       kind,
		Node:       pos,
	}
}

func testFile() *source.File {
	return source.NewSourceFile("t.vhd", []byte("xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"))
}

func TestDuplicateDeclarationIsRejected(t *testing.T) {
	f := testFile()
	r := New(Other)
	//
	if diag := r.AddDecl(decl(f, 0, 1, "x", ast.Other)); diag != nil {
		t.Fatalf("first declaration of x should not be a duplicate: %v", diag)
	}
	//
	diag := r.AddDecl(decl(f, 2, 3, "x", ast.Other))
	if diag == nil {
		t.Fatalf("expected a duplicate-declaration diagnostic for second x")
	}
	//
	if len(diag.Related()) != 1 {
		t.Fatalf("expected exactly one related 'previously defined here' note, got %d", len(diag.Related()))
	}
}

func TestDeferredConstantCompletedByConstant(t *testing.T) {
	f := testFile()
	r := New(PackageDeclaration)
	//
	r.AddDecl(decl(f, 0, 1, "k", ast.DeferredConstant))
	r.AddDecl(decl(f, 2, 3, "k", ast.Constant))
	//
	if diags := r.CloseImmediate(); len(diags) != 0 {
		t.Fatalf("expected no completion diagnostics, got %v", diags)
	}
}

func TestDeferredConstantWithoutCompletionIsReported(t *testing.T) {
	f := testFile()
	r := New(PackageDeclaration)
	r.AddDecl(decl(f, 0, 1, "k", ast.DeferredConstant))
	//
	diags := r.CloseImmediate()
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic for uncompleted deferred constant, got %d", len(diags))
	}
}

func TestUnrelatedSecondDeclarationDoesNotCompleteDeferredConstant(t *testing.T) {
	f := testFile()
	r := New(PackageDeclaration)
	r.AddDecl(decl(f, 0, 1, "k", ast.DeferredConstant))
	r.AddDecl(decl(f, 2, 3, "k", ast.Other)) // unrelated re-use of "k", itself rejected as a duplicate
	//
	diags := r.CloseImmediate()
	if len(diags) != 1 {
		t.Fatalf("expected the deferred constant to still be reported incomplete, got %d diagnostics", len(diags))
	}
}

func TestOverloadedDeclarationsWithDifferentSignaturesDoNotCollide(t *testing.T) {
	f := testFile()
	r := New(Other)
	intType := &ast.ScalarType{TypeName: "integer"}
	boolType := &ast.ScalarType{TypeName: "boolean"}
	//
	d1 := decl(f, 0, 1, "f", ast.Overloaded)
	d1.Signature = &ast.Signature{Parameters: []ast.Parameter{{BaseType: intType}}, Return: boolType}
	d2 := decl(f, 2, 3, "f", ast.Overloaded)
	d2.Signature = &ast.Signature{Parameters: []ast.Parameter{{BaseType: boolType}}, Return: boolType}
	//
	r.AddDecl(d1)
	if diag := r.AddDecl(d2); diag != nil {
		t.Fatalf("overloads with distinct signatures should not collide: %v", diag)
	}
}

func TestExplicitDeclarationShadowsUseVisible(t *testing.T) {
	f := testFile()
	pkgRegion := New(PackageDeclaration)
	item := decl(f, 0, 1, "item", ast.Constant)
	pkgRegion.Add(item)
	//
	r := New(Other)
	r.MakeAllPotentiallyVisible(pkgRegion)
	//
	found, err := r.Lookup(ast.NewIdentifier("item"), AnyArity())
	if err != nil || found != item {
		t.Fatalf("expected use-visible item to resolve, got %v, %v", found, err)
	}
	//
	local := decl(f, 2, 3, "item", ast.Constant)
	r.AddDecl(local)
	//
	found, err = r.Lookup(ast.NewIdentifier("item"), AnyArity())
	if err != nil {
		t.Fatalf("unexpected lookup error: %v", err)
	}
	//
	if found != local {
		t.Fatalf("expected local declaration to shadow use-visible one")
	}
}

// TestLookupWithinSeesExtendsDeclaredButNotVisible exercises
// lookup_selected's "purity" invariant directly: LookupWithin on a region
// extending a primary must see the primary's declared plane, but never the
// primary's own use-visible plane.
func TestLookupWithinSeesExtendsDeclaredButNotVisible(t *testing.T) {
	f := testFile()
	primary := New(PackageDeclaration)
	owned := decl(f, 0, 1, "owned", ast.Constant)
	primary.Add(owned)
	//
	elsewhere := New(Other)
	borrowed := decl(f, 2, 3, "borrowed", ast.Constant)
	elsewhere.Add(borrowed)
	primary.MakePotentiallyVisible(borrowed)
	//
	body := Extend(primary, nil, PackageBody)
	//
	found, err := body.LookupWithin(ast.NewIdentifier("owned"), AnyArity())
	if err != nil || found != owned {
		t.Fatalf("expected LookupWithin to see the extended region's declared plane, got %v, %v", found, err)
	}
	//
	if _, err := body.LookupWithin(ast.NewIdentifier("borrowed"), AnyArity()); err == nil {
		t.Fatalf("LookupWithin must not see the extended region's use-visible plane")
	}
}

// TestMakePotentiallyVisiblePromotesImplicitRegion checks the visibility
// engine's promotion rule: making an enumeration TypeDeclaration visible must
// also bring every declaration of its implicit region (its literals) into
// the same use-visible plane.
func TestMakePotentiallyVisiblePromotesImplicitRegion(t *testing.T) {
	f := testFile()
	enumType := &ast.ScalarType{TypeName: "colour", Literals: []string{"red", "green"}}
	typeDecl := &ast.Declaration{Designator: ast.NewIdentifier("colour"), Kind: ast.TypeDeclaration,
		Node: ast.NewPosition(f, source.NewSpan(0, 1)), Type: enumType}
	//
	implicit := New(Other)
	red := &ast.Declaration{Designator: ast.NewIdentifier("red"), Kind: ast.Overloaded,
		Node:      ast.NewPosition(f, source.NewSpan(2, 3)),
		Signature: &ast.Signature{Return: enumType}, Type: enumType}
	implicit.Add(red)
	typeDecl.Scope = implicit
	//
	r := New(Other)
	r.MakePotentiallyVisible(typeDecl)
	//
	found, err := r.Lookup(ast.NewIdentifier("red"), AnyArity())
	if err != nil || found != red {
		t.Fatalf("expected enum literal 'red' to be promoted alongside its type, got %v, %v", found, err)
	}
}

func TestLookupWithinDoesNotSeeParentScope(t *testing.T) {
	f := testFile()
	outer := New(Other)
	outer.AddDecl(decl(f, 0, 1, "x", ast.Other))
	inner := outer.Nested(Block)
	//
	if _, err := inner.LookupWithin(ast.NewIdentifier("x"), AnyArity()); err == nil {
		t.Fatalf("LookupWithin must not see the lexically enclosing scope")
	}
	//
	if _, err := inner.Lookup(ast.NewIdentifier("x"), AnyArity()); err != nil {
		t.Fatalf("ordinary Lookup must see the lexically enclosing scope: %v", err)
	}
}
