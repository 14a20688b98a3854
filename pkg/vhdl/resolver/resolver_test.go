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
package resolver

import (
	"testing"

	"github.com/vhdl-lang/vhdl-lang/pkg/util"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
)

type nullRefs struct{}

func (nullRefs) SetReference(ast.Node, *ast.Declaration) {}

func testFile() *source.File {
	return source.NewSourceFile("t.vhd", []byte("0123456789abcdefghijklmnopqrstuvwxyz"))
}

func pos(f *source.File, a, b int) ast.Position {
	return ast.NewPosition(f, source.NewSpan(a, b))
}

func TestSignaturesAreComparedWithBaseType(t *testing.T) {
	integer := &ast.ScalarType{TypeName: "integer"}
	subInteger := &ast.SubtypeType{TypeName: "natural", Of: integer}
	//
	sigInt := ast.Signature{Parameters: []ast.Parameter{{BaseType: integer}}, Return: integer}
	sigSub := ast.Signature{Parameters: []ast.Parameter{{BaseType: subInteger}}, Return: subInteger}
	//
	if !sigInt.SameBaseTypes(sigSub) {
		t.Fatalf("signatures over a type and its subtype must compare equal by base type")
	}
}

func TestDefaultValuedTrailingParamDropsFromComparison(t *testing.T) {
	integer := &ast.ScalarType{TypeName: "integer"}
	sig := ast.Signature{
		Parameters: []ast.Parameter{
			{BaseType: integer},
			{BaseType: integer, DefaultValued: true},
		},
		Return: integer,
	}
	//
	if !sig.CompatibleWith(1) {
		t.Fatalf("a call supplying only the required argument must still match")
	}
	//
	if !sig.CompatibleWith(2) {
		t.Fatalf("a call supplying both arguments must still match")
	}
	//
	if sig.CompatibleWith(0) {
		t.Fatalf("a call supplying no arguments must not match a signature with one required parameter")
	}
}

func TestAliasOfOverloadedNameRequiresSignature(t *testing.T) {
	f := testFile()
	target := &ast.Declaration{Designator: ast.NewIdentifier("f"), Kind: ast.Overloaded,
		Signature: &ast.Signature{}}
	alias := &ast.Declaration{Designator: ast.NewIdentifier("g"), Kind: ast.AliasOf,
		AliasTarget: target, Node: pos(f, 0, 1)}
	//
	if diag := ResolveAliasSignature(alias, false); diag == nil {
		t.Fatalf("expected an error when aliasing an overloaded name without a signature")
	}
	//
	if diag := ResolveAliasSignature(alias, true); diag != nil {
		t.Fatalf("unexpected error when aliasing an overloaded name with a signature: %v", diag)
	}
}

func TestAliasOfNonOverloadedNameForbidsSignature(t *testing.T) {
	f := testFile()
	target := &ast.Declaration{Designator: ast.NewIdentifier("k"), Kind: ast.Constant}
	alias := &ast.Declaration{Designator: ast.NewIdentifier("j"), Kind: ast.AliasOf,
		AliasTarget: target, Node: pos(f, 0, 1)}
	//
	if diag := ResolveAliasSignature(alias, true); diag == nil {
		t.Fatalf("expected an error when aliasing a non-overloaded name with a signature")
	}
	//
	if diag := ResolveAliasSignature(alias, false); diag != nil {
		t.Fatalf("unexpected error when aliasing a non-overloaded name without a signature: %v", diag)
	}
}

func TestSelectedNameOnRecordFindsElement(t *testing.T) {
	f := testFile()
	intType := &ast.ScalarType{TypeName: "integer"}
	recType := &ast.RecordType{TypeName: "point", Elements: []ast.RecordElement{{Name: "x", Type: intType}}}
	scope := region.New(region.Other)
	r := New(nullRefs{})
	//
	prefix := ast.NewSimpleName(pos(f, 0, 1), ast.NewIdentifier("p"), util.None[uint]())
	prefix.Resolve(&ast.Declaration{Designator: ast.NewIdentifier("p"), Kind: ast.Other, Type: recType})
	//
	sel := &ast.SelectedName{
		Position: pos(f, 0, 3),
		Prefix:   &ast.SimpleNameExpr{Position: pos(f, 0, 1), Name: prefix},
		Suffix:   ast.NewSimpleName(pos(f, 2, 3), ast.NewIdentifier("x"), util.None[uint]()),
	}
	//
	typ, diags := r.ResolveExpression(sel, scope)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	//
	if typ != ast.Type(intType) {
		t.Fatalf("expected selected field to have type integer, got %v", typ)
	}
}

func TestSelectedNameOnRecordReportsMissingField(t *testing.T) {
	f := testFile()
	recType := &ast.RecordType{TypeName: "point", Elements: nil}
	scope := region.New(region.Other)
	r := New(nullRefs{})
	//
	prefix := ast.NewSimpleName(pos(f, 0, 1), ast.NewIdentifier("p"), util.None[uint]())
	prefix.Resolve(&ast.Declaration{Designator: ast.NewIdentifier("p"), Kind: ast.Other, Type: recType})
	//
	sel := &ast.SelectedName{
		Position: pos(f, 0, 3),
		Prefix:   &ast.SimpleNameExpr{Position: pos(f, 0, 1), Name: prefix},
		Suffix:   ast.NewSimpleName(pos(f, 2, 3), ast.NewIdentifier("missing"), util.None[uint]()),
	}
	//
	_, diags := r.ResolveExpression(sel, scope)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic for missing field, got %d", len(diags))
	}
}

// TestSelectedNameOnPackageDispatchesThroughLookupSelected exercises
// "pkg.item": a prefix resolved to a Package-kind declaration must dispatch
// through its Scope region's LookupWithin rather than through selectWithin's
// type-based cases, which a package declaration (having no ast.Type of its
// own) can never satisfy.
func TestSelectedNameOnPackageDispatchesThroughLookupSelected(t *testing.T) {
	f := testFile()
	intType := &ast.ScalarType{TypeName: "integer"}
	pkgRegion := region.New(region.PackageDeclaration)
	item := &ast.Declaration{Designator: ast.NewIdentifier("k"), Kind: ast.Constant, Node: pos(f, 0, 1), Type: intType}
	pkgRegion.Add(item)
	//
	scope := region.New(region.Other)
	r := New(nullRefs{})
	//
	prefix := ast.NewSimpleName(pos(f, 0, 1), ast.NewIdentifier("pkg"), util.None[uint]())
	prefix.Resolve(&ast.Declaration{Designator: ast.NewIdentifier("pkg"), Kind: ast.Package, Scope: pkgRegion})
	//
	sel := &ast.SelectedName{
		Position: pos(f, 0, 5),
		Prefix:   &ast.SimpleNameExpr{Position: pos(f, 0, 3), Name: prefix},
		Suffix:   ast.NewSimpleName(pos(f, 4, 5), ast.NewIdentifier("k"), util.None[uint]()),
	}
	//
	typ, diags := r.ResolveExpression(sel, scope)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	//
	if typ != ast.Type(intType) {
		t.Fatalf("expected pkg.k to resolve to integer, got %v", typ)
	}
}

// TestSelectedNameOnPackageDoesNotSeeUseVisibleItems checks the "Selected
// lookup purity" invariant end-to-end: a declaration only made
// potentially-visible within the package (e.g. via a use clause there) must
// not be reachable through "pkg.item" from outside.
func TestSelectedNameOnPackageDoesNotSeeUseVisibleItems(t *testing.T) {
	f := testFile()
	intType := &ast.ScalarType{TypeName: "integer"}
	other := region.New(region.PackageDeclaration)
	borrowed := &ast.Declaration{Designator: ast.NewIdentifier("borrowed"), Kind: ast.Constant, Node: pos(f, 0, 1), Type: intType}
	other.Add(borrowed)
	//
	pkgRegion := region.New(region.PackageDeclaration)
	pkgRegion.MakePotentiallyVisible(borrowed)
	//
	scope := region.New(region.Other)
	r := New(nullRefs{})
	//
	prefix := ast.NewSimpleName(pos(f, 0, 1), ast.NewIdentifier("pkg"), util.None[uint]())
	prefix.Resolve(&ast.Declaration{Designator: ast.NewIdentifier("pkg"), Kind: ast.Package, Scope: pkgRegion})
	//
	sel := &ast.SelectedName{
		Position: pos(f, 0, 12),
		Prefix:   &ast.SimpleNameExpr{Position: pos(f, 0, 3), Name: prefix},
		Suffix:   ast.NewSimpleName(pos(f, 4, 12), ast.NewIdentifier("borrowed"), util.None[uint]()),
	}
	//
	_, diags := r.ResolveExpression(sel, scope)
	if len(diags) != 1 {
		t.Fatalf("expected 'pkg.borrowed' to fail to resolve (use-visible only, not declared), got %d diagnostics", len(diags))
	}
}

// TestIndexedNameReportsDimensionMismatch exercises the array-dimension
// check: indexing a one-dimensional array with two indices must report the
// mismatch together with a related note naming the array type's declared
// dimensionality.
func TestIndexedNameReportsDimensionMismatch(t *testing.T) {
	f := testFile()
	intType := &ast.ScalarType{TypeName: "integer"}
	arrType := &ast.ArrayType{TypeName: "arr1_t", Element: intType, Dimensions: 1, Decl: pos(f, 0, 1)}
	//
	scope := region.New(region.Other)
	r := New(nullRefs{})
	//
	prefix := &ast.SimpleNameExpr{Position: pos(f, 2, 3), Name: ast.NewSimpleName(pos(f, 2, 3), ast.NewIdentifier("a"), util.None[uint]())}
	prefix.Name.Resolve(&ast.Declaration{Designator: ast.NewIdentifier("a"), Kind: ast.Other, Type: arrType})
	//
	idx := &ast.IndexedName{
		Position: pos(f, 2, 10),
		Prefix:   prefix,
		Indices:  []ast.Expression{&ast.Literal{Position: pos(f, 4, 5), Type: intType}, &ast.Literal{Position: pos(f, 6, 7), Type: intType}},
	}
	//
	_, diags := r.ResolveExpression(idx, scope)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one dimension-mismatch diagnostic, got %d: %v", len(diags), diags)
	}
	//
	if len(diags[0].Related()) != 1 {
		t.Fatalf("expected exactly one related note naming the array's declared dimension, got %d", len(diags[0].Related()))
	}
}

func TestAmbiguousOverloadReportsEveryCandidate(t *testing.T) {
	f := testFile()
	boolType := &ast.ScalarType{TypeName: "boolean"}
	intType := &ast.ScalarType{TypeName: "integer"}
	real := &ast.ScalarType{TypeName: "real"}
	//
	scope := region.New(region.Other)
	d1 := &ast.Declaration{Designator: ast.NewIdentifier("f"), Kind: ast.Overloaded, Node: pos(f, 0, 1),
		Signature: &ast.Signature{Parameters: []ast.Parameter{{BaseType: intType}}, Return: boolType}}
	d2 := &ast.Declaration{Designator: ast.NewIdentifier("f"), Kind: ast.Overloaded, Node: pos(f, 2, 3),
		Signature: &ast.Signature{Parameters: []ast.Parameter{{BaseType: real}}, Return: boolType}}
	scope.Add(d1)
	scope.Add(d2)
	//
	_, err := scope.Lookup(ast.NewIdentifier("f"), region.ExactArity(1))
	amb, ok := err.(*region.AmbiguousError)
	if !ok {
		t.Fatalf("expected an AmbiguousError, got %v", err)
	}
	//
	if len(amb.Candidates) != 2 {
		t.Fatalf("expected both overloads as candidates, got %d", len(amb.Candidates))
	}
}

// TestBinaryOpSelectsOverloadByOperandType exercises the same scenario a
// predefined "=" operator creates once more than one scalar type is in
// scope: several declarations share the designator, and only operand type
// - not arity alone - tells them apart.
func TestBinaryOpSelectsOverloadByOperandType(t *testing.T) {
	f := testFile()
	boolType := &ast.ScalarType{TypeName: "boolean"}
	intType := &ast.ScalarType{TypeName: "integer"}
	real := &ast.ScalarType{TypeName: "real"}
	//
	scope := region.New(region.Other)
	scope.Add(&ast.Declaration{Designator: ast.NewOperatorSymbol("="), Kind: ast.Overloaded, Node: pos(f, 0, 1),
		Signature: &ast.Signature{Parameters: []ast.Parameter{{BaseType: intType}, {BaseType: intType}}, Return: boolType}})
	scope.Add(&ast.Declaration{Designator: ast.NewOperatorSymbol("="), Kind: ast.Overloaded, Node: pos(f, 2, 3),
		Signature: &ast.Signature{Parameters: []ast.Parameter{{BaseType: real}, {BaseType: real}}, Return: boolType}})
	scope.Add(&ast.Declaration{Designator: ast.NewIdentifier("a"), Kind: ast.Other, Node: pos(f, 4, 5), Type: intType})
	scope.Add(&ast.Declaration{Designator: ast.NewIdentifier("b"), Kind: ast.Other, Node: pos(f, 6, 7), Type: intType})
	//
	intLeft := &ast.SimpleNameExpr{Position: pos(f, 4, 5), Name: ast.NewSimpleName(pos(f, 4, 5), ast.NewIdentifier("a"), util.None[uint]())}
	intRight := &ast.SimpleNameExpr{Position: pos(f, 6, 7), Name: ast.NewSimpleName(pos(f, 6, 7), ast.NewIdentifier("b"), util.None[uint]())}
	//
	r := New(nullRefs{})
	expr := &ast.BinaryOp{Position: pos(f, 4, 7), Op: ast.NewOperatorSymbol("="), Left: intLeft, Right: intRight}
	//
	_, diags := r.ResolveExpression(expr, scope)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	//
	if expr.Resolved == nil {
		t.Fatalf("expected the integer overload of '=' to resolve")
	}
	//
	if expr.Type != boolType {
		t.Fatalf("expected '=' to yield boolean, got %v", expr.Type)
	}
	//
	if !expr.Resolved.Signature.Parameters[0].BaseType.SubtypeOf(intType) {
		t.Fatalf("expected the integer overload to be selected, not the real one")
	}
}

// TestBinaryOpReportsNoMatchingOverload checks that operand types which
// match no registered overload produce a plain diagnostic, not an
// AmbiguousError (the single registered "=" candidate is not compatible
// with a character operand).
func TestBinaryOpReportsNoMatchingOverload(t *testing.T) {
	f := testFile()
	boolType := &ast.ScalarType{TypeName: "boolean"}
	intType := &ast.ScalarType{TypeName: "integer"}
	character := &ast.ScalarType{TypeName: "character"}
	//
	scope := region.New(region.Other)
	scope.Add(&ast.Declaration{Designator: ast.NewOperatorSymbol("="), Kind: ast.Overloaded, Node: pos(f, 0, 1),
		Signature: &ast.Signature{Parameters: []ast.Parameter{{BaseType: intType}, {BaseType: intType}}, Return: boolType}})
	scope.Add(&ast.Declaration{Designator: ast.NewIdentifier("c"), Kind: ast.Other, Node: pos(f, 4, 5), Type: character})
	//
	r := New(nullRefs{})
	charVal := &ast.SimpleNameExpr{Position: pos(f, 4, 5), Name: ast.NewSimpleName(pos(f, 4, 5), ast.NewIdentifier("c"), util.None[uint]())}
	expr := &ast.BinaryOp{Position: pos(f, 4, 7), Op: ast.NewOperatorSymbol("="), Left: charVal, Right: charVal}
	//
	_, diags := r.ResolveExpression(expr, scope)
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic for an unmatched operator overload, got %d: %v", len(diags), diags)
	}
}
