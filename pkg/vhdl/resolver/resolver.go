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

// Package resolver turns name occurrences recorded in the AST into bindings
// against declarations recorded in a region.Region, and writes the resulting
// reference back onto the occurrence so later passes (and the "go to
// definition" / "find all references" external interfaces) can read it off
// directly.
package resolver

import (
	"fmt"
	"strings"

	"github.com/vhdl-lang/vhdl-lang/pkg/util"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
)

// ReferenceWriter is implemented by anything that wants to learn about a
// resolved occurrence - a reference position, its originating definition
// position, and the designator involved.  The cross-unit RootIndex
// implements this to build its reference table.
type ReferenceWriter interface {
	// SetReference records that the occurrence at `use` resolves to the
	// declaration at `def`.
	SetReference(use ast.Node, def *ast.Declaration)
}

// Resolver resolves name occurrences against a chain of enclosing regions.
type Resolver struct {
	refs ReferenceWriter
}

// New constructs a Resolver which reports resolved occurrences to `refs`.
func New(refs ReferenceWriter) *Resolver {
	return &Resolver{refs}
}

// ResolveExpression resolves every name occurrence within `expr`, evaluated
// within `scope`, and returns its type (or nil if typing failed) along with
// any diagnostics raised.  It is the single entry point the orchestrator and
// the expression type checker both call.
func (r *Resolver) ResolveExpression(expr ast.Expression, scope *region.Region) (ast.Type, []source.Diagnostic) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Type, nil
	case *ast.SimpleNameExpr:
		return r.resolveSimpleName(e.Name, scope, region.AnyArity())
	case *ast.SelectedName:
		return r.resolveSelectedName(e, scope)
	case *ast.IndexedName:
		return r.resolveIndexedName(e, scope)
	case *ast.SlicedName:
		return r.resolveSlicedName(e, scope)
	case *ast.AttributeName:
		return r.resolveAttributeName(e, scope)
	case *ast.QualifiedExpression:
		return r.resolveQualifiedExpression(e, scope)
	case *ast.ExternalName:
		return r.resolveExternalName(e, scope)
	case *ast.CallOrIndex:
		return r.resolveCallOrIndex(e, scope)
	case *ast.FunctionCall:
		return r.resolveFunctionCall(e, scope)
	case *ast.BinaryOp:
		return r.resolveBinaryOp(e, scope)
	case *ast.UnaryOp:
		return r.resolveUnaryOp(e, scope)
	case *ast.Aggregate:
		return e.Type, nil // typed top-down by the type checker from context
	default:
		panic(fmt.Sprintf("unresolvable expression kind: %T", expr))
	}
}

func (r *Resolver) resolveSimpleName(name *ast.SimpleName, scope *region.Region, arity region.ArityFilter) (ast.Type, []source.Diagnostic) {
	if name.IsResolved() {
		return name.Declaration().Type, nil
	}
	//
	decl, err := scope.Lookup(name.Designator(), arity)
	if err != nil {
		return nil, []source.Diagnostic{*r.diagnose(name, err)}
	}
	//
	name.Resolve(decl)
	r.refs.SetReference(name, decl)
	//
	return decl.Type, nil
}

// diagnose converts a lookup error into a diagnostic anchored at `at`,
// attaching one "Might be X" related note per surviving ambiguous candidate
// so the caller can see every possibility, not just the first.
func (r *Resolver) diagnose(at ast.Node, err error) *source.Diagnostic {
	if amb, ok := err.(*region.AmbiguousError); ok {
		msg := fmt.Sprintf("Ambiguous use of '%s'", amb.Designator.Text())
		diag := source.NewDiagnostic(*at.File().SyntaxError(at.Span(), msg))
		//
		for _, c := range amb.Candidates {
			note := source.NewRelated(c.Node.File(), c.Node.Span(), fmt.Sprintf("Might be %s", overloadSignature(c)))
			diag = diag.WithRelated(note)
		}
		//
		return diag
	}
	//
	return source.NewDiagnostic(*at.File().SyntaxError(at.Span(), err.Error()))
}

// overloadSignature renders a candidate the way an ambiguity's related notes
// must: the bare designator for a non-overloaded declaration, or
// "designator[ParamType, ... return ReturnType]" for one carrying a
// signature, so two overloads sharing a designator can be told apart.
func overloadSignature(c *ast.Declaration) string {
	if c.Signature == nil {
		return c.Designator.Text()
	}
	//
	params := make([]string, 0, len(c.Signature.Parameters))
	for _, p := range c.Signature.Parameters {
		if p.BaseType != nil {
			params = append(params, p.BaseType.String())
		}
	}
	//
	ret := "void"
	if c.Signature.Return != nil {
		ret = c.Signature.Return.String()
	}
	//
	return fmt.Sprintf("%s[%s return %s]", c.Designator.Text(), strings.Join(params, ", "), ret)
}

// regionScopedKinds are the declaration kinds spec.md groups together as
// "package/library/context instance": a selected name whose prefix resolves
// to one of these dispatches through lookup_selected against the
// declaration's own Scope region, rather than through a value type's
// field/method set - these kinds carry no ast.Type of their own for
// selectWithin to dereference.
var regionScopedKinds = map[ast.DeclarationKind]bool{
	ast.Library:              true,
	ast.Entity:               true,
	ast.Configuration:        true,
	ast.Package:              true,
	ast.UninstPackage:        true,
	ast.PackageInstance:      true,
	ast.Context:              true,
	ast.LocalPackageInstance: true,
}

func (r *Resolver) resolveSelectedName(e *ast.SelectedName, scope *region.Region) (ast.Type, []source.Diagnostic) {
	prefixType, diags := r.ResolveExpression(e.Prefix, scope)
	//
	if prefixDecl := declarationOf(e.Prefix); prefixDecl != nil && regionScopedKinds[prefixDecl.Kind] {
		resolved, err := resolveWithinScope(prefixDecl, e.Suffix.Designator())
		if err != nil {
			return nil, append(diags, *r.diagnose(e.Suffix, err))
		}
		//
		e.Suffix.Resolve(resolved)
		r.refs.SetReference(e.Suffix, resolved)
		//
		return resolved.Type, diags
	}
	//
	if prefixType == nil {
		return nil, diags
	}
	//
	resolved, err := selectWithin(prefixType, e.Suffix.Designator())
	if err != nil {
		return nil, append(diags, *r.diagnose(e.Suffix, err))
	}
	//
	e.Suffix.Resolve(resolved)
	r.refs.SetReference(e.Suffix, resolved)
	//
	return resolved.Type, diags
}

// declarationOf extracts the declaration a name expression has already
// resolved to, if any.  Used to dispatch a selected name's prefix by
// declaration kind (library, package, ...) before falling back to
// dispatching by type, since those kinds carry no ast.Type of their own.
func declarationOf(expr ast.Expression) *ast.Declaration {
	switch e := expr.(type) {
	case *ast.SimpleNameExpr:
		if e.Name.IsResolved() {
			return e.Name.Declaration()
		}
	case *ast.SelectedName:
		if e.Suffix.IsResolved() {
			return e.Suffix.Declaration()
		}
	}
	//
	return nil
}

// resolveWithinScope implements lookup_selected against a package, library,
// context or entity declaration's own Scope region: "prefix.suffix" only
// sees what prefix itself declared (or what the region it extends
// declared), never what a use clause merely brought into visibility there.
func resolveWithinScope(prefixDecl *ast.Declaration, selector ast.Designator) (*ast.Declaration, error) {
	scope, ok := prefixDecl.Scope.(*region.Region)
	if !ok || scope == nil {
		return nil, fmt.Errorf("No declaration of '%s' within '%s'", selector.Text(), prefixDecl.Designator.Text())
	}
	//
	return scope.LookupWithin(selector, region.AnyArity())
}

// selectWithin resolves `selector` against the element/subprogram/member set
// of `prefixType`, dereferencing through an access type and following a
// subtype down to its record base type as needed.
func selectWithin(prefixType ast.Type, selector ast.Designator) (*ast.Declaration, error) {
	base := ast.BaseType(prefixType)
	//
	if acc, ok := base.(*ast.AccessType); ok {
		base = ast.BaseType(acc.Designated)
	}
	//
	switch t := base.(type) {
	case *ast.RecordType:
		if elemType, ok := t.Element(selector.Text()); ok {
			return &ast.Declaration{Designator: selector, Kind: ast.Other, Type: elemType}, nil
		}
		//
		return nil, fmt.Errorf("No declaration of '%s' within record type '%s'", selector.Text(), t.Name())
	case *ast.ProtectedType:
		if t.HasSubprogram(selector.Text()) {
			return &ast.Declaration{Designator: selector, Kind: ast.Overloaded}, nil
		}
		//
		return nil, fmt.Errorf("No declaration of '%s' within protected type '%s'", selector.Text(), t.Name())
	default:
		return nil, fmt.Errorf("No declaration of '%s' within '%s'", selector.Text(), prefixType.String())
	}
}

func (r *Resolver) resolveIndexedName(e *ast.IndexedName, scope *region.Region) (ast.Type, []source.Diagnostic) {
	prefixType, diags := r.ResolveExpression(e.Prefix, scope)
	if prefixType == nil {
		return nil, diags
	}
	//
	arr, ok := ast.BaseType(prefixType).(*ast.ArrayType)
	if !ok {
		msg := fmt.Sprintf("Subtype '%s' cannot be indexed", prefixType.String())
		return nil, append(diags, *source.NewDiagnostic(*e.File().SyntaxError(e.Span(), msg)))
	}
	//
	for _, idx := range e.Indices {
		_, idiags := r.ResolveExpression(idx, scope)
		diags = append(diags, idiags...)
	}
	//
	if dims := arr.Dimensions; dims > 0 && len(e.Indices) != dims {
		msg := "Number of indexes does not match array dimension"
		diag := source.NewDiagnostic(*e.File().SyntaxError(e.Span(), msg))
		//
		noteText := fmt.Sprintf("Array type '%s' has %d dimension, got %d indexes", arr.Name(), dims, len(e.Indices))
		//
		if arr.Decl != nil {
			diag = diag.WithRelated(source.NewRelated(arr.Decl.File(), arr.Decl.Span(), noteText))
		} else {
			diag = diag.WithRelated(source.NewRelated(e.File(), e.Span(), noteText))
		}
		//
		diags = append(diags, *diag)
	}
	//
	return arr.Element, diags
}

func (r *Resolver) resolveSlicedName(e *ast.SlicedName, scope *region.Region) (ast.Type, []source.Diagnostic) {
	prefixType, diags := r.ResolveExpression(e.Prefix, scope)
	if prefixType == nil {
		return nil, diags
	}
	//
	if _, ok := ast.BaseType(prefixType).(*ast.ArrayType); !ok {
		msg := fmt.Sprintf("Subtype '%s' cannot be sliced", prefixType.String())
		return nil, append(diags, *source.NewDiagnostic(*e.File().SyntaxError(e.Span(), msg)))
	}
	//
	_, ldiags := r.ResolveExpression(e.Low, scope)
	_, hdiags := r.ResolveExpression(e.High, scope)
	//
	return prefixType, append(append(diags, ldiags...), hdiags...)
}

// attributeResultTypes gives the result type of every attribute whose result
// type does not depend on its prefix's own type (e.g. 'length is always a
// universal integer, regardless of the array's element type).
var attributeResultTypes = map[string]*ast.ScalarType{
	"length": {TypeName: "integer", Universal: true},
	"left":   nil, // same as prefix's index type: handled specially below
	"right":  nil,
	"high":   nil,
	"low":    nil,
}

func (r *Resolver) resolveAttributeName(e *ast.AttributeName, scope *region.Region) (ast.Type, []source.Diagnostic) {
	prefixType, diags := r.ResolveExpression(e.Prefix, scope)
	//
	for _, arg := range e.Args {
		_, adiags := r.ResolveExpression(arg, scope)
		diags = append(diags, adiags...)
	}
	//
	if t, ok := attributeResultTypes[e.Attribute]; ok && t != nil {
		return t, diags
	}
	//
	return prefixType, diags
}

func (r *Resolver) resolveQualifiedExpression(e *ast.QualifiedExpression, scope *region.Region) (ast.Type, []source.Diagnostic) {
	typeType, diags := r.resolveSimpleName(e.TypeMark, scope, region.NoArity())
	if typeType == nil {
		return nil, diags
	}
	//
	_, idiags := r.ResolveExpression(e.Inner, scope)
	//
	return typeType, append(diags, idiags...)
}

func (r *Resolver) resolveExternalName(e *ast.ExternalName, scope *region.Region) (ast.Type, []source.Diagnostic) {
	typeType, diags := r.resolveSimpleName(e.TypeMark, scope, region.NoArity())
	return typeType, diags
}

// resolveCallOrIndex disambiguates a syntactic "f(args)" into either an
// indexed name (f denotes an array object) or a function call (f denotes a
// subprogram), exactly as VHDL requires: the grammar alone cannot tell them
// apart until the prefix is resolved.
func (r *Resolver) resolveCallOrIndex(e *ast.CallOrIndex, scope *region.Region) (ast.Type, []source.Diagnostic) {
	nargs := uint(len(e.Arguments))
	decl, err := scope.Lookup(e.Prefix.Designator(), region.ExactArity(nargs))
	//
	if err != nil {
		return nil, []source.Diagnostic{*r.diagnose(e.Prefix, err)}
	}
	//
	e.Prefix.Resolve(decl)
	r.refs.SetReference(e.Prefix, decl)
	//
	var diags []source.Diagnostic
	//
	for _, a := range e.Arguments {
		_, adiags := r.ResolveExpression(a.Actual, scope)
		diags = append(diags, adiags...)
	}
	//
	if decl.IsOverloaded() {
		return decl.Signature.Return, diags
	}
	//
	if arr, ok := ast.BaseType(decl.Type).(*ast.ArrayType); ok {
		return arr.Element, diags
	}
	//
	return decl.Type, diags
}

func (r *Resolver) resolveFunctionCall(e *ast.FunctionCall, scope *region.Region) (ast.Type, []source.Diagnostic) {
	var diags []source.Diagnostic
	//
	for _, a := range e.Arguments {
		_, adiags := r.ResolveExpression(a.Actual, scope)
		diags = append(diags, adiags...)
	}
	//
	if !e.Callee.IsResolved() {
		nargs := uint(len(e.Arguments))
		decl, err := scope.Lookup(e.Callee.Designator(), region.ExactArity(nargs))
		//
		if err != nil {
			return nil, append(diags, *r.diagnose(e.Callee, err))
		}
		//
		e.Callee.Resolve(decl)
		r.refs.SetReference(e.Callee, decl)
		e.Type = decl.Signature.Return
	}
	//
	return e.Type, diags
}

// resolveBinaryOp picks the operator overload matching both operand types
// via SelectOverload rather than scope.Lookup: predefined operators such as
// "=" and "+" are declared once per operand type and all share the same
// designator, so picking by arity alone (as Lookup does) would see them as
// mutually ambiguous before their operand types are even considered.
func (r *Resolver) resolveBinaryOp(e *ast.BinaryOp, scope *region.Region) (ast.Type, []source.Diagnostic) {
	lt, ldiags := r.ResolveExpression(e.Left, scope)
	rt, rdiags := r.ResolveExpression(e.Right, scope)
	diags := append(ldiags, rdiags...)
	//
	candidates := scope.AllCandidates(e.Op)
	decl, err := SelectOverload(candidates, []ast.Type{lt, rt})
	//
	if err != nil {
		if amb, ok := err.(*region.AmbiguousError); ok {
			return nil, append(diags, *r.diagnose(e, amb))
		}
		//
		msg := fmt.Sprintf("No declaration of operator %s for operand types '%s' and '%s'", e.Op, typeName(lt), typeName(rt))
		return nil, append(diags, *source.NewDiagnostic(*e.File().SyntaxError(e.Span(), msg)))
	}
	//
	e.Resolved = decl
	e.Type = decl.Signature.Return
	r.refs.SetReference(e, decl)
	//
	return e.Type, diags
}

func (r *Resolver) resolveUnaryOp(e *ast.UnaryOp, scope *region.Region) (ast.Type, []source.Diagnostic) {
	ot, diags := r.ResolveExpression(e.Operand, scope)
	//
	candidates := scope.AllCandidates(e.Op)
	decl, err := SelectOverload(candidates, []ast.Type{ot})
	//
	if err != nil {
		if amb, ok := err.(*region.AmbiguousError); ok {
			return nil, append(diags, *r.diagnose(e, amb))
		}
		//
		msg := fmt.Sprintf("No declaration of operator %s for operand type '%s'", e.Op, typeName(ot))
		return nil, append(diags, *source.NewDiagnostic(*e.File().SyntaxError(e.Span(), msg)))
	}
	//
	e.Resolved = decl
	e.Type = decl.Signature.Return
	r.refs.SetReference(e, decl)
	//
	return e.Type, diags
}

func typeName(t ast.Type) string {
	if t == nil {
		return "<unknown>"
	}
	//
	return t.String()
}

// ResolveAliasSignature checks the alias-signature legality rule: an alias
// of an overloadable designator requires a signature to say which overload
// is meant; an alias of anything else forbids one.
func ResolveAliasSignature(alias *ast.Declaration, hasSignature bool) *source.Diagnostic {
	target := alias.AliasTarget
	if target == nil {
		return nil
	}
	//
	if target.IsOverloaded() && !hasSignature {
		msg := "Signature required for alias of subprogram and enum literals"
		return source.NewDiagnostic(*alias.Node.File().SyntaxError(alias.Node.Span(), msg))
	}
	//
	if !target.IsOverloaded() && hasSignature {
		msg := "Alias should only have a signature for subprograms and enum literals"
		return source.NewDiagnostic(*alias.Node.File().SyntaxError(alias.Node.Span(), msg))
	}
	//
	return nil
}

// pair couples an overload candidate with a list of argument types, after
// util.Pair; SelectOverload and the rest of this package do not use it.
type pair = util.Pair[*ast.Declaration, []ast.Type]

// SelectOverload picks the single candidate, among several sharing a
// designator, whose signature is compatible with the given argument types -
// the workhorse of overload resolution once a qualified expression or the
// expected return type has narrowed candidates down to exactly one.
func SelectOverload(candidates []*ast.Declaration, argTypes []ast.Type) (*ast.Declaration, error) {
	var matches []*ast.Declaration
	//
	for _, c := range candidates {
		if c.Signature == nil || !c.Signature.CompatibleWith(uint(len(argTypes))) {
			continue
		}
		//
		ok := true
		//
		for i, at := range argTypes {
			if i >= len(c.Signature.Parameters) {
				break
			}
			//
			if at != nil && !at.SubtypeOf(c.Signature.Parameters[i].BaseType) {
				ok = false
				break
			}
		}
		//
		if ok {
			matches = append(matches, c)
		}
	}
	//
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("No matching overload")
	case 1:
		return matches[0], nil
	default:
		return nil, &region.AmbiguousError{Designator: matches[0].Designator, Candidates: matches}
	}
}
