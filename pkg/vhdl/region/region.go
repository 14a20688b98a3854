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

// Package region implements the declarative-region tree that underlies name
// resolution: every declarative part (an entity, an architecture, a package
// and its body, a block, a process, a subprogram body, a protected type and
// its body, ...) owns a Region holding the names it declares and the names
// it has made visible from elsewhere.
package region

import (
	"fmt"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
)

// Kind distinguishes the different declarative parts a Region can stand for.
// Most of the logic in this package is kind-agnostic; Kind mainly documents
// intent and is consulted by InPackageDeclaration and by the orchestrator
// when deciding which regions extend which.
type Kind uint8

// Region kinds.
const (
	Other Kind = iota
	PackageDeclaration
	PackageBody
	EntityDeclaration
	Architecture
	Block
	Process
	Subprogram
	ProtectedTypeHeader
	ProtectedTypeBody
	Generate
	Configuration
	Context
)

// VisibleDeclaration is one entry of a region's "use-visible" plane: a
// declaration made visible by a use clause (or by library/context-clause
// propagation) rather than declared directly within the region.  Unlike a
// declared-plane entry, a potentially-visible entry never causes a duplicate
// error on its own: two different use clauses naming the same declaration
// simply both point at it, and an explicit local declaration of the same
// designator silently takes precedence over it rather than colliding.
type VisibleDeclaration struct {
	Decl *ast.Declaration
	// Overwritable marks an entry installed via a use clause: it may be
	// silently shadowed by a later direct declaration or a later explicit
	// (non-"all") use of the same designator, but two "all" uses of
	// different packages declaring the same designator make that
	// designator ambiguous if looked up without a signature to disambiguate.
	Overwritable bool
}

// Region is one node of the declarative-region tree.
type Region struct {
	kind Kind
	// parent is the lexically enclosing region.  It is consulted only
	// during unqualified lookup: an inner region may see outer
	// declarations, but outer completion checks never look inside.
	parent *Region
	// extends links a secondary region to the primary region it completes
	// -- a package body to its package declaration, a protected type body
	// to its protected type header, an architecture to its entity.  Unlike
	// parent, extends is consulted both by lookup (the body sees
	// everything the header declares) and by the deferred-completion
	// checks (a deferred constant declared in the header may be completed
	// by a constant declared in the body).
	extends *Region
	// declared holds this region's own declarations, keyed by designator
	// text.  A key may map to several declarations when they are mutually
	// overloadable, or when one is a deferred declaration awaiting
	// completion by another.
	declared map[string][]*ast.Declaration
	// visible holds the use-visible plane: declarations from elsewhere
	// that a use clause (or context-clause propagation) has brought into
	// scope here.
	visible map[string][]VisibleDeclaration
	children []*Region
}

// New constructs a fresh, empty top-level region of the given kind.
func New(kind Kind) *Region {
	return &Region{
		kind:     kind,
		declared: make(map[string][]*ast.Declaration),
		visible:  make(map[string][]VisibleDeclaration),
	}
}

// Nested constructs a new region lexically enclosed by this one: an inner
// block, process or subprogram body declared within it.
func (r *Region) Nested(kind Kind) *Region {
	child := New(kind)
	child.parent = r
	r.children = append(r.children, child)
	//
	return child
}

// Extend constructs a new region which extends `primary`: a package body
// extending its package declaration, a protected type body extending its
// header, an architecture extending its entity.  The new region's lexical
// parent is `lexicalParent` (typically the same parent as `primary`, or the
// library region for a top-level secondary unit).
func Extend(primary *Region, lexicalParent *Region, kind Kind) *Region {
	child := New(kind)
	child.parent = lexicalParent
	child.extends = primary
	//
	return child
}

// Kind returns this region's kind.
func (r *Region) Kind() Kind {
	return r.kind
}

// Extends returns the region this one extends (completes), or nil.
func (r *Region) Extends() *Region {
	return r.extends
}

// InPackageDeclaration determines whether this region is (or lexically sits
// within) a package declaration, as opposed to a package body - consulted
// when deciding whether a deferred constant is even legal here (deferred
// constants may only be declared in a package declaration).
func (r *Region) InPackageDeclaration() bool {
	for cur := r; cur != nil; cur = cur.parent {
		if cur.kind == PackageDeclaration {
			return true
		}
	}
	//
	return false
}

// ===========================================================================
// Insertion
// ===========================================================================

// CheckDuplicate determines whether adding `decl` to this region's declared
// plane would collide with an existing declaration of the same designator,
// and if so returns that existing declaration.  It does not mutate the
// region.
func (r *Region) CheckDuplicate(decl *ast.Declaration) (existing *ast.Declaration, duplicate bool) {
	for _, prior := range r.declared[decl.Designator.Text()] {
		completed := prior.AliasTarget != nil // best-effort; see completedAlready below
		completed = r.completedAlready(prior)
		//
		if prior.FindDuplicateOf(decl, completed) {
			return prior, true
		}
	}
	//
	return nil, false
}

// completedAlready determines whether `decl` - a declaration which requires
// completion - has already been completed by an earlier entry recorded
// against the same designator.  Completion is recognised only via the
// *second* recorded declaration data matching the expected completion kind:
// a later, unrelated third entry sharing the designator never retroactively
// satisfies completion.
func (r *Region) completedAlready(decl *ast.Declaration) bool {
	completion, ok := decl.Kind.CompletesWith()
	if !ok {
		return false
	}
	//
	entries := r.declared[decl.Designator.Text()]
	//
	for i, e := range entries {
		if e == decl && i+1 < len(entries) {
			return entries[i+1].Kind == completion
		}
	}
	//
	return false
}

// AddDecl validates and inserts `decl` into this region's declared plane.
// If it collides with an existing declaration under the duplicate rule, the
// existing declaration is retained, the new one is still recorded (so a
// later completion can still be matched against it), and a diagnostic
// reporting "duplicate declaration of X" with a related "previously defined
// here" note is returned.
func (r *Region) AddDecl(decl *ast.Declaration) *source.Diagnostic {
	var diag *source.Diagnostic
	//
	if existing, dup := r.CheckDuplicate(decl); dup {
		diag = r.duplicateDiagnostic(decl, existing)
	}
	//
	key := decl.Designator.Text()
	r.declared[key] = append(r.declared[key], decl)
	//
	return diag
}

func (r *Region) duplicateDiagnostic(decl *ast.Declaration, existing *ast.Declaration) *source.Diagnostic {
	msg := fmt.Sprintf("Duplicate declaration of '%s'", decl.Designator.Text())
	err := decl.Node.File().SyntaxError(decl.Node.Span(), msg)
	diag := source.NewDiagnostic(*err)
	note := source.NewRelated(existing.Node.File(), existing.Node.Span(), "Previously defined here")
	//
	return diag.WithRelated(note)
}

// Add inserts `decl` unconditionally, without a duplicate check.  Used for
// compiler-synthesised declarations (e.g. predefined operators introduced
// alongside a new type) which are never in conflict with user code by
// construction.
func (r *Region) Add(decl *ast.Declaration) {
	key := decl.Designator.Text()
	r.declared[key] = append(r.declared[key], decl)
}

// Overwrite replaces any existing declared-plane entries for `decl`'s
// designator with just `decl`.  Used when re-processing a region
// (incremental re-analysis) where stale entries must not linger.
func (r *Region) Overwrite(decl *ast.Declaration) {
	key := decl.Designator.Text()
	r.declared[key] = []*ast.Declaration{decl}
}

// AddImplicit is an alias of Add, kept distinct so call sites documenting
// "this is a compiler-implicit declaration" read clearly.
func (r *Region) AddImplicit(decl *ast.Declaration) {
	r.Add(decl)
}

// AddImplicitDeclarations adds a batch of compiler-implicit declarations,
// e.g. the predefined operators of the standard region.
func (r *Region) AddImplicitDeclarations(decls []*ast.Declaration) {
	for _, d := range decls {
		r.Add(d)
	}
}

// ===========================================================================
// Visibility
// ===========================================================================

// MakeLibraryVisible installs the library declaration `libDecl` in this
// region's use-visible plane (`libName` is not consulted): declared in the sense that "library foo;"
// makes the designator "foo" resolvable, but the library's own contents
// only become visible on a subsequent "use foo.bar;" or "use foo.all;".
func (r *Region) MakeLibraryVisible(libName string, libDecl *ast.Declaration) {
	key := libDecl.Designator.Text()
	_ = libName
	r.visible[key] = append(r.visible[key], VisibleDeclaration{libDecl, false})
}

// MakePotentiallyVisible brings a single declaration into this region's
// use-visible plane, e.g. from "use work.pkg.item;".  A potentially-visible
// entry never collides with the declared plane or with another
// potentially-visible entry: ambiguity between two same-named,
// different-origin potentially-visible entries is only reported if the name
// is actually looked up without enough context (e.g. a signature) to
// disambiguate.
func (r *Region) MakePotentiallyVisible(decl *ast.Declaration) {
	key := decl.Designator.Text()
	//
	for _, v := range r.visible[key] {
		if v.Decl == decl {
			return
		}
	}
	//
	r.visible[key] = append(r.visible[key], VisibleDeclaration{decl, true})
	r.promoteImplicit(decl)
}

// promoteImplicit brings every declaration of decl's implicit region (if it
// has one) into this region's use-visible plane alongside decl itself: an
// enumeration type's literals become potentially visible whenever the type
// does, so that a use clause naming only the type still reaches its
// literals. Follows AliasOf to the aliased declaration first, since an
// alias of a type carries the same implicit declarations as the type it
// aliases. Recursing back through MakePotentiallyVisible is safe: its
// already-present check above stops re-processing the same declaration, and
// a promoted literal is never itself a TypeDeclaration, so it terminates.
func (r *Region) promoteImplicit(decl *ast.Declaration) {
	target := decl
	for target.Kind == ast.AliasOf && target.AliasTarget != nil {
		target = target.AliasTarget
	}
	//
	if target.Kind != ast.TypeDeclaration {
		return
	}
	//
	implicit, ok := target.Scope.(*Region)
	if !ok || implicit == nil {
		return
	}
	//
	for _, decls := range implicit.declared {
		for _, d := range decls {
			r.MakePotentiallyVisible(d)
		}
	}
}

// MakeAllPotentiallyVisible brings every declaration from `pkg`'s own
// declared plane into this region's use-visible plane, e.g. from "use
// work.pkg.all;".
func (r *Region) MakeAllPotentiallyVisible(pkg *Region) {
	for _, decls := range pkg.declared {
		for _, d := range decls {
			r.MakePotentiallyVisible(d)
		}
	}
}

// CopyVisibilityFrom copies another region's entire use-visible plane into
// this one, used to propagate a context clause's effect into every design
// unit that uses it.
func (r *Region) CopyVisibilityFrom(other *Region) {
	for key, entries := range other.visible {
		r.visible[key] = append(r.visible[key], entries...)
	}
}

// ===========================================================================
// Lookup
// ===========================================================================

// candidates collects every declaration (declared, then use-visible) bound
// to `designator` in this region alone, without consulting parent or extends
// links.
func (r *Region) candidates(designator ast.Designator) []*ast.Declaration {
	key := designator.Text()
	result := append([]*ast.Declaration(nil), r.declared[key]...)
	//
	for _, v := range r.visible[key] {
		result = append(result, v.Decl)
	}
	//
	return result
}

// selectedCandidates collects every declaration bound to `designator` in
// this region's own declared plane, then (recursively) the declared plane
// of whatever it extends - never the use-visible plane, and never a lexical
// parent. This is the candidate set lookup_selected draws from: a selected
// name "p.x" only ever sees what p itself declares (or what the region p
// extends declares), regardless of what a "use" clause happened to bring
// into scope at p's own point of declaration.
func (r *Region) selectedCandidates(designator ast.Designator) []*ast.Declaration {
	key := designator.Text()
	var result []*ast.Declaration
	//
	for cur := r; cur != nil; cur = cur.extends {
		result = append(result, cur.declared[key]...)
	}
	//
	return result
}

// LookupWithin implements lookup_selected: searching only this region's own
// declared plane and, recursively, the declared plane of whatever it
// extends. It never consults the use-visible plane and never walks the
// lexical parent chain - "p.x" only sees what p (or the primary unit p
// extends) itself declares, never what a use clause merely brought into
// scope at p's point of declaration, and never what is visible lexically at
// the point of use.
func (r *Region) LookupWithin(designator ast.Designator, arity ArityFilter) (*ast.Declaration, error) {
	return pick(designator, arity, r.selectedCandidates(designator))
}

// Lookup performs ordinary unqualified name resolution.  Each region, from
// this one out through its lexical parents to the root, is searched plane by
// plane: its declared plane, the extends region's declared plane, its
// use-visible plane, then the extends region's use-visible plane.  The first
// plane holding an arity-compatible candidate decides the result, so a local
// declaration hides a use-visible declaration of the same designator.
func (r *Region) Lookup(designator ast.Designator, arity ArityFilter) (*ast.Declaration, error) {
	for cur := r; cur != nil; cur = cur.parent {
		own, n := cur.candidates(designator), len(cur.declared[designator.Text()])
		planes := [][]*ast.Declaration{own[:n], nil, own[n:], nil}
		if cur.extends != nil {
			ext, m := cur.extends.candidates(designator), len(cur.extends.declared[designator.Text()])
			planes[1], planes[3] = ext[:m], ext[m:]
		}
		for _, plane := range planes {
			decl, err := pick(designator, arity, plane)
			if _, ambiguous := err.(*AmbiguousError); err == nil || ambiguous {
				return decl, err
			}
		}
	}
	//
	return pick(designator, arity, nil)
}

// AllCandidates gathers every declaration bound to `designator` anywhere
// this region's ordinary name resolution would search - its own planes,
// then the extends region's, then each lexically enclosing region's, up to
// the root - without narrowing by arity.  Overload resolution that needs
// the full candidate set before choosing (e.g. matching a predefined
// operator against its actual operand types via SelectOverload) uses this
// directly instead of Lookup, which collapses straight to a single
// declaration or an ambiguity error.
func (r *Region) AllCandidates(designator ast.Designator) []*ast.Declaration {
	var all []*ast.Declaration
	//
	for cur := r; cur != nil; cur = cur.parent {
		all = append(all, cur.candidates(designator)...)
		//
		if cur.extends != nil {
			all = append(all, cur.extends.candidates(designator)...)
		}
	}
	//
	return all
}

// ArityFilter narrows a lookup to candidates compatible with a particular
// use: a plain name reference (Exact(None)), a call/indexing site supplying
// n actual arguments (Exact(Some(n))), or "any overload, I'll disambiguate
// later via a qualified expression or expected type" (Any).
type ArityFilter struct {
	any   bool
	value uint
	some  bool
}

// AnyArity accepts every candidate regardless of arity.
func AnyArity() ArityFilter { return ArityFilter{any: true} }

// ExactArity narrows to candidates whose signature is compatible with
// exactly n actual arguments (for overloaded/aliased declarations), or which
// are non-overloadable.
func ExactArity(n uint) ArityFilter { return ArityFilter{value: n, some: true} }

// NoArity narrows to non-call occurrences: no overloaded candidate matches
// unless it is also visible as a plain object (which never happens for
// subprograms), so in practice this only selects non-overloadable kinds.
func NoArity() ArityFilter { return ArityFilter{} }

func (f ArityFilter) matches(decl *ast.Declaration) bool {
	if f.any {
		return true
	}
	//
	if !decl.IsOverloaded() {
		return !f.some || true
	}
	//
	if decl.Signature == nil {
		return false
	}
	//
	return f.some && decl.Signature.CompatibleWith(f.value)
}

// pick filters `candidates` by arity and reports the outcome: exactly one
// match resolves cleanly, zero matches is an unresolved-name condition
// (reported by the caller, which has the source position), and more than one
// surviving, mutually non-identical candidate is an ambiguous reference.
func pick(designator ast.Designator, arity ArityFilter, candidates []*ast.Declaration) (*ast.Declaration, error) {
	var matches []*ast.Declaration
	//
	for _, c := range candidates {
		if arity.matches(c) {
			matches = append(matches, c)
		}
	}
	//
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("No declaration of '%s'", designator.Text())
	case 1:
		return matches[0], nil
	default:
		if allSameOverload(matches) {
			return matches[0], nil
		}
		//
		return nil, &AmbiguousError{designator, matches}
	}
}

func allSameOverload(decls []*ast.Declaration) bool {
	for _, d := range decls[1:] {
		if d.Signature == nil || decls[0].Signature == nil || !d.Signature.SameBaseTypes(*decls[0].Signature) {
			return false
		}
	}
	//
	return true
}

// AmbiguousError is returned by Lookup/LookupWithin when more than one
// genuinely distinct candidate survives arity filtering.  Callers with a
// source position use Candidates to build "might be X" related notes, one
// per surviving candidate, as spec.md's worked scenarios require.
type AmbiguousError struct {
	Designator ast.Designator
	Candidates []*ast.Declaration
}

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Ambiguous use of '%s'", e.Designator.Text())
}
