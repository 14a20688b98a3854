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
package ast

// DeclarationKind classifies a declaration for the purposes of the duplicate
// rule, the visibility engine and deferred-completion checks.  This mirrors
// the set of "AnyDeclaration" variants a VHDL name resolver must distinguish;
// most kinds behave like "Other" (a single, non-overloadable declaration),
// but several interact with each other across a declarative region:
//
//   - DeferredConstant must be completed by a matching Constant.
//   - IncompleteType must be completed by a matching TypeDeclaration.
//   - ProtectedType must be completed by a matching ProtectedTypeBody.
//   - Overloaded declarations (subprograms, enumeration literals) may be
//     declared any number of times provided their signatures differ.
//   - AliasOf declarations forward visibility/overload-ness to their target.
type DeclarationKind uint8

// Declaration kinds, in the order they are first introduced by spec.md.
const (
	Other DeclarationKind = iota
	Overloaded
	AliasOf
	TypeDeclaration
	IncompleteType
	ProtectedType
	ProtectedTypeBody
	Constant
	DeferredConstant
	Library
	Entity
	Configuration
	Package
	UninstPackage
	PackageInstance
	Context
	LocalPackageInstance
)

var declarationKindNames = map[DeclarationKind]string{
	Other:                "declaration",
	Overloaded:           "overloaded declaration",
	AliasOf:              "alias",
	TypeDeclaration:      "type",
	IncompleteType:       "incomplete type",
	ProtectedType:        "protected type",
	ProtectedTypeBody:    "protected type body",
	Constant:             "constant",
	DeferredConstant:     "deferred constant",
	Library:              "library",
	Entity:               "entity",
	Configuration:        "configuration",
	Package:              "package",
	UninstPackage:        "uninstantiated package",
	PackageInstance:      "package instance",
	Context:              "context",
	LocalPackageInstance: "local package instance",
}

// String renders the kind the way it appears in diagnostic messages.
func (k DeclarationKind) String() string {
	if name, ok := declarationKindNames[k]; ok {
		return name
	}
	//
	return "declaration"
}

// IsOverloadable indicates whether more than one declaration of this kind
// may legally share a designator within the same region, distinguished by
// signature.  Only Overloaded qualifies; whether a particular AliasOf
// declaration behaves as overloaded is decided by Declaration.IsOverloaded.
func (k DeclarationKind) IsOverloadable() bool {
	return k == Overloaded
}

// completionOf maps a kind which requires later completion to the kind which
// legally completes it.  Only these pairs are legal non-overloaded
// re-declarations of the same designator within a region; anything else
// collides under the duplicate rule.
var completionOf = map[DeclarationKind]DeclarationKind{
	DeferredConstant: Constant,
	IncompleteType:   TypeDeclaration,
	ProtectedType:    ProtectedTypeBody,
}

// CompletesWith returns the declaration kind that legally completes a
// deferred declaration of this kind, and whether this kind requires
// completion at all.
func (k DeclarationKind) CompletesWith() (DeclarationKind, bool) {
	completion, ok := completionOf[k]
	return completion, ok
}

// RequiresCompletion indicates whether a declaration of this kind leaves an
// obligation that must be discharged before a region can be closed.
func (k DeclarationKind) RequiresCompletion() bool {
	_, ok := completionOf[k]
	return ok
}

// Declaration is one entry recorded in a region's declared set: a
// designator, tagged with the kind that governs how it may be re-declared
// and made visible, together with the source node it came from and (for
// overloadable or aliased declarations) its signature.
type Declaration struct {
	Designator Designator
	Kind       DeclarationKind
	Node       Node
	// Signature is non-nil for Overloaded declarations, and for AliasOf
	// declarations of an overloadable target (an alias signature is
	// mandatory in that case, and forbidden otherwise).
	Signature *Signature
	// AliasTarget is the declaration an AliasOf declaration refers to, once
	// resolved.  Nil until resolution completes.
	AliasTarget *Declaration
	// Type is the type this declaration's value has, when applicable
	// (constants, deferred constants, objects).  Left nil for declarations
	// where the notion does not apply (library, package, ...).
	Type Type
	// Scope holds the declarative region this declaration owns, for the
	// kinds that have one: a *region.Region for a TypeDeclaration's implicit
	// region (an enumeration type's literals, made potentially visible
	// alongside the type itself) and for Library, Entity, Configuration,
	// Package, UninstPackage, PackageInstance, LocalPackageInstance and
	// Context declarations (their own member region, the target of a
	// selected name's lookup_selected).  Declared as interface{} rather than
	// *region.Region because the region package already imports ast.  Nil
	// when the kind carries no region of its own.
	Scope interface{}
}

// IsOverloaded reports whether this declaration behaves as an overloaded
// declaration for the purposes of the duplicate rule: either it is itself
// Overloaded, or it is an AliasOf an overloaded target.
func (d *Declaration) IsOverloaded() bool {
	if d.Kind == Overloaded {
		return true
	}
	//
	return d.Kind == AliasOf && d.AliasTarget != nil && d.AliasTarget.IsOverloaded()
}

// RequiresSignature reports whether an AliasOf declaration of this target
// must carry a signature.  Aliases of overloadable designators (subprograms,
// enumeration literals) require a signature to disambiguate which overload
// is being aliased; aliases of anything else forbid one.
func (d *Declaration) RequiresSignature() bool {
	return d.IsOverloaded()
}

// FindDuplicateOf determines whether `other`, a newly encountered
// declaration sharing this declaration's designator, collides with it under
// the duplicate rule.  Returns true when the pair constitutes a hard
// duplicate error, false when `other` completes or may coexist with it.
//
// The rules, in order:
//  1. If both are overloadable and their signatures differ, no collision.
//  2. If this declaration's kind is legally completed by `other`'s kind, and
//     this declaration has not already been completed by some earlier
//     declaration, then `other` completes it: not a duplicate.
//  3. Otherwise, `other` duplicates this declaration.
func (d *Declaration) FindDuplicateOf(other *Declaration, alreadyCompleted bool) (duplicate bool) {
	if d.IsOverloaded() && other.IsOverloaded() {
		if d.Signature == nil || other.Signature == nil {
			return true
		}
		//
		return d.Signature.SameBaseTypes(*other.Signature)
	}
	//
	if completion, ok := d.Kind.CompletesWith(); ok && completion == other.Kind && !alreadyCompleted {
		return false
	}
	//
	return true
}
