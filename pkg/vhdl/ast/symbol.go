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

import "github.com/vhdl-lang/vhdl-lang/pkg/util"

// Binding is implemented by anything a Symbol occurrence may resolve to.
// *Declaration is the only implementation today, but keeping this as an
// interface (rather than hard-wiring *Declaration into Symbol) is what lets
// a later binding kind - e.g. a synthetic "implicit" declaration generated
// for a predefined operator - be introduced without touching every call
// site that resolves a name.
type Binding interface {
	// DeclKind returns the declaration kind governing this binding.
	DeclKind() DeclarationKind
}

// DeclKind implements Binding.
func (d *Declaration) DeclKind() DeclarationKind { return d.Kind }

// Symbol represents one occurrence of a name within an expression or a
// declaration header, prior to (and after) resolution.  It is the mutable
// reference slot the resolver fills in: initially Resolve has not been
// called, and IsResolved is false.
type Symbol interface {
	Node
	// Designator returns the designator this occurrence refers to.
	Designator() Designator
	// Arity distinguishes a function/procedure-call occurrence (Some(n))
	// from any other occurrence (None), mirroring how overloaded
	// declarations are keyed by (designator, arity).
	Arity() util.Option[uint]
	// IsResolved checks whether this occurrence has already been bound.
	IsResolved() bool
	// Resolve binds this occurrence to the given declaration.  Returns
	// false if the occurrence was already resolved (each occurrence may be
	// resolved exactly once).
	Resolve(*Declaration) bool
	// Declaration returns the declaration this occurrence was resolved to.
	// Panics if called before resolution.
	Declaration() *Declaration
}

// Name is the concrete, generic implementation of Symbol used throughout the
// AST for every name occurrence: variable references, type marks, the
// designator half of a selected name, and so on.
type Name[T Binding] struct {
	Position
	designator Designator
	arity      util.Option[uint]
	binding    T
	resolved   bool
}

// NewName constructs a new, unresolved name occurrence at the given
// position.
func NewName[T Binding](pos Position, designator Designator, arity util.Option[uint]) *Name[T] {
	return &Name[T]{pos, designator, arity, *new(T), false}
}

// Designator implements Symbol.
func (n *Name[T]) Designator() Designator { return n.designator }

// Arity implements Symbol.
func (n *Name[T]) Arity() util.Option[uint] { return n.arity }

// IsResolved implements Symbol.
func (n *Name[T]) IsResolved() bool { return n.resolved }

// Resolve implements Symbol.
func (n *Name[T]) Resolve(decl *Declaration) bool {
	if n.resolved {
		return false
	}
	//
	binding, ok := any(decl).(T)
	if !ok {
		return false
	}
	//
	n.binding = binding
	n.resolved = true
	//
	return true
}

// Declaration implements Symbol.
func (n *Name[T]) Declaration() *Declaration {
	if !n.resolved {
		panic("name not yet resolved")
	}
	//
	return any(n.binding).(*Declaration)
}

// InnerBinding returns the concretely typed binding, once resolved.
func (n *Name[T]) InnerBinding() T {
	if !n.resolved {
		panic("name not yet resolved")
	}
	//
	return n.binding
}

// SimpleName is a Name occurrence which may resolve to any declaration kind.
type SimpleName = Name[*Declaration]

// NewSimpleName constructs an unresolved SimpleName.
func NewSimpleName(pos Position, designator Designator, arity util.Option[uint]) *SimpleName {
	return NewName[*Declaration](pos, designator, arity)
}
