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

// Package ast defines the semantic vocabulary shared by the region tree, the
// name resolver and the expression type checker: designators, declaration
// kinds, signatures and types.  It carries no parsing logic of its own.
package ast

import (
	"fmt"
	"strings"
)

// Designator identifies a declared name.  Most designators are plain
// identifiers ("clk", "my_signal"), but VHDL also permits operator symbols
// ("\"+\"", "\"and\"") to be declared and overloaded exactly like
// subprograms.  Designators are compared case-insensitively, as VHDL
// identifiers are themselves case-insensitive.
type Designator struct {
	text       string
	isOperator bool
}

// NewIdentifier constructs a designator for a plain identifier.
func NewIdentifier(name string) Designator {
	return Designator{strings.ToLower(name), false}
}

// NewOperatorSymbol constructs a designator for an operator symbol, e.g. "+".
func NewOperatorSymbol(op string) Designator {
	return Designator{strings.ToLower(op), true}
}

// Text returns the canonical (lower-cased) textual form of this designator.
func (d Designator) Text() string {
	return d.text
}

// IsOperatorSymbol indicates whether this designator names an operator
// rather than a plain identifier.  Operator symbols are always overloadable.
func (d Designator) IsOperatorSymbol() bool {
	return d.isOperator
}

// String renders the designator the way it would appear in source.
func (d Designator) String() string {
	if d.isOperator {
		return fmt.Sprintf("%q", d.text)
	}
	//
	return d.text
}

// Signature captures the parameter and return base types of an overloadable
// declaration (a subprogram or enumeration literal), used to disambiguate
// between overloads sharing a designator.  Two signatures are compared by
// base type, never by subtype or alias identity: a parameter of a subtype of
// INTEGER and a parameter of INTEGER itself yield the same signature.
type Signature struct {
	// Parameters, in order.  Parameters with a statically known default
	// value are recorded with DefaultValued set, so call sites that omit a
	// trailing actual can still match.
	Parameters []Parameter
	// Return is the base type of the return value, or nil for a procedure
	// or an alias of a non-function.
	Return Type
}

// Parameter is one formal parameter of a Signature.
type Parameter struct {
	BaseType      Type
	DefaultValued bool
}

// Arity returns the number of parameters in this signature.
func (s Signature) Arity() uint {
	return uint(len(s.Parameters))
}

// EffectiveArity returns the minimum number of arguments a call must supply:
// parameters after the first default-valued trailing run are optional.
func (s Signature) EffectiveArity() uint {
	n := len(s.Parameters)
	for n > 0 && s.Parameters[n-1].DefaultValued {
		n--
	}
	//
	return uint(n)
}

// CompatibleWith determines whether this signature could serve a call site
// with the given number of actual arguments, accounting for default-valued
// trailing parameters being dropped from comparison when the call site
// supplies no corresponding actual.
func (s Signature) CompatibleWith(nargs uint) bool {
	return nargs >= s.EffectiveArity() && nargs <= s.Arity()
}

// SameBaseTypes determines whether two signatures resolve to the same
// overload once subtypes and aliases are reduced to their base type.  This
// is the comparison mandated for e.g. "subpgm[sub_type, return sub_type]"
// and "subpgm[integer, return integer]" resolving identically.
func (s Signature) SameBaseTypes(other Signature) bool {
	if len(s.Parameters) != len(other.Parameters) {
		return false
	}
	//
	for i := range s.Parameters {
		if !sameBase(s.Parameters[i].BaseType, other.Parameters[i].BaseType) {
			return false
		}
	}
	//
	return sameBase(s.Return, other.Return)
}

func sameBase(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	//
	return BaseType(a).String() == BaseType(b).String()
}
