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

import "fmt"

// Type represents a VHDL type in the sense the type checker cares about: its
// base type, and how to check compatibility and combine types for implicit
// conversions (e.g. universal integer literals against a concrete integer
// type).
type Type interface {
	// Name returns the name under which this type (or subtype) was declared.
	Name() string
	// Base returns the base type of this type.  For a type declaration this
	// is the type itself; for a subtype it is the base type it constrains.
	Base() Type
	// SubtypeOf determines whether this type is the same as, or a subtype
	// of, the given type -- i.e. whether a value of this type may be used
	// where the given type is expected.
	SubtypeOf(Type) bool
	// String renders this type for diagnostics.
	String() string
}

// BaseType strips away any subtype wrapping and returns the underlying base
// type.  Signature comparison is always performed on base types, never on
// subtype or alias identity.
func BaseType(t Type) Type {
	if t == nil {
		return nil
	}
	//
	for {
		b := t.Base()
		if b == nil || b == t {
			return t
		}
		//
		t = b
	}
}

// ScalarType is a named scalar base type, such as INTEGER, BOOLEAN or an
// enumeration type.  Literals (Universal Integer / Universal Real) are
// represented as ScalarTypes too, with Universal set.
type ScalarType struct {
	TypeName   string
	Universal  bool
	Literals   []string // enumeration literals, or nil for a non-enumeration scalar
}

// Name implements Type.
func (t *ScalarType) Name() string { return t.TypeName }

// Base implements Type: a declared scalar type is its own base.
func (t *ScalarType) Base() Type { return t }

// SubtypeOf implements Type.
func (t *ScalarType) SubtypeOf(other Type) bool {
	if t.Universal {
		// A universal literal is compatible with any scalar base type.
		_, ok := BaseType(other).(*ScalarType)
		return ok
	}
	//
	return BaseType(other) == Type(t)
}

// String implements Type.
func (t *ScalarType) String() string { return t.TypeName }

// SubtypeType constrains an existing base type, e.g. "subtype byte is
// integer range 0 to 255".
type SubtypeType struct {
	TypeName string
	Of       Type
}

// Name implements Type.
func (t *SubtypeType) Name() string { return t.TypeName }

// Base implements Type.
func (t *SubtypeType) Base() Type { return t.Of }

// SubtypeOf implements Type.
func (t *SubtypeType) SubtypeOf(other Type) bool {
	return BaseType(t).SubtypeOf(other)
}

// String implements Type.
func (t *SubtypeType) String() string { return t.TypeName }

// ArrayType represents an array type such as "array (natural range <>) of
// bit", with an element type and an optional fixed index range.
type ArrayType struct {
	TypeName string
	Element  Type
	// Constrained is false for an unconstrained array type such as
	// std_logic_vector; indexing and slicing legality checks differ for
	// constrained vs. unconstrained arrays.
	Constrained bool
	Low, High   int
	// Dimensions is the number of index positions this array type takes, as
	// declared.  This analysis only ever constructs single-dimensional array
	// types, so every constructor sets this to 1; it exists so an indexed
	// name with the wrong number of indices can be diagnosed against the
	// type's own declared dimensionality rather than assumed.
	Dimensions int
	// Decl anchors the array type's own declaration, so a dimension-mismatch
	// diagnostic can point a related note back at "array type 'T' has N
	// dimension(s)".  Nil for a type with no declaration node to point to.
	Decl Node
}

// Name implements Type.
func (t *ArrayType) Name() string { return t.TypeName }

// Base implements Type.
func (t *ArrayType) Base() Type { return t }

// SubtypeOf implements Type.
func (t *ArrayType) SubtypeOf(other Type) bool {
	o, ok := BaseType(other).(*ArrayType)
	return ok && t.Element.SubtypeOf(o.Element)
}

// String implements Type.
func (t *ArrayType) String() string { return t.TypeName }

// RecordElement is one field of a RecordType.
type RecordElement struct {
	Name string
	Type Type
}

// RecordType represents a record type; selected-name resolution on a value
// of this type looks the selector up among Elements.
type RecordType struct {
	TypeName string
	Elements []RecordElement
}

// Name implements Type.
func (t *RecordType) Name() string { return t.TypeName }

// Base implements Type.
func (t *RecordType) Base() Type { return t }

// SubtypeOf implements Type.
func (t *RecordType) SubtypeOf(other Type) bool {
	return BaseType(other) == Type(t)
}

// String implements Type.
func (t *RecordType) String() string { return t.TypeName }

// Element looks up a field by name, returning ok=false if the record has no
// such field.
func (t *RecordType) Element(name string) (Type, bool) {
	for _, e := range t.Elements {
		if e.Name == name {
			return e.Type, true
		}
	}
	//
	return nil, false
}

// AccessType represents an access (pointer) type.  Selected-name resolution
// through an access value implicitly dereferences before the field lookup
// proceeds against Designated.
type AccessType struct {
	TypeName   string
	Designated Type
}

// Name implements Type.
func (t *AccessType) Name() string { return t.TypeName }

// Base implements Type.
func (t *AccessType) Base() Type { return t }

// SubtypeOf implements Type.
func (t *AccessType) SubtypeOf(other Type) bool {
	return BaseType(other) == Type(t)
}

// String implements Type.
func (t *AccessType) String() string { return t.TypeName }

// ProtectedType represents a protected type; selected-name resolution
// against a protected value looks up the selector among Subprograms, which
// are the method declarations made in the protected type's header.
type ProtectedType struct {
	TypeName    string
	Subprograms []string
	// HasBody records whether the matching "protected body" has been
	// encountered.  The deferred-completion checks do not read it: they
	// pair a ProtectedType declaration with a ProtectedTypeBody by kind.
	HasBody bool
}

// Name implements Type.
func (t *ProtectedType) Name() string { return t.TypeName }

// Base implements Type.
func (t *ProtectedType) Base() Type { return t }

// SubtypeOf implements Type.
func (t *ProtectedType) SubtypeOf(other Type) bool {
	return BaseType(other) == Type(t)
}

// String implements Type.
func (t *ProtectedType) String() string { return t.TypeName }

// HasSubprogram checks whether the given name is declared among this
// protected type's subprogram declarations.
func (t *ProtectedType) HasSubprogram(name string) bool {
	for _, s := range t.Subprograms {
		if s == name {
			return true
		}
	}
	//
	return false
}

// IncompleteType stands in for a type before its full declaration has been
// seen, e.g. "type node;" ahead of a later "type node is record ... end
// record;".  Neither the parser nor the close-phase checks fill in
// Completion; while it is nil, selection and most compatibility checks see
// only the incomplete type itself.
type IncompleteType struct {
	TypeName   string
	Completion Type
}

// Name implements Type.
func (t *IncompleteType) Name() string { return t.TypeName }

// Base implements Type.
func (t *IncompleteType) Base() Type {
	if t.Completion != nil {
		return t.Completion
	}
	//
	return t
}

// SubtypeOf implements Type.
func (t *IncompleteType) SubtypeOf(other Type) bool {
	if t.Completion != nil {
		return t.Completion.SubtypeOf(other)
	}
	//
	return false
}

// String implements Type.
func (t *IncompleteType) String() string {
	if t.Completion != nil {
		return t.Completion.String()
	}
	//
	return fmt.Sprintf("incomplete type %s", t.TypeName)
}

// LeastUpperBound computes the most specific type compatible with every
// given type, or nil if no common type exists.  Used when typing aggregates
// and conditional expressions whose branches may differ in subtype but share
// a base type.
func LeastUpperBound(types ...Type) Type {
	if len(types) == 0 {
		return nil
	}
	//
	result := types[0]
	//
	for _, t := range types[1:] {
		if t == nil || result == nil {
			return nil
		} else if result.SubtypeOf(t) {
			result = t
		} else if !t.SubtypeOf(result) {
			return nil
		}
	}
	//
	return result
}
