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
package parser

import "github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"

// builtinTypes holds the subset of package STANDARD (and, for std_logic,
// package std_logic_1164) that a design commonly references by name without
// an explicit declaration of its own: the scalar and array types every
// analysis needs in scope even before the first "use" clause is processed.
var builtinTypes map[string]ast.Type

func init() {
	bit := &ast.ScalarType{TypeName: "bit", Literals: []string{"0", "1"}}
	boolean := &ast.ScalarType{TypeName: "boolean", Literals: []string{"false", "true"}}
	integer := &ast.ScalarType{TypeName: "integer"}
	natural := &ast.SubtypeType{TypeName: "natural", Of: integer}
	positive := &ast.SubtypeType{TypeName: "positive", Of: integer}
	real := &ast.ScalarType{TypeName: "real"}
	character := &ast.ScalarType{TypeName: "character"}
	stdLogic := &ast.ScalarType{TypeName: "std_logic",
		Literals: []string{"u", "x", "0", "1", "z", "w", "l", "h", "-"}}
	//
	bitVector := &ast.ArrayType{TypeName: "bit_vector", Element: bit, Dimensions: 1}
	stringType := &ast.ArrayType{TypeName: "string", Element: character, Dimensions: 1}
	stdLogicVector := &ast.ArrayType{TypeName: "std_logic_vector", Element: stdLogic, Dimensions: 1}
	stdULogicVector := &ast.ArrayType{TypeName: "std_ulogic_vector", Element: stdLogic, Dimensions: 1}
	//
	builtinTypes = map[string]ast.Type{
		"bit":               bit,
		"boolean":           boolean,
		"integer":           integer,
		"natural":           natural,
		"positive":          positive,
		"real":              real,
		"character":         character,
		"std_logic":         stdLogic,
		"std_ulogic":        stdLogic,
		"bit_vector":        bitVector,
		"string":            stringType,
		"std_logic_vector":  stdLogicVector,
		"std_ulogic_vector": stdULogicVector,
	}
}

// LookupBuiltinType returns the predefined type named by a lower-cased
// identifier, or nil if the name is not one of the builtins this analysis
// carries implicitly.
func LookupBuiltinType(name string) ast.Type {
	return builtinTypes[lower(name)]
}
