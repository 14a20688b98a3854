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

import (
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
)

// standardFile is the synthetic source backing every predefined operator
// declaration: these declarations have no occurrence in the analysed
// sources, but Declaration.Node still needs a Position to satisfy ast.Node.
var standardFile = source.NewSourceFile("<standard>", nil)

var standardPos = ast.NewPosition(standardFile, source.NewSpan(0, 0))

var standardRegion *region.Region

func init() {
	standardRegion = region.New(region.PackageDeclaration)
	standardRegion.AddImplicitDeclarations(predefinedOperators())
}

// StandardRegion returns the region holding every predefined operator this
// analysis carries implicitly (package STANDARD's operators, plus the
// relational and logical operators std_logic_1164 redeclares for
// std_ulogic).  Callers make it potentially visible in a unit's own region
// so "+", "=", "and" and friends resolve without an explicit declaration.
func StandardRegion() *region.Region {
	return standardRegion
}

func binaryOp(op string, operand, result ast.Type) *ast.Declaration {
	base := ast.BaseType(operand)
	//
	return &ast.Declaration{
		Designator: ast.NewOperatorSymbol(op),
		Kind:       ast.Overloaded,
		Node:       standardPos,
		Signature: &ast.Signature{
			Parameters: []ast.Parameter{{BaseType: base}, {BaseType: base}},
			Return:     result,
		},
		Type: result,
	}
}

func unaryOp(op string, operand, result ast.Type) *ast.Declaration {
	return &ast.Declaration{
		Designator: ast.NewOperatorSymbol(op),
		Kind:       ast.Overloaded,
		Node:       standardPos,
		Signature: &ast.Signature{
			Parameters: []ast.Parameter{{BaseType: ast.BaseType(operand)}},
			Return:     result,
		},
		Type: result,
	}
}

// predefinedOperators builds the "+", "-", "=", "and" and similar operator
// declarations that package STANDARD and std_logic_1164 introduce
// implicitly alongside every scalar and array type they declare.  Only the
// base types these analyses actually carry (see builtin.go) get operators;
// nothing registers predefined operators for a user-declared scalar or
// array type.
func predefinedOperators() []*ast.Declaration {
	boolean := LookupBuiltinType("boolean")
	integer := LookupBuiltinType("integer")
	real := LookupBuiltinType("real")
	bit := LookupBuiltinType("bit")
	stdLogic := LookupBuiltinType("std_logic")
	bitVector := LookupBuiltinType("bit_vector")
	stringType := LookupBuiltinType("string")
	stdLogicVector := LookupBuiltinType("std_logic_vector")
	stdULogicVector := LookupBuiltinType("std_ulogic_vector")
	character := LookupBuiltinType("character")
	//
	var decls []*ast.Declaration
	//
	numeric := []ast.Type{integer, real}
	for _, t := range numeric {
		decls = append(decls,
			binaryOp("+", t, t), binaryOp("-", t, t), binaryOp("*", t, t), binaryOp("/", t, t),
			unaryOp("+", t, t), unaryOp("-", t, t), unaryOp("abs", t, t),
			binaryOp("=", t, boolean), binaryOp("/=", t, boolean),
			binaryOp("<", t, boolean), binaryOp(">", t, boolean),
			binaryOp("<=", t, boolean), binaryOp(">=", t, boolean),
		)
	}
	//
	logical := []ast.Type{boolean, bit, stdLogic, bitVector, stdLogicVector, stdULogicVector}
	for _, t := range logical {
		decls = append(decls,
			binaryOp("and", t, t), binaryOp("or", t, t), binaryOp("xor", t, t),
			binaryOp("nand", t, t), binaryOp("nor", t, t), binaryOp("xnor", t, t),
			unaryOp("not", t, t),
		)
	}
	//
	comparable := []ast.Type{boolean, bit, stdLogic, character, bitVector, stringType, stdLogicVector, stdULogicVector}
	for _, t := range comparable {
		decls = append(decls, binaryOp("=", t, boolean), binaryOp("/=", t, boolean))
	}
	//
	concatenable := []ast.Type{bitVector, stringType, stdLogicVector, stdULogicVector}
	for _, t := range concatenable {
		decls = append(decls, binaryOp("&", t, t))
	}
	//
	return decls
}
