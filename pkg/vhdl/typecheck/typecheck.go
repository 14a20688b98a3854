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

// Package typecheck implements expression type checking: propagating an
// expected type down into literals, aggregates and overload resolution, and
// flagging base-type incompatibilities the resolver alone cannot see (it
// resolves names, not the legality of using the resulting value in its
// surrounding context).
package typecheck

import (
	"fmt"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/resolver"
)

// Checker type-checks expressions against an expected type, using a
// Resolver to settle the name occurrences it encounters along the way.
type Checker struct {
	Resolver *resolver.Resolver
}

// New constructs a Checker backed by the given Resolver.
func New(r *resolver.Resolver) *Checker {
	return &Checker{r}
}

// Check type-checks `expr` in `scope` against `expected` (nil if the
// context imposes no expectation), returning the expression's resolved type
// and any diagnostics raised.
func (c *Checker) Check(expr ast.Expression, expected ast.Type, scope *region.Region) (ast.Type, []source.Diagnostic) {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.checkLiteral(e, expected)
	case *ast.Aggregate:
		return c.checkAggregate(e, expected, scope)
	case *ast.QualifiedExpression:
		// A qualified expression's type mark always wins over context,
		// which is exactly the escape hatch used to disambiguate an
		// otherwise-ambiguous overloaded call.
		t, diags := c.Resolver.ResolveExpression(expr, scope)
		return c.finish(expr, t, expected, diags)
	default:
		t, diags := c.Resolver.ResolveExpression(expr, scope)
		return c.finish(expr, t, expected, diags)
	}
}

// finish applies the expected-type compatibility check uniformly once an
// expression's own type has been determined by the resolver.
func (c *Checker) finish(expr ast.Expression, actual ast.Type, expected ast.Type, diags []source.Diagnostic) (ast.Type, []source.Diagnostic) {
	if actual == nil || expected == nil {
		return actual, diags
	}
	//
	if !actual.SubtypeOf(expected) {
		msg := fmt.Sprintf("expected type '%s' but found '%s'", expected.String(), actual.String())
		diags = append(diags, *source.NewDiagnostic(*expr.File().SyntaxError(expr.Span(), msg)))
	}
	//
	return actual, diags
}

// checkLiteral narrows a universal literal's type to `expected` when one is
// given, and otherwise leaves the literal's Type as it is.  A literal with a
// nil Type (the parser sets none) is reported as having no inferred type.
func (c *Checker) checkLiteral(lit *ast.Literal, expected ast.Type) (ast.Type, []source.Diagnostic) {
	if lit.Type == nil {
		return nil, []source.Diagnostic{*source.NewDiagnostic(*lit.File().SyntaxError(lit.Span(), "literal has no inferred type"))}
	}
	//
	scalar, isUniversal := lit.Type.(*ast.ScalarType)
	if expected == nil || !isUniversal || !scalar.Universal {
		return lit.Type, nil
	}
	//
	if !lit.Type.SubtypeOf(expected) {
		msg := fmt.Sprintf("literal is not compatible with expected type '%s'", expected.String())
		return nil, []source.Diagnostic{*source.NewDiagnostic(*lit.File().SyntaxError(lit.Span(), msg))}
	}
	//
	lit.Type = expected
	//
	return expected, nil
}

// checkAggregate types an aggregate against its expected array or record
// type - an aggregate has no type of its own and cannot be checked without
// one, exactly as spec.md requires ("aggregate element typing").
func (c *Checker) checkAggregate(agg *ast.Aggregate, expected ast.Type, scope *region.Region) (ast.Type, []source.Diagnostic) {
	if expected == nil {
		msg := "aggregate requires a known target type"
		return nil, []source.Diagnostic{*source.NewDiagnostic(*agg.File().SyntaxError(agg.Span(), msg))}
	}
	//
	var diags []source.Diagnostic
	base := ast.BaseType(expected)
	//
	switch t := base.(type) {
	case *ast.ArrayType:
		for _, el := range agg.Elements {
			for _, choice := range el.Choices {
				_, cdiags := c.Resolver.ResolveExpression(choice, scope)
				diags = append(diags, cdiags...)
			}
			//
			_, vdiags := c.Check(el.Value, t.Element, scope)
			diags = append(diags, vdiags...)
		}
		//
		if t.Constrained {
			diags = append(diags, c.checkAggregateDimension(agg, t)...)
		}
	case *ast.RecordType:
		for _, el := range agg.Elements {
			for _, choice := range el.Choices {
				if name, ok := choice.(*ast.SimpleNameExpr); ok {
					fieldType, ok := t.Element(name.Name.Designator().Text())
					if !ok {
						msg := fmt.Sprintf("No declaration of '%s' within record type '%s'", name.Name.Designator().Text(), t.Name())
						diags = append(diags, *source.NewDiagnostic(*choice.File().SyntaxError(choice.Span(), msg)))
						continue
					}
					//
					_, vdiags := c.Check(el.Value, fieldType, scope)
					diags = append(diags, vdiags...)
				}
			}
		}
	default:
		msg := fmt.Sprintf("aggregate is not compatible with type '%s'", expected.String())
		diags = append(diags, *source.NewDiagnostic(*agg.File().SyntaxError(agg.Span(), msg)))
	}
	//
	agg.Type = expected
	//
	return expected, diags
}

// checkAggregateDimension flags a positional aggregate whose element count
// does not match a constrained array's declared length - the "dimension
// checks" spec.md names as part of expression type checking.
func (c *Checker) checkAggregateDimension(agg *ast.Aggregate, t *ast.ArrayType) []source.Diagnostic {
	positional := 0
	hasOthers := false
	//
	for _, el := range agg.Elements {
		if len(el.Choices) == 0 {
			positional++
		}
		//
		for _, choice := range el.Choices {
			if attr, ok := choice.(*ast.AttributeName); ok {
				_ = attr
			}
			if name, ok := choice.(*ast.SimpleNameExpr); ok && name.Name.Designator().Text() == "others" {
				hasOthers = true
			}
		}
	}
	//
	expectedLen := t.High - t.Low + 1
	//
	if !hasOthers && positional != expectedLen {
		msg := fmt.Sprintf("aggregate has %d element(s) but target type expects %d", positional, expectedLen)
		return []source.Diagnostic{*source.NewDiagnostic(*agg.File().SyntaxError(agg.Span(), msg))}
	}
	//
	return nil
}
