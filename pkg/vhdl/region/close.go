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
package region

import (
	"fmt"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
)

// CloseImmediate runs the completion checks that apply to this region
// alone, ignoring any region it extends.  This is the check performed when a
// declarative part which is never completed elsewhere - a block, a process,
// or a primary unit that no secondary unit extends - reaches its "end".
func (r *Region) CloseImmediate() []source.Diagnostic {
	var diags []source.Diagnostic
	//
	diags = append(diags, r.checkCompletion(ast.IncompleteType, "Incomplete type '%s' is never fully defined")...)
	diags = append(diags, r.checkCompletion(ast.DeferredConstant, "Deferred constant '%s' lacks corresponding full constant declaration in package body")...)
	diags = append(diags, r.checkCompletion(ast.ProtectedType, "Protected type '%s' has no protected body")...)
	//
	return diags
}

// CloseBoth runs the completion checks across both this region and the
// region it Extends, treating the pair as a single namespace for the
// purposes of completion - the case of a package declaration closed together
// with its package body, where a deferred constant declared in the former is
// legitimately completed by a constant in the latter.
func (r *Region) CloseBoth() []source.Diagnostic {
	if r.extends == nil {
		return r.CloseImmediate()
	}
	//
	merged := New(r.kind)
	//
	for k, v := range r.extends.declared {
		merged.declared[k] = append(merged.declared[k], v...)
	}
	//
	for k, v := range r.declared {
		merged.declared[k] = append(merged.declared[k], v...)
	}
	//
	return merged.CloseImmediate()
}

// checkCompletion reports every declaration of kind `which` in this region
// whose designator is not immediately followed (in declaration order) by
// its required completion kind.  Completion is recognised only via the
// *second* recorded entry: a third, unrelated re-declaration of the same
// designator does not retroactively satisfy it.
func (r *Region) checkCompletion(which ast.DeclarationKind, format string) []source.Diagnostic {
	completion, _ := which.CompletesWith()
	var diags []source.Diagnostic
	//
	for name, entries := range r.declared {
		for i, e := range entries {
			if e.Kind != which {
				continue
			}
			//
			if i+1 < len(entries) && entries[i+1].Kind == completion {
				continue
			}
			//
			msg := fmt.Sprintf(format, name)
			err := e.Node.File().SyntaxError(e.Node.Span(), msg)
			diags = append(diags, *source.NewDiagnostic(*err))
		}
	}
	//
	return diags
}
