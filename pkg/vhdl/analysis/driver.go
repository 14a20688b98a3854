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
package analysis

import (
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/parser"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/resolver"
)

// AnalyzeFiles parses every file in turn against one shared library - so a
// use clause in a later file can see a primary unit declared in an earlier
// one - then resolves every concurrent assignment and runs each unit's
// completion checks.  It is the single entry point the CLI "check" command
// and the language server both drive a whole source tree through.
func AnalyzeFiles(cfg Config, files []*source.File) (*RootIndex, []source.Diagnostic) {
	var (
		idx   = NewRootIndex()
		lib   = parser.NewLibrary()
		diags []source.Diagnostic
		units []*DesignUnit
	)
	//
	for _, f := range files {
		res := parser.Parse(f, lib)
		//
		for _, e := range res.Diags {
			diags = append(diags, *source.NewDiagnostic(e))
		}
		//
		for _, u := range res.Units {
			units = append(units, newDesignUnit(u, f, idx))
		}
	}
	//
	_, analyzeDiags := AnalyzeDesign(cfg, units)
	diags = append(diags, analyzeDiags...)
	//
	return idx, diags
}

// newDesignUnit adapts a freshly parsed parser.Unit into the
// resolver-driven DesignUnit contract AnalyzeDesign expects.  Finalisation
// here is a single best-effort pass over the unit's concurrent assignments:
// it always reports itself complete (this design does not yet track a
// dependency blocking one unit's expression resolution on another unit's
// own finalisation), recording whatever the resolver raised along the way
// onto the unit's own Diagnostics rather than through TryFinalise's return.
func newDesignUnit(u *parser.Unit, f *source.File, idx *RootIndex) *DesignUnit {
	du := &DesignUnit{
		UnitName: u.Name,
		Region:   u.Region,
		Closes:   u.Closes,
		Source:   f,
	}
	//
	du.Finalise = func() (bool, error) {
		res := resolver.New(idx)
		//
		for _, a := range u.Assignments {
			_, tdiags := res.ResolveExpression(a.Target, u.Region)
			_, vdiags := res.ResolveExpression(a.Value, u.Region)
			du.Diagnostics = append(du.Diagnostics, tdiags...)
			du.Diagnostics = append(du.Diagnostics, vdiags...)
		}
		//
		return true, nil
	}
	//
	return du
}
