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
	log "github.com/sirupsen/logrus"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/resolver"
)

// DesignUnit is one entity, architecture, package, package body,
// configuration or context clause participating in whole-design analysis.
// Parsing constructs a DesignUnit per compilation unit; Finalise is supplied
// by the caller (typically a small closure over the resolver and the unit's
// own AST) and attempts to resolve every name occurrence and check every
// expression the unit contains.
type DesignUnit struct {
	// UnitName identifies this unit, e.g. "work.counter(rtl)".
	UnitName string
	// Region is this unit's own declarative region, used for the
	// close-phase completion checks once finalisation succeeds.
	Region *region.Region
	// Closes selects CloseBoth over CloseImmediate when this unit extends
	// a primary unit whose deferred declarations it may complete (a
	// package body, a protected body, an architecture).
	Closes bool
	// Finalise attempts to resolve this unit's declarations and
	// expressions.  See resolver.Unit.TryFinalise for the contract.
	Finalise func() (bool, error)
	// Source is the file this unit was parsed from, used to anchor an
	// "unable to complete resolution" diagnostic if Finalise never
	// succeeds.
	Source *source.File
	// Diagnostics accumulates whatever Finalise itself raised while
	// resolving this unit's expressions (TryFinalise's own return value
	// only signals progress, not the diagnostics found along the way) -
	// a Finalise closure should append to this slice directly.
	Diagnostics []source.Diagnostic
}

// Name implements resolver.Unit.
func (u *DesignUnit) Name() string { return u.UnitName }

// TryFinalise implements resolver.Unit.
func (u *DesignUnit) TryFinalise() (bool, error) { return u.Finalise() }

// AnalyzeDesign runs whole-design analysis: it iterates the supplied units
// to a resolution fixed point, then runs each finalised unit's close-phase
// completion checks, and returns a newly constructed RootIndex together with
// every diagnostic raised along the way.  A unit whose region another unit
// extends is not closed on its own: the extending unit's CloseBoth covers
// it.  The returned index records no occurrences; references are written to
// whatever index the units' Finalise closures were built with.
func AnalyzeDesign(cfg Config, units []*DesignUnit) (*RootIndex, []source.Diagnostic) {
	log.Infof("analyzing %d design unit(s)", len(units))
	//
	idx := NewRootIndex()
	resolverUnits := make([]resolver.Unit, len(units))
	//
	for i, u := range units {
		resolverUnits[i] = u
	}
	//
	gr := resolver.NewGlobalResolution(resolverUnits, cfg.MaxResolutionIterations)
	//
	sourceOf := func(name string) *source.File {
		for _, u := range units {
			if u.UnitName == name {
				return u.Source
			}
		}
		//
		return nil
	}
	//
	diags, err := gr.Run(sourceOf)
	if err != nil {
		log.Errorln(err)
		return idx, diags
	}
	//
	for _, u := range units {
		diags = append(diags, u.Diagnostics...)
		//
		if !gr.Completed(u.Name()) {
			continue
		}
		//
		var closeDiags []source.Diagnostic
		extended := false
		//
		for _, o := range units {
			extended = extended || o.Region.Extends() == u.Region
		}
		//
		if u.Closes {
			closeDiags = u.Region.CloseBoth()
		} else if !extended {
			closeDiags = u.Region.CloseImmediate()
		}
		//
		diags = append(diags, closeDiags...)
	}
	//
	log.Debugf("analysis complete: %d diagnostic(s)", len(diags))
	//
	return idx, diags
}
