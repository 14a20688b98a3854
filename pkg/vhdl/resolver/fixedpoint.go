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
package resolver

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
)

// Unit is one design unit (an entity, architecture, package, package body,
// configuration or context) participating in cross-unit, dependency-ordered
// finalisation.  Some declarations cannot be finalised on first sight - e.g.
// a signal whose type is a record type declared in a not-yet-analysed
// package - so finalisation proceeds as a fixed-point: repeatedly attempt
// every not-yet-finalised unit, making what progress is possible, until
// either everything finalises or a full pass makes no further progress.
type Unit interface {
	// Name identifies this unit for diagnostics and progress logging.
	Name() string
	// TryFinalise attempts to complete this unit's declarations.  It
	// returns true if finalisation succeeded (the unit is now fully
	// resolved), false if finalisation cannot yet proceed (some
	// dependency is itself unfinalised), and a non-nil error only for an
	// unrecoverable failure within the unit itself.
	TryFinalise() (bool, error)
}

// GlobalResolution drives the iterated fixed-point finalisation of a whole
// design: every unit is retried each iteration until either all units
// finalise, or an iteration completes without finalising anything new, at
// which point every unit still outstanding is reported as unable to
// complete.  A hard cap on iteration count (MaxIterations) guards against a
// pathological dependency cycle masquerading as slow progress.
type GlobalResolution struct {
	units         []Unit
	completed     map[string]bool
	failed        map[string]bool
	MaxIterations uint
}

// NewGlobalResolution constructs a resolution pass over the given units.
func NewGlobalResolution(units []Unit, maxIterations uint) *GlobalResolution {
	if maxIterations == 0 {
		maxIterations = 1000
	}
	//
	return &GlobalResolution{
		units:         units,
		completed:     make(map[string]bool),
		failed:        make(map[string]bool),
		MaxIterations: maxIterations,
	}
}

// Completed reports whether the named unit finalised successfully.
func (g *GlobalResolution) Completed(name string) bool {
	return g.completed[name]
}

// Failed reports whether the named unit hit an unrecoverable internal
// failure (as opposed to merely "not yet" finalised).
func (g *GlobalResolution) Failed(name string) bool {
	return g.failed[name]
}

// Run performs the iterated fixed-point pass, returning diagnostics for
// every unit which could not be completed once no more progress is
// possible.  sourceOf supplies the file to anchor a "unable to complete
// resolution of X" diagnostic against a unit that never finalises; if
// sourceOf is nil or returns nil for a unit, that unit only gets a logged
// warning and no diagnostic.
func (g *GlobalResolution) Run(sourceOf func(name string) *source.File) ([]source.Diagnostic, error) {
	remaining := make([]Unit, len(g.units))
	copy(remaining, g.units)
	//
	for iteration := uint(0); len(remaining) > 0 && iteration < g.MaxIterations; iteration++ {
		log.Debugf("resolution iteration %d: %d unit(s) outstanding", iteration, len(remaining))
		//
		progressed := false
		next := remaining[:0:0]
		//
		for _, u := range remaining {
			ok, err := u.TryFinalise()
			//
			if err != nil {
				g.failed[u.Name()] = true
				return nil, fmt.Errorf("internal failure finalising %s: %w", u.Name(), err)
			}
			//
			if ok {
				g.completed[u.Name()] = true
				progressed = true
				log.Debugf("finalised %s", u.Name())
			} else {
				next = append(next, u)
			}
		}
		//
		remaining = next
		//
		if !progressed {
			break
		}
	}
	//
	if len(remaining) == 0 {
		return nil, nil
	}
	//
	var diags []source.Diagnostic
	//
	for _, u := range remaining {
		msg := fmt.Sprintf("unable to complete resolution of '%s'", u.Name())
		//
		if sourceOf != nil {
			if f := sourceOf(u.Name()); f != nil {
				diags = append(diags, *source.NewDiagnostic(*f.SyntaxError(source.NewSpan(0, 0), msg)))
				continue
			}
		}
		//
		log.Warnln(msg)
	}
	//
	return diags, nil
}
