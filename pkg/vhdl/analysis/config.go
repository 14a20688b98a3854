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

// Package analysis drives whole-design semantic analysis: given a set of
// source files, it parses every design unit, resolves the names in its
// assignments and runs its completion checks (the typecheck package is not
// invoked), and produces a RootIndex supporting the external interfaces (go-to-definition,
// find-all-references) plus any diagnostics raised along the way.
package analysis

// Config mirrors the options that drive a single analysis run.  Its field
// names follow the same pattern as the stack-compiler configuration this
// design is descended from, carrying Debug/Legacy-style cobra-driven
// knobs into an HDL-analysis-shaped equivalent.
type Config struct {
	// IncludeStandardPackage names whether the implicit "standard" package
	// contents are made potentially visible in every design unit.  The
	// analysis does not read it: the parser makes the standard region
	// visible in every unit regardless.
	IncludeStandardPackage bool
	// LibraryPaths lists additional library search directories.  The
	// analysis does not read it; no library is loaded from disk.
	LibraryPaths []string
	// Defensive is set by the check command's --defensive flag.  The
	// analysis does not read it: ambiguous overloads are reported the same
	// way whether or not it is set.
	Defensive bool
	// MaxResolutionIterations bounds the iterative fixed-point resolver,
	// guarding against a dependency cycle masquerading as slow progress.
	MaxResolutionIterations uint
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		IncludeStandardPackage:  true,
		Defensive:               false,
		MaxResolutionIterations: 1000,
	}
}
