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

import "github.com/vhdl-lang/vhdl-lang/pkg/util/source"

// Node is implemented by anything with a source position, so diagnostics can
// be anchored and so the reference writer can record occurrence positions.
type Node interface {
	// Span returns the source span this node occupies.
	Span() source.Span
	// File returns the source file this node occupies.
	File() *source.File
}

// Position is the common embeddable implementation of Node.
type Position struct {
	Src  *source.File
	Spn  source.Span
}

// Span implements Node.
func (p Position) Span() source.Span { return p.Spn }

// File implements Node.
func (p Position) File() *source.File { return p.Src }

// NewPosition constructs a Position from a file and span.
func NewPosition(src *source.File, span source.Span) Position {
	return Position{src, span}
}
