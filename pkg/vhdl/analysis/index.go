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
	"sync"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
)

// occurrence records one resolved name occurrence, keyed by its source
// position.
type occurrence struct {
	file *source.File
	span source.Span
	decl *ast.Declaration
}

// RootIndex accumulates every resolved name occurrence across an entire
// design, and answers the two external-interface queries spec.md names:
// go-to-definition ("what does the occurrence at this position refer to")
// and find-all-references ("every occurrence that refers to this
// declaration").  It implements resolver.ReferenceWriter.
type RootIndex struct {
	mu sync.Mutex
	// occurrences in the order SetReference recorded them.
	occurrences []occurrence
	// byDeclaration indexes occurrences by the declaration they resolve
	// to, for FindAllReferences.
	byDeclaration map[*ast.Declaration][]ast.Node
}

// NewRootIndex constructs an empty index.
func NewRootIndex() *RootIndex {
	return &RootIndex{byDeclaration: make(map[*ast.Declaration][]ast.Node)}
}

// SetReference implements resolver.ReferenceWriter.
func (idx *RootIndex) SetReference(use ast.Node, def *ast.Declaration) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	//
	idx.occurrences = append(idx.occurrences, occurrence{use.File(), use.Span(), def})
	idx.byDeclaration[def] = append(idx.byDeclaration[def], use)
}

// SearchReference implements go-to-definition: given a source file and a
// byte offset into it, returns the declaration the smallest enclosing
// occurrence resolves to.  Every resolved occurrence's reference position
// must be found by searching its own end offset - the round-trip invariant
// that backs this method's test coverage.
func (idx *RootIndex) SearchReference(file *source.File, offset int) (*ast.Declaration, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	//
	var best *occurrence
	//
	for i := range idx.occurrences {
		o := &idx.occurrences[i]
		//
		if o.file != file || offset < o.span.Start() || offset > o.span.End() {
			continue
		}
		//
		if best == nil || o.span.Length() < best.span.Length() {
			best = o
		}
	}
	//
	if best == nil {
		return nil, false
	}
	//
	return best.decl, true
}

// FindAllReferences implements find-all-references: every occurrence
// (across the whole design) that resolved to `decl`, including the
// declaration's own defining node.
func (idx *RootIndex) FindAllReferences(decl *ast.Declaration) []ast.Node {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	//
	refs := append([]ast.Node{decl.Node}, idx.byDeclaration[decl]...)
	//
	return refs
}
