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
package lsp

import (
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
)

// toProtocolDiagnostics converts the analyser's own diagnostics into their
// LSP wire form, keeping only those anchored in `f` - a single open
// document's diagnostics are published on their own, never mixed with
// another file's.
func toProtocolDiagnostics(f *source.File, diags []source.Diagnostic) []protocol.Diagnostic {
	var result []protocol.Diagnostic
	//
	for i := range diags {
		d := &diags[i]
		if d.SourceFile() != f {
			continue
		}
		//
		pd := protocol.Diagnostic{
			Range:    spanToRange(f, d.Span()),
			Severity: protocol.DiagnosticSeverityError,
			Source:   "vhdl-lang",
			Message:  d.Message(),
		}
		//
		for _, note := range d.Related() {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{
					URI:   protocol.DocumentURI(uri.File(note.SourceFile().Filename())),
					Range: spanToRange(note.SourceFile(), note.Span()),
				},
				Message: note.Message(),
			})
		}
		//
		result = append(result, pd)
	}
	//
	return result
}

func spanToRange(f *source.File, span source.Span) protocol.Range {
	return protocol.Range{
		Start: positionAt(f, span.Start()),
		End:   positionAt(f, span.End()),
	}
}

// positionAt converts a rune offset into `f` into a zero-based LSP
// Line/Character position.
func positionAt(f *source.File, offset int) protocol.Position {
	line := f.FindFirstEnclosingLine(source.NewSpan(offset, offset))
	//
	return protocol.Position{
		Line:      uint32(line.Number() - 1),
		Character: uint32(offset - line.Start()),
	}
}
