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
package cmd

import (
	"fmt"
	"strings"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/termio"
)

// reportDiagnostics prints every diagnostic to stdout, quoting the source
// line it refers to and colouring the message by severity when stdout is a
// terminal capable of it.
func reportDiagnostics(diags []source.Diagnostic) {
	caps := termio.Detect()
	//
	for _, d := range diags {
		printOne(caps, d.SourceFile().Filename(), d.FirstEnclosingLine(), d.Span(), d.Message(), termio.TERM_RED)
		//
		for _, note := range d.Related() {
			printOne(caps, note.SourceFile().Filename(), note.FirstEnclosingLine(), note.Span(), note.Message(), termio.TERM_CYAN)
		}
	}
}

func printOne(caps termio.Capabilities, filename string, line source.Line, span source.Span, msg string, colour uint) {
	col := span.Start() - line.Start() + 1
	header := fmt.Sprintf("%s:%d:%d: %s", filename, line.Number(), col, msg)
	fmt.Println(termio.Paint(caps.Colour, termio.NewAnsiEscape().FgColour(colour), header))
	fmt.Println("    " + caps.Clip(strings.TrimRight(line.String(), "\n")))
}
