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
package termio

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the output stream is not a terminal (e.g.
// redirected to a file or a CI log) and so has no meaningful width of its
// own.
const DefaultWidth = 100

// Capabilities reports what the current stdout supports, so a diagnostic
// renderer can decide whether to colour its output and how wide to clip the
// source line a diagnostic quotes.
type Capabilities struct {
	// Colour is true when stdout is an interactive terminal capable of
	// interpreting ANSI escapes.
	Colour bool
	// Width is the terminal's column count, or DefaultWidth when stdout
	// is not a terminal.
	Width uint
}

// Detect inspects os.Stdout to determine the current terminal's
// capabilities.
func Detect() Capabilities {
	fd := int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return Capabilities{Colour: false, Width: DefaultWidth}
	}
	//
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return Capabilities{Colour: true, Width: DefaultWidth}
	}
	//
	return Capabilities{Colour: true, Width: uint(w)}
}

// Clip truncates `line` to fit within the capabilities' width, appending an
// ellipsis when truncated, so a very long source line does not blow out a
// terminal's wrapping.
func (c Capabilities) Clip(line string) string {
	runes := []rune(line)
	if uint(len(runes)) <= c.Width {
		return line
	}
	//
	return string(runes[:c.Width-1]) + "…"
}
