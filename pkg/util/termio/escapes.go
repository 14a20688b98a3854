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

// Package termio renders diagnostics to an interactive terminal: colouring a
// message by severity and clipping the offending line to the terminal's own
// width, falling back to plain text when stdout is not a terminal at all.
package termio

import "fmt"

// TERM_RED is used for an error diagnostic's primary message.
const TERM_RED = uint(1)

// TERM_YELLOW is used for a warning diagnostic's primary message.
const TERM_YELLOW = uint(3)

// TERM_CYAN is used for a related note's location.
const TERM_CYAN = uint(6)

// AnsiEscape builds up a single ANSI SGR escape sequence one attribute at a
// time, so a caller can compose e.g. bold plus a foreground colour before
// ever emitting a byte.
type AnsiEscape struct {
	escape string
	count  uint
}

// NewAnsiEscape constructs an empty escape with no attributes set yet.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033", 0}
}

// ResetAnsiEscape constructs the "clear all attributes" escape.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[0", 1}
}

// BoldAnsiEscape constructs a bold-text escape.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{"\033[1", 1}
}

// FgColour sets the foreground colour (one of the TERM_ constants).
func (p AnsiEscape) FgColour(col uint) AnsiEscape {
	col += 30
	//
	var escape string
	if p.count > 0 {
		escape = fmt.Sprintf("%s;%d", p.escape, col)
	} else {
		escape = fmt.Sprintf("%s[%d", p.escape, col)
	}
	//
	return AnsiEscape{escape, p.count + 1}
}

// Build constructs the final escape sequence ready for writing to a
// terminal.
func (p AnsiEscape) Build() string {
	return fmt.Sprintf("%sm", p.escape)
}

// Paint wraps `text` in the given escape, followed by a reset, or returns
// `text` unmodified when `enabled` is false (e.g. output is not a
// terminal).
func Paint(enabled bool, escape AnsiEscape, text string) string {
	if !enabled {
		return text
	}
	//
	return escape.Build() + text + ResetAnsiEscape().Build()
}
