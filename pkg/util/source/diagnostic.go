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
package source

import "fmt"

// Related is a secondary span attached to a Diagnostic, such as the location
// of a previous declaration in a "duplicate declaration" error, or a
// candidate overload in an ambiguous-call error.
type Related struct {
	srcfile *File
	span    Span
	msg     string
}

// NewRelated constructs a related note anchored at the given span within the
// given source file.
func NewRelated(srcfile *File, span Span, msg string) Related {
	return Related{srcfile, span, msg}
}

// SourceFile returns the file this note refers to.
func (r *Related) SourceFile() *File {
	return r.srcfile
}

// Span returns the span this note refers to.
func (r *Related) Span() Span {
	return r.span
}

// Message returns the text of this note.
func (r *Related) Message() string {
	return r.msg
}

// FirstEnclosingLine returns the first line enclosing this note's span.
func (r *Related) FirstEnclosingLine() Line {
	return r.srcfile.FindFirstEnclosingLine(r.span)
}

// Diagnostic extends SyntaxError with zero or more related notes, such as
// "previously defined here" or "might be X".  A plain SyntaxError is always a
// valid Diagnostic with no related notes.
type Diagnostic struct {
	SyntaxError
	related []Related
}

// NewDiagnostic constructs a diagnostic from a primary syntax error with no
// related notes.
func NewDiagnostic(err SyntaxError) *Diagnostic {
	return &Diagnostic{err, nil}
}

// WithRelated attaches a related note to this diagnostic and returns the
// receiver, so notes can be chained at the construction site.
func (d *Diagnostic) WithRelated(note Related) *Diagnostic {
	d.related = append(d.related, note)
	return d
}

// Related returns the related notes attached to this diagnostic, in the
// order they were added.
func (d *Diagnostic) Related() []Related {
	return d.related
}

// Error implements the error interface, rendering the primary message
// followed by any related notes on subsequent lines.
func (d *Diagnostic) Error() string {
	msg := d.SyntaxError.Error()
	//
	for _, r := range d.related {
		msg += fmt.Sprintf("\n\t%s: %s", r.srcfile.Filename(), r.msg)
	}
	//
	return msg
}
