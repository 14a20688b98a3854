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

// Package parser turns VHDL source text into the declarative structures
// (region.Region, ast.Declaration) and expressions (ast.Expression) that the
// resolver and type checker operate over.  It covers the declarative part of
// entities, architectures, packages and package bodies, plus concurrent
// signal assignments - enough surface to drive whole-design name resolution
// end to end, not the whole of the VHDL grammar.
package parser

import (
	"strings"
	"unicode"

	"github.com/vhdl-lang/vhdl-lang/pkg/util"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
)

// Token kinds produced by the lexer.
const (
	tEOF uint = iota
	tSpace
	tComment
	tIdent
	tNumber
	tString
	tChar
	tPunct
)

var tokenScanner = source.Or[rune](
	source.Eof[rune](tEOF),
	identOrKeyword{},
	numberScanner{},
	stringScanner{},
	charScanner{},
	lineComment{},
	source.Many(tSpace, ' ', '\t', '\r', '\n'),
	punctScanner{},
	anyScanner{},
)

// anyScanner consumes a single otherwise-unrecognised character as a
// punctuation token, so an unexpected character (e.g. '[' in a subprogram
// signature) never stalls the lexer.
type anyScanner struct{}

func (anyScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 {
		return util.None[source.Token]()
	}
	//
	return util.Some(source.Token{Kind: tPunct, Span: source.NewSpan(0, 1)})
}

// identOrKeyword scans identifiers, which VHDL treats case-insensitively and
// which may contain underscores after the first letter.
type identOrKeyword struct{}

func (identOrKeyword) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || !isIdentStart(items[0]) {
		return util.None[source.Token]()
	}
	//
	i := 1
	for i < len(items) && isIdentCont(items[i]) {
		i++
	}
	//
	return util.Some(source.Token{Kind: tIdent, Span: source.NewSpan(0, i)})
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) }
func isIdentCont(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

type numberScanner struct{}

func (numberScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || !unicode.IsDigit(items[0]) {
		return util.None[source.Token]()
	}
	//
	i := 1
	for i < len(items) && (unicode.IsDigit(items[i]) || items[i] == '_' || items[i] == '.') {
		i++
	}
	//
	return util.Some(source.Token{Kind: tNumber, Span: source.NewSpan(0, i)})
}

type stringScanner struct{}

func (stringScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || items[0] != '"' {
		return util.None[source.Token]()
	}
	//
	for i := 1; i < len(items); i++ {
		if items[i] == '"' {
			return util.Some(source.Token{Kind: tString, Span: source.NewSpan(0, i+1)})
		}
	}
	//
	return util.Some(source.Token{Kind: tString, Span: source.NewSpan(0, len(items))})
}

type charScanner struct{}

func (charScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) < 3 || items[0] != '\'' || items[2] != '\'' {
		return util.None[source.Token]()
	}
	//
	return util.Some(source.Token{Kind: tChar, Span: source.NewSpan(0, 3)})
}

type lineComment struct{}

func (lineComment) Scan(items []rune) util.Option[source.Token] {
	if len(items) < 2 || items[0] != '-' || items[1] != '-' {
		return util.None[source.Token]()
	}
	//
	i := 2
	for i < len(items) && items[i] != '\n' {
		i++
	}
	//
	return util.Some(source.Token{Kind: tComment, Span: source.NewSpan(0, i)})
}

const punctRunes = "():;,.<>=+-*/&'[]"

type punctScanner struct{}

func (punctScanner) Scan(items []rune) util.Option[source.Token] {
	if len(items) == 0 || !strings.ContainsRune(punctRunes, items[0]) {
		return util.None[source.Token]()
	}
	// Multi-character operators: "<=", ":=", "=>", "/=", "**".
	if len(items) >= 2 {
		two := string(items[0:2])
		switch two {
		case "<=", ":=", "=>", "/=", "**":
			return util.Some(source.Token{Kind: tPunct, Span: source.NewSpan(0, 2)})
		}
	}
	//
	return util.Some(source.Token{Kind: tPunct, Span: source.NewSpan(0, 1)})
}

// tokenize returns every non-trivial token (whitespace and comments
// dropped) in a file, ready for the parser to consume.
func tokenize(f *source.File) []source.Token {
	lex := source.NewLexer[rune](f.Contents(), tokenScanner)
	//
	var out []source.Token
	for _, tok := range lex.Collect() {
		if tok.Kind == tSpace || tok.Kind == tComment || tok.Kind == tEOF {
			continue
		}
		//
		out = append(out, tok)
	}
	//
	return out
}

func text(f *source.File, tok source.Token) string {
	runes := f.Contents()[tok.Span.Start():tok.Span.End()]
	return string(runes)
}

func lower(s string) string { return strings.ToLower(s) }
