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
package parser

import (
	"github.com/vhdl-lang/vhdl-lang/pkg/util"
	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
)

// Assignment is a parsed concurrent signal assignment "target <= value;",
// kept around so a caller can resolve and type-check both sides once the
// enclosing unit's region is finalised.
type Assignment struct {
	Target ast.Expression
	Value  ast.Expression
}

// Unit is one parsed primary or secondary design unit: an entity,
// architecture, package, or package body.  It carries everything
// pkg/vhdl/analysis.DesignUnit needs to drive resolution and type checking
// once wrapped by the caller.
type Unit struct {
	// Name is the fully-qualified unit name, e.g. "work.counter(rtl)".
	Name string
	// Region is this unit's own declarative region.
	Region *region.Region
	// Closes indicates this unit extends a primary unit (an architecture,
	// a package body) and so must run the two-sided completion check.
	Closes bool
	// Assignments lists every concurrent signal assignment found in this
	// unit's statement part.
	Assignments []Assignment
}

// Result is everything Parse produces from one source file: the design
// units it declares, plus any syntax errors encountered along the way.
// Parsing continues past an error on a best-effort basis, so later units in
// the same file are still returned.
type Result struct {
	Units []*Unit
	Diags []source.SyntaxError
}

// Parse parses a source file into its constituent design units.  Regions
// for secondary units (architectures, package bodies) extend the primary
// unit's region when that primary unit was declared earlier in the same
// batch; the Library registry of already-parsed primary units, threaded
// in by the caller via `lib`, supplies it.
func Parse(f *source.File, lib *Library) *Result {
	p := &parser{file: f, toks: tokenize(f), lib: lib}
	res := &Result{}
	//
	for !p.atEnd() {
		before := p.pos
		unit, err := p.parseUnit(&res.Diags)
		//
		if unit != nil {
			res.Units = append(res.Units, unit)
		}
		//
		if err != nil {
			res.Diags = append(res.Diags, *err)
		}
		//
		if p.pos == before {
			// No progress was made (an unrecognised unit keyword): resync
			// on the next semicolon so one malformed unit cannot loop
			// forever or hide every later unit in the same file.
			p.skipToSemicolon()
		}
	}
	//
	return res
}

// Library records the primary units parsed so far, so a later secondary
// unit (an architecture or a package body) in the same analysis run can
// extend the right region rather than starting from scratch.
type Library struct {
	primaries map[string]*region.Region
	decls     map[string]*ast.Declaration
}

// NewLibrary constructs an empty library registry.
func NewLibrary() *Library {
	return &Library{primaries: make(map[string]*region.Region), decls: make(map[string]*ast.Declaration)}
}

// Register records a primary unit's region under its lower-cased simple
// name, so a secondary unit can find it with Lookup, and builds a single
// Declaration of the given kind carrying that region as its Scope, so a
// selected name naming this unit as a prefix ("pkg.item") can dispatch
// through lookup_selected against it once the unit's own name is made
// visible somewhere (see applyUseClauses).
func (l *Library) Register(name string, r *region.Region, kind ast.DeclarationKind) {
	key := lower(name)
	l.primaries[key] = r
	l.decls[key] = &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: kind, Scope: r}
}

// Lookup finds a previously registered primary unit's region.
func (l *Library) Lookup(name string) (*region.Region, bool) {
	r, ok := l.primaries[lower(name)]
	return r, ok
}

// Declaration returns the single Declaration built for a registered primary
// unit's own name, or ok=false if no unit by that name has been registered
// yet.
func (l *Library) Declaration(name string) (*ast.Declaration, bool) {
	d, ok := l.decls[lower(name)]
	return d, ok
}

type parser struct {
	file *source.File
	toks []source.Token
	pos  int
	lib  *Library
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) peekText() string {
	if p.atEnd() {
		return ""
	}
	//
	return lower(text(p.file, p.toks[p.pos]))
}

func (p *parser) advance() source.Token {
	t := p.toks[p.pos]
	p.pos++
	//
	return t
}

func (p *parser) atKeyword(kw string) bool {
	return !p.atEnd() && p.toks[p.pos].Kind == tIdent && p.peekText() == kw
}

func (p *parser) atPunct(sym string) bool {
	return !p.atEnd() && p.toks[p.pos].Kind == tPunct && text(p.file, p.toks[p.pos]) == sym
}

func (p *parser) expectKeyword(kw string) *source.SyntaxError {
	if !p.atKeyword(kw) {
		return p.errorHere("expected '" + kw + "'")
	}
	//
	p.advance()
	//
	return nil
}

func (p *parser) expectPunct(sym string) *source.SyntaxError {
	if !p.atPunct(sym) {
		return p.errorHere("expected '" + sym + "'")
	}
	//
	p.advance()
	//
	return nil
}

func (p *parser) expectIdent() (string, ast.Position, *source.SyntaxError) {
	if p.atEnd() || p.toks[p.pos].Kind != tIdent {
		return "", ast.Position{}, p.errorHere("expected an identifier")
	}
	//
	tok := p.advance()
	//
	return text(p.file, tok), ast.NewPosition(p.file, tok.Span), nil
}

func (p *parser) errorHere(msg string) *source.SyntaxError {
	var span source.Span
	//
	if p.atEnd() {
		span = source.NewSpan(len(p.file.Contents()), len(p.file.Contents()))
	} else {
		span = p.toks[p.pos].Span
	}
	//
	return p.file.SyntaxError(span, msg)
}

// skipToSemicolon discards tokens until (and including) the next top-level
// ';', so a malformed unit does not prevent later units in the same file
// from being parsed.
func (p *parser) skipToSemicolon() {
	for !p.atEnd() {
		tok := p.advance()
		if tok.Kind == tPunct && text(p.file, tok) == ";" {
			return
		}
	}
}

// parseUnit parses one design unit, preceded by any number of library/use
// clauses: a use clause's targets are applied as visibility on the unit's
// own region once parseEntity/parseArchitecture/parsePackageOrBody builds it.
func (p *parser) parseUnit(diags *[]source.SyntaxError) (*Unit, *source.SyntaxError) {
	uses := p.parseUseClauses()
	//
	switch {
	case p.atKeyword("entity"):
		return p.parseEntity(diags, uses)
	case p.atKeyword("architecture"):
		return p.parseArchitecture(diags, uses)
	case p.atKeyword("package"):
		return p.parsePackageOrBody(diags, uses)
	case p.atEnd():
		return nil, nil
	default:
		return nil, p.errorHere("expected a design unit (entity, architecture or package)")
	}
}

func (p *parser) skipClause() *source.SyntaxError {
	for !p.atEnd() && !p.atPunct(";") {
		p.advance()
	}
	//
	if p.atPunct(";") {
		p.advance()
	}
	//
	return nil
}

// useClause is one target of a "use LIB.PKG.SUFFIX;" context clause: SUFFIX
// is either "all" (the whole package) or a single item's name.
type useClause struct {
	pkgName string
	suffix  string
}

// parseUseClauses consumes leading library and use clauses.  Library
// clauses carry no further meaning here: every primary unit is looked up
// through the shared Library registry regardless of which library name
// introduced it, so only the use clauses' package.item targets are kept.
func (p *parser) parseUseClauses() []useClause {
	var uses []useClause
	//
	for p.atKeyword("library") || p.atKeyword("use") {
		if p.atKeyword("library") {
			p.skipClause()
			continue
		}
		//
		p.advance() // 'use'
		//
		for {
			parts := p.parseDottedName()
			if len(parts) >= 2 {
				uses = append(uses, useClause{pkgName: parts[len(parts)-2], suffix: parts[len(parts)-1]})
			}
			//
			if p.atPunct(",") {
				p.advance()
				continue
			}
			//
			break
		}
		//
		if p.atPunct(";") {
			p.advance()
		}
	}
	//
	return uses
}

// parseDottedName collects a "."-separated chain of identifiers and/or the
// "all" keyword, e.g. "work.pkg.all" -> ["work", "pkg", "all"].
func (p *parser) parseDottedName() []string {
	var parts []string
	//
	for {
		if p.atKeyword("all") {
			parts = append(parts, "all")
			p.advance()
			break
		}
		//
		name, _, err := p.expectIdent()
		if err != nil {
			break
		}
		//
		parts = append(parts, lower(name))
		//
		if p.atPunct(".") {
			p.advance()
			continue
		}
		//
		break
	}
	//
	return parts
}

// applyUseClauses brings each use clause's target into r's use-visible
// plane: the whole package for "pkg.all", or a single looked-up item.  A
// package the Library registry has not seen yet (e.g. one declared in a
// file analysed later in the same batch) is silently skipped, same as an
// unresolved type mark degrading to an opaque type.
func applyUseClauses(r *region.Region, lib *Library, uses []useClause) {
	for _, u := range uses {
		pkg, ok := lib.Lookup(u.pkgName)
		if !ok {
			continue
		}
		//
		if pkgDecl, ok := lib.Declaration(u.pkgName); ok {
			r.MakePotentiallyVisible(pkgDecl)
		}
		//
		if u.suffix == "all" {
			r.MakeAllPotentiallyVisible(pkg)
			continue
		}
		//
		if decl, err := pkg.LookupWithin(ast.NewIdentifier(u.suffix), region.AnyArity()); err == nil {
			r.MakePotentiallyVisible(decl)
		}
	}
}

// parseEntity parses "entity NAME is [generic(...);] [port(...);] end [entity] [NAME];".
func (p *parser) parseEntity(diags *[]source.SyntaxError, uses []useClause) (*Unit, *source.SyntaxError) {
	if err := p.expectKeyword("entity"); err != nil {
		return nil, err
	}
	//
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		return nil, err
	}
	//
	r := region.New(region.EntityDeclaration)
	r.MakeAllPotentiallyVisible(StandardRegion())
	applyUseClauses(r, p.lib, uses)
	//
	if p.atKeyword("generic") {
		p.advance()
		p.parseInterfaceList(r, diags)
		if err := p.expectPunct(";"); err != nil {
			*diags = append(*diags, *err)
		}
	}
	//
	if p.atKeyword("port") {
		p.advance()
		p.parseInterfaceList(r, diags)
		if err := p.expectPunct(";"); err != nil {
			*diags = append(*diags, *err)
		}
	}
	//
	p.parseDeclarativePart(r, diags)
	//
	if p.atKeyword("begin") {
		p.advance()
		p.skipStatementPart()
	}
	//
	if err := p.expectKeyword("end"); err != nil {
		return &Unit{Name: name, Region: r}, err
	}
	//
	p.skipOptionalTrailer("entity", name)
	//
	p.lib.Register(name, r, ast.Entity)
	//
	return &Unit{Name: name, Region: r}, nil
}

// parseInterfaceList parses a parenthesised generic or port clause: a
// semicolon-separated list of "ident{,ident} : [mode] type [:= default]".
func (p *parser) parseInterfaceList(r *region.Region, diags *[]source.SyntaxError) {
	if err := p.expectPunct("("); err != nil {
		*diags = append(*diags, *err)
		return
	}
	//
	for !p.atPunct(")") && !p.atEnd() {
		names := p.parseIdentList()
		//
		if err := p.expectPunct(":"); err != nil {
			*diags = append(*diags, *err)
		}
		// optional mode keyword
		for p.atKeyword("in") || p.atKeyword("out") || p.atKeyword("inout") || p.atKeyword("buffer") {
			p.advance()
		}
		//
		typ := p.parseTypeMark(r)
		//
		if p.atPunct(":=") {
			p.advance()
			p.skipExpressionUntil(",", ")")
		}
		//
		for _, n := range names {
			d := &ast.Declaration{Designator: ast.NewIdentifier(n.name), Kind: ast.Other, Node: n.pos, Type: typ}
			if diag := r.AddDecl(d); diag != nil {
				*diags = append(*diags, diag.SyntaxError)
			}
		}
		//
		if p.atPunct(";") {
			p.advance()
		} else {
			break
		}
	}
	//
	if err := p.expectPunct(")"); err != nil {
		*diags = append(*diags, *err)
	}
}

type identPos struct {
	name string
	pos  ast.Position
}

func (p *parser) parseIdentList() []identPos {
	var names []identPos
	//
	for {
		name, pos, err := p.expectIdent()
		if err != nil {
			break
		}
		//
		names = append(names, identPos{name, pos})
		//
		if p.atPunct(",") {
			p.advance()
			continue
		}
		//
		break
	}
	//
	return names
}

// parseTypeMark resolves a type mark against locally declared types and the
// builtin standard types; an unrecognised type mark degrades to a fresh
// opaque ScalarType carrying the written name, so parsing never blocks on an
// unresolved library type.
func (p *parser) parseTypeMark(r *region.Region) ast.Type {
	name, _, err := p.expectIdent()
	if err != nil {
		return nil
	}
	// array subscript / range constraint: "std_logic_vector(7 downto 0)"
	if p.atPunct("(") {
		p.advance()
		depth := 1
		for depth > 0 && !p.atEnd() {
			if p.atPunct("(") {
				depth++
			} else if p.atPunct(")") {
				depth--
			}
			p.advance()
		}
	}
	//
	if t := LookupBuiltinType(name); t != nil {
		return t
	}
	//
	if decl, ok := localType(r, name); ok {
		return decl
	}
	//
	return &ast.ScalarType{TypeName: name}
}

func localType(r *region.Region, name string) (ast.Type, bool) {
	decl, err := r.Lookup(ast.NewIdentifier(name), region.NoArity())
	if err != nil || decl == nil {
		return nil, false
	}
	//
	return decl.Type, decl.Type != nil
}

func (p *parser) skipExpressionUntil(stops ...string) {
	depth := 0
	//
	for !p.atEnd() {
		if depth == 0 {
			for _, s := range stops {
				if p.atPunct(s) {
					return
				}
			}
		}
		//
		if p.atPunct("(") {
			depth++
		} else if p.atPunct(")") {
			if depth == 0 {
				return
			}
			//
			depth--
		}
		//
		p.advance()
	}
}

func (p *parser) skipOptionalTrailer(kw string, name string) {
	if p.atKeyword(kw) {
		p.advance()
	}
	//
	if p.peekText() == lower(name) {
		p.advance()
	}
	//
	if p.atPunct(";") {
		p.advance()
	}
}

// parseArchitecture parses "architecture NAME of ENTITY is ... begin ... end;".
func (p *parser) parseArchitecture(diags *[]source.SyntaxError, uses []useClause) (*Unit, *source.SyntaxError) {
	if err := p.expectKeyword("architecture"); err != nil {
		return nil, err
	}
	//
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectKeyword("of"); err != nil {
		return nil, err
	}
	//
	entityName, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		return nil, err
	}
	//
	var primary *region.Region
	if found, ok := p.lib.Lookup(entityName); ok {
		primary = found
	} else {
		primary = region.New(region.EntityDeclaration)
		primary.MakeAllPotentiallyVisible(StandardRegion())
	}
	//
	r := region.Extend(primary, nil, region.Architecture)
	applyUseClauses(r, p.lib, uses)
	//
	p.parseDeclarativePart(r, diags)
	//
	var assigns []Assignment
	//
	if p.atKeyword("begin") {
		p.advance()
		assigns = p.parseConcurrentStatements(r, diags)
	}
	//
	unitName := entityName + "(" + name + ")"
	//
	if err := p.expectKeyword("end"); err != nil {
		return &Unit{Name: unitName, Region: r, Closes: true, Assignments: assigns}, err
	}
	//
	p.skipOptionalTrailer("architecture", name)
	//
	return &Unit{Name: unitName, Region: r, Closes: true, Assignments: assigns}, nil
}

// parsePackageOrBody parses either "package NAME is ... end;" or
// "package body NAME is ... end;".
func (p *parser) parsePackageOrBody(diags *[]source.SyntaxError, uses []useClause) (*Unit, *source.SyntaxError) {
	if err := p.expectKeyword("package"); err != nil {
		return nil, err
	}
	//
	isBody := p.atKeyword("body")
	if isBody {
		p.advance()
	}
	//
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		return nil, err
	}
	//
	var r *region.Region
	//
	if isBody {
		primary, ok := p.lib.Lookup(name)
		if !ok {
			primary = region.New(region.PackageDeclaration)
			primary.MakeAllPotentiallyVisible(StandardRegion())
		}
		//
		r = region.Extend(primary, nil, region.PackageBody)
	} else {
		r = region.New(region.PackageDeclaration)
		r.MakeAllPotentiallyVisible(StandardRegion())
	}
	//
	applyUseClauses(r, p.lib, uses)
	//
	p.parseDeclarativePart(r, diags)
	//
	unitName := name
	if isBody {
		unitName = name + "(body)"
	}
	//
	if err := p.expectKeyword("end"); err != nil {
		return &Unit{Name: unitName, Region: r, Closes: isBody}, err
	}
	//
	if isBody && p.atKeyword("package") {
		p.advance()
		p.skipOptionalTrailer("body", name)
	} else {
		p.skipOptionalTrailer("package", name)
	}
	//
	if !isBody {
		p.lib.Register(name, r, ast.Package)
	}
	//
	return &Unit{Name: unitName, Region: r, Closes: isBody}, nil
}

// parseDeclarativePart parses zero or more declarations until a keyword
// that can only begin a statement part or an "end" is encountered.
func (p *parser) parseDeclarativePart(r *region.Region, diags *[]source.SyntaxError) {
	for {
		switch {
		case p.atKeyword("signal"), p.atKeyword("variable"):
			p.parseObjectDeclaration(r, diags, ast.Other)
		case p.atKeyword("constant"):
			p.parseConstantDeclaration(r, diags)
		case p.atKeyword("type"):
			p.parseTypeDeclaration(r, diags)
		case p.atKeyword("subtype"):
			p.parseSubtypeDeclaration(r, diags)
		case p.atKeyword("alias"):
			p.parseAliasDeclaration(r, diags)
		case p.atKeyword("function"), p.atKeyword("procedure"):
			p.parseSubprogramSpec(r, diags)
		case p.atKeyword("library"):
			_ = p.skipClause()
		case p.atKeyword("use"):
			applyUseClauses(r, p.lib, p.parseUseClauses())
		default:
			return
		}
	}
}

func (p *parser) parseObjectDeclaration(r *region.Region, diags *[]source.SyntaxError, kind ast.DeclarationKind) {
	p.advance() // 'signal' or 'variable'
	names := p.parseIdentList()
	//
	if err := p.expectPunct(":"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	typ := p.parseTypeMark(r)
	//
	if p.atPunct(":=") {
		p.advance()
		p.skipExpressionUntil(";")
	}
	//
	if err := p.expectPunct(";"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	for _, n := range names {
		d := &ast.Declaration{Designator: ast.NewIdentifier(n.name), Kind: kind, Node: n.pos, Type: typ}
		if diag := r.AddDecl(d); diag != nil {
			*diags = append(*diags, diag.SyntaxError)
		}
	}
}

// parseConstantDeclaration handles both a defining constant ("constant C :
// T := V;") and a deferred one in a package declaration ("constant C : T;").
func (p *parser) parseConstantDeclaration(r *region.Region, diags *[]source.SyntaxError) {
	p.advance() // 'constant'
	names := p.parseIdentList()
	//
	if err := p.expectPunct(":"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	typ := p.parseTypeMark(r)
	//
	deferred := true
	//
	if p.atPunct(":=") {
		deferred = false
		p.advance()
		p.skipExpressionUntil(";")
	}
	//
	if err := p.expectPunct(";"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	kind := ast.Constant
	if deferred && r.InPackageDeclaration() {
		kind = ast.DeferredConstant
	}
	//
	for _, n := range names {
		d := &ast.Declaration{Designator: ast.NewIdentifier(n.name), Kind: kind, Node: n.pos, Type: typ}
		if diag := r.AddDecl(d); diag != nil {
			*diags = append(*diags, diag.SyntaxError)
		}
	}
}

// parseTypeDeclaration handles enumeration, record, array and incomplete
// type declarations.
func (p *parser) parseTypeDeclaration(r *region.Region, diags *[]source.SyntaxError) {
	p.advance() // 'type'
	name, pos, err := p.expectIdent()
	if err != nil {
		*diags = append(*diags, *err)
		return
	}
	// Incomplete type declaration: "type NAME;"
	if p.atPunct(";") {
		p.advance()
		d := &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: ast.IncompleteType, Node: pos,
			Type: &ast.IncompleteType{TypeName: name}}
		//
		if diag := r.AddDecl(d); diag != nil {
			*diags = append(*diags, diag.SyntaxError)
		}
		//
		return
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		*diags = append(*diags, *err)
		return
	}
	//
	var typ ast.Type
	kind := ast.TypeDeclaration
	var enumLits []identPos
	//
	switch {
	case p.atPunct("("):
		typ, enumLits = p.parseEnumerationType(name)
	case p.atKeyword("record"):
		typ = p.parseRecordType(r, name)
	case p.atKeyword("array"):
		typ = p.parseArrayType(r, name, pos)
	case p.atKeyword("access"):
		p.advance()
		inner := p.parseTypeMark(r)
		typ = &ast.AccessType{TypeName: name, Designated: inner}
	case p.atKeyword("protected"):
		p.advance()
		isBody := p.atKeyword("body")
		if isBody {
			p.advance()
		}
		//
		subs := p.skipProtectedMembers()
		//
		if err := p.expectKeyword("end"); err != nil {
			*diags = append(*diags, *err)
		}
		//
		p.skipOptionalTrailer("protected", name)
		//
		if isBody {
			kind = ast.ProtectedTypeBody
			typ = &ast.ProtectedType{TypeName: name, Subprograms: subs, HasBody: true}
		} else {
			kind = ast.ProtectedType
			typ = &ast.ProtectedType{TypeName: name, Subprograms: subs}
		}
		//
		d := &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: kind, Node: pos, Type: typ}
		if diag := r.AddDecl(d); diag != nil {
			*diags = append(*diags, diag.SyntaxError)
		}
		//
		return
	default:
		// Unrecognised form of type definition (e.g. a range-constrained
		// scalar type): skip to the terminating semicolon, but still
		// register the name as an opaque scalar so later references do
		// not spuriously fail to resolve.
		p.skipExpressionUntil(";")
		typ = &ast.ScalarType{TypeName: name}
	}
	//
	if err := p.expectPunct(";"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	d := &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: kind, Node: pos, Type: typ}
	if diag := r.AddDecl(d); diag != nil {
		*diags = append(*diags, diag.SyntaxError)
	}
	//
	if len(enumLits) > 0 {
		p.declareEnumLiterals(r, d, typ, enumLits, diags)
	}
}

// declareEnumLiterals registers an enumeration type's literals as overloaded
// (arity-0) declarations, both directly within the declaring region `r` (so
// they are immediately visible where the type itself is declared) and within
// a fresh implicit region attached to the type declaration's Scope field, so
// that making the type potentially visible elsewhere (e.g. via a "use"
// clause) promotes its literals too, per the visibility-promotion rule.
func (p *parser) declareEnumLiterals(r *region.Region, typeDecl *ast.Declaration, typ ast.Type, lits []identPos, diags *[]source.SyntaxError) {
	implicit := region.New(region.Other)
	typeDecl.Scope = implicit
	//
	for _, lit := range lits {
		d := &ast.Declaration{
			Designator: ast.NewIdentifier(lit.name),
			Kind:       ast.Overloaded,
			Node:       lit.pos,
			Signature:  &ast.Signature{Return: typ},
			Type:       typ,
		}
		//
		if diag := r.AddDecl(d); diag != nil {
			*diags = append(*diags, diag.SyntaxError)
		}
		//
		implicit.Add(d)
	}
}

func (p *parser) parseEnumerationType(name string) (*ast.ScalarType, []identPos) {
	p.advance() // '('
	var lits []string
	var positions []identPos
	//
	for !p.atPunct(")") && !p.atEnd() {
		lit, pos, err := p.expectIdent()
		if err != nil {
			p.advance()
			continue
		}
		//
		lits = append(lits, lit)
		positions = append(positions, identPos{lit, pos})
		//
		if p.atPunct(",") {
			p.advance()
		}
	}
	//
	if p.atPunct(")") {
		p.advance()
	}
	//
	return &ast.ScalarType{TypeName: name, Literals: lits}, positions
}

func (p *parser) parseRecordType(r *region.Region, name string) *ast.RecordType {
	p.advance() // 'record'
	var elems []ast.RecordElement
	//
	for !p.atKeyword("end") && !p.atEnd() {
		names := p.parseIdentList()
		//
		if p.atPunct(":") {
			p.advance()
		}
		//
		fieldType := p.parseTypeMark(r)
		//
		if p.atPunct(";") {
			p.advance()
		}
		//
		for _, n := range names {
			elems = append(elems, ast.RecordElement{Name: lower(n.name), Type: fieldType})
		}
	}
	//
	if p.atKeyword("end") {
		p.advance()
	}
	//
	// The terminating ';' is left for parseTypeDeclaration to consume.
	if p.atKeyword("record") {
		p.advance()
	}
	//
	if p.peekText() == lower(name) {
		p.advance()
	}
	//
	return &ast.RecordType{TypeName: name, Elements: elems}
}

func (p *parser) parseArrayType(r *region.Region, name string, pos ast.Position) *ast.ArrayType {
	p.advance() // 'array'
	constrained := false
	low, high := 0, 0
	//
	if p.atPunct("(") {
		p.advance()
		constrained = !p.hasBoxRange()
		//
		depth := 1
		for depth > 0 && !p.atEnd() {
			if p.atPunct("(") {
				depth++
			} else if p.atPunct(")") {
				depth--
			}
			p.advance()
		}
	}
	//
	p.expectKeyword("of")
	//
	elem := p.parseTypeMark(r)
	//
	return &ast.ArrayType{TypeName: name, Element: elem, Constrained: constrained, Low: low, High: high, Dimensions: 1, Decl: pos}
}

// hasBoxRange peeks ahead (without consuming) for a "<>" unconstrained-range
// marker within the immediately following parenthesised index constraint.
func (p *parser) hasBoxRange() bool {
	depth := 1
	for i := p.pos; i < len(p.toks) && depth > 0; i++ {
		tx := text(p.file, p.toks[i])
		//
		switch {
		case tx == "(":
			depth++
		case tx == ")":
			depth--
		case tx == "<" && i+1 < len(p.toks) && text(p.file, p.toks[i+1]) == ">":
			return true
		}
	}
	//
	return false
}

func (p *parser) skipProtectedMembers() []string {
	var subs []string
	//
	for p.atKeyword("procedure") || p.atKeyword("function") {
		p.advance()
		name, _, err := p.expectIdent()
		if err == nil {
			subs = append(subs, lower(name))
		}
		//
		p.skipExpressionUntil(";")
		//
		if p.atPunct(";") {
			p.advance()
		}
	}
	//
	return subs
}

func (p *parser) parseSubtypeDeclaration(r *region.Region, diags *[]source.SyntaxError) {
	p.advance() // 'subtype'
	name, pos, err := p.expectIdent()
	if err != nil {
		*diags = append(*diags, *err)
		return
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	of := p.parseTypeMark(r)
	//
	// optional range constraint, ignored beyond its bounds' parse positions
	if p.atKeyword("range") {
		p.skipExpressionUntil(";")
	}
	//
	if err := p.expectPunct(";"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	typ := &ast.SubtypeType{TypeName: name, Of: of}
	d := &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: ast.TypeDeclaration, Node: pos, Type: typ}
	//
	if diag := r.AddDecl(d); diag != nil {
		*diags = append(*diags, diag.SyntaxError)
	}
}

func (p *parser) parseAliasDeclaration(r *region.Region, diags *[]source.SyntaxError) {
	p.advance() // 'alias'
	name, pos, err := p.expectIdent()
	if err != nil {
		*diags = append(*diags, *err)
		return
	}
	//
	var sig *ast.Signature
	//
	if p.atPunct("[") {
		// signature syntax not tokenised specially; treat as opaque marker
		p.skipExpressionUntil(";")
	}
	//
	if p.atPunct(":") {
		p.advance()
		p.parseTypeMark(r)
	}
	//
	if err := p.expectKeyword("is"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	targetName, _, err := p.expectIdent()
	if err != nil {
		*diags = append(*diags, *err)
	}
	//
	p.skipExpressionUntil(";")
	//
	if err := p.expectPunct(";"); err != nil {
		*diags = append(*diags, *err)
	}
	//
	var target *ast.Declaration
	if found, ferr := r.Lookup(ast.NewIdentifier(targetName), region.AnyArity()); ferr == nil {
		target = found
	}
	//
	d := &ast.Declaration{Designator: ast.NewIdentifier(name), Kind: ast.AliasOf, Node: pos,
		AliasTarget: target, Signature: sig}
	//
	if diag := r.AddDecl(d); diag != nil {
		*diags = append(*diags, diag.SyntaxError)
	}
}

// parseSubprogramSpec parses just the header of a function or procedure
// declaration ("function NAME(params) return TYPE;" or
// "procedure NAME(params);"), registering an Overloaded declaration.  A
// subprogram body (if present in place of the terminating ';') is skipped
// wholesale: statement-level analysis of subprogram bodies is out of scope.
func (p *parser) parseSubprogramSpec(r *region.Region, diags *[]source.SyntaxError) {
	isFunction := p.atKeyword("function")
	p.advance() // 'function' or 'procedure'
	//
	name, pos, err := p.expectIdent()
	if err != nil {
		*diags = append(*diags, *err)
		return
	}
	//
	var params []ast.Parameter
	//
	if p.atPunct("(") {
		p.advance()
		//
		for !p.atPunct(")") && !p.atEnd() {
			names := p.parseIdentList()
			//
			if p.atPunct(":") {
				p.advance()
			}
			//
			for p.atKeyword("in") || p.atKeyword("out") || p.atKeyword("inout") {
				p.advance()
			}
			//
			pt := p.parseTypeMark(r)
			//
			defaulted := false
			if p.atPunct(":=") {
				defaulted = true
				p.advance()
				p.skipExpressionUntil(",", ")")
			}
			//
			for range names {
				params = append(params, ast.Parameter{BaseType: ast.BaseType(pt), DefaultValued: defaulted})
			}
			//
			if p.atPunct(";") {
				p.advance()
			}
		}
		//
		if p.atPunct(")") {
			p.advance()
		}
	}
	//
	var ret ast.Type
	//
	if isFunction {
		if err := p.expectKeyword("return"); err == nil {
			ret = p.parseTypeMark(r)
		}
	}
	// Skip over a subprogram body if present; otherwise consume the
	// terminating ';' of a bare specification.
	if p.atKeyword("is") {
		p.skipSubprogramBody()
	} else if p.atPunct(";") {
		p.advance()
	}
	//
	d := &ast.Declaration{
		Designator: ast.NewIdentifier(name),
		Kind:       ast.Overloaded,
		Node:       pos,
		Signature:  &ast.Signature{Parameters: params, Return: ret},
		Type:       ret,
	}
	//
	if diag := r.AddDecl(d); diag != nil {
		*diags = append(*diags, diag.SyntaxError)
	}
}

// skipSubprogramBody discards a subprogram body's declarative and statement
// parts by counting "begin"/"end" nesting against other block-introducing
// keywords, up to the matching "end [ident] [ident];".
func (p *parser) skipSubprogramBody() {
	depth := 1
	//
	for !p.atEnd() && depth > 0 {
		switch {
		case p.atKeyword("if"), p.atKeyword("loop"), p.atKeyword("case"), p.atKeyword("process"):
			depth++
			p.advance()
		case p.atKeyword("end"):
			depth--
			p.advance()
			// "end if", "end loop" etc. close a nesting level; their
			// keyword does not open another.
			if p.atKeyword("if") || p.atKeyword("loop") || p.atKeyword("case") || p.atKeyword("process") {
				p.advance()
			}
		default:
			p.advance()
		}
	}
	//
	for !p.atEnd() && !p.atPunct(";") {
		p.advance()
	}
	//
	if p.atPunct(";") {
		p.advance()
	}
}

// parseConcurrentStatements parses a flat sequence of concurrent signal
// assignments "target <= value;" until "end" is reached.  Process
// statements are parsed for their declarative part; of their sequential
// statement part only plain "target := value;" assignments are kept (see
// skipSequentialStatements), and they are returned alongside the
// concurrent ones.
func (p *parser) parseConcurrentStatements(r *region.Region, diags *[]source.SyntaxError) []Assignment {
	var assigns []Assignment
	//
	for !p.atKeyword("end") && !p.atEnd() {
		if p.atKeyword("process") {
			assigns = append(assigns, p.parseProcess(r, diags)...)
			continue
		}
		// optional label "NAME : "
		if p.toks[p.pos].Kind == tIdent {
			save := p.pos
			_, _, _ = p.expectIdent()
			if p.atPunct(":") && !p.atPunct("<=") {
				p.advance()
			} else {
				p.pos = save
			}
		}
		//
		target := p.parseExpression(";", "<=")
		//
		if p.atPunct("<=") {
			p.advance()
			value := p.parseExpression(";")
			assigns = append(assigns, Assignment{Target: target, Value: value})
		}
		//
		if p.atPunct(";") {
			p.advance()
		} else {
			break
		}
	}
	//
	return assigns
}

func (p *parser) parseProcess(r *region.Region, diags *[]source.SyntaxError) []Assignment {
	p.advance() // 'process'
	//
	if p.atPunct("(") {
		p.skipExpressionUntil(")")
		if p.atPunct(")") {
			p.advance()
		}
	}
	//
	if p.atKeyword("is") {
		p.advance()
	}
	//
	proc := r.Nested(region.Process)
	p.parseDeclarativePart(proc, diags)
	//
	var assigns []Assignment
	//
	if p.atKeyword("begin") {
		p.advance()
		assigns = p.skipSequentialStatements(proc)
	}
	//
	if p.atKeyword("end") {
		p.advance()
	}
	//
	if p.atKeyword("process") {
		p.advance()
	}
	//
	if p.atPunct(";") {
		p.advance()
	}
	//
	return assigns
}

// skipSequentialStatements recognises plain "target := value;" sequential
// assignments (recorded the same way as a concurrent assignment, so the
// resolver still exercises them) and otherwise discards statements up to
// the process's closing "end".
func (p *parser) skipSequentialStatements(r *region.Region) []Assignment {
	var assigns []Assignment
	depth := 0
	//
	for !p.atEnd() {
		if depth == 0 && p.atKeyword("end") {
			return assigns
		}
		//
		switch {
		case p.atKeyword("if"), p.atKeyword("loop"), p.atKeyword("case"):
			depth++
			p.advance()
		case p.atKeyword("end") && depth > 0:
			depth--
			p.advance()
			//
			if p.atKeyword("if") || p.atKeyword("loop") || p.atKeyword("case") {
				p.advance()
			}
		default:
			if depth == 0 && p.toks[p.pos].Kind == tIdent {
				start := p.pos
				target := p.parseExpression(";", ":=")
				//
				if p.atPunct(":=") {
					p.advance()
					value := p.parseExpression(";")
					assigns = append(assigns, Assignment{Target: target, Value: value})
				} else {
					p.pos = start
					p.advance()
					continue
				}
			} else {
				p.advance()
			}
		}
		//
		if p.atPunct(";") {
			p.advance()
		}
	}
	//
	return assigns
}

func (p *parser) skipStatementPart() {
	for !p.atEnd() && !p.atKeyword("end") {
		p.advance()
	}
}

// parseExpression parses a simple name / selected name / function-call-or-
// index chain and binary-operator expression, stopping before any of the
// given punctuation stop tokens.  Aggregates and qualified expressions are
// not parsed: a token that cannot start a name or literal degrades to a
// Literal spanning that single token.
func (p *parser) parseExpression(stops ...string) ast.Expression {
	left := p.parseUnary(stops...)
	//
	for p.atEnd() == false {
		op, ok := p.peekBinaryOp(stops...)
		if !ok {
			break
		}
		//
		start := p.pos
		p.advance()
		right := p.parseUnary(stops...)
		pos := ast.NewPosition(p.file, source.NewSpan(p.toks[start].Span.Start(), p.prevEnd()))
		left = &ast.BinaryOp{Position: pos, Op: ast.NewOperatorSymbol(op), Left: left, Right: right}
	}
	//
	return left
}

func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	//
	return p.toks[p.pos-1].Span.End()
}

func (p *parser) peekBinaryOp(stops ...string) (string, bool) {
	if p.atEnd() || p.toks[p.pos].Kind != tPunct && p.toks[p.pos].Kind != tIdent {
		return "", false
	}
	//
	tx := p.peekText()
	//
	for _, s := range stops {
		if tx == s {
			return "", false
		}
	}
	//
	switch tx {
	case "+", "-", "*", "/", "=", "/=", "<", ">", "and", "or", "xor", "&":
		return tx, true
	}
	//
	return "", false
}

func (p *parser) parseUnary(stops ...string) ast.Expression {
	if p.atPunct("-") || p.atPunct("+") || p.atKeyword("not") {
		op := p.peekText()
		start := p.advance()
		inner := p.parsePrimary(stops...)
		pos := ast.NewPosition(p.file, source.NewSpan(start.Span.Start(), p.prevEnd()))
		//
		return &ast.UnaryOp{Position: pos, Op: ast.NewOperatorSymbol(op), Operand: inner}
	}
	//
	return p.parsePrimary(stops...)
}

func (p *parser) parsePrimary(stops ...string) ast.Expression {
	if p.atEnd() {
		return &ast.Literal{Position: ast.NewPosition(p.file, source.NewSpan(0, 0)), Text: ""}
	}
	//
	tok := p.toks[p.pos]
	//
	switch tok.Kind {
	case tNumber, tString, tChar:
		p.advance()
		return &ast.Literal{Position: ast.NewPosition(p.file, tok.Span), Text: text(p.file, tok)}
	case tIdent:
		name, pos, err := p.expectIdent()
		if err != nil {
			p.advance()
			return &ast.Literal{Position: pos, Text: name}
		}
		//
		var expr ast.Expression = &ast.SimpleNameExpr{
			Position: pos,
			Name:     ast.NewSimpleName(pos, ast.NewIdentifier(name), util.None[uint]()),
		}
		//
		return p.parseNameSuffix(expr)
	default:
		start := p.advance()
		return &ast.Literal{Position: ast.NewPosition(p.file, start.Span), Text: text(p.file, start)}
	}
}

// parseNameSuffix chains any number of ".suffix" (selected name) and
// "(args)" (call-or-index) suffixes onto a primary name.
func (p *parser) parseNameSuffix(expr ast.Expression) ast.Expression {
	for {
		switch {
		case p.atPunct("."):
			p.advance()
			name, pos, err := p.expectIdent()
			if err != nil {
				return expr
			}
			//
			suffix := ast.NewSimpleName(pos, ast.NewIdentifier(name), util.None[uint]())
			span := source.NewSpan(expr.Span().Start(), pos.Span().End())
			expr = &ast.SelectedName{Position: ast.NewPosition(p.file, span), Prefix: expr, Suffix: suffix}
		case p.atPunct("("):
			p.advance()
			var args []ast.Argument
			//
			for !p.atPunct(")") && !p.atEnd() {
				args = append(args, ast.Argument{Actual: p.parseExpression(",", ")")})
				//
				if p.atPunct(",") {
					p.advance()
				}
			}
			//
			if p.atPunct(")") {
				p.advance()
			}
			//
			span := source.NewSpan(expr.Span().Start(), p.prevEnd())
			expr = &ast.CallOrIndex{Position: ast.NewPosition(p.file, span), Prefix: simpleNameOf(expr), Arguments: args}
		case p.atPunct("'"):
			p.advance()
			attr, pos, err := p.expectIdent()
			if err != nil {
				return expr
			}
			//
			span := source.NewSpan(expr.Span().Start(), pos.Span().End())
			expr = &ast.AttributeName{Position: ast.NewPosition(p.file, span), Prefix: expr, Attribute: lower(attr)}
		default:
			return expr
		}
	}
}

func simpleNameOf(expr ast.Expression) *ast.SimpleName {
	if sn, ok := expr.(*ast.SimpleNameExpr); ok {
		return sn.Name
	}
	//
	return nil
}
