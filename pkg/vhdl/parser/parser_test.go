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
	"testing"

	"github.com/vhdl-lang/vhdl-lang/pkg/util/source"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/ast"
	"github.com/vhdl-lang/vhdl-lang/pkg/vhdl/region"
)

const counterSrc = `
entity counter is
  port (clk : in std_logic;
        q   : out std_logic_vector(3 downto 0));
end entity counter;

architecture rtl of counter is
  signal count : std_logic_vector(3 downto 0);
  constant width : integer := 4;
begin
  q <= count;
end architecture rtl;
`

func TestParseEntityAndArchitecture(t *testing.T) {
	f := source.NewSourceFile("counter.vhd", []byte(counterSrc))
	lib := NewLibrary()
	res := Parse(f, lib)
	//
	if len(res.Diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diags)
	}
	//
	if len(res.Units) != 2 {
		t.Fatalf("expected 2 units (entity + architecture), got %d", len(res.Units))
	}
	//
	entity, arch := res.Units[0], res.Units[1]
	//
	if entity.Name != "counter" {
		t.Fatalf("expected entity name 'counter', got %q", entity.Name)
	}
	//
	if arch.Name != "counter(rtl)" {
		t.Fatalf("expected architecture name 'counter(rtl)', got %q", arch.Name)
	}
	//
	if !arch.Closes {
		t.Fatalf("expected architecture to close its entity")
	}
	//
	if _, err := entity.Region.LookupWithin(ast.NewIdentifier("clk"), region.NoArity()); err != nil {
		t.Fatalf("expected 'clk' to be declared on the entity's port clause: %v", err)
	}
	//
	if _, err := arch.Region.LookupWithin(ast.NewIdentifier("count"), region.NoArity()); err != nil {
		t.Fatalf("expected 'count' to be declared in the architecture: %v", err)
	}
	//
	if _, err := arch.Region.Lookup(ast.NewIdentifier("clk"), region.NoArity()); err != nil {
		t.Fatalf("expected the architecture to see its entity's port via the extends link: %v", err)
	}
	//
	if len(arch.Assignments) != 1 {
		t.Fatalf("expected 1 concurrent assignment, got %d", len(arch.Assignments))
	}
}

func TestParseDeferredConstantCompletedByPackageBody(t *testing.T) {
	src := `
package consts is
  constant width : integer;
end package consts;

package body consts is
  constant width : integer := 8;
end package body consts;
`
	f := source.NewSourceFile("consts.vhd", []byte(src))
	lib := NewLibrary()
	res := Parse(f, lib)
	//
	if len(res.Diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diags)
	}
	//
	if len(res.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(res.Units))
	}
	//
	body := res.Units[1]
	if !body.Closes {
		t.Fatalf("expected package body to close its package declaration")
	}
	//
	diags := body.Region.CloseBoth()
	if len(diags) != 0 {
		t.Fatalf("expected the deferred constant to be completed, got: %v", diags)
	}
}

func TestParseEnumerationLiteralsAreDeclared(t *testing.T) {
	src := `
package colours is
  type colour_t is (red, green, blue);
end package colours;
`
	f := source.NewSourceFile("colours.vhd", []byte(src))
	lib := NewLibrary()
	res := Parse(f, lib)
	//
	if len(res.Diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diags)
	}
	//
	pkg := res.Units[0]
	//
	typeDecl, err := pkg.Region.LookupWithin(ast.NewIdentifier("colour_t"), region.NoArity())
	if err != nil {
		t.Fatalf("expected 'colour_t' to be declared: %v", err)
	}
	//
	if typeDecl.Scope == nil {
		t.Fatalf("expected the enumeration type's Scope to hold its implicit literal region")
	}
	//
	if _, err := pkg.Region.LookupWithin(ast.NewIdentifier("green"), region.AnyArity()); err != nil {
		t.Fatalf("expected enum literal 'green' to be declared directly in the package, got: %v", err)
	}
}

func TestParsePackageSelectedNameResolvesAcrossUnits(t *testing.T) {
	src := `
package consts is
  constant width : integer := 8;
end package consts;

use work.consts.width;

entity e is
end entity e;

architecture rtl of e is
begin
end architecture rtl;
`
	f := source.NewSourceFile("consts2.vhd", []byte(src))
	lib := NewLibrary()
	res := Parse(f, lib)
	//
	if len(res.Diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diags)
	}
	//
	entity := res.Units[1]
	//
	if _, err := entity.Region.Lookup(ast.NewIdentifier("width"), region.AnyArity()); err != nil {
		t.Fatalf("expected 'width' to be use-visible on the entity via the use clause: %v", err)
	}
	//
	pkgDecl, err := entity.Region.Lookup(ast.NewIdentifier("consts"), region.AnyArity())
	if err != nil {
		t.Fatalf("expected the package name itself to become visible alongside its used item: %v", err)
	}
	//
	if pkgDecl.Kind != ast.Package || pkgDecl.Scope == nil {
		t.Fatalf("expected 'consts' to resolve to a Package declaration carrying its own region as Scope")
	}
}

func TestParseReportsDuplicateDeclaration(t *testing.T) {
	src := `
entity e is
end entity e;

architecture rtl of e is
  signal x : bit;
  signal x : bit;
begin
end architecture rtl;
`
	f := source.NewSourceFile("dup.vhd", []byte(src))
	lib := NewLibrary()
	res := Parse(f, lib)
	//
	if len(res.Diags) != 1 {
		t.Fatalf("expected exactly one duplicate-declaration diagnostic, got %d: %v", len(res.Diags), res.Diags)
	}
}
