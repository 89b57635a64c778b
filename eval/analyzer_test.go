// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package eval

import (
	"testing"

	"github.com/ciusji/edgedb/expr"
)

func personName() *expr.Path {
	return expr.NewPath(expr.ObjRefElem{Name: "Person"}, expr.Ptr{Name: "name"})
}

func TestAnalyzePathsDirect(t *testing.T) {
	p := personName()
	analyzed := AnalyzePaths(p)
	if len(analyzed.Direct) != 1 || !analyzed.Direct[0].Equals(p) {
		t.Fatalf("Direct = %v, want [%s]", analyzed.Direct, expr.ToString(p))
	}
	if len(analyzed.Subquery) != 0 {
		t.Fatalf("Subquery = %v, want none", analyzed.Subquery)
	}
}

func TestAnalyzePathsSetOfArgIsSubquery(t *testing.T) {
	// count(Person.name): Person.name sits under count's SET OF argument,
	// so it must be classified as a subquery reference, not direct.
	call := &expr.FunctionCall{Func: "count", Args: []expr.Node{personName()}}
	analyzed := AnalyzePaths(call)
	if len(analyzed.Direct) != 0 {
		t.Fatalf("Direct = %v, want none", analyzed.Direct)
	}
	if len(analyzed.Subquery) != 1 || !analyzed.Subquery[0].Equals(personName()) {
		t.Fatalf("Subquery = %v, want [Person.name]", analyzed.Subquery)
	}
}

func TestAnalyzePathsOptionalOperandIsAlwaysOptional(t *testing.T) {
	// (Person.tag ?? <str>"none") = "none": the left side of ?? is
	// OPTIONAL, so Person.tag stays a direct reference and its prefix
	// Person, reached only through that position, is AlwaysOptional.
	tag := expr.NewPath(expr.ObjRefElem{Name: "Person"}, expr.Ptr{Name: "tag"})
	coalesce := &expr.BinOp{Op: "??", Left: tag, Right: &expr.Set{Elements: []expr.Node{expr.String("none")}}}
	eq := &expr.BinOp{Op: "=", Left: coalesce, Right: expr.String("none")}

	analyzed := AnalyzePaths(eq)
	if len(analyzed.Direct) != 1 || !analyzed.Direct[0].Equals(tag) {
		t.Fatalf("Direct = %v, want [Person.tag]", analyzed.Direct)
	}
	if analyzed.AlwaysOptional(tag.Prefix(1)) != true {
		t.Fatal("Person (as a prefix of an OPTIONAL-only occurrence) should be AlwaysOptional")
	}
}

func TestAnalyzePathsRequiredPrefix(t *testing.T) {
	p := personName()
	analyzed := AnalyzePaths(p)
	if analyzed.AlwaysOptional(p.Prefix(1)) {
		t.Fatal("Person, reached only via a Singleton position, should not be AlwaysOptional")
	}
}

func TestBuildQueryInputListCorrelatesSharedPrefix(t *testing.T) {
	// Two direct refs sharing a base (Person.name, Person.tag) pull in
	// both refs themselves (each compares a common "prefix" against
	// itself) and their shared ancestor Person, which is the column the
	// two rows actually correlate on.
	base := expr.NewPath(expr.ObjRefElem{Name: "Person"})
	name := base.Append(expr.Ptr{Name: "name"})
	tag := base.Append(expr.Ptr{Name: "tag"})

	qil := BuildQueryInputList([]*expr.Path{name, tag}, nil, nil)
	want := []*expr.Path{name, base, tag}
	if len(qil) != len(want) {
		t.Fatalf("qil = %v, want %v", qil, want)
	}
	for i := range want {
		if !qil[i].Equals(want[i]) {
			t.Fatalf("qil[%d] = %s, want %s", i, expr.ToString(qil[i]), expr.ToString(want[i]))
		}
	}
	found := false
	for _, p := range qil {
		if p.Equals(base) {
			found = true
		}
	}
	if !found {
		t.Fatal("the shared ancestor Person must be a query input list column")
	}
}

func TestBuildQueryInputListExcludesOld(t *testing.T) {
	p := expr.NewPath(expr.ObjRefElem{Name: "Person"})
	qil := BuildQueryInputList([]*expr.Path{p}, nil, []*expr.Path{p})
	if len(qil) != 0 {
		t.Fatalf("qil = %v, want none (already in old)", qil)
	}
}
