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
	"github.com/ciusji/edgedb/fixture"
	"github.com/ciusji/edgedb/value"
)

func db1Context(t *testing.T) Context {
	t.Helper()
	db, err := fixture.LoadDB1()
	if err != nil {
		t.Fatalf("fixture.LoadDB1: %v", err)
	}
	return NewContext(db)
}

func personPath(steps ...expr.Elem) *expr.Path {
	return expr.NewPath(expr.ObjRefElem{Name: "Person"}, steps...)
}

func stringsOf(t *testing.T, m Multiset) []string {
	t.Helper()
	out := make([]string, len(m))
	for i, v := range m {
		s, ok := v.(string)
		if !ok {
			t.Fatalf("element %d is %T, not string: %v", i, v, v)
		}
		out[i] = s
	}
	return out
}

func TestCountPerson(t *testing.T) {
	ctx := db1Context(t)
	call := &expr.FunctionCall{Func: "count", Args: []expr.Node{expr.NewPath(expr.ObjRefElem{Name: "Person"})}}
	got, err := Eval(call, ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if len(got) != 1 || got[0] != int64(3) {
		t.Fatalf("count(Person) = %v, want [3]", got)
	}
}

func TestSelectPersonNameOrdered(t *testing.T) {
	ctx := db1Context(t)
	namePath := personPath(expr.Ptr{Name: "name"})
	sel := &expr.Select{
		Result: namePath,
		OrderBy: []expr.SortExpr{
			{Path: namePath, Direction: expr.Ascending},
		},
	}
	got, err := EvalSelect(sel, ctx)
	if err != nil {
		t.Fatalf("EvalSelect: %v", err)
	}
	want := []string{"Emmanuel Villip", "Madeline Hatch", "Phil Emarg"}
	names := stringsOf(t, got)
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestSelectFilter(t *testing.T) {
	ctx := db1Context(t)
	namePath := personPath(expr.Ptr{Name: "name"})
	sel := &expr.Select{
		Result: namePath,
		Where:  &expr.BinOp{Op: "=", Left: namePath, Right: expr.String("Phil Emarg")},
	}
	got, err := EvalSelect(sel, ctx)
	if err != nil {
		t.Fatalf("EvalSelect: %v", err)
	}
	names := stringsOf(t, got)
	if len(names) != 1 || names[0] != "Phil Emarg" {
		t.Fatalf("got %v, want [Phil Emarg]", names)
	}
}

func TestSelectOffsetLimit(t *testing.T) {
	ctx := db1Context(t)
	namePath := personPath(expr.Ptr{Name: "name"})
	sel := &expr.Select{
		Result:  namePath,
		OrderBy: []expr.SortExpr{{Path: namePath, Direction: expr.Ascending}},
		Offset:  expr.Int(1),
		Limit:   expr.Int(1),
	}
	got, err := EvalSelect(sel, ctx)
	if err != nil {
		t.Fatalf("EvalSelect: %v", err)
	}
	names := stringsOf(t, got)
	if len(names) != 1 || names[0] != "Madeline Hatch" {
		t.Fatalf("got %v, want [Madeline Hatch]", names)
	}
}

func TestNestedPathDedup(t *testing.T) {
	ctx := db1Context(t)
	// Phil Emarg links both notes, Madeline Hatch links "unboxing" again;
	// the flattened Person.notes reference must collapse that shared Note
	// to a single occurrence (spec.md §4.1's dedup rule).
	call := &expr.FunctionCall{Func: "count", Args: []expr.Node{personPath(expr.Ptr{Name: "notes"})}}
	got, err := Eval(call, ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if len(got) != 1 || got[0] != int64(2) {
		t.Fatalf("count(Person.notes) = %v, want [2]", got)
	}
}

func TestCorrelatedTupleConstruction(t *testing.T) {
	ctx := db1Context(t)
	tup := &expr.Tuple{Elements: []expr.Node{
		personPath(),
		personPath(expr.Ptr{Name: "name"}),
	}}
	got, err := Subquery(tup, ctx)
	if err != nil {
		t.Fatalf("Subquery: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want 3 (one per Person, not a cross product)", len(got))
	}
	for _, row := range got {
		tup, ok := row.(value.Tuple)
		if !ok || len(tup) != 2 {
			t.Fatalf("row %v is not a 2-tuple", row)
		}
		ref, ok := tup[0].(*value.ObjectRef)
		if !ok {
			t.Fatalf("tuple[0] = %v, want *value.ObjectRef", tup[0])
		}
		name, _ := tup[1].(string)
		rec, ok := ctx.DB.Get(ref.ID)
		if !ok || rec.Attrs["name"] != name {
			t.Fatalf("tuple %v: name does not match its own Person record", tup)
		}
	}
}

func TestForUnion(t *testing.T) {
	ctx := db1Context(t)
	forNode := &expr.For{
		IteratorAlias: "x",
		Iterator: &expr.Set{Elements: []expr.Node{
			expr.Int(1), expr.Int(2), expr.Int(3),
		}},
		Result: &expr.BinOp{
			Op:   "+",
			Left: expr.NewPath(expr.ObjRefElem{Name: "x"}),
			Right: expr.Int(10),
		},
	}
	got, err := Eval(forNode, ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %v, want 3 elements", got)
	}
	seen := map[int64]bool{}
	for _, v := range got {
		i, ok := v.(int64)
		if !ok {
			t.Fatalf("element %v is %T, not int64", v, v)
		}
		seen[i] = true
	}
	for _, want := range []int64{11, 12, 13} {
		if !seen[want] {
			t.Fatalf("got %v, missing %d", got, want)
		}
	}
}

func TestCoalesceEmptyOptional(t *testing.T) {
	ctx := db1Context(t)
	// No Person in DB1 has a "tag" attribute, so Person.tag is always
	// empty; coalescing against a cast string falls back to the default.
	coalesce := &expr.BinOp{
		Op:   "??",
		Left: personPath(expr.Ptr{Name: "tag"}),
		Right: &expr.Set{Elements: []expr.Node{
			&expr.TypeCast{Type: "str", Expr: expr.String("none")},
		}},
	}
	got, err := Subquery(coalesce, ctx)
	if err != nil {
		t.Fatalf("Subquery: %v", err)
	}
	if len(got) != 1 || got[0] != "none" {
		t.Fatalf("got %v, want [none]", got)
	}
}
