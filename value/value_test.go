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

package value

import (
	"testing"

	"github.com/google/uuid"
)

func TestEqualObjectRefByID(t *testing.T) {
	id := uuid.New()
	a := &ObjectRef{ID: id}
	b := &ObjectRef{ID: id}
	if a == b {
		t.Fatal("test refs should be distinct pointers")
	}
	if !Equal(a, b) {
		t.Fatal("ObjectRefs with the same id should be Equal")
	}
	if Equal(a, &ObjectRef{ID: uuid.New()}) {
		t.Fatal("ObjectRefs with different ids should not be Equal")
	}
}

func TestEqualStructural(t *testing.T) {
	a := Tuple{int64(1), "x", NamedTuple{Names: []string{"n"}, Values: []Value{true}}}
	b := Tuple{int64(1), "x", NamedTuple{Names: []string{"n"}, Values: []Value{true}}}
	if !Equal(a, b) {
		t.Fatal("structurally identical tuples should be Equal")
	}
	c := Tuple{int64(1), "x", NamedTuple{Names: []string{"n"}, Values: []Value{false}}}
	if Equal(a, c) {
		t.Fatal("tuples differing in a nested field should not be Equal")
	}
}

func TestIsMissing(t *testing.T) {
	if !IsMissing(Missing) {
		t.Fatal("Missing should be IsMissing")
	}
	if IsMissing(int64(0)) {
		t.Fatal("0 should not be IsMissing")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{true, true},
		{false, false},
		{int64(1), false}, // only bool is truthy (spec.md §3)
		{"x", false},
		{nil, false},
	}
	for _, c := range cases {
		if got := Truthy(c.v); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestClean(t *testing.T) {
	id := uuid.New()
	ref := &ObjectRef{ID: id}
	got := Clean(Tuple{ref, int64(3)})
	want := Tuple{NamedTuple{Names: []string{"id"}, Values: []Value{id.String()}}, int64(3)}
	if !Equal(got, want) {
		t.Fatalf("Clean(%v) = %v, want %v", ref, got, want)
	}
}
