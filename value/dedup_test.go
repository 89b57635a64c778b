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

func TestDedupPreservesFirstSeenOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	refA1, refA2, refB := &ObjectRef{ID: a}, &ObjectRef{ID: a}, &ObjectRef{ID: b}
	got := Dedup([]Value{refA1, refB, refA2, refB})
	if len(got) != 2 {
		t.Fatalf("got %d elements, want 2: %v", len(got), got)
	}
	if !Equal(got[0], refA1) || !Equal(got[1], refB) {
		t.Fatalf("got %v, want [refA, refB] in first-seen order", got)
	}
}

func TestDedupScalars(t *testing.T) {
	got := Dedup([]Value{int64(1), int64(2), int64(1), "x", "x"})
	want := []Value{int64(1), int64(2), "x"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !Equal(got[i], want[i]) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestContains(t *testing.T) {
	if !Contains("hello world", "lo wo") {
		t.Fatal("substring should be found")
	}
	if Contains("hello", "xyz") {
		t.Fatal("absent substring should not be found")
	}
	if !Contains(List{int64(1), int64(2)}, int64(2)) {
		t.Fatal("list membership should be found")
	}
	if Contains(List{int64(1)}, int64(9)) {
		t.Fatal("absent element should not be found")
	}
}

func TestLen(t *testing.T) {
	if n, ok := Len("abc"); !ok || n != 3 {
		t.Fatalf("Len(abc) = %d,%v, want 3,true", n, ok)
	}
	if n, ok := Len(List{int64(1), int64(2)}); !ok || n != 2 {
		t.Fatalf("Len(list) = %d,%v, want 2,true", n, ok)
	}
	if _, ok := Len(int64(5)); ok {
		t.Fatal("Len(int64) should report ok=false")
	}
}
