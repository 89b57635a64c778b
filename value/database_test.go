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

func smallDB() (db *Database, phil, madeline, boxing, unboxing uuid.UUID) {
	db = NewDatabase()
	phil, madeline = uuid.New(), uuid.New()
	boxing, unboxing = uuid.New(), uuid.New()
	db.Insert(boxing, "Note", map[string]Value{"name": "boxing"})
	db.Insert(unboxing, "Note", map[string]Value{"name": "unboxing", "note": "lolol"})
	db.Insert(phil, "Person", map[string]Value{
		"name":  "Phil Emarg",
		"notes": List{&ObjectRef{ID: boxing}, &ObjectRef{ID: unboxing}},
	})
	db.Insert(madeline, "Person", map[string]Value{
		"name":  "Madeline Hatch",
		"notes": List{&ObjectRef{ID: unboxing}},
	})
	return
}

func TestByTypePreservesInsertionOrder(t *testing.T) {
	db, phil, madeline, _, _ := smallDB()
	got := db.ByType("Person")
	if len(got) != 2 {
		t.Fatalf("got %d Person refs, want 2", len(got))
	}
	if !Equal(got[0], &ObjectRef{ID: phil}) || !Equal(got[1], &ObjectRef{ID: madeline}) {
		t.Fatalf("ByType order = %v, want [phil, madeline]", got)
	}
}

func TestForwardPtrScalarAndLink(t *testing.T) {
	db, phil, _, boxing, unboxing := smallDB()
	ref := &ObjectRef{ID: phil}
	names := ForwardPtr(db, ref, "name")
	if len(names) != 1 || names[0] != "Phil Emarg" {
		t.Fatalf("ForwardPtr(name) = %v", names)
	}
	notes := ForwardPtr(db, ref, "notes")
	want := []Value{&ObjectRef{ID: boxing}, &ObjectRef{ID: unboxing}}
	if len(notes) != 2 || !Equal(notes[0], want[0]) || !Equal(notes[1], want[1]) {
		t.Fatalf("ForwardPtr(notes) = %v, want %v", notes, want)
	}
}

func TestForwardPtrTupleIndex(t *testing.T) {
	got := ForwardPtr(nil, Tuple{"a", "b", "c"}, "1")
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("ForwardPtr on tuple index 1 = %v, want [b]", got)
	}
	if got := ForwardPtr(nil, Tuple{"a"}, "5"); got != nil {
		t.Fatalf("out-of-range tuple index should yield nil, got %v", got)
	}
}

func TestBackwardPtr(t *testing.T) {
	db, phil, madeline, _, unboxing := smallDB()
	got := BackwardPtr(db, &ObjectRef{ID: unboxing}, "notes")
	want := []Value{&ObjectRef{ID: phil}, &ObjectRef{ID: madeline}}
	if len(got) != 2 || !Equal(got[0], want[0]) || !Equal(got[1], want[1]) {
		t.Fatalf("BackwardPtr = %v, want %v", got, want)
	}
}

func TestTypeIntersect(t *testing.T) {
	db, phil, _, boxing, _ := smallDB()
	if got := TypeIntersect(db, &ObjectRef{ID: phil}, "Person"); len(got) != 1 {
		t.Fatalf("Person [IS Person] should keep the ref, got %v", got)
	}
	if got := TypeIntersect(db, &ObjectRef{ID: phil}, "Note"); got != nil {
		t.Fatalf("Person [IS Note] should filter it out, got %v", got)
	}
	if got := TypeIntersect(db, &ObjectRef{ID: boxing}, "Note"); len(got) != 1 {
		t.Fatalf("Note [IS Note] should keep the ref, got %v", got)
	}
}
