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

import "strconv"

// Record is one object in the Database: an id, a concrete type tag, and
// zero or more named attributes whose values are scalars, *ObjectRef, or
// List (link multiplicity) (spec.md §3).
type Record struct {
	ID    ObjectID
	Type  string
	Attrs map[string]Value
}

// Database is a mapping from object-id to Record. It preserves insertion
// order (a plain Go map does not) because several of spec.md's worked
// examples are order-sensitive ("order reflects DB insertion", §8).
type Database struct {
	order []ObjectID
	byID  map[ObjectID]*Record
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{byID: make(map[ObjectID]*Record)}
}

// Insert adds or replaces the record for id. Replacing an existing id does
// not change its position in insertion order.
func (db *Database) Insert(id ObjectID, typ string, attrs map[string]Value) {
	if _, exists := db.byID[id]; !exists {
		db.order = append(db.order, id)
	}
	db.byID[id] = &Record{ID: id, Type: typ, Attrs: attrs}
}

// Get looks up the record for id.
func (db *Database) Get(id ObjectID) (*Record, bool) {
	r, ok := db.byID[id]
	return r, ok
}

// Records returns every record in insertion order.
func (db *Database) Records() []*Record {
	out := make([]*Record, len(db.order))
	for i, id := range db.order {
		out[i] = db.byID[id]
	}
	return out
}

// ByType returns an ObjectRef for every record whose Type is exactly
// name, in insertion order. This backs ObjRef evaluation when the name
// isn't a bound alias (spec.md §4.5).
func (db *Database) ByType(name string) []Value {
	var out []Value
	for _, id := range db.order {
		r := db.byID[id]
		if r.Type == name {
			out = append(out, db.refTo(r))
		}
	}
	return out
}

func (db *Database) refTo(r *Record) *ObjectRef {
	return &ObjectRef{ID: r.ID}
}

// GetLinks normalizes record r's attribute name into a list: a scalar
// normalizes to a one-element list, a List is itself, and an absent
// attribute normalizes to the empty list (spec.md §4.1).
func GetLinks(r *Record, name string) []Value {
	v, ok := r.Attrs[name]
	if !ok {
		return nil
	}
	if l, ok := v.(List); ok {
		return []Value(l)
	}
	return []Value{v}
}

// ForwardPtr follows a forward pointer step from base. If base is a
// Tuple and ptr parses as an integer, it indexes the tuple; otherwise
// base must be an *ObjectRef, and the database record for its id is
// consulted (spec.md §4.1).
func ForwardPtr(db *Database, base Value, ptr string) []Value {
	if t, ok := base.(Tuple); ok {
		if idx, err := strconv.Atoi(ptr); err == nil && idx >= 0 && idx < len(t) {
			return []Value{t[idx]}
		}
		return nil
	}
	ref, ok := base.(*ObjectRef)
	if !ok {
		return nil
	}
	r, ok := db.Get(ref.ID)
	if !ok {
		return nil
	}
	return GetLinks(r, ptr)
}

// BackwardPtr scans every record in the database and returns an
// ObjectRef for each one whose ptr attribute links to base (spec.md
// §4.1). This is a full scan with no index, matching the reference
// model's eval_bwd_ptr; performance is an explicit non-goal (spec.md §1).
func BackwardPtr(db *Database, base Value, ptr string) []Value {
	baseRef, ok := base.(*ObjectRef)
	if !ok {
		return nil
	}
	var out []Value
	for _, id := range db.order {
		r := db.byID[id]
		for _, l := range GetLinks(r, ptr) {
			if lr, ok := l.(*ObjectRef); ok && lr.ID == baseRef.ID {
				out = append(out, db.refTo(r))
				break
			}
		}
	}
	return out
}

// TypeIntersect keeps base iff its concrete type is exactly typeName
// (spec.md §4.1: "intersection matches exact string equality").
func TypeIntersect(db *Database, base Value, typeName string) []Value {
	ref, ok := base.(*ObjectRef)
	if !ok {
		return nil
	}
	r, ok := db.Get(ref.ID)
	if !ok {
		return nil
	}
	if r.Type == typeName {
		return []Value{base}
	}
	return nil
}
