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

// Package value defines the runtime data model the evaluator operates on
// (as opposed to package expr, which defines the AST it interprets): the
// scalar kinds, tuples, object references, and the in-memory database.
package value

import (
	"fmt"

	"github.com/google/uuid"
)

// Value is any runtime value the evaluator can produce: int64, float64,
// string, bool, Tuple, NamedTuple, List, or *ObjectRef. It is an alias for
// interface{} rather than a closed sum type because the language's
// dynamically-typed, multiset-everywhere semantics (spec.md §3) don't
// benefit from the extra ceremony a sealed interface would add here —
// every consumer already type-switches on the concrete Go kind.
type Value = interface{}

// ObjectID is an opaque, comparable object identifier. Using uuid.UUID
// instead of a bare string gives every fixture a concrete, collision-free
// identity without inventing an ID scheme of our own.
type ObjectID = uuid.UUID

// ObjectRef is a reference to a database object. Two ObjectRefs are equal
// iff their ids are equal (spec.md §3). Computed shapes are an explicit
// non-goal (spec.md §1); the "display shape" an ObjectRef presents when
// cleaned (Clean, in clean.go) is always the single field {id: id},
// matching the reference model's default Obj shape.
type ObjectRef struct {
	ID ObjectID
}

func (o *ObjectRef) String() string {
	return fmt.Sprintf("Obj(%s)", o.ID)
}

// Tuple is an ordered sequence of values.
type Tuple []Value

// NamedTuple is an ordered mapping from (unique) name to value.
type NamedTuple struct {
	Names  []string
	Values []Value
}

// Field looks up a named tuple's value by name.
func (n NamedTuple) Field(name string) (Value, bool) {
	for i, f := range n.Names {
		if f == name {
			return n.Values[i], true
		}
	}
	return nil, false
}

// List is a value list; it appears only as a database record's
// representation of link multiplicity, never as a first-class query
// result (spec.md §3).
type List []Value

// missingT is the sentinel carried in an input-tuple cell when a column
// produced no value under an OPTIONAL position (spec.md §4.5, Design
// Notes: "encode as an explicit sum (Present(v) | Missing), never as a
// null value").
type missingT struct{}

// Missing is the "no value here" marker for input-tuple cells.
var Missing Value = missingT{}

// IsMissing reports whether v is the Missing marker.
func IsMissing(v Value) bool {
	_, ok := v.(missingT)
	return ok
}

// Equal reports whether a and b denote the same value, per spec.md §3's
// equality rules: ObjectRefs compare by id, everything else compares
// structurally.
func Equal(a, b Value) bool {
	if oa, ok := a.(*ObjectRef); ok {
		ob, ok := b.(*ObjectRef)
		return ok && oa.ID == ob.ID
	}
	switch av := a.(type) {
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case NamedTuple:
		bv, ok := b.(NamedTuple)
		if !ok || len(av.Names) != len(bv.Names) {
			return false
		}
		for i := range av.Names {
			if av.Names[i] != bv.Names[i] || !Equal(av.Values[i], bv.Values[i]) {
				return false
			}
		}
		return true
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Truthy reports whether v behaves as true in a boolean context (IF's
// condition, WHERE's filter).
func Truthy(v Value) bool {
	b, ok := v.(bool)
	return ok && b
}
