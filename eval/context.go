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
	"github.com/ciusji/edgedb/expr"
	"github.com/ciusji/edgedb/value"
)

// Multiset is the result type of every expression (spec.md §3): an
// ordered sequence of values, duplicates allowed.
type Multiset = []value.Value

// Context is the evaluator's (spec.md §3) evaluation context: the
// currently-bound query input list and its parallel input tuple, the
// alias environment, and the database. Context is treated as immutable;
// WithQIL/WithTuple return a modified copy rather than mutating the
// receiver, so that a caller's own Context is never disturbed by a
// callee's recursion.
type Context struct {
	QIL     []*expr.Path
	Tuple   Multiset
	Aliases map[string]Multiset
	DB      *value.Database
	Rand    *Rand
}

// NewContext returns the empty top-level context for evaluating a query
// against db.
func NewContext(db *value.Database) Context {
	return Context{DB: db}
}

// WithQIL returns a copy of c with its query input list replaced.
func (c Context) WithQIL(qil []*expr.Path) Context {
	c.QIL = qil
	return c
}

// WithTuple returns a copy of c with its input tuple replaced.
func (c Context) WithTuple(t Multiset) Context {
	c.Tuple = t
	return c
}

func indexOfPath(qil []*expr.Path, p *expr.Path) int {
	for i, x := range qil {
		if x.Equals(p) {
			return i
		}
	}
	return -1
}

func concatTuple(row Multiset, v value.Value) Multiset {
	out := make(Multiset, len(row)+1)
	copy(out, row)
	out[len(row)] = v
	return out
}

func concatPaths(a []*expr.Path, b ...*expr.Path) []*expr.Path {
	out := make([]*expr.Path, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
