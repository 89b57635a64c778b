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
	"golang.org/x/exp/slices"

	"github.com/ciusji/edgedb/expr"
)

// BuildQueryInputList computes the correlation set: the minimal set of
// path prefixes that must be materialized as input-tuple columns so that
// repeated references to the same path in a correlated position bind to
// the same value (spec.md §4.4).
//
// direct and subquery are AnalyzedPaths.Direct/Subquery; old is the
// caller's current query input list, whose entries are never repeated in
// the result.
//
// Candidates are collected into an insertion-ordered set rather than the
// reference model's sorted(set(...)): both give a stable, deterministic
// order, and insertion order avoids needing a total order over
// structurally dissimilar path shapes.
func BuildQueryInputList(direct, subquery, old []*expr.Path) []*expr.Path {
	var objRefDirect []*expr.Path
	for _, p := range direct {
		if _, ok := p.Elems[0].(expr.ObjRefElem); ok {
			objRefDirect = append(objRefDirect, p)
		}
	}

	seen := newPathSet()
	var order []*expr.Path
	add := func(p *expr.Path) {
		if seen.has(p) {
			return
		}
		seen.add(p)
		order = append(order, p)
	}

	for i, x := range objRefDirect {
		added := false
		for _, y := range objRefDirect[i:] {
			if pfx := expr.CommonPrefix(x, y); pfx != nil {
				add(pfx)
				added = true
			}
		}
		for _, y := range subquery {
			if pfx := expr.CommonPrefix(x, y); pfx != nil {
				add(pfx)
				added = true
			}
		}
		if !added {
			add(x)
		}
	}

	out := make([]*expr.Path, 0, len(order))
	for _, p := range order {
		if !slices.ContainsFunc(old, func(o *expr.Path) bool { return o.Equals(p) }) {
			out = append(out, p)
		}
	}
	return out
}
