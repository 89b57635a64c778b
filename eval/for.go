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

import "github.com/ciusji/edgedb/expr"

// EvalFor evaluates a FOR iterator_alias IN iterator UNION result query
// form (spec.md §4.5): result is re-evaluated once per element of
// iterator, with iterator_alias bound to that element via an extra
// input-list column.
func EvalFor(f *expr.For, ctx Context) (Multiset, error) {
	iterVals, err := Subquery(f.Iterator, ctx)
	if err != nil {
		return nil, err
	}

	qil := concatPaths(ctx.QIL, expr.NewPath(expr.ObjRefElem{Name: f.IteratorAlias}))

	var out Multiset
	for _, v := range iterVals {
		subctx := ctx.WithQIL(qil).WithTuple(concatTuple(ctx.Tuple, v))
		vs, err := Subquery(f.Result, subctx)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}
