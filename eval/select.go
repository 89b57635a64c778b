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
	"github.com/ciusji/edgedb/value"
)

// EvalSelect evaluates a SELECT <result> [FILTER][ORDER BY][OFFSET][LIMIT]
// query form (spec.md §4.5).
func EvalSelect(s *expr.Select, ctx Context) (Multiset, error) {
	if len(s.Aliases) > 0 {
		aliases := make(map[string]Multiset, len(ctx.Aliases)+len(s.Aliases))
		for k, v := range ctx.Aliases {
			aliases[k] = v
		}
		ctx.Aliases = aliases
		for _, al := range s.Aliases {
			vs, err := Subquery(al.Expr, ctx)
			if err != nil {
				return nil, err
			}
			ctx.Aliases[al.Name] = vs
		}
	}

	// WHERE and every ORDER BY path are fed to the analyzer as extra
	// subquery references of the result query (spec.md §9's Open
	// Question decision); OFFSET and LIMIT are not.
	var extra []expr.Node
	if s.Where != nil {
		extra = append(extra, s.Where)
	}
	for _, o := range s.OrderBy {
		extra = append(extra, o.Path)
	}

	newQIL, rows, err := SubqueryFull(s.Result, extra, ctx)
	if err != nil {
		return nil, err
	}
	newQIL = concatPaths(newQIL, expr.NewPath(expr.Partial{}))
	if s.ResultAlias != "" {
		for i, row := range rows {
			rows[i] = concatTuple(row, row[len(row)-1])
		}
		newQIL = concatPaths(newQIL, expr.NewPath(expr.ObjRefElem{Name: s.ResultAlias}))
	}

	rows, err = filterRows(s.Where, newQIL, rows, ctx)
	if err != nil {
		return nil, err
	}
	rows, err = orderRows(s.OrderBy, newQIL, rows, ctx)
	if err != nil {
		return nil, err
	}
	rows, err = applyOffset(s.Offset, rows, ctx)
	if err != nil {
		return nil, err
	}
	rows, err = applyLimit(s.Limit, rows, ctx)
	if err != nil {
		return nil, err
	}

	out := make(Multiset, len(rows))
	for i, r := range rows {
		out[i] = r[len(r)-1]
	}
	return out, nil
}

func filterRows(where expr.Node, qil []*expr.Path, rows []Multiset, ctx Context) ([]Multiset, error) {
	if where == nil {
		return rows, nil
	}
	var out []Multiset
	for _, row := range rows {
		subctx := ctx.WithQIL(qil).WithTuple(row)
		vs, err := Subquery(where, subctx)
		if err != nil {
			return nil, err
		}
		if anyTruthy(vs) {
			out = append(out, row)
		}
	}
	return out, nil
}

func anyTruthy(vs Multiset) bool {
	for _, v := range vs {
		if value.Truthy(v) {
			return true
		}
	}
	return false
}

// sortDecorated pairs a row with its emptiness tag and (if present) sort
// value, mirroring the reference model's `(not nones_bigger, vals[0])` /
// `(nones_bigger,)` decoration.
type sortDecorated struct {
	row    Multiset
	tag    bool
	hasVal bool
	val    value.Value
}

// orderRows iterates orderby in reverse, relying on each pass being a
// stable sort (spec.md §8 property 9) to compose multiple sort keys
// without building one combined comparator.
func orderRows(orderby []expr.SortExpr, qil []*expr.Path, rows []Multiset, ctx Context) ([]Multiset, error) {
	for i := len(orderby) - 1; i >= 0; i-- {
		sortExpr := orderby[i]
		nonesBigger := (sortExpr.Direction == expr.Ascending && sortExpr.Nulls == expr.NullsLast) ||
			(sortExpr.Direction == expr.Descending && sortExpr.Nulls == expr.NullsFirst)

		dec := make([]sortDecorated, len(rows))
		for j, row := range rows {
			subctx := ctx.WithQIL(qil).WithTuple(row)
			vs, err := Subquery(sortExpr.Path, subctx)
			if err != nil {
				return nil, err
			}
			if len(vs) > 1 {
				return nil, &CardinalityViolationError{Where: "ORDER BY", Got: len(vs)}
			}
			if len(vs) == 1 {
				dec[j] = sortDecorated{row: row, tag: !nonesBigger, hasVal: true, val: vs[0]}
			} else {
				dec[j] = sortDecorated{row: row, tag: nonesBigger}
			}
		}

		var cmpErr error
		less := func(a, b sortDecorated) bool {
			if a.tag != b.tag {
				return !a.tag && b.tag
			}
			if !a.hasVal {
				return false
			}
			lt, err := lessValue(a.val, b.val)
			if err != nil && cmpErr == nil {
				cmpErr = err
			}
			return err == nil && lt
		}
		if sortExpr.Direction == expr.Descending {
			orig := less
			less = func(a, b sortDecorated) bool { return orig(b, a) }
		}
		slices.SortStableFunc(dec, less)
		if cmpErr != nil {
			return nil, cmpErr
		}

		rows = make([]Multiset, len(dec))
		for j, d := range dec {
			rows[j] = d.row
		}
	}
	return rows, nil
}

func applyOffset(offsetExpr expr.Node, rows []Multiset, ctx Context) ([]Multiset, error) {
	if offsetExpr == nil {
		return rows, nil
	}
	n, err := singletonInt(offsetExpr, ctx, "OFFSET")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n >= int64(len(rows)) {
		return nil, nil
	}
	return rows[n:], nil
}

func applyLimit(limitExpr expr.Node, rows []Multiset, ctx Context) ([]Multiset, error) {
	if limitExpr == nil {
		return rows, nil
	}
	n, err := singletonInt(limitExpr, ctx, "LIMIT")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n > int64(len(rows)) {
		n = int64(len(rows))
	}
	return rows[:n], nil
}

func singletonInt(n expr.Node, ctx Context, where string) (int64, error) {
	vs, err := Subquery(n, ctx)
	if err != nil {
		return 0, err
	}
	if len(vs) != 1 {
		return 0, &CardinalityViolationError{Where: where, Got: len(vs)}
	}
	i, ok := vs[0].(int64)
	if !ok {
		return 0, &TypeError{At: n, Msg: where + " must evaluate to an integer"}
	}
	return i, nil
}
