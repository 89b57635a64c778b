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

// Eval evaluates n in ctx and returns the multiset it denotes. Eval
// itself never re-derives an input list: expressions that need one
// (paths shared across a correlated scope, SET OF subquery arguments) go
// through Subquery/SubqueryFull instead (spec.md §4.5).
func Eval(n expr.Node, ctx Context) (Multiset, error) {
	switch x := n.(type) {
	case nil:
		return nil, nil
	case expr.Integer:
		return Multiset{x.Signed()}, nil
	case expr.Float:
		return Multiset{x.Signed()}, nil
	case expr.String:
		return Multiset{string(x)}, nil
	case expr.Bool:
		return Multiset{bool(x)}, nil
	case *expr.Set:
		var out Multiset
		for _, e := range x.Elements {
			vs, err := Eval(e, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, vs...)
		}
		return out, nil
	case *expr.Tuple:
		return evalTuple(x, ctx)
	case *expr.NamedTuple:
		return evalNamedTuple(x, ctx)
	case *expr.TypeCast:
		return evalCast(x, ctx)
	case *expr.BinOp:
		return evalFuncOrOp(expr.Key{Kind: expr.KindBinOp, Name: x.Op}, []expr.Node{x.Left, x.Right}, ctx)
	case *expr.UnaryOp:
		return evalFuncOrOp(expr.Key{Kind: expr.KindUnOp, Name: x.Op}, []expr.Node{x.Operand}, ctx)
	case *expr.FunctionCall:
		return evalFuncOrOp(expr.Key{Kind: expr.KindFunc, Name: x.Func}, x.Args, ctx)
	case *expr.IfElse:
		return evalFuncOrOp(expr.Key{Kind: expr.KindBinOp, Name: "IF"}, []expr.Node{x.Then, x.Cond, x.Else}, ctx)
	case *expr.Path:
		return evalPath(x, ctx)
	case *expr.Select:
		return EvalSelect(x, ctx)
	case *expr.For:
		return EvalFor(x, ctx)
	default:
		return nil, &UnknownNodeError{Node: n}
	}
}

func evalTuple(t *expr.Tuple, ctx Context) (Multiset, error) {
	argsets := make([]Multiset, len(t.Elements))
	for i, e := range t.Elements {
		vs, err := Eval(e, ctx)
		if err != nil {
			return nil, err
		}
		argsets[i] = vs
	}
	var out Multiset
	cartesian(argsets, func(combo []value.Value) {
		tup := make(value.Tuple, len(combo))
		copy(tup, combo)
		out = append(out, tup)
	})
	return out, nil
}

func evalNamedTuple(nt *expr.NamedTuple, ctx Context) (Multiset, error) {
	names := make([]string, len(nt.Fields))
	argsets := make([]Multiset, len(nt.Fields))
	for i, f := range nt.Fields {
		names[i] = f.Name
		vs, err := Eval(f.Value, ctx)
		if err != nil {
			return nil, err
		}
		argsets[i] = vs
	}
	var out Multiset
	cartesian(argsets, func(combo []value.Value) {
		vals := make([]value.Value, len(combo))
		copy(vals, combo)
		out = append(out, value.NamedTuple{Names: names, Values: vals})
	})
	return out, nil
}

func evalCast(tc *expr.TypeCast, ctx Context) (Multiset, error) {
	vs, err := Eval(tc.Expr, ctx)
	if err != nil {
		return nil, err
	}
	impl, ok := builtinImpls[expr.Key{Kind: expr.KindCast, Name: tc.Type}]
	if !ok {
		return nil, &UnknownBuiltinError{Key: expr.Key{Kind: expr.KindCast, Name: tc.Type}}
	}
	return impl([]Multiset{vs}, ctx)
}

func evalFuncOrOp(key expr.Key, args []expr.Node, ctx Context) (Multiset, error) {
	mods := expr.ModifiersFor(key, len(args))
	argVals := make([]Multiset, len(args))
	for i, a := range args {
		if mods[i] == expr.SetOf {
			vs, err := Subquery(a, ctx)
			if err != nil {
				return nil, err
			}
			argVals[i] = vs
		} else {
			vs, err := Eval(a, ctx)
			if err != nil {
				return nil, err
			}
			argVals[i] = vs
		}
	}
	impl, ok := builtinImpls[key]
	if !ok {
		return nil, &UnknownBuiltinError{Key: key}
	}
	return impl(argVals, ctx)
}

// cartesian calls f once for every combination of the Cartesian product
// of sets, in the same left-to-right, rightmost-varies-fastest order as
// itertools.product (spec.md §4.2's "element-wise lift"). Zero sets
// yields exactly one (empty) combination, so a zero-arity function such
// as `random` still runs its body once; any empty set among a nonempty
// list of sets yields no combinations at all.
func cartesian(sets []Multiset, f func([]value.Value)) {
	if len(sets) == 0 {
		f(nil)
		return
	}
	combo := make([]value.Value, len(sets))
	var rec func(i int)
	rec = func(i int) {
		if i == len(sets) {
			f(combo)
			return
		}
		for _, v := range sets[i] {
			combo[i] = v
			rec(i + 1)
		}
	}
	rec(0)
}

// evalPath evaluates a path reference (spec.md §4.5).
func evalPath(p *expr.Path, ctx Context) (Multiset, error) {
	if i := indexOfPath(ctx.QIL, p); i >= 0 {
		cell := ctx.Tuple[i]
		if value.IsMissing(cell) {
			return nil, nil
		}
		return Multiset{cell}, nil
	}

	if len(p.Elems) == 1 {
		switch e := p.Elems[0].(type) {
		case expr.ObjRefElem:
			return evalObjRef(e.Name, ctx), nil
		case expr.ExprElem:
			return Eval(e.Inner, ctx)
		default:
			return nil, &UnknownNodeError{Node: p}
		}
	}

	base, err := evalPath(&expr.Path{Elems: p.Elems[:len(p.Elems)-1]}, ctx)
	if err != nil {
		return nil, err
	}

	var out Multiset
	switch last := p.Elems[len(p.Elems)-1].(type) {
	case expr.Ptr:
		for _, b := range base {
			out = append(out, evalPtr(b, last, ctx)...)
		}
	case expr.TypeIntersection:
		for _, b := range base {
			out = append(out, value.TypeIntersect(ctx.DB, b, last.TypeName)...)
		}
	default:
		return nil, &UnknownNodeError{Node: p}
	}

	if isObjRef(base) && isObjRef(out) {
		out = value.Dedup(out)
	}
	return out, nil
}

func isObjRef(vs Multiset) bool {
	if len(vs) == 0 {
		return false
	}
	_, ok := vs[0].(*value.ObjectRef)
	return ok
}

func evalObjRef(name string, ctx Context) Multiset {
	if vs, ok := ctx.Aliases[name]; ok {
		return vs
	}
	return ctx.DB.ByType(name)
}

func evalPtr(base value.Value, ptr expr.Ptr, ctx Context) Multiset {
	if ptr.Direction == expr.Forward {
		return value.ForwardPtr(ctx.DB, base, ptr.Name)
	}
	return value.BackwardPtr(ctx.DB, base, ptr.Name)
}

// SubqueryFull drives a full subquery evaluation of q (spec.md §4.5): it
// analyzes q together with extraSubqueries, builds the additional query
// input list columns, builds one input tuple per combination, and
// evaluates q once per input tuple. It returns the extended query input
// list and one output row per (input tuple, result value) pair, each row
// being the input tuple's cells followed by the result value.
func SubqueryFull(q expr.Node, extraSubqueries []expr.Node, ctx Context) ([]*expr.Path, []Multiset, error) {
	analyzed := AnalyzePaths(q, extraSubqueries...)
	qil := BuildQueryInputList(analyzed.Direct, analyzed.Subquery, ctx.QIL)

	inTuples, err := buildInputTuples(qil, analyzed, ctx)
	if err != nil {
		return nil, nil, err
	}

	newQIL := concatPaths(ctx.QIL, qil...)
	var out []Multiset
	for _, row := range inTuples {
		subctx := ctx.WithQIL(newQIL).WithTuple(row)
		vals, err := Eval(q, subctx)
		if err != nil {
			return nil, nil, err
		}
		for _, v := range vals {
			out = append(out, concatTuple(row, v))
		}
	}
	return newQIL, out, nil
}

// Subquery evaluates q as an independent subquery and returns just the
// result values (the last column of SubqueryFull's rows).
func Subquery(q expr.Node, ctx Context) (Multiset, error) {
	_, rows, err := SubqueryFull(q, nil, ctx)
	if err != nil {
		return nil, err
	}
	out := make(Multiset, len(rows))
	for i, r := range rows {
		out[i] = r[len(r)-1]
	}
	return out, nil
}

func buildInputTuples(qil []*expr.Path, analyzed AnalyzedPaths, ctx Context) ([]Multiset, error) {
	data := []Multiset{ctx.Tuple}
	for i, p := range qil {
		newQIL := concatPaths(ctx.QIL, qil[:i]...)
		var next []Multiset
		for _, row := range data {
			subctx := ctx.WithQIL(newQIL).WithTuple(row)
			vals, err := evalPath(p, subctx)
			if err != nil {
				return nil, err
			}
			for _, v := range vals {
				next = append(next, concatTuple(row, v))
			}
			if len(vals) == 0 && analyzed.AlwaysOptional(p) {
				next = append(next, concatTuple(row, value.Missing))
			}
		}
		data = next
	}
	return data, nil
}
