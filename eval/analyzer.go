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

// foundPath is one path reference discovered by the analyzer, tagged
// with the two flags spec.md §4.3 asks for: whether it sits under an
// OPTIONAL argument position, and whether it sits inside a subquery
// (a SET OF argument, or a nested SELECT/FOR).
type foundPath struct {
	path     *expr.Path
	optional bool
	subquery bool
}

// analyzer walks an expression collecting foundPaths. It is a
// hand-written recursive descent rather than a generic expr.Visitor
// because the two flags must be saved and restored at each individual
// call-argument boundary (spec.md §4.3) — a plain depth-first Walk has
// no hook for "done visiting this child", only "about to visit it".
type analyzer struct {
	inOptional bool
	inSubquery bool
	paths      []foundPath
}

func (a *analyzer) visit(n expr.Node) {
	switch x := n.(type) {
	case nil:
		return
	case *expr.Path:
		a.paths = append(a.paths, foundPath{path: x, optional: a.inOptional, subquery: a.inSubquery})
		for _, e := range x.Elems {
			if ee, ok := e.(expr.ExprElem); ok {
				a.visit(ee.Inner)
			}
		}
	case *expr.BinOp:
		a.visitFuncOrOp(expr.Key{Kind: expr.KindBinOp, Name: x.Op}, []expr.Node{x.Left, x.Right})
	case *expr.UnaryOp:
		a.visitFuncOrOp(expr.Key{Kind: expr.KindUnOp, Name: x.Op}, []expr.Node{x.Operand})
	case *expr.FunctionCall:
		a.visitFuncOrOp(expr.Key{Kind: expr.KindFunc, Name: x.Func}, x.Args)
	case *expr.IfElse:
		a.visitFuncOrOp(expr.Key{Kind: expr.KindBinOp, Name: "IF"}, []expr.Node{x.Then, x.Cond, x.Else})
	case *expr.TypeCast:
		a.visit(x.Expr)
	case *expr.Set:
		for _, e := range x.Elements {
			a.visit(e)
		}
	case *expr.Tuple:
		for _, e := range x.Elements {
			a.visit(e)
		}
	case *expr.NamedTuple:
		for _, f := range x.Fields {
			a.visit(f.Value)
		}
	case *expr.Select:
		old := a.inSubquery
		a.inSubquery = true
		for _, al := range x.Aliases {
			a.visit(al.Expr)
		}
		a.visit(x.Result)
		a.visit(x.Where)
		for _, o := range x.OrderBy {
			a.visit(o.Path)
		}
		a.visit(x.Offset)
		a.visit(x.Limit)
		a.inSubquery = old
	case *expr.For:
		old := a.inSubquery
		a.inSubquery = true
		a.visit(x.Iterator)
		a.visit(x.Result)
		a.inSubquery = old
	default:
		// Literals (expr.Integer/Float/String/Bool) and any node kind the
		// analyzer doesn't recognize carry no path references; Eval
		// raises UnknownNodeError if the latter is ever actually
		// evaluated.
	}
}

func (a *analyzer) visitFuncOrOp(key expr.Key, args []expr.Node) {
	mods := expr.ModifiersFor(key, len(args))
	oldOptional, oldSubquery := a.inOptional, a.inSubquery
	for i, arg := range args {
		switch mods[i] {
		case expr.SetOf:
			a.inSubquery = true
		case expr.Optional:
			a.inOptional = true
		}
		a.visit(arg)
		a.inOptional, a.inSubquery = oldOptional, oldSubquery
	}
}

// AnalyzedPaths is the path analyzer's output: the direct (correlated)
// path references, the subquery (independently re-evaluated) references,
// and the optionality of every prefix of every direct path.
type AnalyzedPaths struct {
	Direct   []*expr.Path
	Subquery []*expr.Path
	required pathSet // prefixes proven NOT always-optional
}

// AlwaysOptional reports whether p's binding column may legitimately take
// a "missing" slot in an input tuple, i.e. whether every direct
// occurrence of p (as a prefix of some direct path) sat under an
// OPTIONAL position. A prefix that is never a direct-path prefix at all
// defaults to true, matching the reference model's
// `defaultdict(lambda: True)`.
func (a AnalyzedPaths) AlwaysOptional(p *expr.Path) bool {
	return !a.required.has(p)
}

// AnalyzePaths walks e (and, as subquery references, each of
// extraSubqueries — WHERE and every ORDER BY path, per spec.md §9's Open
// Question decision) and classifies every path reference it finds.
func AnalyzePaths(e expr.Node, extraSubqueries ...expr.Node) AnalyzedPaths {
	a := &analyzer{}
	a.visit(e)
	a.inSubquery = true
	for _, x := range extraSubqueries {
		a.visit(x)
	}

	required := newPathSet()
	var direct, subquery []*expr.Path
	for _, fp := range a.paths {
		if fp.subquery {
			subquery = append(subquery, fp.path)
			continue
		}
		direct = append(direct, fp.path)
		if !fp.optional {
			for n := 1; n <= len(fp.path.Elems); n++ {
				required.add(fp.path.Prefix(n))
			}
		}
	}
	return AnalyzedPaths{Direct: direct, Subquery: subquery, required: required}
}
