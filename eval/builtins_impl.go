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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ciusji/edgedb/expr"
	"github.com/ciusji/edgedb/value"
)

// builtinFunc is the lifted implementation stored in the builtins table:
// it receives one Multiset per argument position (already evaluated
// per its cardinality modifier by evalFuncOrOp) and returns the result
// multiset.
type builtinFunc func(args []Multiset, ctx Context) (Multiset, error)

// scalarFunc is a single-combination element-wise operation; lift turns
// one into a builtinFunc by running it over the Cartesian product of its
// argument multisets (spec.md §4.2's "element-wise lift").
type scalarFunc func(ctx Context, args []value.Value) (value.Value, error)

func lift(n int, f scalarFunc) builtinFunc {
	return func(args []Multiset, ctx Context) (Multiset, error) {
		if len(args) != n {
			return nil, &ArityMismatchError{Got: len(args), Want: n}
		}
		var out Multiset
		var callErr error
		cartesian(args, func(combo []value.Value) {
			if callErr != nil {
				return
			}
			v, err := f(ctx, combo)
			if err != nil {
				callErr = err
				return
			}
			out = append(out, v)
		})
		if callErr != nil {
			return nil, callErr
		}
		return out, nil
	}
}

// liftSetOf turns a whole-multiset aggregate into a one-argument
// builtinFunc that always yields exactly one value (spec.md §4.2's
// "set-of lift").
func liftSetOf(f func(Multiset) (value.Value, error)) builtinFunc {
	return func(args []Multiset, ctx Context) (Multiset, error) {
		if len(args) != 1 {
			return nil, &ArityMismatchError{Got: len(args), Want: 1}
		}
		v, err := f(args[0])
		if err != nil {
			return nil, err
		}
		return Multiset{v}, nil
	}
}

func arithNumeric(a, b value.Value, iop func(x, y int64) (int64, error), fop func(x, y float64) (float64, error)) (value.Value, error) {
	if ai, ok := a.(int64); ok {
		if bi, ok := b.(int64); ok {
			v, err := iop(ai, bi)
			if err != nil {
				return nil, err
			}
			return v, nil
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if !aok || !bok {
		return nil, typeErrf("unsupported operand types %T and %T", a, b)
	}
	v, err := fop(af, bf)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func addValues(_ Context, args []value.Value) (value.Value, error) {
	if as, ok := args[0].(string); ok {
		bs, ok := args[1].(string)
		if !ok {
			return nil, typeErrf("cannot concatenate %T and %T", args[0], args[1])
		}
		return as + bs, nil
	}
	return arithNumeric(args[0], args[1],
		func(x, y int64) (int64, error) { return x + y, nil },
		func(x, y float64) (float64, error) { return x + y, nil })
}

func subValues(_ Context, args []value.Value) (value.Value, error) {
	return arithNumeric(args[0], args[1],
		func(x, y int64) (int64, error) { return x - y, nil },
		func(x, y float64) (float64, error) { return x - y, nil })
}

func mulValues(_ Context, args []value.Value) (value.Value, error) {
	return arithNumeric(args[0], args[1],
		func(x, y int64) (int64, error) { return x * y, nil },
		func(x, y float64) (float64, error) { return x * y, nil })
}

func divValues(_ Context, args []value.Value) (value.Value, error) {
	af, aok := toFloat(args[0])
	bf, bok := toFloat(args[1])
	if !aok || !bok {
		return nil, typeErrf("unsupported operand types %T and %T", args[0], args[1])
	}
	if bf == 0 {
		return nil, typeErrf("division by zero")
	}
	return af / bf, nil
}

func floorDivInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, typeErrf("division by zero")
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, nil
}

func floorDivValues(_ Context, args []value.Value) (value.Value, error) {
	return arithNumeric(args[0], args[1],
		floorDivInt,
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, typeErrf("division by zero")
			}
			return math.Floor(x / y), nil
		})
}

func floorModInt(a, b int64) (int64, error) {
	if b == 0 {
		return 0, typeErrf("modulo by zero")
	}
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m, nil
}

func modValues(_ Context, args []value.Value) (value.Value, error) {
	return arithNumeric(args[0], args[1],
		floorModInt,
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, typeErrf("modulo by zero")
			}
			m := math.Mod(x, y)
			if m != 0 && (m < 0) != (y < 0) {
				m += y
			}
			return m, nil
		})
}

func powValues(_ Context, args []value.Value) (value.Value, error) {
	af, aok := toFloat(args[0])
	bf, bok := toFloat(args[1])
	if !aok || !bok {
		return nil, typeErrf("unsupported operand types %T and %T", args[0], args[1])
	}
	return math.Pow(af, bf), nil
}

func eqValues(_ Context, args []value.Value) (value.Value, error) {
	return value.Equal(args[0], args[1]), nil
}

func neValues(_ Context, args []value.Value) (value.Value, error) {
	return !value.Equal(args[0], args[1]), nil
}

func cmpValues(op func(int) bool) scalarFunc {
	return func(_ Context, args []value.Value) (value.Value, error) {
		c, err := compareValues(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return op(c), nil
	}
}

func boolArgs(args []value.Value) (bool, bool, bool) {
	a, ok1 := args[0].(bool)
	b, ok2 := args[1].(bool)
	return a, b, ok1 && ok2
}

func orValues(_ Context, args []value.Value) (value.Value, error) {
	a, b, ok := boolArgs(args)
	if !ok {
		return nil, typeErrf("OR requires boolean operands, got %T and %T", args[0], args[1])
	}
	return a || b, nil
}

func andValues(_ Context, args []value.Value) (value.Value, error) {
	a, b, ok := boolArgs(args)
	if !ok {
		return nil, typeErrf("AND requires boolean operands, got %T and %T", args[0], args[1])
	}
	return a && b, nil
}

func negValues(_ Context, args []value.Value) (value.Value, error) {
	switch x := args[0].(type) {
	case int64:
		return -x, nil
	case float64:
		return -x, nil
	default:
		return nil, typeErrf("unsupported operand type for unary -: %T", args[0])
	}
}

func posValues(_ Context, args []value.Value) (value.Value, error) {
	switch args[0].(type) {
	case int64, float64:
		return args[0], nil
	default:
		return nil, typeErrf("unsupported operand type for unary +: %T", args[0])
	}
}

func notValues(_ Context, args []value.Value) (value.Value, error) {
	b, ok := args[0].(bool)
	if !ok {
		return nil, typeErrf("NOT requires a boolean operand, got %T", args[0])
	}
	return !b, nil
}

func formatValue(v value.Value) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *value.ObjectRef:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

func strCast(_ Context, args []value.Value) (value.Value, error) {
	return formatValue(args[0]), nil
}

func toInt(v value.Value) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, typeErrf("cannot cast %q to int", x)
		}
		return n, nil
	default:
		return 0, typeErrf("cannot cast %T to int", v)
	}
}

func intCast(_ Context, args []value.Value) (value.Value, error) {
	return toInt(args[0])
}

func lenScalar(_ Context, args []value.Value) (value.Value, error) {
	n, ok := value.Len(args[0])
	if !ok {
		return nil, typeErrf("len() unsupported for %T", args[0])
	}
	return n, nil
}

func containsScalar(_ Context, args []value.Value) (value.Value, error) {
	return value.Contains(args[0], args[1]), nil
}

func roundScalar(_ Context, args []value.Value) (value.Value, error) {
	f, ok := toFloat(args[0])
	if !ok {
		return nil, typeErrf("round() unsupported for %T", args[0])
	}
	return int64(math.RoundToEven(f)), nil
}

func randomScalar(ctx Context, _ []value.Value) (value.Value, error) {
	return ctx.Rand.Float64(), nil
}

func countImpl(m Multiset) (value.Value, error) { return int64(len(m)), nil }

func sumImpl(m Multiset) (value.Value, error) {
	if len(m) == 0 {
		return int64(0), nil
	}
	allInt := true
	var isum int64
	var fsum float64
	for _, v := range m {
		switch x := v.(type) {
		case int64:
			isum += x
			fsum += float64(x)
		case float64:
			allInt = false
			fsum += x
		default:
			return nil, typeErrf("sum() unsupported for %T", v)
		}
	}
	if allInt {
		return isum, nil
	}
	return fsum, nil
}

func minImpl(m Multiset) (value.Value, error) {
	if len(m) == 0 {
		return nil, typeErrf("min() of an empty set")
	}
	best := m[0]
	for _, v := range m[1:] {
		lt, err := lessValue(v, best)
		if err != nil {
			return nil, err
		}
		if lt {
			best = v
		}
	}
	return best, nil
}

func maxImpl(m Multiset) (value.Value, error) {
	if len(m) == 0 {
		return nil, typeErrf("max() of an empty set")
	}
	best := m[0]
	for _, v := range m[1:] {
		gt, err := lessValue(best, v)
		if err != nil {
			return nil, err
		}
		if gt {
			best = v
		}
	}
	return best, nil
}

func allImpl(m Multiset) (value.Value, error) {
	for _, v := range m {
		if !value.Truthy(v) {
			return false, nil
		}
	}
	return true, nil
}

func anyImpl(m Multiset) (value.Value, error) {
	for _, v := range m {
		if value.Truthy(v) {
			return true, nil
		}
	}
	return false, nil
}

func enumerateOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Got: len(args), Want: 1}
	}
	out := make(Multiset, len(args[0]))
	for i, v := range args[0] {
		out[i] = value.Tuple{int64(i), v}
	}
	return out, nil
}

func distinctOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Got: len(args), Want: 1}
	}
	return value.Dedup(args[0]), nil
}

func existsOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 1 {
		return nil, &ArityMismatchError{Got: len(args), Want: 1}
	}
	return Multiset{len(args[0]) > 0}, nil
}

func unionOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Got: len(args), Want: 2}
	}
	out := make(Multiset, 0, len(args[0])+len(args[1]))
	out = append(out, args[0]...)
	out = append(out, args[1]...)
	return out, nil
}

func coalesceOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Got: len(args), Want: 2}
	}
	if len(args[0]) > 0 {
		return args[0], nil
	}
	return args[1], nil
}

func inOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Got: len(args), Want: 2}
	}
	left, right := args[0], args[1]
	out := make(Multiset, len(left))
	for i, e := range left {
		found := false
		for _, r := range right {
			if value.Equal(e, r) {
				found = true
				break
			}
		}
		out[i] = found
	}
	return out, nil
}

func ifElseOp(args []Multiset, _ Context) (Multiset, error) {
	if len(args) != 3 {
		return nil, &ArityMismatchError{Got: len(args), Want: 3}
	}
	thenSet, condSet, elseSet := args[0], args[1], args[2]
	var out Multiset
	for _, c := range condSet {
		b, ok := c.(bool)
		if !ok {
			return nil, typeErrf("IF condition must be boolean, got %T", c)
		}
		if b {
			out = append(out, thenSet...)
		} else {
			out = append(out, elseSet...)
		}
	}
	return out, nil
}

func optEq(args []Multiset, ctx Context) (Multiset, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Got: len(args), Want: 2}
	}
	x, y := args[0], args[1]
	if len(x) == 0 || len(y) == 0 {
		return Multiset{len(x) == len(y)}, nil
	}
	return lift(2, eqValues)(args, ctx)
}

func optNe(args []Multiset, ctx Context) (Multiset, error) {
	if len(args) != 2 {
		return nil, &ArityMismatchError{Got: len(args), Want: 2}
	}
	x, y := args[0], args[1]
	if len(x) == 0 || len(y) == 0 {
		return Multiset{len(x) != len(y)}, nil
	}
	return lift(2, neValues)(args, ctx)
}

// builtinImpls is the evaluator's builtins table (spec.md §4.2): a
// static registry keyed by (kind, name), each entry a lifted
// implementation. The per-argument cardinality modifiers that determine
// how evalFuncOrOp evaluates each argument before calling into this
// table live separately, in expr.ModifiersFor.
var builtinImpls = map[expr.Key]builtinFunc{
	{Kind: expr.KindBinOp, Name: "+"}:  lift(2, addValues),
	{Kind: expr.KindBinOp, Name: "-"}:  lift(2, subValues),
	{Kind: expr.KindBinOp, Name: "*"}:  lift(2, mulValues),
	{Kind: expr.KindBinOp, Name: "/"}:  lift(2, divValues),
	{Kind: expr.KindBinOp, Name: "//"}: lift(2, floorDivValues),
	{Kind: expr.KindBinOp, Name: "%"}:  lift(2, modValues),
	{Kind: expr.KindBinOp, Name: "++"}: lift(2, addValues),
	{Kind: expr.KindBinOp, Name: "="}:  lift(2, eqValues),
	{Kind: expr.KindBinOp, Name: "!="}: lift(2, neValues),
	{Kind: expr.KindBinOp, Name: "<"}:  lift(2, cmpValues(func(c int) bool { return c < 0 })),
	{Kind: expr.KindBinOp, Name: "<="}: lift(2, cmpValues(func(c int) bool { return c <= 0 })),
	{Kind: expr.KindBinOp, Name: ">"}:  lift(2, cmpValues(func(c int) bool { return c > 0 })),
	{Kind: expr.KindBinOp, Name: ">="}: lift(2, cmpValues(func(c int) bool { return c >= 0 })),
	{Kind: expr.KindBinOp, Name: "^"}:  lift(2, powValues),
	{Kind: expr.KindBinOp, Name: "OR"}:  lift(2, orValues),
	{Kind: expr.KindBinOp, Name: "AND"}: lift(2, andValues),
	{Kind: expr.KindBinOp, Name: "?="}:  optEq,
	{Kind: expr.KindBinOp, Name: "?!="}: optNe,
	{Kind: expr.KindBinOp, Name: "IN"}:    inOp,
	{Kind: expr.KindBinOp, Name: "??"}:    coalesceOp,
	{Kind: expr.KindBinOp, Name: "UNION"}: unionOp,
	{Kind: expr.KindBinOp, Name: "IF"}:    ifElseOp,

	{Kind: expr.KindUnOp, Name: "-"}:        lift(1, negValues),
	{Kind: expr.KindUnOp, Name: "+"}:        lift(1, posValues),
	{Kind: expr.KindUnOp, Name: "NOT"}:      lift(1, notValues),
	{Kind: expr.KindUnOp, Name: "EXISTS"}:   existsOp,
	{Kind: expr.KindUnOp, Name: "DISTINCT"}: distinctOp,

	{Kind: expr.KindCast, Name: "str"}:   lift(1, strCast),
	{Kind: expr.KindCast, Name: "int32"}: lift(1, intCast),
	{Kind: expr.KindCast, Name: "int64"}: lift(1, intCast),

	{Kind: expr.KindFunc, Name: "enumerate"}: enumerateOp,
	{Kind: expr.KindFunc, Name: "count"}:     liftSetOf(countImpl),
	{Kind: expr.KindFunc, Name: "sum"}:       liftSetOf(sumImpl),
	{Kind: expr.KindFunc, Name: "min"}:       liftSetOf(minImpl),
	{Kind: expr.KindFunc, Name: "max"}:       liftSetOf(maxImpl),
	{Kind: expr.KindFunc, Name: "all"}:       liftSetOf(allImpl),
	{Kind: expr.KindFunc, Name: "any"}:       liftSetOf(anyImpl),
	{Kind: expr.KindFunc, Name: "len"}:       lift(1, lenScalar),
	{Kind: expr.KindFunc, Name: "random"}:    lift(0, randomScalar),
	{Kind: expr.KindFunc, Name: "contains"}:  lift(2, containsScalar),
	{Kind: expr.KindFunc, Name: "round"}:     lift(1, roundScalar),
}
