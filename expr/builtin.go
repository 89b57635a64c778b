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

package expr

// Modifier is a per-argument cardinality annotation: how much of an
// argument's multiset a builtin's implementation receives at once.
type Modifier int

const (
	// Singleton arguments are element-wise lifted: the implementation
	// is invoked once per combination of the Cartesian product of all
	// Singleton argument multisets.
	Singleton Modifier = iota
	// SetOf arguments are evaluated as an independent subquery and
	// handed to the implementation as a single value (the whole
	// multiset).
	SetOf
	// Optional arguments are evaluated in the caller's context (not as a
	// subquery) and handed to the implementation as a zero-or-one
	// multiset.
	Optional
)

// Kind distinguishes the four builtin namespaces: spec.md keys the
// builtins table by (kind, name).
type Kind int

const (
	KindBinOp Kind = iota
	KindUnOp
	KindCast
	KindFunc
)

func (k Kind) String() string {
	switch k {
	case KindBinOp:
		return "binop"
	case KindUnOp:
		return "unop"
	case KindCast:
		return "cast"
	case KindFunc:
		return "func"
	default:
		return "?"
	}
}

// Key identifies one builtin within the table.
type Key struct {
	Kind Kind
	Name string
}

// modifiers lists, for each builtin whose argument modifiers are not all
// Singleton, the modifier of every argument position. Builtins absent
// from this table (the ordinary arithmetic/comparison operators, casts,
// and most functions) are entirely Singleton/element-wise, which is the
// common case and so is left as an implicit default rather than listed
// out — exactly the reference model's BASIS dict, which "just lists
// things with weird behavior".
var modifiers = map[Key][]Modifier{
	{KindFunc, "count"}:      {SetOf},
	{KindFunc, "sum"}:        {SetOf},
	{KindFunc, "min"}:        {SetOf},
	{KindFunc, "max"}:        {SetOf},
	{KindFunc, "all"}:        {SetOf},
	{KindFunc, "any"}:        {SetOf},
	{KindFunc, "enumerate"}:  {SetOf},
	{KindBinOp, "IN"}:        {Singleton, SetOf},
	{KindBinOp, "??"}:        {Optional, SetOf},
	{KindUnOp, "EXISTS"}:     {SetOf},
	{KindUnOp, "DISTINCT"}:   {SetOf},
	{KindBinOp, "IF"}:        {SetOf, Singleton, SetOf},
	{KindBinOp, "UNION"}:     {SetOf, SetOf},
	{KindBinOp, "?="}:        {Optional, Optional},
	{KindBinOp, "?!="}:       {Optional, Optional},
}

// ModifiersFor returns the per-argument modifier for each of the arity
// argument positions of the builtin identified by key. Positions beyond
// what the table lists (or builtins absent from the table entirely)
// default to Singleton.
func ModifiersFor(key Key, arity int) []Modifier {
	out := make([]Modifier, arity)
	if listed, ok := modifiers[key]; ok {
		n := len(listed)
		if n > arity {
			n = arity
		}
		copy(out, listed[:n])
	}
	return out
}

// KnownArity reports the argument-count the table expects for key, and
// whether key appears in the table at all. A builtin with a listed
// signature that is called with a different number of arguments is an
// ArityMismatch (spec §7); builtins absent from the table impose no
// arity constraint here (their Go AST node shape already fixes their
// arity, e.g. BinOp always has exactly two operands).
func KnownArity(key Key) (arity int, known bool) {
	listed, ok := modifiers[key]
	return len(listed), ok
}

// Required binary, unary, cast, and function names (spec.md §4.2). These
// are documentation of the supported surface, not an enforced whitelist:
// the evaluator's builtin dispatch table (eval/builtins_impl.go) is what
// actually determines which names are callable.
var (
	BinaryOps = []string{
		"+", "-", "*", "/", "//", "%", "++",
		"=", "!=", "<", "<=", ">", ">=", "^",
		"OR", "AND", "?=", "?!=", "IN", "??", "UNION", "IF",
	}
	UnaryOps = []string{"-", "+", "NOT", "EXISTS", "DISTINCT"}
	Casts    = []string{"str", "int32", "int64"}
	Funcs    = []string{
		"enumerate", "count", "sum", "min", "max", "all", "any",
		"len", "random", "contains", "round",
	}
)
