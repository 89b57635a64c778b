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

// Package eval is the recursive interpreter: the path analyzer, the query
// input list builder, and the expression/SELECT/FOR evaluator that
// together realize the language's set semantics over a value.Database
// (spec.md §4-§5).
package eval

import (
	"fmt"

	"github.com/ciusji/edgedb/expr"
)

// TypeError is raised when an element-wise operation is applied to
// operand values it cannot make sense of (arithmetic on strings, an
// ORDER BY key of incomparable type, and so on). It reuses expr's
// runtime error shape rather than inventing a second one (spec.md §7).
type TypeError = expr.TypeError

// UnknownNodeError reports an AST node kind the evaluator has no handler
// for (spec.md §7).
type UnknownNodeError struct {
	Node expr.Node
}

func (e *UnknownNodeError) Error() string {
	if e.Node == nil {
		return "unknown node: <nil>"
	}
	return fmt.Sprintf("no evaluator handler for %q", expr.ToString(e.Node))
}

// UnknownBuiltinError reports an operator/function/cast name absent from
// the builtins table (spec.md §7).
type UnknownBuiltinError struct {
	Key expr.Key
}

func (e *UnknownBuiltinError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Key.Kind, e.Key.Name)
}

// ArityMismatchError reports an argument count mismatch against a
// builtin's declared modifier list (spec.md §7).
type ArityMismatchError struct {
	Key  expr.Key
	Got  int
	Want int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s %q expects %d argument(s), got %d", e.Key.Kind, e.Key.Name, e.Want, e.Got)
}

// CardinalityViolationError reports a clause (OFFSET, LIMIT, a sort key)
// that produced more values than it was allowed to (spec.md §7).
type CardinalityViolationError struct {
	Where string
	Got   int
}

func (e *CardinalityViolationError) Error() string {
	return fmt.Sprintf("%s expected at most one value, got %d", e.Where, e.Got)
}
