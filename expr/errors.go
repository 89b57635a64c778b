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

import "fmt"

// TypeError is raised when an element-wise operation is applied to
// operand values it cannot make sense of (arithmetic on strings, etc.),
// mirroring the teacher's expr.TypeError shape (spec.md §7).
type TypeError struct {
	At  Node
	Msg string
}

func (t *TypeError) Error() string {
	if t.At == nil {
		return t.Msg
	}
	return fmt.Sprintf("%q is ill-typed: %s", ToString(t.At), t.Msg)
}

// SyntaxError is raised for AST shapes the evaluator has no handler for,
// mirroring the teacher's expr.SyntaxError.
type SyntaxError struct {
	At  Node
	Msg string
}

func (s *SyntaxError) Error() string {
	if s.At != nil {
		return fmt.Sprintf("%q %s", ToString(s.At), s.Msg)
	}
	return s.Msg
}
