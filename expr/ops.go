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

import "strings"

// BinOp is a binary operator application: Left <Op> Right. Op is one of
// the binary names enumerated in BinaryOps (e.g. "+", "=", "??", "IN",
// "UNION"); the builtins table (builtin.go) determines how each operand
// is lifted.
type BinOp struct {
	Op    string
	Left  Node
	Right Node
}

func (b *BinOp) text(dst *strings.Builder, redact bool) {
	b.Left.text(dst, redact)
	dst.WriteByte(' ')
	dst.WriteString(b.Op)
	dst.WriteByte(' ')
	b.Right.text(dst, redact)
}

func (b *BinOp) Equals(x Node) bool {
	o, ok := x.(*BinOp)
	return ok && b.Op == o.Op && Equal(b.Left, o.Left) && Equal(b.Right, o.Right)
}

func (b *BinOp) walk(v Visitor) {
	Walk(v, b.Left)
	Walk(v, b.Right)
}

func (b *BinOp) rewrite(r Rewriter) Node {
	b.Left = Rewrite(r, b.Left)
	b.Right = Rewrite(r, b.Right)
	return b
}

// UnaryOp is a unary operator application: <Op> Operand.
type UnaryOp struct {
	Op      string
	Operand Node
}

func (u *UnaryOp) text(dst *strings.Builder, redact bool) {
	dst.WriteString(u.Op)
	dst.WriteByte(' ')
	u.Operand.text(dst, redact)
}

func (u *UnaryOp) Equals(x Node) bool {
	o, ok := x.(*UnaryOp)
	return ok && u.Op == o.Op && Equal(u.Operand, o.Operand)
}

func (u *UnaryOp) walk(v Visitor) {
	Walk(v, u.Operand)
}

func (u *UnaryOp) rewrite(r Rewriter) Node {
	u.Operand = Rewrite(r, u.Operand)
	return u
}

// TypeCast applies a named cast (one of the Casts names) to Expr.
type TypeCast struct {
	Type string
	Expr Node
}

func (t *TypeCast) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('<')
	dst.WriteString(t.Type)
	dst.WriteByte('>')
	t.Expr.text(dst, redact)
}

func (t *TypeCast) Equals(x Node) bool {
	o, ok := x.(*TypeCast)
	return ok && t.Type == o.Type && Equal(t.Expr, o.Expr)
}

func (t *TypeCast) walk(v Visitor) {
	Walk(v, t.Expr)
}

func (t *TypeCast) rewrite(r Rewriter) Node {
	t.Expr = Rewrite(r, t.Expr)
	return t
}

// FunctionCall is a named function application (one of the Funcs
// names), e.g. count(Person), enumerate({1,2,3}).
type FunctionCall struct {
	Func string
	Args []Node
}

func (f *FunctionCall) text(dst *strings.Builder, redact bool) {
	dst.WriteString(f.Func)
	dst.WriteByte('(')
	for i, a := range f.Args {
		if i > 0 {
			dst.WriteString(", ")
		}
		a.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (f *FunctionCall) Equals(x Node) bool {
	o, ok := x.(*FunctionCall)
	if !ok || f.Func != o.Func || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !Equal(f.Args[i], o.Args[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionCall) walk(v Visitor) {
	for _, a := range f.Args {
		Walk(v, a)
	}
}

func (f *FunctionCall) rewrite(r Rewriter) Node {
	for i, a := range f.Args {
		f.Args[i] = Rewrite(r, a)
	}
	return f
}

// IfElse is the ternary "IF Then ELSE Else" conditioned on Cond. Its
// argument order (Then, Cond, Else) matches the reference model's
// BASIS['IF'] = [SET_OF, SINGLETON, SET_OF] signature: Then and Else are
// SET OF (independent subqueries), Cond is SINGLETON.
type IfElse struct {
	Then Node
	Cond Node
	Else Node
}

func (i *IfElse) text(dst *strings.Builder, redact bool) {
	dst.WriteString("IF ")
	i.Cond.text(dst, redact)
	dst.WriteString(" THEN ")
	i.Then.text(dst, redact)
	dst.WriteString(" ELSE ")
	i.Else.text(dst, redact)
}

func (i *IfElse) Equals(x Node) bool {
	o, ok := x.(*IfElse)
	return ok && Equal(i.Then, o.Then) && Equal(i.Cond, o.Cond) && Equal(i.Else, o.Else)
}

func (i *IfElse) walk(v Visitor) {
	Walk(v, i.Then)
	Walk(v, i.Cond)
	Walk(v, i.Else)
}

func (i *IfElse) rewrite(r Rewriter) Node {
	i.Then = Rewrite(r, i.Then)
	i.Cond = Rewrite(r, i.Cond)
	i.Else = Rewrite(r, i.Else)
	return i
}
