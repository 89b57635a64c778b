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

// Direction is the orientation of a Ptr path element.
type Direction int

const (
	// Forward follows a property/link from its source object.
	Forward Direction = iota
	// Backward follows a property/link from its target back to sources.
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "<"
	}
	return "."
}

// Elem is one step of a Path. The concrete variants are Partial, ExprElem,
// ObjRefElem, Ptr, and TypeIntersection.
type Elem interface {
	elemEquals(Elem) bool
	elemText(dst *strings.Builder, redact bool)
}

// Partial is the implicit leading "." inside a shape/clause body.
type Partial struct{}

func (Partial) elemEquals(e Elem) bool { _, ok := e.(Partial); return ok }
func (Partial) elemText(dst *strings.Builder, redact bool) {
	dst.WriteByte('.')
}

// ExprElem anchors a path at a parenthesized sub-expression.
type ExprElem struct{ Inner Node }

func (e ExprElem) elemEquals(x Elem) bool {
	o, ok := x.(ExprElem)
	return ok && Equal(e.Inner, o.Inner)
}

func (e ExprElem) elemText(dst *strings.Builder, redact bool) {
	dst.WriteByte('(')
	e.Inner.text(dst, redact)
	dst.WriteByte(')')
}

// ObjRefElem anchors a path at a named object set: a type name, or an
// alias bound by a WITH-style clause or FOR iterator.
type ObjRefElem struct{ Name string }

func (o ObjRefElem) elemEquals(x Elem) bool {
	o2, ok := x.(ObjRefElem)
	return ok && o == o2
}

func (o ObjRefElem) elemText(dst *strings.Builder, redact bool) {
	dst.WriteString(o.Name)
}

// Ptr follows a property or link, forward or backward.
type Ptr struct {
	Name      string
	Direction Direction
}

func (p Ptr) elemEquals(x Elem) bool {
	p2, ok := x.(Ptr)
	return ok && p == p2
}

func (p Ptr) elemText(dst *strings.Builder, redact bool) {
	dst.WriteString(p.Direction.String())
	dst.WriteString(p.Name)
}

// TypeIntersection filters the base value down to objects of exactly the
// named concrete type.
type TypeIntersection struct{ TypeName string }

func (t TypeIntersection) elemEquals(x Elem) bool {
	t2, ok := x.(TypeIntersection)
	return ok && t == t2
}

func (t TypeIntersection) elemText(dst *strings.Builder, redact bool) {
	dst.WriteString("[IS ")
	dst.WriteString(t.TypeName)
	dst.WriteByte(']')
}

// Path is a non-empty ordered sequence of path elements. Path equality is
// structural (see Elem.elemEquals on each step), which is what the Query
// Input List builder relies on for longest-common-prefix computation.
type Path struct {
	Elems []Elem
}

// NewPath builds a Path from its elements. The first element must be one
// of Partial, ExprElem, or ObjRefElem; callers that only have subsequent
// Ptr/TypeIntersection steps should start from an existing Path and use
// Append.
func NewPath(first Elem, rest ...Elem) *Path {
	return &Path{Elems: append([]Elem{first}, rest...)}
}

// Append returns a new Path with step appended; the receiver's element
// slice is not mutated in place so that shared prefixes between distinct
// Path values stay independent.
func (p *Path) Append(step Elem) *Path {
	out := make([]Elem, len(p.Elems)+1)
	copy(out, p.Elems)
	out[len(p.Elems)] = step
	return &Path{Elems: out}
}

// Prefix returns the first n elements of p as a new Path. n must be in
// [1, len(p.Elems)].
func (p *Path) Prefix(n int) *Path {
	out := make([]Elem, n)
	copy(out, p.Elems[:n])
	return &Path{Elems: out}
}

// CommonPrefix returns the longest common prefix of a and b as a new
// Path, or nil if they share no nonempty prefix. This is the primitive
// the Query Input List builder uses to find correlation points between
// path references (spec.md §4.4).
func CommonPrefix(a, b *Path) *Path {
	n := len(a.Elems)
	if len(b.Elems) < n {
		n = len(b.Elems)
	}
	i := 0
	for i < n && a.Elems[i].elemEquals(b.Elems[i]) {
		i++
	}
	if i == 0 {
		return nil
	}
	return a.Prefix(i)
}

// Equals implements Node.
func (p *Path) Equals(x Node) bool {
	o, ok := x.(*Path)
	if !ok || len(p.Elems) != len(o.Elems) {
		return false
	}
	for i := range p.Elems {
		if !p.Elems[i].elemEquals(o.Elems[i]) {
			return false
		}
	}
	return true
}

func (p *Path) text(dst *strings.Builder, redact bool) {
	for i, e := range p.Elems {
		if i > 0 {
			if _, ok := e.(Ptr); !ok {
				if _, ok := e.(TypeIntersection); !ok {
					dst.WriteByte('.')
				}
			}
		}
		e.elemText(dst, redact)
	}
}

func (p *Path) walk(v Visitor) {
	for _, e := range p.Elems {
		if ee, ok := e.(ExprElem); ok {
			Walk(v, ee.Inner)
		}
	}
}

func (p *Path) rewrite(r Rewriter) Node {
	for i, e := range p.Elems {
		if ee, ok := e.(ExprElem); ok {
			p.Elems[i] = ExprElem{Inner: Rewrite(r, ee.Inner)}
		}
	}
	return p
}
