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

// Set is a set-display expression: {e1, ..., en}. Evaluates to the
// concatenation of each element's multiset.
type Set struct {
	Elements []Node
}

func (s *Set) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('{')
	for i, e := range s.Elements {
		if i > 0 {
			dst.WriteString(", ")
		}
		e.text(dst, redact)
	}
	dst.WriteByte('}')
}

func (s *Set) Equals(x Node) bool {
	o, ok := x.(*Set)
	if !ok || len(s.Elements) != len(o.Elements) {
		return false
	}
	for i := range s.Elements {
		if !Equal(s.Elements[i], o.Elements[i]) {
			return false
		}
	}
	return true
}

func (s *Set) walk(v Visitor) {
	for _, e := range s.Elements {
		Walk(v, e)
	}
}

func (s *Set) rewrite(r Rewriter) Node {
	for i, e := range s.Elements {
		s.Elements[i] = Rewrite(r, e)
	}
	return s
}

// Tuple is an ordered-tuple constructor: (e1, ..., en). Construction is
// element-wise lifted: the Cartesian product of each element's multiset.
type Tuple struct {
	Elements []Node
}

func (t *Tuple) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('(')
	for i, e := range t.Elements {
		if i > 0 {
			dst.WriteString(", ")
		}
		e.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (t *Tuple) Equals(x Node) bool {
	o, ok := x.(*Tuple)
	if !ok || len(t.Elements) != len(o.Elements) {
		return false
	}
	for i := range t.Elements {
		if !Equal(t.Elements[i], o.Elements[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) walk(v Visitor) {
	for _, e := range t.Elements {
		Walk(v, e)
	}
}

func (t *Tuple) rewrite(r Rewriter) Node {
	for i, e := range t.Elements {
		t.Elements[i] = Rewrite(r, e)
	}
	return t
}

// NamedField is one label:value pair of a NamedTuple.
type NamedField struct {
	Name  string
	Value Node
}

// NamedTuple is a named-tuple constructor: (a := e1, b := e2, ...).
// Construction is element-wise lifted the same way as Tuple.
type NamedTuple struct {
	Fields []NamedField
}

func (n *NamedTuple) text(dst *strings.Builder, redact bool) {
	dst.WriteByte('(')
	for i, f := range n.Fields {
		if i > 0 {
			dst.WriteString(", ")
		}
		dst.WriteString(f.Name)
		dst.WriteString(" := ")
		f.Value.text(dst, redact)
	}
	dst.WriteByte(')')
}

func (n *NamedTuple) Equals(x Node) bool {
	o, ok := x.(*NamedTuple)
	if !ok || len(n.Fields) != len(o.Fields) {
		return false
	}
	for i := range n.Fields {
		if n.Fields[i].Name != o.Fields[i].Name || !Equal(n.Fields[i].Value, o.Fields[i].Value) {
			return false
		}
	}
	return true
}

func (n *NamedTuple) walk(v Visitor) {
	for _, f := range n.Fields {
		Walk(v, f.Value)
	}
}

func (n *NamedTuple) rewrite(r Rewriter) Node {
	for i, f := range n.Fields {
		n.Fields[i].Value = Rewrite(r, f.Value)
	}
	return n
}
