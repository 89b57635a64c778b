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

// Package expr defines the abstract syntax tree consumed by the evaluator:
// literals, set/tuple constructors, path expressions, operators, function
// calls, and the SELECT/FOR query forms. Parsing surface syntax into this
// tree is out of scope; Node values are expected to be constructed directly
// (by a parser living elsewhere, or by hand in tests).
package expr

import "strings"

// Visitor is satisfied by the argument to Walk.
//
// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the returned Visitor w is non-nil, Walk visits each child of node with w.
type Visitor interface {
	Visit(Node) Visitor
}

// Rewriter accepts a Node and returns a (possibly new) replacement.
type Rewriter interface {
	Rewrite(Node) Node
}

type nonleaf interface {
	walk(Visitor)
	rewrite(Rewriter) Node
}

// Walk traverses n in depth-first order, calling v.Visit for n and each of
// its descendants.
func Walk(v Visitor, n Node) {
	if n == nil || v == nil {
		return
	}
	w := v.Visit(n)
	if w == nil {
		return
	}
	if nl, ok := n.(nonleaf); ok {
		nl.walk(w)
	}
}

// Rewrite applies r to n and each of its descendants, bottom-up, and
// returns the (possibly replaced) result.
func Rewrite(r Rewriter, n Node) Node {
	if n == nil {
		return nil
	}
	if nl, ok := n.(nonleaf); ok {
		n = nl.rewrite(r)
	}
	return r.Rewrite(n)
}

// Node is the common interface implemented by every AST node.
type Node interface {
	// text renders the node as a debug string; used by error messages
	// and node equality diagnostics, not by any real printer (pretty-
	// printing of results is an external collaborator's job).
	text(dst *strings.Builder, redact bool)

	// Equals reports whether x is structurally identical to this node.
	Equals(x Node) bool
}

// ToString renders n for debugging and error messages.
func ToString(n Node) string {
	var b strings.Builder
	n.text(&b, false)
	return b.String()
}

// Equal reports whether a and b are both nil or structurally equal.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equals(b)
}
