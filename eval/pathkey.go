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
	"golang.org/x/crypto/blake2b"

	"github.com/ciusji/edgedb/expr"
)

// pathKey is a structural-hash fingerprint of an expr.Path, used to
// bucket paths for near-O(1) membership testing (spec.md Design Notes:
// "implementations must provide structural hashing/equality"). Paths
// render to an unambiguous textual form via expr.ToString, so two
// structurally equal paths always hash identically.
type pathKey [32]byte

func keyFor(p *expr.Path) pathKey {
	return pathKey(blake2b.Sum256([]byte(expr.ToString(p))))
}

type pathEntry[V any] struct {
	path *expr.Path
	val  V
}

// pathMap is a map keyed by expr.Path structural equality. Lookups hash
// to a bucket and then confirm with Path.Equals, so a hash collision
// degrades to a short linear scan instead of silently merging two
// distinct paths.
type pathMap[V any] struct {
	buckets map[pathKey][]pathEntry[V]
}

func newPathMap[V any]() *pathMap[V] {
	return &pathMap[V]{buckets: make(map[pathKey][]pathEntry[V])}
}

func (m *pathMap[V]) get(p *expr.Path) (V, bool) {
	for _, e := range m.buckets[keyFor(p)] {
		if e.path.Equals(p) {
			return e.val, true
		}
	}
	var zero V
	return zero, false
}

func (m *pathMap[V]) set(p *expr.Path, v V) {
	k := keyFor(p)
	bucket := m.buckets[k]
	for i, e := range bucket {
		if e.path.Equals(p) {
			bucket[i].val = v
			return
		}
	}
	m.buckets[k] = append(bucket, pathEntry[V]{path: p, val: v})
}

// pathSet is a pathMap specialized to pure membership testing.
type pathSet struct {
	m *pathMap[struct{}]
}

func newPathSet() pathSet {
	return pathSet{m: newPathMap[struct{}]()}
}

func (s pathSet) add(p *expr.Path) { s.m.set(p, struct{}{}) }

func (s pathSet) has(p *expr.Path) bool {
	_, ok := s.m.get(p)
	return ok
}
