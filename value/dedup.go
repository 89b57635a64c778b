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

package value

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/dchest/siphash"
)

// dedup key constants: arbitrary fixed 64-bit words, not a security
// boundary, just two keys for the siphash membership table below.
const dedupK0, dedupK1 = 0x5bd1e9955bd1e995, 0x27d4eb2f27d4eb2f

// Dedup returns xs with duplicates removed, preserving first-seen order
// (spec.md §4.1, Design Notes: "stable, in-order deduplication"; backs
// both path-navigation object-ref dedup and the DISTINCT builtin). A
// siphash content hash buckets candidates for O(1) average membership
// testing, but the emitted order always follows the original scan and
// every candidate is confirmed with Equal before being treated as a
// duplicate, so correctness never depends on the hash being
// collision-free.
func Dedup(xs []Value) []Value {
	seen := make(map[uint64][]Value, len(xs))
	out := make([]Value, 0, len(xs))
	for _, x := range xs {
		h := contentHash(x)
		bucket := seen[h]
		dup := false
		for _, y := range bucket {
			if Equal(x, y) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(bucket, x)
		out = append(out, x)
	}
	return out
}

func contentHash(v Value) uint64 {
	return siphash.Hash(dedupK0, dedupK1, contentBytes(v))
}

func contentBytes(v Value) []byte {
	switch x := v.(type) {
	case *ObjectRef:
		b, err := x.ID.MarshalBinary()
		if err != nil {
			return []byte("o:" + x.ID.String())
		}
		return append([]byte{'o'}, b...)
	case int64:
		buf := make([]byte, 9)
		buf[0] = 'i'
		binary.LittleEndian.PutUint64(buf[1:], uint64(x))
		return buf
	case float64:
		buf := make([]byte, 9)
		buf[0] = 'f'
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(x))
		return buf
	case string:
		return append([]byte{'s'}, []byte(x)...)
	case bool:
		if x {
			return []byte{'b', 1}
		}
		return []byte{'b', 0}
	default:
		// Tuple, NamedTuple, List, and the Missing marker fall back to a
		// textual hash key; these never need to be fast, only correct.
		return []byte(fmt.Sprintf("%T:%v", v, v))
	}
}
