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

import "math/rand"

// Rand is the seedable source behind the `random` builtin. spec.md §5
// asks only for reproducibility given a seed, not cryptographic
// strength, so this wraps math/rand rather than a CSPRNG.
type Rand struct {
	r *rand.Rand
}

// NewSeededRand returns a Rand whose sequence is fully determined by
// seed.
func NewSeededRand(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns the next value in [0, 1). A nil Rand (the zero value of
// Context.Rand) falls back to the unseeded package-level source.
func (r *Rand) Float64() float64 {
	if r == nil || r.r == nil {
		return rand.Float64()
	}
	return r.r.Float64()
}
