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
	"fmt"

	"github.com/ciusji/edgedb/value"
)

func typeErrf(format string, args ...interface{}) error {
	return &TypeError{Msg: fmt.Sprintf(format, args...)}
}

func toFloat(v value.Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// compareValues orders a against b: numeric values compare by magnitude
// (promoting to float64 if either is a float), strings compare
// lexicographically, and bools compare false < true. Anything else is a
// TypeError (spec.md §7).
func compareValues(a, b value.Value) (int, error) {
	switch av := a.(type) {
	case int64, float64:
		af, _ := toFloat(a)
		bf, ok := toFloat(b)
		if !ok {
			return 0, typeErrf("cannot compare %T and %T", a, b)
		}
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, typeErrf("cannot compare %T and %T", a, b)
		}
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		default:
			return 0, nil
		}
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, typeErrf("cannot compare %T and %T", a, b)
		}
		ai, bi := 0, 0
		if av {
			ai = 1
		}
		if bv {
			bi = 1
		}
		return ai - bi, nil
	default:
		return 0, typeErrf("cannot compare %T and %T", a, b)
	}
}

func lessValue(a, b value.Value) (bool, error) {
	c, err := compareValues(a, b)
	return c < 0, err
}
