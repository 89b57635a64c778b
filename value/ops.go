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

import "strings"

// Contains reports whether item occurs in container: substring search for
// strings, element membership for List/Tuple. Backs the `contains`
// builtin (spec.md §4.2, §9 supplemented features), which is literally
// operator.contains element-wise lifted in the reference model.
func Contains(container, item Value) bool {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		return ok && strings.Contains(c, s)
	case List:
		for _, e := range c {
			if Equal(e, item) {
				return true
			}
		}
		return false
	case Tuple:
		for _, e := range c {
			if Equal(e, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Len returns the length of a string, List, or Tuple value, and whether v
// was one of those kinds.
func Len(v Value) (int64, bool) {
	switch x := v.(type) {
	case string:
		return int64(len(x)), true
	case List:
		return int64(len(x)), true
	case Tuple:
		return int64(len(x)), true
	default:
		return 0, false
	}
}
