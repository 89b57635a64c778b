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

// Clean recursively replaces object references by their shape mapping,
// producing the presentation form of a result (spec.md §6): *ObjectRef ->
// its {id: id} shape, Tuple/NamedTuple/List -> themselves with every
// element cleaned, scalars pass through unchanged.
func Clean(v Value) Value {
	switch x := v.(type) {
	case *ObjectRef:
		return NamedTuple{Names: []string{"id"}, Values: []Value{x.ID.String()}}
	case Tuple:
		out := make(Tuple, len(x))
		for i, e := range x {
			out[i] = Clean(e)
		}
		return out
	case NamedTuple:
		out := make([]Value, len(x.Values))
		for i, e := range x.Values {
			out[i] = Clean(e)
		}
		return NamedTuple{Names: x.Names, Values: out}
	case List:
		out := make(List, len(x))
		for i, e := range x {
			out[i] = Clean(e)
		}
		return out
	default:
		return v
	}
}
