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

import "testing"

func TestModifiersForDefaultsToSingleton(t *testing.T) {
	mods := ModifiersFor(Key{Kind: KindBinOp, Name: "+"}, 2)
	for i, m := range mods {
		if m != Singleton {
			t.Fatalf("arg %d: want Singleton, got %v", i, m)
		}
	}
}

func TestModifiersForListed(t *testing.T) {
	mods := ModifiersFor(Key{Kind: KindBinOp, Name: "??"}, 2)
	if mods[0] != Optional || mods[1] != SetOf {
		t.Fatalf("?? modifiers = %v, want [Optional SetOf]", mods)
	}
}

func TestModifiersForIfElse(t *testing.T) {
	mods := ModifiersFor(Key{Kind: KindBinOp, Name: "IF"}, 3)
	want := []Modifier{SetOf, Singleton, SetOf}
	for i := range want {
		if mods[i] != want[i] {
			t.Fatalf("IF modifiers = %v, want %v", mods, want)
		}
	}
}

func TestKnownArity(t *testing.T) {
	if n, ok := KnownArity(Key{Kind: KindFunc, Name: "count"}); !ok || n != 1 {
		t.Fatalf("count: arity=%d known=%v, want 1,true", n, ok)
	}
	if _, ok := KnownArity(Key{Kind: KindBinOp, Name: "+"}); ok {
		t.Fatal("+ should not be in the listed-arity table")
	}
}
