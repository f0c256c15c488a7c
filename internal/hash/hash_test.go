/*
Copyright © 2018 the reliefsize authors.
This file is part of reliefsize.

reliefsize is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

reliefsize is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with reliefsize.  If not, see <http://www.gnu.org/licenses/>.
*/

package hash

import "testing"

type request struct {
	Name  string
	Value *float64
	Opts  map[string]int
}

func f(v float64) *float64 { return &v }

func TestKey(t *testing.T) {
	a := request{Name: "PSV-101", Value: f(1), Opts: map[string]int{"b": 2, "a": 1}}
	b := request{Name: "PSV-101", Value: f(1), Opts: map[string]int{"a": 1, "b": 2}}
	if Key(a, "gas") != Key(b, "gas") {
		t.Error("equal requests should have equal keys")
	}
	if Key(a, "gas") == Key(a, "liquid") {
		t.Error("different methods should have different keys")
	}
	zero := request{Name: "PSV-101", Value: f(0)}
	none := request{Name: "PSV-101"}
	if Key(zero) == Key(none) {
		t.Error("a nil pointer and a pointer to zero should have different keys")
	}
	if len(Key(a)) != 32 {
		t.Errorf("key %q should have 32 hex digits", Key(a))
	}
}
