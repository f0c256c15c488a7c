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

package reliefsize

import (
	"math"
	"testing"
)

func different(a, b, tolerance float64) bool {
	if a == b {
		return false
	}
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestCriticalPressureRatio(t *testing.T) {
	if r := CriticalPressureRatio(1.4); different(r, 0.528282, 1.e-5) {
		t.Errorf("k = 1.4: have %g, want 0.528282", r)
	}
	for _, k := range []float64{1, 0.9, 0, -1} {
		if r := CriticalPressureRatio(k); r != 0.5 {
			t.Errorf("k = %g: have %g, want 0.5", k, r)
		}
	}
}

func TestIsCriticalFlow(t *testing.T) {
	const k = 1.3
	p1 := 200.
	pcf := CriticalFlowPressure(p1, k)
	if !IsCriticalFlow(p1, pcf, k) {
		t.Error("flow at exactly the critical flow pressure should be critical")
	}
	if IsCriticalFlow(p1, pcf*1.0001, k) {
		t.Error("flow above the critical flow pressure should not be critical")
	}
	for _, p2 := range []float64{14.696, 50, 100} {
		if !IsCriticalFlow(p1, p2, k) {
			t.Errorf("P2 = %g should be critical", p2)
		}
	}
}

func TestCapacityCoefficient(t *testing.T) {
	if c := CapacityCoefficient(1.4); different(c, 356.06, 1.e-4) {
		t.Errorf("k = 1.4: have %g, want 356.06", c)
	}
	if c := CapacityCoefficient(1); c != 315 {
		t.Errorf("k = 1: have %g, want 315", c)
	}
	// C increases with k.
	prev := 0.
	for k := 1.01; k < 2; k += 0.01 {
		c := CapacityCoefficient(k)
		if c <= prev {
			t.Errorf("C(%g) = %g is not greater than %g", k, c, prev)
		}
		prev = c
	}
}

func TestSubcriticalFactor(t *testing.T) {
	for _, r := range []float64{0, 1, 1.5, -0.2} {
		if f := SubcriticalFactor(1.3, r); f != 1 {
			t.Errorf("r = %g: have %g, want 1", r, f)
		}
	}
	if f := SubcriticalFactor(1, 0.7); f != 1 {
		t.Errorf("k = 1: have %g, want 1", f)
	}
	if f := SubcriticalFactor(1.3, 0.7516458); different(f, 0.846782, 1.e-5) {
		t.Errorf("have %g, want 0.846782", f)
	}
}

func TestGasBackpressureCorrection(t *testing.T) {
	tests := []struct {
		ratio float64
		v     ValveType
		want  float64
	}{
		{ratio: 0.6, v: Conventional, want: 1},
		{ratio: 0.6, v: PilotOperated, want: 1},
		{ratio: 0.2, v: BalancedBellows, want: 1},
		{ratio: 0.3, v: BalancedBellows, want: 1},
		{ratio: 0.4, v: BalancedBellows, want: 0.85},
		{ratio: 0.5, v: BalancedBellows, want: 0.7},
		{ratio: 0.9, v: BalancedBellows, want: 0.7},
	}
	for _, test := range tests {
		if kb := GasBackpressureCorrection(test.ratio, test.v); different(kb, test.want, 1.e-12) {
			t.Errorf("%s at %g: have %g, want %g", test.v, test.ratio, kb, test.want)
		}
	}
}

func TestLiquidBackpressureCorrection(t *testing.T) {
	const ps = 1000.
	for _, pct := range []float64{0, 5, 15} {
		if kw := LiquidBackpressureCorrection(pct/100*ps, ps, BalancedBellows); kw != 1 {
			t.Errorf("%g%%: have %g, want 1", pct, kw)
		}
	}
	for _, pct := range []float64{50, 60, 100} {
		if kw := LiquidBackpressureCorrection(pct/100*ps, ps, BalancedBellows); kw != 0.5 {
			t.Errorf("%g%%: have %g, want 0.5", pct, kw)
		}
	}
	if kw := LiquidBackpressureCorrection(225, ps, BalancedBellows); different(kw, 0.94, 1.e-12) {
		t.Errorf("22.5%%: have %g, want 0.94", kw)
	}
	if kw := LiquidBackpressureCorrection(400, ps, Conventional); kw != 1 {
		t.Errorf("conventional valve: have %g, want 1", kw)
	}
	if kw := LiquidBackpressureCorrection(400, 0, BalancedBellows); kw != 1 {
		t.Errorf("zero set pressure: have %g, want 1", kw)
	}
	prev := 1.
	for pb := 0.; pb <= ps; pb += 5 {
		kw := LiquidBackpressureCorrection(pb, ps, BalancedBellows)
		if kw > prev || kw < 0.5 || kw > 1 {
			t.Errorf("pb = %g: Kw = %g (previous %g)", pb, kw, prev)
		}
		prev = kw
	}
}

func TestViscosityCorrection(t *testing.T) {
	for _, re := range []float64{16000.1, 1.e5, math.Inf(1)} {
		if kv := ViscosityCorrection(re); kv != 1 {
			t.Errorf("Re = %g: have %g, want 1", re, kv)
		}
	}
	for _, re := range []float64{0, -10} {
		if kv := ViscosityCorrection(re); kv != 0.1 {
			t.Errorf("Re = %g: have %g, want 0.1", re, kv)
		}
	}
	for re := 1.; re < 20000; re *= 1.5 {
		kv := ViscosityCorrection(re)
		if kv < 0.1 || kv > 1 {
			t.Errorf("Re = %g: Kv = %g is out of bounds", re, kv)
		}
	}
}

func TestNapierCorrection(t *testing.T) {
	if kn := NapierCorrection(1500); kn != 1 {
		t.Errorf("1500 psia: have %g, want 1", kn)
	}
	if kn := NapierCorrection(2000); different(kn, (0.1906*2000-1000)/(0.2292*2000-1061), 1.e-12) || kn == 1 {
		t.Errorf("2000 psia: have %g", kn)
	}
}

func TestReynoldsNumber(t *testing.T) {
	if re := ReynoldsNumber(100, 1, 0, 1); !math.IsInf(re, 1) {
		t.Errorf("zero viscosity: have %g, want +Inf", re)
	}
	if re := ReynoldsNumber(100, 1, 1, 4); re != 140000 {
		t.Errorf("have %g, want 140000", re)
	}
}
