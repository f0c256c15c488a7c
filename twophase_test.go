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

func twoPhaseInputs(omega float64) SizingInputs {
	return SizingInputs{
		MassFlowRate:      36000,
		Temperature:       150,
		Pressure:          1000,
		MolecularWeight:   18.02,
		Compressibility:   1,
		SpecificHeatRatio: 1.3,
		LiquidDensity:     998,
		VaporFraction:     0,
		Omega:             Float64(omega),
	}
}

func TestEtaCApproximation(t *testing.T) {
	for omega := 0.001; omega < 1000; omega *= 1.3 {
		eta := EtaCApproximation(omega)
		if eta < 0.55 || eta > 1 {
			t.Errorf("ω = %g: ηc = %g is out of bounds", omega, eta)
		}
	}
	if eta := EtaCApproximation(0); eta != 1 {
		t.Errorf("ω = 0: have %g, want 1", eta)
	}
	// Where it is not bounded, the approximation should agree
	// with the exact relation.
	for _, omega := range []float64{1, 2, 4, 10, 50, 100} {
		a, l := EtaCApproximation(omega), EtaCLeung(omega)
		if different(a, l, 0.005) {
			t.Errorf("ω = %g: approximation %g, implicit relation %g", omega, a, l)
		}
	}
}

func TestEtaCLeung(t *testing.T) {
	for _, omega := range []float64{0.01, 0.1, 0.5, 1, 4, 10, 100} {
		eta := EtaCLeung(omega)
		w2 := omega * omega
		residual := eta*eta + (w2-2*omega)*(1-eta)*(1-eta) + 2*w2*math.Log(eta) + 2*w2*(1-eta)
		if math.Abs(residual) > 1.e-6 {
			t.Errorf("ω = %g: ηc = %g, residual %g", omega, eta, residual)
		}
		if eta <= 0 || eta >= 1 {
			t.Errorf("ω = %g: ηc = %g", omega, eta)
		}
	}
	if different(EtaCLeung(1), 0.60653, 1.e-4) {
		t.Errorf("ω = 1: have %g, want 0.60653", EtaCLeung(1))
	}
}

func TestOmegaMassFlux(t *testing.T) {
	const p1, v0, eta = 150., 0.016, 0.3
	bernoulli := 68.09 * math.Sqrt(2*(1-eta)*p1/v0)
	if g := OmegaMassFlux(0, eta, p1, v0); g != bernoulli {
		t.Errorf("ω = 0: have %g, want %g", g, bernoulli)
	}
	if g := OmegaMassFlux(1.e-9, eta, p1, v0); different(g, bernoulli, 1.e-6) {
		t.Errorf("ω → 0: have %g, want %g", g, bernoulli)
	}
	if OmegaMassFlux(5, eta, p1, v0) >= bernoulli {
		t.Error("a compressible mixture should have a lower mass flux")
	}
}

// With ω = 0 the omega method describes incompressible liquid flow and
// should agree with the liquid sizing equation.
func TestOmegaZeroMatchesLiquid(t *testing.T) {
	s := NewSizer()
	in := twoPhaseInputs(0)
	in.TwoPhaseDensity = Float64(998)
	in.DischargeCoefficient = Float64(DefaultLiquidDischargeCoefficient)
	tp, err := s.TwoPhaseArea(in)
	if err != nil {
		t.Fatal(err)
	}
	liq, err := s.LiquidArea(in)
	if err != nil {
		t.Fatal(err)
	}
	if tp.CriticalFlow {
		t.Error("ω = 0 should never be critical")
	}
	if different(tp.AreaIn2, liq.AreaIn2, 0.01) {
		t.Errorf("two-phase area %g in², liquid area %g in²", tp.AreaIn2, liq.AreaIn2)
	}
}

func TestTwoPhaseOmega(t *testing.T) {
	s := NewSizer()
	r, err := s.TwoPhaseArea(twoPhaseInputs(2))
	if err != nil {
		t.Fatal(err)
	}
	if !r.CriticalFlow {
		t.Error("flow to atmosphere should be critical")
	}
	if r.Kd != DefaultTwoPhaseDischargeCoefficient {
		t.Errorf("Kd: have %g", r.Kd)
	}
	if !(r.AreaIn2 > 0) || math.IsInf(r.AreaIn2, 0) {
		t.Errorf("area: %g", r.AreaIn2)
	}
	if !hasMessage(r.Messages, "Two-phase critical flow") {
		t.Errorf("messages: %v", r.Messages)
	}

	// Flashing increases the required area.
	r4, err := s.TwoPhaseArea(twoPhaseInputs(4))
	if err != nil {
		t.Fatal(err)
	}
	if !(r4.AreaIn2 > r.AreaIn2) {
		t.Errorf("ω = 4 area %g should exceed ω = 2 area %g", r4.AreaIn2, r.AreaIn2)
	}

	sub := twoPhaseInputs(2)
	sub.Backpressure = 800
	rs, err := s.TwoPhaseArea(sub)
	if err != nil {
		t.Fatal(err)
	}
	if rs.CriticalFlow || !hasMessage(rs.Messages, "subcritical") {
		t.Errorf("flow should be subcritical: %v", rs.Messages)
	}
}

func TestTwoPhaseCriticalRatioStrategy(t *testing.T) {
	s := NewSizer()
	var calls []float64
	s.CriticalRatio = func(omega float64) float64 {
		calls = append(calls, omega)
		return EtaCLeung(omega)
	}
	r, err := s.TwoPhaseArea(twoPhaseInputs(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(calls) != 1 || calls[0] != 2 {
		t.Errorf("strategy calls: %v", calls)
	}
	def, err := NewSizer().TwoPhaseArea(twoPhaseInputs(2))
	if err != nil {
		t.Fatal(err)
	}
	if different(r.AreaIn2, def.AreaIn2, 0.01) {
		t.Errorf("Leung area %g, approximate area %g", r.AreaIn2, def.AreaIn2)
	}
}

func TestTwoPhaseDensity(t *testing.T) {
	s := NewSizer()
	explicit := twoPhaseInputs(2)
	explicit.TwoPhaseDensity = Float64(998)
	re, err := s.TwoPhaseArea(explicit)
	if err != nil {
		t.Fatal(err)
	}
	rh, err := s.TwoPhaseArea(twoPhaseInputs(2))
	if err != nil {
		t.Fatal(err)
	}
	if different(re.AreaIn2, rh.AreaIn2, 1.e-9) {
		t.Errorf("all-liquid homogeneous density should equal the liquid density: %g, %g",
			re.AreaIn2, rh.AreaIn2)
	}

	vapor := twoPhaseInputs(2)
	vapor.VaporFraction = 0.1
	rv, err := s.TwoPhaseArea(vapor)
	if err != nil {
		t.Fatal(err)
	}
	if !(rv.AreaIn2 > rh.AreaIn2) {
		t.Errorf("vapor should increase the area: %g, %g", rv.AreaIn2, rh.AreaIn2)
	}

	none := twoPhaseInputs(2)
	none.LiquidDensity = 0
	rn, err := s.TwoPhaseArea(none)
	if err != nil {
		t.Fatal(err)
	}
	if rn.AreaIn2 != 0 || !hasMessage(rn.Messages, "density could not be determined") {
		t.Errorf("area = %g, messages = %v", rn.AreaIn2, rn.Messages)
	}
}

func TestTwoPhaseInvalid(t *testing.T) {
	s := NewSizer()
	neg := twoPhaseInputs(-1)
	r, err := s.TwoPhaseArea(neg)
	if err != nil {
		t.Fatal(err)
	}
	if r.AreaIn2 != 0 || !hasMessage(r.Messages, "omega") {
		t.Errorf("area = %g, messages = %v", r.AreaIn2, r.Messages)
	}
	noDrop := twoPhaseInputs(2)
	noDrop.Backpressure = 1000
	r, err = s.TwoPhaseArea(noDrop)
	if err != nil {
		t.Fatal(err)
	}
	if r.AreaIn2 != 0 || !hasMessage(r.Messages, "must be less than the relieving pressure") {
		t.Errorf("area = %g, messages = %v", r.AreaIn2, r.Messages)
	}
}

func TestTwoPhaseLegacy(t *testing.T) {
	s := NewSizer()
	in := twoPhaseInputs(0)
	in.Omega = nil
	r, err := s.TwoPhaseArea(in)
	if err != nil {
		t.Fatal(err)
	}
	gas, err := s.GasArea(in)
	if err != nil {
		t.Fatal(err)
	}
	liq, err := s.LiquidArea(in)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Max(gas.AreaIn2, liq.AreaIn2)
	if r.AreaIn2 != want {
		t.Errorf("area: have %g, want %g", r.AreaIn2, want)
	}
	if !hasMessage(r.Messages, "legacy two-phase method") {
		t.Errorf("messages: %v", r.Messages)
	}
	if len(r.Messages) != 1+len(gas.Messages) && len(r.Messages) != 1+len(liq.Messages) {
		t.Errorf("messages: %v", r.Messages)
	}

	o, err := CalculateSizing(in, TwoPhase)
	if err != nil {
		t.Fatal(err)
	}
	if o.Method != TwoPhase || o.RequiredAreaIn2 != want {
		t.Errorf("method %s, area %g", o.Method, o.RequiredAreaIn2)
	}
}
