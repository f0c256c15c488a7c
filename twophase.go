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
	"fmt"
	"math"
)

// DefaultTwoPhaseDischargeCoefficient is the effective discharge coefficient
// used for two-phase flow when none is specified.
const DefaultTwoPhaseDischargeCoefficient = 0.85

// A CriticalRatioFunc returns the critical pressure ratio ηc for two-phase
// flow as a function of the omega parameter.
type CriticalRatioFunc func(omega float64) float64

// EtaCApproximation approximates the two-phase critical pressure ratio
// using the explicit correlation of API-520 Part I Annex C. The result is
// bounded to [0.55, 1]. The correlation has not been validated against
// tabulated values for all omega, so it should be checked against
// EtaCLeung where accuracy matters.
func EtaCApproximation(omega float64) float64 {
	if omega <= 0 {
		return 1
	}
	eta := math.Pow(1+(1.0446-0.0093431*math.Sqrt(omega))*math.Pow(omega, -0.56261),
		-0.70356+0.014685*math.Log(omega))
	return math.Max(0.55, math.Min(1, eta))
}

// EtaCLeung calculates the two-phase critical pressure ratio by solving
// Leung's implicit relation
//
//	ηc² + (ω² - 2ω)(1 - ηc)² + 2ω² ln ηc + 2ω²(1 - ηc) = 0
//
// by bisection.
func EtaCLeung(omega float64) float64 {
	if omega <= 0 {
		return 1
	}
	w2 := omega * omega
	f := func(eta float64) float64 {
		return eta*eta + (w2-2*omega)*(1-eta)*(1-eta) + 2*w2*math.Log(eta) + 2*w2*(1-eta)
	}
	return bisect(f, 1e-9, 1, 1e-12, 200)
}

// bisect finds a root of f in [lo, hi], where f(lo) < 0 < f(hi).
func bisect(f func(float64) float64, lo, hi, tol float64, maxIter int) float64 {
	for i := 0; i < maxIter && hi-lo > tol; i++ {
		mid := (lo + hi) / 2
		if f(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// OmegaMassFlux returns the two-phase mass flux G [lb/(s·ft²)] calculated
// with the omega method for pressure ratio eta, inlet pressure p1 [psia]
// and inlet specific volume v0 [ft³/lb]. When omega is zero the relation
// reduces to the Bernoulli equation for an incompressible liquid.
func OmegaMassFlux(omega, eta, p1, v0 float64) float64 {
	if omega == 0 {
		return 68.09 * math.Sqrt(2*(1-eta)*p1/v0)
	}
	num := -2 * (omega*math.Log(eta) + (omega-1)*(1-eta))
	return 68.09 * math.Sqrt(num) * math.Sqrt(p1/v0) / (omega*(1/eta-1) + 1)
}

// TwoPhaseArea calculates the required effective discharge area for
// two-phase flow. When in.Omega is set, the omega method of API-520 Part I
// Annex C is used. Otherwise the gas and liquid areas are calculated
// separately and the larger one is used.
func (s *Sizer) TwoPhaseArea(in SizingInputs) (*SizingResult, error) {
	if in.Omega == nil {
		return s.legacyTwoPhaseArea(in)
	}
	c, err := s.conditions(&in)
	if err != nil {
		return nil, err
	}
	omega := *in.Omega
	r := &SizingResult{
		Kd: in.dischargeCoefficient(DefaultTwoPhaseDischargeCoefficient),
		Kb: backpressureCorrection(&in, &c),
		Kc: in.combinationCorrection(),
	}
	if omega < 0 {
		r.Messages = append(r.Messages, fmt.Sprintf("Error: omega (%g) must not be negative", omega))
		return s.finish(r)
	}
	if c.p2 >= c.p1 {
		r.Messages = append(r.Messages, fmt.Sprintf("Error: backpressure (%.2f psia) must be "+
			"less than the relieving pressure (%.2f psia) for two-phase relief", c.p2, c.p1))
		return s.finish(r)
	}

	v0, err := s.mixtureVolume(&in, &c)
	if err != nil {
		return nil, err
	}
	if !(v0 > 0) || math.IsInf(v0, 0) {
		r.Messages = append(r.Messages, "Error: two-phase inlet density could not be "+
			"determined; specify the mixture density or the vapor fraction, molecular "+
			"weight and liquid density")
		return s.finish(r)
	}

	ratio := s.CriticalRatio
	if ratio == nil {
		ratio = EtaCApproximation
	}
	etaC := ratio(omega)
	eta := c.p2 / c.p1
	r.CriticalFlow = omega > 0 && c.p2 <= etaC*c.p1
	if r.CriticalFlow {
		eta = etaC
		r.Messages = append(r.Messages, fmt.Sprintf("Two-phase critical flow: P2 = %.2f "+
			"psia <= ηc·P1 = %.2f psia (ω = %.4f, ηc = %.4f)", c.p2, etaC*c.p1, omega, etaC))
	} else {
		r.Messages = append(r.Messages, fmt.Sprintf("Two-phase subcritical flow: "+
			"η = %.4f (ω = %.4f, ηc = %.4f)", eta, omega, etaC))
	}

	g := OmegaMassFlux(omega, eta, c.p1, v0)
	r.AreaIn2 = (c.w / 3600) / (r.Kd * r.Kb * r.Kc * g) * 144
	r.Messages = append(r.Messages, fmt.Sprintf("Mass flux G = %.2f lb/(s·ft²), "+
		"v0 = %.5f ft³/lb", g, v0))
	return s.finish(r)
}

// mixtureVolume returns the specific volume of the two-phase mixture at the
// valve inlet [ft³/lb]. An explicit mixture density takes precedence;
// otherwise a homogeneous mixture of ideal gas and liquid is assumed.
// A non-positive result means the volume could not be determined.
func (s *Sizer) mixtureVolume(in *SizingInputs, c *conditions) (float64, error) {
	rho := 0.
	if c.mixtureDensity != nil {
		rho = *c.mixtureDensity
	} else {
		x := in.VaporFraction
		var v float64 // [m³/kg]
		if x > 0 {
			if in.MolecularWeight <= 0 || c.tK <= 0 {
				return 0, nil
			}
			p1Pa, err := s.Converter.Convert(c.p1, "psi", "Pa")
			if err != nil {
				return 0, fmt.Errorf("reliefsize: converting two-phase pressure: %v", err)
			}
			z := in.Compressibility
			if z <= 0 {
				z = 1
			}
			v += x * z * gasConstant * c.tK / (p1Pa * in.MolecularWeight)
		}
		if x < 1 {
			if c.liquidDensity <= 0 {
				return 0, nil
			}
			v += (1 - x) / c.liquidDensity
		}
		if v > 0 {
			rho = 1 / v
		}
	}
	if rho <= 0 {
		return 0, nil
	}
	rhoLb, err := s.Converter.Convert(rho, "kg/m3", "lb/ft3")
	if err != nil {
		return 0, fmt.Errorf("reliefsize: converting two-phase density: %v", err)
	}
	return 1 / rhoLb, nil
}

// legacyTwoPhaseArea sizes the device for both gas and liquid flow and
// returns a new result holding the larger of the two.
func (s *Sizer) legacyTwoPhaseArea(in SizingInputs) (*SizingResult, error) {
	gas, err := s.GasArea(in)
	if err != nil {
		return nil, err
	}
	liq, err := s.LiquidArea(in)
	if err != nil {
		return nil, err
	}
	chosen, name := gas, "gas"
	if liq.AreaIn2 > gas.AreaIn2 {
		chosen, name = liq, "liquid"
	}
	r := *chosen
	r.Messages = make([]string, 0, len(chosen.Messages)+1)
	r.Messages = append(r.Messages, fmt.Sprintf("Omega not specified; legacy two-phase "+
		"method used: gas area %.2f mm², liquid area %.2f mm², %s area selected",
		gas.AreaMM2, liq.AreaMM2, name))
	r.Messages = append(r.Messages, chosen.Messages...)
	return &r, nil
}
