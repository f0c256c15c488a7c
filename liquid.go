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

// DefaultLiquidDischargeCoefficient is the effective discharge coefficient
// used for liquids when none is specified.
const DefaultLiquidDischargeCoefficient = 0.65

// LiquidArea calculates the required effective discharge area for liquid
// relief (API-520 Part I, section 5.8).
//
// If a liquid viscosity is given, the area is corrected for viscosity with
// a single refinement: the Reynolds number is calculated for the standard
// orifice selected for the uncorrected area, and the area is then
// recalculated once with the resulting Kv.
func (s *Sizer) LiquidArea(in SizingInputs) (*SizingResult, error) {
	c, err := s.conditions(&in)
	if err != nil {
		return nil, err
	}
	r := &SizingResult{
		Kd: in.dischargeCoefficient(DefaultLiquidDischargeCoefficient),
		Kc: in.combinationCorrection(),
		Kv: 1,
	}

	dp := c.p1 - c.p2
	if dp <= 0 {
		r.Messages = append(r.Messages, fmt.Sprintf("Error: backpressure (%.2f psig) must "+
			"be less than the relieving pressure (%.2f psig) for liquid relief",
			c.p2g, c.p1g))
		return s.finish(r)
	}
	if c.liquidDensity <= 0 {
		r.Messages = append(r.Messages, "Error: liquid density must be greater than zero")
		return s.finish(r)
	}

	if in.BackpressureCorrection != nil {
		r.Kb = *in.BackpressureCorrection
	} else {
		r.Kb = LiquidBackpressureCorrection(c.p2g, c.psetg, in.valveType())
	}

	g := c.liquidDensity / referenceWaterDensity
	q, err := s.Converter.Convert(c.wKg/c.liquidDensity, "m3/h", "gpm")
	if err != nil {
		return nil, fmt.Errorf("reliefsize: converting liquid flow rate: %v", err)
	}
	area := func() float64 {
		return q / (38 * r.Kd * r.Kb * r.Kc * r.Kv) * math.Sqrt(g/dp)
	}
	r.AreaIn2 = area()
	r.Messages = append(r.Messages, fmt.Sprintf("Liquid flow Q = %.2f gpm, G = %.4f, "+
		"ΔP = %.2f psi", q, g, dp))
	if r.Kb != 1 {
		r.Messages = append(r.Messages, fmt.Sprintf("Backpressure correction Kw = %.4f", r.Kb))
	}

	if c.liquidViscosity != nil {
		trial := SelectOrifice(r.AreaIn2 * mm2PerIn2)
		re := ReynoldsNumber(q, g, *c.liquidViscosity, trial.AreaIn2)
		r.Kv = ViscosityCorrection(re)
		r.AreaIn2 = area()
		r.Messages = append(r.Messages, fmt.Sprintf("Viscosity correction: Re = %.0f "+
			"for orifice %s, Kv = %.4f", re, trial.Designation, r.Kv))
	}
	return s.finish(r)
}

// mm2PerIn2 is the number of square millimeters in a square inch. It is only
// used to pick a trial orifice; reported areas go through the converter.
const mm2PerIn2 = 645.16
