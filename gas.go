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

// DefaultGasDischargeCoefficient is the effective discharge coefficient used
// for gas, vapor and steam when none is specified.
const DefaultGasDischargeCoefficient = 0.975

// GasArea calculates the required effective discharge area for gas or vapor
// relief (API-520 Part I, section 5.6).
func (s *Sizer) GasArea(in SizingInputs) (*SizingResult, error) {
	c, err := s.conditions(&in)
	if err != nil {
		return nil, err
	}
	r := &SizingResult{
		Kd: in.dischargeCoefficient(DefaultGasDischargeCoefficient),
		Kb: backpressureCorrection(&in, &c),
		Kc: in.combinationCorrection(),
		C:  CapacityCoefficient(in.SpecificHeatRatio),
	}

	k, z, m := in.SpecificHeatRatio, in.Compressibility, in.MolecularWeight
	if z <= 0 {
		z = 1
		r.Messages = append(r.Messages, "Compressibility factor not specified; Z = 1.0 assumed")
	}
	if m <= 0 {
		r.Messages = append(r.Messages, "Error: molecular weight must be greater than zero")
		return s.finish(r)
	}
	if k <= 1 {
		r.Messages = append(r.Messages, fmt.Sprintf("Specific heat ratio k = %g is not "+
			"greater than 1; C = %g and a critical pressure ratio of 0.5 are used", k, r.C))
	}

	if c.p2 >= c.p1 {
		r.Messages = append(r.Messages, fmt.Sprintf("Error: backpressure (%.2f psig) must be "+
			"less than the relieving pressure (%.2f psig) for gas relief", c.p2g, c.p1g))
		return s.finish(r)
	}

	pcf := CriticalFlowPressure(c.p1, k)
	ratio := c.p2 / c.p1
	r.CriticalFlow = c.p2 <= pcf
	if r.CriticalFlow {
		r.AreaIn2 = c.w / (r.C * r.Kd * c.p1 * r.Kb * r.Kc) * math.Sqrt(c.t*z/m)
		r.Messages = append(r.Messages, fmt.Sprintf("Critical flow: P2 = %.2f psia <= "+
			"Pcf = %.2f psia", c.p2, pcf))
	} else {
		r.F2 = SubcriticalFactor(k, ratio)
		r.AreaIn2 = c.w / (735 * r.F2 * r.Kd * r.Kb * r.Kc) *
			math.Sqrt(c.t*z/(m*c.p1*(c.p1-c.p2)))
		r.Messages = append(r.Messages, fmt.Sprintf("Subcritical flow: P2 = %.2f psia > "+
			"Pcf = %.2f psia; F2 = %.4f", c.p2, pcf, r.F2))
	}
	r.Messages = append(r.Messages, fmt.Sprintf("Pressure ratio P2/P1 = %.4f", ratio))
	return s.finish(r)
}
