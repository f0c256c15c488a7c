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

import "math"

// CapacityCoefficient returns the gas capacity coefficient C for specific
// heat ratio k, in US customary units. For k <= 1 it returns 315.
func CapacityCoefficient(k float64) float64 {
	if k <= 1 {
		return 315
	}
	return 520 * math.Sqrt(k*math.Pow(2/(k+1), (k+1)/(k-1)))
}

// SubcriticalFactor returns the subcritical flow coefficient F2 for specific
// heat ratio k and ratio r of backpressure to upstream relieving pressure
// (both absolute). F2 is 1 when r is not within (0, 1) or when k <= 1.
func SubcriticalFactor(k, r float64) float64 {
	if r <= 0 || r >= 1 || k <= 1 {
		return 1
	}
	return math.Sqrt((k / (k - 1)) * math.Pow(r, 2/k) *
		(1 - math.Pow(r, (k-1)/k)) / (1 - r))
}

// GasBackpressureCorrection returns the backpressure correction factor Kb
// for gas and steam service, where ratio is backpressure divided by
// relieving pressure (both gauge). Only balanced bellows valves are
// affected; the capacity of conventional and pilot-operated valves is
// handled through the subcritical flow equations instead.
func GasBackpressureCorrection(ratio float64, v ValveType) float64 {
	if v != BalancedBellows {
		return 1
	}
	switch {
	case ratio <= 0.3:
		return 1
	case ratio >= 0.5:
		return 0.7
	default:
		return 1 - 0.3*(ratio-0.3)/0.2
	}
}

// kwCurve is the liquid backpressure correction curve for balanced bellows
// valves as pairs of {backpressure as percent of set pressure (gauge), Kw}.
var kwCurve = [][2]float64{
	{0, 1},
	{15, 1},
	{20, 0.96},
	{25, 0.92},
	{30, 0.87},
	{35, 0.81},
	{40, 0.73},
	{45, 0.63},
	{50, 0.5},
}

// LiquidBackpressureCorrection returns the liquid backpressure correction
// factor Kw for backpressure pb and set pressure ps (both gauge, in the same
// units). Only balanced bellows valves are affected: the capacity of
// conventional and pilot-operated valves in liquid service is not reduced
// by backpressure.
func LiquidBackpressureCorrection(pb, ps float64, v ValveType) float64 {
	if v != BalancedBellows || ps <= 0 {
		return 1
	}
	pct := pb / ps * 100
	first, last := kwCurve[1], kwCurve[len(kwCurve)-1]
	if pct <= first[0] {
		return first[1]
	}
	if pct >= last[0] {
		return last[1]
	}
	for i := 1; i < len(kwCurve); i++ {
		lo, hi := kwCurve[i-1], kwCurve[i]
		if pct <= hi[0] {
			return lo[1] + (pct-lo[0])/(hi[0]-lo[0])*(hi[1]-lo[1])
		}
	}
	return last[1]
}

// minViscosityCorrection is the lower bound of Kv.
const minViscosityCorrection = 0.1

// ViscosityCorrection returns the liquid viscosity correction factor Kv for
// Reynolds number re. Kv is 1 for fully turbulent flow (re > 16000) and is
// never less than 0.1.
func ViscosityCorrection(re float64) float64 {
	if re > 16000 {
		return 1
	}
	if re <= 0 {
		return minViscosityCorrection
	}
	kv := 1 / (0.9935 + 2.878/math.Sqrt(re) + 342.75/math.Pow(re, 1.5))
	return math.Max(minViscosityCorrection, math.Min(1, kv))
}

// napierThreshold is the pressure above which the Napier equation
// requires correction [psia]. Kn is only valid up to napierLimit.
const (
	napierThreshold = 1500
	napierLimit     = 3200
)

// NapierCorrection returns the high pressure steam correction factor Kn for
// relieving pressure p1 [psia]. It is 1 at or below 1500 psia, and is
// not defined by the standard above 3200 psia.
func NapierCorrection(p1 float64) float64 {
	if p1 <= napierThreshold {
		return 1
	}
	return (0.1906*p1 - 1000) / (0.2292*p1 - 1061)
}

// ReynoldsNumber returns the Reynolds number for liquid flow through a
// relief valve, where q is the volumetric flow rate [gpm], g is the
// specific gravity [-], mu is the viscosity at flowing temperature [cP]
// and area is the effective orifice area [in²].
func ReynoldsNumber(q, g, mu, area float64) float64 {
	if mu <= 0 || area <= 0 {
		return math.Inf(1)
	}
	return q * 2800 * g / (mu * math.Sqrt(area))
}
