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

// CriticalPressureRatio returns the ratio of the critical flow pressure to
// the upstream absolute pressure for an ideal gas with specific heat
// ratio k. For k <= 1 it returns 0.5.
func CriticalPressureRatio(k float64) float64 {
	if k <= 1 {
		return 0.5
	}
	return math.Pow(2/(k+1), k/(k-1))
}

// CriticalFlowPressure returns the critical flow throat pressure Pcf
// for upstream absolute pressure p1 and specific heat ratio k, in the
// units of p1.
func CriticalFlowPressure(p1, k float64) float64 {
	return p1 * CriticalPressureRatio(k)
}

// IsCriticalFlow returns whether flow from absolute pressure p1 to absolute
// pressure p2 is choked, given specific heat ratio k.
func IsCriticalFlow(p1, p2, k float64) bool {
	return p2 <= CriticalFlowPressure(p1, k)
}
