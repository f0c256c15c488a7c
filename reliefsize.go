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

// Package reliefsize calculates the required orifice area of a pressure-relief
// device following the structure of the API-520 sizing procedure.
//
// The engine classifies the flow regime (critical or subcritical), evaluates
// the dimensionless correction factors (C, F2, Kb, Kw, Kv, Kn and Ksh), solves
// for the required area using one of four methods (gas or vapor, liquid, steam
// and two-phase), and then selects a standard API-526 orifice and
// back-calculates the rated capacity of that orifice.
//
// Domain-level failures, such as a backpressure that is not lower than the
// relieving pressure or a superheat table lookup that is out of range, are not
// returned as errors. They are reported as messages in the results so that
// calling applications can always display a result alongside its warnings.
//
// All functions are free of side effects and may be used concurrently.
package reliefsize

// Version gives the version number.
const Version = "1.2.0"

// Standard reference conditions.
const (
	// atmosphericPsi is the atmospheric pressure used to convert gauge
	// pressures to absolute pressures [psi].
	atmosphericPsi = 14.696

	// referenceWaterDensity is the density of water used to calculate
	// the specific gravity of liquids [kg/m³].
	referenceWaterDensity = 999.0

	// gasConstant is the universal gas constant [J/(kmol K)].
	gasConstant = 8314.462618
)
