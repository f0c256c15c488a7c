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

import "fmt"

// A UnitConverter converts value from the units with symbol from to the
// units with symbol to.
type UnitConverter interface {
	Convert(value float64, from, to string) (float64, error)
}

// Edition specifies the edition of the sizing standard whose superheat
// correction table should be used.
type Edition string

// DefaultEdition is the standard edition used when none is specified.
const DefaultEdition Edition = "API520-10"

// A SuperheatLookup returns the superheat correction factor Ksh for steam at
// absolute temperature temperatureK [K] and absolute pressure pressurePa [Pa].
// It returns an error if the conditions are outside of its table.
type SuperheatLookup interface {
	Ksh(temperatureK, pressurePa float64, edition Edition) (float64, error)
}

// SuperheatFunc is an adapter to allow the use of ordinary functions
// as superheat lookups.
type SuperheatFunc func(temperatureK, pressurePa float64, edition Edition) (float64, error)

// Ksh calls f(temperatureK, pressurePa, edition).
func (f SuperheatFunc) Ksh(temperatureK, pressurePa float64, edition Edition) (float64, error) {
	return f(temperatureK, pressurePa, edition)
}

// superheatCorrection performs a single lookup of the superheat correction
// factor. If the lookup fails or no lookup is available, saturated steam
// (Ksh = 1) is assumed and the returned message explains why.
func superheatCorrection(l SuperheatLookup, temperatureK, pressurePa float64, edition Edition) (ksh float64, msg string) {
	if l == nil {
		return 1, "Ksh = 1.0: no superheat correction table available; saturated steam assumed"
	}
	ksh, err := l.Ksh(temperatureK, pressurePa, edition)
	if err != nil {
		return 1, fmt.Sprintf("Ksh = 1.0: superheat correction lookup failed (%v); "+
			"saturated steam assumed", err)
	}
	if !(ksh > 0) || ksh > 1 {
		return 1, fmt.Sprintf("Ksh = 1.0: superheat correction lookup returned invalid "+
			"value %g; saturated steam assumed", ksh)
	}
	return ksh, fmt.Sprintf("Superheat correction Ksh = %.4f at T = %.2f K, P = %.0f Pa",
		ksh, temperatureK, pressurePa)
}
