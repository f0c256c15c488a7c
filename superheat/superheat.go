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

// Package superheat looks up steam superheat correction factors (Ksh) from
// tables read from TOML files. Lookups outside of a table are rejected
// rather than extrapolated.
package superheat

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/reliefsize"
)

// Table holds superheat correction factors for one edition of a sizing
// standard.
type Table struct {
	// Edition is the standard edition that the table is taken from.
	// A table with a blank edition is used for any edition.
	Edition reliefsize.Edition

	// TemperaturesK and PressuresPa are the table axes: absolute
	// temperature [K] and absolute pressure [Pa], in increasing order.
	TemperaturesK []float64
	PressuresPa   []float64

	// Factors holds the correction factors, with one row per pressure and
	// one column per temperature. Blank cells (zero) are conditions
	// below saturation and cannot be looked up.
	Factors [][]float64 `toml:"Ksh"`
}

// Tables is a collection of superheat tables. It implements the
// reliefsize.SuperheatLookup interface.
type Tables struct {
	Tables []*Table `toml:"Table"`
}

// Load reads superheat tables in TOML format from r.
func Load(r io.Reader) (*Tables, error) {
	t := new(Tables)
	if _, err := toml.DecodeReader(r, t); err != nil {
		return nil, fmt.Errorf("superheat: decoding tables: %v", err)
	}
	for i, tbl := range t.Tables {
		if err := tbl.check(); err != nil {
			return nil, fmt.Errorf("superheat: table %d (%s): %v", i, tbl.Edition, err)
		}
	}
	return t, nil
}

// LoadFile reads superheat tables from the TOML file at path.
func LoadFile(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("superheat: %v", err)
	}
	defer f.Close()
	return Load(f)
}

func (t *Table) check() error {
	if len(t.TemperaturesK) < 2 || len(t.PressuresPa) < 2 {
		return fmt.Errorf("at least two temperatures and two pressures are required")
	}
	if !sort.Float64sAreSorted(t.TemperaturesK) || !sort.Float64sAreSorted(t.PressuresPa) {
		return fmt.Errorf("temperatures and pressures must be in increasing order")
	}
	if len(t.Factors) != len(t.PressuresPa) {
		return fmt.Errorf("%d rows of Ksh for %d pressures", len(t.Factors), len(t.PressuresPa))
	}
	for i, row := range t.Factors {
		if len(row) != len(t.TemperaturesK) {
			return fmt.Errorf("row %d has %d values for %d temperatures",
				i, len(row), len(t.TemperaturesK))
		}
		for _, v := range row {
			if v < 0 || v > 1 {
				return fmt.Errorf("Ksh value %g in row %d is not within [0, 1]", v, i)
			}
		}
	}
	return nil
}

// RangeError is returned when a lookup falls outside of a table.
type RangeError struct {
	TemperatureK, PressurePa float64
	Reason                   string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("superheat: T = %.2f K, P = %.0f Pa: %s", e.TemperatureK, e.PressurePa, e.Reason)
}

// Ksh returns the superheat correction factor at absolute temperature
// temperatureK [K] and absolute pressure pressurePa [Pa], using the first
// table matching edition. Values are interpolated bilinearly.
func (t *Tables) Ksh(temperatureK, pressurePa float64, edition reliefsize.Edition) (float64, error) {
	for _, tbl := range t.Tables {
		if tbl.Edition == edition || tbl.Edition == "" {
			return tbl.Ksh(temperatureK, pressurePa)
		}
	}
	return 0, fmt.Errorf("superheat: no table for edition %q", edition)
}

// Ksh returns the interpolated superheat correction factor.
func (t *Table) Ksh(temperatureK, pressurePa float64) (float64, error) {
	i, fx, ok := bracket(t.TemperaturesK, temperatureK)
	if !ok {
		return 0, &RangeError{temperatureK, pressurePa, "temperature outside of table"}
	}
	j, fy, ok := bracket(t.PressuresPa, pressurePa)
	if !ok {
		return 0, &RangeError{temperatureK, pressurePa, "pressure outside of table"}
	}
	v00, v01 := t.Factors[j][i], t.Factors[j][i+1]
	v10, v11 := t.Factors[j+1][i], t.Factors[j+1][i+1]
	// Blank cells only count when their interpolation weight is non-zero.
	if (v00 == 0 && fx < 1 && fy < 1) || (v01 == 0 && fx > 0 && fy < 1) ||
		(v10 == 0 && fx < 1 && fy > 0) || (v11 == 0 && fx > 0 && fy > 0) {
		return 0, &RangeError{temperatureK, pressurePa, "temperature below saturation"}
	}
	lo := v00 + fx*(v01-v00)
	hi := v10 + fx*(v11-v10)
	return lo + fy*(hi-lo), nil
}

// bracket returns the index i such that axis[i] <= v <= axis[i+1] and the
// fractional position of v within that interval.
func bracket(axis []float64, v float64) (int, float64, bool) {
	n := len(axis)
	if v < axis[0] || v > axis[n-1] {
		return 0, 0, false
	}
	i := sort.SearchFloat64s(axis, v) - 1
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	return i, (v - axis[i]) / (axis[i+1] - axis[i]), true
}
