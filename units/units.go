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

// Package units converts values between the unit symbols used to describe
// relief scenarios. Values are converted through SI quantities represented
// with github.com/ctessum/unit, so conversions between incompatible
// dimensions are rejected.
package units

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ctessum/unit"
	"github.com/ctessum/unit/badunit"
)

// A Definition creates an SI quantity from a value in some unit. Definitions
// must be linear in v, i.e. of the form a·v + b.
type Definition func(v float64) *unit.Unit

// Converter converts values between registered unit symbols. It implements
// the reliefsize.UnitConverter interface. A Converter is safe for concurrent
// use as long as Register is not called concurrently with Convert.
type Converter struct {
	defs map[string]Definition
}

// NewConverter returns a converter with the unit symbols used for pressure,
// temperature, mass flow rate, area, density, viscosity and volumetric flow
// rate in relief device sizing.
func NewConverter() *Converter {
	c := &Converter{defs: make(map[string]Definition)}
	for symbol, d := range defaultDefinitions {
		c.defs[symbol] = d
	}
	for alias, symbol := range aliases {
		c.defs[alias] = defaultDefinitions[symbol]
	}
	return c
}

// Register adds or replaces the unit with the given symbol.
func (c *Converter) Register(symbol string, d Definition) {
	c.defs[symbol] = d
}

// Symbols returns the registered unit symbols in sorted order.
func (c *Converter) Symbols() []string {
	s := make([]string, 0, len(c.defs))
	for k := range c.defs {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}

// Convert converts value from the units with symbol from to the units with
// symbol to.
func (c *Converter) Convert(value float64, from, to string) (float64, error) {
	fromDef, err := c.lookup(from)
	if err != nil {
		return 0, err
	}
	toDef, err := c.lookup(to)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(from) == strings.TrimSpace(to) {
		return value, nil
	}
	si := fromDef(value)
	offset := toDef(0)
	if err := si.Check(offset.Dimensions()); err != nil {
		return 0, fmt.Errorf("units: converting %s to %s: %v", from, to, err)
	}
	scale := toDef(1).Value() - offset.Value()
	return (si.Value() - offset.Value()) / scale, nil
}

func (c *Converter) lookup(symbol string) (Definition, error) {
	d, ok := c.defs[strings.TrimSpace(symbol)]
	if !ok {
		return nil, fmt.Errorf("units: unknown unit symbol %q", symbol)
	}
	return d, nil
}

var (
	pascalSecond = unit.Dimensions{unit.MassDim: 1, unit.LengthDim: -1, unit.TimeDim: -1}
	kgPerSecond  = unit.Dimensions{unit.MassDim: 1, unit.TimeDim: -1}
)

// scaled returns a definition of a unit equal to scale SI units of
// dimensions d.
func scaled(scale float64, d unit.Dimensions) Definition {
	return func(v float64) *unit.Unit { return unit.New(v*scale, d) }
}

// perHour returns a definition of a rate with numerator d.
func perHour(d Definition) Definition {
	return func(v float64) *unit.Unit { return unit.Div(d(v), badunit.Hour(1)) }
}

var defaultDefinitions = map[string]Definition{
	// Pressure
	"Pa":  scaled(1, unit.Pascal),
	"kPa": scaled(1e3, unit.Pascal),
	"MPa": scaled(1e6, unit.Pascal),
	"bar": scaled(1e5, unit.Pascal),
	"psi": scaled(6894.757293168, unit.Pascal),
	"atm": scaled(101325, unit.Pascal),

	// Temperature
	"K": scaled(1, unit.Kelvin),
	"C": func(v float64) *unit.Unit { return unit.New(v+273.15, unit.Kelvin) },
	"F": badunit.Fahrenheit,
	"R": scaled(5./9., unit.Kelvin),

	// Mass flow rate
	"kg/s":   scaled(1, kgPerSecond),
	"kg/min": func(v float64) *unit.Unit { return unit.Div(unit.New(v, unit.Kilogram), badunit.Minute(1)) },
	"kg/h":   perHour(scaled(1, unit.Kilogram)),
	"t/h":    perHour(scaled(1000, unit.Kilogram)),
	"lb/h":   perHour(badunit.Pound),

	// Area
	"m2":  scaled(1, unit.Meter2),
	"cm2": scaled(1e-4, unit.Meter2),
	"mm2": scaled(1e-6, unit.Meter2),
	"in2": scaled(0.0254*0.0254, unit.Meter2),
	"ft2": func(v float64) *unit.Unit { return unit.Mul(badunit.Foot(v), badunit.Foot(1)) },

	// Density
	"kg/m3":  scaled(1, unit.KilogramPerMeter3),
	"g/cm3":  scaled(1000, unit.KilogramPerMeter3),
	"lb/ft3": func(v float64) *unit.Unit { return unit.Div(badunit.Pound(v), badunit.Foot3(1)) },

	// Dynamic viscosity
	"Pa.s": scaled(1, pascalSecond),
	"cP":   scaled(1e-3, pascalSecond),

	// Volumetric flow rate
	"m3/s": scaled(1, unit.Meter3PerSecond),
	"m3/h": perHour(scaled(1, unit.Meter3)),
	"gpm":  func(v float64) *unit.Unit { return unit.Div(badunit.Gallon(v), badunit.Minute(1)) },
}

// aliases maps alternative spellings to symbols in defaultDefinitions.
// Gauge pressure symbols are aliases because the sizing inputs are gauge
// pressures by convention.
var aliases = map[string]string{
	"kPag":  "kPa",
	"barg":  "bar",
	"psig":  "psi",
	"°C":    "C",
	"degC":  "C",
	"°F":    "F",
	"degF":  "F",
	"°R":    "R",
	"lb/hr": "lb/h",
	"kg/hr": "kg/h",
	"mPa.s": "cP",
	"cp":    "cP",
}
