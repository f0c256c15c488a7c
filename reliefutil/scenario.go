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

package reliefutil

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/reliefsize"
)

// Scenario is a relief scenario as it is described in configuration
// and scenario files. Numeric values in TOML files must be written as
// floating point numbers (e.g., 1000.0).
type Scenario struct {
	// Name identifies the relief device, e.g. its tag number.
	Name string

	// Method is the sizing method. If it is blank, the method
	// specified on the command line is used.
	Method string

	MassFlowRate      float64
	Temperature       float64
	Pressure          float64
	Backpressure      float64
	BackpressureType  string
	MolecularWeight   float64
	Compressibility   float64
	SpecificHeatRatio float64
	GasViscosity      *float64

	LiquidDensity   *float64
	LiquidViscosity *float64

	// Density and Viscosity are accepted as alternative names for
	// LiquidDensity and LiquidViscosity.
	Density   *float64
	Viscosity *float64

	VaporFraction   float64
	Omega           *float64
	TwoPhaseDensity *float64

	DischargeCoefficient   *float64
	BackpressureCorrection *float64
	CombinationCorrection  *float64
	RuptureDisk            bool
	ValveType              string
	SetPressure            *float64

	Units reliefsize.Units
}

// alias returns the value of a field that may be given under two names.
func alias(name string, canonical, alt *float64) (*float64, error) {
	switch {
	case canonical == nil:
		return alt, nil
	case alt == nil || *alt == *canonical:
		return canonical, nil
	default:
		return nil, fmt.Errorf("reliefutil: conflicting values for %s: %g and %g", name, *canonical, *alt)
	}
}

// Inputs converts s to inputs for the sizing engine, resolving
// alternative field names and parsing the enumerated fields.
func (s *Scenario) Inputs() (reliefsize.SizingInputs, error) {
	in := reliefsize.SizingInputs{
		MassFlowRate:           s.MassFlowRate,
		Temperature:            s.Temperature,
		Pressure:               s.Pressure,
		Backpressure:           s.Backpressure,
		MolecularWeight:        s.MolecularWeight,
		Compressibility:        s.Compressibility,
		SpecificHeatRatio:      s.SpecificHeatRatio,
		GasViscosity:           s.GasViscosity,
		VaporFraction:          s.VaporFraction,
		Omega:                  s.Omega,
		TwoPhaseDensity:        s.TwoPhaseDensity,
		DischargeCoefficient:   s.DischargeCoefficient,
		BackpressureCorrection: s.BackpressureCorrection,
		CombinationCorrection:  s.CombinationCorrection,
		RuptureDisk:            s.RuptureDisk,
		SetPressure:            s.SetPressure,
		Units:                  s.Units,
	}
	density, err := alias("LiquidDensity", s.LiquidDensity, s.Density)
	if err != nil {
		return in, err
	}
	if density != nil {
		in.LiquidDensity = *density
	}
	if in.LiquidViscosity, err = alias("LiquidViscosity", s.LiquidViscosity, s.Viscosity); err != nil {
		return in, err
	}
	if in.ValveType, err = reliefsize.ParseValveType(s.ValveType); err != nil {
		return in, err
	}
	if in.BackpressureType, err = reliefsize.ParseBackpressureType(s.BackpressureType); err != nil {
		return in, err
	}
	return in, nil
}

// method returns the sizing method for s, using def if s does not
// specify one.
func (s *Scenario) method(def reliefsize.Method) (reliefsize.Method, error) {
	if s.Method == "" {
		if def == "" {
			return "", fmt.Errorf("reliefutil: no sizing method specified for scenario %q", s.Name)
		}
		return def, nil
	}
	return reliefsize.ParseMethod(s.Method)
}

// scenarioFile is the layout of a TOML scenario file.
type scenarioFile struct {
	Scenario []*Scenario
}

// ReadScenarios reads relief scenarios in TOML format, where each
// scenario is a [[Scenario]] table.
func ReadScenarios(r io.Reader) ([]*Scenario, error) {
	var f scenarioFile
	if _, err := toml.DecodeReader(r, &f); err != nil {
		return nil, fmt.Errorf("reliefutil: reading scenarios: %v", err)
	}
	if len(f.Scenario) == 0 {
		return nil, fmt.Errorf("reliefutil: no [[Scenario]] tables found")
	}
	for i, s := range f.Scenario {
		if s.Name == "" {
			s.Name = fmt.Sprintf("scenario %d", i+1)
		}
	}
	return f.Scenario, nil
}

// ReadScenarioFile reads relief scenarios from a TOML (.toml) or
// spreadsheet (.xlsx) file.
func ReadScenarioFile(path string) ([]*Scenario, error) {
	path = os.ExpandEnv(path)
	if isXLSX(path) {
		return ReadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reliefutil: opening scenario file: %v", err)
	}
	defer f.Close()
	return ReadScenarios(f)
}
