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
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/reliefsize"
	"github.com/spatialmodel/reliefsize/superheat"
	"github.com/spf13/cast"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="results.xlsx")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("reliefsize: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// checkMethod parses the sizing method, which may be blank if every
// scenario specifies its own method.
func checkMethod(m string, required bool) (reliefsize.Method, error) {
	m = os.ExpandEnv(m)
	if m == "" {
		if required {
			return "", fmt.Errorf("you need to specify a sizing method (gas, liquid, steam, or two_phase) " +
				"in the 'method' configuration variable")
		}
		return "", nil
	}
	return reliefsize.ParseMethod(m)
}

// optionalFloat returns the value of configuration variable varName, or
// nil if it is not set. Values set from the command line are strings.
func optionalFloat(varName string, cfg *viper.Viper) (*float64, error) {
	i := cfg.Get(varName)
	if i == nil {
		return nil, nil
	}
	if s, ok := i.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := cast.ToFloat64E(i)
	if err != nil {
		return nil, fmt.Errorf("reliefsize: parsing configuration variable %s: %v", varName, err)
	}
	return &v, nil
}

// ScenarioFromConfig unmarshals the relief scenario described by the
// Scenario.* and Units.* configuration variables.
func ScenarioFromConfig(cfg *viper.Viper) (*Scenario, error) {
	s := &Scenario{
		Name:              os.ExpandEnv(cfg.GetString("Scenario.Name")),
		Method:            os.ExpandEnv(cfg.GetString("Scenario.Method")),
		MassFlowRate:      cfg.GetFloat64("Scenario.MassFlowRate"),
		Temperature:       cfg.GetFloat64("Scenario.Temperature"),
		Pressure:          cfg.GetFloat64("Scenario.Pressure"),
		Backpressure:      cfg.GetFloat64("Scenario.Backpressure"),
		BackpressureType:  cfg.GetString("Scenario.BackpressureType"),
		MolecularWeight:   cfg.GetFloat64("Scenario.MolecularWeight"),
		Compressibility:   cfg.GetFloat64("Scenario.Compressibility"),
		SpecificHeatRatio: cfg.GetFloat64("Scenario.SpecificHeatRatio"),
		VaporFraction:     cfg.GetFloat64("Scenario.VaporFraction"),
		RuptureDisk:       cfg.GetBool("Scenario.RuptureDisk"),
		ValveType:         cfg.GetString("Scenario.ValveType"),
		Units: reliefsize.Units{
			MassFlow:    cfg.GetString("Units.MassFlow"),
			Temperature: cfg.GetString("Units.Temperature"),
			Pressure:    cfg.GetString("Units.Pressure"),
			Density:     cfg.GetString("Units.Density"),
			Viscosity:   cfg.GetString("Units.Viscosity"),
		},
	}
	optional := []struct {
		name string
		dst  **float64
	}{
		{"Scenario.GasViscosity", &s.GasViscosity},
		{"Scenario.LiquidDensity", &s.LiquidDensity},
		{"Scenario.LiquidViscosity", &s.LiquidViscosity},
		{"Scenario.Density", &s.Density},
		{"Scenario.Viscosity", &s.Viscosity},
		{"Scenario.Omega", &s.Omega},
		{"Scenario.TwoPhaseDensity", &s.TwoPhaseDensity},
		{"Scenario.DischargeCoefficient", &s.DischargeCoefficient},
		{"Scenario.BackpressureCorrection", &s.BackpressureCorrection},
		{"Scenario.CombinationCorrection", &s.CombinationCorrection},
		{"Scenario.SetPressure", &s.SetPressure},
	}
	for _, o := range optional {
		v, err := optionalFloat(o.name, cfg)
		if err != nil {
			return nil, err
		}
		*o.dst = v
	}
	if s.Name == "" {
		s.Name = "scenario"
	}
	return s, nil
}

// SizerFromConfig creates a sizer using the SuperheatTable, Edition and
// CriticalRatio configuration variables.
func SizerFromConfig(cfg *viper.Viper) (*reliefsize.Sizer, error) {
	s := reliefsize.NewSizer()
	s.Log = logrus.StandardLogger()
	if e := os.ExpandEnv(cfg.GetString("Edition")); e != "" {
		s.Edition = reliefsize.Edition(e)
	}
	if f := os.ExpandEnv(cfg.GetString("SuperheatTable")); f != "" {
		t, err := superheat.LoadFile(f)
		if err != nil {
			return nil, fmt.Errorf("reliefsize: loading SuperheatTable: %v", err)
		}
		s.Superheat = t
	}
	switch strings.ToLower(cfg.GetString("CriticalRatio")) {
	case "", "approximation":
		s.CriticalRatio = reliefsize.EtaCApproximation
	case "leung":
		s.CriticalRatio = reliefsize.EtaCLeung
	default:
		return nil, fmt.Errorf("the CriticalRatio configuration variable needs to be set "+
			"to either approximation or leung, but is currently set to `%s`", cfg.GetString("CriticalRatio"))
	}
	return s, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if strings.TrimSpace(v) == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("reliefsize: parsing configuration variable %s: %v", varName, err)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("reliefsize: invalid type for configuration variable %s: %#v", varName, i)
	}
}
