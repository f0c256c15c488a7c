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
	"strings"
)

// Method specifies the sizing procedure to use.
type Method string

// These are the available sizing methods.
const (
	Gas      Method = "gas"
	Liquid   Method = "liquid"
	Steam    Method = "steam"
	TwoPhase Method = "two_phase"
)

// ParseMethod returns the method matching s, ignoring case and
// accepting "two-phase" as an alternative spelling of "two_phase".
func ParseMethod(s string) (Method, error) {
	m := Method(strings.Replace(strings.ToLower(strings.TrimSpace(s)), "-", "_", -1))
	switch m {
	case Gas, Liquid, Steam, TwoPhase:
		return m, nil
	case "vapor", "vapour":
		return Gas, nil
	}
	return "", fmt.Errorf("reliefsize: invalid sizing method %q; valid methods are "+
		"gas, liquid, steam, and two_phase", s)
}

// ValveType specifies the construction of the relief valve.
type ValveType string

// These are the supported valve constructions.
const (
	Conventional    ValveType = "conventional"
	BalancedBellows ValveType = "balanced_bellows"
	PilotOperated   ValveType = "pilot_operated"
)

// BackpressureType specifies whether the backpressure is present before the
// valve opens (superimposed) or is caused by flow through the discharge
// system (built-up).
type BackpressureType string

// These are the backpressure types.
const (
	Superimposed BackpressureType = "superimposed"
	BuiltUp      BackpressureType = "built_up"
)

// Units specifies the unit symbols of the dimensional fields of
// SizingInputs. Empty fields take the values in DefaultUnits.
type Units struct {
	MassFlow    string
	Temperature string
	Pressure    string
	Density     string
	Viscosity   string
}

// DefaultUnits are the units assumed for SizingInputs fields when
// no units are specified.
var DefaultUnits = Units{
	MassFlow:    "kg/h",
	Temperature: "C",
	Pressure:    "kPa",
	Density:     "kg/m3",
	Viscosity:   "cP",
}

// withDefaults returns a copy of u where any blank fields are replaced
// by the default units.
func (u Units) withDefaults() Units {
	if u.MassFlow == "" {
		u.MassFlow = DefaultUnits.MassFlow
	}
	if u.Temperature == "" {
		u.Temperature = DefaultUnits.Temperature
	}
	if u.Pressure == "" {
		u.Pressure = DefaultUnits.Pressure
	}
	if u.Density == "" {
		u.Density = DefaultUnits.Density
	}
	if u.Viscosity == "" {
		u.Viscosity = DefaultUnits.Viscosity
	}
	return u
}

// SizingInputs holds the description of a relief scenario. Pressures are
// gauge pressures in Units.Pressure.
type SizingInputs struct {
	// MassFlowRate is the required relieving mass flow rate.
	MassFlowRate float64

	// Temperature is the relieving temperature.
	Temperature float64

	// Pressure is the relieving pressure (gauge), i.e. set pressure
	// plus allowable overpressure.
	Pressure float64

	// Backpressure is the total backpressure at the valve outlet (gauge).
	Backpressure float64

	// BackpressureType specifies whether the backpressure is
	// superimposed or built-up.
	BackpressureType BackpressureType

	// Gas properties.
	MolecularWeight   float64  // [kg/kmol]
	Compressibility   float64  // Z [-]
	SpecificHeatRatio float64  // k [-]
	GasViscosity      *float64 // optional

	// Liquid properties.
	LiquidDensity   float64
	LiquidViscosity *float64 // optional

	// Two-phase properties. When Omega is nil the two-phase method
	// falls back to the larger of the gas and liquid solutions.
	VaporFraction   float64  // vapor mass fraction [-]
	Omega           *float64 // omega parameter [-]
	TwoPhaseDensity *float64 // optional inlet density of the mixture

	// Optional overrides.
	DischargeCoefficient   *float64 // Kd
	BackpressureCorrection *float64 // Kb for gas and steam, Kw for liquid
	CombinationCorrection  *float64 // Kc
	RuptureDisk            bool     // a rupture disk is installed upstream
	ValveType              ValveType
	SetPressure            *float64 // gauge, used for the liquid backpressure correction

	Units Units
}

// Float64 returns a pointer to v, for setting optional SizingInputs fields.
func Float64(v float64) *float64 { return &v }

// valveType returns the valve type, defaulting to conventional.
func (in *SizingInputs) valveType() ValveType {
	if in.ValveType == "" {
		return Conventional
	}
	return in.ValveType
}

// combinationCorrection returns Kc, which is 1 unless overridden or unless
// a rupture disk is installed.
func (in *SizingInputs) combinationCorrection() float64 {
	if in.CombinationCorrection != nil {
		return *in.CombinationCorrection
	}
	if in.RuptureDisk {
		return 0.9
	}
	return 1
}

// dischargeCoefficient returns the discharge coefficient override or def.
func (in *SizingInputs) dischargeCoefficient(def float64) float64 {
	if in.DischargeCoefficient != nil {
		return *in.DischargeCoefficient
	}
	return def
}

// ParseValveType returns the valve type matching s.
func ParseValveType(s string) (ValveType, error) {
	v := ValveType(strings.Replace(strings.ToLower(strings.TrimSpace(s)), "-", "_", -1))
	switch v {
	case "":
		return Conventional, nil
	case Conventional, BalancedBellows, PilotOperated:
		return v, nil
	case "balanced", "bellows":
		return BalancedBellows, nil
	case "pilot":
		return PilotOperated, nil
	}
	return "", fmt.Errorf("reliefsize: invalid valve type %q", s)
}

// ParseBackpressureType returns the backpressure type matching s.
func ParseBackpressureType(s string) (BackpressureType, error) {
	b := BackpressureType(strings.Replace(strings.ToLower(strings.TrimSpace(s)), "-", "_", -1))
	switch b {
	case "":
		return Superimposed, nil
	case Superimposed, BuiltUp:
		return b, nil
	}
	return "", fmt.Errorf("reliefsize: invalid backpressure type %q", s)
}
