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

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/reliefsize/units"
)

// Sizer holds the collaborators used to size relief devices. The zero value
// is not usable; use NewSizer. A Sizer is safe for concurrent use as long as
// its fields are not changed while it is in use.
type Sizer struct {
	// Converter converts input values to the units used internally.
	Converter UnitConverter

	// Superheat looks up the steam superheat correction factor. If it is
	// nil, saturated steam is assumed.
	Superheat SuperheatLookup

	// Edition is passed to Superheat to select the correction table.
	Edition Edition

	// CriticalRatio calculates the two-phase critical pressure ratio from
	// the omega parameter.
	CriticalRatio CriticalRatioFunc

	// Log receives diagnostic information.
	Log logrus.FieldLogger
}

// NewSizer returns a Sizer with the default unit converter, no superheat
// correction table, and the approximate omega-method critical ratio.
func NewSizer() *Sizer {
	return &Sizer{
		Converter:     units.NewConverter(),
		Edition:       DefaultEdition,
		CriticalRatio: EtaCApproximation,
		Log:           logrus.StandardLogger(),
	}
}

// SizingResult holds the required area calculated by one of the sizing
// methods. Factors that the method does not use are zero.
type SizingResult struct {
	// AreaIn2 and AreaMM2 are the required effective discharge area
	// in [in²] and [mm²], respectively.
	AreaIn2, AreaMM2 float64

	// CriticalFlow specifies whether the flow is choked.
	CriticalFlow bool

	C   float64 // capacity coefficient
	Kd  float64 // effective discharge coefficient
	Kb  float64 // backpressure correction (Kw for liquids)
	Kc  float64 // combination correction
	Kv  float64 // viscosity correction
	Kn  float64 // Napier correction
	Ksh float64 // superheat correction
	F2  float64 // subcritical flow coefficient

	// Messages holds diagnostic and warning messages, in the order
	// they were generated.
	Messages []string
}

// SizingOutputs holds the final result of a sizing calculation.
type SizingOutputs struct {
	Method Method

	// RequiredArea is the required effective area rounded to
	// two decimal places [mm²].
	RequiredArea float64

	// RequiredAreaIn2 is the unrounded required effective area [in²].
	RequiredAreaIn2 float64

	// SelectedOrifice is the designation of the selected standard orifice,
	// and OrificeArea and OrificeAreaIn2 are its area in [mm²] and [in²].
	SelectedOrifice string
	OrificeArea     float64
	OrificeAreaIn2  float64

	// PercentUsed is the required area as a percentage of the selected
	// orifice area, rounded to one decimal place.
	PercentUsed float64

	// RatedCapacity is the mass flow rate the selected orifice would pass
	// at 100% utilization, in the mass flow units of the inputs.
	RatedCapacity float64

	DischargeCoefficient   float64
	BackpressureCorrection float64
	CriticalFlow           bool

	// NumValves is the number of valves. Only single-valve
	// installations are sized.
	NumValves int

	Messages []string
}

// CalculateSizing sizes a relief device using the default Sizer.
func CalculateSizing(in SizingInputs, method Method) (*SizingOutputs, error) {
	return NewSizer().CalculateSizing(in, method)
}

// Area calculates the required area using the given method.
func (s *Sizer) Area(in SizingInputs, method Method) (*SizingResult, error) {
	switch method {
	case Gas:
		return s.GasArea(in)
	case Liquid:
		return s.LiquidArea(in)
	case Steam:
		return s.SteamArea(in)
	case TwoPhase:
		return s.TwoPhaseArea(in)
	default:
		return nil, fmt.Errorf("reliefsize: invalid sizing method %q", method)
	}
}

// CalculateSizing calculates the required area of a relief device using the
// given method and selects a standard orifice. An error is only returned if
// the method or the input units are not recognized; problems with the
// relief scenario itself are reported in the output messages.
func (s *Sizer) CalculateSizing(in SizingInputs, method Method) (*SizingOutputs, error) {
	r, err := s.Area(in, method)
	if err != nil {
		return nil, err
	}

	orifice := SelectOrifice(r.AreaMM2)
	percentUsed := r.AreaMM2 / orifice.AreaMM2 * 100

	o := &SizingOutputs{
		Method:                 method,
		RequiredArea:           round(r.AreaMM2, 2),
		RequiredAreaIn2:        r.AreaIn2,
		SelectedOrifice:        orifice.Designation,
		OrificeArea:            orifice.AreaMM2,
		OrificeAreaIn2:         orifice.AreaIn2,
		PercentUsed:            round(percentUsed, 1),
		DischargeCoefficient:   r.Kd,
		BackpressureCorrection: r.Kb,
		CriticalFlow:           r.CriticalFlow,
		NumValves:              1,
		Messages:               append([]string{}, r.Messages...),
	}
	if percentUsed > 0 {
		o.RatedCapacity = in.MassFlowRate / (percentUsed / 100)
	}

	switch {
	case percentUsed > 100:
		o.Messages = append(o.Messages, fmt.Sprintf("Warning: required area %.2f mm² "+
			"exceeds largest standard orifice %s (%.0f mm²); %.1f%% utilization",
			r.AreaMM2, orifice.Designation, orifice.AreaMM2, percentUsed))
	case percentUsed >= 90:
		o.Messages = append(o.Messages, fmt.Sprintf("Warning: high utilization of "+
			"orifice %s: %.1f%%", orifice.Designation, percentUsed))
	}

	s.log().WithFields(logrus.Fields{
		"method":       method,
		"area_mm2":     r.AreaMM2,
		"orifice":      orifice.Designation,
		"percent_used": percentUsed,
		"critical":     r.CriticalFlow,
	}).Debug("reliefsize: sized relief device")
	return o, nil
}

func (s *Sizer) log() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// conditions holds the relief scenario expressed in the US customary units
// used by the sizing equations.
type conditions struct {
	w        float64 // mass flow rate [lb/h]
	wKg      float64 // mass flow rate [kg/h]
	t        float64 // temperature [°R]
	tK       float64 // temperature [K]
	p1, p2   float64 // relieving pressure and backpressure [psia]
	p1g, p2g float64 // relieving pressure and backpressure [psig]
	psetg    float64 // set pressure [psig]

	liquidDensity   float64  // [kg/m³]
	liquidViscosity *float64 // [cP]
	mixtureDensity  *float64 // [kg/m³]
}

// conditions converts the inputs to the units used internally.
func (s *Sizer) conditions(in *SizingInputs) (conditions, error) {
	u := in.Units.withDefaults()
	var c conditions
	var err error
	conv := func(v float64, from, to string) float64 {
		if err != nil {
			return 0
		}
		var o float64
		o, err = s.Converter.Convert(v, from, to)
		return o
	}
	c.w = conv(in.MassFlowRate, u.MassFlow, "lb/h")
	c.wKg = conv(in.MassFlowRate, u.MassFlow, "kg/h")
	c.t = conv(in.Temperature, u.Temperature, "R")
	c.tK = conv(in.Temperature, u.Temperature, "K")
	c.p1g = conv(in.Pressure, u.Pressure, "psi")
	c.p2g = conv(in.Backpressure, u.Pressure, "psi")
	c.psetg = c.p1g
	if in.SetPressure != nil {
		c.psetg = conv(*in.SetPressure, u.Pressure, "psi")
	}
	c.liquidDensity = conv(in.LiquidDensity, u.Density, "kg/m3")
	if in.LiquidViscosity != nil {
		mu := conv(*in.LiquidViscosity, u.Viscosity, "cP")
		c.liquidViscosity = &mu
	}
	if in.TwoPhaseDensity != nil {
		rho := conv(*in.TwoPhaseDensity, u.Density, "kg/m3")
		c.mixtureDensity = &rho
	}
	if err != nil {
		return c, fmt.Errorf("reliefsize: converting inputs: %v", err)
	}
	c.p1 = c.p1g + atmosphericPsi
	c.p2 = c.p2g + atmosphericPsi
	return c, nil
}

// finish fills in the metric area and returns r.
func (s *Sizer) finish(r *SizingResult) (*SizingResult, error) {
	if math.IsNaN(r.AreaIn2) || math.IsInf(r.AreaIn2, 0) || r.AreaIn2 < 0 {
		r.Messages = append(r.Messages, fmt.Sprintf("Error: the sizing equations "+
			"produced an invalid area (%g in²); check the process conditions", r.AreaIn2))
		r.AreaIn2 = 0
	}
	a, err := s.Converter.Convert(r.AreaIn2, "in2", "mm2")
	if err != nil {
		return nil, fmt.Errorf("reliefsize: converting area: %v", err)
	}
	r.AreaMM2 = a
	return r, nil
}

// backpressureCorrection returns the gas backpressure correction factor,
// using the override if one is given.
func backpressureCorrection(in *SizingInputs, c *conditions) float64 {
	if in.BackpressureCorrection != nil {
		return *in.BackpressureCorrection
	}
	ratio := 0.
	if c.p1g > 0 {
		ratio = c.p2g / c.p1g
	}
	return GasBackpressureCorrection(ratio, in.valveType())
}
