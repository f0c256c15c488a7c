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

// SteamArea calculates the required effective discharge area for saturated
// or superheated steam relief using the Napier equation (API-520 Part I,
// section 5.7). Flow is always treated as critical.
//
// The superheat correction Ksh is looked up once using s.Superheat. If the
// lookup is not possible or fails, saturated steam is assumed and the
// reason is added to the result messages.
func (s *Sizer) SteamArea(in SizingInputs) (*SizingResult, error) {
	c, err := s.conditions(&in)
	if err != nil {
		return nil, err
	}
	r := &SizingResult{
		Kd:           in.dischargeCoefficient(DefaultGasDischargeCoefficient),
		Kb:           backpressureCorrection(&in, &c),
		Kc:           in.combinationCorrection(),
		Kn:           NapierCorrection(c.p1),
		CriticalFlow: true,
	}
	if c.p1 > napierThreshold {
		r.Messages = append(r.Messages, fmt.Sprintf("Napier correction Kn = %.4f applied "+
			"for P1 = %.1f psia > %d psia", r.Kn, c.p1, napierThreshold))
	}
	if c.p1 > napierLimit {
		r.Messages = append(r.Messages, fmt.Sprintf("Warning: P1 = %.1f psia exceeds "+
			"the %d psia limit of the Napier correction; the result may not be valid",
			c.p1, napierLimit))
	}

	p1Pa, err := s.Converter.Convert(c.p1, "psi", "Pa")
	if err != nil {
		return nil, fmt.Errorf("reliefsize: converting steam pressure: %v", err)
	}
	var msg string
	r.Ksh, msg = superheatCorrection(s.Superheat, c.tK, p1Pa, s.edition())
	r.Messages = append(r.Messages, msg)

	r.AreaIn2 = c.w / (51.5 * r.Kd * c.p1 * r.Kb * r.Kc * r.Kn * r.Ksh)
	r.Messages = append(r.Messages, fmt.Sprintf("Steam flow W = %.1f lb/h at "+
		"P1 = %.2f psia", c.w, c.p1))
	return s.finish(r)
}

func (s *Sizer) edition() Edition {
	if s.Edition == "" {
		return DefaultEdition
	}
	return s.Edition
}
