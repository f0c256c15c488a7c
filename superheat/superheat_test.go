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

package superheat

import (
	"strings"
	"testing"

	"github.com/gonum/floats"
	"github.com/spatialmodel/reliefsize"
)

func loadTestTables(t *testing.T) *Tables {
	tbl, err := LoadFile("testdata/ksh.toml")
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func TestKsh(t *testing.T) {
	tbl := loadTestTables(t)
	tests := []struct {
		name    string
		tK, pPa float64
		edition reliefsize.Edition
		want    float64
	}{
		{name: "grid point", tK: 600, pPa: 2e6, edition: "API520-10", want: 0.89},
		{name: "temperature midpoint", tK: 650, pPa: 1e6, edition: "API520-10", want: 0.845},
		{name: "pressure midpoint", tK: 600, pPa: 3e6, edition: "API520-10", want: 0.90},
		{name: "bilinear", tK: 650, pPa: 3e6, edition: "API520-10", want: (0.855 + 0.87) / 2},
		{name: "grid point next to saturation", tK: 520, pPa: 2e6, edition: "API520-10", want: 0.97},
		{name: "saturated corner", tK: 480, pPa: 1e6, edition: "API520-10", want: 0.99},
		{name: "upper corner", tK: 700, pPa: 4e6, edition: "API520-10", want: 0.83},
		{name: "other edition", tK: 600, pPa: 1e6, edition: "API520-9", want: 0.88},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have, err := tbl.Ksh(test.tK, test.pPa, test.edition)
			if err != nil {
				t.Fatal(err)
			}
			if !floats.EqualWithinAbsOrRel(have, test.want, 1.e-10, 1.e-10) {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}

func TestKshRejects(t *testing.T) {
	tbl := loadTestTables(t)
	tests := []struct {
		name    string
		tK, pPa float64
		edition reliefsize.Edition
	}{
		{name: "too hot", tK: 800, pPa: 2e6, edition: "API520-10"},
		{name: "too cold", tK: 400, pPa: 2e6, edition: "API520-10"},
		{name: "pressure too high", tK: 600, pPa: 5e6, edition: "API520-10"},
		{name: "below saturation", tK: 490, pPa: 3e6, edition: "API520-10"},
		{name: "grid line into saturation", tK: 520, pPa: 3e6, edition: "API520-10"},
		{name: "unknown edition", tK: 600, pPa: 2e6, edition: "ASME-VIII"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := tbl.Ksh(test.tK, test.pPa, test.edition); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"ragged": `[[Table]]
TemperaturesK = [500.0, 600.0]
PressuresPa = [1.0e6, 2.0e6]
Ksh = [[0.9, 0.8], [0.9]]`,
		"unsorted": `[[Table]]
TemperaturesK = [600.0, 500.0]
PressuresPa = [1.0e6, 2.0e6]
Ksh = [[0.9, 0.8], [0.9, 0.8]]`,
		"out of range": `[[Table]]
TemperaturesK = [500.0, 600.0]
PressuresPa = [1.0e6, 2.0e6]
Ksh = [[1.2, 0.8], [0.9, 0.8]]`,
		"syntax": `[[Table]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

// Tables must satisfy the engine's collaborator interface, and a rejected
// lookup must fall back to saturated steam.
func TestSteamFallback(t *testing.T) {
	s := reliefsize.NewSizer()
	s.Superheat = loadTestTables(t)
	in := reliefsize.SizingInputs{
		MassFlowRate: 10000,
		Temperature:  500, // °C, 773 K is outside of the table
		Pressure:     1000,
		Units:        reliefsize.Units{Pressure: "kPa", Temperature: "C", MassFlow: "kg/h"},
	}
	r, err := s.SteamArea(in)
	if err != nil {
		t.Fatal(err)
	}
	if r.Ksh != 1 {
		t.Errorf("Ksh = %g, want 1", r.Ksh)
	}
	in.Temperature = 326.85 // 600 K
	r2, err := s.SteamArea(in)
	if err != nil {
		t.Fatal(err)
	}
	if !(r2.Ksh < 1) || !(r2.AreaIn2 > r.AreaIn2) {
		t.Errorf("superheated steam: Ksh = %g, area %g (saturated area %g)", r2.Ksh, r2.AreaIn2, r.AreaIn2)
	}
}
