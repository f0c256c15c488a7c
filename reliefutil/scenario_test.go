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
	"strings"
	"testing"

	"github.com/spatialmodel/reliefsize"
)

func TestScenarioInputs(t *testing.T) {
	t.Run("alias", func(t *testing.T) {
		s := &Scenario{Density: reliefsize.Float64(998), Viscosity: reliefsize.Float64(2)}
		in, err := s.Inputs()
		if err != nil {
			t.Fatal(err)
		}
		if in.LiquidDensity != 998 {
			t.Errorf("density: have %g, want 998", in.LiquidDensity)
		}
		if in.LiquidViscosity == nil || *in.LiquidViscosity != 2 {
			t.Errorf("viscosity: have %v, want 2", in.LiquidViscosity)
		}
	})
	t.Run("same value", func(t *testing.T) {
		s := &Scenario{LiquidDensity: reliefsize.Float64(998), Density: reliefsize.Float64(998)}
		if _, err := s.Inputs(); err != nil {
			t.Error(err)
		}
	})
	t.Run("conflict", func(t *testing.T) {
		s := &Scenario{LiquidDensity: reliefsize.Float64(998), Density: reliefsize.Float64(1000)}
		_, err := s.Inputs()
		if err == nil || !strings.Contains(err.Error(), "LiquidDensity") {
			t.Errorf("expected conflict error, got %v", err)
		}
	})
	t.Run("valve type", func(t *testing.T) {
		s := &Scenario{ValveType: "bellows", BackpressureType: "built-up"}
		in, err := s.Inputs()
		if err != nil {
			t.Fatal(err)
		}
		if in.ValveType != reliefsize.BalancedBellows {
			t.Errorf("valve type: have %s", in.ValveType)
		}
		if in.BackpressureType != reliefsize.BuiltUp {
			t.Errorf("backpressure type: have %s", in.BackpressureType)
		}
	})
	t.Run("bad valve type", func(t *testing.T) {
		s := &Scenario{ValveType: "gate"}
		if _, err := s.Inputs(); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestScenarioMethod(t *testing.T) {
	s := &Scenario{Name: "a"}
	if _, err := s.method(""); err == nil {
		t.Error("expected an error when no method is specified")
	}
	m, err := s.method(reliefsize.Steam)
	if err != nil || m != reliefsize.Steam {
		t.Errorf("default method: have %s (%v)", m, err)
	}
	s.Method = "two-phase"
	m, err = s.method(reliefsize.Steam)
	if err != nil || m != reliefsize.TwoPhase {
		t.Errorf("scenario method: have %s (%v)", m, err)
	}
}

func TestReadScenarios(t *testing.T) {
	scenarios, err := ReadScenarioFile("testdata/scenarios.toml")
	if err != nil {
		t.Fatal(err)
	}
	if len(scenarios) != 5 {
		t.Fatalf("have %d scenarios, want 5", len(scenarios))
	}
	names := []string{"PSV-101", "PSV-102", "PSV-103", "PSV-104", "scenario 5"}
	for i, s := range scenarios {
		if s.Name != names[i] {
			t.Errorf("scenario %d: have name %q, want %q", i, s.Name, names[i])
		}
	}
	in, err := scenarios[1].Inputs()
	if err != nil {
		t.Fatal(err)
	}
	if in.LiquidDensity != 998 {
		t.Errorf("liquid density: have %g, want 998", in.LiquidDensity)
	}
	if u := scenarios[4].Units; u.MassFlow != "lb/h" || u.Pressure != "psi" || u.Density != "" {
		t.Errorf("units: %+v", u)
	}
}

func TestReadScenariosEmpty(t *testing.T) {
	if _, err := ReadScenarios(strings.NewReader("# nothing here\n")); err == nil {
		t.Error("expected an error")
	}
	if _, err := ReadScenarios(strings.NewReader("[[Scenario]]\nMassFlowRate = 10\n")); err == nil {
		t.Error("integer values for float fields should be rejected")
	}
}
