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
	"fmt"
	"strings"
	"testing"

	"github.com/gonum/floats"
	"github.com/spatialmodel/reliefsize"
)

func TestSummarize(t *testing.T) {
	results := []*Result{
		{Scenario: &Scenario{Name: "a"}, Outputs: &reliefsize.SizingOutputs{RequiredArea: 100, PercentUsed: 50}},
		{Scenario: &Scenario{Name: "b"}, Outputs: &reliefsize.SizingOutputs{RequiredArea: 20000, PercentUsed: 119.2}},
		{Scenario: &Scenario{Name: "c"}, Err: fmt.Errorf("failed")},
		{Scenario: &Scenario{Name: "d"}, Outputs: &reliefsize.SizingOutputs{RequiredArea: 300, PercentUsed: 92.3}},
	}
	s := Summarize(results)
	if s.Count != 4 || s.Failed != 1 || s.Oversized != 1 {
		t.Errorf("counts: %+v", s)
	}
	if !floats.EqualWithinAbsOrRel(s.MeanPercentUsed, (50+119.2+92.3)/3, 1.e-10, 1.e-10) {
		t.Errorf("mean: have %g", s.MeanPercentUsed)
	}
	if s.MaxPercentUsed != 119.2 || s.MaxRequiredArea != 20000 || s.Largest != "b" {
		t.Errorf("max: %+v", s)
	}
	if s.TotalRequiredArea != 20400 {
		t.Errorf("total area: have %g", s.TotalRequiredArea)
	}
	if !(s.StdDevPercentUsed > 0) {
		t.Errorf("std. dev.: have %g", s.StdDevPercentUsed)
	}

	var b bytes.Buffer
	if err := s.Fprint(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "3 scenarios sized, 1 failed") {
		t.Errorf("summary: %s", b.String())
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize([]*Result{{Scenario: &Scenario{Name: "c"}, Err: fmt.Errorf("failed")}})
	if s.Count != 1 || s.Failed != 1 || s.MeanPercentUsed != 0 || s.Largest != "" {
		t.Errorf("%+v", s)
	}
	if s := Summarize(nil); s.Count != 0 {
		t.Errorf("%+v", s)
	}
}
