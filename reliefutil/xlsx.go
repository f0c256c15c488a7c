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
	"path/filepath"
	"reflect"
	"strings"

	"github.com/spf13/cast"
	"github.com/tealeg/xlsx"
)

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

// ReadXLSX reads relief scenarios from the first sheet of the spreadsheet
// at path. The first row holds column names matching the fields of
// Scenario (e.g., "MassFlowRate" or "Units.Pressure"), and each following
// row is one scenario. Blank cells leave the corresponding field unset.
func ReadXLSX(path string) ([]*Scenario, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("reliefutil: opening scenario spreadsheet: %v", err)
	}
	if len(f.Sheets) == 0 || len(f.Sheets[0].Rows) < 2 {
		return nil, fmt.Errorf("reliefutil: scenario spreadsheet %s has no scenarios", path)
	}
	sheet := f.Sheets[0]
	header := sheet.Rows[0].Cells

	var scenarios []*Scenario
	for i, row := range sheet.Rows[1:] {
		s := new(Scenario)
		empty := true
		for j, cell := range row.Cells {
			if j >= len(header) {
				break
			}
			v := strings.TrimSpace(cell.String())
			if v == "" {
				continue
			}
			empty = false
			if err := setField(s, strings.TrimSpace(header[j].String()), v); err != nil {
				return nil, fmt.Errorf("reliefutil: %s row %d: %v", path, i+2, err)
			}
		}
		if empty {
			continue
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("row %d", i+2)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// setField sets the field of s with the given name, ignoring case.
func setField(s *Scenario, name, value string) error {
	v := reflect.ValueOf(s).Elem()
	for _, part := range strings.Split(name, ".") {
		if v.Kind() != reflect.Struct {
			return fmt.Errorf("unknown column %q", name)
		}
		v = v.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, part) })
		if !v.IsValid() {
			return fmt.Errorf("unknown column %q", name)
		}
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Float64:
		x, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("column %s: %v", name, err)
		}
		v.SetFloat(x)
	case reflect.Bool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("column %s: %v", name, err)
		}
		v.SetBool(b)
	case reflect.Ptr:
		x, err := cast.ToFloat64E(value)
		if err != nil {
			return fmt.Errorf("column %s: %v", name, err)
		}
		v.Set(reflect.ValueOf(&x))
	default:
		return fmt.Errorf("column %q cannot be set", name)
	}
	return nil
}

// resultColumns are the columns written for each sizing result, before
// any output variables.
var resultColumns = []string{
	"Name", "Method", "RequiredArea_mm2", "RequiredArea_in2", "SelectedOrifice",
	"OrificeArea_mm2", "PercentUsed", "RatedCapacity", "DischargeCoefficient",
	"BackpressureCorrection", "CriticalFlow", "Messages", "Error",
}

// WriteXLSX writes the sizing results to a spreadsheet at path. If o is
// not nil, its output variables are added as additional columns.
func WriteXLSX(path string, results []*Result, o *Outputter) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sizing")
	if err != nil {
		return fmt.Errorf("reliefutil: creating output spreadsheet: %v", err)
	}
	var outNames []string
	if o != nil {
		outNames = o.Names()
	}
	row := sheet.AddRow()
	for _, h := range append(append([]string{}, resultColumns...), outNames...) {
		row.AddCell().SetString(h)
	}

	for _, r := range results {
		row := sheet.AddRow()
		row.AddCell().SetString(r.Scenario.Name)
		row.AddCell().SetString(string(r.Method))
		if r.Outputs == nil {
			for i := 2; i < len(resultColumns)-1; i++ {
				row.AddCell()
			}
			row.AddCell().SetString(r.Err.Error())
			continue
		}
		out := r.Outputs
		for _, v := range []float64{out.RequiredArea, out.RequiredAreaIn2} {
			row.AddCell().SetFloat(v)
		}
		row.AddCell().SetString(out.SelectedOrifice)
		for _, v := range []float64{out.OrificeArea, out.PercentUsed, out.RatedCapacity,
			out.DischargeCoefficient, out.BackpressureCorrection} {
			row.AddCell().SetFloat(v)
		}
		row.AddCell().SetString(fmt.Sprint(out.CriticalFlow))
		row.AddCell().SetString(strings.Join(out.Messages, "; "))
		if r.Err != nil {
			row.AddCell().SetString(r.Err.Error())
		} else {
			row.AddCell()
		}
		for _, name := range outNames {
			row.AddCell().SetFloat(r.Values[name])
		}
	}
	if err := file.Save(path); err != nil {
		return fmt.Errorf("reliefutil: saving output spreadsheet: %v", err)
	}
	return nil
}
