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
	"image/color"
	"io"

	"github.com/spatialmodel/reliefsize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Chart writes a bar chart of the standard orifice areas to w. If o is
// not nil, the orifice selected in o is highlighted and the required
// area is shown as a horizontal line. format is an image format
// supported by gonum.org/v1/plot, e.g. "png" or "svg".
func Chart(w io.Writer, o *reliefsize.SizingOutputs, width, height vg.Length, format string) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = "Standard orifice areas"
	var selectedName string
	if o != nil {
		if _, ok := reliefsize.FindOrifice(o.SelectedOrifice); !ok {
			return fmt.Errorf("reliefutil: unknown orifice %q", o.SelectedOrifice)
		}
		selectedName = o.SelectedOrifice
		p.Title.Text = fmt.Sprintf("Required area %.2f mm²: orifice %s (%.1f%%)",
			o.RequiredArea, o.SelectedOrifice, o.PercentUsed)
	}
	p.X.Label.Text = "Orifice"
	p.Y.Label.Text = "Effective area (mm²)"

	sizes := reliefsize.OrificeSizes()
	all := make(plotter.Values, len(sizes))
	selected := make(plotter.Values, len(sizes))
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.Designation
		if s.Designation == selectedName {
			selected[i] = s.AreaMM2
		} else {
			all[i] = s.AreaMM2
		}
	}

	bw := vg.Points(12)
	standard, err := plotter.NewBarChart(all, bw)
	if err != nil {
		return err
	}
	standard.LineStyle.Width = 0
	standard.Color = color.Gray{Y: 180}
	p.Add(standard)
	p.Legend.Add("standard orifice", standard)

	if o != nil {
		chosen, err := plotter.NewBarChart(selected, bw)
		if err != nil {
			return err
		}
		chosen.LineStyle.Width = 0
		chosen.Color = plotutil.Color(0)

		required := plotter.NewFunction(func(float64) float64 { return o.RequiredArea })
		required.Color = plotutil.Color(1)
		required.Dashes = plotutil.Dashes(1)
		required.Width = vg.Points(1)

		p.Add(chosen, required)
		p.Legend.Add("selected orifice", chosen)
		p.Legend.Add("required area", required)
	}
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(names...)
	p.Y.Min = 0

	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
