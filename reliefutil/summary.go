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

	"github.com/GaryBoone/GoStats/stats"
	"github.com/gonum/floats"
)

// Summary holds aggregate statistics for a set of sizing results.
type Summary struct {
	// Count is the number of results and Failed is the number of
	// results that could not be sized.
	Count, Failed int

	// Oversized is the number of scenarios whose required area exceeds
	// the largest standard orifice.
	Oversized int

	// MeanPercentUsed, StdDevPercentUsed and MaxPercentUsed describe
	// orifice utilization [%] of the successful results.
	MeanPercentUsed, StdDevPercentUsed, MaxPercentUsed float64

	// TotalRequiredArea and MaxRequiredArea are in [mm²].
	TotalRequiredArea, MaxRequiredArea float64

	// Largest is the name of the scenario with the largest required area.
	Largest string
}

// Summarize calculates summary statistics for results.
func Summarize(results []*Result) Summary {
	s := Summary{Count: len(results)}
	var pct, area []float64
	var names []string
	for _, r := range results {
		if r.Err != nil || r.Outputs == nil {
			s.Failed++
			continue
		}
		if r.Outputs.PercentUsed > 100 {
			s.Oversized++
		}
		pct = append(pct, r.Outputs.PercentUsed)
		area = append(area, r.Outputs.RequiredArea)
		names = append(names, r.Scenario.Name)
	}
	if len(pct) == 0 {
		return s
	}
	s.MeanPercentUsed = stats.StatsMean(pct)
	if len(pct) > 1 {
		s.StdDevPercentUsed = stats.StatsSampleStandardDeviation(pct)
	}
	s.MaxPercentUsed = floats.Max(pct)
	s.TotalRequiredArea = floats.Sum(area)
	i := floats.MaxIdx(area)
	s.MaxRequiredArea = area[i]
	s.Largest = names[i]
	return s
}

// Fprint writes the summary to w.
func (s Summary) Fprint(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d scenarios sized, %d failed, %d exceed the largest orifice\n"+
		"orifice utilization: mean %.1f%%, std. dev. %.1f%%, max %.1f%%\n"+
		"total required area %.2f mm²; largest %.2f mm² (%s)\n",
		s.Count-s.Failed, s.Failed, s.Oversized,
		s.MeanPercentUsed, s.StdDevPercentUsed, s.MaxPercentUsed,
		s.TotalRequiredArea, s.MaxRequiredArea, s.Largest)
	return err
}
