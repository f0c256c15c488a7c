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
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/reliefsize"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// Size sizes a single relief scenario and writes the results to w.
// defaultMethod is used if s does not specify a method, and o, if not
// nil, calculates output variables.
func Size(w io.Writer, sizer *reliefsize.Sizer, s *Scenario, defaultMethod reliefsize.Method, o *Outputter) (*Result, error) {
	r := &Result{Scenario: s}
	var err error
	if r.Method, err = s.method(defaultMethod); err != nil {
		return nil, err
	}
	in, err := s.Inputs()
	if err != nil {
		return nil, err
	}
	if r.Outputs, err = sizer.CalculateSizing(in, r.Method); err != nil {
		return nil, err
	}
	if o != nil {
		if r.Values, err = o.Evaluate(in, r.Outputs); err != nil {
			return nil, err
		}
	}
	return r, PrintResult(w, r)
}

// PrintResult writes a human-readable description of r to w.
func PrintResult(w io.Writer, r *Result) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(w, "%s: %v\n", r.Scenario.Name, r.Err)
		return err
	}
	out := r.Outputs
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", r.Scenario.Name, r.Method)
	fmt.Fprintf(&b, "  Required area:     %.2f mm² (%.4f in²)\n", out.RequiredArea, out.RequiredAreaIn2)
	fmt.Fprintf(&b, "  Selected orifice:  %s (%.0f mm²), %.1f%% used\n", out.SelectedOrifice, out.OrificeArea, out.PercentUsed)
	fmt.Fprintf(&b, "  Rated capacity:    %.4g\n", out.RatedCapacity)
	fmt.Fprintf(&b, "  Kd = %.4f, Kb = %.4f, critical flow: %v\n",
		out.DischargeCoefficient, out.BackpressureCorrection, out.CriticalFlow)
	for _, m := range out.Messages {
		fmt.Fprintf(&b, "  - %s\n", m)
	}
	names := make([]string, 0, len(r.Values))
	for n := range r.Values {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(&b, "  %s = %g\n", n, r.Values[n])
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RunBatch sizes the scenarios in scenarioFile and saves the results
// to outputFile, logging progress to logFile and to the output of
// cobraCommand. workers is the number of concurrent calculations.
func RunBatch(cobraCommand *cobra.Command, logFile, outputFile, scenarioFile string, sizer *reliefsize.Sizer,
	defaultMethod reliefsize.Method, workers int, o *Outputter) error {

	logfile, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("reliefsize: problem creating log file: %v", err)
	}
	defer logfile.Close()
	mw := io.MultiWriter(cobraCommand.OutOrStdout(), logfile)
	log.SetOutput(mw)
	defer log.SetOutput(os.Stderr)
	logger := logrus.New()
	logger.Out = mw
	logger.Formatter = logrus.StandardLogger().Formatter
	logger.Level = logrus.StandardLogger().Level
	sizer.Log = logger

	log.Println("Reading scenarios...")
	scenarios, err := ReadScenarioFile(scenarioFile)
	if err != nil {
		return err
	}
	log.Printf("Sizing %d scenarios...", len(scenarios))
	b := NewBatch(sizer, defaultMethod, workers, len(scenarios))
	b.Outputter = o
	b.Log = logger
	results := b.Size(context.Background(), scenarios)

	log.Println("Writing results...")
	if err := WriteXLSX(outputFile, results, o); err != nil {
		return err
	}
	r := b.Requests()
	log.Printf("%d unique calculations for %d scenarios", r[len(r)-1], len(scenarios))
	if err := Summarize(results).Fprint(mw); err != nil {
		return err
	}
	log.Println("Finished.")
	return nil
}

// WriteChart sizes s if it describes a flow and writes a chart of the
// standard orifices to chartFile. The image format is taken from the
// file extension.
func WriteChart(chartFile string, sizer *reliefsize.Sizer, s *Scenario, defaultMethod reliefsize.Method) error {
	var out *reliefsize.SizingOutputs
	if s != nil && s.MassFlowRate > 0 {
		r, err := Size(ioutil.Discard, sizer, s, defaultMethod, nil)
		if err != nil {
			return err
		}
		out = r.Outputs
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(chartFile)), ".")
	if format == "" {
		format = "png"
	}
	f, err := os.Create(chartFile)
	if err != nil {
		return fmt.Errorf("reliefsize: creating chart file: %v", err)
	}
	if err := Chart(f, out, 6*vg.Inch, 4*vg.Inch, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// PrintOrifices writes the standard orifice catalogue to w.
func PrintOrifices(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-11s %10s %10s\n", "Designation", "Area (mm²)", "Area (in²)"); err != nil {
		return err
	}
	for _, o := range reliefsize.OrificeSizes() {
		if _, err := fmt.Fprintf(w, "%-11s %10.0f %10.3f\n", o.Designation, o.AreaMM2, o.AreaIn2); err != nil {
			return err
		}
	}
	return nil
}
