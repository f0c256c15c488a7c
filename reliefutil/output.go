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
	"math"
	"os"
	"sort"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/spatialmodel/reliefsize"
)

// Outputter calculates user-defined output variables from sizing results.
// Output variables are expressions of the scenario and result
// variables listed in Variables, and they may refer to other output
// variables.
type Outputter struct {
	expressions map[string]*govaluate.EvaluableExpression
}

// Variables lists the variables that output expressions may use.
var Variables = []string{
	"MassFlowRate", "Temperature", "Pressure", "Backpressure",
	"RequiredArea", "RequiredAreaIn2", "OrificeArea", "OrificeAreaIn2",
	"PercentUsed", "RatedCapacity", "DischargeCoefficient",
	"BackpressureCorrection", "CriticalFlow", "NumValves",
}

// NewOutputter parses the output variable expressions in
// outputVariables. In addition to outputFunctions, the functions
// 'sqrt(x)', 'pow(x, y)', 'ceil(x)', 'min(x, y)' and 'max(x, y)' are
// available.
func NewOutputter(outputVariables map[string]string, outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {
	funcs := map[string]govaluate.ExpressionFunction{
		"sqrt": floatFunc("sqrt", 1, func(x []float64) float64 { return math.Sqrt(x[0]) }),
		"ceil": floatFunc("ceil", 1, func(x []float64) float64 { return math.Ceil(x[0]) }),
		"pow":  floatFunc("pow", 2, func(x []float64) float64 { return math.Pow(x[0], x[1]) }),
		"min":  floatFunc("min", 2, func(x []float64) float64 { return math.Min(x[0], x[1]) }),
		"max":  floatFunc("max", 2, func(x []float64) float64 { return math.Max(x[0], x[1]) }),
	}
	for k, f := range outputFunctions {
		funcs[k] = f
	}

	known := make(map[string]bool)
	for _, v := range Variables {
		known[v] = true
	}
	o := &Outputter{expressions: make(map[string]*govaluate.EvaluableExpression)}
	for name, expr := range outputVariables {
		if known[name] {
			return nil, fmt.Errorf("reliefutil: output variable name '%s' is already a model variable", name)
		}
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("reliefutil: output variable '%s': %v", name, err)
		}
		o.expressions[name] = e
	}
	for name, e := range o.expressions {
		for _, v := range e.Vars() {
			if _, ok := o.expressions[v]; !known[v] && !ok {
				return nil, fmt.Errorf("reliefutil: output variable '%s': undefined variable name '%s'", name, v)
			}
		}
	}
	return o, nil
}

// floatFunc returns an expression function named name that takes n
// numeric arguments.
func floatFunc(name string, n int, f func([]float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != n {
			return nil, fmt.Errorf("reliefutil: got %d arguments for function '%s', but needs %d", len(args), name, n)
		}
		x := make([]float64, n)
		for i, a := range args {
			v, ok := a.(float64)
			if !ok {
				return nil, fmt.Errorf("reliefutil: argument %d of function '%s' is not a number", i+1, name)
			}
			x[i] = v
		}
		return f(x), nil
	}
}

// Names returns the names of the output variables in sorted order.
func (o *Outputter) Names() []string {
	names := make([]string, 0, len(o.expressions))
	for n := range o.expressions {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Evaluate calculates the output variables for the given inputs and
// sizing outputs.
func (o *Outputter) Evaluate(in reliefsize.SizingInputs, out *reliefsize.SizingOutputs) (map[string]float64, error) {
	critical := 0.
	if out.CriticalFlow {
		critical = 1
	}
	params := map[string]interface{}{
		"MassFlowRate":           in.MassFlowRate,
		"Temperature":            in.Temperature,
		"Pressure":               in.Pressure,
		"Backpressure":           in.Backpressure,
		"RequiredArea":           out.RequiredArea,
		"RequiredAreaIn2":        out.RequiredAreaIn2,
		"OrificeArea":            out.OrificeArea,
		"OrificeAreaIn2":         out.OrificeAreaIn2,
		"PercentUsed":            out.PercentUsed,
		"RatedCapacity":          out.RatedCapacity,
		"DischargeCoefficient":   out.DischargeCoefficient,
		"BackpressureCorrection": out.BackpressureCorrection,
		"CriticalFlow":           critical,
		"NumValves":              float64(out.NumValves),
	}
	values := make(map[string]float64)
	for _, name := range o.Names() {
		if err := o.evaluate(name, params, values, nil); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// evaluate calculates output variable name, first calculating any other
// output variables it depends on. path holds the variables currently being
// calculated.
func (o *Outputter) evaluate(name string, params map[string]interface{}, values map[string]float64, path []string) error {
	if _, ok := values[name]; ok {
		return nil
	}
	for _, p := range path {
		if p == name {
			return fmt.Errorf("reliefutil: circular output variable definition: %s",
				strings.Join(append(path, name), " -> "))
		}
	}
	e := o.expressions[name]
	for _, v := range e.Vars() {
		if _, ok := o.expressions[v]; ok {
			if err := o.evaluate(v, params, values, append(path, name)); err != nil {
				return err
			}
			params[v] = values[v]
		}
	}
	result, err := e.Evaluate(params)
	if err != nil {
		return fmt.Errorf("reliefutil: evaluating output variable '%s': %v", name, err)
	}
	switch r := result.(type) {
	case float64:
		values[name] = r
	case bool:
		values[name] = 0
		if r {
			values[name] = 1
		}
	default:
		return fmt.Errorf("reliefutil: output variable '%s' is not a number: %v", name, result)
	}
	return nil
}

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) map[string]string {
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o
}
