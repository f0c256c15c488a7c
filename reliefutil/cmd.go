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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lnashier/viper"
	"github.com/skratchdot/open-golang/open"
	"github.com/spatialmodel/reliefsize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to reliefsize.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "method",
			usage: `
              method specifies the sizing method: gas, liquid, steam, or two_phase.
              It is used for scenarios that do not specify their own method.`,
			shorthand:  "m",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), batchCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Name",
			usage: `
              Scenario.Name identifies the relief device, for example by its tag number.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.MassFlowRate",
			usage: `
              Scenario.MassFlowRate is the required relieving mass flow rate, in Units.MassFlow units.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Temperature",
			usage: `
              Scenario.Temperature is the relieving temperature, in Units.Temperature units.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Pressure",
			usage: `
              Scenario.Pressure is the relieving pressure (gauge), in Units.Pressure units.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Backpressure",
			usage: `
              Scenario.Backpressure is the total backpressure (gauge), in Units.Pressure units.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.MolecularWeight",
			usage: `
              Scenario.MolecularWeight is the molecular weight of the gas or vapor [kg/kmol].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Compressibility",
			usage: `
              Scenario.Compressibility is the compressibility factor Z of the gas or vapor.
              If it is zero, Z = 1 is assumed.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.SpecificHeatRatio",
			usage: `
              Scenario.SpecificHeatRatio is the ideal gas specific heat ratio k.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.VaporFraction",
			usage: `
              Scenario.VaporFraction is the mass fraction of vapor at the inlet, used
              for two-phase relief when Scenario.TwoPhaseDensity is not given.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.GasViscosity",
			usage: `
              Scenario.GasViscosity is the gas viscosity, in Units.Viscosity units.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.LiquidDensity",
			usage: `
              Scenario.LiquidDensity is the liquid density, in Units.Density units.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.LiquidViscosity",
			usage: `
              Scenario.LiquidViscosity is the liquid viscosity, in Units.Viscosity units.
              If it is given, the liquid area is corrected for viscosity.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.Omega",
			usage: `
              Scenario.Omega is the two-phase omega parameter. If it is not given,
              two-phase relief is sized as the larger of the gas and liquid areas.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.TwoPhaseDensity",
			usage: `
              Scenario.TwoPhaseDensity is the two-phase inlet density, in Units.Density units.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.DischargeCoefficient",
			usage: `
              Scenario.DischargeCoefficient overrides the default effective discharge
              coefficient Kd of the sizing method.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.BackpressureCorrection",
			usage: `
              Scenario.BackpressureCorrection overrides the calculated backpressure correction.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.CombinationCorrection",
			usage: `
              Scenario.CombinationCorrection is the combination correction Kc for a
              rupture disk installed upstream of the valve.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.SetPressure",
			usage: `
              Scenario.SetPressure is the valve set pressure (gauge), in Units.Pressure units.
              If it is not given, the relieving pressure is used.
              Leave it blank if it does not apply.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.BackpressureType",
			usage: `
              Scenario.BackpressureType is either superimposed or built_up.`,
			defaultVal: "superimposed",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.ValveType",
			usage: `
              Scenario.ValveType is conventional, balanced_bellows, or pilot_operated.`,
			defaultVal: "conventional",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Scenario.RuptureDisk",
			usage: `
              Scenario.RuptureDisk specifies that a rupture disk is installed upstream of the
              valve. If Scenario.CombinationCorrection is blank, Kc = 0.9 is used.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Units.MassFlow",
			usage: `
              Units.MassFlow is the unit symbol for mass flow inputs, for example kg/h or lb/h.
              If it is blank, kg/h is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Units.Temperature",
			usage: `
              Units.Temperature is the unit symbol for temperature inputs, for example C or F.
              If it is blank, C is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Units.Pressure",
			usage: `
              Units.Pressure is the unit symbol for pressure inputs, for example kPa or psi.
              If it is blank, kPa is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Units.Density",
			usage: `
              Units.Density is the unit symbol for density inputs, for example kg/m3 or lb/ft3.
              If it is blank, kg/m3 is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Units.Viscosity",
			usage: `
              Units.Viscosity is the unit symbol for viscosity inputs, for example cP or Pa.s.
              If it is blank, cP is used.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "SuperheatTable",
			usage: `
              SuperheatTable is the path to a TOML file of steam superheat correction
              tables. If it is blank, saturated steam is assumed.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), batchCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "Edition",
			usage: `
              Edition selects the superheat correction table edition.`,
			defaultVal: "API520-10",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), batchCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "CriticalRatio",
			usage: `
              CriticalRatio selects how the two-phase critical pressure ratio is
              calculated from omega: approximation or leung.`,
			defaultVal: "approximation",
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), batchCmd.Flags(), chartCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies user-defined output variables. Each variable is
              an expression of the model variables (MassFlowRate, Temperature, Pressure,
              Backpressure, RequiredArea, RequiredAreaIn2, OrificeArea, OrificeAreaIn2,
              PercentUsed, RatedCapacity, DischargeCoefficient, BackpressureCorrection,
              CriticalFlow, and NumValves) or of other output variables. The functions
              sqrt(x), pow(x, y), ceil(x), min(x, y), and max(x, y) are available.
              For example: '{"Margin":"100 - PercentUsed"}'.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{sizeCmd.Flags(), batchCmd.Flags()},
		},
		{
			name: "ScenarioFile",
			usage: `
              ScenarioFile is the path to a TOML file of [[Scenario]] tables or to an
              .xlsx spreadsheet with one scenario per row. It can include environment
              variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired .xlsx results file. It can include
              environment variables.`,
			shorthand:  "o",
			defaultVal: "reliefsize_results.xlsx",
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can include
              environment variables. If LogFile is left blank, the logfile will be saved in
              the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
		{
			name: "Workers",
			usage: `
              Workers is the number of scenarios sized concurrently. If it is less than 1,
              the number of processors is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
		{
			name: "ChartFile",
			usage: `
              ChartFile is the path to the chart image. The image format (png, svg,
              pdf, ...) is taken from the file extension.`,
			defaultVal: "reliefsize_chart.png",
			flagsets:   []*pflag.FlagSet{chartCmd.Flags()},
		},
		{
			name: "OpenChart",
			usage: `
              OpenChart specifies whether to open the chart in the default viewer
              after it is created.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{chartCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables, e.g.
	// RELIEFSIZE_SCENARIO_PRESSURE.
	Cfg.SetEnvPrefix("RELIEFSIZE")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.StringP(option.name, option.shorthand, strings.TrimSpace(b.String()), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(sizeCmd)
	Root.AddCommand(batchCmd)
	Root.AddCommand(orificesCmd)
	Root.AddCommand(chartCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("reliefsize: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "reliefsize",
	Short: "Pressure relief device sizing.",
	Long: `reliefsize sizes pressure relief valves for gas, liquid, steam, and
two-phase relief according to API-520 Part I and selects a standard API-526
orifice. Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'RELIEFSIZE_var' where 'var' is the
name of the variable to be set, with '.' replaced by '_' (for example
RELIEFSIZE_SCENARIO_PRESSURE). Many configuration variables are additionally
allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of reliefsize.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("reliefsize v%s\n", reliefsize.Version)
	},
	DisableAutoGenTag: true,
}

// outputter parses the OutputVariables configuration.
func outputter() (*Outputter, error) {
	vars, err := GetStringMapString("OutputVariables", Cfg)
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		return nil, nil
	}
	return NewOutputter(checkOutputVars(vars), nil)
}

// sizeCmd sizes a single relief device.
var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a relief device.",
	Long: `size calculates the required effective area of a relief device for the
scenario described by the Scenario.* and Units.* configuration variables and
selects a standard orifice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := checkMethod(Cfg.GetString("method"), false)
		if err != nil {
			return err
		}
		s, err := ScenarioFromConfig(Cfg)
		if err != nil {
			return err
		}
		sizer, err := SizerFromConfig(Cfg)
		if err != nil {
			return err
		}
		o, err := outputter()
		if err != nil {
			return err
		}
		_, err = Size(cmd.OutOrStdout(), sizer, s, method, o)
		return err
	},
	DisableAutoGenTag: true,
}

// batchCmd sizes all of the relief devices in a scenario file.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Size relief devices listed in a file.",
	Long: `batch sizes every scenario in the ScenarioFile concurrently, writes the
results to the OutputFile spreadsheet, and logs summary statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := checkMethod(Cfg.GetString("method"), false)
		if err != nil {
			return err
		}
		scenarioFile := Cfg.GetString("ScenarioFile")
		if scenarioFile == "" {
			return fmt.Errorf(`you need to specify a scenario file configuration variable (for example: ScenarioFile="scenarios.toml")`)
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		sizer, err := SizerFromConfig(Cfg)
		if err != nil {
			return err
		}
		o, err := outputter()
		if err != nil {
			return err
		}
		return RunBatch(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile,
			scenarioFile, sizer, method, Cfg.GetInt("Workers"), o)
	},
	DisableAutoGenTag: true,
}

var orificesCmd = &cobra.Command{
	Use:   "orifices",
	Short: "List the standard orifices.",
	Long:  "orifices prints the API-526 standard orifice designations and effective areas.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return PrintOrifices(cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

// chartCmd draws the standard orifices and, if a scenario is configured,
// the required area.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Chart the standard orifices.",
	Long: `chart creates a bar chart of the standard orifice areas. If the
configured scenario has a non-zero Scenario.MassFlowRate, it is sized and the
selected orifice and required area are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := checkMethod(Cfg.GetString("method"), false)
		if err != nil {
			return err
		}
		chartFile, err := checkOutputFile(Cfg.GetString("ChartFile"))
		if err != nil {
			return err
		}
		s, err := ScenarioFromConfig(Cfg)
		if err != nil {
			return err
		}
		sizer, err := SizerFromConfig(Cfg)
		if err != nil {
			return err
		}
		if err := WriteChart(chartFile, sizer, s, method); err != nil {
			return err
		}
		cmd.Printf("chart saved to %s\n", chartFile)
		if Cfg.GetBool("OpenChart") {
			return open.Run(chartFile)
		}
		return nil
	},
	DisableAutoGenTag: true,
}
