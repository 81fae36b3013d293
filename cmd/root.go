package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/strucconv/internal/version"
)

// Cfg holds the effective configuration: flags, then environment
// variables (STRUCCONV_...), then the --config file.
var Cfg *viper.Viper

type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

var rootCmd = &cobra.Command{
	Use:   "strucconv",
	Short: "Offshore structural model converter",
	Long: `strucconv - Offshore Structural Model Converter

A CLI tool that reads beam models of offshore structures (jackets,
platforms) and prepares them for exchange between engineering tools.

It can:
  - Import Sesam concept models exported as XML
  - Detect beam intersections and build the connection groups
  - Link support points to beam ends
  - Match beams between two independently authored models
  - Compute cross-section and line type properties

Configuration can be given as flags, as environment variables named
STRUCCONV_<option> (dots replaced by underscores), in a .env file in the
working directory, or in a TOML/YAML/JSON file passed with --config.`,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   strucconv v%-45s║\n", version.Version)
		fmt.Println("  ║   Offshore Structural Model Converter                     ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Sesam concept model import")
		fmt.Println("    • Beam intersection detection and connection groups")
		fmt.Println("    • Support linking and model exclusions")
		fmt.Println("    • Beam matching between models")
		fmt.Println("    • Section and line type properties")
		fmt.Println()
		fmt.Println("  Use 'strucconv --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(importCmd)
	importCmd.AddCommand(importSesamCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func init() {
	run := []*pflag.FlagSet{rootCmd.PersistentFlags()}
	options = []option{
		{
			name:       "config",
			usage:      "configuration file (toml, yaml or json)",
			defaultVal: "",
			flagsets:   run,
		},
		{
			name:       "LogFile",
			usage:      "file receiving warnings and exclusions; empty logs to standard error",
			defaultVal: "",
			flagsets:   run,
		},
		{
			name:       "MinLength",
			usage:      "beams shorter than this are excluded and no shorter piece is cut [m]",
			defaultVal: 0.0,
			flagsets:   run,
		},
		{
			name:       "ProximityTol",
			usage:      "distance below which beam lines are joined [m]",
			defaultVal: 0.1,
			flagsets:   run,
		},
		{
			name:       "AngleTol",
			usage:      "angle below which beam lines are parallel [deg]",
			defaultVal: 1.0,
			flagsets:   run,
		},
		{
			name:       "ExcludeSections",
			usage:      "beams with a segment of these sections are excluded",
			defaultVal: []string{},
			flagsets:   run,
		},
		{
			name:       "ExcludeSets",
			usage:      "beams in these sets are excluded and the sets dropped",
			defaultVal: []string{},
			flagsets:   run,
		},
		{
			name:       "ExcludeLoadCases",
			usage:      "equipment placed in these load cases is not imported",
			defaultVal: []string{},
			flagsets:   run,
		},
		{
			name:       "Environment.WaterDepth",
			usage:      "water depth [m]",
			defaultVal: 100.0,
			flagsets:   run,
		},
		{
			name:       "Environment.WaterSurfaceZ",
			usage:      "elevation of the still water surface [m]",
			defaultVal: 0.0,
			flagsets:   run,
		},
		{
			name:       "Environment.MaxWaveHeight",
			usage:      "height above the surface reached by waves; higher segments take air drag [m]",
			defaultVal: 15.0,
			flagsets:   run,
		},
	}
	for _, axis := range []string{"X", "Y", "Z"} {
		for _, bound := range []string{"min", "max"} {
			options = append(options, option{
				name:       "Limits." + axis + bound,
				usage:      fmt.Sprintf("beams whose mean %s is beyond this %s are excluded; empty for none [m]", axis, bound),
				defaultVal: "",
				flagsets:   run,
			})
		}
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("STRUCCONV")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 {
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case []string:
				set.StringSliceP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

// setConfig loads .env from the working directory, then the configuration
// file if one is given.
func setConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("strucconv: problem reading .env: %v", err)
	}
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("strucconv: problem reading configuration file: %v", err)
		}
	}
	return nil
}
