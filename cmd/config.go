package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexiusacademia/strucconv/internal/concept"
	"github.com/alexiusacademia/strucconv/internal/modelio"
	"github.com/alexiusacademia/strucconv/internal/sesam"
)

// Settings is the run configuration in the layout of a configuration file.
type Settings struct {
	LogFile          string
	MinLength        float64
	ProximityTol     float64
	AngleTol         float64
	ExcludeSections  []string
	ExcludeSets      []string
	ExcludeLoadCases []string
	Limits           LimitSettings
	Environment      concept.Environment
}

// LimitSettings are the optional coordinate limits. Nil is unbounded.
type LimitSettings struct {
	Xmin, Xmax *float64 `toml:",omitempty"`
	Ymin, Ymax *float64 `toml:",omitempty"`
	Zmin, Zmax *float64 `toml:",omitempty"`
}

// Options converts the settings to model options.
func (s Settings) Options() concept.Options {
	l := s.Limits
	return concept.Options{
		MinLength:        s.MinLength,
		ProximityTol:     s.ProximityTol,
		AngleTol:         s.AngleTol,
		ExcludeSections:  s.ExcludeSections,
		ExcludeSets:      s.ExcludeSets,
		ExcludeLoadCases: s.ExcludeLoadCases,
		Limits: concept.Limits{
			X: concept.Limit{Min: l.Xmin, Max: l.Xmax},
			Y: concept.Limit{Min: l.Ymin, Max: l.Ymax},
			Z: concept.Limit{Min: l.Zmin, Max: l.Zmax},
		},
	}
}

// ReadSettings collects the settings from cfg.
func ReadSettings(cfg *viper.Viper) (Settings, error) {
	s := Settings{
		LogFile:          cfg.GetString("LogFile"),
		MinLength:        cfg.GetFloat64("MinLength"),
		ProximityTol:     cfg.GetFloat64("ProximityTol"),
		AngleTol:         cfg.GetFloat64("AngleTol"),
		ExcludeSections:  stringList(cfg, "ExcludeSections"),
		ExcludeSets:      stringList(cfg, "ExcludeSets"),
		ExcludeLoadCases: stringList(cfg, "ExcludeLoadCases"),
		Environment: concept.Environment{
			WaterDepth:    cfg.GetFloat64("Environment.WaterDepth"),
			WaterSurfaceZ: cfg.GetFloat64("Environment.WaterSurfaceZ"),
			MaxWaveHeight: cfg.GetFloat64("Environment.MaxWaveHeight"),
		},
	}
	if s.ProximityTol <= 0 {
		return s, fmt.Errorf("ProximityTol must be positive, got %g", s.ProximityTol)
	}
	if s.MinLength < 0 {
		return s, fmt.Errorf("MinLength must not be negative, got %g", s.MinLength)
	}

	bounds := map[string]**float64{
		"Xmin": &s.Limits.Xmin, "Xmax": &s.Limits.Xmax,
		"Ymin": &s.Limits.Ymin, "Ymax": &s.Limits.Ymax,
		"Zmin": &s.Limits.Zmin, "Zmax": &s.Limits.Zmax,
	}
	for name, dst := range bounds {
		raw := cfg.Get("Limits." + name)
		if raw == nil || strings.TrimSpace(cast.ToString(raw)) == "" {
			continue
		}
		v, err := cast.ToFloat64E(strings.TrimSpace(cast.ToString(raw)))
		if err != nil {
			return s, fmt.Errorf("Limits.%s: %w", name, err)
		}
		*dst = &v
	}
	return s, nil
}

// stringList reads a list option. Items may be separated by commas or
// whitespace, as they arrive from environment variables.
func stringList(cfg *viper.Viper, key string) []string {
	items := lo.FlatMap(cast.ToStringSlice(cfg.Get(key)), func(s string, _ int) []string {
		return strings.Split(s, ",")
	})
	return lo.Compact(lo.Map(items, func(s string, _ int) string { return strings.TrimSpace(s) }))
}

// WriteSettings prints the settings as TOML.
func WriteSettings(w io.Writer, s Settings) error {
	return toml.NewEncoder(w).Encode(s)
}

// openLog opens the configured log file, or logs to standard error.
func openLog(s Settings) (*concept.Log, error) {
	if s.LogFile == "" {
		return concept.NewLog(os.Stderr), nil
	}
	return concept.OpenLog(s.LogFile)
}

// loadModel reads a model document (.json, .yaml, .yml) or a Sesam XML
// export (.xml) with the run settings applied. A document that carries its
// own environment keeps it.
func loadModel(path string, s Settings, log *concept.Log) (*concept.Model, error) {
	if strings.EqualFold(filepath.Ext(path), ".xml") {
		m := concept.New(log)
		m.Options, m.Environment = s.Options(), s.Environment
		if err := sesam.ImportFile(path, m); err != nil {
			return nil, err
		}
		return m, nil
	}

	doc, err := modelio.LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := doc.Build(log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Options = s.Options()
	if doc.Environment == nil {
		m.Environment = s.Environment
	}
	return m, nil
}

// openModels loads every path with the settings of cfg. All models share
// one log so that no diagnostic is lost when they write to the same file;
// the caller closes it.
func openModels(cfg *viper.Viper, paths ...string) ([]*concept.Model, *concept.Log, error) {
	s, err := ReadSettings(cfg)
	if err != nil {
		return nil, nil, err
	}
	log, err := openLog(s)
	if err != nil {
		return nil, nil, err
	}
	models := make([]*concept.Model, 0, len(paths))
	for _, path := range paths {
		m, err := loadModel(path, s, log)
		if err != nil {
			log.Close()
			return nil, nil, err
		}
		models = append(models, m)
	}
	return models, log, nil
}

// openModel is openModels for a single path. The caller closes the model.
func openModel(path string) (*concept.Model, error) {
	ms, _, err := openModels(Cfg, path)
	if err != nil {
		return nil, err
	}
	return ms[0], nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration in effect after flags, environment variables
and the configuration file are combined. The output is TOML and can be
saved and passed back with --config.

Examples:
  strucconv config --ProximityTol 0.05 --ExcludeSets bracing > run.toml
  strucconv connect -f jacket.xml --config run.toml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := ReadSettings(Cfg)
		if err != nil {
			return err
		}
		return WriteSettings(cmd.OutOrStdout(), s)
	},
}
