// Package config holds the engine's numeric settings: working precision,
// display rounding and the Newton-Raphson parameters. Settings come from
// defaults, an optional TOML or YAML file, and FINCALC_* environment
// variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

// Environment variables read by ApplyEnv.
const (
	EnvPrecision     = "FINCALC_PRECISION"
	EnvDisplayPlaces = "FINCALC_DISPLAY_PLACES"
	EnvMaxIterations = "FINCALC_MAX_ITERATIONS"
	EnvTolerance     = "FINCALC_TOLERANCE"
	EnvDamping       = "FINCALC_DAMPING"
)

// MaxDisplayPlaces bounds DisplayPlaces.
const MaxDisplayPlaces = 9

// Config is the complete engine configuration.
type Config struct {
	// Precision is the number of fractional digits kept by every rounded
	// operation.
	Precision int32 `toml:"precision" yaml:"precision"`
	// DisplayPlaces is the number of fractional digits shown in formatted
	// output. Computation never rounds to it.
	DisplayPlaces int32        `toml:"display_places" yaml:"display_places"`
	Solver        SolverConfig `toml:"solver" yaml:"solver"`
}

// SolverConfig mirrors solver.Settings.
type SolverConfig struct {
	Guess         Decimal `toml:"guess" yaml:"guess"`
	Step          Decimal `toml:"step" yaml:"step"`
	Tolerance     Decimal `toml:"tolerance" yaml:"tolerance"`
	MinDerivative Decimal `toml:"min_derivative" yaml:"min_derivative"`
	MaxIterations int     `toml:"max_iterations" yaml:"max_iterations"`
	// Damping limits each Newton step to Damping × |guess|.
	Damping Decimal `toml:"damping" yaml:"damping"`
}

// Default returns the calculator defaults: 28 digits of working precision,
// 2 display places and solver.DefaultSettings.
func Default() Config {
	s := solver.DefaultSettings()
	return Config{
		Precision:     num.DefaultScale,
		DisplayPlaces: 2,
		Solver: SolverConfig{
			Guess:         Decimal{s.Guess},
			Step:          Decimal{s.Step},
			Tolerance:     Decimal{s.Tolerance},
			MinDerivative: Decimal{s.MinDerivative},
			MaxIterations: s.MaxIterations,
			Damping:       Decimal{s.Damping},
		},
	}
}

// Load returns Default overlaid with the file at path (if path is not empty)
// and then with the environment. The format follows the extension: .toml,
// .yaml or .yml. Keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(os.ExpandEnv(path)); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported file type %q: %w", ext, num.ErrInvalidInput)
	}
	return nil
}

// LoadDotEnv copies variables from a .env file into the process
// environment without overriding ones already set. A missing file is not an
// error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FINCALC_* variables that are set.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv(EnvPrecision); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return envError(EnvPrecision, v, err)
		}
		c.Precision = int32(n)
	}
	if v, ok := os.LookupEnv(EnvDisplayPlaces); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
		if err != nil {
			return envError(EnvDisplayPlaces, v, err)
		}
		c.DisplayPlaces = int32(n)
	}
	if v, ok := os.LookupEnv(EnvMaxIterations); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return envError(EnvMaxIterations, v, err)
		}
		c.Solver.MaxIterations = n
	}
	if v, ok := os.LookupEnv(EnvTolerance); ok {
		d, err := num.Parse(v)
		if err != nil {
			return envError(EnvTolerance, v, err)
		}
		c.Solver.Tolerance = Decimal{d}
	}
	if v, ok := os.LookupEnv(EnvDamping); ok {
		d, err := num.Parse(v)
		if err != nil {
			return envError(EnvDamping, v, err)
		}
		c.Solver.Damping = Decimal{d}
	}
	return nil
}

func envError(name, value string, err error) error {
	return fmt.Errorf("config: %s=%q: %v: %w", name, value, err, num.ErrInvalidInput)
}

// Validate reports settings the engine cannot run with.
func (c Config) Validate() error {
	if _, err := num.NewContext(c.Precision); err != nil {
		return fmt.Errorf("config: precision: %w", err)
	}
	if c.DisplayPlaces < 0 || c.DisplayPlaces > MaxDisplayPlaces {
		return fmt.Errorf("config: display places %d outside [0, %d]: %w", c.DisplayPlaces, MaxDisplayPlaces, num.ErrInvalidInput)
	}
	if err := c.SolverSettings().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Context returns the arithmetic context for Precision.
func (c Config) Context() (num.Context, error) {
	return num.NewContext(c.Precision)
}

// SolverSettings converts the solver section.
func (c Config) SolverSettings() solver.Settings {
	return solver.Settings{
		Guess:         c.Solver.Guess.Decimal,
		Step:          c.Solver.Step.Decimal,
		Tolerance:     c.Solver.Tolerance.Decimal,
		MinDerivative: c.Solver.MinDerivative.Decimal,
		MaxIterations: c.Solver.MaxIterations,
		Damping:       c.Solver.Damping.Decimal,
	}
}
