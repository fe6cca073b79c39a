// SPDX-License-Identifier: MIT

// Package config loads run configuration from defaults, an optional YAML
// file, UJSSP_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/emmelineperneel/UJSSP/instance"
	"github.com/emmelineperneel/UJSSP/numeric"
	"github.com/emmelineperneel/UJSSP/solver"
)

// EnvPrefix prefixes every environment override, e.g. UJSSP_WORKERS.
const EnvPrefix = "UJSSP"

var (
	// ErrRead indicates an unreadable or malformed configuration source.
	ErrRead = errors.New("config: cannot read configuration")

	// ErrInvalid indicates a configuration value out of range.
	ErrInvalid = errors.New("config: invalid configuration")
)

// Config is the full configuration surface of a run.
type Config struct {
	Mode      string        `mapstructure:"mode" yaml:"mode" validate:"required"`
	Precision string        `mapstructure:"precision" yaml:"precision,omitempty"`
	Bits      uint          `mapstructure:"bits" yaml:"bits" validate:"gte=64"`
	TimeLimit time.Duration `mapstructure:"time_limit" yaml:"time_limit,omitempty" validate:"gte=0"`

	MatchTolerance float64 `mapstructure:"match_tolerance" yaml:"match_tolerance" validate:"gte=0"`
	PruneTolerance float64 `mapstructure:"prune_tolerance" yaml:"prune_tolerance" validate:"gte=0"`

	Order string `mapstructure:"order" yaml:"order"`
	Seed  int64  `mapstructure:"seed" yaml:"seed"`

	Workers         int  `mapstructure:"workers" yaml:"workers" validate:"gte=1"`
	TrackSubsets    bool `mapstructure:"track_subsets" yaml:"track_subsets"`
	Speedups        bool `mapstructure:"speedups" yaml:"speedups"`
	CheckInvariants bool `mapstructure:"check_invariants" yaml:"check_invariants"`

	Format      string `mapstructure:"format" yaml:"format" validate:"required"`
	Output      string `mapstructure:"output" yaml:"output,omitempty"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty"`
	Verbose     bool   `mapstructure:"verbose" yaml:"verbose"`

	// timeLimitSet is false when TimeLimit fell back to the mode default.
	timeLimitSet bool
}

var validate = validator.New()

// keys lists every configuration key; flags use the same names with
// dashes instead of underscores.
var keys = []string{
	"mode", "precision", "bits", "time_limit",
	"match_tolerance", "prune_tolerance",
	"order", "seed", "workers",
	"track_subsets", "speedups", "check_invariants",
	"format", "output", "metrics_file", "verbose",
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:           instance.Additive.String(),
		Bits:           numeric.DefaultPrecision,
		MatchTolerance: solver.DefaultMatchTolerance,
		PruneTolerance: solver.DefaultPruneTolerance,
		Order:          instance.OrderDefault.String(),
		Seed:           1,
		Workers:        1,
		TrackSubsets:   true,
		Speedups:       true,
		Format:         "text",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("precision", d.Precision)
	v.SetDefault("bits", d.Bits)
	v.SetDefault("match_tolerance", d.MatchTolerance)
	v.SetDefault("prune_tolerance", d.PruneTolerance)
	v.SetDefault("order", d.Order)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("track_subsets", d.TrackSubsets)
	v.SetDefault("speedups", d.Speedups)
	v.SetDefault("check_invariants", d.CheckInvariants)
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("verbose", d.Verbose)
	// time_limit has no default: unset means "mode default".
}

// FlagName maps a configuration key to its flag name.
func FlagName(key string) string { return strings.ReplaceAll(key, "_", "-") }

// Load resolves the configuration. path may be empty; flags may be nil.
// Only flags the user changed override lower layers.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return Config{}, fmt.Errorf("%w: env %s: %v", ErrRead, k, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
		}
	}

	if flags != nil {
		for _, k := range keys {
			if f := flags.Lookup(FlagName(k)); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return Config{}, fmt.Errorf("%w: flag %s: %v", ErrRead, f.Name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	cfg.timeLimitSet = v.IsSet("time_limit")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and that every name parses.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for _, tol := range []float64{c.MatchTolerance, c.PruneTolerance} {
		if math.IsInf(tol, 0) || math.IsNaN(tol) {
			return fmt.Errorf("%w: tolerance %g", ErrInvalid, tol)
		}
	}
	if _, err := c.InstanceMode(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.SortOrder(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Precision != "" {
		if _, err := solver.ParsePrecision(c.Precision); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	return nil
}

// InstanceMode parses Mode.
func (c Config) InstanceMode() (instance.Mode, error) { return instance.ParseMode(c.Mode) }

// SortOrder parses Order.
func (c Config) SortOrder() (instance.Order, error) { return instance.ParseOrder(c.Order) }

// SolverOptions converts the configuration into solver options for mode.
// Unset precision and time limit keep the mode defaults.
func (c Config) SolverOptions(mode instance.Mode) ([]solver.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	p := solver.DefaultOptions(mode).Precision
	if c.Precision != "" {
		p, _ = solver.ParsePrecision(c.Precision)
	}

	opts := []solver.Option{
		solver.WithPrecision(p),
		solver.WithMatchTolerance(c.MatchTolerance),
		solver.WithPruneTolerance(c.PruneTolerance),
		solver.WithWorkers(c.Workers),
	}
	if p == solver.Arbitrary {
		opts = append(opts, solver.WithBits(c.Bits))
	}
	if c.timeLimitSet {
		opts = append(opts, solver.WithTimeLimit(c.TimeLimit))
	}
	if !c.TrackSubsets {
		opts = append(opts, solver.WithoutSubsets())
	}
	if !c.Speedups {
		opts = append(opts, solver.WithoutSpeedups())
	}
	if c.CheckInvariants {
		opts = append(opts, solver.WithInvariantChecks())
	}
	return opts, nil
}

// WithTimeLimit returns a copy with an explicit time limit.
func (c Config) WithTimeLimit(d time.Duration) Config {
	c.TimeLimit, c.timeLimitSet = d, true
	return c
}

// WriteYAML renders c as a configuration file Load accepts.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
