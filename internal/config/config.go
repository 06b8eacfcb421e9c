// SPDX-License-Identifier: MIT

// Package config loads densecalc settings from the environment.
//
// Every variable is read as DENSECALC_<NAME> and falls back to the bare
// <NAME>. Log settings nest under DENSECALC_LOGGING_, so the usual LOG_LEVEL
// and LOG_DEV work unchanged.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/kelseyhightower/envconfig"

	"github.com/katalvlaran/lvmat/internal/logging"
	"github.com/katalvlaran/lvmat/matrix"
)

// Prefix is the environment namespace.
const Prefix = "DENSECALC"

// ErrInvalid marks a configuration value outside its documented domain.
var ErrInvalid = errors.New("config: invalid value")

// Config holds the numeric policy and output settings of one densecalc run.
type Config struct {
	Tolerance          float64 `envconfig:"TOLERANCE" default:"1e-10"`
	MaxIterations      int     `envconfig:"MAX_ITERATIONS" default:"1000"`
	ConditionThreshold float64 `envconfig:"CONDITION_THRESHOLD" default:"1e12"`
	StrassenThreshold  int     `envconfig:"STRASSEN_THRESHOLD" default:"64"`
	Strict             bool    `envconfig:"STRICT" default:"false"`
	Precision          int     `envconfig:"PRECISION" default:"6"`

	Logging LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration Load yields on an empty environment.
func Default() *Config {
	return &Config{
		Tolerance:          matrix.DefaultTolerance,
		MaxIterations:      matrix.DefaultMaxIterations,
		ConditionThreshold: matrix.DefaultConditionThreshold,
		StrassenThreshold:  matrix.DefaultStrassenThreshold,
		Precision:          6,
		Logging:            LogConfig{Level: "info"},
	}
}

// Validate rejects values the matrix option constructors would panic on.
func (c *Config) Validate() error {
	switch {
	case math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %g", ErrInvalid, c.Tolerance)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalid, c.MaxIterations)
	case math.IsNaN(c.ConditionThreshold) || math.IsInf(c.ConditionThreshold, 0) || c.ConditionThreshold <= 1:
		return fmt.Errorf("%w: condition threshold %g", ErrInvalid, c.ConditionThreshold)
	case c.StrassenThreshold < 1:
		return fmt.Errorf("%w: strassen threshold %d", ErrInvalid, c.StrassenThreshold)
	case c.Precision < -1:
		return fmt.Errorf("%w: precision %d", ErrInvalid, c.Precision)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// Options translates the numeric policy into matrix options.
// Call Validate first; invalid values panic inside the constructors.
func (c *Config) Options() []matrix.Option {
	opts := []matrix.Option{
		matrix.WithTolerance(c.Tolerance),
		matrix.WithMaxIterations(c.MaxIterations),
		matrix.WithConditionThreshold(c.ConditionThreshold),
		matrix.WithStrassenThreshold(c.StrassenThreshold),
	}
	if c.Strict {
		opts = append(opts, matrix.WithStrictConvergence())
	}

	return opts
}

// LoggerConfig returns the logging.Config for this run.
func (c *Config) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Development = c.Logging.Development

	return cfg
}
