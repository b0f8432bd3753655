// Package config holds the viper-backed runtime configuration for the
// solver CLI.
package config

import (
	"fmt"
	"runtime"

	"github.com/spf13/viper"
)

// Config is the complete runtime configuration.
type Config struct {
	Grid    GridConfig    `mapstructure:"grid"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GridConfig describes the problem grid.
type GridConfig struct {
	// Size is the full grid dimension, boundary included.
	Size int `mapstructure:"size"`
	// Initial is the starting guess written to every interior cell.
	Initial float64 `mapstructure:"initial"`
	// Boundary holds the fixed edge values.
	Boundary BoundaryConfig `mapstructure:"boundary"`
}

// BoundaryConfig holds the constant value for each grid edge.
type BoundaryConfig struct {
	Top    float64 `mapstructure:"top"`
	Bottom float64 `mapstructure:"bottom"`
	Left   float64 `mapstructure:"left"`
	Right  float64 `mapstructure:"right"`
}

// SolverConfig controls the relaxation run.
type SolverConfig struct {
	// Workers is the number of concurrent sweep workers.
	Workers int `mapstructure:"workers"`
	// Iterations is the number of full sweeps; the solver always runs
	// all of them.
	Iterations int `mapstructure:"iterations"`
	// Tolerance is the residual at which the run counts as converged.
	Tolerance float64 `mapstructure:"tolerance"`
	// SpinPause is the busy-loop length between wavefront checks.
	SpinPause int `mapstructure:"spin_pause"`
}

// MonitorConfig controls the optional websocket/metrics server.
type MonitorConfig struct {
	// Addr is the listen address; empty disables the monitor.
	Addr string `mapstructure:"addr"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Verbosity raises the log level: 0 reports outcomes only, 1 adds
	// lifecycle events, 2 adds per-iteration residuals.
	Verbosity int `mapstructure:"verbosity"`
}

// SetDefaults registers default values with viper. Called before any config
// file or environment variables are read.
func SetDefaults() {
	viper.SetDefault("grid.size", 256)
	viper.SetDefault("grid.initial", 0.0)
	viper.SetDefault("grid.boundary.top", 100.0)
	viper.SetDefault("grid.boundary.bottom", 0.0)
	viper.SetDefault("grid.boundary.left", 0.0)
	viper.SetDefault("grid.boundary.right", 0.0)

	viper.SetDefault("solver.workers", runtime.NumCPU())
	viper.SetDefault("solver.iterations", 5000)
	viper.SetDefault("solver.tolerance", 0.01)
	viper.SetDefault("solver.spin_pause", 100)

	viper.SetDefault("monitor.addr", "")
	viper.SetDefault("logging.verbosity", 0)
}

// Load unmarshals the current viper state into a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}
