// Package config loads solver run configuration from YAML, mirroring
// grasp.Params plus the logging settings the CLI needs to build a Logger.
// It deliberately carries no instance data (flow/distance matrices) — this
// module never reads problem files, only generates instances in-process.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration.
type Config struct {
	Solver  SolverConfig  `yaml:"solver"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// SolverConfig mirrors grasp.Params.
type SolverConfig struct {
	Alpha     float64       `yaml:"alpha"`
	Beta      float64       `yaml:"beta"`
	MaxIter   int           `yaml:"max_iter"`
	Look4     int64         `yaml:"look4"`
	EliteSize int           `yaml:"elite_size"`
	MaxTime   time.Duration `yaml:"max_time"`
	Seed      uint32        `yaml:"seed"`
}

// LoggingConfig holds the CLI's logging settings. The CLI reads only Level
// (a value of "debug" enables debug output); Format is carried in the file
// but not read, and the zlog.Logger always writes JSON.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the CLI's optional Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Alpha:     0.25,
			Beta:      0.5,
			MaxIter:   100,
			Look4:     -1,
			EliteSize: 10,
			MaxTime:   0,
			Seed:      270001,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
	}
}

// Load reads configuration from path, starting from DefaultConfig and
// overlaying whatever the YAML file specifies. A missing path returns the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: failed to marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks the solver parameters for values that would make a run
// meaningless or panic deep inside the engine.
func (c *Config) Validate() error {
	if c.Solver.Alpha <= 0 || c.Solver.Alpha > 1 {
		return fmt.Errorf("config: solver.alpha must be in (0,1], got %v", c.Solver.Alpha)
	}
	if c.Solver.Beta <= 0 || c.Solver.Beta > 1 {
		return fmt.Errorf("config: solver.beta must be in (0,1], got %v", c.Solver.Beta)
	}
	if c.Solver.MaxIter < 1 {
		return fmt.Errorf("config: solver.max_iter must be at least 1, got %d", c.Solver.MaxIter)
	}
	if c.Solver.EliteSize < 1 {
		return fmt.Errorf("config: solver.elite_size must be at least 1, got %d", c.Solver.EliteSize)
	}
	return nil
}
