// Package config loads workload settings for the profiling programs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the config file path.
const EnvPath = "RECS_PROFILE_CONFIG"

// Config is the full profiling configuration.
type Config struct {
	Workload WorkloadConfig `toml:"workload" yaml:"workload"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Profile  ProfileConfig  `toml:"profile" yaml:"profile"`
}

// WorkloadConfig sizes a profiling run.
type WorkloadConfig struct {
	Rounds     int `toml:"rounds" yaml:"rounds"`
	Iterations int `toml:"iterations" yaml:"iterations"`
	Entities   int `toml:"entities" yaml:"entities"`
	Worlds     int `toml:"worlds" yaml:"worlds"` // independent worlds run in parallel
}

// LoggingConfig selects the log level and encoder.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
}

// ProfileConfig selects the profiler and its output directory.
type ProfileConfig struct {
	Mode string `toml:"mode" yaml:"mode"` // "cpu" or "mem"
	Path string `toml:"path" yaml:"path"`
}

// Load reads the file at path over the defaults. The format follows the
// extension: .toml, or .yaml/.yml. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by RECS_PROFILE_CONFIG, or the defaults.
func FromEnv() (*Config, error) {
	return Load(os.Getenv(EnvPath))
}

// Defaults returns the built-in workload.
func Defaults() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Rounds:     50,
			Iterations: 10000,
			Entities:   1000,
			Worlds:     1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Mode: "cpu",
			Path: ".",
		},
	}
}

func (c *Config) validate() error {
	w := c.Workload
	if w.Rounds < 1 || w.Iterations < 1 || w.Entities < 0 || w.Worlds < 1 {
		return fmt.Errorf("invalid workload %+v", w)
	}
	switch c.Profile.Mode {
	case "cpu", "mem":
	default:
		return fmt.Errorf("invalid profile mode %q", c.Profile.Mode)
	}
	return nil
}
