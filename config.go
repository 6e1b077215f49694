package elreasoner

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the engine/CLI configuration surface: construction limits plus
// where telemetry and export artifacts go. It is deliberately small — a
// handful of scalar fields validated by Config.Validate, not a schema
// language.
type Config struct {
	Limits    LimitsConfig    `yaml:"limits"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Export    ExportConfig    `yaml:"export"`
}

// LimitsConfig bounds the construction pipeline's worklist-driven phases.
type LimitsConfig struct {
	// MaxNormalizeSteps caps normalize.NormalizeWithLimit's rewrite
	// applications; 0 means unlimited.
	MaxNormalizeSteps int `yaml:"max_normalize_steps"`
}

// TelemetryConfig controls logging verbosity and whether Prometheus
// collectors are registered at all.
type TelemetryConfig struct {
	// Verbose is read from the config file and carried by Merge, but
	// neither NewReasoner nor cmd/elreasoner consults it: caller file/line
	// annotations on log entries follow cmd/elreasoner's --verbose flag.
	Verbose bool `yaml:"verbose"`
	// MetricsEnabled gates registering the reasoner's collectors with the
	// WithMetricsRegisterer registerer; false means Reasoner.Timings is
	// still populated, just never exported as Prometheus collectors.
	MetricsEnabled bool `yaml:"metrics_enabled"`
}

// ExportConfig names the default SQLite path for internal/export.ToFile,
// used by cmd/elreasoner's "abox" subcommand when --out is not given.
type ExportConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

// DefaultConfig returns a Config with sensible defaults: unlimited
// normalization steps, metrics on, non-verbose logging.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxNormalizeSteps: 0,
		},
		Telemetry: TelemetryConfig{
			Verbose:        false,
			MetricsEnabled: true,
		},
		Export: ExportConfig{
			SQLitePath: "abox.sqlite3",
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Limits.MaxNormalizeSteps < 0 {
		return fmt.Errorf("limits.max_normalize_steps must be >= 0")
	}
	if c.Export.SQLitePath == "" {
		return fmt.Errorf("export.sqlite_path is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, starting from
// DefaultConfig so an omitted field keeps its default rather than zeroing.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToFile writes c as YAML to path, creating parent directories as
// needed.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Merge overlays other onto c, letting non-zero fields of other take
// precedence. Telemetry.MetricsEnabled is the exception: a false in other
// turns metrics off in c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Limits.MaxNormalizeSteps != 0 {
		c.Limits.MaxNormalizeSteps = other.Limits.MaxNormalizeSteps
	}
	if other.Telemetry.Verbose {
		c.Telemetry.Verbose = true
	}
	if !other.Telemetry.MetricsEnabled {
		c.Telemetry.MetricsEnabled = false
	}
	if other.Export.SQLitePath != "" {
		c.Export.SQLitePath = other.Export.SQLitePath
	}
}
