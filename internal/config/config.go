// Package config holds the launcher's own settings, as opposed to the
// launch configuration document in appconfig. Settings come from an
// optional YAML file next to the package, with CLI flags layered on
// top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents launcher settings.
type Config struct {
	// LogLevel sets the debug log verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where debug logs will be written
	LogDir string `yaml:"log_dir"`

	// PowerShellExe is the script interpreter executable name
	PowerShellExe string `yaml:"powershell_exe"`

	// ElevationIdleWait bounds the idle wait after an elevated monitor launch
	ElevationIdleWait time.Duration `yaml:"elevation_idle_wait"`

	// ElevationSettleDelay is the fixed delay after a non-waiting elevated
	// monitor launch, compensating for the elevation relaunch
	ElevationSettleDelay time.Duration `yaml:"elevation_settle_delay"`

	// ConsoleErrors reports errors to stderr instead of a dialog
	ConsoleErrors bool `yaml:"console_errors"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:             "info",
		LogDir:               filepath.Join(".stagehand", "logs"),
		PowerShellExe:        "Powershell.exe",
		ElevationIdleWait:    time.Second,
		ElevationSettleDelay: 5 * time.Second,
		ConsoleErrors:        false,
	}
}

// LoadConfig loads settings from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	// Durations are written as strings ("5s", "500ms"), so unmarshal
	// into a shadow struct first.
	type yamlConfig struct {
		LogLevel             string `yaml:"log_level"`
		LogDir               string `yaml:"log_dir"`
		PowerShellExe        string `yaml:"powershell_exe"`
		ElevationIdleWait    string `yaml:"elevation_idle_wait"`
		ElevationSettleDelay string `yaml:"elevation_settle_delay"`
		ConsoleErrors        bool   `yaml:"console_errors"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.PowerShellExe != "" {
		cfg.PowerShellExe = yamlCfg.PowerShellExe
	}
	if yamlCfg.ElevationIdleWait != "" {
		wait, err := time.ParseDuration(yamlCfg.ElevationIdleWait)
		if err != nil {
			return nil, fmt.Errorf("invalid elevation_idle_wait %q: %w", yamlCfg.ElevationIdleWait, err)
		}
		cfg.ElevationIdleWait = wait
	}
	if yamlCfg.ElevationSettleDelay != "" {
		delay, err := time.ParseDuration(yamlCfg.ElevationSettleDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid elevation_settle_delay %q: %w", yamlCfg.ElevationSettleDelay, err)
		}
		cfg.ElevationSettleDelay = delay
	}
	if yamlCfg.ConsoleErrors {
		cfg.ConsoleErrors = yamlCfg.ConsoleErrors
	}

	return cfg, nil
}

// LoadConfigFromDir loads settings from .stagehand/config.yaml under the
// package root. Missing directory or file yields defaults.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".stagehand", "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(logLevel, logDir *string, consoleErrors *bool) {
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
	if consoleErrors != nil {
		c.ConsoleErrors = *consoleErrors
	}
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.PowerShellExe == "" {
		return fmt.Errorf("powershell_exe cannot be empty")
	}

	if c.ElevationIdleWait < 0 {
		return fmt.Errorf("elevation_idle_wait must be >= 0, got %v", c.ElevationIdleWait)
	}
	if c.ElevationSettleDelay < 0 {
		return fmt.Errorf("elevation_settle_delay must be >= 0, got %v", c.ElevationSettleDelay)
	}

	return nil
}
