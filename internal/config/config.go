// Package config provides configuration management for the slip39 CLI.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/slip39/internal/fileutil"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Splitter SplitterConfig `yaml:"splitter"`
	Security SecurityConfig `yaml:"security"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Warnings accumulates non-fatal issues found while applying
	// environment overrides; the CLI surfaces these to the user but does
	// not fail the command over them.
	Warnings []string `yaml:"-"`
}

// SplitterConfig defines default parameters for share generation.
type SplitterConfig struct {
	IterationExponent int    `yaml:"iteration_exponent"`
	DefaultGroupCount int    `yaml:"default_group_count"`
	DefaultThreshold  int    `yaml:"default_threshold"`
	Wordlist          string `yaml:"wordlist"` // path to a custom word list, empty for the embedded default
}

// SecurityConfig defines security settings.
type SecurityConfig struct {
	MemoryLock               bool `yaml:"memory_lock"`
	RequirePassphraseConfirm bool `yaml:"require_passphrase_confirm"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// GetSecurity returns the security configuration.
func (c *Config) GetSecurity() SecurityConfig {
	return c.Security
}

// GetSplitter returns the share-generation defaults.
func (c *Config) GetSplitter() SplitterConfig {
	return c.Splitter
}

// DefaultHome returns the default home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".slip39"
	}
	return filepath.Join(home, ".slip39")
}
